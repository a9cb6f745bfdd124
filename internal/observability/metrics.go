package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	recordsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "talentgen",
		Subsystem: "generator",
		Name:      "records_generated_total",
		Help:      "Number of person records assembled.",
	})

	batchesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "talentgen",
		Subsystem: "generator",
		Name:      "batches_completed_total",
		Help:      "Number of batches generated.",
	})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "talentgen",
		Subsystem: "generator",
		Name:      "batch_duration_seconds",
		Help:      "Wall time spent generating one batch.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	recommendations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "talentgen",
		Subsystem: "generator",
		Name:      "recommendations_total",
		Help:      "Recommended activity labels emitted, by activity.",
	}, []string{"activity"})

	sinkErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "talentgen",
		Subsystem: "sink",
		Name:      "write_errors_total",
		Help:      "Dataset write failures by sink.",
	}, []string{"sink"})

	lastRunGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "talentgen",
		Subsystem: "generator",
		Name:      "last_run_completed_timestamp_seconds",
		Help:      "Unix timestamp of the most recent completed generation run.",
	})
)

func init() {
	prometheus.MustRegister(recordsGenerated, batchesCompleted, batchDuration, recommendations, sinkErrors, lastRunGauge)
}

// RecordBatch counts a finished batch of size records.
func RecordBatch(size int, elapsed time.Duration) {
	batchesCompleted.Inc()
	recordsGenerated.Add(float64(size))
	batchDuration.Observe(elapsed.Seconds())
}

// RecordRecommendation counts one emitted label.
func RecordRecommendation(activity string) {
	recommendations.WithLabelValues(activity).Inc()
}

// RecordSinkError counts a failed write to the named sink.
func RecordSinkError(sink string) {
	sinkErrors.WithLabelValues(sink).Inc()
}

// RecordRunCompleted updates the completion watermark.
func RecordRunCompleted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	lastRunGauge.Set(float64(ts.Unix()))
}

// WriteTextfile dumps the default registry in the node-exporter textfile
// format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
