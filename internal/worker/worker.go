// Package worker consumes batch jobs from the queue, regenerates each batch
// from its seed and stores the records.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sbenjam1n/talentgen/internal/batch"
	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/queue"
	"github.com/sbenjam1n/talentgen/internal/record"
	"github.com/sbenjam1n/talentgen/internal/store"
)

// Jobs is the queue side of a worker.
type Jobs interface {
	EnsureStreams(ctx context.Context) error
	ReadJob(ctx context.Context, consumer string, block time.Duration) (*queue.BatchJob, string, error)
	ClaimJob(ctx context.Context, consumer string, minIdle time.Duration) (*queue.BatchJob, string, error)
	AckJob(ctx context.Context, msgID string) error
	PublishProgress(ctx context.Context, ev queue.ProgressEvent) error
}

// Sink is the storage side of a worker.
type Sink interface {
	SaveBatch(ctx context.Context, runID uuid.UUID, b batch.Batch, records []record.Record) error
	CompleteRun(ctx context.Context, runID uuid.UUID) (bool, error)
	Status(ctx context.Context, runID uuid.UUID) (*store.RunStatus, error)
}

// Worker processes batch jobs.
type Worker struct {
	name  string
	jobs  Jobs
	sink  Sink
	orch  *batch.Orchestrator
	log   zerolog.Logger
	block time.Duration
	idle  time.Duration
	retry time.Duration
	drain bool
}

// Defaults for the worker options.
const (
	DefaultBlock      = 5 * time.Second
	DefaultClaimIdle  = time.Minute
	DefaultRetryDelay = time.Second
)

// Option configures a Worker.
type Option func(*Worker)

// WithBlock sets how long a single queue read waits.
func WithBlock(d time.Duration) Option {
	return func(w *Worker) { w.block = d }
}

// WithClaimIdle sets how long a delivered job may stay unacknowledged before
// this worker takes it over. Zero disables reclaiming.
func WithClaimIdle(d time.Duration) Option {
	return func(w *Worker) { w.idle = d }
}

// WithRetryDelay sets the pause after a failed queue read.
func WithRetryDelay(d time.Duration) Option {
	return func(w *Worker) { w.retry = d }
}

// WithDrain makes Run return once the queue is empty.
func WithDrain() Option {
	return func(w *Worker) { w.drain = true }
}

// New creates a worker named name.
func New(name string, jobs Jobs, sink Sink, cat *catalog.Catalog, log zerolog.Logger, opts ...Option) *Worker {
	w := &Worker{
		name:  name,
		jobs:  jobs,
		sink:  sink,
		orch:  batch.New(cat, 1, 0, batch.WithLogger(log)),
		log:   log.With().Str("worker", name).Logger(),
		block: DefaultBlock,
		idle:  DefaultClaimIdle,
		retry: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run consumes jobs until ctx is done, or until the queue is idle when
// draining. Failed jobs are left unacknowledged and are picked up again,
// by this or another worker, once idle for the claim interval.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.jobs.EnsureStreams(ctx); err != nil {
		return err
	}

	for {
		job, msgID, err := w.next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, queue.ErrNoMessage) {
				if w.drain {
					return nil
				}
				continue
			}
			if msgID != "" {
				w.log.Error().Err(err).Str("msg_id", msgID).Msg("dropping malformed job")
				if err := w.jobs.AckJob(ctx, msgID); err != nil {
					w.log.Error().Err(err).Msg("ack failed")
				}
				continue
			}
			w.log.Error().Err(err).Dur("retry_in", w.retry).Msg("job read error")
			if err := sleep(ctx, w.retry); err != nil {
				return err
			}
			continue
		}

		if err := w.Process(ctx, *job); err != nil {
			w.log.Error().Err(err).Stringer("run_id", job.RunID).Int("batch", job.Index).Msg("job failed")
			continue
		}
		if err := w.jobs.AckJob(ctx, msgID); err != nil {
			w.log.Error().Err(err).Str("msg_id", msgID).Msg("ack failed")
		}
	}
}

// next prefers reclaiming a stalled job over reading a new one.
func (w *Worker) next(ctx context.Context) (*queue.BatchJob, string, error) {
	if w.idle > 0 {
		job, msgID, err := w.jobs.ClaimJob(ctx, w.name, w.idle)
		if !errors.Is(err, queue.ErrNoMessage) {
			return job, msgID, err
		}
	}
	return w.jobs.ReadJob(ctx, w.name, w.block)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Process generates and stores the batch of job and reports progress.
func (w *Worker) Process(ctx context.Context, job queue.BatchJob) error {
	start := time.Now()
	records := w.orch.GenerateBatch(job.Batch())
	if err := w.sink.SaveBatch(ctx, job.RunID, job.Batch(), records); err != nil {
		return fmt.Errorf("save batch %d: %w", job.Index, err)
	}

	st, err := w.sink.Status(ctx, job.RunID)
	if err != nil {
		return err
	}
	ev := queue.ProgressEvent{
		RunID:      job.RunID,
		Completed:  st.Rows,
		Total:      st.Total,
		Batch:      job.Index + 1,
		BatchCount: job.BatchCount,
		Worker:     w.name,
		At:         time.Now().UTC(),
	}
	if err := w.jobs.PublishProgress(ctx, ev); err != nil {
		w.log.Warn().Err(err).Msg("progress not published")
	}

	done, err := w.sink.CompleteRun(ctx, job.RunID)
	if err != nil {
		return err
	}
	w.log.Info().
		Stringer("run_id", job.RunID).
		Int("batch", job.Index+1).
		Int("of", job.BatchCount).
		Int("completed", st.Rows).
		Int("total", st.Total).
		Dur("elapsed", time.Since(start)).
		Bool("run_complete", done).
		Msg("batch stored")
	return nil
}
