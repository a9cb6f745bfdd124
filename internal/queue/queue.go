// Package queue distributes batch generation jobs over Redis streams and
// carries progress events back to whoever started the run.
package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sbenjam1n/talentgen/internal/batch"
)

const (
	// StreamBatches carries BatchJob messages (enqueue pushes, workers pop).
	StreamBatches = "talentgen_batches"
	// StreamProgress carries ProgressEvent messages.
	StreamProgress = "talentgen_progress"

	// GroupWorkers is the consumer group for batch workers.
	GroupWorkers = "talentgen_workers"
)

// ErrNoMessage is returned when a bounded read times out without a message.
var ErrNoMessage = errors.New("no messages")

// BatchJob asks a worker to generate and store one batch of a run.
type BatchJob struct {
	RunID      uuid.UUID `json:"run_id"`
	Index      int       `json:"index"`
	Seed       int64     `json:"seed"`
	Size       int       `json:"size"`
	BatchCount int       `json:"batch_count"`
}

// Batch returns the batch described by the job.
func (j BatchJob) Batch() batch.Batch {
	return batch.Batch{Index: j.Index, Seed: j.Seed, Size: j.Size}
}

// JobsFor turns a plan into jobs for runID.
func JobsFor(runID uuid.UUID, plan []batch.Batch) []BatchJob {
	jobs := make([]BatchJob, len(plan))
	for i, b := range plan {
		jobs[i] = BatchJob{RunID: runID, Index: b.Index, Seed: b.Seed, Size: b.Size, BatchCount: len(plan)}
	}
	return jobs
}

// ProgressEvent reports a finished batch.
type ProgressEvent struct {
	RunID      uuid.UUID `json:"run_id"`
	Completed  int       `json:"completed"`
	Total      int       `json:"total"`
	Batch      int       `json:"batch"`
	BatchCount int       `json:"batch_count"`
	Worker     string    `json:"worker,omitempty"`
	At         time.Time `json:"at"`
}

// Queue manages the Redis streams used by distributed runs.
type Queue struct {
	client *redis.Client
}

// New creates a Queue from a Redis client.
func New(client *redis.Client) *Queue {
	return &Queue{client: client}
}

// ConnectRedis creates a Redis client from a URL.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// EnsureStreams creates the worker consumer group if it doesn't exist.
func (q *Queue) EnsureStreams(ctx context.Context) error {
	err := q.client.XGroupCreateMkStream(ctx, StreamBatches, GroupWorkers, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create group %s on %s: %w", GroupWorkers, StreamBatches, err)
	}
	return nil
}

func jobValues(job BatchJob) map[string]any {
	return map[string]any{
		"run_id":      job.RunID.String(),
		"index":       strconv.Itoa(job.Index),
		"seed":        strconv.FormatInt(job.Seed, 10),
		"size":        strconv.Itoa(job.Size),
		"batch_count": strconv.Itoa(job.BatchCount),
	}
}

func parseJob(values map[string]any) (BatchJob, error) {
	var job BatchJob
	id, err := uuid.Parse(getString(values, "run_id"))
	if err != nil {
		return job, fmt.Errorf("parse run_id: %w", err)
	}
	job.RunID = id
	fields := []struct {
		key string
		dst *int
	}{
		{"index", &job.Index},
		{"size", &job.Size},
		{"batch_count", &job.BatchCount},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(getString(values, f.key))
		if err != nil {
			return job, fmt.Errorf("parse %s: %w", f.key, err)
		}
		*f.dst = n
	}
	if job.Seed, err = strconv.ParseInt(getString(values, "seed"), 10, 64); err != nil {
		return job, fmt.Errorf("parse seed: %w", err)
	}
	return job, nil
}

// PushJob adds a job to the batch stream.
func (q *Queue) PushJob(ctx context.Context, job BatchJob) (string, error) {
	id, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamBatches,
		Values: jobValues(job),
	}).Result()
	if err != nil {
		return "", fmt.Errorf("push job %d: %w", job.Index, err)
	}
	return id, nil
}

// PushJobs adds all jobs in one pipeline.
func (q *Queue) PushJobs(ctx context.Context, jobs []BatchJob) error {
	_, err := q.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for _, job := range jobs {
			p.XAdd(ctx, &redis.XAddArgs{Stream: StreamBatches, Values: jobValues(job)})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("push jobs: %w", err)
	}
	return nil
}

// ReadJob reads one job for consumer. block of zero waits forever; otherwise
// ErrNoMessage is returned when nothing arrives in time.
func (q *Queue) ReadJob(ctx context.Context, consumer string, block time.Duration) (*BatchJob, string, error) {
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    GroupWorkers,
		Consumer: consumer,
		Streams:  []string{StreamBatches, ">"},
		Count:    1,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", ErrNoMessage
		}
		return nil, "", fmt.Errorf("read job: %w", err)
	}

	for _, stream := range streams {
		for _, msg := range stream.Messages {
			return decodeJob(msg)
		}
	}
	return nil, "", ErrNoMessage
}

// ClaimJob takes over one job that another delivery left unacknowledged for
// at least minIdle, typically because its worker failed or died. It returns
// ErrNoMessage when no pending job is old enough.
func (q *Queue) ClaimJob(ctx context.Context, consumer string, minIdle time.Duration) (*BatchJob, string, error) {
	msgs, _, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   StreamBatches,
		Group:    GroupWorkers,
		Consumer: consumer,
		MinIdle:  minIdle,
		Start:    "0-0",
		Count:    1,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", ErrNoMessage
		}
		return nil, "", fmt.Errorf("claim job: %w", err)
	}
	if len(msgs) == 0 {
		return nil, "", ErrNoMessage
	}
	return decodeJob(msgs[0])
}

func decodeJob(msg redis.XMessage) (*BatchJob, string, error) {
	job, err := parseJob(msg.Values)
	if err != nil {
		return nil, msg.ID, fmt.Errorf("message %s: %w", msg.ID, err)
	}
	return &job, msg.ID, nil
}

// AckJob acknowledges a job message.
func (q *Queue) AckJob(ctx context.Context, msgID string) error {
	return q.client.XAck(ctx, StreamBatches, GroupWorkers, msgID).Err()
}

// PublishProgress appends ev to the progress stream.
func (q *Queue) PublishProgress(ctx context.Context, ev ProgressEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamProgress,
		MaxLen: 10_000,
		Approx: true,
		Values: map[string]any{
			"run_id":  ev.RunID.String(),
			"payload": string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish progress: %w", err)
	}
	return nil
}

// Progress returns the progress events of runID published after the stream
// ID after ("0" for all), and the last ID seen.
func (q *Queue) Progress(ctx context.Context, runID uuid.UUID, after string) ([]ProgressEvent, string, error) {
	start := "-"
	if after != "" && after != "0" {
		start = "(" + after
	}
	msgs, err := q.client.XRange(ctx, StreamProgress, start, "+").Result()
	if err != nil {
		return nil, after, fmt.Errorf("read progress: %w", err)
	}

	last := after
	var events []ProgressEvent
	for _, msg := range msgs {
		last = msg.ID
		if getString(msg.Values, "run_id") != runID.String() {
			continue
		}
		ev, err := decodeProgress(getString(msg.Values, "payload"))
		if err != nil {
			return nil, last, fmt.Errorf("message %s: %w", msg.ID, err)
		}
		events = append(events, ev)
	}
	return events, last, nil
}

func decodeProgress(payload string) (ProgressEvent, error) {
	var ev ProgressEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return ev, fmt.Errorf("decode progress: %w", err)
	}
	return ev, nil
}

// Status returns the stream length and the number of delivered but
// unacknowledged jobs.
func (q *Queue) Status(ctx context.Context) (queued, pending int64, err error) {
	queued, err = q.client.XLen(ctx, StreamBatches).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("stream length: %w", err)
	}
	info, err := q.client.XPending(ctx, StreamBatches, GroupWorkers).Result()
	if err != nil {
		if strings.HasPrefix(err.Error(), "NOGROUP") {
			return queued, 0, nil
		}
		return 0, 0, fmt.Errorf("pending jobs: %w", err)
	}
	return queued, info.Count, nil
}

func getString(values map[string]any, key string) string {
	if v, ok := values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
