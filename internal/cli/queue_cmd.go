package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/batch"
	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/queue"
	"github.com/sbenjam1n/talentgen/internal/store"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Distributed run queue",
}

var queueEnqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Plan a run, store it and push one job per batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := loadRunParams(cmd)
		if p.Total <= 0 || p.BatchSize <= 0 {
			return fmt.Errorf("%w: total and batch size must be positive", batch.ErrInvalidParams)
		}
		ctx := cmd.Context()

		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		rdb, err := connectRedis()
		if err != nil {
			return err
		}
		defer rdb.Close()

		runID := uuid.New()
		plan := batch.New(catalog.Default(), p.BatchSize, p.Seed).Plan(p.Total)
		run := store.Run{ID: runID, BaseSeed: p.Seed, BatchSize: p.BatchSize, Total: p.Total, BatchCount: len(plan)}
		if err := store.New(pool).CreateRun(ctx, run); err != nil {
			return err
		}

		q := queue.New(rdb)
		if err := q.EnsureStreams(ctx); err != nil {
			return err
		}
		if err := q.PushJobs(ctx, queue.JobsFor(runID, plan)); err != nil {
			return err
		}

		fmt.Printf("Run %s: %d records in %d batches queued\n", runID, p.Total, len(plan))
		return nil
	},
}

var queueStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queued and in-flight batch jobs in Redis",
	RunE: func(cmd *cobra.Command, args []string) error {
		rdb, err := connectRedis()
		if err != nil {
			return err
		}
		defer rdb.Close()

		queued, pending, err := queue.New(rdb).Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("queue status: %w", err)
		}

		fmt.Printf("Queue Status:\n")
		fmt.Printf("  %s: %d entries, %d delivered and unacknowledged\n", queue.StreamBatches, queued, pending)
		return nil
	},
}

var queueProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print progress events of a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := runFlag(cmd)
		if err != nil {
			return err
		}
		follow, _ := cmd.Flags().GetBool("follow")
		interval, _ := cmd.Flags().GetDuration("interval")

		rdb, err := connectRedis()
		if err != nil {
			return err
		}
		defer rdb.Close()

		ctx := cmd.Context()
		q := queue.New(rdb)
		last := ""
		for {
			events, next, err := q.Progress(ctx, runID, last)
			if err != nil {
				return err
			}
			last = next
			for _, ev := range events {
				fmt.Printf("%s  batch %d/%d  %d/%d records  (%s)\n",
					ev.At.Format(time.TimeOnly), ev.Batch, ev.BatchCount, ev.Completed, ev.Total, ev.Worker)
				if ev.Completed >= ev.Total {
					return nil
				}
			}
			if !follow {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
	},
}

func init() {
	addRunFlags(queueEnqueueCmd)
	queueProgressCmd.Flags().String("run", "", "Run ID")
	queueProgressCmd.Flags().BoolP("follow", "f", false, "Keep polling until the run completes")
	queueProgressCmd.Flags().Duration("interval", time.Second, "Poll interval with --follow")

	queueCmd.AddCommand(queueEnqueueCmd)
	queueCmd.AddCommand(queueStatusCmd)
	queueCmd.AddCommand(queueProgressCmd)
}
