package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/batch"
	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/dataset"
	"github.com/sbenjam1n/talentgen/internal/logging"
	"github.com/sbenjam1n/talentgen/internal/store"
)

// runParams are the generation parameters after applying flags over config.
type runParams struct {
	Total     int
	BatchSize int
	Seed      int64
	Workers   int
	Output    string
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("total", 0, "Number of records (default from config)")
	cmd.Flags().Int("batch-size", 0, "Records per batch (default from config)")
	cmd.Flags().Int64("seed", 0, "Base seed; batch i uses seed+i*1000 (default from config)")
	cmd.Flags().Int("workers", 0, "Batches generated concurrently (default from config)")
	cmd.Flags().StringP("output", "o", "", "Output CSV path (default from config)")
}

func loadRunParams(cmd *cobra.Command) runParams {
	g := cfg.Generation
	p := runParams{Total: g.Total, BatchSize: g.BatchSize, Seed: g.Seed, Workers: g.Workers, Output: g.Output}
	f := cmd.Flags()
	if f.Changed("total") {
		p.Total, _ = f.GetInt("total")
	}
	if f.Changed("batch-size") {
		p.BatchSize, _ = f.GetInt("batch-size")
	}
	if f.Changed("seed") {
		p.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("workers") {
		p.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("output") {
		p.Output, _ = f.GetString("output")
	}
	return p
}

func newOrchestrator(ctx context.Context, p runParams) *batch.Orchestrator {
	return batch.New(catalog.Default(), p.BatchSize, p.Seed,
		batch.WithWorkers(p.Workers),
		batch.WithLogger(*logging.Ctx(ctx)),
	)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a labelled dataset and write it as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := loadRunParams(cmd)
		persist, _ := cmd.Flags().GetBool("store")

		runID := uuid.New()
		ctx := logging.ContextWithRunID(cmd.Context(), runID.String())
		orch := newOrchestrator(ctx, p)

		fmt.Printf("Generating %d records in batches of %d (seed %d, run %s)\n", p.Total, p.BatchSize, p.Seed, runID)
		res, runErr := orch.Run(ctx, p.Total, p.Output)
		if res == nil {
			return runErr
		}
		defer writeMetrics()

		if persist {
			if err := persistDataset(ctx, runID, orch, p, res.Dataset); err != nil {
				return err
			}
			fmt.Printf("Stored run %s\n", runID)
		}
		if runErr != nil {
			return fmt.Errorf("%w (%d records generated but not written)", runErr, res.Dataset.Len())
		}

		fmt.Println()
		res.Summary.Print(os.Stdout)
		fmt.Printf("\nWrote %s in %s\n", res.Path, res.Elapsed.Round(time.Millisecond))
		return nil
	},
}

// persistDataset stores d under runID batch by batch, following the
// orchestrator's plan.
func persistDataset(ctx context.Context, runID uuid.UUID, orch *batch.Orchestrator, p runParams, d *dataset.Dataset) error {
	pool, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	st := store.New(pool)
	plan := orch.Plan(d.Len())
	run := store.Run{ID: runID, BaseSeed: p.Seed, BatchSize: p.BatchSize, Total: d.Len(), BatchCount: len(plan)}
	if err := st.CreateRun(ctx, run); err != nil {
		return err
	}
	offset := 0
	for _, b := range plan {
		if err := st.SaveBatch(ctx, runID, b, d.Records[offset:offset+b.Size]); err != nil {
			if ferr := st.FailRun(ctx, runID); ferr != nil {
				logging.Ctx(ctx).Error().Err(ferr).Msg("mark run failed")
			}
			return err
		}
		offset += b.Size
	}
	if _, err := st.CompleteRun(ctx, runID); err != nil {
		return err
	}
	return nil
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Regenerate a single batch in isolation",
	Long: `Regenerates batch --index from seed+index*1000. The records are identical to
the rows of that batch in a full run with the same seed, batch size and total;
the last batch of a run holds only the remainder.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := loadRunParams(cmd)
		index, _ := cmd.Flags().GetInt("index")

		orch := newOrchestrator(cmd.Context(), p)
		b, err := orch.BatchAt(p.Total, index)
		if err != nil {
			return err
		}
		d := dataset.New(orch.Catalog())
		d.Append(orch.GenerateBatch(b)...)

		if !cmd.Flags().Changed("output") || p.Output == "-" {
			return d.WriteCSV(os.Stdout)
		}
		size, err := d.WriteFile(p.Output)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote batch %d (seed %d, %d rows, %d bytes) to %s\n", index, b.Seed, d.Len(), size, p.Output)
		return nil
	},
}

var progressiveCmd = &cobra.Command{
	Use:   "progressive",
	Short: "Generate one dataset per requested size",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := loadRunParams(cmd)
		sizes, _ := cmd.Flags().GetIntSlice("sizes")
		base, _ := cmd.Flags().GetString("base")

		orch := newOrchestrator(cmd.Context(), p)
		results, err := orch.Progressive(cmd.Context(), sizes, base)
		defer writeMetrics()
		for _, res := range results {
			fmt.Printf("%s: %d rows, %.2f MB\n", res.Path, res.Summary.Rows, float64(res.Summary.FileSize)/(1024*1024))
		}
		return err
	},
}

func init() {
	addRunFlags(generateCmd)
	generateCmd.Flags().Bool("store", false, "Also store the run in PostgreSQL")

	addRunFlags(batchCmd)
	batchCmd.Flags().Int("index", 0, "Batch index (0-based)")

	addRunFlags(progressiveCmd)
	progressiveCmd.Flags().IntSlice("sizes", []int{200, 300, 500}, "Dataset sizes")
	progressiveCmd.Flags().String("base", "data/sporcu_dataset", "Base path; files are written as <base>_<size>.csv")
}
