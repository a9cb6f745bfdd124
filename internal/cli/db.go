package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/dataset"
	"github.com/sbenjam1n/talentgen/internal/db"
	"github.com/sbenjam1n/talentgen/internal/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "PostgreSQL run storage",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		files, err := db.Migrate(ctx, pool, cfg.Database.MigrationsDir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("  applied %s\n", filepath.Base(f))
		}
		return nil
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the progress of a stored run",
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := runFlag(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		st, err := store.New(pool).Status(ctx, runID)
		if err != nil {
			return err
		}
		fmt.Printf("Run %s (%s)\n", st.ID, st.Status)
		fmt.Printf("  seed %d, batch size %d\n", st.BaseSeed, st.BatchSize)
		fmt.Printf("  batches: %d/%d\n", st.BatchesDone, st.BatchCount)
		fmt.Printf("  rows:    %d/%d\n", st.Rows, st.Total)
		return nil
	},
}

var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a stored run as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := runFlag(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")

		ctx := cmd.Context()
		pool, err := connectDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		st := store.New(pool)
		status, err := st.Status(ctx, runID)
		if err != nil {
			return err
		}
		if !status.Done() && !force {
			return fmt.Errorf("run %s has %d/%d batches stored; use --force to export anyway", runID, status.BatchesDone, status.BatchCount)
		}

		d, err := st.LoadDataset(ctx, runID, catalog.Default())
		if err != nil {
			return err
		}
		if output == "" || output == "-" {
			return d.WriteCSV(os.Stdout)
		}
		size, err := d.WriteFile(output)
		if err != nil {
			return err
		}
		fmt.Println()
		dataset.Summarize(d, size).Print(os.Stdout)
		return nil
	},
}

func runFlag(cmd *cobra.Command) (uuid.UUID, error) {
	s, _ := cmd.Flags().GetString("run")
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --run %q: %w", s, err)
	}
	return id, nil
}

func init() {
	dbStatusCmd.Flags().String("run", "", "Run ID")
	dbExportCmd.Flags().String("run", "", "Run ID")
	dbExportCmd.Flags().StringP("output", "o", "", "Output CSV path (stdout if empty)")
	dbExportCmd.Flags().Bool("force", false, "Export even if batches are missing")

	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbExportCmd)
}
