package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/config"
	"github.com/sbenjam1n/talentgen/internal/db"
	"github.com/sbenjam1n/talentgen/internal/logging"
	"github.com/sbenjam1n/talentgen/internal/observability"
	"github.com/sbenjam1n/talentgen/internal/queue"
)

var (
	cfg        *config.Config
	configPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "talentgen",
		Short: "Synthetic sports talent dataset generator",
		Long: `talentgen synthesizes person records with physical, performance, genetic,
experience, psychological and environmental attributes, scores every person
against a catalog of sports and labels each record with the best match.

Generate a dataset:
  talentgen generate --total 100000 --batch-size 10000 --seed 42

Score one person:
  talentgen predict --set boy=185 --set hiz=8

Distribute a run over workers:
  talentgen db migrate
  talentgen queue enqueue --total 1000000
  talentgen worker
  talentgen db export --run <id> --output data/run.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Cancelling ctx stops generation between
// batches and stops workers.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $TALENTGEN_CONFIG or ./talentgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(progressiveCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(workerCmd)
}

func initConfig() {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	opts := cfg.LoggingOptions()
	if logLevel != "" {
		opts.Level = logLevel
	}
	logging.Init(opts)
}

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("%w\nSet TALENTGEN_DATABASE_URL environment variable", err)
	}
	return pool, nil
}

func connectRedis() (*redis.Client, error) {
	rdb, err := queue.ConnectRedis(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("%w\nSet TALENTGEN_REDIS_URL environment variable", err)
	}
	return rdb, nil
}

// writeMetrics flushes the metrics textfile if one is configured.
func writeMetrics() {
	if err := observability.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logging.Warn().Err(err).Str("path", cfg.Metrics.Textfile).Msg("metrics textfile not written")
	}
}
