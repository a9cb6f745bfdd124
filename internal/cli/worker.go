package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/logging"
	"github.com/sbenjam1n/talentgen/internal/queue"
	"github.com/sbenjam1n/talentgen/internal/store"
	"github.com/sbenjam1n/talentgen/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume batch jobs, generate them and store the records",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		drain, _ := cmd.Flags().GetBool("drain")
		block, _ := cmd.Flags().GetDuration("block")
		claimIdle := cfg.Redis.ClaimIdle
		if cmd.Flags().Changed("claim-idle") {
			claimIdle, _ = cmd.Flags().GetDuration("claim-idle")
		}
		if name == "" {
			host, _ := os.Hostname()
			name = fmt.Sprintf("%s-%d", host, os.Getpid())
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
		defer writeMetrics()

		opts := []worker.Option{worker.WithBlock(block), worker.WithClaimIdle(claimIdle)}
		if drain {
			opts = append(opts, worker.WithDrain())
		}
		w := worker.New(name, queue.New(rdb), store.New(pool), catalog.Default(), logging.Logger(), opts...)

		logging.Info().Str("worker", name).Msg("consuming batch jobs")
		return w.Run(ctx)
	},
}

func init() {
	workerCmd.Flags().String("name", "", "Consumer name (default host-pid)")
	workerCmd.Flags().Bool("drain", false, "Exit once the queue is empty")
	workerCmd.Flags().Duration("block", worker.DefaultBlock, "How long one queue read waits")
	workerCmd.Flags().Duration("claim-idle", worker.DefaultClaimIdle, "Take over jobs left unacknowledged this long (0 disables, default from config)")
}
