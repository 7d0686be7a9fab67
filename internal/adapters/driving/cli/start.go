package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ng-youn/runsheet/internal/logger"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the sync loop until interrupted",
	Long: `Starts the scheduler and syncs new runs to the spreadsheet on a
fixed interval. The first cycle fires one interval after start.
SIGINT or SIGTERM stops the loop cleanly.`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := buildSyncEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	logger.Info("runsheet %s started, syncing every %d minutes", version, flagInterval)
	return env.scheduler.Start(ctx)
}
