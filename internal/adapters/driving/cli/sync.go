package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a single sync cycle and exit",
	Long: `Fetches runs once, appends the new ones to the spreadsheet, and
exits. Useful for cron-driven setups and for verifying configuration.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := buildSyncEnv(ctx)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.scheduler.RunNow(ctx); err != nil {
		return err
	}
	cmd.Println("Sync cycle completed.")
	return nil
}
