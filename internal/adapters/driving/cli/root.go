// Package cli implements the command-line interface. Commands receive
// their services through package-level variables set by the wiring
// helpers, which tests replace with mocks.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ng-youn/runsheet/internal/adapters/driven/config/file"
	"github.com/ng-youn/runsheet/internal/adapters/driven/sheets/google"
	"github.com/ng-youn/runsheet/internal/adapters/driven/storage/sqlite"
	"github.com/ng-youn/runsheet/internal/connectors/wandb"
	"github.com/ng-youn/runsheet/internal/core/domain"
	"github.com/ng-youn/runsheet/internal/core/ports/driven"
	"github.com/ng-youn/runsheet/internal/core/services"
	"github.com/ng-youn/runsheet/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagInterval int
	flagUser     string
	flagSheet    string
	flagConfig   string
	flagLogFile  string
	flagDataDir  string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "runsheet",
	Short: "Sync experiment runs to a Google Sheets spreadsheet",
	Long: `runsheet periodically fetches experiment runs from Weights & Biases
and appends the ones still in progress to a Google Sheets spreadsheet,
one row per run, skipping rows already present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if flagLogFile != "" {
			if err := logger.InitFile(flagLogFile); err != nil {
				return fmt.Errorf("%w: open log file %s: %w", domain.ErrConfig, flagLogFile, err)
			}
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagInterval, "interval", 30, "minutes between sync cycles")
	pf.StringVar(&flagUser, "user", "ng-youn", "user whose runs are synced")
	pf.StringVar(&flagSheet, "sheet", "", "spreadsheet document name")
	pf.StringVar(&flagConfig, "config", "CONFIG.json", "path to the configuration file")
	pf.StringVar(&flagLogFile, "log-file", "runsheet.log", "log file path (empty disables file logging)")
	pf.StringVar(&flagDataDir, "data-dir", "", "directory for the cycle-history database (default ~/.runsheet/data)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// syncEnv bundles the services a sync command needs. Everything here is
// built once at startup and reused across cycles.
type syncEnv struct {
	scheduler *services.Scheduler
	store     *sqlite.Store
}

// close releases resources held by the environment.
func (e *syncEnv) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			logger.Warn("Failed to close history store: %v", err)
		}
	}
}

// buildSyncEnv wires the full pipeline: config file, run source,
// spreadsheet service, write target, syncer, scheduler, history store.
// Any failure here is fatal to the command.
func buildSyncEnv(ctx context.Context) (*syncEnv, error) {
	if flagSheet == "" {
		return nil, fmt.Errorf("%w: --sheet is required", domain.ErrConfig)
	}

	settings, err := file.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv(wandb.EnvAPIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s environment variable not set", domain.ErrConfig, wandb.EnvAPIKey)
	}
	source := wandb.NewClient(apiKey)

	svc, err := google.NewService(ctx, settings.CredentialsFile)
	if err != nil {
		return nil, err
	}

	spreadsheet, err := svc.OpenSpreadsheet(ctx, flagSheet)
	if err != nil {
		return nil, err
	}

	sheet, err := services.PrepareWorksheet(ctx, spreadsheet, time.Now())
	if err != nil {
		return nil, err
	}
	logger.Info("Writing to worksheet %q in spreadsheet %q", sheet.Title(), flagSheet)

	syncer := services.NewSyncer(source, sheet, settings.Scope, settings.Headers, flagUser)

	env := &syncEnv{}
	var cycleStore driven.CycleStore
	store, err := sqlite.NewStore(flagDataDir)
	if err != nil {
		// History is observability only; run without it.
		logger.Warn("Cycle history unavailable: %v", err)
	} else {
		env.store = store
		cycleStore = store.CycleStore()
	}

	interval := time.Duration(flagInterval) * time.Minute
	env.scheduler = services.NewScheduler(interval, syncer, cycleStore)
	return env, nil
}
