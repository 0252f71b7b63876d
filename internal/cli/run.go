package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Backland-Labs/dredd-runner/internal/config"
	"github.com/Backland-Labs/dredd-runner/internal/dredd"
	"github.com/Backland-Labs/dredd-runner/internal/logger"
	"github.com/Backland-Labs/dredd-runner/internal/output"
	"github.com/spf13/cobra"
)

var (
	// errRunFailed is returned when dredd exits non-zero
	errRunFailed = errors.New("dredd reported failures")

	// errRunSkipped is returned when the rendered command is vetoed by the
	// pre-flight check and nothing was executed
	errRunSkipped = errors.New("dredd was not run: command needs a tool, blueprint patterns and an endpoint before any --")
)

func newRunCommand(flags *runnerFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run dredd against the configured endpoint",
		Long: `Run dredd against the configured endpoint

The command is rendered from the environment and flags, checked, and handed
to the shell. The exit status is non-zero when dredd fails or when the
rendered command was rejected without running.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.InitializeFromConfig(cfg)
			logger.Debugf("Loaded configuration: verbosity=%s shell=%s", cfg.Verbosity, cfg.Shell)
			defer func() { _ = logger.GetLogger().Sync() }()

			runner, err := buildRunner(cmd, cfg, flags)
			if err != nil {
				return err
			}

			printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Color)
			command := runner.Render()
			if cfg.IsVerbose() {
				printer.Info("Running dredd")
				printer.Detail("%s", command)
			}

			// Run would return false without a reason, so surface the veto here
			if !dredd.IsValidCommand(command) {
				printer.Warning("%s", command)
				return errRunSkipped
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ok, err := runner.Run(ctx)
			if err != nil {
				printer.Error("%v", err)
				return err
			}
			if !ok {
				printer.Error("dredd failed against %s", runner.Endpoint())
				return errRunFailed
			}

			printer.Success("dredd passed against %s", runner.Endpoint())
			return nil
		},
	}
}
