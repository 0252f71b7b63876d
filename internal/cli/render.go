package cli

import (
	"fmt"

	"github.com/Backland-Labs/dredd-runner/internal/config"
	"github.com/spf13/cobra"
)

func newRenderCommand(flags *runnerFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Print the dredd command line without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			runner, err := buildRunner(cmd, cfg, flags)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), runner.Render())
			return err
		},
	}
}
