package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	var showVersion bool
	flags := &runnerFlags{}

	cmd := &cobra.Command{
		Use:   "dredd-runner",
		Short: "dredd-runner - build and run dredd API blueprint validations",
		Long: `dredd-runner - build and run dredd API blueprint validations

dredd-runner assembles a dredd command line from blueprint patterns, an API
endpoint and dredd options, then runs it through the system shell.

Examples:
  dredd-runner run
  dredd-runner run --endpoint http://localhost:4567 --option dryRun --option level=warning
  dredd-runner render --blueprint "api/*.apib" --option noColor
  dredd-runner check dredd doc/*.apib http://localhost:3000
  dredd-runner options -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "dredd-runner version "+version)
				return err
			}
			return cmd.Help()
		},
	}

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flags.register(cmd)

	cmd.AddCommand(
		newRunCommand(flags),
		newRenderCommand(flags),
		newCheckCommand(),
		newOptionsCommand(),
	)

	return cmd
}
