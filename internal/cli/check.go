package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Backland-Labs/dredd-runner/internal/dredd"
	"github.com/spf13/cobra"
)

var errInvalidCommand = errors.New("command failed the pre-flight check")

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <command...>",
		Short: "Report whether a command line passes the pre-flight check",
		Long: `Report whether a command line passes the pre-flight check

The arguments are joined with spaces. The check passes when at least three
tokens precede the first "--". Flags are not parsed, so pass the command
exactly as it would be run.`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("requires a command to check")
			}
			if !dredd.IsValidCommand(strings.Join(args, " ")) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errInvalidCommand
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return err
		},
	}
}
