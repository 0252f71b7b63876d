package cli

import (
	"fmt"
	"strings"

	"github.com/Backland-Labs/dredd-runner/internal/config"
	"github.com/Backland-Labs/dredd-runner/internal/dredd"
	"github.com/spf13/cobra"
)

// runnerFlags are the persistent flags shared by run and render
type runnerFlags struct {
	endpoint   string
	command    string
	shell      string
	blueprints []string
	options    []string
}

func (f *runnerFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.endpoint, "endpoint", "", "API endpoint to validate (default from DREDD_RUNNER_ENDPOINT or "+config.DefaultEndpoint+")")
	pf.StringVar(&f.command, "command", "", "validator binary (default from DREDD_RUNNER_COMMAND or "+config.DefaultCommand+")")
	pf.StringVar(&f.shell, "shell", "", "execution backend: exec or interp (default from DREDD_RUNNER_SHELL or exec)")
	pf.StringArrayVar(&f.blueprints, "blueprint", nil, "blueprint glob pattern, repeatable and never split on commas")
	pf.StringArrayVar(&f.options, "option", nil, "dredd option as name or name=value, repeatable and applied in order")
}

// buildRunner combines environment configuration with command-line flags.
// Flags win over the environment.
func buildRunner(cmd *cobra.Command, cfg *config.Config, f *runnerFlags) (*dredd.Runner, error) {
	endpoint := cfg.Endpoint
	if cmd.Flags().Changed("endpoint") {
		endpoint = f.endpoint
	}

	command := cfg.Command
	if cmd.Flags().Changed("command") {
		command = f.command
	}

	mode := cfg.Shell
	if cmd.Flags().Changed("shell") {
		parsed, err := config.ParseShellMode(f.shell)
		if err != nil {
			return nil, fmt.Errorf("--shell %w", err)
		}
		mode = parsed
	}

	blueprints := cfg.Blueprints
	if len(f.blueprints) > 0 {
		blueprints = f.blueprints
	}

	runner, err := dredd.NewRunner(
		dredd.WithEndpoint(endpoint),
		dredd.WithCommand(command),
		dredd.WithShell(newShell(cmd, mode)),
	)
	if err != nil {
		return nil, err
	}

	if len(blueprints) > 0 {
		if _, err := runner.SetBlueprintPatterns(blueprints...); err != nil {
			return nil, err
		}
	}

	for _, raw := range f.options {
		name, value, hasValue := strings.Cut(raw, "=")
		if hasValue {
			_, err = runner.SetOption(name, value)
		} else {
			_, err = runner.SetOption(name)
		}
		if err != nil {
			return nil, fmt.Errorf("--option %s: %w", raw, err)
		}
	}

	return runner, nil
}

func newShell(cmd *cobra.Command, mode config.ShellMode) dredd.Shell {
	if mode == config.ShellInterp {
		return &dredd.InterpShell{
			Stdin:  cmd.InOrStdin(),
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
	}
	return &dredd.ExecShell{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
}
