package dredd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// defaultShellPath is the system shell ExecShell hands commands to.
const defaultShellPath = "/bin/sh"

// Shell executes a rendered command line and reports its exit status.
// Exec blocks until the command finishes. A non-nil error means the command
// could not be run at all, not that it exited non-zero.
type Shell interface {
	Exec(ctx context.Context, command string) (exitCode int, err error)
}

// ExecShell runs commands through the host's /bin/sh -c.
type ExecShell struct {
	// Path is the shell binary. Empty means /bin/sh.
	Path string

	// Env is appended to the current process environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecShell returns an ExecShell wired to the process's stdio.
func NewExecShell() *ExecShell {
	return &ExecShell{
		Path:   defaultShellPath,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Exec runs command with "<Path> -c".
func (s *ExecShell) Exec(ctx context.Context, command string) (int, error) {
	path := s.Path
	if path == "" {
		path = defaultShellPath
	}

	cmd := exec.CommandContext(ctx, path, "-c", command)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("shell execution interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 when the process was killed by a signal
		return exitErr.ExitCode(), nil
	}

	return -1, fmt.Errorf("shell execution failed: %w", err)
}

// InterpShell runs commands with an in-process POSIX shell interpreter.
// External programs such as dredd are still started as child processes.
type InterpShell struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is appended to the current process environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewInterpShell returns an InterpShell wired to the process's stdio.
func NewInterpShell() *InterpShell {
	return &InterpShell{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Exec parses command as a POSIX shell program and runs it.
func (s *InterpShell) Exec(ctx context.Context, command string) (int, error) {
	prog, err := syntax.NewParser(syntax.Variant(syntax.LangPOSIX)).Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, fmt.Errorf("failed to parse command: %w", err)
	}

	stdin, stdout, stderr := s.Stdin, s.Stdout, s.Stderr
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	opts := []interp.RunnerOption{
		interp.StdIO(stdin, stdout, stderr),
	}
	if len(s.Env) > 0 {
		opts = append(opts, interp.Env(expand.ListEnviron(append(os.Environ(), s.Env...)...)))
	}
	if s.Dir != "" {
		opts = append(opts, interp.Dir(s.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return -1, fmt.Errorf("failed to create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return 0, nil
	}

	if status, ok := interp.IsExitStatus(err); ok {
		return int(status), nil
	}

	return -1, fmt.Errorf("shell execution failed: %w", err)
}
