package dredd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Backland-Labs/dredd-runner/internal/logger"
	"github.com/google/uuid"
)

const (
	// DefaultCommand is the validator binary invoked by Run.
	DefaultCommand = "dredd"

	// DefaultEndpoint is the API endpoint used when none is supplied.
	DefaultEndpoint = "http://localhost:3000"
)

// DefaultBlueprintPatterns are the blueprint globs used until
// SetBlueprintPatterns replaces them.
var DefaultBlueprintPatterns = []string{"doc/*.apib", "doc/*.apib.md"}

// Runner builds a dredd command line and runs it.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	command  string
	patterns []string
	endpoint string
	flags    []string
	shell    Shell
	log      *logger.Logger
}

// Builder is an alias of Runner.
type Builder = Runner

// NewBuilder is an alias of NewRunner.
var NewBuilder = NewRunner

// RunnerOption configures a Runner at construction time.
type RunnerOption func(*runnerOptions) error

type runnerOptions struct {
	command   string
	endpoint  string
	shell     Shell
	log       *logger.Logger
	configure []func(*Runner)
}

// WithEndpoint sets the API endpoint. An empty endpoint is rejected.
func WithEndpoint(endpoint string) RunnerOption {
	return func(o *runnerOptions) error {
		if endpoint == "" {
			return fmt.Errorf("endpoint cannot be empty: %w", ErrInvalidArgument)
		}
		o.endpoint = endpoint
		return nil
	}
}

// WithCommand overrides the validator binary name.
func WithCommand(command string) RunnerOption {
	return func(o *runnerOptions) error {
		if command == "" {
			return fmt.Errorf("command cannot be empty: %w", ErrInvalidArgument)
		}
		o.command = command
		return nil
	}
}

// WithShell sets the backend Run hands the rendered command to.
func WithShell(shell Shell) RunnerOption {
	return func(o *runnerOptions) error {
		o.shell = shell
		return nil
	}
}

// WithLogger sets the logger used by Run. The global logger is used otherwise.
func WithLogger(l *logger.Logger) RunnerOption {
	return func(o *runnerOptions) error {
		o.log = l
		return nil
	}
}

// Configure registers fn to be called once with the new Runner after all
// other options have been applied.
func Configure(fn func(*Runner)) RunnerOption {
	return func(o *runnerOptions) error {
		if fn != nil {
			o.configure = append(o.configure, fn)
		}
		return nil
	}
}

// NewRunner creates a Runner for DefaultEndpoint and DefaultBlueprintPatterns
// unless opts say otherwise.
func NewRunner(opts ...RunnerOption) (*Runner, error) {
	o := runnerOptions{
		command:  DefaultCommand,
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	r := &Runner{
		command:  o.command,
		patterns: append([]string(nil), DefaultBlueprintPatterns...),
		endpoint: o.endpoint,
		shell:    o.shell,
		log:      o.log,
	}
	for _, fn := range o.configure {
		fn(r)
	}
	return r, nil
}

// Command returns the validator binary name.
func (r *Runner) Command() string {
	return r.command
}

// Endpoint returns the API endpoint.
func (r *Runner) Endpoint() string {
	return r.endpoint
}

// BlueprintPatterns returns a copy of the blueprint globs.
func (r *Runner) BlueprintPatterns() []string {
	return append([]string(nil), r.patterns...)
}

// Flags returns a copy of the accumulated flag tokens.
func (r *Runner) Flags() []string {
	return append([]string(nil), r.flags...)
}

// SetBlueprintPatterns replaces the blueprint globs. It fails when the
// patterns would render as nothing, leaving the previous patterns in place.
func (r *Runner) SetBlueprintPatterns(patterns ...string) (*Runner, error) {
	if strings.TrimSpace(strings.Join(patterns, " ")) == "" {
		return nil, fmt.Errorf("blueprint patterns cannot be empty: %w", ErrInvalidArgument)
	}
	r.patterns = append([]string(nil), patterns...)
	return r, nil
}

// SetOption appends the flag for name, plus its value for single-argument
// options. Unknown names fail with ErrUnknownOption and a wrong number of
// args fails with ErrInvalidArgument. Flags are unchanged on failure.
func (r *Runner) SetOption(name string, args ...any) (*Runner, error) {
	opt, negated, ok := LookupOption(name)
	if !ok {
		return nil, &OptionError{Name: name, Err: ErrUnknownOption}
	}

	switch opt.Arity {
	case 0:
		if len(args) != 0 {
			return nil, &OptionError{Name: name, Err: fmt.Errorf("%w: %s takes no value", ErrInvalidArgument, opt.Flag)}
		}
		if negated {
			return r.appendFlags(opt.NegatedFlag()), nil
		}
		return r.appendFlags(opt.Flag), nil
	default:
		if len(args) != 1 {
			return nil, &OptionError{Name: name, Err: fmt.Errorf("%w: %s takes exactly one value, got %d", ErrInvalidArgument, opt.Flag, len(args))}
		}
		return r.appendFlags(opt.Flag, fmt.Sprint(args[0])), nil
	}
}

// RespondsTo reports whether name, or its negated form, is a known option.
func (r *Runner) RespondsTo(name string) bool {
	_, _, ok := LookupOption(name)
	return ok
}

// Render returns the command line: command, patterns, endpoint, then flags in
// call order. Values are not quoted.
func (r *Runner) Render() string {
	parts := make([]string, 0, 3+len(r.flags))
	parts = append(parts, r.command, strings.Join(r.patterns, " "), r.endpoint)
	parts = append(parts, r.flags...)
	return strings.Join(parts, " ")
}

// String implements fmt.Stringer.
func (r *Runner) String() string {
	return r.Render()
}

// Run renders the command and executes it through the configured Shell,
// reporting whether it exited with status zero.
//
// If the rendered command fails IsValidCommand, Run returns false and a nil
// error without running anything. The only errors returned are failures to
// start the shell.
func (r *Runner) Run(ctx context.Context) (bool, error) {
	command := r.Render()
	log := r.getLogger().WithFields(map[string]interface{}{
		"run_id":  uuid.NewString(),
		"command": command,
	})

	if !IsValidCommand(command) {
		log.Warn("Skipping run: command needs at least three arguments before --")
		return false, nil
	}

	shell := r.shell
	if shell == nil {
		shell = NewExecShell()
	}

	log.Debug("Starting dredd")
	start := time.Now()
	exitCode, err := shell.Exec(ctx, command)
	log = log.WithField("duration_ms", float64(time.Since(start).Nanoseconds())/1e6)
	if err != nil {
		log.WithField("error", err.Error()).Error("dredd could not be run")
		return false, fmt.Errorf("failed to run %s: %w", r.command, err)
	}

	log.WithField("exit_code", exitCode).Info("dredd finished")
	return exitCode == 0, nil
}

func (r *Runner) getLogger() *logger.Logger {
	if r.log != nil {
		return r.log
	}
	return logger.GetLogger()
}

func (r *Runner) appendFlags(tokens ...string) *Runner {
	r.flags = append(r.flags, tokens...)
	return r
}

func (r *Runner) toggle(name string, negated bool) *Runner {
	opt := registryIndex[normalizeName(name)]
	if negated {
		return r.appendFlags(opt.NegatedFlag())
	}
	return r.appendFlags(opt.Flag)
}

func (r *Runner) valued(name string, value any) *Runner {
	opt := registryIndex[normalizeName(name)]
	return r.appendFlags(opt.Flag, fmt.Sprint(value))
}

// DryRun appends --dry-run.
func (r *Runner) DryRun() *Runner { return r.toggle("dryRun", false) }

// NoDryRun appends --no-dry-run.
func (r *Runner) NoDryRun() *Runner { return r.toggle("dryRun", true) }

// Names appends --names.
func (r *Runner) Names() *Runner { return r.toggle("names", false) }

// NoNames appends --no-names.
func (r *Runner) NoNames() *Runner { return r.toggle("names", true) }

// Sorted appends --sorted.
func (r *Runner) Sorted() *Runner { return r.toggle("sorted", false) }

// NoSorted appends --no-sorted.
func (r *Runner) NoSorted() *Runner { return r.toggle("sorted", true) }

// InlineErrors appends --inline-errors.
func (r *Runner) InlineErrors() *Runner { return r.toggle("inlineErrors", false) }

// NoInlineErrors appends --no-inline-errors.
func (r *Runner) NoInlineErrors() *Runner { return r.toggle("inlineErrors", true) }

// Details appends --details.
func (r *Runner) Details() *Runner { return r.toggle("details", false) }

// NoDetails appends --no-details.
func (r *Runner) NoDetails() *Runner { return r.toggle("details", true) }

// Color appends --color.
func (r *Runner) Color() *Runner { return r.toggle("color", false) }

// NoColor appends --no-color.
func (r *Runner) NoColor() *Runner { return r.toggle("color", true) }

// Timestamp appends --timestamp.
func (r *Runner) Timestamp() *Runner { return r.toggle("timestamp", false) }

// NoTimestamp appends --no-timestamp.
func (r *Runner) NoTimestamp() *Runner { return r.toggle("timestamp", true) }

// Silent appends --silent.
func (r *Runner) Silent() *Runner { return r.toggle("silent", false) }

// NoSilent appends --no-silent.
func (r *Runner) NoSilent() *Runner { return r.toggle("silent", true) }

// Help appends --help.
func (r *Runner) Help() *Runner { return r.toggle("help", false) }

// Version appends --version.
func (r *Runner) Version() *Runner { return r.toggle("version", false) }

// Hookfiles appends --hookfiles and its value.
func (r *Runner) Hookfiles(value any) *Runner { return r.valued("hookfiles", value) }

// Only appends --only and its value.
func (r *Runner) Only(value any) *Runner { return r.valued("only", value) }

// Reporter appends --reporter and its value.
func (r *Runner) Reporter(value any) *Runner { return r.valued("reporter", value) }

// Output appends --output and its value.
func (r *Runner) Output(value any) *Runner { return r.valued("output", value) }

// Header appends --header and its value.
func (r *Runner) Header(value any) *Runner { return r.valued("header", value) }

// User appends --user and its value.
func (r *Runner) User(value any) *Runner { return r.valued("user", value) }

// Method appends --method and its value.
func (r *Runner) Method(value any) *Runner { return r.valued("method", value) }

// Level appends --level and its value.
func (r *Runner) Level(value any) *Runner { return r.valued("level", value) }

// Path appends --path and its value.
func (r *Runner) Path(value any) *Runner { return r.valued("path", value) }
