// Package dredd builds and runs command lines for the dredd API blueprint
// validator.
//
// A Runner accumulates flags through chainable setters, one per entry in a
// closed option registry, and renders them after the tool name, the blueprint
// glob patterns and the API endpoint:
//
//	dredd <patterns> <endpoint> [--flag [value]]...
//
// Flags render in call order. Nothing is quoted or escaped, so callers must
// pass shell-safe values.
//
// Basic usage:
//
//	runner, err := dredd.NewRunner(dredd.WithEndpoint("http://localhost:4567"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner.DryRun().Level("warning").NoColor()
//	ok, err := runner.Run(ctx)
//
// Run silently returns false without starting a shell when the rendered
// command fails the IsValidCommand pre-flight check. Callers that need to
// tell a vetoed run from a failed one should call IsValidCommand(runner.Render())
// first.
package dredd
