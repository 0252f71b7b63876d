// Package output provides colored terminal output for dredd-runner.
//
// Colors come from fatih/color. They are switched off for non-terminal
// streams and when NO_COLOR is set. Stdout and stderr are checked separately.
//
// Example usage:
//
//	printer := output.NewPrinter(os.Stdout, os.Stderr, true)
//	printer.Success("dredd passed")
//	printer.Error("dredd failed: %v", err)
//	printer.Detail("%s", command)
package output
