package dredd

import "strings"

const (
	// optionsDelimiter marks where positional arguments end in the check.
	optionsDelimiter = "--"

	// minPositionalTokens counts the tool name, the blueprint patterns and
	// the endpoint.
	minPositionalTokens = 3
)

// IsValidCommand reports whether cmd has at least three whitespace separated
// tokens before its first "--".
//
// The check is a coarse pre-flight guard. It catches endpoint-only and
// flags-only commands but not much else. Multiple blueprint patterns each
// count as a token, so the result can't be read as "patterns and endpoint are
// both present".
func IsValidCommand(cmd string) bool {
	positional, _, _ := strings.Cut(cmd, optionsDelimiter)
	return len(strings.Fields(positional)) >= minPositionalTokens
}
