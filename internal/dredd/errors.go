package dredd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for empty endpoints, empty blueprint
	// patterns and option values that don't match the option's arity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownOption is returned when an option name is not in the registry.
	ErrUnknownOption = errors.New("unknown option")
)

// OptionError reports a rejected option name.
type OptionError struct {
	Name string
	Err  error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("option %q: %v", e.Name, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}
