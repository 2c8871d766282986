package arraysim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every validation failure.
	ErrInvalidArgument = errors.New("arraysim: invalid argument")
	// ErrInvalidDirectivity marks a malformed per-sensor directivity set.
	ErrInvalidDirectivity = errors.New("arraysim: invalid directivity")
)

// ArgumentError reports which parameter was rejected, the constraint it
// violated and the value received.
type ArgumentError struct {
	Param      string
	Constraint string
	Value      any

	directivity bool
	cause       error
}

func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("arraysim: invalid %s: must be %s, got %v", e.Param, e.Constraint, e.Value)
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *ArgumentError) Unwrap() []error {
	errs := []error{ErrInvalidArgument}
	if e.directivity {
		errs = append(errs, ErrInvalidDirectivity)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func argError(param, constraint string, value any) error {
	return &ArgumentError{Param: param, Constraint: constraint, Value: value}
}

func wrapArgError(param, constraint string, value any, cause error) error {
	return &ArgumentError{Param: param, Constraint: constraint, Value: value, cause: cause}
}

func directivityError(constraint string, value any, cause error) error {
	return &ArgumentError{Param: "directivity", Constraint: constraint, Value: value, directivity: true, cause: cause}
}

func checkFilterLen(param string, n int) error {
	if n <= 0 || n%2 != 0 {
		return argError(param, "a positive even integer", n)
	}
	return nil
}
