package motion

import (
	"errors"
	"fmt"
)

// Domain errors for the simulation core.
var (
	// ErrInvalidParameter indicates a caller-supplied parameter outside its
	// valid range. Fatal: no partial trajectory is produced.
	ErrInvalidParameter = errors.New("motion: invalid parameter")

	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("motion: invalid state (NaN or Inf detected)")

	// ErrNoVisibleState indicates no trajectory sample passed the renderer's
	// visibility predicate.
	ErrNoVisibleState = errors.New("motion: no visible state in trajectory")
)

// ParamError names the offending parameter and its value.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("motion: parameter %s=%g %s", e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }
