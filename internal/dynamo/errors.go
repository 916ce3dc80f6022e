package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for parameter and buffer handling.
var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParameter indicates a parameter key the model does not expose.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrInvalidDimensions indicates a non-positive buffer width or height.
	ErrInvalidDimensions = errors.New("dynamo: invalid buffer dimensions")

	// ErrInvalidRow indicates a row whose length does not match the buffer width.
	ErrInvalidRow = errors.New("dynamo: row length does not match buffer width")
)

// ParamError wraps a bounds violation with the offending key and value.
type ParamError struct {
	Key   string
	Value float64
	Min   float64
	Max   float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s=%g outside [%g, %g]", e.Key, e.Value, e.Min, e.Max)
}

func (e *ParamError) Unwrap() error {
	return ErrParameterBounds
}
