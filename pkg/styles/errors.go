package styles

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction reports a CSSString that was not produced by CSS or
	// UnsafeCSS (for example a zero value or a struct literal).
	ErrConstruction = errors.New("styles: CSSString is not constructable")
	// ErrComposition reports an interpolation CSS refuses to splice.
	ErrComposition = errors.New("styles: invalid css interpolation")
)

// CompositionError names the interpolated value CSS rejected.
type CompositionError struct {
	Index int
	Value any
	// Reason is set when the failure is structural (piece/value count).
	Reason string
}

func (e *CompositionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("styles: css composition: %s", e.Reason)
	}
	return fmt.Sprintf("styles: value %d passed to CSS must be a css fragment or a number: %v (%T)", e.Index, e.Value, e.Value)
}

func (e *CompositionError) Unwrap() error { return ErrComposition }

// CompileError wraps a fatal parse failure reported by the Compiler.
type CompileError struct {
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("styles: compile stylesheet: %v", e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
