package attribute

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is matched by every *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("attribute: unsupported type hint")
	// ErrMalformed reports attribute text that cannot be decoded for its hint.
	ErrMalformed = errors.New("attribute: malformed attribute value")
)

// UnsupportedTypeError names the hint (and value, when there is one) a
// conversion could not handle.
type UnsupportedTypeError struct {
	Hint      Hint
	Name      string
	Value     any
	Direction string
}

func (e *UnsupportedTypeError) Error() string {
	hint := e.Hint.String()
	if e.Name != "" {
		hint = e.Name
	}
	switch e.Direction {
	case "to":
		return fmt.Sprintf("attribute: can not convert type %q and value %v to attribute", hint, e.Value)
	case "from":
		return fmt.Sprintf("attribute: can not convert type %q and value %v from attribute", hint, e.Value)
	default:
		return fmt.Sprintf("attribute: unsupported type hint %q", hint)
	}
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }
