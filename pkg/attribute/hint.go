package attribute

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Hint is the declared type of a property. It only selects a conversion
// branch; values are never checked against it.
type Hint int

const (
	// Unknown is the zero value and is rejected by the default converter.
	Unknown Hint = iota
	Boolean
	Number
	BigInt
	Symbol
	Function
	String
	Object
	Array
	Map
	Set
)

var hintNames = map[Hint]string{
	Unknown:  "unknown",
	Boolean:  "boolean",
	Number:   "number",
	BigInt:   "bigint",
	Symbol:   "symbol",
	Function: "function",
	String:   "string",
	Object:   "object",
	Array:    "array",
	Map:      "map",
	Set:      "set",
}

// Hints lists every recognised hint in declaration order.
func Hints() []Hint {
	return []Hint{Boolean, Number, BigInt, Symbol, Function, String, Object, Array, Map, Set}
}

func (h Hint) String() string {
	if name, ok := hintNames[h]; ok {
		return name
	}
	return fmt.Sprintf("hint(%d)", int(h))
}

// Structured reports whether values of this hint travel as JSON.
func (h Hint) Structured() bool {
	switch h {
	case Object, Array, Map, Set:
		return true
	default:
		return false
	}
}

// Known reports whether h is one of the recognised hints.
func (h Hint) Known() bool {
	return h > Unknown && h <= Set
}

// ParseHint maps a name (case-insensitive, "bool"/"int"/"json" aliases
// included) to its Hint.
func ParseHint(name string) (Hint, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "bool":
		return Boolean, nil
	case "int", "integer", "float":
		return Number, nil
	case "json":
		return Object, nil
	case "list":
		return Array, nil
	}
	for hint, hintName := range hintNames {
		if hint != Unknown && hintName == normalized {
			return hint, nil
		}
	}
	return Unknown, &UnsupportedTypeError{Hint: Unknown, Name: name, Direction: "parse"}
}

// MarshalText implements encoding.TextMarshaler.
func (h Hint) MarshalText() ([]byte, error) {
	if !h.Known() {
		return nil, &UnsupportedTypeError{Hint: h, Direction: "marshal"}
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hint) UnmarshalText(text []byte) error {
	parsed, err := ParseHint(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// UnmarshalYAML accepts the hint name as a scalar.
func (h *Hint) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("attribute: type hint must be a scalar (line %d)", node.Line)
	}
	return h.UnmarshalText([]byte(node.Value))
}
