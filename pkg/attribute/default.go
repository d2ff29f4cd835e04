package attribute

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/goliatone/go-reactive/internal/numfmt"
)

// BooleanMarker is written for a truthy Boolean property. Boolean attributes
// are presence flags, so any present value reads back as true.
const BooleanMarker = "true"

var (
	// Default converts the recognised hints in both directions. Structured
	// attributes are decoded with JSON.
	Default = NewConverter(defaultToAttribute, defaultFromAttribute)

	// Legacy matches Default except that structured attributes are not
	// decoded: FromAttribute returns the attribute text re-encoded as a JSON
	// string. Use it only where consumers depend on that wire shape.
	Legacy = NewConverter(defaultToAttribute, legacyFromAttribute)
)

func defaultToAttribute(value any, hint Hint) (Attr, error) {
	if isNull(value) {
		return Absent, nil
	}

	switch hint {
	case Boolean:
		if truthy(value) {
			return Present(BooleanMarker), nil
		}
		return Absent, nil
	case Number, BigInt, Symbol, Function, String:
		return Present(scalarString(value)), nil
	case Object, Array, Map, Set:
		encoded, err := encodeStructured(value, hint)
		if err != nil {
			return Absent, fmt.Errorf("attribute: encode %s value: %w", hint, err)
		}
		return Present(encoded), nil
	default:
		return Absent, &UnsupportedTypeError{Hint: hint, Value: value, Direction: "to"}
	}
}

func defaultFromAttribute(attr Attr, hint Hint) (any, error) {
	if attr.Empty() {
		return nil, nil
	}

	switch hint {
	case Boolean:
		return true, nil
	case Number:
		return numfmt.Parse(attr.Value), nil
	case BigInt:
		n, ok := new(big.Int).SetString(strings.TrimSpace(attr.Value), 0)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrMalformed, attr.Value)
		}
		return n, nil
	case String:
		return attr.Value, nil
	case Object, Array, Map, Set:
		return decodeStructured(attr.Value, hint)
	default:
		return nil, &UnsupportedTypeError{Hint: hint, Value: attr.Value, Direction: "from"}
	}
}

func legacyFromAttribute(attr Attr, hint Hint) (any, error) {
	if attr.Empty() || !hint.Structured() {
		return defaultFromAttribute(attr, hint)
	}
	encoded, err := json.Marshal(attr.Value)
	if err != nil {
		return nil, fmt.Errorf("attribute: re-encode %s attribute: %w", hint, err)
	}
	return string(encoded), nil
}

func isNull(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != ""
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case float64:
		return v != 0 && !math.IsNaN(v)
	case *big.Int:
		return v.Sign() != 0
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	default:
		return true
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}
	if number, ok := numfmt.Format(value); ok {
		return number
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Func {
		if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
			return fn.Name()
		}
	}
	return fmt.Sprint(value)
}

func encodeStructured(value any, hint Hint) (string, error) {
	if hint == Set {
		if members, ok := setMembers(value); ok {
			value = members
		}
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// setMembers turns map[K]struct{} and map[K]bool into a sorted member list.
func setMembers(value any) ([]any, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	elem := rv.Type().Elem()
	isFlag := elem.Kind() == reflect.Bool
	isEmpty := elem.Kind() == reflect.Struct && elem.NumField() == 0
	if !isFlag && !isEmpty {
		return nil, false
	}

	members := make([]any, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		if isFlag && !iter.Value().Bool() {
			continue
		}
		members = append(members, iter.Key().Interface())
	}
	sort.Slice(members, func(i, j int) bool {
		return fmt.Sprint(members[i]) < fmt.Sprint(members[j])
	})
	return members, true
}

func decodeStructured(raw string, hint Hint) (any, error) {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %s attribute is not JSON: %v", ErrMalformed, hint, err)
	}

	switch hint {
	case Map:
		if _, ok := decoded.(map[string]any); !ok {
			return nil, fmt.Errorf("%w: map attribute must be a JSON object", ErrMalformed)
		}
	case Array:
		if _, ok := decoded.([]any); !ok {
			return nil, fmt.Errorf("%w: array attribute must be a JSON array", ErrMalformed)
		}
	case Set:
		items, ok := decoded.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: set attribute must be a JSON array", ErrMalformed)
		}
		return uniqueMembers(items), nil
	}
	return decoded, nil
}

func uniqueMembers(items []any) []any {
	out := make([]any, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key, err := json.Marshal(item)
		if err != nil {
			out = append(out, item)
			continue
		}
		if _, exists := seen[string(key)]; exists {
			continue
		}
		seen[string(key)] = struct{}{}
		out = append(out, item)
	}
	return out
}
