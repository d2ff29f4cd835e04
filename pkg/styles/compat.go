package styles

import (
	"fmt"
	"strings"
)

// CompatibleStyle downgrades a compiled StyleSheet to a trusted fragment when
// the target cannot adopt constructed stylesheets. Fragments and supported
// targets pass through untouched.
func CompatibleStyle(value Value, constructable bool) Value {
	if constructable {
		return value
	}
	sheet, ok := value.(*StyleSheet)
	if !ok || sheet == nil {
		return value
	}

	var b strings.Builder
	for _, rule := range sheet.rules {
		b.WriteString(rule.CSSText())
	}
	return UnsafeCSS(b.String())
}

// Flatten walks nested style arrays ([]Value, []any, or single values) into a
// flat list in document order. Fragments are validated on the way.
func Flatten(values ...any) ([]Value, error) {
	var out []Value
	if err := flattenInto(&out, values); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out *[]Value, values []any) error {
	for idx, raw := range values {
		switch v := raw.(type) {
		case nil:
			continue
		case *CSSString:
			if !v.sanctioned() {
				return fmt.Errorf("styles: flatten value %d: %w", idx, ErrConstruction)
			}
			*out = append(*out, v)
		case *StyleSheet:
			if v != nil {
				*out = append(*out, v)
			}
		case []Value:
			nested := make([]any, len(v))
			for i, item := range v {
				nested[i] = item
			}
			if err := flattenInto(out, nested); err != nil {
				return err
			}
		case []*CSSString:
			nested := make([]any, len(v))
			for i, item := range v {
				nested[i] = item
			}
			if err := flattenInto(out, nested); err != nil {
				return err
			}
		case []any:
			if err := flattenInto(out, v); err != nil {
				return err
			}
		default:
			return fmt.Errorf("styles: flatten value %d: unsupported %T: %w", idx, raw, ErrComposition)
		}
	}
	return nil
}
