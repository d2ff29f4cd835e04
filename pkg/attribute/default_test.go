package attribute_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-reactive/pkg/attribute"
)

func TestDefaultToAttribute_NullValuesRemoveAttribute(t *testing.T) {
	var nilSlice []string
	var nilMap map[string]any
	var nilBig *big.Int

	for _, hint := range append(attribute.Hints(), attribute.Unknown, attribute.Hint(99)) {
		for _, value := range []any{nil, "", nilSlice, nilMap, nilBig} {
			got, err := attribute.Default.ToAttribute(value, hint)
			if err != nil {
				t.Fatalf("ToAttribute(%#v, %s): unexpected error %v", value, hint, err)
			}
			if got != attribute.Absent {
				t.Fatalf("ToAttribute(%#v, %s) = %+v, want removal", value, hint, got)
			}
		}
	}
}

func TestDefaultToAttribute(t *testing.T) {
	cases := []struct {
		name  string
		value any
		hint  attribute.Hint
		want  attribute.Attr
	}{
		{name: "boolean true", value: true, hint: attribute.Boolean, want: attribute.Present(attribute.BooleanMarker)},
		{name: "boolean false", value: false, hint: attribute.Boolean, want: attribute.Absent},
		{name: "boolean truthy number", value: 3, hint: attribute.Boolean, want: attribute.Present(attribute.BooleanMarker)},
		{name: "boolean zero", value: 0, hint: attribute.Boolean, want: attribute.Absent},
		{name: "number int", value: 42, hint: attribute.Number, want: attribute.Present("42")},
		{name: "number float", value: 2.5, hint: attribute.Number, want: attribute.Present("2.5")},
		{name: "number nan", value: math.NaN(), hint: attribute.Number, want: attribute.Present("NaN")},
		{name: "number from string", value: "7", hint: attribute.Number, want: attribute.Present("7")},
		{name: "bigint", value: big.NewInt(12345678901234), hint: attribute.BigInt, want: attribute.Present("12345678901234")},
		{name: "symbol stringer", value: symbol("token"), hint: attribute.Symbol, want: attribute.Present("Symbol(token)")},
		{name: "string", value: "primary", hint: attribute.String, want: attribute.Present("primary")},
		{name: "object", value: map[string]any{"a": 1}, hint: attribute.Object, want: attribute.Present(`{"a":1}`)},
		{name: "array", value: []int{1, 2}, hint: attribute.Array, want: attribute.Present(`[1,2]`)},
		{name: "map", value: map[string]string{"k": "v"}, hint: attribute.Map, want: attribute.Present(`{"k":"v"}`)},
		{name: "set from struct map", value: map[string]struct{}{"b": {}, "a": {}}, hint: attribute.Set, want: attribute.Present(`["a","b"]`)},
		{name: "set from bool map", value: map[string]bool{"b": true, "a": false, "c": true}, hint: attribute.Set, want: attribute.Present(`["b","c"]`)},
		{name: "set from slice", value: []string{"x"}, hint: attribute.Set, want: attribute.Present(`["x"]`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := attribute.Default.ToAttribute(tc.value, tc.hint)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("attribute mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultToAttribute_FunctionHintUsesFunctionName(t *testing.T) {
	got, err := attribute.Default.ToAttribute(TestDefaultToAttribute, attribute.Function)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Set || got.Value == "" {
		t.Fatalf("expected function name, got %+v", got)
	}
}

func TestDefaultToAttribute_UnknownHintFails(t *testing.T) {
	for _, value := range []any{1, true, "x", map[string]any{}} {
		for _, hint := range []attribute.Hint{attribute.Unknown, attribute.Hint(42)} {
			_, err := attribute.Default.ToAttribute(value, hint)
			if !errors.Is(err, attribute.ErrUnsupportedType) {
				t.Fatalf("ToAttribute(%#v, %s): expected ErrUnsupportedType, got %v", value, hint, err)
			}
			var typed *attribute.UnsupportedTypeError
			if !errors.As(err, &typed) || typed.Hint != hint || typed.Direction != "to" {
				t.Fatalf("expected typed error naming hint %s, got %#v", hint, err)
			}
		}
	}
}

func TestDefaultToAttribute_UnencodableStructuredValue(t *testing.T) {
	if _, err := attribute.Default.ToAttribute(map[string]any{"c": make(chan int)}, attribute.Object); err == nil {
		t.Fatalf("expected JSON encoding failure to surface")
	}
}

func TestDefaultFromAttribute_EmptyDecodesToNil(t *testing.T) {
	for _, hint := range append(attribute.Hints(), attribute.Unknown) {
		for _, attr := range []attribute.Attr{attribute.Absent, attribute.Present("")} {
			got, err := attribute.Default.FromAttribute(attr, hint)
			if err != nil {
				t.Fatalf("FromAttribute(%+v, %s): unexpected error %v", attr, hint, err)
			}
			if got != nil {
				t.Fatalf("FromAttribute(%+v, %s) = %#v, want nil", attr, hint, got)
			}
		}
	}
}

func TestDefaultFromAttribute(t *testing.T) {
	cases := []struct {
		name string
		attr attribute.Attr
		hint attribute.Hint
		want any
	}{
		{name: "boolean marker", attr: attribute.Present(attribute.BooleanMarker), hint: attribute.Boolean, want: true},
		{name: "boolean any text", attr: attribute.Present("false"), hint: attribute.Boolean, want: true},
		{name: "number", attr: attribute.Present("42"), hint: attribute.Number, want: float64(42)},
		{name: "number fraction", attr: attribute.Present(" 1.5 "), hint: attribute.Number, want: 1.5},
		{name: "string", attr: attribute.Present("primary"), hint: attribute.String, want: "primary"},
		{name: "object", attr: attribute.Present(`{"a":1}`), hint: attribute.Object, want: map[string]any{"a": float64(1)}},
		{name: "array", attr: attribute.Present(`[1,"b"]`), hint: attribute.Array, want: []any{float64(1), "b"}},
		{name: "map", attr: attribute.Present(`{"k":"v"}`), hint: attribute.Map, want: map[string]any{"k": "v"}},
		{name: "set dedupes", attr: attribute.Present(`["a","b","a"]`), hint: attribute.Set, want: []any{"a", "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := attribute.Default.FromAttribute(tc.attr, tc.hint)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDefaultFromAttribute_NumberGarbageIsNaN(t *testing.T) {
	got, err := attribute.Default.FromAttribute(attribute.Present("wide"), attribute.Number)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f, ok := got.(float64); !ok || !math.IsNaN(f) {
		t.Fatalf("expected NaN, got %#v", got)
	}
}

func TestDefaultFromAttribute_BigInt(t *testing.T) {
	got, err := attribute.Default.FromAttribute(attribute.Present("9007199254740993"), attribute.BigInt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := got.(*big.Int)
	if !ok || n.String() != "9007199254740993" {
		t.Fatalf("unexpected bigint %#v", got)
	}
	if _, err := attribute.Default.FromAttribute(attribute.Present("1.5"), attribute.BigInt); !errors.Is(err, attribute.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDefaultFromAttribute_MalformedStructured(t *testing.T) {
	cases := []struct {
		raw  string
		hint attribute.Hint
	}{
		{raw: "{oops", hint: attribute.Object},
		{raw: `{"a":1}`, hint: attribute.Array},
		{raw: `[1]`, hint: attribute.Map},
		{raw: `"x"`, hint: attribute.Set},
	}
	for _, tc := range cases {
		if _, err := attribute.Default.FromAttribute(attribute.Present(tc.raw), tc.hint); !errors.Is(err, attribute.ErrMalformed) {
			t.Fatalf("FromAttribute(%q, %s): expected ErrMalformed, got %v", tc.raw, tc.hint, err)
		}
	}
}

func TestDefaultFromAttribute_UnsupportedHints(t *testing.T) {
	for _, hint := range []attribute.Hint{attribute.Symbol, attribute.Function, attribute.Unknown, attribute.Hint(77)} {
		_, err := attribute.Default.FromAttribute(attribute.Present("x"), hint)
		var typed *attribute.UnsupportedTypeError
		if !errors.As(err, &typed) || typed.Direction != "from" {
			t.Fatalf("FromAttribute(x, %s): expected UnsupportedTypeError, got %v", hint, err)
		}
	}
}

func TestDefault_RoundTripsStructuredValues(t *testing.T) {
	value := map[string]any{"items": []any{"a", "b"}, "count": float64(2)}
	attr, err := attribute.Default.ToAttribute(value, attribute.Object)
	if err != nil {
		t.Fatalf("to attribute: %v", err)
	}
	back, err := attribute.Default.FromAttribute(attr, attribute.Object)
	if err != nil {
		t.Fatalf("from attribute: %v", err)
	}
	if diff := cmp.Diff(value, back); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLegacy_ReEncodesStructuredAttributes(t *testing.T) {
	got, err := attribute.Legacy.FromAttribute(attribute.Present(`{"a":1}`), attribute.Object)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `"{\"a\":1}"` {
		t.Fatalf("unexpected legacy value %#v", got)
	}

	number, err := attribute.Legacy.FromAttribute(attribute.Present("3"), attribute.Number)
	if err != nil || number != float64(3) {
		t.Fatalf("expected scalar hints to match Default, got %#v (%v)", number, err)
	}
}

type symbol string

func (s symbol) String() string { return "Symbol(" + string(s) + ")" }
