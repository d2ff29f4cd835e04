// Package numfmt formats and parses numbers the way DOM attribute and CSS text
// expect them: shortest round-tripping decimals, exponent notation only for
// very large or very small magnitudes, and lenient parsing that yields NaN
// instead of an error.
package numfmt

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// Format renders numeric Go values. The boolean is false when v is not a
// number; bool is deliberately not treated as numeric.
func Format(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return FormatFloat(float64(n), 32), true
	case float64:
		return FormatFloat(n, 64), true
	case *big.Int:
		if n == nil {
			return "", false
		}
		return n.String(), true
	default:
		return formatKind(v)
	}
}

// formatKind covers named types whose underlying type is numeric.
func formatKind(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return FormatFloat(rv.Float(), 32), true
	case reflect.Float64:
		return FormatFloat(rv.Float(), 64), true
	default:
		return "", false
	}
}

// FormatFloat renders f with the shortest representation that round-trips
// at the given bit size. Magnitudes at or above 1e21 and below 1e-6 switch to
// exponent form ("1e+21", "1.5e-7").
func FormatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, bits))
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 > len(s) {
		return s
	}
	mantissa, sign, digits := s[:idx], s[idx+1], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}

// Parse converts attribute text into a float64. Surrounding whitespace is
// ignored, an empty string is zero, 0x/0o/0b prefixes select the radix and
// anything unparseable is NaN.
func Parse(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			if n, err := strconv.ParseUint(s, 0, 64); err == nil {
				return float64(n)
			}
			return math.NaN()
		}
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.ContainsRune(s, '_') {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}
