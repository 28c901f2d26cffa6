package auragold

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// this file contains the best-effort conversions of decoded JSON values.
// Values come from encoding/json decoding into 'any', so objects are
// map[string]any, arrays are []any, and numbers are float64 or json.Number
// depending on the decoder.
// None of these functions panic: malformed input is reported as absent.

// AsString returns v if it is a string. There is no coercion from other types.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsNumber returns v as a finite float64.
//
// Numeric types and json.Number are accepted when finite. A string is parsed
// as a number when it is not blank, to tolerate values that went through a
// text-based format.
func AsNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return parseFinite(n.String())
	case string:
		return parseFinite(n)
	default:
		return 0, false
	}
	return f, isFinite(f)
}

// AsObject returns v if it is a JSON object. Arrays, null and primitives are absent.
func AsObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// AsArray returns v if it is a JSON array.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// asInt returns v as an integer, truncating any fractional part.
// Integer text is parsed exactly, other values go through float64.
// Values outside the int64 range are absent.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case json.Number:
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	}
	f, ok := AsNumber(v)
	if !ok {
		return 0, false
	}
	f = math.Trunc(f)
	// 2^63 is exactly representable, anything at or above overflows.
	if f >= math.Exp2(63) || f < -math.Exp2(63) {
		return 0, false
	}
	return int64(f), true
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, isFinite(f)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
