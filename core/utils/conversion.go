package utils

import (
	"math"
	"reflect"
	"strings"
)

// ToFloat converts numeric values to float64.
// The second return value is false when val is not a number.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint8:
		return float64(v), true
	default:
		return 0, false
	}
}

// IsZeroNumber reports whether val is a number equal to zero.
func IsZeroNumber(val any) bool {
	f, ok := ToFloat(val)
	return ok && f == 0
}

// IsTruthy applies loose truthiness to a dynamic value.
// nil, false, "", numeric zero and NaN are falsy; everything else,
// including empty maps and slices, is truthy.
func IsTruthy(val any) bool {
	if val == nil {
		return false
	}
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v != ""
	}
	if f, ok := ToFloat(val); ok {
		return f != 0 && !math.IsNaN(f)
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		s := string(v)
		return s == "1" || strings.ToLower(s) == "true"
	}
	if f, ok := ToFloat(val); ok {
		return f == 1
	}
	return false
}
