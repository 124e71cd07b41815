package types

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	integerPattern = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	numericPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// KindOf returns the name of the runtime kind of v, as used in error messages.
func KindOf(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	case float32, float64:
		return "float"
	}
	if _, ok := ToInteger(v); ok {
		return "int"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return "array"
	}
	return reflect.TypeOf(v).String()
}

// ToInteger returns v as an int64 when v is of any Go integer kind.
func ToInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// ToFloat returns v as a float64 when v is of a Go float kind.
func ToFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	}
	return 0, false
}

// IsInteger reports whether v belongs to the int kind.
func IsInteger(v any) bool {
	_, ok := ToInteger(v)
	return ok
}

// IsFloat reports whether v belongs to the float kind.
func IsFloat(v any) bool {
	_, ok := ToFloat(v)
	return ok
}

// IsString reports whether v belongs to the string kind.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsBool reports whether v belongs to the bool kind.
func IsBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// IntegerEquals reports whether v is an integer strictly equal to n.
func IntegerEquals(v any, n int64) bool {
	i, ok := ToInteger(v)
	return ok && i == n
}

// FloatEquals reports whether v is a float strictly equal to f.
func FloatEquals(v any, f float64) bool {
	x, ok := ToFloat(v)
	return ok && x == f
}

// CanCastInteger reports whether v passes the integer filter.
// Booleans never do, even though they have an obvious numeric reading.
func CanCastInteger(v any) bool {
	_, ok := filterInteger(v)
	return ok
}

func filterInteger(v any) (any, bool) {
	if _, ok := v.(bool); ok {
		return nil, false
	}
	if i, ok := ToInteger(v); ok {
		return i, true
	}
	if f, ok := ToFloat(v); ok {
		if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, false
		}
		return f, true
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if !integerPattern.MatchString(s) {
			return nil, false
		}
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return nil, false
		}
		return strings.TrimPrefix(s, "+"), true
	}
	return nil, false
}

// CastInteger converts v to an int64 through the integer filter.
func CastInteger(v any) (int64, bool) {
	filtered, ok := filterInteger(v)
	if !ok {
		return 0, false
	}
	i, err := cast.ToInt64E(filtered)
	if err != nil {
		return 0, false
	}
	return i, true
}

// CanCastFloat reports whether v passes the numeric filter.
func CanCastFloat(v any) bool {
	_, ok := filterFloat(v)
	return ok
}

func filterFloat(v any) (any, bool) {
	if _, ok := v.(bool); ok {
		return nil, false
	}
	if i, ok := ToInteger(v); ok {
		return i, true
	}
	if f, ok := ToFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if !numericPattern.MatchString(s) {
			return nil, false
		}
		// Out of range strings such as 1e999 are not numbers.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	return nil, false
}

// CastFloat converts v to a float64 through the numeric filter.
func CastFloat(v any) (float64, bool) {
	filtered, ok := filterFloat(v)
	if !ok {
		return 0, false
	}
	f, err := cast.ToFloat64E(filtered)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CanCastString reports whether v is a string, a number, or a fmt.Stringer.
func CanCastString(v any) bool {
	switch v.(type) {
	case nil, bool:
		return false
	case string, fmt.Stringer:
		return true
	}
	return IsInteger(v) || IsFloat(v)
}

// CastString converts v to a string.
func CastString(v any) (string, bool) {
	if !CanCastString(v) {
		return "", false
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), true
	}
	if i, ok := ToInteger(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// CanCastBool reports whether v is a bool, the integers 0 or 1, or one of
// the strings "0", "1", "true" and "false" in any case.
func CanCastBool(v any) bool {
	if _, ok := v.(bool); ok {
		return true
	}
	if i, ok := ToInteger(v); ok {
		return i == 0 || i == 1
	}
	if s, ok := v.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "0", "1", "true", "false":
			return true
		}
	}
	return false
}

// CastBool converts v to a bool.
func CastBool(v any) (bool, bool) {
	if !CanCastBool(v) {
		return false, false
	}
	if i, ok := ToInteger(v); ok {
		return i == 1, true
	}
	if s, ok := v.(string); ok {
		v = strings.ToLower(strings.TrimSpace(s))
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// render formats a scalar value for error messages.
func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// formatFloat renders f so that it never reads as an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
