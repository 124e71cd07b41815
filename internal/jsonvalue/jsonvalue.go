// Package jsonvalue decodes JSON text into the host values understood by
// package types: integers become int64, other numbers float64, arrays
// []any and objects map[string]any.
package jsonvalue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned for malformed input.
var ErrInvalidJSON = errors.New("invalid JSON")

// Decode decodes a single JSON value.
func Decode(text string) (any, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidJSON)
	}
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJSON, text)
	}
	return convert(gjson.Parse(text)), nil
}

func convert(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.String:
		return r.Str
	case gjson.Number:
		return number(r)
	}

	if r.IsArray() {
		out := make([]any, 0)
		r.ForEach(func(_, v gjson.Result) bool {
			out = append(out, convert(v))
			return true
		})
		return out
	}
	out := make(map[string]any)
	r.ForEach(func(k, v gjson.Result) bool {
		out[k.Str] = convert(v)
		return true
	})
	return out
}

// number keeps integral literals exact; anything with a fraction, an
// exponent or out of int64 range is a float64.
func number(r gjson.Result) any {
	if !strings.ContainsAny(r.Raw, ".eE") {
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
	}
	return r.Num
}

// ForJSON rewrites arrays with non-string keys into objects so that v can
// be passed to encoding/json.
func ForJSON(v any) any {
	switch v := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[cast.ToString(k)] = ForJSON(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = ForJSON(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = ForJSON(e)
		}
		return out
	default:
		return v
	}
}
