package types

import (
	"errors"
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeForbiddenMixedType     ErrorCode = "forbidden_mixed_type"
	CodeInvalidUnion           ErrorCode = "invalid_union"
	CodeInvalidValueType       ErrorCode = "invalid_value_type"
	CodeInvalidValue           ErrorCode = "invalid_value"
	CodeUnionCastFailed        ErrorCode = "union_cast_failed"
	CodeUnhandledSpecification ErrorCode = "unhandled_specification"
	CodeUnsupportedType        ErrorCode = "unsupported_type"
	CodeInvalidDeclaration     ErrorCode = "invalid_declaration"
	CodeInvalidArtifact        ErrorCode = "invalid_artifact"
	CodeInvalidConfig          ErrorCode = "invalid_config"
)

// Error is the error returned by every operation of the algebra.
// Callers match on Code; Message is meant for humans.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying failures, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a new error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// IsCode reports whether err, or any error it wraps, is an *Error with code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// ErrForbiddenMixedType is returned when mixed is used as a union member.
var ErrForbiddenMixedType = NewError(CodeForbiddenMixedType,
	"Type `mixed` can only be used as a standalone type and not as a union member.")

// InvalidValueType reports a value whose kind cannot be converted to t.
func InvalidValueType(v any, t Type) *Error {
	var msg string
	switch t.Kind() {
	case KindIntegerValue:
		msg = fmt.Sprintf("Value of type `%s` does not match integer value `%s`.", KindOf(v), t)
	case KindStringValue:
		msg = fmt.Sprintf("Value of type `%s` does not match string value `%s`.", KindOf(v), t.(*StringValueType).Value())
	case KindFloatValue:
		msg = fmt.Sprintf("Value of type `%s` does not match float value `%s`.", KindOf(v), t)
	case KindBoolValue:
		msg = fmt.Sprintf("Value of type `%s` does not match boolean value `%s`.", KindOf(v), t)
	default:
		msg = fmt.Sprintf("Value of type `%s` cannot be cast to `%s`.", KindOf(v), t)
	}
	return NewError(CodeInvalidValueType, msg).
		WithDetail("value_kind", KindOf(v)).
		WithDetail("expected", t.String())
}

// InvalidValue reports a converted value that differs from the expected literal.
func InvalidValue(converted any, expected Type) *Error {
	expectedValue := expected.String()
	if s, ok := expected.(*StringValueType); ok {
		expectedValue = s.Value()
	}
	return Errorf(CodeInvalidValue, "Values `%s` and `%s` do not match.", render(converted), expectedValue).
		WithDetail("value", converted).
		WithDetail("expected", expected.String())
}

// UnionCastFailed aggregates the failure of every member of the union
// rendered as expected.
func UnionCastFailed(v any, expected string, errs []error) *Error {
	merr := multierror.Append(nil, errs...)
	merr.ErrorFormat = func(es []error) string {
		msgs := make([]string, len(es))
		for i, e := range es {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, " ")
	}
	e := Errorf(CodeUnionCastFailed, "Value of type `%s` could not be cast to any member of `%s`: %s",
		KindOf(v), expected, merr.Error()).
		WithDetail("value_kind", KindOf(v)).
		WithDetail("expected", expected)
	e.cause = merr.ErrorOrNil()
	return e
}
