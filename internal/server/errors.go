package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/broady/valtype/internal/jsonvalue"
	"github.com/broady/valtype/types"
)

// Codes used only by the HTTP surface.
const (
	CodeInvalidArgument  types.ErrorCode = "invalid_argument"
	CodeNotFound         types.ErrorCode = "not_found"
	CodeMethodNotAllowed types.ErrorCode = "method_not_allowed"
	CodeCanceled         types.ErrorCode = "canceled"
	CodeDeadlineExceeded types.ErrorCode = "deadline_exceeded"
	CodeInternal         types.ErrorCode = "internal"
)

// HTTPStatus maps an error code to an HTTP status code.
func HTTPStatus(c types.ErrorCode) int {
	switch c {
	case CodeInvalidArgument,
		types.CodeInvalidDeclaration,
		types.CodeForbiddenMixedType,
		types.CodeInvalidUnion:
		return http.StatusBadRequest
	case types.CodeInvalidValueType,
		types.CodeInvalidValue,
		types.CodeUnionCastFailed:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case types.CodeUnsupportedType:
		return http.StatusNotImplemented
	case CodeCanceled:
		return 499 // Client Closed Request (Nginx standard)
	case CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// transformError maps an error to the envelope sent to clients.
func transformError(err error) *types.Error {
	if err == nil {
		return nil
	}

	var e *types.Error
	if errors.As(err, &e) {
		return e
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return types.NewError(CodeDeadlineExceeded, "request timeout")
	}
	if errors.Is(err, context.Canceled) {
		return types.NewError(CodeCanceled, "context canceled")
	}
	if errors.Is(err, jsonvalue.ErrInvalidJSON) {
		return types.NewError(CodeInvalidArgument, "value: "+err.Error())
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &types.Error{
			Code:    CodeInvalidArgument,
			Message: strings.Join(messages, "; "),
			Details: details,
		}
	}

	return types.NewError(CodeInternal, err.Error())
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

type response struct {
	Result any `json:"result"`
}

type errorResponse struct {
	Error *types.Error `json:"error"`
}

func writeResult(w http.ResponseWriter, result any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{Result: result}); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, err *types.Error, logger *slog.Logger) {
	if len(err.Details) > 0 {
		err = &types.Error{Code: err.Code, Message: err.Message, Details: jsonvalue.ForJSON(err.Details).(map[string]any)}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(err.Code))
	if encErr := json.NewEncoder(w).Encode(errorResponse{Error: err}); encErr != nil {
		// Headers already sent, nothing we can do. Log for debugging.
		logger.Error("failed to encode error response",
			slog.String("code", string(err.Code)),
			slog.String("message", err.Message),
			slog.Any("error", encErr))
	}
}
