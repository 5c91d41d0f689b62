package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Error is an API failure carrying the HTTP status to report and optional
// structured details. It is constructed where the failure is detected and
// consumed exactly once by the rendering boundary (Write).
type Error struct {
	Message    string
	StatusCode int
	Details    any
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs an Error with the given message and HTTP status.
func New(message string, statusCode int) *Error {
	return &Error{Message: message, StatusCode: statusCode}
}

// Newf constructs an Error with a formatted message.
func Newf(statusCode int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), StatusCode: statusCode}
}

// WithDetails returns a copy of e carrying the given details payload.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Message: e.Message, StatusCode: e.StatusCode, Details: details}
}

// envelope is the uniform error response body: {"error":{"code","message","details?"}}.
type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Write renders err as the uniform error envelope and logs it. This is the
// single error boundary: callers must not log and re-render the same error.
// Errors that are not *Error are reported as a generic 500 whose detail text
// is included only outside production; explicitly attached Details are part
// of the API surface and are rendered in every environment.
func Write(w http.ResponseWriter, r *http.Request, logger *slog.Logger, production bool, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Message: "internal server error", StatusCode: http.StatusInternalServerError}
		if !production {
			apiErr.Details = err.Error()
		}
	}

	statusCode := apiErr.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("server error",
			"status", statusCode,
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		logger.Warn("client error",
			"status", statusCode,
			"path", r.URL.Path,
			"error", err,
		)
	}

	resp := envelope{Error: body{Code: statusCode, Message: apiErr.Message, Details: apiErr.Details}}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		logger.Error("failed to write error response", "error", encodeErr)
	}
}

// NotFoundHandler responds to unmatched routes with a 404 in the uniform envelope.
func NotFoundHandler(logger *slog.Logger, production bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Write(w, r, logger, production, New("requested endpoint not found", http.StatusNotFound))
	}
}
