package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"taskapi/internal/api/shared"
	"taskapi/internal/apierr"
	"taskapi/internal/store"
)

// Classify maps any raised failure to the (statusCode, status, message)
// triple used in error responses. It is the single place that inspects
// storage failure shapes; everything it cannot recognize becomes a generic
// 500 so no internal detail ever reaches a client.
func Classify(err error) (statusCode int, status string, message string) {
	statusCode = http.StatusInternalServerError
	status = apierr.StatusError
	message = "Server Error"

	var invalidID *store.InvalidIDError
	var duplicate *store.DuplicateError
	var validation *store.ValidationError
	var apiErr *apierr.Error

	switch {
	case errors.As(err, &invalidID):
		statusCode = http.StatusNotFound
		status = apierr.StatusFail
		message = fmt.Sprintf("Resource not found with id %s", invalidID.Value)

	case errors.As(err, &duplicate):
		statusCode = http.StatusBadRequest
		status = apierr.StatusFail
		message = fmt.Sprintf(
			"Duplicate field value entered for: %s. Please use another value.",
			duplicate.Field,
		)

	case errors.As(err, &validation):
		statusCode = http.StatusBadRequest
		status = apierr.StatusFail
		message = strings.Join(validation.Messages, ". ")

	case errors.As(err, &apiErr):
		statusCode = apiErr.StatusCode
		status = apiErr.Status
		message = apiErr.Message
	}

	// Guard against a misconfigured upstream ApiError carrying a nonsense
	// status code.
	if statusCode < 100 || statusCode > 599 {
		return http.StatusInternalServerError, apierr.StatusError, "Server Error"
	}

	return statusCode, status, message
}

// RespondWithError classifies the failure, logs the full error, and writes
// the uniform error body. Server-side failures log at ERROR, client-caused
// ones at DEBUG.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode, status, message := Classify(err)

	logAttrs := []slog.Attr{
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", statusCode),
		slog.String("user_message", message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if statusCode >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	shared.RespondWithJSON(w, r, statusCode, shared.ErrorResponse{
		Status:  status,
		Success: false,
		Error:   message,
	})
}
