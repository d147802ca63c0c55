package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskapi/internal/apierr"
)

// validate is the shared validator instance for request schemas.
var validate = validator.New()

// checkRequest validates a request struct and, on failure, returns an
// ApiError(400) carrying every field violation joined by ", ".
func checkRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierr.New(http.StatusBadRequest, "Invalid request format")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, violationMessage(fe))
	}

	return apierr.New(http.StatusBadRequest, strings.Join(messages, ", "))
}

// violationMessage renders one field violation as a human-readable message.
func violationMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
