package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// WriteJson encodes data as the JSON body with the given status.
func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data) //struct to json
}

// Success writes data as-is; the storefront client expects bare payloads.
func Success(w http.ResponseWriter, statusCode int, data any) {
	if err := WriteJson(w, statusCode, data); err != nil {
		slog.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var errorResponse ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		errorResponse = ErrorResponse{
			Code:  appErr.Code,
			Error: appErr.Message,
		}

		if appErr.Detail != "" {
			errorResponse.Details = []string{appErr.Detail}
		}

	} else {

		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Code:  errors.ErrCodeInternal,
			Error: "An unexpected error occurred",
		}

	}

	if err := WriteJson(w, statusCode, errorResponse); err != nil {
		slog.Error("Failed to encode error response", slog.String("error", err.Error()))
	}
}

// package sends the list of errors
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	var errMsgs []string

	for _, err := range errs {

		var message string

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field %s is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", err.Field())
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", err.Field(), err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)

	}

	if err := WriteJson(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid input data",
		Code:    errors.ErrCodeValidation,
		Details: errMsgs,
	}); err != nil {
		slog.Error("Failed to encode validation response", slog.String("error", err.Error()))
	}
}
