package utils

import (
	"fmt"
	"net/http"
)

// FieldError describes one constraint violation of a request body.
type FieldError struct {
	ObjectName string `json:"objectName"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

// ErrorResponse is the JSON body rendered for failed requests.
type ErrorResponse struct {
	Status      int          `json:"status"`
	Title       string       `json:"title"`
	Message     string       `json:"message"`
	EntityName  string       `json:"entityName,omitempty"`
	ErrorKey    string       `json:"errorKey,omitempty"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// BadRequestAlert rejects a request with a stable error key the UI can translate.
type BadRequestAlert struct {
	Message    string
	EntityName string
	ErrorKey   string
}

// NewBadRequestAlert builds a BadRequestAlert.
func NewBadRequestAlert(message, entityName, errorKey string) *BadRequestAlert {
	return &BadRequestAlert{Message: message, EntityName: entityName, ErrorKey: errorKey}
}

func (e *BadRequestAlert) Error() string {
	return fmt.Sprintf("%s (%s.%s)", e.Message, e.EntityName, e.ErrorKey)
}

// Response renders the alert body.
func (e *BadRequestAlert) Response() ErrorResponse {
	return ErrorResponse{
		Status:     http.StatusBadRequest,
		Title:      e.Message,
		Message:    "error." + e.ErrorKey,
		EntityName: e.EntityName,
		ErrorKey:   e.ErrorKey,
	}
}

// ValidationFailed is the body for constraint violations on a request body.
func ValidationFailed(fieldErrors []FieldError) ErrorResponse {
	return ErrorResponse{
		Status:      http.StatusBadRequest,
		Title:       "Method argument not valid",
		Message:     "error.validation",
		FieldErrors: fieldErrors,
	}
}

// MalformedRequest is the body for requests that could not be decoded.
func MalformedRequest() ErrorResponse {
	return ErrorResponse{
		Status:  http.StatusBadRequest,
		Title:   "Bad Request",
		Message: "error.http.400",
	}
}

// InternalServerError is the body for unexpected failures. Details are only logged.
func InternalServerError() ErrorResponse {
	return ErrorResponse{
		Status:  http.StatusInternalServerError,
		Title:   "Internal Server Error",
		Message: "error.http.500",
	}
}
