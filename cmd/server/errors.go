package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Ko-stant/robot-path-service/internal/geometry"
	"github.com/Ko-stant/robot-path-service/internal/store"
)

var (
	ErrTooManyCommands  = errors.New("too many commands")
	ErrMalformedRequest = errors.New("malformed request")
	ErrBodyTooLarge     = errors.New("request body too large")
)

// APIError is what the HTTP layer reports for a failed request
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// toAPIError maps an error from the engine or store to a status and code
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	status, code := http.StatusInternalServerError, "InternalError"
	switch {
	case errors.Is(err, geometry.ErrInvalidDirection):
		status, code = http.StatusBadRequest, "InvalidDirection"
	case errors.Is(err, geometry.ErrInvalidStep):
		status, code = http.StatusBadRequest, "InvalidStep"
	case errors.Is(err, geometry.ErrOutOfBounds):
		status, code = http.StatusBadRequest, "OutOfBounds"
	case errors.Is(err, ErrMalformedRequest):
		status, code = http.StatusBadRequest, "MalformedRequest"
	case errors.Is(err, ErrTooManyCommands):
		status, code = http.StatusRequestEntityTooLarge, "TooManyCommands"
	case errors.Is(err, ErrBodyTooLarge):
		status, code = http.StatusRequestEntityTooLarge, "BodyTooLarge"
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, "NotFound"
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return &APIError{Status: status, Code: code, Message: msg}
}
