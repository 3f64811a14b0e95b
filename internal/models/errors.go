package models

import (
	"errors"
	"net/http"
)

// ErrNotFound is the repository-level sentinel for missing documents.
var ErrNotFound = errors.New("not found")

// Error is a business error carrying the HTTP status the transport layer
// relays as-is. Messages are user-facing, in Portuguese.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) *Error {
	return &Error{Code: http.StatusUnprocessableEntity, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

func NewAuthError(message string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: message}
}
