package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// Error carries one of the error kinds above together with a client-facing message.
type Error struct {
	Err     error
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails attaches structured context to the error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

// NotFound reports that the resource with the given id does not exist.
func NotFound(resource string, id int64) *Error {
	return (&Error{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id: %d", resource, id),
	}).WithDetails(map[string]interface{}{"id": id})
}

func Conflict(message string) *Error {
	return &Error{Err: ErrConflict, Message: message}
}

func Validation(message string) *Error {
	return &Error{Err: ErrValidation, Message: message}
}
