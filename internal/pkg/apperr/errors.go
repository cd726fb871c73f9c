package apperr

import "fmt"

// AppError carries an HTTP status alongside the caller-facing message. Tool
// handlers return it for failures that have a well-defined status; anything
// else falls into the generic 500 path at the router.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidation creates a 400 error for a missing or invalid parameter.
func NewValidation(msg string) *AppError {
	return &AppError{Status: 400, Message: msg}
}

// NewSessionRequired creates a 403 error for lead-scoped tools invoked
// without an active session.
func NewSessionRequired() *AppError {
	return &AppError{
		Status:  403,
		Message: "Nenhuma sessão ativa. Use kommo_start_session primeiro.",
	}
}

// NewNotFound creates a 404 error.
func NewNotFound(msg string) *AppError {
	return &AppError{Status: 404, Message: msg}
}

// NewNotFoundf creates a 404 error with a formatted message.
func NewNotFoundf(format string, args ...any) *AppError {
	return &AppError{Status: 404, Message: fmt.Sprintf(format, args...)}
}
