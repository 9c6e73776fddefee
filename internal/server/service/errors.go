package service

import "fmt"

// Error codes surfaced to the presentation layer. Every rejection is
// terminal for that attempt; nothing here is retried automatically.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeNotFound       = "NOT_FOUND"
	CodeNotStarted     = "NOT_STARTED"
	CodeEnded          = "ENDED"
	CodeAlreadyVoted   = "ALREADY_VOTED"
	CodeNotImplemented = "NOT_IMPLEMENTED"
	CodeDBInsert       = "DB_INSERT_FAILED"
	CodeInternal       = "INTERNAL_ERROR"
)

// Error is a typed domain error with a stable machine-readable code
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func validationError(format string, args ...interface{}) *Error {
	return newError(CodeValidation, fmt.Sprintf(format, args...))
}
