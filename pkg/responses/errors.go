package responses

import (
	"errors"
	"fmt"
)

// Error codes, grouped by failure class.
const (
	CodeSuccess       = 0
	CodeInternalError = 5000000
	CodeBadRequest    = 4000000 // malformed request / wrong field count
	CodeUnauthorized  = 4010000 // no session identity
	CodeForbidden     = 4030000 // caller lacks owner/member/assignee rights
	CodeNotFound      = 4040000
	CodeConflict      = 4090000
	CodeDatabaseError = 5001000
)

// AppError carries an error class code alongside the user-facing message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an error with a code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAppError extracts an *AppError from err, or nil.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Predefined errors.
var (
	ErrNotLoggedIn    = New(CodeUnauthorized, "Not logged in")
	ErrNotAuthorized  = New(CodeForbidden, "Not authorized")
	ErrRecordNotFound = New(CodeNotFound, "Record not found")
	ErrUserNotFound   = New(CodeNotFound, "User not found")
	ErrRecordExists   = New(CodeConflict, "Record already exists")
	ErrDatabaseError  = New(CodeDatabaseError, "Database error")
)
