package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode lets the error middleware pick the HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrMissingField, ErrInvalidFormat, ErrInvalidIdentifier, ErrInvalidInput:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrDuplicateValue, ErrIntegrity:
		return http.StatusConflict
	case ErrInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error codes
const (
	ErrMissingField ErrorCode = iota + 1000
	ErrInvalidFormat
	ErrInvalidIdentifier
	ErrInvalidInput
	ErrDuplicateValue
	ErrNotFound
	ErrIntegrity
	ErrPersistence
	ErrInvalidCredentials
)

var codeNames = map[ErrorCode]string{
	ErrMissingField:       "MISSING_FIELD",
	ErrInvalidFormat:      "INVALID_FORMAT",
	ErrInvalidIdentifier:  "INVALID_IDENTIFIER",
	ErrInvalidInput:       "INVALID_INPUT",
	ErrDuplicateValue:     "DUPLICATE_VALUE",
	ErrNotFound:           "NOT_FOUND",
	ErrIntegrity:          "INTEGRITY_ERROR",
	ErrPersistence:        "PERSISTENCE_ERROR",
	ErrInvalidCredentials: "INVALID_CREDENTIALS",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ERROR_%d", int(c))
}

func MissingField(field string) *AppError {
	return &AppError{
		Code:    ErrMissingField,
		Message: fmt.Sprintf("missing required field: %s", field),
		Field:   field,
	}
}

func InvalidFormat(field, expected string) *AppError {
	msg := fmt.Sprintf("invalid %s format", field)
	if expected != "" {
		msg = fmt.Sprintf("%s, use %s", msg, expected)
	}
	return &AppError{
		Code:    ErrInvalidFormat,
		Message: msg,
		Field:   field,
	}
}

func InvalidIdentifier(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidIdentifier,
		Message: message,
		Field:   "national_id",
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: message,
	}
}

func DuplicateValue(field string) *AppError {
	return &AppError{
		Code:    ErrDuplicateValue,
		Message: fmt.Sprintf("%s already registered", field),
		Field:   field,
	}
}

// NotFound reports a missing entity. key is the id or lookup value, and may be empty.
func NotFound(entity string, key interface{}) *AppError {
	msg := fmt.Sprintf("%s not found", entity)
	if key != nil && fmt.Sprint(key) != "" {
		msg = fmt.Sprintf("%s %v not found", entity, key)
	}
	return &AppError{
		Code:    ErrNotFound,
		Message: msg,
	}
}

func Integrity(err error) *AppError {
	return &AppError{
		Code:    ErrIntegrity,
		Message: "integrity constraint violated",
		Err:     err,
	}
}

func Persistence(operation string, err error) *AppError {
	return &AppError{
		Code:    ErrPersistence,
		Message: fmt.Sprintf("failed to %s", operation),
		Err:     err,
	}
}

func InvalidCredentials() *AppError {
	return &AppError{
		Code:    ErrInvalidCredentials,
		Message: "invalid credentials",
	}
}

// CodeOf returns the code of the first AppError in err's chain, or 0.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// As is a shortcut for errors.As on *AppError.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}
