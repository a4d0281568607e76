package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered in the "error.code" field of failed responses.
const (
	CodeValidation         = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeConflict           = "CONFLICT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// Sentinels for errors.Is. Matching is by code, so any DomainError carrying
// the same code matches regardless of message or details.
var (
	ErrMalformedInput     = &DomainError{Code: CodeValidation}
	ErrNotFound           = &DomainError{Code: CodeNotFound}
	ErrUnauthenticated    = &DomainError{Code: CodeUnauthenticated}
	ErrInvalidCredentials = &DomainError{Code: CodeInvalidCredentials}
	ErrInvalidToken       = &DomainError{Code: CodeInvalidToken}
	ErrDuplicateUsername  = &DomainError{Code: CodeDuplicateUsername}
	ErrConflict           = &DomainError{Code: CodeConflict}
	ErrStorageUnavailable = &DomainError{Code: CodeStorageUnavailable}
	ErrInternal           = &DomainError{Code: CodeInternal}
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUnauthenticated is the only error the authorization gate ever returns.
func NewUnauthenticated() error {
	return NewDomainError(CodeUnauthenticated, "could not validate credentials", http.StatusUnauthorized, nil)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "incorrect username or password", http.StatusUnauthorized, nil)
}

// NewInvalidToken wraps the internal cause so it can be logged; the message
// never mentions it.
func NewInvalidToken(cause error) error {
	return &DomainError{
		Code:       CodeInvalidToken,
		Message:    "invalid token",
		HTTPStatus: http.StatusUnauthorized,
		Err:        cause,
	}
}

func NewDuplicateUsername(username string) error {
	return NewDomainError(CodeDuplicateUsername, "username already registered", http.StatusConflict,
		map[string]any{"username": username})
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewStorageUnavailable(err error) error {
	return &DomainError{
		Code:       CodeStorageUnavailable,
		Message:    "storage unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Anything that is not
// already a DomainError becomes an internal error.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if domainErr.HTTPStatus == 0 {
			cp := *domainErr
			cp.HTTPStatus = http.StatusInternalServerError
			return &cp
		}
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError is ToDomainError typed as error.
func MapError(err error) error {
	return ToDomainError(err)
}
