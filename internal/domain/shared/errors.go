package shared

import "errors"

// Error codes forming the domain error taxonomy
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodePersistence = "PERSISTENCE_ERROR"
)

// DomainError represents a domain-level error.
// Message is safe to show to API callers; Cause carries internal detail.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError with the same code, so errors.Is(err, ErrConflict)
// works for every conflict regardless of message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError reports malformed or missing input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewNotFoundError reports a missing entity
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewConflictError reports a uniqueness violation
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewPersistenceError wraps an unexpected storage failure
func NewPersistenceError(message string, cause error) *DomainError {
	return &DomainError{
		Code:    CodePersistence,
		Message: message,
		Cause:   cause,
	}
}

// Sentinels for errors.Is checks
var (
	ErrValidation  = NewValidationError("Invalid input provided")
	ErrNotFound    = NewNotFoundError("Resource not found")
	ErrConflict    = NewConflictError("Resource already exists")
	ErrPersistence = NewPersistenceError("Storage operation failed", nil)
)

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
