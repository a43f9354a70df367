package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors. MessageCode references a
// translation catalog entry; the user-facing text is resolved at the dispatch
// boundary with the caller's locale.
type DomainError struct {
	Code        string
	MessageCode string
	StatusCode  int
	Details     map[string]any
	Err         error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.MessageCode)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, messageCode string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, MessageCode: messageCode, StatusCode: status, Details: details}
}

func NewValidationFailed(details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", "validation.FAILED", http.StatusBadRequest, details)
}

func NewNotFound(messageCode string) error {
	return NewDomainError("NOT_FOUND", messageCode, http.StatusNotFound, nil)
}

func NewUnauthorized(messageCode string) error {
	return NewDomainError("UNAUTHORIZED", messageCode, http.StatusUnauthorized, nil)
}

func NewConflict(messageCode string) error {
	return NewDomainError("CONFLICT", messageCode, http.StatusConflict, nil)
}

func NewRateLimited() error {
	return NewDomainError("RATE_LIMITED", "auth.RATE_LIMIT_EXCEEDED", http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:        "INTERNAL_ERROR",
		MessageCode: "errors.INTERNAL",
		StatusCode:  http.StatusInternalServerError,
		Err:         err,
	}
}

// ToDomainError converts generic errors to DomainError. Unknown errors map to
// INTERNAL_ERROR so their detail is logged rather than exposed to the caller.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:        "INTERNAL_ERROR",
		MessageCode: "errors.INTERNAL",
		StatusCode:  http.StatusInternalServerError,
		Err:         err,
	}
}
