package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeTransport indicates an HTTP exchange failed or returned an unexpected status.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeFieldNotFound indicates an expected element was missing from a fetched page.
	ErrCodeFieldNotFound ErrorCode = "field_not_found"
	// ErrCodeSAMLAssertionMissing indicates the identity provider response carried no SAML
	// assertion, which usually means the credentials were wrong.
	ErrCodeSAMLAssertionMissing ErrorCode = "saml_assertion_missing"
	// ErrCodeCheckInLinkNotFound indicates the attendance page had no open check-in link.
	ErrCodeCheckInLinkNotFound ErrorCode = "checkin_link_not_found"
	// ErrCodeRegistrationRejected indicates the server did not confirm the presence registration.
	ErrCodeRegistrationRejected ErrorCode = "registration_rejected"
	// ErrCodeMissingCredentials indicates no usable username/password pair was supplied.
	ErrCodeMissingCredentials ErrorCode = "missing_credentials"
	// ErrCodeTimeout indicates a network operation timed out.
	ErrCodeTimeout ErrorCode = "network_timeout"
	// ErrCodeCanceled indicates the run was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
//
// Message is written as standalone user-facing text: the outermost shell forwards it
// verbatim to notification sinks, so it must make sense without surrounding context.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the page element involved (optional, for field_not_found errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Transport creates a new Transport error.
func Transport(message string) *AppError {
	return &AppError{
		Code:    ErrCodeTransport,
		Message: message,
	}
}

// Transportf creates a new Transport error with formatted message.
func Transportf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeTransport,
		Message: fmt.Sprintf(format, args...),
	}
}

// FieldNotFound creates a new FieldNotFound error for a specific page element.
func FieldNotFound(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeFieldNotFound,
		Message: message,
		Field:   field,
	}
}

// FieldNotFoundf creates a new FieldNotFound error with formatted message.
func FieldNotFoundf(field, format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeFieldNotFound,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// SAMLAssertionMissing creates a new SAMLAssertionMissing error.
func SAMLAssertionMissing(message string) *AppError {
	return &AppError{
		Code:    ErrCodeSAMLAssertionMissing,
		Message: message,
	}
}

// CheckInLinkNotFound creates a new CheckInLinkNotFound error.
func CheckInLinkNotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeCheckInLinkNotFound,
		Message: message,
	}
}

// RegistrationRejected creates a new RegistrationRejected error.
func RegistrationRejected(message string) *AppError {
	return &AppError{
		Code:    ErrCodeRegistrationRejected,
		Message: message,
	}
}

// MissingCredentials creates a new MissingCredentials error.
func MissingCredentials(message string) *AppError {
	return &AppError{
		Code:    ErrCodeMissingCredentials,
		Message: message,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsFieldNotFound checks if an error is a FieldNotFound error.
func IsFieldNotFound(err error) bool {
	return isCode(err, ErrCodeFieldNotFound)
}

// IsSAMLAssertionMissing checks if an error is a SAMLAssertionMissing error.
func IsSAMLAssertionMissing(err error) bool {
	return isCode(err, ErrCodeSAMLAssertionMissing)
}

// IsCheckInLinkNotFound checks if an error is a CheckInLinkNotFound error.
func IsCheckInLinkNotFound(err error) bool {
	return isCode(err, ErrCodeCheckInLinkNotFound)
}

// IsRegistrationRejected checks if an error is a RegistrationRejected error.
func IsRegistrationRejected(err error) bool {
	return isCode(err, ErrCodeRegistrationRejected)
}

// IsMissingCredentials checks if an error is a MissingCredentials error.
func IsMissingCredentials(err error) bool {
	return isCode(err, ErrCodeMissingCredentials)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
