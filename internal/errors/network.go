package errors

import (
	"context"
	"errors"
	"net"
)

// MapNetworkError maps transport-level failures from the HTTP client to AppError
// instances. The operation string names what was being contacted, e.g. "the Moodle
// login page", and is woven into the user-facing message.
//
// It distinguishes:
// - context cancellation → Canceled
// - context deadlines and net.Error timeouts → Timeout
// - everything else → Transport
//
// Errors that already carry an AppError classification are returned unchanged.
// A nil error maps to nil.
func MapNetworkError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "The request to " + operation + " was canceled.",
			Cause:   err,
		}
	}

	if isTimeoutError(err) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Timed out while contacting " + operation + ". Check the network and try again.",
			Cause:   err,
		}
	}

	return &AppError{
		Code:    ErrCodeTransport,
		Message: "Could not reach " + operation + ".",
		Cause:   err,
	}
}

// IsTransient reports whether an error looks like a transient network condition
// that is safe to retry for idempotent requests. Unexpected HTTP statuses and
// canceled contexts are not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if isTimeoutError(err) {
		return true
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		// Only transport classifications with an underlying cause are network-level;
		// a bare Transport error is a status-code failure and must not be retried.
		return appErr.Code == ErrCodeTimeout || (appErr.Code == ErrCodeTransport && appErr.Cause != nil)
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// isTimeoutError reports whether the error chain contains a deadline or timeout.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
