package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeCheckInLinkNotFound,
				Message: "Could not find the send status cell.",
			},
			want: "Could not find the send status cell.",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeTransport,
				Message: "Could not reach the Moodle login page",
				Cause:   errors.New("connection refused"),
			},
			want: "Could not reach the Moodle login page: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode ErrorCode
		wantMsg  string
	}{
		{
			name:     "Transport",
			err:      Transport("Failed to get login page"),
			wantCode: ErrCodeTransport,
			wantMsg:  "Failed to get login page",
		},
		{
			name:     "Transportf",
			err:      Transportf("%d Failed to get login page", 503),
			wantCode: ErrCodeTransport,
			wantMsg:  "503 Failed to get login page",
		},
		{
			name:     "SAMLAssertionMissing",
			err:      SAMLAssertionMissing("Are the credentials correct?"),
			wantCode: ErrCodeSAMLAssertionMissing,
			wantMsg:  "Are the credentials correct?",
		},
		{
			name:     "CheckInLinkNotFound",
			err:      CheckInLinkNotFound("No open check-in."),
			wantCode: ErrCodeCheckInLinkNotFound,
			wantMsg:  "No open check-in.",
		},
		{
			name:     "RegistrationRejected",
			err:      RegistrationRejected("Failed to register presence status."),
			wantCode: ErrCodeRegistrationRejected,
			wantMsg:  "Failed to register presence status.",
		},
		{
			name:     "MissingCredentials",
			err:      MissingCredentials("Missing Moodle credentials."),
			wantCode: ErrCodeMissingCredentials,
			wantMsg:  "Missing Moodle credentials.",
		},
		{
			name:     "Internal",
			err:      Internal("unexpected state"),
			wantCode: ErrCodeInternal,
			wantMsg:  "unexpected state",
		},
		{
			name:     "Internalf",
			err:      Internalf("unexpected state %q", "x"),
			wantCode: ErrCodeInternal,
			wantMsg:  `unexpected state "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %v, want %v", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestFieldNotFound(t *testing.T) {
	err := FieldNotFound("execution", `Could not find the "execution" field on the login page.`)
	if err.Code != ErrCodeFieldNotFound {
		t.Errorf("FieldNotFound().Code = %v, want %v", err.Code, ErrCodeFieldNotFound)
	}
	if err.Field != "execution" {
		t.Errorf("FieldNotFound().Field = %v, want %v", err.Field, "execution")
	}
	if GetField(err) != "execution" {
		t.Errorf("GetField() = %v, want %v", GetField(err), "execution")
	}
}

func TestFieldNotFoundf(t *testing.T) {
	err := FieldNotFoundf("RelayState", "Element %s introuvable", "RelayState")
	if err.Code != ErrCodeFieldNotFound {
		t.Errorf("FieldNotFoundf().Code = %v, want %v", err.Code, ErrCodeFieldNotFound)
	}
	if err.Message != "Element RelayState introuvable" {
		t.Errorf("FieldNotFoundf().Message = %v", err.Message)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, ErrCodeTransport, "Could not reach Moodle.")

	if err.Code != ErrCodeTransport {
		t.Errorf("Wrap().Code = %v, want %v", err.Code, ErrCodeTransport)
	}
	if !errors.Is(err, cause) {
		t.Error("Wrap() should preserve the cause for errors.Is")
	}
	if Wrap(nil, ErrCodeTransport, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("boom")
	err := Wrapf(cause, ErrCodeInternal, "step %d failed", 3)
	if err.Message != "step 3 failed" {
		t.Errorf("Wrapf().Message = %v, want %v", err.Message, "step 3 failed")
	}
	if Wrapf(nil, ErrCodeInternal, "ignored") != nil {
		t.Error("Wrapf(nil) should return nil")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"IsTransport on transport", Transport("x"), IsTransport, true},
		{"IsTransport on other code", CheckInLinkNotFound("x"), IsTransport, false},
		{"IsFieldNotFound", FieldNotFound("execution", "x"), IsFieldNotFound, true},
		{"IsSAMLAssertionMissing", SAMLAssertionMissing("x"), IsSAMLAssertionMissing, true},
		{"IsCheckInLinkNotFound", CheckInLinkNotFound("x"), IsCheckInLinkNotFound, true},
		{"IsRegistrationRejected", RegistrationRejected("x"), IsRegistrationRejected, true},
		{"IsMissingCredentials", MissingCredentials("x"), IsMissingCredentials, true},
		{"IsInternal", Internal("x"), IsInternal, true},
		{"nil error", nil, IsTransport, false},
		{"plain error", errors.New("x"), IsTransport, false},
		{"wrapped transport", fmt.Errorf("outer: %w", Transport("x")), IsTransport, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(RegistrationRejected("x")); got != ErrCodeRegistrationRejected {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeRegistrationRejected)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestGetField_NonAppError(t *testing.T) {
	if got := GetField(errors.New("plain")); got != "" {
		t.Errorf("GetField(plain) = %v, want empty", got)
	}
}
