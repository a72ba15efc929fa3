package errors

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

// fakeNetError implements net.Error for timeout classification tests.
type fakeNetError struct {
	msg     string
	timeout bool
}

func (e *fakeNetError) Error() string   { return e.msg }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestMapNetworkError_Nil(t *testing.T) {
	if got := MapNetworkError(nil, "the Moodle login page"); got != nil {
		t.Errorf("MapNetworkError(nil) = %v, want nil", got)
	}
}

func TestMapNetworkError_Timeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "context deadline",
			err:  fmt.Errorf("request: %w", context.DeadlineExceeded),
		},
		{
			name: "net.Error timeout",
			err:  &fakeNetError{msg: "i/o timeout", timeout: true},
		},
		{
			name: "url.Error wrapping a timeout",
			err: &url.Error{
				Op:  "Get",
				URL: "https://moodle.univ-ubs.fr/auth/shibboleth/login.php",
				Err: &fakeNetError{msg: "i/o timeout", timeout: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapNetworkError(tt.err, "the Moodle login page")
			if !IsTimeout(got) {
				t.Errorf("MapNetworkError() code = %v, want %v", GetCode(got), ErrCodeTimeout)
			}
			if !strings.Contains(got.Error(), "Timed out while contacting the Moodle login page") {
				t.Errorf("MapNetworkError() message = %q, want timeout wording", got.Error())
			}
			if !errors.Is(got, tt.err) {
				t.Error("MapNetworkError() should preserve the cause")
			}
		})
	}
}

func TestMapNetworkError_Canceled(t *testing.T) {
	err := fmt.Errorf("request: %w", context.Canceled)
	got := MapNetworkError(err, "the attendance page")
	if !IsCanceled(got) {
		t.Errorf("MapNetworkError() code = %v, want %v", GetCode(got), ErrCodeCanceled)
	}
}

func TestMapNetworkError_Transport(t *testing.T) {
	err := &url.Error{
		Op:  "Get",
		URL: "https://moodle.univ-ubs.fr",
		Err: errors.New("connection refused"),
	}
	got := MapNetworkError(err, "the Moodle login page")
	if !IsTransport(got) {
		t.Errorf("MapNetworkError() code = %v, want %v", GetCode(got), ErrCodeTransport)
	}
	if !strings.Contains(got.Error(), "Could not reach the Moodle login page") {
		t.Errorf("MapNetworkError() message = %q", got.Error())
	}
}

func TestMapNetworkError_AlreadyClassified(t *testing.T) {
	orig := Transportf("%d Failed to get login page", 404)
	got := MapNetworkError(orig, "the Moodle login page")
	if got != error(orig) {
		t.Errorf("MapNetworkError() = %v, want original error unchanged", got)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", fmt.Errorf("x: %w", context.Canceled), false},
		{"deadline", fmt.Errorf("x: %w", context.DeadlineExceeded), true},
		{"net timeout", &fakeNetError{msg: "i/o timeout", timeout: true}, true},
		{"net non-timeout", &fakeNetError{msg: "refused"}, true},
		{"status failure", Transportf("%d Failed to get login page", 404), false},
		{
			name: "classified dial failure",
			err:  Wrap(errors.New("connection refused"), ErrCodeTransport, "Could not reach Moodle."),
			want: true,
		},
		{"classified timeout", MapNetworkError(&fakeNetError{msg: "i/o timeout", timeout: true}, "Moodle"), true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}
