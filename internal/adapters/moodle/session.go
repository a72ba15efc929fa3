// Package moodle provides the cookie-carrying HTTP session shared by every
// step of a check-in run. It behaves like a lightweight browser: cookies set
// by one response are presented on every later request, and redirects are
// followed with the usual POST-to-GET downgrade on 302/303.
package moodle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

const defaultTimeout = 30 * time.Second

// Options configures a Session.
type Options struct {
	Timeout time.Duration // Optional: per-request ceiling, defaults to 30s
	Client  *http.Client  // Optional: base client whose transport is reused, useful for tests
}

// Session owns the HTTP client and cookie jar for one check-in run.
// It is not safe for concurrent use; a run drives it sequentially.
type Session struct {
	client *http.Client
}

// NewSession builds a session with a fresh public-suffix-aware cookie jar.
// Sessions start with no cookies; the SSO exchange populates the jar.
func NewSession(opts Options) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &http.Client{
		Timeout: timeout,
		Jar:     jar,
	}
	if opts.Client != nil {
		client.Transport = opts.Client.Transport
		client.CheckRedirect = opts.Client.CheckRedirect
	}

	return &Session{client: client}, nil
}

// Get issues a GET request carrying the session cookies and follows redirects.
// The response body is left open for the caller; use ReadBody.
func (s *Session) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return s.client.Do(req)
}

// PostForm issues a form-encoded POST carrying the session cookies. Redirects
// are followed, and a 302/303 answer turns the follow-up into a GET, which is
// exactly what the SSO hand-off relies on.
func (s *Session) PostForm(ctx context.Context, rawURL string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.client.Do(req)
}

// Cookies returns the cookies the jar would send to u.
func (s *Session) Cookies(u *url.URL) []*http.Cookie {
	return s.client.Jar.Cookies(u)
}

// Close releases idle connections held by the session's client.
func (s *Session) Close() {
	s.client.CloseIdleConnections()
}

// ReadBody consumes and closes a response body. It always closes, so callers
// can use it on every exchange without leaking connections.
func ReadBody(resp *http.Response) ([]byte, error) {
	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		readErr = fmt.Errorf("read response body: %w", readErr)
		if closeErr != nil {
			return nil, errors.Join(readErr, fmt.Errorf("close response body: %w", closeErr))
		}
		return nil, readErr
	}
	if closeErr != nil {
		return body, fmt.Errorf("close response body: %w", closeErr)
	}
	return body, nil
}
