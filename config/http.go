package config

import "time"

// HTTPConfig controls outbound HTTP behaviour for the check-in session.
type HTTPConfig struct {
	// RequestTimeout bounds every single HTTP request of a run.
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`

	// LoginRetryLimit is the number of extra attempts for the initial
	// login page fetch after a transient network failure.
	LoginRetryLimit int `env:"HTTP_LOGIN_RETRY_LIMIT" envDefault:"2"`

	// LoginRetryDelay is the base delay between those attempts.
	LoginRetryDelay time.Duration `env:"HTTP_LOGIN_RETRY_DELAY" envDefault:"500ms"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.RequestTimeout <= 0 {
		h.RequestTimeout = 30 * time.Second
	}
	if h.LoginRetryLimit < 0 {
		h.LoginRetryLimit = 0
	}
	if h.LoginRetryDelay <= 0 {
		h.LoginRetryDelay = 500 * time.Millisecond
	}
}
