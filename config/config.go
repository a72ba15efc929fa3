package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - moodle.go: Moodle account and endpoint configuration
//   - http.go: outbound HTTP behaviour
//   - notify.go: notification fan-out configuration
//   - observability.go: metrics configuration
type AppConfig struct {
	// Moodle account and endpoint configuration
	Moodle MoodleConfig

	// Outbound HTTP behaviour
	HTTP HTTPConfig

	// Notification fan-out configuration
	Notify NotifyConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Moodle.Sanitize()
	c.HTTP.Sanitize()
	c.Notify.Sanitize()
	c.Observability.Sanitize()
}
