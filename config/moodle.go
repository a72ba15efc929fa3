package config

import "strings"

// MoodleConfig contains the Moodle account and the fixed endpoints of the
// institution's SSO and attendance pages. The defaults point at Université
// Bretagne Sud; other institutions can override every endpoint.
type MoodleConfig struct {
	// Username is the Moodle account username.
	Username string `env:"MOODLE_USERNAME"`

	// Password is the Moodle account password.
	Password string `env:"MOODLE_PASSWORD"`

	// LoginURL is Moodle's Shibboleth login initiation endpoint.
	LoginURL string `env:"MOODLE_LOGIN_URL" envDefault:"https://moodle.univ-ubs.fr/auth/shibboleth/login.php"`

	// IdPEntityID selects the institution on the identity provider discovery form.
	IdPEntityID string `env:"MOODLE_IDP_ENTITY_ID" envDefault:"urn:mace:cru.fr:federation:univ-ubs.fr"`

	// ConsumerURL is Moodle's SAML assertion consumer endpoint.
	ConsumerURL string `env:"MOODLE_SAML_CONSUMER_URL" envDefault:"https://moodle.univ-ubs.fr/Shibboleth.sso/SAML2/POST"`

	// AttendanceViewURL is the attendance activity page carrying the self-marking link.
	AttendanceViewURL string `env:"MOODLE_ATTENDANCE_URL" envDefault:"https://moodle.univ-ubs.fr/mod/attendance/view.php?id=433340"`
}

// Sanitize trims whitespace that commonly sneaks into copied env values.
// Credentials are left untouched: a password may legitimately contain spaces.
func (c *MoodleConfig) Sanitize() {
	c.LoginURL = strings.TrimSpace(c.LoginURL)
	c.IdPEntityID = strings.TrimSpace(c.IdPEntityID)
	c.ConsumerURL = strings.TrimSpace(c.ConsumerURL)
	c.AttendanceViewURL = strings.TrimSpace(c.AttendanceViewURL)
}

// HasCredentials reports whether both username and password are set.
func (c *MoodleConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
