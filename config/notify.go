package config

import (
	"strings"
	"time"
)

// NotifyConfig controls how run outcomes are announced to the user.
type NotifyConfig struct {
	// Title is the notification title shown by desktop notifiers.
	Title string `env:"NOTIFY_TITLE" envDefault:"Notification"`

	// Timeout bounds delivery of one notification to one sink.
	Timeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`

	// RetryLimit is the number of extra delivery attempts per sink.
	RetryLimit int `env:"NOTIFY_RETRY_LIMIT" envDefault:"2"`

	// Discord webhook fan-out
	Discord DiscordNotificationConfig

	// Desktop notification fan-out
	Desktop DesktopNotificationConfig
}

// Sanitize normalises notification configuration values.
func (c *NotifyConfig) Sanitize() {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		c.Title = "Notification"
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}
	c.Discord.sanitize()
}

// DiscordNotificationConfig controls Discord webhook fan-out. The webhook
// fires whenever it is configured; there is no separate enable switch.
type DiscordNotificationConfig struct {
	WebhookURL string `env:"DISCORD_WEBHOOK"`
	Username   string `env:"DISCORD_USERNAME"`
}

func (c *DiscordNotificationConfig) sanitize() {
	c.WebhookURL = strings.TrimSpace(c.WebhookURL)
	c.Username = strings.TrimSpace(c.Username)
}

// Enabled reports whether a webhook URL is configured.
func (c *DiscordNotificationConfig) Enabled() bool {
	return c.WebhookURL != ""
}

// DesktopNotificationConfig controls local desktop notifications.
type DesktopNotificationConfig struct {
	Enabled bool `env:"DESKTOP_NOTIFY_ENABLED" envDefault:"true"`
}
