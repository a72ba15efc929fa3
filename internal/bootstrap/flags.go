package bootstrap

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/Safenein/moodle-painkillers/config"
)

// Flags holds command line overrides. Every value falls back to its
// environment variable when the flag is not given.
type Flags struct {
	Username       string
	Password       string
	DiscordWebhook string
	Timeout        time.Duration
	Verbose        bool
}

// NewFlagSet declares the command line interface on a fresh flag set bound
// to f. Callers parse it themselves so tests can feed argument slices.
func NewFlagSet(name string, f *Flags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&f.Username, "username", "u", "", "Moodle username")
	fs.StringVarP(&f.Password, "password", "p", "", "Moodle password")
	fs.StringVarP(&f.DiscordWebhook, "discord-webhook", "w", "", "Discord webhook URL for notifications")
	fs.DurationVar(&f.Timeout, "timeout", 0, "per-request HTTP timeout (overrides HTTP_REQUEST_TIMEOUT)")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "enable debug logging")
	return fs
}

// ApplyFlags overlays parsed flags onto cfg. Flags win over environment
// variables, matching the usual precedence of command line tools.
func ApplyFlags(cfg *config.AppConfig, f Flags) {
	if cfg == nil {
		return
	}
	if f.Username != "" {
		cfg.Moodle.Username = f.Username
	}
	if f.Password != "" {
		cfg.Moodle.Password = f.Password
	}
	if f.DiscordWebhook != "" {
		cfg.Notify.Discord.WebhookURL = f.DiscordWebhook
	}
	if f.Timeout > 0 {
		cfg.HTTP.RequestTimeout = f.Timeout
	}
}
