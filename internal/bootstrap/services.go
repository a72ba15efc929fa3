package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/Safenein/moodle-painkillers/config"
	"github.com/Safenein/moodle-painkillers/internal/adapters/attendance"
	"github.com/Safenein/moodle-painkillers/internal/adapters/moodle"
	"github.com/Safenein/moodle-painkillers/internal/adapters/shibboleth"
	"github.com/Safenein/moodle-painkillers/internal/observability/notify"
	"github.com/Safenein/moodle-painkillers/internal/observability/notify/desktop"
	"github.com/Safenein/moodle-painkillers/internal/observability/notify/discord"
	"github.com/Safenein/moodle-painkillers/internal/observability/statsd"
	"github.com/Safenein/moodle-painkillers/internal/service"
)

// BuildMetrics configures the optional StatsD sink. A misconfigured sink is
// logged and skipped; metrics never block a check-in.
func BuildMetrics(logger *slog.Logger, cfg config.ObservabilityMetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}

// BuildNotifier assembles the notification dispatcher from config. Sinks
// that fail to initialise are logged and skipped so one bad notifier never
// silences the others.
func BuildNotifier(logger *slog.Logger, cfg config.NotifyConfig) *notify.Dispatcher {
	sinks := make([]notify.SinkRegistration, 0, 2)

	if cfg.Discord.Enabled() {
		client, err := discord.NewClient(discord.Config{
			WebhookURL: cfg.Discord.WebhookURL,
			Username:   cfg.Discord.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			logger.Error("failed to initialise discord notifier", "error", err)
		} else {
			sinks = append(sinks, notify.SinkRegistration{
				Name: "discord",
				Sink: client,
			})
		}
	}

	if cfg.Desktop.Enabled {
		sink, err := desktop.New(desktop.Config{
			Title:  cfg.Title,
			Logger: logger,
		})
		if err != nil {
			logger.Warn("desktop notifications unavailable", "error", err)
		} else {
			sinks = append(sinks, notify.SinkRegistration{
				Name: "desktop",
				Sink: sink,
			})
		}
	}

	return notify.NewDispatcher(notify.DispatcherOptions{
		Logger: logger,
		Sinks:  sinks,
	})
}

// BuildCheckIn wires the SSO and attendance flows into a CheckInService.
func BuildCheckIn(cfg *config.AppConfig, logger *slog.Logger, metrics statsd.Sink) (*service.CheckInService, error) {
	auth, err := shibboleth.NewAuthenticator(shibboleth.Options{
		Endpoints: shibboleth.Endpoints{
			LoginURL:    cfg.Moodle.LoginURL,
			IdPEntityID: cfg.Moodle.IdPEntityID,
			ConsumerURL: cfg.Moodle.ConsumerURL,
		},
		Logger:     logger,
		RetryLimit: cfg.HTTP.LoginRetryLimit,
		RetryDelay: cfg.HTTP.LoginRetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("build authenticator: %w", err)
	}

	registrar, err := attendance.NewRegistrar(attendance.Options{
		ViewURL: cfg.Moodle.AttendanceViewURL,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build registrar: %w", err)
	}

	timeout := cfg.HTTP.RequestTimeout
	return service.NewCheckInService(service.CheckInServiceOptions{
		Authenticator: auth,
		Registrar:     registrar,
		Sessions: func() (*moodle.Session, error) {
			return moodle.NewSession(moodle.Options{Timeout: timeout})
		},
		Logger:  logger,
		Metrics: metrics,
	})
}
