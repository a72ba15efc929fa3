package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/Safenein/moodle-painkillers/config"
	"github.com/Safenein/moodle-painkillers/internal/bootstrap"
	"github.com/Safenein/moodle-painkillers/internal/domain/checkin"
	"github.com/Safenein/moodle-painkillers/internal/observability/notify"
	"github.com/Safenein/moodle-painkillers/internal/observability/statsd"
)

// announceTimeout bounds notification delivery after the run finishes. It is
// generous enough to cover every sink's internal retries.
const announceTimeout = 30 * time.Second

func main() {
	var flags bootstrap.Flags
	fs := bootstrap.NewFlagSet("moodle-painkillers", &flags)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2) //nolint:forbidigo // Usage errors should exit with status 2; pflag already printed the message.
	}

	logger := bootstrap.InitLogger(flags.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, flags); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger, flags bootstrap.Flags) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	bootstrap.ApplyFlags(&cfg, flags)

	logger.InfoContext(ctx, "starting moodle presence check-in",
		"attendance_url", cfg.Moodle.AttendanceViewURL,
		"discord_enabled", cfg.Notify.Discord.Enabled(),
		"desktop_enabled", cfg.Notify.Desktop.Enabled,
		"metrics_enabled", cfg.Observability.Metrics.IsEnabled())

	metrics := bootstrap.BuildMetrics(logger, cfg.Observability.Metrics)
	var sink statsd.Sink
	if metrics != nil {
		sink = metrics
		defer func() {
			if cerr := metrics.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close statsd client failed", "error", cerr)
			}
		}()
	}

	notifier := bootstrap.BuildNotifier(logger, cfg.Notify)

	svc, err := bootstrap.BuildCheckIn(&cfg, logger, sink)
	if err != nil {
		return err
	}

	result, runErr := svc.Run(ctx, checkin.Credentials{
		Username: cfg.Moodle.Username,
		Password: cfg.Moodle.Password,
	})

	announce(ctx, notifier, cfg.Notify, result, runErr)

	return runErr
}

// announce forwards the run result to the configured notification sinks. The
// send context detaches from run cancellation so an interrupted run still
// reports how it ended.
func announce(ctx context.Context, notifier *notify.Dispatcher, cfg config.NotifyConfig, result checkin.Result, runErr error) {
	if !notifier.Enabled() {
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), announceTimeout)
	defer cancel()

	notifier.Dispatch(sendCtx, notify.Message{
		Title:      cfg.Title,
		Body:       resultMessage(result, runErr),
		RunID:      result.RunID,
		Outcome:    string(result.Outcome),
		OccurredAt: time.Now(),
	})
}

// resultMessage renders the notification text for a finished run. Failures
// forward the error text itself, which is written to stand alone.
func resultMessage(result checkin.Result, runErr error) string {
	switch {
	case runErr != nil:
		return runErr.Error()
	case result.Outcome == checkin.OutcomeAlreadyCheckedIn:
		return "Presence already recorded for this session."
	default:
		return "Sent presence status!"
	}
}
