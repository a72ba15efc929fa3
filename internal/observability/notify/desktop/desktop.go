// Package desktop shows run notifications on the local machine. Each platform
// gets the mechanism a user is most likely to have: notify-send on Linux with
// a termux-notification fallback for Android shells, terminal-notifier with an
// AppleScript fallback on macOS, and a toast on Windows.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/Safenein/moodle-painkillers/internal/observability/notify"
)

// DefaultTitle is used when neither the message nor the config carries one.
const DefaultTitle = "Notification"

// CommandRunner executes an external notifier command. Tests inject a fake.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Config configures the desktop sink.
type Config struct {
	Title  string        // Optional: fallback notification title
	GOOS   string        // Optional: defaults to runtime.GOOS
	Runner CommandRunner // Optional: defaults to exec-based runner
	Logger *slog.Logger  // Optional: structured logger
}

// New builds the desktop sink for the configured platform. Unsupported
// platforms yield an error so callers can skip the sink instead of
// registering one that always fails.
func New(cfg Config) (notify.Sink, error) {
	goos := cfg.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = DefaultTitle
	}

	runner := cfg.Runner
	if runner == nil {
		runner = runCommand
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch goos {
	case "linux":
		return &linuxNotifier{title: title, run: runner, logger: logger}, nil
	case "darwin":
		return &darwinNotifier{title: title, run: runner, logger: logger}, nil
	case "windows":
		return &windowsNotifier{title: title, toast: beeep.Notify}, nil
	default:
		return nil, fmt.Errorf("desktop notifications are not supported on %s", goos)
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// resolveTitle prefers the per-message title over the configured fallback.
func resolveTitle(msgTitle, fallback string) string {
	if t := strings.TrimSpace(msgTitle); t != "" {
		return t
	}
	return fallback
}

type linuxNotifier struct {
	title  string
	run    CommandRunner
	logger *slog.Logger
}

var _ notify.Sink = (*linuxNotifier)(nil)

// Send tries notify-send first and falls back to termux-notification so runs
// inside a Termux shell on Android still surface a notification.
func (n *linuxNotifier) Send(ctx context.Context, msg notify.Message) error {
	title := resolveTitle(msg.Title, n.title)

	primaryErr := n.run(ctx, "notify-send", title, msg.Body)
	if primaryErr == nil {
		return nil
	}
	n.logger.DebugContext(ctx, "notify-send unavailable, falling back to termux-notification",
		"error", primaryErr)

	if err := n.run(ctx, "termux-notification", "-t", title, "-c", msg.Body); err != nil {
		return fmt.Errorf("send linux notification: %w", errors.Join(primaryErr, err))
	}
	return nil
}

type darwinNotifier struct {
	title  string
	run    CommandRunner
	logger *slog.Logger
}

var _ notify.Sink = (*darwinNotifier)(nil)

// Send tries terminal-notifier first and falls back to AppleScript, which
// ships with the OS and needs nothing installed.
func (n *darwinNotifier) Send(ctx context.Context, msg notify.Message) error {
	title := resolveTitle(msg.Title, n.title)

	primaryErr := n.run(ctx, "terminal-notifier", "-title", title, "-message", msg.Body)
	if primaryErr == nil {
		return nil
	}
	n.logger.DebugContext(ctx, "terminal-notifier unavailable, falling back to osascript",
		"error", primaryErr)

	script := "display notification " + appleScriptQuote(msg.Body) + " with title " + appleScriptQuote(title)
	if err := n.run(ctx, "osascript", "-e", script); err != nil {
		return fmt.Errorf("send macos notification: %w", errors.Join(primaryErr, err))
	}
	return nil
}

// appleScriptQuote renders s as an AppleScript string literal.
func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

type windowsNotifier struct {
	title string
	toast func(title, message, appIcon string) error
}

var _ notify.Sink = (*windowsNotifier)(nil)

func (n *windowsNotifier) Send(_ context.Context, msg notify.Message) error {
	title := resolveTitle(msg.Title, n.title)
	if err := n.toast(title, msg.Body, ""); err != nil {
		return fmt.Errorf("send windows notification: %w", err)
	}
	return nil
}
