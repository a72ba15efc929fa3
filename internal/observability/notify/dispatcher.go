package notify

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink Sink
}

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	Logger *slog.Logger // Optional: structured logger
	Sinks  []SinkRegistration
}

// Dispatcher fans a message out to every registered sink. Delivery is
// best-effort: each sink failure is logged and never blocks the others,
// and a run's outcome is unaffected by notification failures.
type Dispatcher struct {
	logger *slog.Logger
	sinks  []SinkRegistration
}

// NewDispatcher constructs a dispatcher, dropping nil sinks.
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "notify_dispatcher")
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{
			Name: name,
			Sink: entry.Sink,
		})
	}

	return &Dispatcher{
		logger: logger,
		sinks:  sinks,
	}
}

// Dispatch sends msg to all sinks concurrently and waits for every delivery
// attempt to finish. Failures are logged per sink and swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) {
	if len(d.sinks) == 0 {
		return
	}

	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = time.Now()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, entry := range d.sinks {
		g.Go(func() error {
			if err := entry.Sink.Send(gctx, msg); err != nil {
				d.logger.ErrorContext(ctx, "notification delivery error",
					"sink", entry.Name,
					"run_id", msg.RunID,
					"outcome", msg.Outcome,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Enabled reports whether the dispatcher has any active sinks.
func (d *Dispatcher) Enabled() bool {
	return len(d.sinks) > 0
}
