package notify

import (
	"context"
	"time"
)

// Message captures the canonical data we emit for check-in run notifications.
// Body is the user-facing text; for failed runs it is the error message itself.
type Message struct {
	Title      string
	Body       string
	RunID      string
	Outcome    string
	OccurredAt time.Time
}

// Sink describes a destination capable of consuming run notifications.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, msg Message) error

// Send implements the Sink interface.
func (f SinkFunc) Send(ctx context.Context, msg Message) error {
	if f == nil {
		return nil
	}
	return f(ctx, msg)
}
