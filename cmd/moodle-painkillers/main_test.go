package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Safenein/moodle-painkillers/config"
	"github.com/Safenein/moodle-painkillers/internal/domain/checkin"
	apperrors "github.com/Safenein/moodle-painkillers/internal/errors"
	"github.com/Safenein/moodle-painkillers/internal/observability/notify"
)

func TestResultMessageSuccess(t *testing.T) {
	msg := resultMessage(checkin.Result{Outcome: checkin.OutcomeSuccess}, nil)
	require.Equal(t, "Sent presence status!", msg)
}

func TestResultMessageAlreadyCheckedIn(t *testing.T) {
	msg := resultMessage(checkin.Result{Outcome: checkin.OutcomeAlreadyCheckedIn}, nil)
	require.Equal(t, "Presence already recorded for this session.", msg)
}

func TestResultMessageForwardsErrorText(t *testing.T) {
	runErr := apperrors.RegistrationRejected("Failed to register presence status.")
	msg := resultMessage(checkin.Result{Outcome: checkin.OutcomeRejected}, runErr)
	require.Equal(t, "Failed to register presence status.", msg)
}

func TestAnnounceDeliversAfterCancellation(t *testing.T) {
	var got notify.Message
	dispatcher := notify.NewDispatcher(notify.DispatcherOptions{
		Sinks: []notify.SinkRegistration{
			{Name: "test", Sink: notify.SinkFunc(func(ctx context.Context, msg notify.Message) error {
				require.NoError(t, ctx.Err(), "send context must outlive the run context")
				got = msg
				return nil
			})},
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := checkin.Result{RunID: "run-1", Outcome: checkin.OutcomeSuccess, Duration: time.Second}
	announce(ctx, dispatcher, config.NotifyConfig{Title: "Notification"}, result, nil)

	require.Equal(t, "Notification", got.Title)
	require.Equal(t, "Sent presence status!", got.Body)
	require.Equal(t, "run-1", got.RunID)
	require.Equal(t, string(checkin.OutcomeSuccess), got.Outcome)
	require.False(t, got.OccurredAt.IsZero())
}

func TestAnnounceNoSinks(t *testing.T) {
	dispatcher := notify.NewDispatcher(notify.DispatcherOptions{})
	require.False(t, dispatcher.Enabled())

	// Must return without touching the context or panicking.
	announce(context.Background(), dispatcher, config.NotifyConfig{}, checkin.Result{}, nil)
}
