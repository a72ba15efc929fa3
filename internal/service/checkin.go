package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Safenein/moodle-painkillers/internal/adapters/moodle"
	"github.com/Safenein/moodle-painkillers/internal/domain/checkin"
	"github.com/Safenein/moodle-painkillers/internal/observability/metrics"
	"github.com/Safenein/moodle-painkillers/internal/observability/statsd"
)

// Authenticator signs a browsing session in through the university SSO.
type Authenticator interface {
	Authenticate(ctx context.Context, sess *moodle.Session, creds checkin.Credentials) error
}

// PresenceRegistrar marks attendance for an already signed-in session.
type PresenceRegistrar interface {
	Register(ctx context.Context, sess *moodle.Session) (checkin.Outcome, error)
}

// SessionFactory builds a fresh browsing session. Each run gets its own
// session so cookies never leak between runs.
type SessionFactory func() (*moodle.Session, error)

// CheckInServiceOptions groups dependencies for CheckInService.
type CheckInServiceOptions struct {
	Authenticator Authenticator     // Required: SSO authentication flow
	Registrar     PresenceRegistrar // Required: attendance registration flow
	Sessions      SessionFactory    // Optional: defaults to a plain cookie-jar session
	Logger        *slog.Logger      // Optional: structured logger
	Metrics       statsd.Sink       // Optional: check-in outcome metrics
}

// CheckInService runs the full presence check-in: build a session,
// authenticate through the SSO, then register attendance. One service
// instance can serve many runs; each run is independent.
type CheckInService struct {
	auth      Authenticator
	registrar PresenceRegistrar
	sessions  SessionFactory
	logger    *slog.Logger
	metrics   statsd.Sink
}

// NewCheckInService constructs a new CheckInService.
func NewCheckInService(opts CheckInServiceOptions) (*CheckInService, error) {
	if opts.Authenticator == nil {
		return nil, errors.New("Authenticator is required")
	}
	if opts.Registrar == nil {
		return nil, errors.New("PresenceRegistrar is required")
	}

	sessions := opts.Sessions
	if sessions == nil {
		sessions = func() (*moodle.Session, error) {
			return moodle.NewSession(moodle.Options{})
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CheckInService{
		auth:      opts.Authenticator,
		registrar: opts.Registrar,
		sessions:  sessions,
		logger:    logger.With("component", "checkin_service"),
		metrics:   opts.Metrics,
	}, nil
}

// Run performs one complete presence check-in and reports its outcome.
// The returned result always carries the run id and elapsed time, even
// when the run failed.
func (s *CheckInService) Run(ctx context.Context, creds checkin.Credentials) (checkin.Result, error) {
	start := time.Now()
	result := checkin.Result{RunID: uuid.NewString()}

	logger := s.logger.With("run_id", result.RunID)
	logger.InfoContext(ctx, "starting presence check-in", "credentials", creds)

	finish := func(outcome checkin.Outcome, err error) (checkin.Result, error) {
		result.Outcome = outcome
		result.Duration = time.Since(start)
		metrics.EmitCheckIn(s.metrics, metrics.CheckInMetric{
			Outcome:  outcome,
			Duration: result.Duration,
			Err:      err,
		})
		return result, err
	}

	sess, err := s.sessions()
	if err != nil {
		logger.ErrorContext(ctx, "session setup failed", "error", err)
		return finish("", fmt.Errorf("create session: %w", err))
	}
	defer sess.Close()

	if err := s.auth.Authenticate(ctx, sess, creds); err != nil {
		logger.ErrorContext(ctx, "authentication failed", "error", err)
		return finish("", err)
	}
	logger.DebugContext(ctx, "authenticated against the identity provider")

	outcome, err := s.registrar.Register(ctx, sess)
	if err != nil {
		logger.ErrorContext(ctx, "presence registration failed",
			"outcome", outcome,
			"error", err)
		return finish(outcome, err)
	}

	logger.InfoContext(ctx, "presence check-in finished",
		"outcome", outcome,
		"duration", time.Since(start))
	return finish(outcome, nil)
}
