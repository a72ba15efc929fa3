// Package checkin contains domain-level types for the presence check-in run.
// It is pure and free of transport/adapter concerns.
package checkin

import (
	"log/slog"
	"time"
)

// Outcome represents the terminal state of one presence check-in attempt.
// Keep string form for easy logging and metric tagging.
// Valid values are defined as constants below.
type Outcome string

const (
	// OutcomeSuccess means the presence status was registered during this run.
	OutcomeSuccess Outcome = "success"
	// OutcomeAlreadyCheckedIn means the presence status had been registered before this run.
	OutcomeAlreadyCheckedIn Outcome = "already_checked_in"
	// OutcomeNotFound means the attendance page exposed no open check-in link.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeRejected means the check-in link was followed but the server did not confirm.
	OutcomeRejected Outcome = "rejected"
)

// Benign returns true for outcomes that leave the presence recorded,
// whether by this run or an earlier one.
func (o Outcome) Benign() bool {
	return o == OutcomeSuccess || o == OutcomeAlreadyCheckedIn
}

// Credentials is the username/password pair used for the SSO login.
type Credentials struct {
	Username string
	Password string
}

// Resolved returns true when both username and password are present.
func (c Credentials) Resolved() bool {
	return c.Username != "" && c.Password != ""
}

// LogValue implements slog.LogValuer so credentials never leak into logs.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("username", c.Username),
		slog.String("password", "[redacted]"),
	)
}

// Result summarizes a completed check-in run for logging and notification.
type Result struct {
	RunID    string
	Outcome  Outcome
	Duration time.Duration
}
