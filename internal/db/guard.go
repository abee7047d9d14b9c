package db

import (
	"context"

	"github.com/joestump/biogas/internal/metrics"
)

// Session is the part of a Handle the connection guard needs.
type Session interface {
	IsAvailable() bool
	IsOpen(ctx context.Context) bool
	Reopen(ctx context.Context) error
}

// EnsureConnected gates every statement. It returns false without a reopen
// attempt when the session was never available, true when the connection is
// open, and otherwise makes exactly one reopen attempt, notifying n when it
// fails. Callers must abort their operation when it returns false.
func EnsureConnected(ctx context.Context, s Session, n Notifier) bool {
	if !s.IsAvailable() {
		return false
	}
	if s.IsOpen(ctx) {
		return true
	}

	if err := s.Reopen(ctx); err != nil {
		metrics.ReconnectsTotal.WithLabelValues("error").Inc()
		if n != nil {
			n.Critical("Connection Error: failed to connect with database - please try again later", err.Error())
		}
		return false
	}
	metrics.ReconnectsTotal.WithLabelValues("ok").Inc()
	return true
}
