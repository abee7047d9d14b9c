package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/metrics"
)

// DefaultMaxRepairs bounds the bad configuration repair loop.
const DefaultMaxRepairs = 3

// Options configures a Handle. Zero values select Decline, Discard,
// slog.Default and DefaultMaxRepairs.
type Options struct {
	Prompter   Prompter
	Notifier   Notifier
	Logger     *slog.Logger
	MaxRepairs int
}

// Handle owns one configured backend and at most one entry in a Registry.
// It becomes available only after a successful Initialize.
type Handle struct {
	backend    Backend
	registry   *Registry
	prompter   Prompter
	notifier   Notifier
	log        *slog.Logger
	maxRepairs int

	name      string
	lastError string
	available bool
	// owns is set while the handle holds a registry entry it must release.
	owns bool
}

// NewHandle creates an unconfigured handle for b that registers with r.
func NewHandle(b Backend, r *Registry, opts Options) *Handle {
	h := &Handle{
		backend:    b,
		registry:   r,
		prompter:   opts.Prompter,
		notifier:   opts.Notifier,
		log:        opts.Logger,
		maxRepairs: opts.MaxRepairs,
		name:       b.Name(),
	}
	if h.prompter == nil {
		h.prompter = Decline{}
	}
	if h.notifier == nil {
		h.notifier = Discard{}
	}
	if h.log == nil {
		h.log = slog.Default()
	}
	if h.maxRepairs <= 0 {
		h.maxRepairs = DefaultMaxRepairs
	}
	h.log = h.log.With("component", "db", "backend", b.Kind())
	return h
}

// Initialize validates the configuration, repairing it through the Prompter
// when needed, then registers and opens the connection or reuses an already
// registered one. It reports whether the handle is available.
func (h *Handle) Initialize(ctx context.Context) bool {
	if !h.configure() {
		h.available = false
		return false
	}

	h.name = h.backend.Name()
	conn, registered := h.registry.Get(h.name)
	if !registered {
		conn = h.registry.Add(h.name, h.backend.Driver(), h.backend.DSN())
		if err := conn.Open(ctx); err != nil {
			h.lastError = err.Error()
			metrics.ConnectionOpensTotal.WithLabelValues(h.backend.Kind(), "error").Inc()
			h.log.Warn("open failed", "name", h.name, "error", err)
			h.notifier.Critical("Could not establish connection with database.", h.lastError)
			h.available = false
			return false
		}
	} else if !conn.IsOpen(ctx) {
		if err := conn.Open(ctx); err != nil {
			h.lastError = err.Error()
			metrics.ConnectionOpensTotal.WithLabelValues(h.backend.Kind(), "error").Inc()
			h.log.Warn("reopen of registered connection failed", "name", h.name, "error", err)
			h.available = false
			return false
		}
	}

	metrics.ConnectionOpensTotal.WithLabelValues(h.backend.Kind(), "ok").Inc()
	h.log.Info("database available", "name", h.name)
	h.available = true
	h.owns = true
	return true
}

// configure runs the bounded validate/repair loop.
func (h *Handle) configure() bool {
	for round := 0; ; round++ {
		if h.Validate() {
			return true
		}
		if round >= h.maxRepairs {
			metrics.RepairPromptsTotal.WithLabelValues(h.backend.Kind(), "exhausted").Inc()
			h.log.Warn("giving up on configuration repair", "rounds", round)
			h.notifier.Critical("Invalid Database Configuration",
				fmt.Sprintf("still invalid after %d corrections", round))
			return false
		}
		if !h.backend.Repair(h.prompter) {
			metrics.RepairPromptsTotal.WithLabelValues(h.backend.Kind(), "declined").Inc()
			h.notifier.Critical("Invalid Database Configuration", "")
			return false
		}
		metrics.RepairPromptsTotal.WithLabelValues(h.backend.Kind(), "corrected").Inc()
		h.log.Info("configuration corrected, retrying", "round", round+1)
	}
}

// Validate checks the backend configuration, records the failure as the last
// error and notifies the user about it.
func (h *Handle) Validate() bool {
	err := h.backend.Validate()
	if err == nil {
		return true
	}
	h.lastError = err.Error()
	h.notifier.Critical(h.lastError, "")
	return false
}

// IsAvailable reports whether Initialize succeeded. It performs no I/O.
func (h *Handle) IsAvailable() bool {
	return h.available
}

// Name returns the logical name of the connection.
func (h *Handle) Name() string {
	return h.name
}

// LastError returns the text of the most recent configuration or connection
// failure.
func (h *Handle) LastError() string {
	return h.lastError
}

// Conn returns the live connection registered under the handle's name.
func (h *Handle) Conn() (*sqlx.DB, error) {
	if !h.available {
		return nil, ErrNotInitialized
	}
	conn, ok := h.registry.Get(h.name)
	if !ok {
		return nil, ErrNotInitialized
	}
	db := conn.DB()
	if db == nil {
		return nil, fmt.Errorf("%w: %s is closed", ErrConnection, h.name)
	}
	return db, nil
}

// IsOpen reports whether the available handle's connection answers.
func (h *Handle) IsOpen(ctx context.Context) bool {
	if !h.available {
		return false
	}
	conn, ok := h.registry.Get(h.name)
	return ok && conn.IsOpen(ctx)
}

// Reopen makes one attempt to reopen the handle's connection.
func (h *Handle) Reopen(ctx context.Context) error {
	if !h.available {
		return ErrNotInitialized
	}
	conn, ok := h.registry.Get(h.name)
	if !ok {
		return ErrNotInitialized
	}
	if err := conn.Open(ctx); err != nil {
		h.lastError = err.Error()
		h.log.Warn("reconnect failed", "name", h.name, "error", err)
		return err
	}
	h.log.Info("reconnected", "name", h.name)
	return nil
}

// Close releases the registry entry if the handle ever became available.
// Only the first call releases; later calls are no-ops.
func (h *Handle) Close() error {
	if !h.owns {
		return nil
	}
	h.owns = false
	h.available = false
	return h.registry.Remove(h.name)
}
