package db

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/metrics"
)

// Conn is one named entry in a Registry. The underlying *sqlx.DB is created
// on the first Open and dropped again by Close, so a Conn can be reopened
// after the connection was lost.
type Conn struct {
	driver string
	dsn    string

	mu sync.Mutex
	db *sqlx.DB
}

// Open connects to the database, or verifies an existing connection and
// replaces it when it no longer answers.
func (c *Conn) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		if err := c.db.PingContext(ctx); err == nil {
			return nil
		}
		_ = c.db.Close()
		c.db = nil
	}

	db, err := New(ctx, c.driver, c.dsn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	c.db = db
	return nil
}

// IsOpen reports whether the connection exists and answers a ping.
func (c *Conn) IsOpen(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db != nil && c.db.PingContext(ctx) == nil
}

// DB returns the live connection, or nil if the Conn is closed.
func (c *Conn) DB() *sqlx.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

// Close closes the underlying connection. Closing a closed Conn is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Registry holds connections keyed by logical name. It is owned by the
// session manager and shared by every Handle created from it. Two handles
// using the same logical name share one Conn.
type Registry struct {
	mu    sync.Mutex
	conns map[string]*Conn
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

// Contains reports whether a connection is registered under name.
func (r *Registry) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.conns[name]
	return ok
}

// Add registers a new, not yet opened connection under name. If name is
// already registered the existing Conn is returned unchanged.
func (r *Registry) Add(name, driver, dsn string) *Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.conns[name]; ok {
		return c
	}
	c := &Conn{driver: driver, dsn: dsn}
	r.conns[name] = c
	metrics.RegisteredConnections.Set(float64(len(r.conns)))
	return c
}

// Get returns the connection registered under name.
func (r *Registry) Get(name string) (*Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[name]
	return c, ok
}

// Remove closes and unregisters the connection under name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	c, ok := r.conns[name]
	delete(r.conns, name)
	metrics.RegisteredConnections.Set(float64(len(r.conns)))
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return c.Close()
}

// Names returns the registered logical names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.conns))
	for name := range r.conns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes and unregisters every connection.
func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.Names() {
		if err := r.Remove(name); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
