// Package app is the session manager. It owns the database handle and the
// registry, and gates every operation through db.EnsureConnected.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/calc"
	"github.com/joestump/biogas/internal/config"
	"github.com/joestump/biogas/internal/db"
	"github.com/joestump/biogas/internal/store"
)

// ErrUnavailable is returned by every operation when the database connection
// is not usable. Nothing is executed in that case.
var ErrUnavailable = errors.New("database unavailable")

// Options carries the user-facing collaborators of the handle.
type Options struct {
	Prompter db.Prompter
	Notifier db.Notifier
	Logger   *slog.Logger
}

type App struct {
	registry *db.Registry
	handle   *db.Handle
	driver   string
	notifier db.Notifier
	log      *slog.Logger
}

// NewBackend returns the backend selected by cfg.DB.Driver.
func NewBackend(cfg *config.Config) (db.Backend, error) {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		return db.NewSQLite(cfg.DB.SQLite.Path, cfg.DB.SQLite.Filename), nil
	case config.DriverMySQL:
		m := cfg.DB.MySQL
		return db.NewMySQL(m.Name, m.Host, m.User, m.Password, m.Port), nil
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", db.ErrInvalidConfig, cfg.DB.Driver)
	}
}

// Open builds the configured backend and initializes its handle. A handle
// that fails to initialize still yields an App; its operations then return
// ErrUnavailable.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return OpenBackend(ctx, backend, cfg.DB.RepairAttempts, opts), nil
}

// OpenBackend initializes a handle for backend in a fresh registry.
func OpenBackend(ctx context.Context, backend db.Backend, maxRepairs int, opts Options) *App {
	if opts.Notifier == nil {
		opts.Notifier = db.Discard{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	registry := db.NewRegistry()
	handle := db.NewHandle(backend, registry, db.Options{
		Prompter:   opts.Prompter,
		Notifier:   opts.Notifier,
		Logger:     opts.Logger,
		MaxRepairs: maxRepairs,
	})
	handle.Initialize(ctx)

	return &App{
		registry: registry,
		handle:   handle,
		driver:   backend.Driver(),
		notifier: opts.Notifier,
		log:      opts.Logger,
	}
}

// Available reports whether the handle initialized.
func (a *App) Available() bool {
	return a.handle.IsAvailable()
}

// DB returns the guarded connection.
func (a *App) DB(ctx context.Context) (*sqlx.DB, error) {
	if !db.EnsureConnected(ctx, a.handle, a.notifier) {
		return nil, ErrUnavailable
	}
	conn, err := a.handle.Conn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return conn, nil
}

// Migrate applies all pending schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	conn, err := a.DB(ctx)
	if err != nil {
		return err
	}
	if err := db.Migrate(conn, a.driver); err != nil {
		return err
	}
	a.log.Info("migrations complete", "name", a.handle.Name())
	return nil
}

// Close releases the handle and closes every registered connection.
func (a *App) Close() error {
	return errors.Join(a.handle.Close(), a.registry.Close())
}

func (a *App) Login(ctx context.Context, userID int64, password string) error {
	conn, err := a.DB(ctx)
	if err != nil {
		return err
	}
	if err := store.NewUserStore(conn).Authenticate(ctx, userID, password); err != nil {
		return err
	}
	a.log.Info("user logged in", "user", userID)
	return nil
}

func (a *App) Personal(ctx context.Context, userID int64) (*store.Personal, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewUserStore(conn).Personal(ctx, userID)
}

func (a *App) UpdatePersonal(ctx context.Context, userID int64, p store.Personal) error {
	conn, err := a.DB(ctx)
	if err != nil {
		return err
	}
	return store.NewUserStore(conn).UpdatePersonal(ctx, userID, p)
}

func (a *App) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	conn, err := a.DB(ctx)
	if err != nil {
		return err
	}
	return store.NewUserStore(conn).ChangePassword(ctx, userID, oldPassword, newPassword)
}

func (a *App) Address(ctx context.Context, userID int64) (*store.Address, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewAddressStore(conn).Get(ctx, userID)
}

func (a *App) SaveAddress(ctx context.Context, userID int64, addr store.Address) error {
	conn, err := a.DB(ctx)
	if err != nil {
		return err
	}
	return store.NewAddressStore(conn).Save(ctx, userID, addr)
}

func (a *App) Phones(ctx context.Context, userID int64) ([]*store.Phone, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewPhoneStore(conn).List(ctx, userID)
}

func (a *App) AddPhone(ctx context.Context, userID int64, number string) (*store.Phone, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewPhoneStore(conn).Add(ctx, userID, number)
}

func (a *App) UpdatePhone(ctx context.Context, userID, phoneID int64, number string) error {
	conn, err := a.DB(ctx)
	if err != nil {
		return err
	}
	return store.NewPhoneStore(conn).Update(ctx, userID, phoneID, number)
}

func (a *App) RemovePhone(ctx context.Context, userID, phoneID int64) error {
	conn, err := a.DB(ctx)
	if err != nil {
		return err
	}
	return store.NewPhoneStore(conn).Remove(ctx, userID, phoneID)
}

func (a *App) Plants(ctx context.Context, userID int64) ([]*store.Plant, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewPlantStore(conn).ListByOwner(ctx, userID)
}

// Services returns the service log of a plant owned by userID.
func (a *App) Services(ctx context.Context, userID, plantID int64) ([]*store.Service, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := store.NewPlantStore(conn).Get(ctx, userID, plantID); err != nil {
		return nil, err
	}
	return store.NewServiceStore(conn).ListByPlant(ctx, plantID)
}

func (a *App) Substrates(ctx context.Context, userID int64) ([]*store.Substrate, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewSubstrateStore(conn).ListAvailable(ctx, userID)
}

func (a *App) Substrate(ctx context.Context, userID, substrateID int64) (*store.Substrate, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewSubstrateStore(conn).Get(ctx, userID, substrateID)
}

// NewPlan starts a calculation bounded by the container volume of a plant
// owned by userID.
func (a *App) NewPlan(ctx context.Context, userID, plantID int64) (*calc.Plan, error) {
	conn, err := a.DB(ctx)
	if err != nil {
		return nil, err
	}
	plants := store.NewPlantStore(conn)
	if _, err := plants.Get(ctx, userID, plantID); err != nil {
		return nil, err
	}
	volume, err := plants.Volume(ctx, plantID)
	if err != nil {
		return nil, err
	}
	return calc.NewPlan(volume), nil
}
