package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/joestump/biogas/internal/config"
	"github.com/joestump/biogas/internal/db"
	"github.com/joestump/biogas/internal/store"
	"github.com/joestump/biogas/internal/testutil"
)

type recordingNotifier struct {
	msgs []string
}

func (n *recordingNotifier) Critical(msg, _ string) {
	n.msgs = append(n.msgs, msg)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func emptyDBFile(t *testing.T) (dir, name string) {
	t.Helper()
	dir = t.TempDir()
	name = "plant.db"
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
		t.Fatalf("create db file: %v", err)
	}
	return dir, name
}

// newTestApp returns a migrated, seeded App over a temporary SQLite file.
func newTestApp(t *testing.T) (a *App, userID, plantID int64) {
	t.Helper()
	ctx := context.Background()
	dir, name := emptyDBFile(t)

	a = OpenBackend(ctx, db.NewSQLite(dir, name), 3, Options{Logger: discardLogger()})
	t.Cleanup(func() { _ = a.Close() })
	if !a.Available() {
		t.Fatalf("app not available: %s", a.handle.LastError())
	}
	if err := a.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	conn, err := a.DB(ctx)
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	userID, plantID = testutil.Seed(t, conn, "secret")
	return a, userID, plantID
}

func TestNewBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverMySQL
	cfg.DB.MySQL.Name = "biogas"
	cfg.DB.MySQL.Port = 3306

	b, err := NewBackend(cfg)
	if err != nil {
		t.Fatalf("NewBackend(mysql): %v", err)
	}
	if b.Kind() != "mysql" || b.Name() != "biogas" {
		t.Errorf("mysql backend = %s/%s", b.Kind(), b.Name())
	}

	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLite.Filename = "plant.db"
	b, err = NewBackend(cfg)
	if err != nil {
		t.Fatalf("NewBackend(sqlite): %v", err)
	}
	if b.Kind() != "sqlite" || b.Name() != "plant.db" {
		t.Errorf("sqlite backend = %s/%s", b.Kind(), b.Name())
	}

	cfg.DB.Driver = "postgres"
	if _, err := NewBackend(cfg); !errors.Is(err, db.ErrInvalidConfig) {
		t.Errorf("NewBackend(postgres): got %v, want ErrInvalidConfig", err)
	}
}

func TestOpen(t *testing.T) {
	dir, name := emptyDBFile(t)
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLite.Path = dir
	cfg.DB.SQLite.Filename = name
	cfg.DB.RepairAttempts = 3

	a, err := Open(context.Background(), cfg, Options{Logger: discardLogger()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = a.Close() }()
	if !a.Available() {
		t.Fatal("expected app to be available")
	}
}

func TestApp_UnavailableRefusesEveryOperation(t *testing.T) {
	ctx := context.Background()
	n := &recordingNotifier{}
	a := OpenBackend(ctx, db.NewSQLite(t.TempDir(), "missing.db"), 3,
		Options{Prompter: db.Decline{}, Notifier: n, Logger: discardLogger()})
	defer func() { _ = a.Close() }()

	if a.Available() {
		t.Fatal("app with a missing database file should not be available")
	}
	before := len(n.msgs)

	ops := map[string]func() error{
		"migrate":   func() error { return a.Migrate(ctx) },
		"login":     func() error { return a.Login(ctx, 1, "secret") },
		"personal":  func() error { _, err := a.Personal(ctx, 1); return err },
		"password":  func() error { return a.ChangePassword(ctx, 1, "a", "b") },
		"address":   func() error { _, err := a.Address(ctx, 1); return err },
		"phones":    func() error { _, err := a.Phones(ctx, 1); return err },
		"add phone": func() error { _, err := a.AddPhone(ctx, 1, "+48123456789"); return err },
		"plants":    func() error { _, err := a.Plants(ctx, 1); return err },
		"services":  func() error { _, err := a.Services(ctx, 1, 1); return err },
		"plan":      func() error { _, err := a.NewPlan(ctx, 1, 1); return err },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrUnavailable) {
			t.Errorf("%s: got %v, want ErrUnavailable", name, err)
		}
	}
	if len(n.msgs) != before {
		t.Errorf("refused operations should not notify, got %v", n.msgs[before:])
	}
}

func TestApp_Operations(t *testing.T) {
	ctx := context.Background()
	a, userID, plantID := newTestApp(t)

	if err := a.Login(ctx, userID, "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := a.Login(ctx, userID, "wrong"); !errors.Is(err, store.ErrInvalidCredentials) {
		t.Errorf("Login with wrong password: got %v", err)
	}

	plants, err := a.Plants(ctx, userID)
	if err != nil || len(plants) != 1 {
		t.Fatalf("Plants = %v, %v", plants, err)
	}

	services, err := a.Services(ctx, userID, plantID)
	if err != nil || len(services) != 2 {
		t.Fatalf("Services = %v, %v", services, err)
	}
	if _, err := a.Services(ctx, userID+100, plantID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Services of foreign plant: got %v, want ErrNotFound", err)
	}

	plan, err := a.NewPlan(ctx, userID, plantID)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if plan.MaxVolume != 650 {
		t.Errorf("MaxVolume = %v, want 650", plan.MaxVolume)
	}

	subs, err := a.Substrates(ctx, userID)
	if err != nil || len(subs) != 2 {
		t.Fatalf("Substrates = %v, %v", subs, err)
	}
	sub, err := a.Substrate(ctx, userID, subs[0].ID)
	if err != nil {
		t.Fatalf("Substrate: %v", err)
	}
	if err := plan.Add(*sub, 100, 30); err != nil {
		t.Errorf("plan.Add: %v", err)
	}

	p, err := a.AddPhone(ctx, userID, "+48123456789")
	if err != nil {
		t.Fatalf("AddPhone: %v", err)
	}
	if err := a.UpdatePhone(ctx, userID, p.ID, "+48999999"); err != nil {
		t.Errorf("UpdatePhone: %v", err)
	}
	if err := a.RemovePhone(ctx, userID, p.ID); err != nil {
		t.Errorf("RemovePhone: %v", err)
	}

	addr := store.Address{City: "Kraków", Street: "Długa", Number: "12"}
	if err := a.SaveAddress(ctx, userID, addr); err != nil {
		t.Fatalf("SaveAddress: %v", err)
	}
	got, err := a.Address(ctx, userID)
	if err != nil || *got != addr {
		t.Errorf("Address = %+v, %v", got, err)
	}

	if err := a.UpdatePersonal(ctx, userID, store.Personal{Name: "Anna", Email: "anna@example.org"}); err != nil {
		t.Fatalf("UpdatePersonal: %v", err)
	}
	if err := a.ChangePassword(ctx, userID, "secret", "better"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if err := a.Login(ctx, userID, "better"); err != nil {
		t.Errorf("Login with new password: %v", err)
	}
}

func TestApp_ReconnectsAfterConnectionLoss(t *testing.T) {
	ctx := context.Background()
	a, userID, _ := newTestApp(t)

	conn, ok := a.registry.Get(a.handle.Name())
	if !ok {
		t.Fatal("connection not registered")
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	plants, err := a.Plants(ctx, userID)
	if err != nil {
		t.Fatalf("Plants after connection loss: %v", err)
	}
	if len(plants) != 1 {
		t.Errorf("Plants = %d entries, want 1", len(plants))
	}
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	a, userID, _ := newTestApp(t)

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if a.registry.Contains(a.handle.Name()) {
		t.Error("registry entry should be released")
	}
	if _, err := a.Plants(ctx, userID); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Plants after Close: got %v, want ErrUnavailable", err)
	}
}
