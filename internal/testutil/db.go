package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/db"
	_ "modernc.org/sqlite"
)

// NewTestDB opens an in-memory SQLite DB and runs all goose migrations.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// Use a file URI with shared cache so all pool connections share the
	// same in-memory database. Each test gets a unique name to avoid
	// cross-test interference.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, db.DriverSQLite); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return conn
}

// Seed inserts a user owning one plant with two containers and two service
// entries, one public substrate, one substrate private to the user and one
// private to another user. It returns the user and plant IDs.
func Seed(t *testing.T, conn *sqlx.DB, password string) (userID, plantID int64) {
	t.Helper()
	ctx := context.Background()

	res, err := conn.ExecContext(ctx,
		`INSERT INTO biogas_server_user (password, name, surname, eMail) VALUES (?, ?, ?, ?)`,
		password, "Jan", "Kowalski", "jan@example.com")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	userID, _ = res.LastInsertId()

	res, err = conn.ExecContext(ctx,
		`INSERT INTO biogas_server_plant (location, owner_id) VALUES (?, ?)`, "Wola", userID)
	if err != nil {
		t.Fatalf("seed plant: %v", err)
	}
	plantID, _ = res.LastInsertId()

	for _, v := range []float64{400, 250} {
		if _, err := conn.ExecContext(ctx,
			`INSERT INTO biogas_server_container (volume, fromPlant_id) VALUES (?, ?)`, v, plantID); err != nil {
			t.Fatalf("seed container: %v", err)
		}
	}

	services := []struct {
		date, title string
		done        bool
	}{
		{"2024-03-01", "Pump inspection", true},
		{"2024-01-15", "Mixer replacement", false},
	}
	for _, s := range services {
		if _, err := conn.ExecContext(ctx,
			`INSERT INTO biogas_server_service (date, title, done, forPlant_id) VALUES (?, ?, ?, ?)`,
			s.date, s.title, s.done, plantID); err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}

	res, err = conn.ExecContext(ctx,
		`INSERT INTO biogas_server_user (password, name) VALUES (?, ?)`, "other", "Other")
	if err != nil {
		t.Fatalf("seed other user: %v", err)
	}
	otherID, _ := res.LastInsertId()

	substrates := []struct {
		name                 string
		ots, biogas, methane float64
		owner                int64
	}{
		{"Corn silage", 90, 650, 340, 0},
		{"Chicken manure", 75, 400, 240, userID},
		{"Secret mix", 80, 500, 300, otherID},
	}
	for _, s := range substrates {
		res, err := conn.ExecContext(ctx,
			`INSERT INTO biogas_server_substrate (name, ots, biogas, methane) VALUES (?, ?, ?, ?)`,
			s.name, s.ots, s.biogas, s.methane)
		if err != nil {
			t.Fatalf("seed substrate: %v", err)
		}
		if s.owner == 0 {
			continue
		}
		id, _ := res.LastInsertId()
		if _, err := conn.ExecContext(ctx,
			`INSERT INTO biogas_server_substrate_owner (substrate_id, user_id) VALUES (?, ?)`, id, s.owner); err != nil {
			t.Fatalf("seed substrate owner: %v", err)
		}
	}
	return userID, plantID
}
