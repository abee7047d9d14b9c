package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/db"
)

const serviceDateLayout = "2006-01-02"

// Service is one maintenance entry in a plant's service log.
type Service struct {
	ID          int64  `db:"serviceID"`
	Date        string `db:"date"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Done        bool   `db:"done"`
	Notice      string `db:"notice"`
	PlantID     int64  `db:"forPlant_id"`
}

// DoneLabel renders Done as "Yes" or "No".
func (s Service) DoneLabel() string {
	if s.Done {
		return "Yes"
	}
	return "No"
}

// Overdue reports whether the service is not done and dated before the day
// of now. Unparseable dates are never overdue.
func (s Service) Overdue(now time.Time) bool {
	if s.Done || len(s.Date) < len(serviceDateLayout) {
		return false
	}
	due, err := time.ParseInLocation(serviceDateLayout, s.Date[:len(serviceDateLayout)], now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

type ServiceStore struct {
	db *sqlx.DB
}

func NewServiceStore(db *sqlx.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

// ListByPlant returns the service log of plantID ordered by date.
func (s *ServiceStore) ListByPlant(ctx context.Context, plantID int64) ([]*Service, error) {
	b := db.NewBindings()
	b.Bind(":plant", plantID)

	var services []*Service
	err := selectNamed(ctx, s.db, &services, `
		SELECT serviceID, date, title,
		       COALESCE(description, '') AS description,
		       done,
		       COALESCE(notice, '') AS notice,
		       forPlant_id
		FROM biogas_server_service
		WHERE forPlant_id = :plant
		ORDER BY date, serviceID
	`, b)
	if err != nil {
		return nil, err
	}
	return services, nil
}
