package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/db"
)

// Plant is a biogas plant owned by a user.
type Plant struct {
	ID       int64  `db:"PlantID"`
	Location string `db:"location"`
	OwnerID  int64  `db:"owner_id"`
}

// Label renders the plant as "<id> - <location>".
func (p Plant) Label() string {
	return fmt.Sprintf("%d - %s", p.ID, p.Location)
}

type PlantStore struct {
	db *sqlx.DB
}

func NewPlantStore(db *sqlx.DB) *PlantStore {
	return &PlantStore{db: db}
}

// ListByOwner returns the plants of ownerID ordered by ID.
func (s *PlantStore) ListByOwner(ctx context.Context, ownerID int64) ([]*Plant, error) {
	b := db.NewBindings()
	b.Bind(":user", ownerID)

	var plants []*Plant
	err := selectNamed(ctx, s.db, &plants, `
		SELECT PlantID, location, owner_id FROM biogas_server_plant
		WHERE owner_id = :user ORDER BY PlantID
	`, b)
	if err != nil {
		return nil, err
	}
	return plants, nil
}

// Get returns plantID if it is owned by ownerID, or ErrNotFound.
func (s *PlantStore) Get(ctx context.Context, ownerID, plantID int64) (*Plant, error) {
	b := db.NewBindings()
	b.Bind(":user", ownerID)
	b.Bind(":plant", plantID)

	var p Plant
	err := getNamed(ctx, s.db, &p, `
		SELECT PlantID, location, owner_id FROM biogas_server_plant
		WHERE PlantID = :plant AND owner_id = :user
	`, b)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Volume returns the summed volume of the plant's containers; zero when it
// has none.
func (s *PlantStore) Volume(ctx context.Context, plantID int64) (float64, error) {
	b := db.NewBindings()
	b.Bind(":plant", plantID)

	var volume float64
	err := getNamed(ctx, s.db, &volume, `
		SELECT COALESCE(SUM(volume), 0) FROM biogas_server_container WHERE fromPlant_id = :plant
	`, b)
	if err != nil {
		return 0, err
	}
	return volume, nil
}
