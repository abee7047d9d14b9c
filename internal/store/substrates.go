package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/db"
)

// Substrate is a fermentable feedstock with its organic dry matter share and
// yields per unit.
type Substrate struct {
	ID      int64   `db:"substrateID"`
	Name    string  `db:"name"`
	OTS     float64 `db:"ots"`
	Biogas  float64 `db:"biogas"`
	Methane float64 `db:"methane"`
}

type SubstrateStore struct {
	db *sqlx.DB
}

func NewSubstrateStore(db *sqlx.DB) *SubstrateStore {
	return &SubstrateStore{db: db}
}

// ListAvailable returns the public substrates (no owner rows) together with
// the substrates owned by userID.
func (s *SubstrateStore) ListAvailable(ctx context.Context, userID int64) ([]*Substrate, error) {
	b := db.NewBindings()
	b.Bind(":user", userID)

	var subs []*Substrate
	err := selectNamed(ctx, s.db, &subs, `
		SELECT s.substrateID AS substrateID, s.name AS name, s.ots AS ots, s.biogas AS biogas, s.methane AS methane
		FROM biogas_server_substrate AS s
		WHERE NOT EXISTS (
			SELECT 1 FROM biogas_server_substrate_owner AS o WHERE o.substrate_id = s.substrateID
		)
		UNION
		SELECT s.substrateID AS substrateID, s.name AS name, s.ots AS ots, s.biogas AS biogas, s.methane AS methane
		FROM biogas_server_substrate AS s
		JOIN biogas_server_substrate_owner AS o ON o.substrate_id = s.substrateID
		WHERE o.user_id = :user
		ORDER BY substrateID
	`, b)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// Get returns substrateID when it is available to userID, or ErrNotFound.
func (s *SubstrateStore) Get(ctx context.Context, userID, substrateID int64) (*Substrate, error) {
	subs, err := s.ListAvailable(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.ID == substrateID {
			return sub, nil
		}
	}
	return nil, ErrNotFound
}
