package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/db"
	"github.com/joestump/biogas/internal/validate"
)

// ErrInvalidAddress is returned when a correspondence address fails validation.
var ErrInvalidAddress = errors.New("invalid address")

// Address is a user's correspondence address.
type Address struct {
	City       string `db:"city"`
	Street     string `db:"street"`
	Number     string `db:"number"`
	PostalCode string `db:"postalCode"`
	Country    string `db:"country"`
}

// Validate checks the address number, requires street and city, and rejects
// fields starting with whitespace.
func (a Address) Validate() error {
	if !validate.IsAddressNumber(a.Number) {
		return fmt.Errorf("%w: please provide valid address number", ErrInvalidAddress)
	}
	if isBlank(a.Street) || isBlank(a.City) {
		return fmt.Errorf("%w: city and street fields cannot be blank", ErrInvalidAddress)
	}
	for _, f := range []string{a.Street, a.City, a.Number, a.Country, a.PostalCode} {
		if lead, _ := validate.BeginsWithWhitespace(f); lead {
			return fmt.Errorf("%w: address field cannot begin with whitespace", ErrInvalidAddress)
		}
	}
	return nil
}

func isBlank(s string) bool {
	blank, _ := validate.IsEmptyOrWhitespace(s)
	return blank
}

type AddressStore struct {
	db *sqlx.DB
}

func NewAddressStore(db *sqlx.DB) *AddressStore {
	return &AddressStore{db: db}
}

// Get returns the address of userID, or ErrNotFound.
func (s *AddressStore) Get(ctx context.Context, userID int64) (*Address, error) {
	b := db.NewBindings()
	b.Bind(":user", userID)

	var a Address
	err := getNamed(ctx, s.db, &a, `
		SELECT COALESCE(city, '') AS city,
		       COALESCE(street, '') AS street,
		       COALESCE(number, '') AS number,
		       COALESCE(postalCode, '') AS postalCode,
		       COALESCE(country, '') AS country
		FROM biogas_server_corespondanceaddres
		WHERE userID_id = :user
	`, b)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Save validates a and updates the user's address, inserting it when the
// user has none yet. Blank optional fields are stored as NULL.
func (s *AddressStore) Save(ctx context.Context, userID int64, a Address) error {
	if err := a.Validate(); err != nil {
		return err
	}

	b := db.NewBindings()
	b.Bind(":user", userID)

	var count int
	if err := getNamed(ctx, s.db, &count, `
		SELECT COUNT(*) FROM biogas_server_corespondanceaddres WHERE userID_id = :user
	`, b); err != nil {
		return err
	}

	query := `
		INSERT INTO biogas_server_corespondanceaddres (userID_id, city, street, number, postalCode, country)
		VALUES (:user, :city, :street, :number, :code, :country)
	`
	if count == 1 {
		query = `
			UPDATE biogas_server_corespondanceaddres
			SET city = :city, street = :street, number = :number, postalCode = :code, country = :country
			WHERE userID_id = :user
		`
	}

	b.BindValueOrNull(":city", a.City)
	b.BindValueOrNull(":street", a.Street)
	b.BindValueOrNull(":number", a.Number)
	b.BindValueOrNull(":code", a.PostalCode)
	b.BindValueOrNull(":country", a.Country)

	_, err := execNamed(ctx, s.db, query, b)
	return err
}
