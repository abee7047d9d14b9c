package store

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/db"
	"github.com/joestump/biogas/internal/validate"
)

var (
	// ErrInvalidPhone is returned when a number does not match E.164.
	ErrInvalidPhone = errors.New("please provide valid phone number")

	// ErrDuplicatePhone is returned when the user already has the number.
	ErrDuplicatePhone = errors.New("phone number already exists")
)

// Phone is a phone number assigned to a user.
type Phone struct {
	ID      int64  `db:"phoneID"`
	Number  string `db:"phoneNumber"`
	OwnerID int64  `db:"owner_id"`
}

type PhoneStore struct {
	db *sqlx.DB
}

func NewPhoneStore(db *sqlx.DB) *PhoneStore {
	return &PhoneStore{db: db}
}

// List returns the numbers of ownerID in insertion order.
func (s *PhoneStore) List(ctx context.Context, ownerID int64) ([]*Phone, error) {
	b := db.NewBindings()
	b.Bind(":user", ownerID)

	var phones []*Phone
	err := selectNamed(ctx, s.db, &phones, `
		SELECT phoneID, phoneNumber, owner_id FROM biogas_server_phonenumber
		WHERE owner_id = :user ORDER BY phoneID
	`, b)
	if err != nil {
		return nil, err
	}
	return phones, nil
}

// Exists reports whether ownerID already has number.
func (s *PhoneStore) Exists(ctx context.Context, ownerID int64, number string) (bool, error) {
	b := db.NewBindings()
	b.Bind(":user", ownerID)
	b.Bind(":number", number)

	var ids []int64
	err := selectNamed(ctx, s.db, &ids, `
		SELECT phoneID FROM biogas_server_phonenumber
		WHERE owner_id = :user AND phoneNumber = :number
	`, b)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// Add assigns a new number to ownerID.
func (s *PhoneStore) Add(ctx context.Context, ownerID int64, number string) (*Phone, error) {
	if !validate.IsPhoneNumber(number) {
		return nil, ErrInvalidPhone
	}
	exists, err := s.Exists(ctx, ownerID, number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePhone
	}

	b := db.NewBindings()
	b.Bind(":number", number)
	b.Bind(":user", ownerID)

	res, err := execNamed(ctx, s.db, `
		INSERT INTO biogas_server_phonenumber (phoneNumber, owner_id) VALUES (:number, :user)
	`, b)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Phone{ID: id, Number: number, OwnerID: ownerID}, nil
}

// Update replaces the number of an existing phone owned by ownerID.
func (s *PhoneStore) Update(ctx context.Context, ownerID, phoneID int64, number string) error {
	if !validate.IsPhoneNumber(number) {
		return ErrInvalidPhone
	}

	b := db.NewBindings()
	b.Bind(":number", number)
	b.Bind(":id", phoneID)
	b.Bind(":user", ownerID)

	res, err := execNamed(ctx, s.db, `
		UPDATE biogas_server_phonenumber SET phoneNumber = :number
		WHERE phoneID = :id AND owner_id = :user
	`, b)
	if err != nil {
		return err
	}
	return affected(res)
}

// Remove deletes a phone owned by ownerID.
func (s *PhoneStore) Remove(ctx context.Context, ownerID, phoneID int64) error {
	b := db.NewBindings()
	b.Bind(":id", phoneID)
	b.Bind(":user", ownerID)

	res, err := execNamed(ctx, s.db, `
		DELETE FROM biogas_server_phonenumber WHERE phoneID = :id AND owner_id = :user
	`, b)
	if err != nil {
		return err
	}
	return affected(res)
}
