package store

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/biogas/internal/auth"
	"github.com/joestump/biogas/internal/db"
	"github.com/joestump/biogas/internal/validate"
)

var (
	// ErrInvalidEmail is returned when personal data carries a malformed e-mail.
	ErrInvalidEmail = errors.New("please provide valid e-mail")

	// ErrBlankPassword is returned when a new password is empty or whitespace.
	ErrBlankPassword = errors.New("new password cannot be blank")

	// ErrWrongPassword is returned when the old password does not match.
	ErrWrongPassword = errors.New("wrong old password was provided")
)

// Personal is the editable personal data of a user.
type Personal struct {
	Name    string `db:"name"`
	Surname string `db:"surname"`
	Email   string `db:"eMail"`
}

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Authenticate succeeds when exactly one user matches userID with password
// stored either in plain text (set by an administrator) or hashed.
func (s *UserStore) Authenticate(ctx context.Context, userID int64, password string) error {
	b := db.NewBindings()
	b.Bind(":user", userID)
	b.Bind(":password", password)
	b.Bind(":hashed_password", auth.HashPassword(password))

	var ids []int64
	err := selectNamed(ctx, s.db, &ids, `
		SELECT userID FROM biogas_server_user
		WHERE userID = :user AND (password = :password OR password = :hashed_password)
	`, b)
	if err != nil {
		return err
	}
	if len(ids) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// Personal returns the personal data of userID; unset fields are empty.
func (s *UserStore) Personal(ctx context.Context, userID int64) (*Personal, error) {
	b := db.NewBindings()
	b.Bind(":user", userID)

	var p Personal
	err := getNamed(ctx, s.db, &p, `
		SELECT COALESCE(name, '') AS name, COALESCE(surname, '') AS surname, COALESCE(eMail, '') AS eMail
		FROM biogas_server_user WHERE userID = :user
	`, b)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePersonal stores name, surname and e-mail. Blank name or surname is
// stored as NULL; the e-mail must be valid.
func (s *UserStore) UpdatePersonal(ctx context.Context, userID int64, p Personal) error {
	if !validate.IsEmail(p.Email) {
		return ErrInvalidEmail
	}

	b := db.NewBindings()
	b.BindValueOrNull(":name", p.Name)
	b.BindValueOrNull(":surname", p.Surname)
	b.BindValueOrNull(":email", p.Email)
	b.Bind(":user", userID)

	res, err := execNamed(ctx, s.db, `
		UPDATE biogas_server_user
		SET name = :name, surname = :surname, eMail = :email
		WHERE userID = :user
	`, b)
	if err != nil {
		return err
	}
	return affected(res)
}

// ChangePassword replaces the password after verifying the old one. The new
// password is stored hashed.
func (s *UserStore) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if blank, _ := validate.IsEmptyOrWhitespace(newPassword); blank {
		return ErrBlankPassword
	}
	if err := s.Authenticate(ctx, userID, oldPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ErrWrongPassword
		}
		return err
	}

	b := db.NewBindings()
	b.Bind(":new_password", auth.HashPassword(newPassword))
	b.Bind(":user", userID)

	res, err := execNamed(ctx, s.db, `
		UPDATE biogas_server_user SET password = :new_password WHERE userID = :user
	`, b)
	if err != nil {
		return err
	}
	return affected(res)
}
