package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsers, downCreateUsers)
}

func upCreateUsers(ctx context.Context, tx *sql.Tx) error {
	text := textType()
	return execAll(ctx, tx,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_user (
    %s,
    password %s NOT NULL,
    name     %s NULL,
    surname  %s NULL,
    eMail    %s NULL
)`, autoID("userID"), text, text, text, text),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_corespondanceaddres (
    %s,
    %s,
    city       %s NULL,
    street     %s NULL,
    number     %s NULL,
    postalCode %s NULL,
    country    %s NULL
)`, autoID("id"), refColumn("userID_id", "biogas_server_user", "userID", "UNIQUE"), text, text, text, text, text),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_phonenumber (
    %s,
    phoneNumber %s NOT NULL,
    %s
)`, autoID("phoneID"), text, refColumn("owner_id", "biogas_server_user", "userID", "")),
		`CREATE INDEX phonenumber_owner_idx ON biogas_server_phonenumber (owner_id)`,
	)
}

func downCreateUsers(ctx context.Context, tx *sql.Tx) error {
	return dropAll(ctx, tx,
		"biogas_server_phonenumber",
		"biogas_server_corespondanceaddres",
		"biogas_server_user",
	)
}
