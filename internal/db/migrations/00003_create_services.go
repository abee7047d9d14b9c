package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateServices, downCreateServices)
}

func upCreateServices(ctx context.Context, tx *sql.Tx) error {
	text := textType()
	return execAll(ctx, tx,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_service (
    %s,
    date        %s NOT NULL,
    title       %s NOT NULL,
    description TEXT NULL,
    done        INTEGER NOT NULL DEFAULT 0,
    notice      TEXT NULL,
    %s
)`, autoID("serviceID"), dateType(), text, refColumn("forPlant_id", "biogas_server_plant", "PlantID", "")),
		`CREATE INDEX service_plant_idx ON biogas_server_service (forPlant_id)`,
	)
}

func downCreateServices(ctx context.Context, tx *sql.Tx) error {
	return dropAll(ctx, tx, "biogas_server_service")
}
