package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePlants, downCreatePlants)
}

func upCreatePlants(ctx context.Context, tx *sql.Tx) error {
	text, num := textType(), realType()
	return execAll(ctx, tx,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_plant (
    %s,
    location %s NOT NULL,
    %s
)`, autoID("PlantID"), text, refColumn("owner_id", "biogas_server_user", "userID", "")),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_container (
    %s,
    volume %s NOT NULL,
    %s
)`, autoID("containerID"), num, refColumn("fromPlant_id", "biogas_server_plant", "PlantID", "")),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_substrate (
    %s,
    name    %s NOT NULL,
    ots     %s NOT NULL,
    biogas  %s NOT NULL,
    methane %s NOT NULL
)`, autoID("substrateID"), text, num, num, num),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS biogas_server_substrate_owner (
    %s,
    %s,
    %s
)`, autoID("id"),
			refColumn("substrate_id", "biogas_server_substrate", "substrateID", ""),
			refColumn("user_id", "biogas_server_user", "userID", "")),
		`CREATE INDEX plant_owner_idx ON biogas_server_plant (owner_id)`,
		`CREATE INDEX container_plant_idx ON biogas_server_container (fromPlant_id)`,
	)
}

func downCreatePlants(ctx context.Context, tx *sql.Tx) error {
	return dropAll(ctx, tx,
		"biogas_server_substrate_owner",
		"biogas_server_substrate",
		"biogas_server_container",
		"biogas_server_plant",
	)
}
