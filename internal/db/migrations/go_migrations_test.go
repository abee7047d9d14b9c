package migrations

import (
	"strings"
	"testing"
)

func TestRefColumn(t *testing.T) {
	tests := []struct {
		dialect string
		mods    string
		want    string
	}{
		{
			dialect: "sqlite3",
			want:    "owner_id INTEGER NOT NULL REFERENCES biogas_server_user (userID) ON DELETE CASCADE",
		},
		{
			dialect: "sqlite3",
			mods:    "UNIQUE",
			want:    "owner_id INTEGER NOT NULL UNIQUE REFERENCES biogas_server_user (userID) ON DELETE CASCADE",
		},
		{
			dialect: "mysql",
			want:    "owner_id INTEGER NOT NULL,\n    FOREIGN KEY (owner_id) REFERENCES biogas_server_user (userID) ON DELETE CASCADE",
		},
		{
			dialect: "mysql",
			mods:    "UNIQUE",
			want:    "owner_id INTEGER NOT NULL UNIQUE,\n    FOREIGN KEY (owner_id) REFERENCES biogas_server_user (userID) ON DELETE CASCADE",
		},
	}

	prev := dialect
	t.Cleanup(func() { SetDialect(prev) })

	for _, tc := range tests {
		t.Run(tc.dialect+"/"+tc.mods, func(t *testing.T) {
			SetDialect(tc.dialect)
			got := refColumn("owner_id", "biogas_server_user", "userID", tc.mods)
			if got != tc.want {
				t.Errorf("refColumn = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRefColumn_MySQLHasNoInlineReference(t *testing.T) {
	prev := dialect
	t.Cleanup(func() { SetDialect(prev) })
	SetDialect("mysql")

	col := strings.SplitN(refColumn("fromPlant_id", "biogas_server_plant", "PlantID", ""), ",", 2)[0]
	if strings.Contains(col, "REFERENCES") {
		t.Errorf("column definition %q carries an inline reference InnoDB would ignore", col)
	}
}
