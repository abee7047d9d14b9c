// Package migrations contains dialect-aware Go database migrations for the
// biogas_server schema. Column types differ between SQLite and MySQL, so every
// migration is written in Go rather than as a single SQL file.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "mysql".
func SetDialect(d string) {
	dialect = d
}

// autoID returns the column definition of an auto-incrementing primary key.
func autoID(col string) string {
	if dialect == "mysql" {
		return col + " INT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	}
	return col + " INTEGER PRIMARY KEY AUTOINCREMENT"
}

// refColumn returns the definition of an integer column referencing
// table(refCol) with ON DELETE CASCADE. InnoDB ignores inline column
// references, so on MySQL the constraint is emitted as a table-level
// FOREIGN KEY clause following the column.
func refColumn(col, table, refCol, modifiers string) string {
	def := col + " INTEGER NOT NULL"
	if modifiers != "" {
		def += " " + modifiers
	}
	ref := fmt.Sprintf("REFERENCES %s (%s) ON DELETE CASCADE", table, refCol)
	if dialect == "mysql" {
		return fmt.Sprintf("%s,\n    FOREIGN KEY (%s) %s", def, col, ref)
	}
	return def + " " + ref
}

func textType() string {
	if dialect == "mysql" {
		return "VARCHAR(255)"
	}
	return "TEXT"
}

func realType() string {
	if dialect == "mysql" {
		return "DOUBLE"
	}
	return "REAL"
}

func dateType() string {
	if dialect == "mysql" {
		return "DATE"
	}
	return "TEXT"
}

func execAll(ctx context.Context, tx *sql.Tx, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

func dropAll(ctx context.Context, tx *sql.Tx, tables ...string) error {
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+t); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
	}
	return nil
}
