package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version
const SchemaVersion = "1"

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS documents (
	document_id TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	path        TEXT NOT NULL DEFAULT '',
	command     TEXT NOT NULL,
	encoding    TEXT NOT NULL DEFAULT '',
	line_count  INTEGER NOT NULL DEFAULT 0,
	row_count   INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL
)`

const createRowsTable = `
CREATE TABLE IF NOT EXISTS document_rows (
	document_id TEXT NOT NULL REFERENCES documents(document_id) ON DELETE CASCADE,
	row_index   INTEGER NOT NULL,
	data        TEXT NOT NULL,
	PRIMARY KEY (document_id, row_index)
)`

const createWarningsTable = `
CREATE TABLE IF NOT EXISTS warnings (
	document_id TEXT NOT NULL REFERENCES documents(document_id) ON DELETE CASCADE,
	line        INTEGER NOT NULL DEFAULT 0,
	column_name TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL
)`

const createMetadataTable = `
CREATE TABLE IF NOT EXISTS store_metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_documents_command ON documents(command)`,
	`CREATE INDEX IF NOT EXISTS idx_warnings_document ON warnings(document_id)`,
}

// CreateSchema creates all tables and indexes in one transaction.
// Must be called with PRAGMA foreign_keys = ON.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []struct {
		name string
		ddl  string
	}{
		{"documents", createDocumentsTable},
		{"document_rows", createRowsTable},
		{"warnings", createWarningsTable},
		{"store_metadata", createMetadataTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range indexes {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO store_metadata (key, value) VALUES ('schema_version', ?)`,
		SchemaVersion,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetSchemaVersion returns the stored schema version, or "0" when the
// schema has not been created.
func GetSchemaVersion(db *sql.DB) (string, error) {
	var exists int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'store_metadata'`,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check metadata table: %w", err)
	}
	if exists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow(`SELECT value FROM store_metadata WHERE key = 'schema_version'`).Scan(&version)
	if err == sql.ErrNoRows {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
