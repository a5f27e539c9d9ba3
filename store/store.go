// Package store persists parsed command output in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/table"
)

// ErrDocumentNotFound is returned when no document has the given ID.
var ErrDocumentNotFound = errors.New("document not found")

// Store holds parsed documents, their rows and warnings.
type Store struct {
	db *sql.DB
}

// DocumentInfo describes a stored document.
type DocumentInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path,omitempty"`
	Command   string    `json:"command"`
	Encoding  string    `json:"encoding,omitempty"`
	LineCount int       `json:"line_count"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Open opens or creates a SQLite database. Use ":memory:" for a private
// in-memory store.
func Open(dbPath string) (*Store, error) {
	dsn := dbPath
	if !strings.Contains(dsn, "?") {
		// applies to every pooled connection, unlike the PRAGMA below
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// every connection of an in-memory database is a new database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	version, err := GetSchemaVersion(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}

	if version == "0" {
		if err := CreateSchema(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument stores a parsed document with its rows and warnings in one
// transaction and returns the document ID. A document without an ID gets
// a new one.
func (s *Store) SaveDocument(ctx context.Context, doc *command.Document, commandName string, rows []table.Row, warnings []command.Warning) (string, error) {
	id := doc.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = sq.Insert("documents").
		Columns("document_id", "name", "path", "command", "encoding", "line_count", "row_count", "created_at").
		Values(id, doc.Name, doc.Path, commandName, doc.Encoding, len(doc.Lines), len(rows),
			time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(document_id) DO NOTHING").
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	// replace the rows of a document saved before
	for _, t := range []string{"document_rows", "warnings"} {
		if _, err := sq.Delete(t).Where(sq.Eq{"document_id": id}).RunWith(tx).ExecContext(ctx); err != nil {
			return "", fmt.Errorf("failed to clear %s: %w", t, err)
		}
	}
	_, err = sq.Update("documents").
		Set("row_count", len(rows)).
		Set("line_count", len(doc.Lines)).
		Where(sq.Eq{"document_id": id}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to update document: %w", err)
	}

	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return "", fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		_, err = sq.Insert("document_rows").
			Columns("document_id", "row_index", "data").
			Values(id, i, string(data)).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	for _, w := range warnings {
		_, err = sq.Insert("warnings").
			Columns("document_id", "line", "column_name", "message").
			Values(id, w.Line, w.Column, w.Message).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to insert warning: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit document: %w", err)
	}
	return id, nil
}

// SaveResult stores the outcome of a successful runner job. Failed results
// are skipped and return an empty ID.
func (s *Store) SaveResult(ctx context.Context, res command.Result) (string, error) {
	if res.Err != nil || res.Document == nil {
		return "", nil
	}

	rows := make([]table.Row, len(res.Records))
	for i, rec := range res.Records {
		rows[i] = rec.Row()
	}
	return s.SaveDocument(ctx, res.Document, res.Command, rows, res.Warnings)
}

// Documents lists stored documents, oldest first. A non-empty commandName
// restricts the list to that command.
func (s *Store) Documents(ctx context.Context, commandName string) ([]DocumentInfo, error) {
	query := sq.Select("document_id", "name", "path", "command", "encoding", "line_count", "row_count", "created_at").
		From("documents").
		OrderBy("created_at", "name")
	if commandName != "" {
		query = query.Where(sq.Eq{"command": commandName})
	}

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

// Document returns one stored document.
func (s *Store) Document(ctx context.Context, id string) (DocumentInfo, error) {
	row := sq.Select("document_id", "name", "path", "command", "encoding", "line_count", "row_count", "created_at").
		From("documents").
		Where(sq.Eq{"document_id": id}).
		RunWith(s.db).
		QueryRowContext(ctx)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentInfo{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return doc, err
}

// Rows returns the rows of a document in their original order.
func (s *Store) Rows(ctx context.Context, id string) ([]table.Row, error) {
	if _, err := s.Document(ctx, id); err != nil {
		return nil, err
	}

	rows, err := sq.Select("data").
		From("document_rows").
		Where(sq.Eq{"document_id": id}).
		OrderBy("row_index").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out []table.Row
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var row table.Row
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return nil, fmt.Errorf("failed to decode row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}

// Warnings returns the warnings recorded for a document.
func (s *Store) Warnings(ctx context.Context, id string) ([]command.Warning, error) {
	doc, err := s.Document(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := sq.Select("line", "column_name", "message").
		From("warnings").
		Where(sq.Eq{"document_id": id}).
		OrderBy("rowid").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	var out []command.Warning
	for rows.Next() {
		w := command.Warning{Source: doc.Name}
		if err := rows.Scan(&w.Line, &w.Column, &w.Message); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteDocument removes a document with its rows and warnings.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := sq.Delete("documents").
		Where(sq.Eq{"document_id": id}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return nil
}

func scanDocument(row sq.RowScanner) (DocumentInfo, error) {
	var doc DocumentInfo
	var created string
	err := row.Scan(&doc.ID, &doc.Name, &doc.Path, &doc.Command, &doc.Encoding, &doc.LineCount, &doc.RowCount, &created)
	if err != nil {
		return doc, err
	}
	doc.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return doc, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return doc, nil
}
