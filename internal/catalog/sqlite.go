package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"patternsmith/internal/model"
)

// SQLiteStore persists templates in a single-file SQLite database. The
// binary must blank-import a database/sql driver registered as
// "sqlite3".
type SQLiteStore struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenSQLite opens the catalog database at path, creating the file and
// its directory as needed. A nil logger falls back to slog.Default.
func OpenSQLite(ctx context.Context, path string, log *slog.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, log: log}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("catalog opened", "path", path)
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS templates (
            name     TEXT PRIMARY KEY,
            note     TEXT NOT NULL DEFAULT '',
            saved_at TEXT NOT NULL,
            document BLOB NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("creating templates table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT name, note, saved_at, document
        FROM templates
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		tpl, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (Template, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT name, note, saved_at, document
        FROM templates
        WHERE name = ?
    `, name)

	tpl, err := scanTemplate(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Template{}, ErrNotFound
	}
	return tpl, err
}

func (s *SQLiteStore) Put(ctx context.Context, tpl Template) error {
	tpl, err := tpl.normalized()
	if err != nil {
		return err
	}
	doc, err := json.Marshal(tpl.Document)
	if err != nil {
		return fmt.Errorf("encoding template %q: %w", tpl.Name, err)
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO templates (name, note, saved_at, document)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            note = excluded.note,
            saved_at = excluded.saved_at,
            document = excluded.document
    `, tpl.Name, tpl.Note, tpl.SavedAt.UTC().Format(time.RFC3339Nano), doc)
	if err != nil {
		return fmt.Errorf("storing template %q: %w", tpl.Name, err)
	}
	s.log.Debug("template stored", "name", tpl.Name)
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting template %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting template %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Debug("template deleted", "name", name)
	return nil
}

// scanTemplate decodes one row through the given scan function, shared
// between Get and List.
func scanTemplate(scan func(...any) error) (Template, error) {
	var (
		tpl     Template
		savedAt string
		doc     []byte
	)
	if err := scan(&tpl.Name, &tpl.Note, &savedAt, &doc); err != nil {
		return Template{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return Template{}, fmt.Errorf("decoding template %q timestamp: %w", tpl.Name, err)
	}
	tpl.SavedAt = ts

	var d model.Document
	if err := json.Unmarshal(doc, &d); err != nil {
		return Template{}, fmt.Errorf("decoding template %q: %w", tpl.Name, err)
	}
	tpl.Document = &d
	return tpl, nil
}
