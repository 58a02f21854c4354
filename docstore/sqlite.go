package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps documents as JSON rows in a single SQLite table, keyed by
// collection. It backs local development and the test suite.
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// NewSQLiteStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the documents table.
func NewSQLiteStore(path, name string) (*SQLiteStore, error) {
	if path == "" {
		return nil, ErrEmptyURL
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("docstore: create data dir: %w", err)
	}
	// Pragmas go in the DSN so every pooled connection gets them. WAL lets
	// readers run alongside the single writer; busy_timeout makes concurrent
	// inserts wait instead of failing with SQLITE_BUSY.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("docstore: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if name == "" {
		name = filepath.Base(path)
	}
	s := &SQLiteStore{db: db, name: name}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: ensure schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    body TEXT NOT NULL,
    inserted_at TEXT NOT NULL
);
`)
	return err
}

// InsertOne encodes doc as JSON and stores it under a fresh UUID.
func (s *SQLiteStore) InsertOne(ctx context.Context, collection string, doc any) (string, error) {
	if collection == "" {
		return "", ErrEmptyCollection
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("docstore: encode document: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body, inserted_at) VALUES (?, ?, ?, ?)`,
		id, collection, string(body), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("docstore: insert into %s: %w", collection, err)
	}
	return id, nil
}

// ListCollectionNames returns every collection that holds at least one document.
func (s *SQLiteStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindOne decodes the document with the given id into out. FindOne and Count
// are read helpers for tests and local inspection; the API itself never reads
// reports back.
func (s *SQLiteStore) FindOne(ctx context.Context, collection, id string, out any) error {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), out)
}

// Count returns the number of documents in collection.
func (s *SQLiteStore) Count(ctx context.Context, collection string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE collection = ?`, collection).Scan(&n)
	return n, err
}

func (s *SQLiteStore) Name() string {
	return s.name
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}
