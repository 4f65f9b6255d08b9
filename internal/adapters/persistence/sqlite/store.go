// Package sqlite implements the component preference store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jsamuelsen11/guise/internal/ports"
)

//go:embed schema.sql
var schemaSQL string

var _ ports.PreferenceStore = (*Store)(nil)

// Store persists preference values, one row per application, component
// path, and property name.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema. The
// parent directory is created when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating preference directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening preference store %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying preference schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Load returns the values stored for the component at path.
func (s *Store) Load(ctx context.Context, application, path string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value FROM preferences WHERE application = ? AND path = ?`,
		application, path)
	if err != nil {
		return nil, fmt.Errorf("querying preferences of %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning preference of %s: %w", path, err)
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading preferences of %s: %w", path, err)
	}
	return values, nil
}

// Save replaces the values stored for the component at path in one
// transaction.
func (s *Store) Save(ctx context.Context, application, path string, values map[string]string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning preference save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM preferences WHERE application = ? AND path = ?`,
		application, path); err != nil {
		return fmt.Errorf("clearing preferences of %s: %w", path, err)
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	for name, value := range values {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO preferences (application, path, name, value, updated_at) VALUES (?, ?, ?, ?, ?)`,
			application, path, name, value, stamp); err != nil {
			return fmt.Errorf("storing preference %s of %s: %w", name, path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing preferences of %s: %w", path, err)
	}
	return nil
}

// Name identifies the store in health checks.
func (s *Store) Name() string { return "preferences" }

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
