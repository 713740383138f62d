package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the local SQLite database backing the key-value table.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the key-value table.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in effect.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// KV returns the key-value table of this store.
func (s *Store) KV() *KV {
	return &KV{drv: s.drv}
}

// migrate creates the key-value table if it does not exist.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	query, args := entsql.Dialect(dialect.SQLite).
		CreateTable(kvTable).
		IfNotExists().
		Columns(
			entsql.Column(kvColumnName).Type("TEXT").Attr("NOT NULL"),
			entsql.Column(kvColumnValue).Type("TEXT").Attr("NOT NULL"),
			entsql.Column(kvColumnUpdatedAt).Type("TEXT").Attr("NOT NULL"),
		).
		PrimaryKey(kvColumnName).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("create %s table: %w", kvTable, err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path under dataHome, falling
// back to ~/.local/share when dataHome is empty, and creates its directory.
func DefaultDBPath(dataHome string) (string, error) {
	dir, err := DataDir(dataHome)
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "wardtrain.db")
	return p, EnsureDir(p)
}

// DataDir returns the application data directory under dataHome
// (or ~/.local/share when empty).
func DataDir(dataHome string) (string, error) {
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "wardtrain"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
