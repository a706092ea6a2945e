// Package sqlite implements core.Repository on a single SQLite database file,
// one table per collection, using the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/aretw0/edubrinca/pkg/core"
)

// DefaultFileName is used when Config.Path names a directory.
const DefaultFileName = "edubrinca.db"

var fileExtensions = []string{".db", ".sqlite", ".sqlite3"}

// Config holds the configuration for the SQLite repository.
type Config struct {
	// Path is the database file when it has a SQLite extension or already
	// exists as a regular file. Any other path is a directory that will hold
	// DefaultFileName.
	Path     string
	ReadOnly bool
	Logger   *slog.Logger
}

// Repository implements core.Repository on SQLite.
type Repository struct {
	config Config
	file   string

	mu      sync.RWMutex
	db      *sql.DB
	version int
}

// NewRepository creates a new SQLite-backed repository.
// The database is opened lazily on first use.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{config: config, file: databaseFile(config.Path)}
}

func databaseFile(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if slices.Contains(fileExtensions, ext) {
		return path
	}
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return path
	}
	return filepath.Join(path, DefaultFileName)
}

// Initialize opens the database and upgrades its schema to core.SchemaVersion.
// The upgrade only ever creates what is missing, so it is safe to repeat.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.openLocked(ctx)
}

func (r *Repository) openLocked(ctx context.Context) error {
	if r.db != nil {
		return nil
	}
	if r.config.ReadOnly {
		if _, err := os.Stat(r.file); err != nil {
			return fmt.Errorf("database is not readable: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(r.file), 0755); err != nil {
		return fmt.Errorf("failed to create database dir: %w", err)
	}

	db, err := sql.Open("sqlite", r.file)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time keeps "database is locked" away from the upserts.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	version, err := migrate(ctx, db)
	if err != nil {
		db.Close()
		return fmt.Errorf("migration: %w", err)
	}

	r.db = db
	r.version = version
	r.config.Logger.Debug("database opened", "file", r.file, "version", version)
	return nil
}

// migrate creates the collection tables and raises user_version.
// It never lowers the version of a database written by a newer build.
func migrate(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var current int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return 0, err
	}

	for _, c := range core.Collections {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`, c)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("create %s: %w", c, err)
		}
	}

	if current < core.SchemaVersion {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", core.SchemaVersion)); err != nil {
			return 0, err
		}
		current = core.SchemaVersion
	}
	return current, tx.Commit()
}

func (r *Repository) conn(ctx context.Context) (*sql.DB, error) {
	r.mu.RLock()
	db := r.db
	r.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.openLocked(ctx); err != nil {
		return nil, err
	}
	return r.db, nil
}

// Put inserts or replaces the record.
func (r *Repository) Put(ctx context.Context, collection string, rec core.Record) error {
	if rec.ID == "" {
		return core.ErrMissingID
	}
	if !core.IsCollection(collection) {
		return core.ErrUnknownCollection
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf(`INSERT INTO %s (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`, collection)
	if _, err := db.ExecContext(ctx, stmt, rec.ID, string(rec.Data), core.NowMillis()); err != nil {
		return fmt.Errorf("failed to upsert %s/%s: %w", collection, rec.ID, err)
	}
	r.config.Logger.Debug("record saved", "collection", collection, "id", rec.ID)
	return nil
}

// Get reads one record.
func (r *Repository) Get(ctx context.Context, collection, id string) (core.Record, error) {
	if !core.IsCollection(collection) {
		return core.Record{}, core.ErrUnknownCollection
	}
	db, err := r.conn(ctx)
	if err != nil {
		return core.Record{}, err
	}

	var data string
	err = db.QueryRowContext(ctx, fmt.Sprintf("SELECT data FROM %s WHERE id = ?", collection), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, core.ErrNotFound
	}
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{ID: id, Data: []byte(data)}, nil
}

// List reads every record of a collection.
func (r *Repository) List(ctx context.Context, collection string) ([]core.Record, error) {
	if !core.IsCollection(collection) {
		return nil, core.ErrUnknownCollection
	}
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT id, data FROM %s ORDER BY id", collection))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		records = append(records, core.Record{ID: id, Data: []byte(data)})
	}
	return records, rows.Err()
}

// Delete removes the record. A missing record is not an error.
func (r *Repository) Delete(ctx context.Context, collection, id string) error {
	if !core.IsCollection(collection) {
		return core.ErrUnknownCollection
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", collection), id); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Close releases the database. The next operation reopens it.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}
