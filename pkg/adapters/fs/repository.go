package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/edubrinca/pkg/core"
)

// Repository implements core.Repository on the filesystem:
// one directory per collection, one file per entity.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	manifest      *manifest
	serializer    Serializer
	initialized   bool
	watcherActive bool
	lastEvent     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	Format    string // "json" (default) or "yaml"
	ReadOnly  bool
	Logger    *slog.Logger
	SystemDir string // e.g. ".edubrinca"
	// ErrorHandler receives runtime watcher failures that are otherwise only logged.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
// No I/O happens until the first operation.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = ".edubrinca"
	}
	if config.Format == "" {
		config.Format = "json"
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{
		Path:     config.Path,
		config:   config,
		manifest: newManifest(config.Path, config.SystemDir),
	}
}

// Initialize creates the store directory and every missing collection, then
// stamps the manifest with core.SchemaVersion. Running it again is a no-op.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.initLocked(ctx)
}

func (r *Repository) initLocked(ctx context.Context) error {
	if r.initialized {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.manifest.Load(); err != nil {
		return err
	}

	// An existing store keeps the encoding it was created with.
	format := r.config.Format
	if recorded := r.manifest.Format(); recorded != "" {
		format = recorded
	}
	if r.serializer == nil {
		s, ok := DefaultSerializers()[format]
		if !ok {
			return fmt.Errorf("unknown store format: %s", format)
		}
		r.serializer = s
	}

	if r.config.ReadOnly {
		if _, err := os.Stat(r.Path); err != nil {
			return fmt.Errorf("store path is not readable: %w", err)
		}
		r.initialized = true
		return nil
	}

	for _, c := range core.Collections {
		if err := os.MkdirAll(filepath.Join(r.Path, c), 0755); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", c, err)
		}
	}

	if r.manifest.Upgrade(core.SchemaVersion, format, core.Collections) {
		r.config.Logger.Debug("store schema upgraded", "path", r.Path, "version", core.SchemaVersion)
	}
	if err := r.manifest.Save(); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}

	r.initialized = true
	return nil
}

// ensureInit opens the store lazily on first use.
func (r *Repository) ensureInit(ctx context.Context) error {
	r.mu.RLock()
	ok := r.initialized
	r.mu.RUnlock()
	if ok {
		return nil
	}
	return r.Initialize(ctx)
}

// Put writes the record atomically, replacing any previous version.
func (r *Repository) Put(ctx context.Context, collection string, rec core.Record) error {
	if rec.ID == "" {
		return core.ErrMissingID
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := r.ensureInit(ctx); err != nil {
		return err
	}
	path, err := r.recordPath(collection, rec.ID)
	if err != nil {
		return err
	}

	data, err := r.serializer.Encode(rec.Data)
	if err != nil {
		return fmt.Errorf("failed to serialize %s/%s: %w", collection, rec.ID, err)
	}

	if err := WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	r.config.Logger.Debug("record saved", "collection", collection, "id", rec.ID)
	return nil
}

// Get reads one record.
func (r *Repository) Get(ctx context.Context, collection, id string) (core.Record, error) {
	if err := r.ensureInit(ctx); err != nil {
		return core.Record{}, err
	}
	path, err := r.recordPath(collection, id)
	if err != nil {
		return core.Record{}, err
	}
	return r.readRecord(path, id)
}

func (r *Repository) readRecord(path, id string) (core.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Record{}, core.ErrNotFound
		}
		return core.Record{}, err
	}

	data, err := r.serializer.Decode(bytes.NewReader(raw))
	if err != nil {
		return core.Record{}, fmt.Errorf("failed to parse record %s: %w", id, err)
	}
	return core.Record{ID: id, Data: data}, nil
}

// List reads every record file of a collection.
func (r *Repository) List(ctx context.Context, collection string) ([]core.Record, error) {
	if err := r.ensureInit(ctx); err != nil {
		return nil, err
	}
	if !core.IsCollection(collection) {
		return nil, core.ErrUnknownCollection
	}

	dir := filepath.Join(r.Path, collection)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) && r.config.ReadOnly {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	records := make([]core.Record, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, ok := r.idFromFile(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		rec, err := r.readRecord(filepath.Join(dir, e.Name()), id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Delete removes the record file. A missing file is not an error.
func (r *Repository) Delete(ctx context.Context, collection, id string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := r.ensureInit(ctx); err != nil {
		return err
	}
	path, err := r.recordPath(collection, id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Close marks the store closed; the next operation reopens it.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = false
	return nil
}

func (r *Repository) recordPath(collection, id string) (string, error) {
	if !core.IsCollection(collection) {
		return "", core.ErrUnknownCollection
	}
	if id == "" {
		return "", core.ErrMissingID
	}
	return filepath.Join(r.Path, collection, encodeID(id)+r.serializer.Ext()), nil
}

// idFromFile maps a file name back to the record id. Temp files are skipped.
func (r *Repository) idFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, TempFilePrefix) {
		return "", false
	}
	ext := r.serializer.Ext()
	if !strings.HasSuffix(name, ext) {
		return "", false
	}
	id, err := decodeID(strings.TrimSuffix(name, ext))
	if err != nil {
		return "", false
	}
	return id, true
}

// encodeID makes any id safe as a single file name.
// Imported ids are untrusted, so separators and leading dots are escaped.
func encodeID(id string) string {
	escaped := url.PathEscape(id)
	if strings.HasPrefix(escaped, ".") {
		escaped = "%2E" + escaped[1:]
	}
	return escaped
}

func decodeID(name string) (string, error) {
	id, err := url.PathUnescape(name)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("empty id")
	}
	return id, nil
}
