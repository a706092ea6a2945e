package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// collectionEntry records when a collection directory was created.
type collectionEntry struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// schema is the persistent manifest state.
type schema struct {
	Version     int                         `json:"version"`
	Format      string                      `json:"format"`
	Collections map[string]*collectionEntry `json:"collections"`
	UpgradedAt  time.Time                   `json:"upgradedAt"`
	dirty       bool
	mu          sync.RWMutex
}

// manifest manages the loading, upgrading, and saving of the schema file.
type manifest struct {
	Path   string // Path to .edubrinca/schema.json
	schema *schema
}

// newManifest initializes a manifest for the store rooted at storePath.
func newManifest(storePath, systemDir string) *manifest {
	// Manifest lives in {storePath}/{systemDir}/schema.json
	return &manifest{
		Path: filepath.Join(storePath, systemDir, "schema.json"),
		schema: &schema{
			Collections: make(map[string]*collectionEntry),
		},
	}
}

// Load reads the manifest from disk. If missing or corrupted, it starts empty (no error).
// A corrupted manifest is harmless: the upgrade recreates it from the directories.
func (m *manifest) Load() error {
	m.schema.mu.Lock()
	defer m.schema.mu.Unlock()

	data, err := os.ReadFile(m.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	if err := json.Unmarshal(data, m.schema); err != nil || m.schema.Collections == nil {
		m.schema.Version = 0
		m.schema.Collections = make(map[string]*collectionEntry)
		m.schema.dirty = true
		return nil
	}

	m.schema.dirty = false
	return nil
}

// Upgrade registers the collections and raises the version. It never lowers it.
// Returns true if anything changed.
func (m *manifest) Upgrade(version int, format string, collections []string) bool {
	m.schema.mu.Lock()
	defer m.schema.mu.Unlock()

	changed := false
	for _, c := range collections {
		if _, ok := m.schema.Collections[c]; !ok {
			m.schema.Collections[c] = &collectionEntry{Name: c, CreatedAt: time.Now().UTC()}
			changed = true
		}
	}
	if m.schema.Version < version {
		m.schema.Version = version
		changed = true
	}
	if m.schema.Format == "" {
		m.schema.Format = format
		changed = true
	}
	if changed {
		m.schema.UpgradedAt = time.Now().UTC()
		m.schema.dirty = true
	}
	return changed
}

// Save persists the manifest if it's dirty.
func (m *manifest) Save() error {
	m.schema.mu.RLock()
	if !m.schema.dirty {
		m.schema.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(m.schema, "", "  ")
	m.schema.mu.RUnlock()

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.Path), 0755); err != nil {
		return err
	}

	if err := WriteFileAtomic(m.Path, data, 0644); err != nil {
		return err
	}

	m.schema.mu.Lock()
	m.schema.dirty = false
	m.schema.mu.Unlock()

	return nil
}

// Version returns the recorded schema version.
func (m *manifest) Version() int {
	m.schema.mu.RLock()
	defer m.schema.mu.RUnlock()
	return m.schema.Version
}

// Format returns the entity encoding recorded at creation time.
func (m *manifest) Format() string {
	m.schema.mu.RLock()
	defer m.schema.mu.RUnlock()
	return m.schema.Format
}

// Len returns the number of registered collections.
func (m *manifest) Len() int {
	m.schema.mu.RLock()
	defer m.schema.mu.RUnlock()
	return len(m.schema.Collections)
}
