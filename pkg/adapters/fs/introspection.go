package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	SystemDir     string     `json:"system_dir"`
	Format        string     `json:"format"`
	SchemaVersion int        `json:"schema_version"`
	Collections   int        `json:"collections"`
	ReadOnly      bool       `json:"read_only"`
	Initialized   bool       `json:"initialized"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	format := r.config.Format
	if r.serializer != nil {
		format = r.serializer.Ext()[1:]
	}

	return RepositoryState{
		Path:          r.Path,
		SystemDir:     r.config.SystemDir,
		Format:        format,
		SchemaVersion: r.manifest.Version(),
		Collections:   r.manifest.Len(),
		ReadOnly:      r.config.ReadOnly,
		Initialized:   r.initialized,
		WatcherActive: r.watcherActive,
		LastEvent:     r.lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordEvent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastEvent = &now
}
