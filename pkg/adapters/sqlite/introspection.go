package sqlite

import "github.com/aretw0/introspection"

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	File          string `json:"file"`
	SchemaVersion int    `json:"schema_version"`
	ReadOnly      bool   `json:"read_only"`
	Open          bool   `json:"open"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{
		File:          r.file,
		SchemaVersion: r.version,
		ReadOnly:      r.config.ReadOnly,
		Open:          r.db != nil,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
