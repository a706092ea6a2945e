// Package memory implements core.Repository in process memory.
// It backs tests and the "memory" adapter; nothing survives Close.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/edubrinca/pkg/core"
)

// Repository is a map-backed core.Repository.
type Repository struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte

	// FailPut, when set, is returned by every Put. Lets tests simulate a full disk.
	FailPut error
	// FailList, when set, is returned by every List.
	FailList error
}

// NewRepository creates an empty in-memory repository.
func NewRepository() *Repository {
	r := &Repository{}
	_ = r.Initialize(context.Background())
	return r
}

// Initialize creates every missing collection.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.collections == nil {
		r.collections = make(map[string]map[string][]byte)
	}
	for _, c := range core.Collections {
		if _, ok := r.collections[c]; !ok {
			r.collections[c] = make(map[string][]byte)
		}
	}
	return nil
}

func (r *Repository) collection(name string) (map[string][]byte, error) {
	c, ok := r.collections[name]
	if !ok {
		return nil, core.ErrUnknownCollection
	}
	return c, nil
}

// Put stores a copy of the record.
func (r *Repository) Put(ctx context.Context, collection string, rec core.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.FailPut != nil {
		return r.FailPut
	}
	if rec.ID == "" {
		return core.ErrMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.collection(collection)
	if err != nil {
		return err
	}
	c[rec.ID] = append([]byte(nil), rec.Data...)
	return nil
}

// Get returns a copy of the stored record.
func (r *Repository) Get(ctx context.Context, collection, id string) (core.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, err := r.collection(collection)
	if err != nil {
		return core.Record{}, err
	}
	data, ok := c[id]
	if !ok {
		return core.Record{}, core.ErrNotFound
	}
	return core.Record{ID: id, Data: append([]byte(nil), data...)}, nil
}

// List returns copies of every record in the collection.
func (r *Repository) List(ctx context.Context, collection string) ([]core.Record, error) {
	if r.FailList != nil {
		return nil, r.FailList
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, err := r.collection(collection)
	if err != nil {
		return nil, err
	}
	out := make([]core.Record, 0, len(c))
	for id, data := range c {
		out = append(out, core.Record{ID: id, Data: append([]byte(nil), data...)})
	}
	return out, nil
}

// Delete removes the record if present.
func (r *Repository) Delete(ctx context.Context, collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, err := r.collection(collection)
	if err != nil {
		return err
	}
	delete(c, id)
	return nil
}

// Close drops nothing; the data lives as long as the value.
func (r *Repository) Close() error { return nil }

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string { return "memory" }
