package platform

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/introspection"
	"golang.org/x/sync/singleflight"

	"github.com/aretw0/edubrinca/pkg/core"
)

// handle is the process-wide store connection. It opens the underlying
// repository on first use; racing first callers share one Initialize, and a
// failed open is retried by the next caller.
type handle struct {
	repo  core.Repository
	group singleflight.Group

	mu    sync.RWMutex
	ready bool
	opens int
}

func newHandle(repo core.Repository) *handle {
	return &handle{repo: repo}
}

func (h *handle) open(ctx context.Context) error {
	h.mu.RLock()
	ready := h.ready
	h.mu.RUnlock()
	if ready {
		return nil
	}

	_, err, _ := h.group.Do("open", func() (any, error) {
		h.mu.RLock()
		ready := h.ready
		h.mu.RUnlock()
		if ready {
			return nil, nil
		}
		if err := h.repo.Initialize(ctx); err != nil {
			return nil, err
		}
		h.mu.Lock()
		h.ready = true
		h.opens++
		h.mu.Unlock()
		return nil, nil
	})
	return err
}

func (h *handle) Initialize(ctx context.Context) error {
	return h.open(ctx)
}

func (h *handle) Put(ctx context.Context, collection string, rec core.Record) error {
	if err := h.open(ctx); err != nil {
		return err
	}
	return h.repo.Put(ctx, collection, rec)
}

func (h *handle) Get(ctx context.Context, collection, id string) (core.Record, error) {
	if err := h.open(ctx); err != nil {
		return core.Record{}, err
	}
	return h.repo.Get(ctx, collection, id)
}

func (h *handle) List(ctx context.Context, collection string) ([]core.Record, error) {
	if err := h.open(ctx); err != nil {
		return nil, err
	}
	return h.repo.List(ctx, collection)
}

func (h *handle) Delete(ctx context.Context, collection, id string) error {
	if err := h.open(ctx); err != nil {
		return err
	}
	return h.repo.Delete(ctx, collection, id)
}

// Watch forwards to the underlying repository when it supports watching.
func (h *handle) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w, ok := h.repo.(core.Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	if err := h.open(ctx); err != nil {
		return nil, err
	}
	return w.Watch(ctx, pattern)
}

// Close releases the underlying repository; the next call reopens it.
func (h *handle) Close() error {
	h.mu.Lock()
	h.ready = false
	h.mu.Unlock()
	return h.repo.Close()
}

// HandleState exposes the lazy handle for observability.
type HandleState struct {
	Ready   bool `json:"ready"`
	Opens   int  `json:"opens"`
	Backend any  `json:"backend,omitempty"`
}

// State implements introspection.Introspectable.
func (h *handle) State() any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s := HandleState{Ready: h.ready, Opens: h.opens}
	if in, ok := h.repo.(introspection.Introspectable); ok {
		s.Backend = in.State()
	}
	return s
}

// ComponentType reports the wrapped adapter's type.
func (h *handle) ComponentType() string {
	if c, ok := h.repo.(introspection.Component); ok {
		return c.ComponentType()
	}
	return "repository"
}

var _ core.Repository = (*handle)(nil)
var _ core.Watchable = (*handle)(nil)
