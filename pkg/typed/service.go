// Package typed offers per-collection, type-safe access to the store on top of core.Service.
package typed

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/edubrinca/pkg/core"
)

// entityPtr binds a struct type to its pointer, which implements core.Entity.
type entityPtr[E any] interface {
	*E
	core.Entity
}

// Collection is a typed view of one store collection.
type Collection[E any, P entityPtr[E]] struct {
	svc  *core.Service
	name string
}

// NewCollection creates the typed view for the collection that holds E.
//
//	plans := typed.NewCollection[core.LessonPlan](svc)
func NewCollection[E any, P entityPtr[E]](svc *core.Service) *Collection[E, P] {
	var zero E
	return &Collection[E, P]{svc: svc, name: P(&zero).Kind().Collection()}
}

// Name returns the underlying collection name.
func (c *Collection[E, P]) Name() string {
	return c.name
}

// Put upserts the entity under its id.
func (c *Collection[E, P]) Put(ctx context.Context, e P) error {
	rec, err := Encode(e)
	if err != nil {
		return err
	}
	return c.svc.Put(ctx, c.name, rec)
}

// Get retrieves one entity.
func (c *Collection[E, P]) Get(ctx context.Context, id string) (P, error) {
	rec, err := c.svc.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	return decode[E, P](rec)
}

// List returns every entity, newest first. Any read or decode fault is returned.
func (c *Collection[E, P]) List(ctx context.Context) ([]P, error) {
	recs, err := c.svc.List(ctx, c.name)
	if err != nil {
		return nil, err
	}

	result := make([]P, 0, len(recs))
	for _, rec := range recs {
		e, err := decode[E, P](rec)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	SortNewestFirst(result)
	return result, nil
}

// ListAll is List for callers that only render: any fault is logged
// and reported as an empty, non-nil result.
func (c *Collection[E, P]) ListAll(ctx context.Context) []P {
	result, err := c.List(ctx)
	if err != nil {
		c.svc.Logger().Error("listing failed, showing nothing", "collection", c.name, "error", err)
		return []P{}
	}
	return result
}

// Delete removes an entity. Unknown ids are ignored.
func (c *Collection[E, P]) Delete(ctx context.Context, id string) error {
	return c.svc.Delete(ctx, c.name, id)
}

// Watch observes changes to this collection only.
func (c *Collection[E, P]) Watch(ctx context.Context) (<-chan core.Event, error) {
	return c.svc.Watch(ctx, c.name+"/*")
}

// Put stores any entity in the collection its variant belongs to.
func Put(ctx context.Context, svc *core.Service, e core.Entity) error {
	rec, err := Encode(e)
	if err != nil {
		return err
	}
	return svc.Put(ctx, e.Kind().Collection(), rec)
}

// Encode converts an entity to its storage record.
func Encode(e core.Entity) (core.Record, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return core.Record{}, fmt.Errorf("failed to marshal %s %s: %w", e.Kind(), e.EntityID(), err)
	}
	return core.Record{ID: e.EntityID(), Data: data}, nil
}

// SortNewestFirst orders entities by creation time, most recent first.
func SortNewestFirst[P core.Entity](entities []P) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Created() > entities[j].Created()
	})
}

func decode[E any, P entityPtr[E]](rec core.Record) (P, error) {
	var e E
	if err := json.Unmarshal(rec.Data, &e); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", rec.ID, err)
	}
	p := P(&e)
	if p.EntityID() == "" {
		p.SetEntityID(rec.ID)
	}
	return p, nil
}
