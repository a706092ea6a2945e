package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/edubrinca/pkg/core"
)

// Watch emits an event for every record file change whose "<collection>/<id>"
// matches the doublestar pattern (e.g. "plans/*" or "**").
// The returned channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %s", pattern)
	}
	if err := r.ensureInit(ctx); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, c := range core.Collections {
		if err := watcher.Add(filepath.Join(r.Path, c)); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch collection %s: %w", c, err)
		}
	}

	// Seed known ids so a rename over an existing file reads as a modification.
	known := make(map[string]bool)
	for _, c := range core.Collections {
		recs, err := r.List(ctx, c)
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
		for _, rec := range recs {
			known[c+"/"+rec.ID] = true
		}
	}

	events := make(chan core.Event)
	r.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return nil

			case fsEvent, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				e, matched := r.mapEvent(fsEvent, pattern, known)
				if !matched {
					continue
				}
				r.recordEvent()
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				r.config.Logger.Error("fsnotify error", "error", wErr)
				if r.config.ErrorHandler != nil {
					r.config.ErrorHandler(wErr)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(fmt.Errorf("watcher panic: %w", err))
		} else {
			r.config.Logger.Error("watcher panic", "error", err)
		}
	}))

	return events, nil
}

// mapEvent converts a filesystem event into a store event, filtering temp files and non-matching ids.
func (r *Repository) mapEvent(event fsnotify.Event, pattern string, known map[string]bool) (core.Event, bool) {
	collection := filepath.Base(filepath.Dir(event.Name))
	if !core.IsCollection(collection) {
		return core.Event{}, false
	}
	id, ok := r.idFromFile(filepath.Base(event.Name))
	if !ok {
		return core.Event{}, false
	}
	key := collection + "/" + id
	if match, err := doublestar.Match(pattern, key); err != nil || !match {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
		if known[key] {
			eType = core.EventModify
		}
		known[key] = true
	case event.Has(fsnotify.Write):
		eType = core.EventModify
		known[key] = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
		delete(known, key)
	default:
		return core.Event{}, false
	}

	r.config.Logger.Debug("store event", "type", eType, "collection", collection, "id", id)
	return core.Event{
		Type:       eType,
		Collection: collection,
		ID:         id,
		Timestamp:  time.Now().Unix(),
	}, true
}
