// Package lifecycle exposes store change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/edubrinca/pkg/core"
)

// changeSource forwards store events, optionally keeping only some types.
type changeSource struct {
	in    <-chan core.Event
	out   chan lifecycle.Event
	types map[core.EventType]bool
}

// NewSource adapts a store event channel to lifecycle.Source. With no types
// every event is forwarded; otherwise only the listed types are.
// Events() closes when the input closes or the Start context ends.
func NewSource(events <-chan core.Event, types ...core.EventType) lifecycle.Source {
	s := &changeSource{in: events, out: make(chan lifecycle.Event)}
	if len(types) > 0 {
		s.types = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start runs the forwarding loop under lifecycle.Go and returns immediately.
func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *changeSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-s.in:
			if !ok {
				return nil
			}
		}
		if s.types != nil && !s.types[e.Type] {
			continue
		}
		// core.Event satisfies lifecycle.Event through String().
		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
