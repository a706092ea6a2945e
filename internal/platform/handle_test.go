package platform

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/edubrinca/pkg/adapters/memory"
	"github.com/aretw0/edubrinca/pkg/core"
)

// countingRepo records Initialize calls and can fail the first ones.
type countingRepo struct {
	*memory.Repository
	inits    atomic.Int32
	failures atomic.Int32
	delay    time.Duration
}

func (r *countingRepo) Initialize(ctx context.Context) error {
	r.inits.Add(1)
	time.Sleep(r.delay)
	if r.failures.Load() > 0 {
		r.failures.Add(-1)
		return errors.New("disk not mounted")
	}
	return r.Repository.Initialize(ctx)
}

func TestHandle_RacingFirstOpens(t *testing.T) {
	repo := &countingRepo{Repository: memory.NewRepository(), delay: 20 * time.Millisecond}
	h := newHandle(repo)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.List(ctx, core.CollectionPlans)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), repo.inits.Load())
	state := h.State().(HandleState)
	assert.True(t, state.Ready)
	assert.Equal(t, 1, state.Opens)
}

func TestHandle_FailedOpenIsRetried(t *testing.T) {
	repo := &countingRepo{Repository: memory.NewRepository()}
	repo.failures.Store(1)
	h := newHandle(repo)
	ctx := context.Background()

	_, err := h.List(ctx, core.CollectionPlans)
	require.Error(t, err)

	_, err = h.List(ctx, core.CollectionPlans)
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.inits.Load())
}

func TestHandle_CloseReopens(t *testing.T) {
	repo := &countingRepo{Repository: memory.NewRepository()}
	h := newHandle(repo)
	ctx := context.Background()

	require.NoError(t, h.Put(ctx, core.CollectionPlans, core.Record{ID: "p1", Data: []byte(`{"id":"p1"}`)}))
	require.NoError(t, h.Close())
	assert.False(t, h.State().(HandleState).Ready)

	_, err := h.Get(ctx, core.CollectionPlans, "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), repo.inits.Load())
}

func TestHandle_WatchUnsupported(t *testing.T) {
	h := newHandle(memory.NewRepository())
	_, err := h.Watch(context.Background(), "**")
	assert.Error(t, err)
	assert.Equal(t, "memory", h.ComponentType())
}
