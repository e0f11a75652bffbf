package l3_service

import (
	"context"
	"testing"
	"time"

	"picktracker/internal/domain"
	l1_service "picktracker/internal/service/l1"

	"github.com/stretchr/testify/require"
)

// fakeRecalculation writes a fresh copy of every view when run
type fakeRecalculation struct {
	cache   l1_service.ViewCacheService
	err     error
	running bool
	runs    int
}

func (f *fakeRecalculation) Run(ctx context.Context, trigger RecalculationTrigger) (*RecalculationResult, error) {
	f.runs++
	if f.err != nil {
		return nil, f.err
	}
	for _, key := range domain.AllViewKeys() {
		if err := f.cache.Put(ctx, domain.ViewResult{Key: key, TotalPositions: 3, CachedAt: time.Now().UTC()}); err != nil {
			return nil, err
		}
	}
	return &RecalculationResult{NumViews: 10}, nil
}

func (f *fakeRecalculation) Start(ctx context.Context, trigger RecalculationTrigger) error {
	return nil
}

func (f *fakeRecalculation) IsRunning() bool {
	return f.running
}

func (f *fakeRecalculation) Progress() domain.ProgressSnapshot {
	return domain.NewProgress().Snapshot()
}

func (f *fakeRecalculation) IsDue(ctx context.Context) (bool, *time.Time, error) {
	return false, nil, nil
}

func newViewReader(t *testing.T) (ViewReaderService, l1_service.ViewCacheService, *fakeRecalculation) {
	cache := l1_service.NewViewCacheService(7*24*time.Hour, l1_service.NewFileViewCacheBackend(t.TempDir()))
	recalc := &fakeRecalculation{cache: cache}
	return NewViewReaderService(cache, recalc), cache, recalc
}

func Test_viewReaderServiceHandler_GetView(t *testing.T) {
	ctx := context.Background()
	key := domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal}
	stale := domain.ViewResult{Key: key, TotalPositions: 1, CachedAt: time.Now().UTC().Add(-8 * 24 * time.Hour)}

	t.Run("fresh hit", func(t *testing.T) {
		reader, cache, recalc := newViewReader(t)
		require.NoError(t, cache.Put(ctx, domain.ViewResult{Key: key, TotalPositions: 2, CachedAt: time.Now().UTC()}))

		got, err := reader.GetView(ctx, key, StalePolicy_Recompute)
		require.NoError(t, err)
		require.False(t, got.Stale)
		require.Nil(t, got.Warning)
		require.Equal(t, 2, got.View.TotalPositions)
		require.Equal(t, "file", got.Source)
		require.Equal(t, 0, recalc.runs)
	})

	t.Run("stale served with a warning", func(t *testing.T) {
		reader, cache, recalc := newViewReader(t)
		require.NoError(t, cache.Put(ctx, stale))

		got, err := reader.GetView(ctx, key, StalePolicy_Serve)
		require.NoError(t, err)
		require.True(t, got.Stale)
		require.NotNil(t, got.Warning)
		require.Equal(t, 1, got.View.TotalPositions)
		require.Equal(t, 0, recalc.runs)
	})

	t.Run("stale recomputed", func(t *testing.T) {
		reader, cache, recalc := newViewReader(t)
		require.NoError(t, cache.Put(ctx, stale))

		got, err := reader.GetView(ctx, key, StalePolicy_Recompute)
		require.NoError(t, err)
		require.False(t, got.Stale)
		require.Equal(t, 3, got.View.TotalPositions)
		require.Equal(t, 1, recalc.runs)
	})

	t.Run("miss recomputes", func(t *testing.T) {
		reader, _, recalc := newViewReader(t)

		got, err := reader.GetView(ctx, key, StalePolicy_Serve)
		require.NoError(t, err)
		require.Equal(t, 3, got.View.TotalPositions)
		require.Equal(t, 1, recalc.runs)
	})

	t.Run("stale served while another pass runs", func(t *testing.T) {
		reader, cache, recalc := newViewReader(t)
		recalc.err = domain.ErrAlreadyRunning
		require.NoError(t, cache.Put(ctx, stale))

		got, err := reader.GetView(ctx, key, StalePolicy_Recompute)
		require.NoError(t, err)
		require.True(t, got.Stale)
		require.Contains(t, *got.Warning, "in progress")
	})

	t.Run("miss while another pass runs", func(t *testing.T) {
		reader, _, recalc := newViewReader(t)
		recalc.err = domain.ErrAlreadyRunning

		_, err := reader.GetView(ctx, key, StalePolicy_Serve)
		require.ErrorIs(t, err, domain.ErrAlreadyRunning)
	})
}

func Test_viewReaderServiceHandler_InvalidateCache(t *testing.T) {
	ctx := context.Background()
	key := domain.ViewKey{Filter: domain.FilterCategory_Purchased, Method: domain.CalculationMethod_Incremental}

	reader, cache, recalc := newViewReader(t)
	require.NoError(t, cache.Put(ctx, domain.ViewResult{Key: key, CachedAt: time.Now().UTC()}))

	recalc.running = true
	require.ErrorIs(t, reader.InvalidateCache(ctx, nil), domain.ErrAlreadyRunning)

	recalc.running = false
	require.NoError(t, reader.InvalidateCache(ctx, nil))
	_, err := cache.Get(ctx, key)
	require.ErrorIs(t, err, domain.ErrCacheMiss)

	status, err := reader.CacheStatus(ctx)
	require.NoError(t, err)
	require.Len(t, status.Entries, 10)
	require.False(t, status.AllFresh)
}
