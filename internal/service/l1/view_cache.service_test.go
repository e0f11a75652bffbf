package l1_service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/domain"
	mock_repository "picktracker/internal/repository/mocks"
	"picktracker/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type brokenBackend struct{}

func (brokenBackend) Name() string { return "broken" }
func (brokenBackend) Get(ctx context.Context, key domain.ViewKey) (*domain.ViewResult, error) {
	return nil, fmt.Errorf("disk on fire")
}
func (brokenBackend) Put(ctx context.Context, result domain.ViewResult) error {
	return fmt.Errorf("disk on fire")
}
func (brokenBackend) Invalidate(ctx context.Context, key *domain.ViewKey) error {
	return fmt.Errorf("disk on fire")
}

func sampleView(key domain.ViewKey, cachedAt time.Time) domain.ViewResult {
	return domain.ViewResult{
		Key: key,
		Summary: domain.PortfolioSummary{
			NumPositions:     2,
			TotalReturn:      util.FloatPointer(30),
			AnnualizedReturn: util.FloatPointer(30),
			StartDate:        util.StringPointer("2023-01-01"),
			BenchmarkReturns: map[string]float64{"SPY": 24.2},
		},
		InceptionSeries: &domain.SeriesView{
			Dates:      []string{"2023-01-01", "2023-02-01"},
			Portfolio:  []float64{0, 1.5},
			Benchmarks: map[string][]float64{"SPY": {0, 0.8}},
		},
		SectorBreakdown: domain.SectorBreakdown{
			Sectors:     []domain.SectorStats{{Sector: "Technology", Count: 2, AvgReturn: 30, PositiveRatio: 100}},
			TopByReturn: []domain.SectorStats{{Sector: "Technology", Count: 2, AvgReturn: 30, PositiveRatio: 100}},
			TopByRisk:   []domain.SectorStats{{Sector: "Technology", Count: 2, AvgReturn: 30, PositiveRatio: 100}},
		},
		PositiveRatio:  100,
		TotalPositions: 2,
		PositionIDs:    []string{"a", "b"},
		CachedAt:       cachedAt,
	}
}

func Test_fileViewCacheBackend(t *testing.T) {
	ctx := context.Background()
	b := NewFileViewCacheBackend(t.TempDir())
	key := domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal}
	view := sampleView(key, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))

	t.Run("put then get returns the same view", func(t *testing.T) {
		require.NoError(t, b.Put(ctx, view))
		got, err := b.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(view, *got))
	})

	t.Run("invalidate then get misses", func(t *testing.T) {
		require.NoError(t, b.Invalidate(ctx, &key))
		_, err := b.Get(ctx, key)
		require.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("invalidate all", func(t *testing.T) {
		other := domain.ViewKey{Filter: domain.FilterCategory_Purchased, Method: domain.CalculationMethod_Incremental}
		require.NoError(t, b.Put(ctx, view))
		require.NoError(t, b.Put(ctx, sampleView(other, view.CachedAt)))
		require.NoError(t, b.Invalidate(ctx, nil))

		_, err := b.Get(ctx, key)
		require.ErrorIs(t, err, domain.ErrCacheMiss)
		_, err = b.Get(ctx, other)
		require.ErrorIs(t, err, domain.ErrCacheMiss)
	})
}

func Test_postgresViewCacheBackend(t *testing.T) {
	ctx := context.Background()
	key := domain.ViewKey{Filter: domain.FilterCategory_BoardApproved, Method: domain.CalculationMethod_Incremental}
	view := sampleView(key, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))

	t.Run("stores json keyed by filter and method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		viewCacheRepository := mock_repository.NewMockViewCacheRepository(ctrl)
		b := NewPostgresViewCacheBackend(viewCacheRepository)

		var stored model.ViewCache
		viewCacheRepository.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, entry model.ViewCache) error {
				stored = entry
				return nil
			})
		require.NoError(t, b.Put(ctx, view))
		require.Equal(t, "board_approved", stored.FilterCategory)
		require.Equal(t, "incremental", stored.Method)
		require.True(t, json.Valid([]byte(stored.Payload)))

		viewCacheRepository.EXPECT().Get(gomock.Any(), key).Return(&stored, nil)
		got, err := b.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(view, *got))
	})
}

func Test_viewCacheServiceHandler(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	key := domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Incremental}

	newService := func(backends ...ViewCacheBackend) viewCacheServiceHandler {
		return viewCacheServiceHandler{
			Backends: backends,
			maxAge:   7 * 24 * time.Hour,
			now:      func() time.Time { return now },
		}
	}

	t.Run("a failing backend does not fail the write", func(t *testing.T) {
		file := NewFileViewCacheBackend(t.TempDir())
		h := newService(brokenBackend{}, file)

		require.NoError(t, h.Put(ctx, sampleView(key, now.AddDate(0, 0, -1))))
		got, err := h.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, "file", got.Source)
		require.True(t, got.Fresh)
	})

	t.Run("write fails when every backend fails", func(t *testing.T) {
		h := newService(brokenBackend{}, brokenBackend{})
		err := h.Put(ctx, sampleView(key, now))
		require.ErrorContains(t, err, "disk on fire")
	})

	t.Run("fresh copy wins over a newer stale one", func(t *testing.T) {
		stale := NewFileViewCacheBackend(t.TempDir())
		fresh := NewFileViewCacheBackend(t.TempDir())
		require.NoError(t, stale.Put(ctx, sampleView(key, now.AddDate(0, 0, -30))))
		require.NoError(t, fresh.Put(ctx, sampleView(key, now.AddDate(0, 0, -2))))
		h := newService(stale, fresh)

		got, err := h.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, got.Fresh)
		require.True(t, now.AddDate(0, 0, -2).Equal(got.Result.CachedAt))
	})

	t.Run("stale view is served and marked", func(t *testing.T) {
		file := NewFileViewCacheBackend(t.TempDir())
		require.NoError(t, file.Put(ctx, sampleView(key, now.AddDate(0, 0, -8))))
		h := newService(file)

		got, err := h.Get(ctx, key)
		require.NoError(t, err)
		require.False(t, got.Fresh)
	})

	t.Run("invalidate then get misses", func(t *testing.T) {
		file := NewFileViewCacheBackend(t.TempDir())
		h := newService(file)
		require.NoError(t, h.Put(ctx, sampleView(key, now)))
		require.NoError(t, h.Invalidate(ctx, &key))

		_, err := h.Get(ctx, key)
		require.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("status reports age and freshness per view", func(t *testing.T) {
		file := NewFileViewCacheBackend(t.TempDir())
		require.NoError(t, file.Put(ctx, sampleView(key, now.Add(-36*time.Hour))))
		h := newService(file)

		status, err := h.Status(ctx)
		require.NoError(t, err)
		require.Len(t, status.Entries, 10)
		require.False(t, status.AllFresh)
		require.Equal(t, 1.5, *status.OldestCacheDays)

		cached := 0
		for _, e := range status.Entries {
			if e.Cached {
				cached++
				require.Equal(t, key, e.Key)
				require.True(t, e.IsFresh)
				require.Equal(t, "file", *e.Source)
			}
		}
		require.Equal(t, 1, cached)
	})
}
