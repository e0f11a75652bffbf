package l3_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"picktracker/internal/calculator"
	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/domain"
	mock_repository "picktracker/internal/repository/mocks"
	l1_service "picktracker/internal/service/l1"
	l2_service "picktracker/internal/service/l2"
	"picktracker/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recalculationMocks struct {
	positionRepository *mock_repository.MockPositionRepository
	runRepository      *mock_repository.MockRecalculationRunRepository
	lockRepository     *mock_repository.MockRecalculationLockRepository
	pricePointRepo     *mock_repository.MockPricePointRepository
	priceClient        *mock_repository.MockPriceClient
	performanceRepo    *mock_repository.MockPerformanceRecordRepository
	cache              l1_service.ViewCacheBackend
}

func fixturePrices() map[string][]domain.AssetPrice {
	p := func(symbol string, date time.Time, v float64) domain.AssetPrice {
		return domain.AssetPrice{Symbol: symbol, Price: decimal.NewFromFloat(v), Date: date}
	}
	return map[string][]domain.AssetPrice{
		"AAPL": {
			p("AAPL", util.NewDate(2023, 1, 3), 100),
			p("AAPL", util.NewDate(2023, 12, 29), 150),
		},
		"SPY": {
			p("SPY", util.NewDate(2023, 1, 3), 400),
			p("SPY", util.NewDate(2023, 12, 29), 440),
		},
	}
}

func fixtureSnapshot() *domain.PositionSnapshot {
	return &domain.PositionSnapshot{
		Positions: []domain.Position{
			{
				PositionID:   "aapl-pick",
				CompanyName:  "Apple",
				Ticker:       util.StringPointer("AAPL"),
				Sector:       util.StringPointer("Technology"),
				Status:       domain.PositionStatus_OnWatchlist,
				AnalysisDate: util.NewDate(2023, 1, 3),
			},
		},
		Votes:     map[string]domain.VoteTally{"aapl-pick": {Yes: 2}},
		Purchased: map[string]bool{},
	}
}

func newRecalculationHandler(t *testing.T, viewService l2_service.ViewService) (*recalculationServiceHandler, recalculationMocks) {
	ctrl := gomock.NewController(t)
	m := recalculationMocks{
		positionRepository: mock_repository.NewMockPositionRepository(ctrl),
		runRepository:      mock_repository.NewMockRecalculationRunRepository(ctrl),
		lockRepository:     mock_repository.NewMockRecalculationLockRepository(ctrl),
		pricePointRepo:     mock_repository.NewMockPricePointRepository(ctrl),
		priceClient:        mock_repository.NewMockPriceClient(ctrl),
		performanceRepo:    mock_repository.NewMockPerformanceRecordRepository(ctrl),
		cache:              l1_service.NewFileViewCacheBackend(t.TempDir()),
	}
	if viewService == nil {
		viewService = l2_service.NewViewService(calculator.NewBenchmarkSeriesBuilder())
	}

	svc := NewRecalculationService(
		m.positionRepository,
		m.runRepository,
		m.lockRepository,
		l1_service.NewPriceService(m.pricePointRepo, m.priceClient, l1_service.PriceServiceConfig{BatchSize: 20, Workers: 1}),
		l1_service.NewViewCacheService(7*24*time.Hour, m.cache),
		l2_service.NewPerformanceService(m.performanceRepo),
		viewService,
		[]string{"SPY"},
	)
	h := svc.(*recalculationServiceHandler)
	h.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	return h, m
}

// expectPipeline wires the repositories for one pass that reaches the
// view building step
func expectPipeline(m recalculationMocks) {
	m.positionRepository.EXPECT().LoadSnapshot(gomock.Any()).Return(fixtureSnapshot(), nil)
	m.priceClient.EXPECT().FetchPricesBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(fixturePrices(), nil)
	m.pricePointRepo.EXPECT().ListExistingDates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string]map[string]bool{}, nil)
	m.pricePointRepo.EXPECT().Add(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil).Times(2)
	m.pricePointRepo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(fixturePrices(), nil)
}

func expectLock(m recalculationMocks, released *bool) {
	m.lockRepository.EXPECT().TryAcquire(gomock.Any()).Return(func() { *released = true }, true, nil)
}

func expectRunRecord(m recalculationMocks, ended *model.RecalculationRun) {
	m.runRepository.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, run model.RecalculationRun) (*model.RecalculationRun, error) {
			run.RecalculationRunID = uuid.New()
			return &run, nil
		},
	)
	m.runRepository.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, run *model.RecalculationRun, _ any) (*model.RecalculationRun, error) {
			*ended = *run
			return run, nil
		},
	)
}

func Test_recalculationServiceHandler_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and caches every view", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		released := false
		ended := model.RecalculationRun{}
		expectLock(m, &released)
		expectRunRecord(m, &ended)
		expectPipeline(m)
		m.performanceRepo.EXPECT().Upsert(gomock.Any(), gomock.Nil(), gomock.Len(1)).Return(nil)

		result, err := h.Run(ctx, RecalculationTrigger_Manual)
		require.NoError(t, err)
		require.Equal(t, 1, result.NumPositions)
		require.Equal(t, 1, result.NumPerformances)
		require.Equal(t, 10, result.NumViews)
		require.Equal(t, 4, result.PriceRefresh.NewPrices)
		require.NotNil(t, result.RecalculationRunID)

		require.True(t, released)
		require.False(t, h.IsRunning())

		progress := h.Progress()
		require.Equal(t, domain.RecalculationStatus_Completed, progress.Status)
		require.Equal(t, 10, progress.Processed)
		require.NotNil(t, progress.FinishedAt)

		require.Equal(t, model.RecalculationRunStatus_Completed, ended.Status)
		require.Equal(t, int32(10), ended.NumViews)
		require.Nil(t, ended.ErrorMessage)
		require.NotNil(t, ended.Profile)

		for _, key := range domain.AllViewKeys() {
			view, err := m.cache.Get(ctx, key)
			require.NoError(t, err, key.String())
			require.Equal(t, key, view.Key)
		}
		approved, err := m.cache.Get(ctx, domain.ViewKey{Filter: domain.FilterCategory_BoardApproved, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		require.Equal(t, 50.0, *approved.Summary.TotalReturn)
	})

	t.Run("performance save failure does not stop the pass", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		released := false
		ended := model.RecalculationRun{}
		expectLock(m, &released)
		expectRunRecord(m, &ended)
		expectPipeline(m)
		m.performanceRepo.EXPECT().Upsert(gomock.Any(), gomock.Nil(), gomock.Any()).Return(errors.New("connection reset"))

		result, err := h.Run(ctx, RecalculationTrigger_Manual)
		require.NoError(t, err)
		require.Equal(t, 10, result.NumViews)
	})

	t.Run("already running in process", func(t *testing.T) {
		h, _ := newRecalculationHandler(t, nil)
		h.running.Store(true)

		_, err := h.Run(ctx, RecalculationTrigger_Manual)
		require.ErrorIs(t, err, domain.ErrAlreadyRunning)
		require.True(t, h.IsRunning())
	})

	t.Run("lock held by another process", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		m.lockRepository.EXPECT().TryAcquire(gomock.Any()).Return(nil, false, nil)

		_, err := h.Run(ctx, RecalculationTrigger_Weekly)
		require.ErrorIs(t, err, domain.ErrAlreadyRunning)
		require.False(t, h.IsRunning())
	})

	t.Run("snapshot failure ends in error state", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		released := false
		ended := model.RecalculationRun{}
		expectLock(m, &released)
		expectRunRecord(m, &ended)
		m.positionRepository.EXPECT().LoadSnapshot(gomock.Any()).Return(nil, errors.New("relation does not exist"))

		_, err := h.Run(ctx, RecalculationTrigger_Manual)
		require.ErrorContains(t, err, "failed to load positions")
		require.True(t, released)
		require.Equal(t, domain.RecalculationStatus_Error, h.Progress().Status)
		require.Equal(t, model.RecalculationRunStatus_Error, ended.Status)
		require.NotNil(t, ended.ErrorMessage)
	})

	t.Run("panic while building views keeps the previous cache", func(t *testing.T) {
		h, m := newRecalculationHandler(t, panickingViewService{})
		released := false
		ended := model.RecalculationRun{}
		expectLock(m, &released)
		expectRunRecord(m, &ended)
		expectPipeline(m)
		m.performanceRepo.EXPECT().Upsert(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)

		key := domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal}
		previous := domain.ViewResult{Key: key, TotalPositions: 7, CachedAt: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, m.cache.Put(ctx, previous))

		_, err := h.Run(ctx, RecalculationTrigger_Manual)
		require.ErrorIs(t, err, domain.ErrCalculationFailure)
		require.Equal(t, domain.RecalculationStatus_Error, h.Progress().Status)
		require.False(t, h.IsRunning())

		got, err := m.cache.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, 7, got.TotalPositions)
	})
}

type panickingViewService struct{}

func (panickingViewService) BuildView(in l2_service.ViewBuildInput, key domain.ViewKey) (*domain.ViewResult, error) {
	if key.Method == domain.CalculationMethod_Incremental {
		panic("index out of range")
	}
	return &domain.ViewResult{Key: key}, nil
}

func (p panickingViewService) BuildAll(in l2_service.ViewBuildInput) ([]domain.ViewResult, error) {
	return nil, errors.New("not used")
}

func Test_recalculationServiceHandler_Start(t *testing.T) {
	t.Run("outlives the starting request", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		released := make(chan struct{})
		ended := model.RecalculationRun{}
		m.lockRepository.EXPECT().TryAcquire(gomock.Any()).Return(func() { close(released) }, true, nil)
		expectRunRecord(m, &ended)
		expectPipeline(m)
		m.performanceRepo.EXPECT().Upsert(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, h.Start(ctx, RecalculationTrigger_Manual))
		// the request that started the pass can go away
		cancel()

		select {
		case <-released:
		case <-time.After(10 * time.Second):
			t.Fatal("recalculation did not finish")
		}
		require.Eventually(t, func() bool { return !h.IsRunning() }, time.Second, 10*time.Millisecond)
		require.Equal(t, domain.RecalculationStatus_Completed, h.Progress().Status)
	})

	t.Run("progress leaves the previous terminal status before returning", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		h.progress.SetStatus(domain.RecalculationStatus_Completed, "Recalculation completed")

		released := make(chan struct{})
		gate := make(chan struct{})
		m.lockRepository.EXPECT().TryAcquire(gomock.Any()).Return(func() { close(released) }, true, nil)
		// the pass stalls on its first write until the status is checked
		m.runRepository.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, run model.RecalculationRun) (*model.RecalculationRun, error) {
				<-gate
				return nil, errors.New("connection reset")
			},
		)
		m.positionRepository.EXPECT().LoadSnapshot(gomock.Any()).Return(nil, errors.New("relation does not exist"))

		require.NoError(t, h.Start(context.Background(), RecalculationTrigger_OnDemand))
		snapshot := h.Progress()
		require.Equal(t, domain.RecalculationStatus_FetchingPrices, snapshot.Status)
		require.Nil(t, snapshot.FinishedAt)
		require.True(t, h.IsRunning())

		close(gate)
		select {
		case <-released:
		case <-time.After(10 * time.Second):
			t.Fatal("recalculation did not finish")
		}
		require.Eventually(t, func() bool { return !h.IsRunning() }, time.Second, 10*time.Millisecond)
		require.Equal(t, domain.RecalculationStatus_Error, h.Progress().Status)
	})
}

func Test_recalculationServiceHandler_IsDue(t *testing.T) {
	ctx := context.Background()

	t.Run("never completed", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		m.runRepository.EXPECT().GetLatest(gomock.Any(), model.RecalculationRunStatus_Completed).Return(nil, nil)

		due, last, err := h.IsDue(ctx)
		require.NoError(t, err)
		require.True(t, due)
		require.Nil(t, last)
	})

	t.Run("completed within the week", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		completedAt := h.now().Add(-6 * 24 * time.Hour)
		m.runRepository.EXPECT().GetLatest(gomock.Any(), model.RecalculationRunStatus_Completed).Return(&model.RecalculationRun{
			StartedAt:   completedAt.Add(-time.Minute),
			CompletedAt: &completedAt,
		}, nil)

		due, last, err := h.IsDue(ctx)
		require.NoError(t, err)
		require.False(t, due)
		require.True(t, completedAt.Equal(*last))
	})

	t.Run("completed a week ago", func(t *testing.T) {
		h, m := newRecalculationHandler(t, nil)
		completedAt := h.now().Add(-7 * 24 * time.Hour)
		m.runRepository.EXPECT().GetLatest(gomock.Any(), model.RecalculationRunStatus_Completed).Return(&model.RecalculationRun{
			StartedAt:   completedAt,
			CompletedAt: &completedAt,
		}, nil)

		due, _, err := h.IsDue(ctx)
		require.NoError(t, err)
		require.True(t, due)
	})
}
