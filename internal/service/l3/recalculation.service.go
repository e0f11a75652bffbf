package l3_service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/db/models/postgres/public/table"
	"picktracker/internal/domain"
	"picktracker/internal/logger"
	"picktracker/internal/repository"
	l1_service "picktracker/internal/service/l1"
	l2_service "picktracker/internal/service/l2"
	"picktracker/internal/util"

	"github.com/go-jet/jet/v2/postgres"
)

// recalculationInterval is how old the last completed pass may get
// before the weekly check starts a new one
const recalculationInterval = 7 * 24 * time.Hour

type RecalculationTrigger string

const (
	RecalculationTrigger_Manual   RecalculationTrigger = "manual"
	RecalculationTrigger_Weekly   RecalculationTrigger = "weekly"
	RecalculationTrigger_OnDemand RecalculationTrigger = "on_demand"
)

type RecalculationResult struct {
	RecalculationRunID *string
	NumPositions       int
	NumPerformances    int
	NumViews           int
	PriceRefresh       *l1_service.PriceRefreshResult
	Elapsed            time.Duration
}

type RecalculationService interface {
	// Run performs a full pass and blocks until it ends
	Run(ctx context.Context, trigger RecalculationTrigger) (*RecalculationResult, error)
	// Start claims the pass synchronously and runs it in the background
	Start(ctx context.Context, trigger RecalculationTrigger) error
	IsRunning() bool
	Progress() domain.ProgressSnapshot
	// IsDue reports whether the last completed pass is older than a week
	IsDue(ctx context.Context) (bool, *time.Time, error)
}

type recalculationServiceHandler struct {
	PositionRepository          repository.PositionRepository
	RecalculationRunRepository  repository.RecalculationRunRepository
	RecalculationLockRepository repository.RecalculationLockRepository
	PriceService                l1_service.PriceService
	ViewCacheService            l1_service.ViewCacheService
	PerformanceService          l2_service.PerformanceService
	ViewService                 l2_service.ViewService
	BenchmarkTickers            []string

	running  atomic.Bool
	progress *domain.Progress
	now      func() time.Time
}

func NewRecalculationService(
	positionRepository repository.PositionRepository,
	recalculationRunRepository repository.RecalculationRunRepository,
	recalculationLockRepository repository.RecalculationLockRepository,
	priceService l1_service.PriceService,
	viewCacheService l1_service.ViewCacheService,
	performanceService l2_service.PerformanceService,
	viewService l2_service.ViewService,
	benchmarkTickers []string,
) RecalculationService {
	return &recalculationServiceHandler{
		PositionRepository:          positionRepository,
		RecalculationRunRepository:  recalculationRunRepository,
		RecalculationLockRepository: recalculationLockRepository,
		PriceService:                priceService,
		ViewCacheService:            viewCacheService,
		PerformanceService:          performanceService,
		ViewService:                 viewService,
		BenchmarkTickers:            benchmarkTickers,
		progress:                    domain.NewProgress(),
		now:                         time.Now,
	}
}

func (h *recalculationServiceHandler) IsRunning() bool {
	return h.running.Load()
}

func (h *recalculationServiceHandler) Progress() domain.ProgressSnapshot {
	return h.progress.Snapshot()
}

// acquire claims the in-process flag and then the cross-process lock.
// The returned release must run exactly once.
func (h *recalculationServiceHandler) acquire(ctx context.Context) (func(), error) {
	if !h.running.CompareAndSwap(false, true) {
		return nil, domain.ErrAlreadyRunning
	}

	releaseLock, ok, err := h.RecalculationLockRepository.TryAcquire(ctx)
	if err != nil {
		h.running.Store(false)
		return nil, err
	}
	if !ok {
		h.running.Store(false)
		return nil, fmt.Errorf("another process holds the recalculation lock: %w", domain.ErrAlreadyRunning)
	}

	// progress moves off the previous pass's terminal status before the
	// caller can observe the claim
	h.progress.Reset(domain.RecalculationStatus_FetchingPrices, "Fetching prices")

	return func() {
		releaseLock()
		h.running.Store(false)
	}, nil
}

func (h *recalculationServiceHandler) Run(ctx context.Context, trigger RecalculationTrigger) (*RecalculationResult, error) {
	release, err := h.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	return h.execute(ctx, trigger)
}

func (h *recalculationServiceHandler) Start(ctx context.Context, trigger RecalculationTrigger) error {
	release, err := h.acquire(ctx)
	if err != nil {
		return err
	}

	// the pass outlives the request that started it
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		defer release()
		if _, err := h.execute(bgCtx, trigger); err != nil {
			logger.FromContext(bgCtx).Errorw("background recalculation failed", "trigger", trigger, "error", err)
		}
	}()

	return nil
}

func (h *recalculationServiceHandler) IsDue(ctx context.Context) (bool, *time.Time, error) {
	last, err := h.RecalculationRunRepository.GetLatest(ctx, model.RecalculationRunStatus_Completed)
	if err != nil {
		return false, nil, err
	}
	if last == nil {
		return true, nil, nil
	}

	completedAt := last.StartedAt
	if last.CompletedAt != nil {
		completedAt = *last.CompletedAt
	}
	return h.now().Sub(completedAt) >= recalculationInterval, &completedAt, nil
}

// logf writes to the progress log and the structured log
func (h *recalculationServiceHandler) logf(ctx context.Context, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	h.progress.Log(msg)
	logger.FromContext(ctx).Info(msg)
}

func (h *recalculationServiceHandler) execute(ctx context.Context, trigger RecalculationTrigger) (result *RecalculationResult, err error) {
	log := logger.FromContext(ctx)
	ctx, profile := domain.NewCtxWithProfile(ctx)
	startedAt := h.now().UTC()
	today := util.DateOnly(startedAt)

	h.logf(ctx, "Starting unified recalculation (%s)", trigger)

	run := h.recordStart(ctx, trigger, startedAt)
	result = &RecalculationResult{}
	if run != nil {
		id := run.RecalculationRunID.String()
		result.RecalculationRunID = &id
	}

	defer func() {
		profile.End()
		result.Elapsed = h.now().Sub(startedAt)
		if err != nil {
			h.progress.SetStatus(domain.RecalculationStatus_Error, err.Error())
			h.progress.Log(fmt.Sprintf("ERROR: %v", err))
			log.Errorw("recalculation failed", "trigger", trigger, "error", err)
		} else {
			h.progress.SetStatus(domain.RecalculationStatus_Completed, "Recalculation completed")
			h.logf(ctx, "Recalculation completed in %.1fs", result.Elapsed.Seconds())
		}
		h.recordEnd(ctx, run, result, profile, err)
	}()

	_, endSpan := profile.StartNewSpan("load positions")
	snapshot, err := h.PositionRepository.LoadSnapshot(ctx)
	endSpan()
	if err != nil {
		return result, fmt.Errorf("failed to load positions: %w", err)
	}
	result.NumPositions = len(snapshot.Positions)
	h.logf(ctx, "Found %d positions to process", len(snapshot.Positions))

	_, endSpan = profile.StartNewSpan("refresh prices")
	earliest := today.AddDate(0, 0, -365)
	requests := []l1_service.PriceRefreshRequest{}
	symbols := []string{}
	for _, p := range snapshot.Positions {
		entry := p.EntryDate()
		if entry.Before(earliest) {
			earliest = util.DateOnly(entry)
		}
		requests = append(requests, l1_service.PriceRefreshRequest{
			Symbol: p.Symbol(),
			Label:  p.CompanyName,
			Start:  entry,
		})
		symbols = append(symbols, p.Symbol())
	}
	for _, ticker := range h.BenchmarkTickers {
		requests = append(requests, l1_service.PriceRefreshRequest{
			Symbol: ticker,
			Start:  earliest,
		})
		symbols = append(symbols, ticker)
	}
	refresh, err := h.PriceService.RefreshPrices(ctx, requests, h.progress)
	endSpan()
	if err != nil {
		return result, err
	}
	result.PriceRefresh = refresh

	h.progress.SetStatus(domain.RecalculationStatus_Calculating, "Calculating performance")
	h.logf(ctx, "Calculating performance metrics...")

	_, endSpan = profile.StartNewSpan("calculate performance")
	prices, err := h.PriceService.LoadPriceCache(ctx, symbols, earliest, today)
	if err != nil {
		endSpan()
		return result, err
	}
	performance, err := h.PerformanceService.Compute(ctx, snapshot.Positions, prices, today)
	if err != nil {
		endSpan()
		return result, err
	}
	result.NumPerformances = len(performance.Performances)
	if len(performance.Skipped) > 0 {
		h.logf(ctx, "Skipped %d positions without usable prices", len(performance.Skipped))
	}
	if err := h.PerformanceService.Save(ctx, performance.Performances); err != nil {
		log.Warnf("performance records not saved: %v", err)
		h.progress.Log(fmt.Sprintf("WARNING: %v", err))
	}
	endSpan()

	_, endSpan = profile.StartNewSpan("build views")
	h.logf(ctx, "Building view datasets...")
	views, err := h.buildViews(ctx, l2_service.ViewBuildInput{
		Dataset:          domain.NewUnifiedDataset(today, *snapshot, performance.Performances),
		Prices:           prices,
		BenchmarkTickers: h.BenchmarkTickers,
		Today:            today,
		Now:              h.now().UTC(),
	})
	endSpan()
	if err != nil {
		return result, err
	}

	_, endSpan = profile.StartNewSpan("cache views")
	defer endSpan()
	var cacheErrs []error
	for _, view := range views {
		if err := h.ViewCacheService.Put(ctx, view); err != nil {
			cacheErrs = append(cacheErrs, err)
			continue
		}
		result.NumViews++
	}
	h.logf(ctx, "Cached %d/%d views", result.NumViews, len(views))
	if len(cacheErrs) > 0 {
		return result, fmt.Errorf("failed to cache %d views: %w", len(cacheErrs), errors.Join(cacheErrs...))
	}

	return result, nil
}

// buildViews derives every view before any is written. A panic here is
// turned into a calculation failure so the pass ends in the error state.
func (h *recalculationServiceHandler) buildViews(ctx context.Context, in l2_service.ViewBuildInput) (views []domain.ViewResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Errorf("panic while building views: %v\n%s", r, debug.Stack())
			views = nil
			err = fmt.Errorf("panic while building views: %v: %w", r, domain.ErrCalculationFailure)
		}
	}()

	keys := domain.AllViewKeys()
	h.progress.SetTotal(len(keys))
	for _, key := range keys {
		h.progress.Log(fmt.Sprintf("Calculating view: %s (method: %s)", key.Filter, key.Method))
		view, err := h.ViewService.BuildView(in, key)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, domain.ErrCalculationFailure)
		}
		views = append(views, *view)
		h.progress.Advance(key.String())
	}
	return views, nil
}

func (h *recalculationServiceHandler) recordStart(ctx context.Context, trigger RecalculationTrigger, startedAt time.Time) *model.RecalculationRun {
	run, err := h.RecalculationRunRepository.Add(ctx, model.RecalculationRun{
		Trigger:   string(trigger),
		Status:    model.RecalculationRunStatus_Running,
		StartedAt: startedAt,
	})
	if err != nil {
		logger.FromContext(ctx).Warnf("failed to record recalculation start: %v", err)
		return nil
	}
	return run
}

func (h *recalculationServiceHandler) recordEnd(ctx context.Context, run *model.RecalculationRun, result *RecalculationResult, profile *domain.Profile, runErr error) {
	if run == nil {
		return
	}
	completedAt := h.now().UTC()
	run.CompletedAt = &completedAt
	run.NumPositions = int32(result.NumPositions)
	run.NumViews = int32(result.NumViews)
	run.Status = model.RecalculationRunStatus_Completed
	if runErr != nil {
		run.Status = model.RecalculationRunStatus_Error
		run.ErrorMessage = util.StringPointer(runErr.Error())
	}
	if profileJson, err := profile.ToJsonBytes(); err == nil {
		run.Profile = util.StringPointer(string(profileJson))
	}

	_, err := h.RecalculationRunRepository.Update(ctx, run, postgres.ColumnList{
		table.RecalculationRun.Status,
		table.RecalculationRun.CompletedAt,
		table.RecalculationRun.NumPositions,
		table.RecalculationRun.NumViews,
		table.RecalculationRun.ErrorMessage,
		table.RecalculationRun.Profile,
	})
	if err != nil {
		logger.FromContext(ctx).Warnf("failed to record recalculation end: %v", err)
	}
}
