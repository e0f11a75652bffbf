package l3_service

import (
	"context"
	"errors"
	"fmt"

	"picktracker/internal/domain"
	"picktracker/internal/logger"
	l1_service "picktracker/internal/service/l1"
)

// StalePolicy decides what a read does when the cached view is older
// than the freshness window
type StalePolicy string

const (
	StalePolicy_Serve     StalePolicy = "serve"
	StalePolicy_Recompute StalePolicy = "recompute"
)

func ParseStalePolicy(s string) (StalePolicy, error) {
	switch StalePolicy(s) {
	case "", StalePolicy_Serve:
		return StalePolicy_Serve, nil
	case StalePolicy_Recompute:
		return StalePolicy_Recompute, nil
	}
	return "", fmt.Errorf("unknown stale policy %q", s)
}

type ViewResponse struct {
	View    domain.ViewResult
	Source  string
	Stale   bool
	Warning *string
}

type ViewReaderService interface {
	GetView(ctx context.Context, key domain.ViewKey, policy StalePolicy) (*ViewResponse, error)
	CacheStatus(ctx context.Context) (*domain.CacheStatus, error)
	InvalidateCache(ctx context.Context, key *domain.ViewKey) error
}

type viewReaderServiceHandler struct {
	ViewCacheService     l1_service.ViewCacheService
	RecalculationService RecalculationService
}

func NewViewReaderService(viewCacheService l1_service.ViewCacheService, recalculationService RecalculationService) ViewReaderService {
	return viewReaderServiceHandler{
		ViewCacheService:     viewCacheService,
		RecalculationService: recalculationService,
	}
}

// GetView serves from the cache. A miss, or a stale entry under the
// recompute policy, runs a full recalculation and reads again. When a
// recalculation is already in flight the stale entry is served instead.
func (h viewReaderServiceHandler) GetView(ctx context.Context, key domain.ViewKey, policy StalePolicy) (*ViewResponse, error) {
	log := logger.FromContext(ctx)

	cached, err := h.ViewCacheService.Get(ctx, key)
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		return nil, err
	}
	if cached != nil && cached.Fresh {
		return &ViewResponse{View: cached.Result, Source: cached.Source}, nil
	}
	if cached != nil && policy == StalePolicy_Serve {
		return staleResponse(cached, "cached view is older than the freshness window"), nil
	}

	log.Infof("recomputing views on demand for %s", key.String())
	_, err = h.RecalculationService.Run(ctx, RecalculationTrigger_OnDemand)
	if errors.Is(err, domain.ErrAlreadyRunning) && cached != nil {
		return staleResponse(cached, "recalculation in progress, serving the previous view"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute view %s: %w", key.String(), err)
	}

	recomputed, err := h.ViewCacheService.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &ViewResponse{View: recomputed.Result, Source: recomputed.Source, Stale: !recomputed.Fresh}, nil
}

func staleResponse(cached *l1_service.CachedView, warning string) *ViewResponse {
	return &ViewResponse{
		View:    cached.Result,
		Source:  cached.Source,
		Stale:   true,
		Warning: &warning,
	}
}

func (h viewReaderServiceHandler) CacheStatus(ctx context.Context) (*domain.CacheStatus, error) {
	return h.ViewCacheService.Status(ctx)
}

func (h viewReaderServiceHandler) InvalidateCache(ctx context.Context, key *domain.ViewKey) error {
	if h.RecalculationService.IsRunning() {
		return fmt.Errorf("cannot clear the view cache during a recalculation: %w", domain.ErrAlreadyRunning)
	}
	return h.ViewCacheService.Invalidate(ctx, key)
}
