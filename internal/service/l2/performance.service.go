package l2_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picktracker/internal/calculator"
	"picktracker/internal/domain"
	"picktracker/internal/logger"
	"picktracker/internal/repository"
	"picktracker/internal/util"
)

type PerformanceService interface {
	// Compute prices every position at its entry date and at asOf.
	// Positions that cannot be priced are skipped, not failed.
	Compute(ctx context.Context, positions []domain.Position, prices calculator.PriceLookup, asOf time.Time) (*PerformanceResult, error)
	Save(ctx context.Context, performances []domain.PositionPerformance) error
}

type PerformanceResult struct {
	Performances []domain.PositionPerformance
	// Skipped maps position id to the reason it has no performance
	Skipped map[string]error
}

type performanceServiceHandler struct {
	PerformanceRecordRepository repository.PerformanceRecordRepository
}

func NewPerformanceService(performanceRecordRepository repository.PerformanceRecordRepository) PerformanceService {
	return performanceServiceHandler{
		PerformanceRecordRepository: performanceRecordRepository,
	}
}

func (h performanceServiceHandler) Compute(ctx context.Context, positions []domain.Position, prices calculator.PriceLookup, asOf time.Time) (*PerformanceResult, error) {
	log := logger.FromContext(ctx)
	asOf = util.DateOnly(asOf)

	out := &PerformanceResult{
		Performances: []domain.PositionPerformance{},
		Skipped:      map[string]error{},
	}
	for _, p := range positions {
		perf, err := positionPerformance(p, prices, asOf)
		if err != nil {
			if !errors.Is(err, domain.ErrPriceUnavailable) && !errors.Is(err, domain.ErrInvalidPrice) {
				log.Warnf("failed to calculate performance for %s (%s): %v", p.CompanyName, p.Symbol(), err)
			}
			out.Skipped[p.PositionID] = err
			continue
		}
		out.Performances = append(out.Performances, *perf)
	}

	return out, nil
}

func positionPerformance(p domain.Position, prices calculator.PriceLookup, asOf time.Time) (*domain.PositionPerformance, error) {
	symbol := p.Symbol()
	if symbol == "" {
		return nil, fmt.Errorf("position %s has no ticker: %w", p.PositionID, domain.ErrPriceUnavailable)
	}
	entryDate := p.EntryDate()

	priceAtEntry, err := prices.PriceOnOrBefore(symbol, entryDate)
	if err != nil {
		return nil, err
	}
	priceCurrent, err := prices.PriceOnOrBefore(symbol, asOf)
	if err != nil {
		return nil, err
	}
	returnPct, err := calculator.SimpleReturn(priceAtEntry, priceCurrent)
	if err != nil {
		return nil, err
	}

	return &domain.PositionPerformance{
		Position:            p,
		CalculationDate:     asOf,
		PriceAtEntry:        priceAtEntry,
		PriceCurrent:        priceCurrent,
		ReturnPct:           returnPct,
		AnnualizedReturnPct: calculator.Annualize(returnPct, entryDate, asOf),
	}, nil
}

// Save upserts the whole batch at once. When the batch is rejected each
// record is retried alone so one bad row only skips its own position.
func (h performanceServiceHandler) Save(ctx context.Context, performances []domain.PositionPerformance) error {
	err := h.PerformanceRecordRepository.Upsert(ctx, nil, performances)
	if err == nil {
		return nil
	}
	if len(performances) <= 1 {
		return fmt.Errorf("failed to save performance records: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Warnf("batch performance upsert failed, saving records one at a time: %v", err)
	var errs []error
	for _, p := range performances {
		if err := h.PerformanceRecordRepository.Upsert(ctx, nil, []domain.PositionPerformance{p}); err != nil {
			log.Warnw("skipping performance record", "positionID", p.Position.PositionID, "symbol", p.Position.Symbol(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Position.PositionID, err))
		}
	}
	if len(errs) == len(performances) {
		return fmt.Errorf("failed to save performance records: %w", errors.Join(errs...))
	}
	return nil
}
