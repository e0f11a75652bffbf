package l1_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"picktracker/internal/calculator"
	"picktracker/internal/domain"
	"picktracker/internal/logger"
	"picktracker/internal/repository"
	"picktracker/internal/util"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// entryLookback widens each fetch window so a position entered on a
// weekend or holiday still has a prior close
const entryLookback = 7

type PriceService interface {
	RefreshPrices(ctx context.Context, requests []PriceRefreshRequest, progress *domain.Progress) (*PriceRefreshResult, error)
	LoadPriceCache(ctx context.Context, symbols []string, start, end time.Time) (*PriceCache, error)
}

type PriceRefreshRequest struct {
	Symbol string
	// Label is what progress logs show, usually the company name
	Label string
	Start time.Time
}

type PriceRefreshResult struct {
	Symbols       int
	Batches       int
	FailedBatches int
	NewPrices     int
	EmptySymbols  []string
}

type PriceServiceConfig struct {
	BatchSize  int
	Workers    int
	BatchDelay time.Duration
}

type priceServiceHandler struct {
	PricePointRepository repository.PricePointRepository
	PriceClient          repository.PriceClient
	Config               PriceServiceConfig

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

func NewPriceService(
	pricePointRepository repository.PricePointRepository,
	priceClient repository.PriceClient,
	cfg PriceServiceConfig,
) PriceService {
	return priceServiceHandler{
		PricePointRepository: pricePointRepository,
		PriceClient:          priceClient,
		Config:               cfg,
		now:                  time.Now,
		sleep:                sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// PriceCache is an immutable in-memory copy of the price store for a
// set of symbols. It answers every lookup of a recalculation pass.
type PriceCache struct {
	prices map[string][]domain.AssetPrice
}

func NewPriceCache(prices map[string][]domain.AssetPrice) *PriceCache {
	out := &PriceCache{prices: map[string][]domain.AssetPrice{}}
	for symbol, p := range prices {
		sorted := append([]domain.AssetPrice{}, p...)
		calculator.SortPrices(sorted)
		out.prices[strings.ToUpper(symbol)] = sorted
	}
	return out
}

func (pc *PriceCache) PriceOnOrBefore(symbol string, date time.Time) (decimal.Decimal, error) {
	price, err := calculator.PriceOnOrBefore(pc.prices[strings.ToUpper(symbol)], date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", symbol, err)
	}
	return price, nil
}

// Latest is the most recent close on or before asOf
func (pc *PriceCache) Latest(symbol string, asOf time.Time) (decimal.Decimal, error) {
	return pc.PriceOnOrBefore(symbol, asOf)
}

// Prices returns the symbol's closes in ascending date order
func (pc *PriceCache) Prices(symbol string) []domain.AssetPrice {
	return pc.prices[strings.ToUpper(symbol)]
}

func (h priceServiceHandler) LoadPriceCache(ctx context.Context, symbols []string, start, end time.Time) (*PriceCache, error) {
	prices, err := h.PricePointRepository.List(ctx, dedupeSymbols(symbols), start.AddDate(0, 0, -entryLookback), end)
	if err != nil {
		return nil, fmt.Errorf("failed to load price cache: %w", err)
	}
	return NewPriceCache(prices), nil
}

// RefreshPrices backfills the price store in batches. A batch that fails
// is logged and skipped; the error return is reserved for cancellation.
func (h priceServiceHandler) RefreshPrices(ctx context.Context, requests []PriceRefreshRequest, progress *domain.Progress) (*PriceRefreshResult, error) {
	log := logger.FromContext(ctx)
	if progress == nil {
		progress = domain.NewProgress()
	}
	requests = mergeRefreshRequests(requests)
	batches := chunkRequests(requests, h.Config.BatchSize)

	progress.SetTotal(len(requests))
	progress.Log(fmt.Sprintf("Fetching prices for %d tickers in %d batches of up to %d", len(requests), len(batches), h.Config.BatchSize))

	results := make([]batchOutcome, len(batches))
	eg, egCtx := errgroup.WithContext(ctx)
	workers := h.Config.Workers
	if workers < 1 {
		workers = 1
	}
	eg.SetLimit(workers)

	for i, batch := range batches {
		i, batch := i, batch
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			results[i] = h.refreshBatch(egCtx, i+1, len(batches), batch, progress)
			if i < len(batches)-1 {
				h.sleep(egCtx, h.Config.BatchDelay)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to refresh prices: %w", err)
	}

	out := &PriceRefreshResult{
		Symbols:      len(requests),
		Batches:      len(batches),
		EmptySymbols: []string{},
	}
	for _, r := range results {
		if r.failed {
			out.FailedBatches++
		}
		out.NewPrices += r.newPrices
		out.EmptySymbols = append(out.EmptySymbols, r.emptySymbols...)
	}

	log.Infof("price refresh complete: %d new prices, %d/%d batches failed", out.NewPrices, out.FailedBatches, out.Batches)
	progress.Log(fmt.Sprintf("Price refresh complete: %d new prices", out.NewPrices))

	return out, nil
}

type batchOutcome struct {
	failed       bool
	newPrices    int
	emptySymbols []string
}

func (h priceServiceHandler) refreshBatch(ctx context.Context, batchNum, totalBatches int, batch []PriceRefreshRequest, progress *domain.Progress) batchOutcome {
	log := logger.FromContext(ctx)
	out := batchOutcome{}

	symbols := []string{}
	start := util.DateOnly(h.now())
	for _, r := range batch {
		symbols = append(symbols, r.Symbol)
		if r.Start.Before(start) {
			start = util.DateOnly(r.Start)
		}
	}
	start = start.AddDate(0, 0, -entryLookback)
	end := util.DateOnly(h.now())

	progress.Log(fmt.Sprintf("--- Batch %d/%d (%d tickers) ---", batchNum, totalBatches, len(batch)))

	fetched, fetchErr := h.PriceClient.FetchPricesBatch(ctx, symbols, start, end)
	if fetchErr != nil {
		out.failed = true
		log.Warnf("price batch %d/%d failed: %v", batchNum, totalBatches, fetchErr)
		progress.Log(fmt.Sprintf("ERROR in batch %d: %v", batchNum, fetchErr))
	}

	existing, err := h.PricePointRepository.ListExistingDates(ctx, symbols, start, end)
	if err != nil {
		out.failed = true
		log.Warnf("failed to read stored dates for batch %d: %v", batchNum, err)
		progress.Log(fmt.Sprintf("ERROR in batch %d: %v", batchNum, err))
		for _, r := range batch {
			progress.Advance(r.Label)
		}
		return out
	}

	for _, r := range batch {
		progress.Advance(r.Label)

		prices, ok := fetched[r.Symbol]
		if !ok {
			if fetchErr == nil {
				out.emptySymbols = append(out.emptySymbols, r.Symbol)
				progress.Log(fmt.Sprintf("%s (%s): No data returned", r.Label, r.Symbol))
			}
			continue
		}
		if len(prices) == 0 {
			out.emptySymbols = append(out.emptySymbols, r.Symbol)
			progress.Log(fmt.Sprintf("%s (%s): Empty data", r.Label, r.Symbol))
			continue
		}

		newPrices := []domain.AssetPrice{}
		for _, p := range prices {
			if !p.Price.IsPositive() {
				continue
			}
			if existing[r.Symbol][util.FormatDate(p.Date)] {
				continue
			}
			p.Symbol = r.Symbol
			newPrices = append(newPrices, p)
		}
		if len(newPrices) == 0 {
			progress.Log(fmt.Sprintf("%s (%s): Already up to date", r.Label, r.Symbol))
			continue
		}

		if err := h.PricePointRepository.Add(ctx, nil, newPrices); err != nil {
			out.failed = true
			log.Warnf("failed to store prices for %s: %v", r.Symbol, err)
			progress.Log(fmt.Sprintf("%s (%s): failed to store prices", r.Label, r.Symbol))
			continue
		}
		out.newPrices += len(newPrices)
		progress.Log(fmt.Sprintf("%s (%s): Added %d new prices", r.Label, r.Symbol, len(newPrices)))
	}

	return out
}

// mergeRefreshRequests keeps one request per symbol with the earliest
// start, preserving first-seen order
func mergeRefreshRequests(requests []PriceRefreshRequest) []PriceRefreshRequest {
	index := map[string]int{}
	out := []PriceRefreshRequest{}
	for _, r := range requests {
		r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
		if r.Symbol == "" {
			continue
		}
		if r.Label == "" {
			r.Label = r.Symbol
		}
		if i, ok := index[r.Symbol]; ok {
			if r.Start.Before(out[i].Start) {
				out[i].Start = r.Start
			}
			continue
		}
		index[r.Symbol] = len(out)
		out = append(out, r)
	}
	return out
}

func chunkRequests(requests []PriceRefreshRequest, size int) [][]PriceRefreshRequest {
	if size < 1 {
		size = 1
	}
	out := [][]PriceRefreshRequest{}
	for start := 0; start < len(requests); start += size {
		end := start + size
		if end > len(requests) {
			end = len(requests)
		}
		out = append(out, requests[start:end])
	}
	return out
}

func dedupeSymbols(symbols []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
