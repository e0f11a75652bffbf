package l2_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"picktracker/internal/calculator"
	"picktracker/internal/domain"
	l1_service "picktracker/internal/service/l1"
	"picktracker/internal/util"
)

type BenchmarkService interface {
	// GetSeries is the % change of symbol from start, sampled at the
	// granularity. Symbols without stored prices get the synthetic line.
	GetSeries(ctx context.Context, symbol string, start, end time.Time, granularity calculator.Granularity) ([]domain.SeriesPoint, error)
}

type benchmarkServiceHandler struct {
	PriceService     l1_service.PriceService
	BenchmarkBuilder calculator.BenchmarkSeriesBuilder
}

func NewBenchmarkService(priceService l1_service.PriceService, benchmarkBuilder calculator.BenchmarkSeriesBuilder) BenchmarkService {
	return benchmarkServiceHandler{
		PriceService:     priceService,
		BenchmarkBuilder: benchmarkBuilder,
	}
}

func (h benchmarkServiceHandler) GetSeries(ctx context.Context, symbol string, start, end time.Time, granularity calculator.Granularity) ([]domain.SeriesPoint, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("benchmark symbol is required")
	}
	start, end = util.DateOnly(start), util.DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("benchmark end %s is before start %s", util.FormatDate(end), util.FormatDate(start))
	}

	prices, err := h.PriceService.LoadPriceCache(ctx, []string{symbol}, start, end)
	if err != nil {
		return nil, err
	}

	return h.BenchmarkBuilder.Build(calculator.BenchmarkSeriesInput{
		Symbol:      symbol,
		Start:       start,
		End:         end,
		TargetDates: calculator.TargetDates(start, end, granularity),
		Prices:      prices.Prices(symbol),
	}), nil
}
