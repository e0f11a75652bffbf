package l2_service

import (
	"fmt"
	"time"

	"picktracker/internal/calculator"
	"picktracker/internal/domain"
	"picktracker/internal/util"
)

// PriceSource is the read side of a loaded price cache
type PriceSource interface {
	calculator.PriceLookup
	Prices(symbol string) []domain.AssetPrice
}

type ViewBuildInput struct {
	Dataset          domain.UnifiedDataset
	Prices           PriceSource
	BenchmarkTickers []string
	// Today is the last target date of every series
	Today time.Time
	Now   time.Time
}

type ViewService interface {
	BuildView(in ViewBuildInput, key domain.ViewKey) (*domain.ViewResult, error)
	BuildAll(in ViewBuildInput) ([]domain.ViewResult, error)
}

type viewServiceHandler struct {
	BenchmarkBuilder calculator.BenchmarkSeriesBuilder
}

func NewViewService(benchmarkBuilder calculator.BenchmarkSeriesBuilder) ViewService {
	return viewServiceHandler{BenchmarkBuilder: benchmarkBuilder}
}

// BuildAll derives every filter/method view from the same dataset. It
// stops at the first failure so callers never see a partial set.
func (h viewServiceHandler) BuildAll(in ViewBuildInput) ([]domain.ViewResult, error) {
	out := []domain.ViewResult{}
	for _, key := range domain.AllViewKeys() {
		view, err := h.BuildView(in, key)
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

func (h viewServiceHandler) BuildView(in ViewBuildInput, key domain.ViewKey) (*domain.ViewResult, error) {
	today := util.DateOnly(in.Today)
	ids := in.Dataset.PositionIDs(key.Filter)

	performances := []domain.PositionPerformance{}
	for _, id := range ids {
		if perf, ok := in.Dataset.Performances[id]; ok {
			performances = append(performances, perf)
		}
	}

	summary := calculator.Summarize(performances)

	inception, err := h.buildSeries(in, performances, nil, key.Method, today)
	if err != nil {
		return nil, fmt.Errorf("failed to build inception series for %s: %w", key.String(), err)
	}
	windowStart := today.AddDate(0, 0, -365)
	oneYear, err := h.buildSeries(in, performances, &windowStart, key.Method, today)
	if err != nil {
		return nil, fmt.Errorf("failed to build 1y series for %s: %w", key.String(), err)
	}

	sectors, err := calculator.SectorBreakdown(performances)
	if err != nil {
		return nil, fmt.Errorf("failed to build sector breakdown for %s: %w", key.String(), err)
	}

	// rankings ignore the view filter
	rankings, err := calculator.AnalystRankings(in.Dataset.Positions, in.Dataset.Performances, today)
	if err != nil {
		return nil, fmt.Errorf("failed to rank analysts for %s: %w", key.String(), err)
	}

	return &domain.ViewResult{
		Key:             key,
		Summary:         h.portfolioSummary(in, summary, today),
		InceptionSeries: inception,
		OneYearSeries:   oneYear,
		SectorBreakdown: sectors,
		AnalystRankings: rankings,
		PositiveRatio:   domain.ToPct(summary.PositiveRatioPct),
		TotalPositions:  len(performances),
		PositionIDs:     ids,
		CachedAt:        in.Now.UTC().Truncate(time.Microsecond),
	}, nil
}

func (h viewServiceHandler) portfolioSummary(in ViewBuildInput, summary calculator.PerformanceSummary, today time.Time) domain.PortfolioSummary {
	out := domain.PortfolioSummary{
		NumPositions:     summary.NumPositions,
		BenchmarkReturns: map[string]float64{},
	}
	if summary.NumPositions == 0 {
		return out
	}

	totalReturn := domain.ToPct(*summary.AvgReturn)
	annualized := domain.ToPct(*summary.AvgAnnualized)
	out.TotalReturn = &totalReturn
	out.AnnualizedReturn = &annualized

	start := today.AddDate(0, 0, -365)
	if summary.EarliestEntry != nil {
		start = *summary.EarliestEntry
		out.StartDate = util.StringPointer(util.FormatDate(start))
	}
	for _, ticker := range in.BenchmarkTickers {
		r := h.BenchmarkBuilder.PeriodReturn(ticker, in.Prices.Prices(ticker), start, today)
		out.BenchmarkReturns[ticker] = domain.ToPct(r)
	}

	return out
}

// buildSeries returns nil when no position falls in the window. With a
// windowStart only positions entered on or after it are included and the
// dates run from windowStart; otherwise they run from the first entry.
// Positions entered after today have no priced history yet and are left
// out of the series.
func (h viewServiceHandler) buildSeries(
	in ViewBuildInput,
	performances []domain.PositionPerformance,
	windowStart *time.Time,
	method domain.CalculationMethod,
	today time.Time,
) (*domain.SeriesView, error) {
	positions := []calculator.SeriesPosition{}
	for _, p := range performances {
		entry := util.DateOnly(p.Position.EntryDate())
		if windowStart != nil && entry.Before(*windowStart) {
			continue
		}
		if entry.After(today) {
			continue
		}
		positions = append(positions, calculator.SeriesPosition{
			PositionID: p.Position.PositionID,
			Symbol:     p.Position.Symbol(),
			EntryDate:  entry,
		})
	}
	if len(positions) == 0 {
		return nil, nil
	}

	start := positions[0].EntryDate
	for _, p := range positions {
		if p.EntryDate.Before(start) {
			start = p.EntryDate
		}
	}
	if windowStart != nil {
		start = *windowStart
	}
	targetDates := calculator.MonthlyTargetDates(start, today)

	points, err := calculator.BuildPortfolioSeries(positions, targetDates, method, in.Prices)
	if err != nil {
		return nil, err
	}

	out := &domain.SeriesView{
		Dates:      []string{},
		Portfolio:  toPctSlice(points),
		Benchmarks: map[string][]float64{},
	}
	for _, d := range targetDates {
		out.Dates = append(out.Dates, util.FormatDate(d))
	}
	for _, ticker := range in.BenchmarkTickers {
		series := h.BenchmarkBuilder.Build(calculator.BenchmarkSeriesInput{
			Symbol:      ticker,
			Start:       start,
			End:         today,
			TargetDates: targetDates,
			Prices:      in.Prices.Prices(ticker),
		})
		out.Benchmarks[ticker] = toPctSlice(series)
	}

	return out, nil
}

func toPctSlice(points []domain.SeriesPoint) []float64 {
	out := []float64{}
	for _, p := range points {
		out = append(out, domain.ToPct(p.Value))
	}
	return out
}
