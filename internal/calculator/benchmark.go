package calculator

import (
	"math"
	"time"

	"picktracker/internal/domain"
	"picktracker/internal/util"

	"github.com/shopspring/decimal"
)

// DefaultSyntheticAnnualReturns are long-run annual % returns used when
// a benchmark has no usable price history
var DefaultSyntheticAnnualReturns = map[string]decimal.Decimal{
	"SPY":  decimal.NewFromInt(10),
	"VT":   decimal.NewFromInt(9),
	"EEMS": decimal.NewFromInt(7),
}

var defaultSyntheticAnnualReturn = decimal.NewFromInt(8)

var daysPerYear = decimal.NewFromInt(365)

type BenchmarkSeriesBuilder struct {
	SyntheticAnnualReturns map[string]decimal.Decimal
	DefaultAnnualReturn    decimal.Decimal
}

func NewBenchmarkSeriesBuilder() BenchmarkSeriesBuilder {
	return BenchmarkSeriesBuilder{
		SyntheticAnnualReturns: DefaultSyntheticAnnualReturns,
		DefaultAnnualReturn:    defaultSyntheticAnnualReturn,
	}
}

// WithSyntheticReturns returns a copy of the builder whose table has the
// given per-symbol annual % returns layered over its own
func (b BenchmarkSeriesBuilder) WithSyntheticReturns(overrides map[string]decimal.Decimal) BenchmarkSeriesBuilder {
	merged := map[string]decimal.Decimal{}
	for symbol, r := range b.SyntheticAnnualReturns {
		merged[symbol] = r
	}
	for symbol, r := range overrides {
		merged[symbol] = r
	}
	b.SyntheticAnnualReturns = merged
	return b
}

type BenchmarkSeriesInput struct {
	Symbol      string
	Start       time.Time
	End         time.Time
	TargetDates []time.Time
	// Prices must be sorted ascending by date
	Prices []domain.AssetPrice
}

func (b BenchmarkSeriesBuilder) annualReturn(symbol string) decimal.Decimal {
	if r, ok := b.SyntheticAnnualReturns[symbol]; ok {
		return r
	}
	return b.DefaultAnnualReturn
}

// Build converts a benchmark's prices into % change from a base price,
// aligned to the target dates. Prices after End are never read. When no
// base price exists at all the series is a synthetic straight line.
func (b BenchmarkSeriesBuilder) Build(in BenchmarkSeriesInput) []domain.SeriesPoint {
	out := []domain.SeriesPoint{}
	if len(in.TargetDates) == 0 {
		return out
	}

	prices := clampPrices(in.Prices, in.End)
	firstTarget := util.DateOnly(in.TargetDates[0])

	base, err := PriceOnOrBefore(prices, firstTarget)
	if err != nil {
		// look ahead to the first price after the window opens. this can
		// leave the first point nonzero when earlier data is missing
		base, err = EarliestOnOrAfter(prices, firstTarget)
	}
	if err != nil || !base.IsPositive() {
		return b.synthetic(in.Symbol, in.TargetDates)
	}

	for _, target := range in.TargetDates {
		value := decimal.Zero
		current, err := PriceOnOrBefore(prices, target)
		if err == nil {
			value = current.Sub(base).Div(base).Mul(hundred)
		}
		out = append(out, domain.SeriesPoint{
			Date:  util.DateOnly(target),
			Value: value,
		})
	}

	return out
}

func (b BenchmarkSeriesBuilder) synthetic(symbol string, targetDates []time.Time) []domain.SeriesPoint {
	annual := b.annualReturn(symbol)
	first := targetDates[0]

	out := []domain.SeriesPoint{}
	for _, target := range targetDates {
		days := decimal.NewFromInt(int64(util.DaysBetween(first, target)))
		out = append(out, domain.SeriesPoint{
			Date:  util.DateOnly(target),
			Value: annual.Mul(days).Div(daysPerYear),
		})
	}
	return out
}

// PeriodReturn is the benchmark's % change between the prices in effect
// at start and end. Without both prices it compounds the synthetic
// annual return over the period instead.
func (b BenchmarkSeriesBuilder) PeriodReturn(symbol string, prices []domain.AssetPrice, start, end time.Time) decimal.Decimal {
	prices = clampPrices(prices, end)
	startPrice, startErr := PriceOnOrBefore(prices, start)
	endPrice, endErr := PriceOnOrBefore(prices, end)
	if startErr == nil && endErr == nil {
		if r, err := SimpleReturn(startPrice, endPrice); err == nil {
			return r
		}
	}

	years := float64(util.DaysBetween(start, end)) / 365
	growth := decimal.NewFromInt(1).Add(b.annualReturn(symbol).Div(hundred)).InexactFloat64()
	return decimal.NewFromFloat(math.Pow(growth, years) - 1).Mul(hundred)
}

func clampPrices(prices []domain.AssetPrice, end time.Time) []domain.AssetPrice {
	day := util.DateOnly(end)
	for i, p := range prices {
		if util.DateOnly(p.Date).After(day) {
			return prices[:i]
		}
	}
	return prices
}
