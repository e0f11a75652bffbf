package calculator

import (
	"fmt"
	"sort"
	"time"

	"picktracker/internal/domain"
	"picktracker/internal/util"

	"github.com/shopspring/decimal"
)

// PriceLookup resolves the price in effect for a symbol on a date
type PriceLookup interface {
	PriceOnOrBefore(symbol string, date time.Time) (decimal.Decimal, error)
}

type SeriesPosition struct {
	PositionID string
	Symbol     string
	EntryDate  time.Time
}

// initialValue is the notional size of the first incremental position
var initialValue = decimal.NewFromInt(100)

// BuildPortfolioSeries computes the portfolio's cumulative % return at
// each target date. targetDates must be ascending. Positions that cannot
// be priced are left out at that date rather than counted as flat.
func BuildPortfolioSeries(
	positions []SeriesPosition,
	targetDates []time.Time,
	method domain.CalculationMethod,
	prices PriceLookup,
) ([]domain.SeriesPoint, error) {
	switch method {
	case domain.CalculationMethod_Equal:
		return equalWeightSeries(positions, targetDates, prices), nil
	case domain.CalculationMethod_Incremental:
		return incrementalSeries(positions, targetDates, prices), nil
	}
	return nil, fmt.Errorf("unsupported calculation method %q", method)
}

func equalWeightSeries(positions []SeriesPosition, targetDates []time.Time, prices PriceLookup) []domain.SeriesPoint {
	out := []domain.SeriesPoint{}
	for _, target := range targetDates {
		total := decimal.Zero
		count := 0
		for _, p := range positions {
			if p.Symbol == "" || !util.DateLte(p.EntryDate, target) {
				continue
			}
			entry, err := prices.PriceOnOrBefore(p.Symbol, p.EntryDate)
			if err != nil {
				continue
			}
			current, err := prices.PriceOnOrBefore(p.Symbol, target)
			if err != nil {
				continue
			}
			r, err := SimpleReturn(entry, current)
			if err != nil {
				continue
			}
			total = total.Add(r)
			count++
		}

		value := decimal.Zero
		if count > 0 {
			value = total.Div(decimal.NewFromInt(int64(count)))
		}
		out = append(out, domain.SeriesPoint{
			Date:  util.DateOnly(target),
			Value: value,
		})
	}
	return out
}

// incrementalSeries simulates a portfolio that starts with 100 units in
// the first pick and, on every later entry, rebalances all holdings
// (new one included) to an equal share of the marked-to-market value
func incrementalSeries(positions []SeriesPosition, targetDates []time.Time, prices PriceLookup) []domain.SeriesPoint {
	sorted := append([]SeriesPosition{}, positions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EntryDate.Equal(sorted[j].EntryDate) {
			return sorted[i].PositionID < sorted[j].PositionID
		}
		return sorted[i].EntryDate.Before(sorted[j].EntryDate)
	})

	holdings := domain.NewHoldings()
	next := 0
	out := []domain.SeriesPoint{}
	for _, target := range targetDates {
		for next < len(sorted) && util.DateLte(sorted[next].EntryDate, target) {
			addIncrementalPosition(holdings, sorted[next], prices)
			next++
		}

		value := decimal.Zero
		if holdings.Len() > 0 {
			total, err := holdings.TotalValue(markToMarket(holdings, target, prices))
			if err == nil {
				value = total.Sub(initialValue).Div(initialValue).Mul(hundred)
			}
		}
		out = append(out, domain.SeriesPoint{
			Date:  util.DateOnly(target),
			Value: value,
		})
	}
	return out
}

func addIncrementalPosition(holdings *domain.Holdings, p SeriesPosition, prices PriceLookup) {
	if p.Symbol == "" {
		return
	}
	entryPrice, err := prices.PriceOnOrBefore(p.Symbol, p.EntryDate)
	if err != nil || !entryPrice.IsPositive() {
		return
	}

	holding := &domain.Holding{
		PositionID: p.PositionID,
		Symbol:     p.Symbol,
		EntryPrice: entryPrice,
	}
	if holdings.Len() == 0 {
		holding.Shares = initialValue.Div(entryPrice)
		holdings.Positions[p.PositionID] = holding
		return
	}

	priceMap := markToMarket(holdings, p.EntryDate, prices)
	total, err := holdings.TotalValue(priceMap)
	if err != nil {
		return
	}
	targetValue := total.Div(decimal.NewFromInt(int64(holdings.Len() + 1)))
	if err := holdings.Resize(targetValue, priceMap); err != nil {
		return
	}
	holding.Shares = targetValue.Div(entryPrice)
	holdings.Positions[p.PositionID] = holding
}

// markToMarket prices every holding on date, falling back to the
// holding's entry price when no usable price exists
func markToMarket(holdings *domain.Holdings, date time.Time, prices PriceLookup) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for id, holding := range holdings.Positions {
		price, err := prices.PriceOnOrBefore(holding.Symbol, date)
		if err != nil || !price.IsPositive() {
			price = holding.EntryPrice
		}
		out[id] = price
	}
	return out
}
