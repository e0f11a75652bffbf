package calculator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"picktracker/internal/domain"
	"picktracker/internal/util"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PriceOnOrBefore returns the latest price dated on or before date.
// prices must be sorted ascending by date.
func PriceOnOrBefore(prices []domain.AssetPrice, date time.Time) (decimal.Decimal, error) {
	day := util.DateOnly(date)
	// first index strictly after day
	i := sort.Search(len(prices), func(i int) bool {
		return util.DateOnly(prices[i].Date).After(day)
	})
	if i == 0 {
		return decimal.Zero, fmt.Errorf("no price on or before %s: %w", util.FormatDate(day), domain.ErrPriceUnavailable)
	}
	return prices[i-1].Price, nil
}

// EarliestOnOrAfter returns the first price dated on or after date
func EarliestOnOrAfter(prices []domain.AssetPrice, date time.Time) (decimal.Decimal, error) {
	day := util.DateOnly(date)
	i := sort.Search(len(prices), func(i int) bool {
		return !util.DateOnly(prices[i].Date).Before(day)
	})
	if i == len(prices) {
		return decimal.Zero, fmt.Errorf("no price on or after %s: %w", util.FormatDate(day), domain.ErrPriceUnavailable)
	}
	return prices[i].Price, nil
}

// SimpleReturn is the percentage change from entry to current
func SimpleReturn(entry, current decimal.Decimal) (decimal.Decimal, error) {
	if !entry.IsPositive() {
		return decimal.Zero, fmt.Errorf("entry price %s: %w", entry.String(), domain.ErrInvalidPrice)
	}
	return current.Sub(entry).Div(entry).Mul(hundred), nil
}

// Annualize converts a total return over [start, end] into an annual
// rate. Periods of a year or less are returned unchanged, and a total
// loss stays a total loss.
func Annualize(returnPct decimal.Decimal, start, end time.Time) decimal.Decimal {
	days := util.DaysBetween(start, end)
	if days <= 365 {
		return returnPct
	}
	if returnPct.LessThanOrEqual(hundred.Neg()) {
		return hundred.Neg()
	}

	growth := decimal.NewFromInt(1).Add(returnPct.Div(hundred)).InexactFloat64()
	annual := math.Pow(growth, 365/float64(days)) - 1
	return decimal.NewFromFloat(annual).Mul(hundred)
}

// SortPrices orders prices ascending by date in place
func SortPrices(prices []domain.AssetPrice) {
	sort.SliceStable(prices, func(i, j int) bool {
		return prices[i].Date.Before(prices[j].Date)
	})
}
