package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetPrice is one daily close for a ticker. Dates are normalized
// to midnight UTC before they are stored or compared.
type AssetPrice struct {
	Symbol string
	Price  decimal.Decimal
	Date   time.Time
	Volume *int64
}

// SeriesPoint is a single (date, pct) observation produced by the
// series builders. Values stay exact until they are presented.
type SeriesPoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// ToPct rounds a percentage for presentation
func ToPct(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
