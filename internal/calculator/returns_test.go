package calculator

import (
	"errors"
	"testing"

	"picktracker/internal/domain"
	"picktracker/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func price(symbol string, date string, p float64) domain.AssetPrice {
	d, err := util.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return domain.AssetPrice{
		Symbol: symbol,
		Date:   d,
		Price:  decimal.NewFromFloat(p),
	}
}

func requireDecimal(t *testing.T, expected float64, actual decimal.Decimal) {
	t.Helper()
	require.InDelta(t, expected, actual.InexactFloat64(), 1e-9, "got %s", actual.String())
}

func Test_PriceOnOrBefore(t *testing.T) {
	prices := []domain.AssetPrice{
		price("AAPL", "2024-01-02", 100),
		price("AAPL", "2024-01-05", 105),
	}

	t.Run("exact date", func(t *testing.T) {
		p, err := PriceOnOrBefore(prices, util.NewDate(2024, 1, 5))
		require.NoError(t, err)
		requireDecimal(t, 105, p)
	})

	t.Run("weekend carries forward", func(t *testing.T) {
		p, err := PriceOnOrBefore(prices, util.NewDate(2024, 1, 4))
		require.NoError(t, err)
		requireDecimal(t, 100, p)
	})

	t.Run("before first price", func(t *testing.T) {
		_, err := PriceOnOrBefore(prices, util.NewDate(2024, 1, 1))
		require.True(t, errors.Is(err, domain.ErrPriceUnavailable))
	})

	t.Run("empty history", func(t *testing.T) {
		_, err := PriceOnOrBefore(nil, util.NewDate(2024, 1, 1))
		require.ErrorIs(t, err, domain.ErrPriceUnavailable)
	})

	t.Run("earliest on or after", func(t *testing.T) {
		p, err := EarliestOnOrAfter(prices, util.NewDate(2024, 1, 3))
		require.NoError(t, err)
		requireDecimal(t, 105, p)

		_, err = EarliestOnOrAfter(prices, util.NewDate(2024, 1, 6))
		require.ErrorIs(t, err, domain.ErrPriceUnavailable)
	})
}

func Test_SimpleReturn(t *testing.T) {
	t.Run("gain", func(t *testing.T) {
		r, err := SimpleReturn(decimal.NewFromInt(100), decimal.NewFromInt(150))
		require.NoError(t, err)
		requireDecimal(t, 50, r)
	})

	t.Run("loss", func(t *testing.T) {
		r, err := SimpleReturn(decimal.NewFromInt(200), decimal.NewFromInt(150))
		require.NoError(t, err)
		requireDecimal(t, -25, r)
	})

	t.Run("zero entry price", func(t *testing.T) {
		_, err := SimpleReturn(decimal.Zero, decimal.NewFromInt(150))
		require.ErrorIs(t, err, domain.ErrInvalidPrice)
	})

	t.Run("negative entry price", func(t *testing.T) {
		_, err := SimpleReturn(decimal.NewFromInt(-1), decimal.NewFromInt(150))
		require.ErrorIs(t, err, domain.ErrInvalidPrice)
	})
}

func Test_Annualize(t *testing.T) {
	start := util.NewDate(2020, 1, 1)

	t.Run("a year or less is unchanged", func(t *testing.T) {
		r := decimal.NewFromInt(12)
		require.True(t, r.Equal(Annualize(r, start, start.AddDate(0, 0, 365))))
		require.True(t, r.Equal(Annualize(r, start, start.AddDate(0, 0, 30))))
	})

	t.Run("zero and negative periods do not fail", func(t *testing.T) {
		r := decimal.NewFromInt(12)
		require.True(t, r.Equal(Annualize(r, start, start)))
		require.True(t, r.Equal(Annualize(r, start, start.AddDate(0, 0, -10))))
	})

	t.Run("two years", func(t *testing.T) {
		// 50% over 730 days is sqrt(1.5) - 1 per year
		r := Annualize(decimal.NewFromInt(50), start, start.AddDate(0, 0, 730))
		require.InDelta(t, 22.47448714, r.InexactFloat64(), 1e-6)
	})

	t.Run("total loss stays a total loss", func(t *testing.T) {
		end := start.AddDate(3, 0, 0)
		requireDecimal(t, -100, Annualize(decimal.NewFromInt(-100), start, end))
		requireDecimal(t, -100, Annualize(decimal.NewFromInt(-140), start, end))
	})
}
