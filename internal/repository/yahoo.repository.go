package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picktracker/internal/domain"
	"picktracker/internal/util"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

type yahooPriceClientHandler struct {
	// fetch is swapped out in tests
	fetch func(symbol string, start, end time.Time) ([]domain.AssetPrice, error)
}

func NewYahooPriceClient() PriceClient {
	return yahooPriceClientHandler{
		fetch: fetchYahooChart,
	}
}

func (h yahooPriceClientHandler) FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	prices, err := callWithContext(ctx, func() ([]domain.AssetPrice, error) {
		return h.fetch(symbol, start, end)
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch for %s failed: %w", symbol, err)
	}
	return prices, nil
}

// FetchPricesBatch issues one chart request per symbol; Yahoo has no
// multi-symbol history endpoint
func (h yahooPriceClientHandler) FetchPricesBatch(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	out := map[string][]domain.AssetPrice{}
	var errs []error
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		prices, err := h.FetchPrices(ctx, symbol, start, end)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[symbol] = prices
	}

	return out, errors.Join(errs...)
}

func fetchYahooChart(symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	s := util.DateOnly(start)
	// chart's end bound is exclusive
	e := util.DateOnly(end).AddDate(0, 0, 1)
	params := &chart.Params{
		Start:    datetime.New(&s),
		End:      datetime.New(&e),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := []domain.AssetPrice{}
	for iter.Next() {
		bar := iter.Bar()
		if !bar.AdjClose.IsPositive() {
			continue
		}
		date := util.DateOnly(time.Unix(int64(bar.Timestamp), 0).UTC())
		if date.Before(util.DateOnly(start)) || date.After(util.DateOnly(end)) {
			continue
		}
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Price:  bar.AdjClose,
			Date:   date,
			Volume: util.Int64Pointer(int64(bar.Volume)),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return out, nil
}
