package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"picktracker/internal/domain"
	"picktracker/internal/util"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

type alpacaBarsClient interface {
	GetMultiBars(symbols []string, req marketdata.GetBarsRequest) (map[string][]marketdata.Bar, error)
}

type alpacaPriceClientHandler struct {
	MdClient alpacaBarsClient
}

func NewAlpacaPriceClient(apiKey, apiSecret string, endpoint string) PriceClient {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaPriceClientHandler{
		MdClient: mdClient,
	}
}

func (h alpacaPriceClientHandler) FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	results, err := h.FetchPricesBatch(ctx, []string{symbol}, start, end)
	if err != nil {
		return nil, err
	}
	out, ok := results[symbol]
	if !ok {
		return []domain.AssetPrice{}, nil
	}
	return out, nil
}

// FetchPricesBatch pulls split and dividend adjusted daily bars for all
// symbols in one request. Symbols without bars map to an empty slice.
func (h alpacaPriceClientHandler) FetchPricesBatch(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	if len(symbols) == 0 {
		return map[string][]domain.AssetPrice{}, nil
	}

	req := marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      util.DateOnly(start),
		End:        util.DateOnly(end).AddDate(0, 0, 1),
	}
	results, err := callWithContext(ctx, func() (map[string][]marketdata.Bar, error) {
		return h.MdClient.GetMultiBars(symbols, req)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get alpaca bars for %s: %w", strings.Join(symbols, ","), err)
	}

	out := map[string][]domain.AssetPrice{}
	for _, symbol := range symbols {
		out[symbol] = []domain.AssetPrice{}
	}
	for symbol, bars := range results {
		for _, bar := range bars {
			if bar.Close <= 0 {
				continue
			}
			date := util.DateOnly(bar.Timestamp.UTC())
			if date.After(util.DateOnly(end)) {
				continue
			}
			out[symbol] = append(out[symbol], domain.AssetPrice{
				Symbol: symbol,
				Price:  decimal.NewFromFloat(bar.Close),
				Date:   date,
				Volume: util.Int64Pointer(int64(bar.Volume)),
			})
		}
	}

	return out, nil
}
