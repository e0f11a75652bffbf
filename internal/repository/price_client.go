package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"picktracker/internal/domain"
	"picktracker/internal/logger"

	"github.com/cenkalti/backoff/v4"
)

// PriceClient fetches daily closes from an upstream market data source.
// A ticker with no data yields an empty slice, not an error.
type PriceClient interface {
	FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error)
	// FetchPricesBatch returns rows for every symbol it could fetch. On
	// error the map still holds the symbols that succeeded.
	FetchPricesBatch(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error)
}

type retryingPriceClient struct {
	Client     PriceClient
	Attempts   int
	Timeout    time.Duration
	newBackOff func() backoff.BackOff
}

// NewRetryingPriceClient bounds every upstream call with timeout and
// retries failures with exponential backoff. Errors that survive every
// attempt wrap domain.ErrFetchFailure.
func NewRetryingPriceClient(client PriceClient, attempts int, timeout time.Duration) PriceClient {
	return retryingPriceClient{
		Client:   client,
		Attempts: attempts,
		Timeout:  timeout,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (h retryingPriceClient) FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	var out []domain.AssetPrice
	err := h.retry(ctx, symbol, func(attemptCtx context.Context) error {
		prices, err := h.Client.FetchPrices(attemptCtx, symbol, start, end)
		if err != nil {
			return err
		}
		out = prices
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.AssetPrice{}
	}
	return out, nil
}

// FetchPricesBatch only asks again for the symbols that have not come
// back yet, so one bad ticker does not refetch the whole batch
func (h retryingPriceClient) FetchPricesBatch(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	out := map[string][]domain.AssetPrice{}
	remaining := symbols

	err := h.retry(ctx, strings.Join(symbols, ","), func(attemptCtx context.Context) error {
		results, err := h.Client.FetchPricesBatch(attemptCtx, remaining, start, end)
		for symbol, prices := range results {
			out[symbol] = prices
		}
		if err == nil {
			return nil
		}

		next := []string{}
		for _, s := range remaining {
			if _, ok := out[s]; !ok {
				next = append(next, s)
			}
		}
		if len(next) == 0 {
			return nil
		}
		remaining = next
		return err
	})

	return out, err
}

func (h retryingPriceClient) retry(ctx context.Context, label string, fn func(context.Context) error) error {
	log := logger.FromContext(ctx)

	attempts := h.Attempts
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.WithContext(
		backoff.WithMaxRetries(h.newBackOff(), uint64(attempts-1)),
		ctx,
	)

	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, h.Timeout)
		defer cancel()

		err := fn(attemptCtx)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warnf("price fetch for %s failed, retrying in %s: %v", label, wait, err)
	}

	err := backoff.RetryNotify(operation, b, notify)
	if err != nil {
		return fmt.Errorf("failed to fetch prices for %s after %d attempts: %w: %w", label, attempts, domain.ErrFetchFailure, err)
	}
	return nil
}

// callWithContext runs fn in the background and gives up when ctx ends.
// The upstream SDKs take no context; an abandoned call finishes on its own.
func callWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		value, err := fn()
		ch <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.value, r.err
	}
}
