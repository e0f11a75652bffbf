package domain

import "errors"

var (
	// ErrPriceUnavailable means no stored price exists on or before the
	// requested date
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrInvalidPrice means an entry price was zero or negative
	ErrInvalidPrice = errors.New("invalid price")
	// ErrFetchFailure wraps any failure from the upstream price client
	ErrFetchFailure = errors.New("price fetch failed")
	// ErrCalculationFailure aborts a recalculation pass
	ErrCalculationFailure = errors.New("calculation failed")
	ErrAlreadyRunning     = errors.New("recalculation already running")
	ErrCacheMiss          = errors.New("view cache miss")
)
