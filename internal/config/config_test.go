package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{"API_PORT", "PRICE_PROVIDER", "PRICE_BATCH_SIZE", "PRICE_FETCH_WORKERS", "PRICE_FETCH_ATTEMPTS", "PRICE_FETCH_TIMEOUT", "PRICE_BATCH_DELAY", "VIEW_CACHE_DIR", "VIEW_CACHE_MAX_AGE_DAYS", "BENCHMARK_TICKERS", "BENCHMARK_SYNTHETIC_RETURNS"} {
			t.Setenv(key, "")
		}

		cfg, err := FromEnv()
		require.NoError(t, err)
		require.Equal(t, 3009, cfg.ApiPort)
		require.Equal(t, PriceProvider_Yahoo, cfg.PriceProvider)
		require.Equal(t, 20, cfg.PriceBatchSize)
		require.Equal(t, 3, cfg.PriceFetchAttempts)
		require.Equal(t, 7*24*time.Hour, cfg.ViewCacheMaxAge)
		require.Equal(t, "", cmp.Diff([]string{"SPY", "VT", "EEMS"}, cfg.BenchmarkTickers))
		require.Empty(t, cfg.BenchmarkSyntheticReturns)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PRICE_PROVIDER", "Alpaca")
		t.Setenv("PRICE_BATCH_SIZE", "5")
		t.Setenv("PRICE_FETCH_TIMEOUT", "2s")
		t.Setenv("BENCHMARK_TICKERS", "spy, qqq ,")

		cfg, err := FromEnv()
		require.NoError(t, err)
		require.Equal(t, PriceProvider_Alpaca, cfg.PriceProvider)
		require.Equal(t, 5, cfg.PriceBatchSize)
		require.Equal(t, 2*time.Second, cfg.PriceFetchTimeout)
		require.Equal(t, "", cmp.Diff([]string{"SPY", "QQQ"}, cfg.BenchmarkTickers))
	})

	t.Run("synthetic benchmark returns", func(t *testing.T) {
		t.Setenv("BENCHMARK_SYNTHETIC_RETURNS", "qqq=12.5, SPY = 9")

		cfg, err := FromEnv()
		require.NoError(t, err)
		require.Len(t, cfg.BenchmarkSyntheticReturns, 2)
		require.Equal(t, "12.5", cfg.BenchmarkSyntheticReturns["QQQ"].String())
		require.Equal(t, "9", cfg.BenchmarkSyntheticReturns["SPY"].String())

		t.Setenv("BENCHMARK_SYNTHETIC_RETURNS", "SPY")
		_, err = FromEnv()
		require.ErrorContains(t, err, "BENCHMARK_SYNTHETIC_RETURNS")
	})

	t.Run("invalid values are reported together", func(t *testing.T) {
		t.Setenv("PRICE_PROVIDER", "bloomberg")
		t.Setenv("PRICE_BATCH_SIZE", "abc")

		_, err := FromEnv()
		require.ErrorContains(t, err, "PRICE_BATCH_SIZE")
		require.ErrorContains(t, err, "bloomberg")
	})
}

func TestDbSecrets_ToConnectionStr(t *testing.T) {
	s := DbSecrets{Host: "localhost", Port: "5440", User: "postgres", Password: "postgres", Database: "picks"}
	require.Equal(t, "host=localhost port=5440 user=postgres password=postgres dbname=picks sslmode=disable", s.ToConnectionStr())
}
