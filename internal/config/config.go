package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Secrets struct {
	Db     DbSecrets     `json:"db"`
	Alpaca AlpacaSecrets `json:"alpaca"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

type AlpacaSecrets struct {
	ApiKey    string `json:"apiKey"`
	ApiSecret string `json:"apiSecret"`
	Endpoint  string `json:"endpoint"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

type PriceProvider string

const (
	PriceProvider_Yahoo  PriceProvider = "yahoo"
	PriceProvider_Alpaca PriceProvider = "alpaca"
)

type Config struct {
	Env     string
	Secrets Secrets

	ApiPort int

	PriceProvider      PriceProvider
	PriceBatchSize     int
	PriceFetchWorkers  int
	PriceFetchAttempts int
	PriceFetchTimeout  time.Duration
	PriceBatchDelay    time.Duration

	ViewCacheDir    string
	ViewCacheMaxAge time.Duration

	BenchmarkTickers []string
	// BenchmarkSyntheticReturns overrides the annual % return assumed for
	// a benchmark with no usable price history
	BenchmarkSyntheticReturns map[string]decimal.Decimal
}

func secretsFile(env string) string {
	if path := os.Getenv("SECRETS_FILE"); path != "" {
		return path
	}
	switch env {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	return "/go/src/app/secrets.json"
}

func LoadSecrets(env string) (*Secrets, error) {
	f, err := os.ReadFile(secretsFile(env))
	if err != nil {
		return nil, fmt.Errorf("could not open secrets file: %w", err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}

	return &secrets, nil
}

// Load reads .env (if present), the secrets file and the tunables from
// the environment
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	env := strings.ToLower(os.Getenv("APP_ENV"))
	secrets, err := LoadSecrets(env)
	if err != nil {
		return nil, err
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Env = env
	cfg.Secrets = *secrets

	return cfg, nil
}

// FromEnv builds the non-secret settings, falling back to defaults
func FromEnv() (*Config, error) {
	var errs []error
	intVar := func(key string, fallback int) int {
		v, err := getEnvInt(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	durationVar := func(key string, fallback time.Duration) time.Duration {
		v, err := getEnvDuration(key, fallback)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	cfg := &Config{
		ApiPort:            intVar("API_PORT", 3009),
		PriceProvider:      PriceProvider(strings.ToLower(getEnv("PRICE_PROVIDER", string(PriceProvider_Yahoo)))),
		PriceBatchSize:     intVar("PRICE_BATCH_SIZE", 20),
		PriceFetchWorkers:  intVar("PRICE_FETCH_WORKERS", 4),
		PriceFetchAttempts: intVar("PRICE_FETCH_ATTEMPTS", 3),
		PriceFetchTimeout:  durationVar("PRICE_FETCH_TIMEOUT", 30*time.Second),
		PriceBatchDelay:    durationVar("PRICE_BATCH_DELAY", 500*time.Millisecond),
		ViewCacheDir:       getEnv("VIEW_CACHE_DIR", "data/view_cache"),
		ViewCacheMaxAge:    time.Duration(intVar("VIEW_CACHE_MAX_AGE_DAYS", 7)) * 24 * time.Hour,
		BenchmarkTickers:   splitList(getEnv("BENCHMARK_TICKERS", "SPY,VT,EEMS")),
	}

	syntheticReturns, err := parseReturns(getEnv("BENCHMARK_SYNTHETIC_RETURNS", ""))
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to parse BENCHMARK_SYNTHETIC_RETURNS: %w", err))
	}
	cfg.BenchmarkSyntheticReturns = syntheticReturns

	if cfg.PriceProvider != PriceProvider_Yahoo && cfg.PriceProvider != PriceProvider_Alpaca {
		errs = append(errs, fmt.Errorf("unknown PRICE_PROVIDER %q", cfg.PriceProvider))
	}
	if cfg.PriceBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("PRICE_BATCH_SIZE must be positive"))
	}
	if cfg.PriceFetchWorkers <= 0 {
		errs = append(errs, fmt.Errorf("PRICE_FETCH_WORKERS must be positive"))
	}
	if cfg.PriceFetchAttempts <= 0 {
		errs = append(errs, fmt.Errorf("PRICE_FETCH_ATTEMPTS must be positive"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return out, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseReturns reads "SPY=10,VT=9.5" into a symbol to annual % map
func parseReturns(s string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		symbol, value, ok := strings.Cut(part, "=")
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if !ok || symbol == "" {
			return nil, fmt.Errorf("expected SYMBOL=PCT, got %q", part)
		}
		r, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid return for %s: %w", symbol, err)
		}
		out[symbol] = r
	}
	return out, nil
}
