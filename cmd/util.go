package cmd

import (
	"database/sql"
	"fmt"

	"picktracker/api"
	"picktracker/internal/calculator"
	"picktracker/internal/config"
	"picktracker/internal/repository"
	l1_service "picktracker/internal/service/l1"
	l2_service "picktracker/internal/service/l2"
	l3_service "picktracker/internal/service/l3"

	_ "github.com/lib/pq"
)

// Dependencies is everything the entrypoints share
type Dependencies struct {
	Config                *config.Config
	Db                    *sql.DB
	ApiHandler            *api.ApiHandler
	RecalculationService  l3_service.RecalculationService
	ViewReaderService     l3_service.ViewReaderService
	PositionImportService l1_service.PositionImportService
}

func CloseDependencies(deps *Dependencies) error {
	if err := deps.Db.Close(); err != nil {
		return fmt.Errorf("failed to close db: %w", err)
	}
	return nil
}

func newPriceClient(cfg *config.Config) repository.PriceClient {
	var client repository.PriceClient
	switch cfg.PriceProvider {
	case config.PriceProvider_Alpaca:
		client = repository.NewAlpacaPriceClient(
			cfg.Secrets.Alpaca.ApiKey,
			cfg.Secrets.Alpaca.ApiSecret,
			cfg.Secrets.Alpaca.Endpoint,
		)
	default:
		client = repository.NewYahooPriceClient()
	}
	return repository.NewRetryingPriceClient(client, cfg.PriceFetchAttempts, cfg.PriceFetchTimeout)
}

func InitializeDependencies() (*Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConn, err := sql.Open("postgres", cfg.Secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	pricePointRepository := repository.NewPricePointRepository(dbConn)
	positionRepository := repository.NewPositionRepository(dbConn)
	performanceRecordRepository := repository.NewPerformanceRecordRepository(dbConn)
	viewCacheRepository := repository.NewViewCacheRepository(dbConn)
	recalculationRunRepository := repository.NewRecalculationRunRepository(dbConn)
	recalculationLockRepository := repository.NewRecalculationLockRepository(dbConn)

	priceService := l1_service.NewPriceService(
		pricePointRepository,
		newPriceClient(cfg),
		l1_service.PriceServiceConfig{
			BatchSize:  cfg.PriceBatchSize,
			Workers:    cfg.PriceFetchWorkers,
			BatchDelay: cfg.PriceBatchDelay,
		},
	)
	viewCacheService := l1_service.NewViewCacheService(
		cfg.ViewCacheMaxAge,
		l1_service.NewPostgresViewCacheBackend(viewCacheRepository),
		l1_service.NewFileViewCacheBackend(cfg.ViewCacheDir),
	)
	benchmarkBuilder := calculator.NewBenchmarkSeriesBuilder().WithSyntheticReturns(cfg.BenchmarkSyntheticReturns)

	recalculationService := l3_service.NewRecalculationService(
		positionRepository,
		recalculationRunRepository,
		recalculationLockRepository,
		priceService,
		viewCacheService,
		l2_service.NewPerformanceService(performanceRecordRepository),
		l2_service.NewViewService(benchmarkBuilder),
		cfg.BenchmarkTickers,
	)
	viewReaderService := l3_service.NewViewReaderService(viewCacheService, recalculationService)

	apiHandler := &api.ApiHandler{
		ViewReaderService:    viewReaderService,
		RecalculationService: recalculationService,
		BenchmarkService:     l2_service.NewBenchmarkService(priceService, benchmarkBuilder),
	}

	return &Dependencies{
		Config:                cfg,
		Db:                    dbConn,
		ApiHandler:            apiHandler,
		RecalculationService:  recalculationService,
		ViewReaderService:     viewReaderService,
		PositionImportService: l1_service.NewPositionImportService(dbConn, positionRepository),
	}, nil
}
