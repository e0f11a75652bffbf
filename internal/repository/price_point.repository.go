package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"picktracker/internal/db/models/postgres/public/model"
	. "picktracker/internal/db/models/postgres/public/table"
	"picktracker/internal/domain"
	"picktracker/internal/util"

	. "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// queryable is satisfied by both *sql.DB and *sql.Tx
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func dbOrTx(db *sql.DB, tx *sql.Tx) queryable {
	if tx != nil {
		return tx
	}
	return db
}

const insertChunkSize = 1000

// PricePointRepository is the price store. Prices are only ever added
// or corrected, never deleted.
type PricePointRepository interface {
	Add(ctx context.Context, tx *sql.Tx, prices []domain.AssetPrice) error
	GetOnOrBefore(ctx context.Context, symbol string, date time.Time) (*domain.AssetPrice, error)
	List(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error)
	ListExistingDates(ctx context.Context, symbols []string, start, end time.Time) (map[string]map[string]bool, error)
}

type pricePointRepositoryHandler struct {
	Db *sql.DB
}

func NewPricePointRepository(db *sql.DB) PricePointRepository {
	return pricePointRepositoryHandler{Db: db}
}

func (h pricePointRepositoryHandler) Add(ctx context.Context, tx *sql.Tx, prices []domain.AssetPrice) error {
	now := time.Now().UTC()
	models := []model.PricePoint{}
	for _, p := range prices {
		models = append(models, model.PricePoint{
			Ticker:     p.Symbol,
			Date:       util.DateOnly(p.Date),
			ClosePrice: p.Price,
			Volume:     p.Volume,
			CreatedAt:  now,
		})
	}

	for start := 0; start < len(models); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(models) {
			end = len(models)
		}
		query := PricePoint.
			INSERT(PricePoint.AllColumns).
			MODELS(models[start:end]).
			ON_CONFLICT(
				PricePoint.Ticker, PricePoint.Date,
			).DO_UPDATE(
			SET(
				PricePoint.ClosePrice.SET(PricePoint.EXCLUDED.ClosePrice),
				PricePoint.Volume.SET(PricePoint.EXCLUDED.Volume),
			),
		)

		_, err := query.ExecContext(ctx, dbOrTx(h.Db, tx))
		if err != nil {
			return fmt.Errorf("failed to add price points to db: %w", err)
		}
	}

	return nil
}

func (h pricePointRepositoryHandler) GetOnOrBefore(ctx context.Context, symbol string, date time.Time) (*domain.AssetPrice, error) {
	query := PricePoint.
		SELECT(PricePoint.AllColumns).
		WHERE(
			AND(
				PricePoint.Ticker.EQ(String(symbol)),
				PricePoint.Date.LT_EQ(DateT(util.DateOnly(date))),
			),
		).
		ORDER_BY(PricePoint.Date.DESC()).
		LIMIT(1)

	result := model.PricePoint{}
	err := query.QueryContext(ctx, h.Db, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("no price for %s on or before %s: %w", symbol, util.FormatDate(date), domain.ErrPriceUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query price for %s on %s: %w", symbol, util.FormatDate(date), err)
	}

	out := pricePointToDomain(result)
	return &out, nil
}

// List returns prices per symbol, ascending by date
func (h pricePointRepositoryHandler) List(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	out := map[string][]domain.AssetPrice{}
	if len(symbols) == 0 {
		return out, nil
	}

	query := PricePoint.
		SELECT(PricePoint.AllColumns).
		WHERE(
			AND(
				PricePoint.Ticker.IN(symbolExpressions(symbols)...),
				PricePoint.Date.BETWEEN(DateT(util.DateOnly(start)), DateT(util.DateOnly(end))),
			),
		).
		ORDER_BY(PricePoint.Ticker.ASC(), PricePoint.Date.ASC())

	result := []model.PricePoint{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}

	for _, p := range result {
		out[p.Ticker] = append(out[p.Ticker], pricePointToDomain(p))
	}

	return out, nil
}

// ListExistingDates returns, per symbol, the set of stored dates
// formatted as YYYY-MM-DD
func (h pricePointRepositoryHandler) ListExistingDates(ctx context.Context, symbols []string, start, end time.Time) (map[string]map[string]bool, error) {
	out := map[string]map[string]bool{}
	if len(symbols) == 0 {
		return out, nil
	}

	query := PricePoint.
		SELECT(PricePoint.Ticker, PricePoint.Date).
		WHERE(
			AND(
				PricePoint.Ticker.IN(symbolExpressions(symbols)...),
				PricePoint.Date.BETWEEN(DateT(util.DateOnly(start)), DateT(util.DateOnly(end))),
			),
		)

	result := []model.PricePoint{}
	err := query.QueryContext(ctx, h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing price dates: %w", err)
	}

	for _, p := range result {
		if _, ok := out[p.Ticker]; !ok {
			out[p.Ticker] = map[string]bool{}
		}
		out[p.Ticker][util.FormatDate(p.Date)] = true
	}

	return out, nil
}

func symbolExpressions(symbols []string) []Expression {
	out := []Expression{}
	for _, s := range symbols {
		out = append(out, String(s))
	}
	return out
}

func pricePointToDomain(p model.PricePoint) domain.AssetPrice {
	return domain.AssetPrice{
		Symbol: p.Ticker,
		Date:   util.DateOnly(p.Date),
		Price:  p.ClosePrice,
		Volume: p.Volume,
	}
}
