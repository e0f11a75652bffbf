package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/db/models/postgres/public/table"
	"picktracker/internal/domain"
	"picktracker/internal/util"

	"github.com/go-jet/jet/v2/postgres"
)

type PerformanceRecordRepository interface {
	Upsert(ctx context.Context, tx *sql.Tx, performances []domain.PositionPerformance) error
	ListOnDate(ctx context.Context, calculationDate time.Time) ([]model.PerformanceRecord, error)
}

type performanceRecordRepositoryHandler struct {
	Db *sql.DB
}

func NewPerformanceRecordRepository(db *sql.DB) PerformanceRecordRepository {
	return performanceRecordRepositoryHandler{Db: db}
}

// Upsert writes one record per (position, calculation date), replacing
// any earlier record for the same day
func (h performanceRecordRepositoryHandler) Upsert(ctx context.Context, tx *sql.Tx, performances []domain.PositionPerformance) error {
	if len(performances) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := []model.PerformanceRecord{}
	for _, p := range performances {
		models = append(models, model.PerformanceRecord{
			PositionID:          p.Position.PositionID,
			CalculationDate:     util.DateOnly(p.CalculationDate),
			PriceAtEntry:        p.PriceAtEntry,
			PriceCurrent:        p.PriceCurrent,
			ReturnPct:           p.ReturnPct,
			AnnualizedReturnPct: p.AnnualizedReturnPct,
			CalculatedAt:        now,
		})
	}

	query := table.PerformanceRecord.
		INSERT(table.PerformanceRecord.MutableColumns).
		MODELS(models).
		ON_CONFLICT(table.PerformanceRecord.PositionID, table.PerformanceRecord.CalculationDate).
		DO_UPDATE(
			postgres.SET(
				table.PerformanceRecord.PriceAtEntry.SET(table.PerformanceRecord.EXCLUDED.PriceAtEntry),
				table.PerformanceRecord.PriceCurrent.SET(table.PerformanceRecord.EXCLUDED.PriceCurrent),
				table.PerformanceRecord.ReturnPct.SET(table.PerformanceRecord.EXCLUDED.ReturnPct),
				table.PerformanceRecord.AnnualizedReturnPct.SET(table.PerformanceRecord.EXCLUDED.AnnualizedReturnPct),
				table.PerformanceRecord.CalculatedAt.SET(table.PerformanceRecord.EXCLUDED.CalculatedAt),
			),
		)

	_, err := query.ExecContext(ctx, dbOrTx(h.Db, tx))
	if err != nil {
		return fmt.Errorf("failed to upsert performance records: %w", err)
	}

	return nil
}

func (h performanceRecordRepositoryHandler) ListOnDate(ctx context.Context, calculationDate time.Time) ([]model.PerformanceRecord, error) {
	query := table.PerformanceRecord.
		SELECT(table.PerformanceRecord.AllColumns).
		WHERE(table.PerformanceRecord.CalculationDate.EQ(postgres.DateT(util.DateOnly(calculationDate)))).
		ORDER_BY(table.PerformanceRecord.PositionID.ASC())

	out := []model.PerformanceRecord{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to list performance records on %s: %w", util.FormatDate(calculationDate), err)
	}

	return out, nil
}
