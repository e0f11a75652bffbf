package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type RecalculationRunRepository interface {
	Add(ctx context.Context, rr model.RecalculationRun) (*model.RecalculationRun, error)
	Update(ctx context.Context, rr *model.RecalculationRun, columns postgres.ColumnList) (*model.RecalculationRun, error)
	// GetLatest returns nil when no run with the status exists
	GetLatest(ctx context.Context, status model.RecalculationRunStatus) (*model.RecalculationRun, error)
}

type recalculationRunRepositoryHandler struct {
	Db *sql.DB
}

func NewRecalculationRunRepository(db *sql.DB) RecalculationRunRepository {
	return recalculationRunRepositoryHandler{Db: db}
}

func (h recalculationRunRepositoryHandler) Add(ctx context.Context, rr model.RecalculationRun) (*model.RecalculationRun, error) {
	query := table.RecalculationRun.
		INSERT(
			table.RecalculationRun.MutableColumns,
		).
		MODEL(rr).
		RETURNING(table.RecalculationRun.AllColumns)

	out := model.RecalculationRun{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recalculation run: %w", err)
	}

	return &out, nil
}

func (h recalculationRunRepositoryHandler) Update(ctx context.Context, rr *model.RecalculationRun, columns postgres.ColumnList) (*model.RecalculationRun, error) {
	if rr.RecalculationRunID == uuid.Nil {
		return nil, fmt.Errorf("failed to update recalculation run - id not provided in inputted model")
	}
	query := table.RecalculationRun.
		UPDATE(columns).
		MODEL(rr).
		WHERE(table.RecalculationRun.RecalculationRunID.EQ(
			postgres.UUID(rr.RecalculationRunID),
		)).
		RETURNING(table.RecalculationRun.AllColumns)

	out := model.RecalculationRun{}
	err := query.QueryContext(ctx, h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to update recalculation run %s: %w", rr.RecalculationRunID.String(), err)
	}

	return &out, nil
}

func (h recalculationRunRepositoryHandler) GetLatest(ctx context.Context, status model.RecalculationRunStatus) (*model.RecalculationRun, error) {
	query := table.RecalculationRun.
		SELECT(table.RecalculationRun.AllColumns).
		WHERE(table.RecalculationRun.Status.EQ(postgres.String(status.String()))).
		ORDER_BY(table.RecalculationRun.StartedAt.DESC()).
		LIMIT(1)

	out := model.RecalculationRun{}
	err := query.QueryContext(ctx, h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest %s recalculation run: %w", status, err)
	}

	return &out, nil
}
