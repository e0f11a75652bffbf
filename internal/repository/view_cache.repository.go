package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/db/models/postgres/public/table"
	"picktracker/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// ViewCacheRepository stores serialized views, one row per view key
type ViewCacheRepository interface {
	Upsert(ctx context.Context, entry model.ViewCache) error
	Get(ctx context.Context, key domain.ViewKey) (*model.ViewCache, error)
	Delete(ctx context.Context, key *domain.ViewKey) error
}

type viewCacheRepositoryHandler struct {
	Db *sql.DB
}

func NewViewCacheRepository(db *sql.DB) ViewCacheRepository {
	return viewCacheRepositoryHandler{Db: db}
}

func (h viewCacheRepositoryHandler) Upsert(ctx context.Context, entry model.ViewCache) error {
	query := table.ViewCache.
		INSERT(table.ViewCache.AllColumns).
		MODEL(entry).
		ON_CONFLICT(table.ViewCache.FilterCategory, table.ViewCache.Method).
		DO_UPDATE(
			postgres.SET(
				table.ViewCache.Payload.SET(table.ViewCache.EXCLUDED.Payload),
				table.ViewCache.CachedAt.SET(table.ViewCache.EXCLUDED.CachedAt),
				table.ViewCache.ExpiresAt.SET(table.ViewCache.EXCLUDED.ExpiresAt),
			),
		)

	_, err := query.ExecContext(ctx, h.Db)
	if err != nil {
		return fmt.Errorf("failed to upsert view cache %s_%s: %w", entry.FilterCategory, entry.Method, err)
	}
	return nil
}

func (h viewCacheRepositoryHandler) Get(ctx context.Context, key domain.ViewKey) (*model.ViewCache, error) {
	query := table.ViewCache.
		SELECT(table.ViewCache.AllColumns).
		WHERE(
			postgres.AND(
				table.ViewCache.FilterCategory.EQ(postgres.String(string(key.Filter))),
				table.ViewCache.Method.EQ(postgres.String(string(key.Method))),
			),
		)

	out := model.ViewCache{}
	err := query.QueryContext(ctx, h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("no cached view %s: %w", key.String(), domain.ErrCacheMiss)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached view %s: %w", key.String(), err)
	}
	return &out, nil
}

// Delete removes one view, or every view when key is nil
func (h viewCacheRepositoryHandler) Delete(ctx context.Context, key *domain.ViewKey) error {
	var query postgres.DeleteStatement
	if key == nil {
		query = table.ViewCache.DELETE().WHERE(postgres.Bool(true))
	} else {
		query = table.ViewCache.DELETE().WHERE(
			postgres.AND(
				table.ViewCache.FilterCategory.EQ(postgres.String(string(key.Filter))),
				table.ViewCache.Method.EQ(postgres.String(string(key.Method))),
			),
		)
	}

	_, err := query.ExecContext(ctx, h.Db)
	if err != nil {
		return fmt.Errorf("failed to delete cached views: %w", err)
	}
	return nil
}
