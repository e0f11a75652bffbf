package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"picktracker/internal/db/models/postgres/public/model"
	. "picktracker/internal/db/models/postgres/public/table"
	"picktracker/internal/domain"

	. "github.com/go-jet/jet/v2/postgres"
)

// PositionRepository reads the club's picks, votes and purchases. The
// recalculation only reads; the import command is the only writer here.
type PositionRepository interface {
	LoadSnapshot(ctx context.Context) (*domain.PositionSnapshot, error)
	Upsert(ctx context.Context, tx *sql.Tx, positions []model.AnalysisPosition) error
	UpsertVotes(ctx context.Context, tx *sql.Tx, votes []model.PositionVote) error
	UpsertPurchases(ctx context.Context, tx *sql.Tx, purchases []model.PortfolioPurchase) error
	UpsertAnalysts(ctx context.Context, tx *sql.Tx, analysts []model.PositionAnalyst) error
}

type positionRepositoryHandler struct {
	Db *sql.DB
}

func NewPositionRepository(db *sql.DB) PositionRepository {
	return positionRepositoryHandler{Db: db}
}

// LoadSnapshot reads positions, analysts, votes and purchases inside a single
// repeatable-read transaction so they agree with each other
func (h positionRepositoryHandler) LoadSnapshot(ctx context.Context) (*domain.PositionSnapshot, error) {
	tx, err := h.Db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	statuses := []Expression{}
	for _, s := range domain.StockStatuses {
		statuses = append(statuses, String(string(s)))
	}
	positionsQuery := AnalysisPosition.
		SELECT(AnalysisPosition.AllColumns).
		WHERE(
			AND(
				AnalysisPosition.Status.IN(statuses...),
				AnalysisPosition.IsOtherEvent.IS_FALSE(),
				AnalysisPosition.Ticker.IS_NOT_NULL(),
			),
		).
		ORDER_BY(AnalysisPosition.AnalysisDate.ASC(), AnalysisPosition.PositionID.ASC())

	positionModels := []model.AnalysisPosition{}
	err = positionsQuery.QueryContext(ctx, tx, &positionModels)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	analysts := []model.PositionAnalyst{}
	err = PositionAnalyst.
		SELECT(PositionAnalyst.AllColumns).
		ORDER_BY(PositionAnalyst.PositionID.ASC(), PositionAnalyst.AnalystID.ASC()).
		QueryContext(ctx, tx, &analysts)
	if err != nil {
		return nil, fmt.Errorf("failed to list position analysts: %w", err)
	}
	analystsByPosition := map[string][]domain.Analyst{}
	for _, a := range analysts {
		analystsByPosition[a.PositionID] = append(analystsByPosition[a.PositionID], domain.Analyst{
			AnalystID: a.AnalystID,
			Name:      a.AnalystName,
		})
	}

	votes := []model.PositionVote{}
	err = PositionVote.
		SELECT(PositionVote.AllColumns).
		QueryContext(ctx, tx, &votes)
	if err != nil {
		return nil, fmt.Errorf("failed to list position votes: %w", err)
	}

	purchases := []model.PortfolioPurchase{}
	err = PortfolioPurchase.
		SELECT(PortfolioPurchase.AllColumns).
		QueryContext(ctx, tx, &purchases)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio purchases: %w", err)
	}

	snapshot := &domain.PositionSnapshot{
		Positions: []domain.Position{},
		Votes:     map[string]domain.VoteTally{},
		Purchased: map[string]bool{},
		LoadedAt:  time.Now().UTC(),
	}
	for _, p := range positionModels {
		position := analysisPositionToDomain(p)
		position.Analysts = analystsByPosition[p.PositionID]
		if position.IsEligible() {
			snapshot.Positions = append(snapshot.Positions, position)
		}
	}
	for _, v := range votes {
		tally := snapshot.Votes[v.PositionID]
		if v.Approve {
			tally.Yes++
		} else {
			tally.No++
		}
		snapshot.Votes[v.PositionID] = tally
	}
	for _, p := range purchases {
		snapshot.Purchased[p.PositionID] = true
	}

	return snapshot, nil
}

func (h positionRepositoryHandler) Upsert(ctx context.Context, tx *sql.Tx, positions []model.AnalysisPosition) error {
	if len(positions) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range positions {
		positions[i].CreatedAt = now
		positions[i].ModifiedAt = now
	}

	query := AnalysisPosition.
		INSERT(AnalysisPosition.AllColumns).
		MODELS(positions).
		ON_CONFLICT(AnalysisPosition.PositionID).
		DO_UPDATE(
			SET(
				AnalysisPosition.CompanyName.SET(AnalysisPosition.EXCLUDED.CompanyName),
				AnalysisPosition.Ticker.SET(AnalysisPosition.EXCLUDED.Ticker),
				AnalysisPosition.Sector.SET(AnalysisPosition.EXCLUDED.Sector),
				AnalysisPosition.Status.SET(AnalysisPosition.EXCLUDED.Status),
				AnalysisPosition.AnalysisDate.SET(AnalysisPosition.EXCLUDED.AnalysisDate),
				AnalysisPosition.PurchaseDate.SET(AnalysisPosition.EXCLUDED.PurchaseDate),
				AnalysisPosition.IsOtherEvent.SET(AnalysisPosition.EXCLUDED.IsOtherEvent),
				AnalysisPosition.ModifiedAt.SET(AnalysisPosition.EXCLUDED.ModifiedAt),
			),
		)

	_, err := query.ExecContext(ctx, dbOrTx(h.Db, tx))
	if err != nil {
		return fmt.Errorf("failed to upsert positions: %w", err)
	}
	return nil
}

func (h positionRepositoryHandler) UpsertVotes(ctx context.Context, tx *sql.Tx, votes []model.PositionVote) error {
	if len(votes) == 0 {
		return nil
	}
	query := PositionVote.
		INSERT(PositionVote.AllColumns).
		MODELS(votes).
		ON_CONFLICT(PositionVote.PositionID, PositionVote.VoterID).
		DO_UPDATE(
			SET(
				PositionVote.Approve.SET(PositionVote.EXCLUDED.Approve),
			),
		)

	_, err := query.ExecContext(ctx, dbOrTx(h.Db, tx))
	if err != nil {
		return fmt.Errorf("failed to upsert position votes: %w", err)
	}
	return nil
}

func (h positionRepositoryHandler) UpsertPurchases(ctx context.Context, tx *sql.Tx, purchases []model.PortfolioPurchase) error {
	if len(purchases) == 0 {
		return nil
	}
	query := PortfolioPurchase.
		INSERT(PortfolioPurchase.AllColumns).
		MODELS(purchases).
		ON_CONFLICT(PortfolioPurchase.PositionID).
		DO_UPDATE(
			SET(
				PortfolioPurchase.PurchasedAt.SET(PortfolioPurchase.EXCLUDED.PurchasedAt),
			),
		)

	_, err := query.ExecContext(ctx, dbOrTx(h.Db, tx))
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio purchases: %w", err)
	}
	return nil
}

func (h positionRepositoryHandler) UpsertAnalysts(ctx context.Context, tx *sql.Tx, analysts []model.PositionAnalyst) error {
	if len(analysts) == 0 {
		return nil
	}
	query := PositionAnalyst.
		INSERT(PositionAnalyst.AllColumns).
		MODELS(analysts).
		ON_CONFLICT(PositionAnalyst.PositionID, PositionAnalyst.AnalystID).
		DO_UPDATE(
			SET(
				PositionAnalyst.AnalystName.SET(PositionAnalyst.EXCLUDED.AnalystName),
			),
		)

	_, err := query.ExecContext(ctx, dbOrTx(h.Db, tx))
	if err != nil {
		return fmt.Errorf("failed to upsert position analysts: %w", err)
	}
	return nil
}

func analysisPositionToDomain(p model.AnalysisPosition) domain.Position {
	return domain.Position{
		PositionID:   p.PositionID,
		CompanyName:  p.CompanyName,
		Ticker:       p.Ticker,
		Sector:       p.Sector,
		Status:       domain.PositionStatus(p.Status),
		AnalysisDate: p.AnalysisDate,
		PurchaseDate: p.PurchaseDate,
		IsOtherEvent: p.IsOtherEvent,
	}
}
