package l1_service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/domain"
	"picktracker/internal/logger"
	"picktracker/internal/repository"
	"picktracker/internal/util"

	"github.com/gocarina/gocsv"
)

type PositionImportService interface {
	// Import upserts positions, and votes when a votes file is given, in
	// one transaction. A row with a purchase date also records a purchase.
	Import(ctx context.Context, positions io.Reader, votes io.Reader) (*PositionImportResult, error)
}

type PositionImportResult struct {
	Positions int
	Analysts  int
	Votes     int
	Purchases int
}

// ParsedPositions is everything a positions csv describes
type ParsedPositions struct {
	Positions []model.AnalysisPosition
	Purchases []model.PortfolioPurchase
	Analysts  []model.PositionAnalyst
}

type positionCsvRow struct {
	PositionID   string `csv:"position_id"`
	CompanyName  string `csv:"company_name"`
	Ticker       string `csv:"ticker"`
	Sector       string `csv:"sector"`
	Status       string `csv:"status"`
	AnalysisDate string `csv:"analysis_date"`
	PurchaseDate string `csv:"purchase_date"`
	IsOtherEvent bool   `csv:"is_other_event"`
	// Analysts is an optional semicolon separated list of names
	Analysts string `csv:"analysts"`
}

type voteCsvRow struct {
	PositionID string `csv:"position_id"`
	VoterID    string `csv:"voter_id"`
	Approve    bool   `csv:"approve"`
}

type positionImportServiceHandler struct {
	Db                 *sql.DB
	PositionRepository repository.PositionRepository
}

func NewPositionImportService(db *sql.DB, positionRepository repository.PositionRepository) PositionImportService {
	return positionImportServiceHandler{
		Db:                 db,
		PositionRepository: positionRepository,
	}
}

func (h positionImportServiceHandler) Import(ctx context.Context, positions io.Reader, votes io.Reader) (*PositionImportResult, error) {
	log := logger.FromContext(ctx)

	parsed, err := ParsePositionsCsv(positions)
	if err != nil {
		return nil, err
	}
	voteModels := []model.PositionVote{}
	if votes != nil {
		voteModels, err = ParseVotesCsv(votes)
		if err != nil {
			return nil, err
		}
	}

	tx, err := h.Db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if err := h.PositionRepository.Upsert(ctx, tx, parsed.Positions); err != nil {
		return nil, err
	}
	if err := h.PositionRepository.UpsertAnalysts(ctx, tx, parsed.Analysts); err != nil {
		return nil, err
	}
	if err := h.PositionRepository.UpsertVotes(ctx, tx, voteModels); err != nil {
		return nil, err
	}
	if err := h.PositionRepository.UpsertPurchases(ctx, tx, parsed.Purchases); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	out := &PositionImportResult{
		Positions: len(parsed.Positions),
		Analysts:  len(parsed.Analysts),
		Votes:     len(voteModels),
		Purchases: len(parsed.Purchases),
	}
	log.Infof("imported %d positions, %d analyst credits, %d votes, %d purchases", out.Positions, out.Analysts, out.Votes, out.Purchases)

	return out, nil
}

func ParsePositionsCsv(r io.Reader) (*ParsedPositions, error) {
	rows := []positionCsvRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse positions csv: %w", err)
	}

	out := &ParsedPositions{
		Positions: []model.AnalysisPosition{},
		Purchases: []model.PortfolioPurchase{},
		Analysts:  []model.PositionAnalyst{},
	}
	for i, row := range rows {
		line := i + 2
		id := strings.TrimSpace(row.PositionID)
		if id == "" {
			return nil, fmt.Errorf("positions csv line %d: missing position_id", line)
		}
		analysisDate, err := util.ParseDate(strings.TrimSpace(row.AnalysisDate))
		if err != nil {
			return nil, fmt.Errorf("positions csv line %d: invalid analysis_date %q: %w", line, row.AnalysisDate, err)
		}

		p := model.AnalysisPosition{
			PositionID:   id,
			CompanyName:  strings.TrimSpace(row.CompanyName),
			Status:       string(normalizeStatus(row.Status)),
			AnalysisDate: analysisDate,
			IsOtherEvent: row.IsOtherEvent,
		}
		if ticker := strings.ToUpper(strings.TrimSpace(row.Ticker)); ticker != "" {
			p.Ticker = &ticker
		}
		if sector := strings.TrimSpace(row.Sector); sector != "" {
			p.Sector = &sector
		}
		if s := strings.TrimSpace(row.PurchaseDate); s != "" {
			purchaseDate, err := util.ParseDate(s)
			if err != nil {
				return nil, fmt.Errorf("positions csv line %d: invalid purchase_date %q: %w", line, row.PurchaseDate, err)
			}
			p.PurchaseDate = &purchaseDate
			out.Purchases = append(out.Purchases, model.PortfolioPurchase{
				PositionID:  id,
				PurchasedAt: purchaseDate,
			})
		}
		out.Positions = append(out.Positions, p)
		out.Analysts = append(out.Analysts, parseAnalysts(id, row.Analysts)...)
	}

	return out, nil
}

// parseAnalysts splits "Alice Smith; Bob" into credits keyed by a
// lowercased, dashed form of each name
func parseAnalysts(positionID, s string) []model.PositionAnalyst {
	out := []model.PositionAnalyst{}
	seen := map[string]bool{}
	for _, name := range strings.Split(s, ";") {
		name = strings.Join(strings.Fields(name), " ")
		if name == "" {
			continue
		}
		analystID := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		if seen[analystID] {
			continue
		}
		seen[analystID] = true
		out = append(out, model.PositionAnalyst{
			PositionID:  positionID,
			AnalystID:   analystID,
			AnalystName: name,
		})
	}
	return out
}

func ParseVotesCsv(r io.Reader) ([]model.PositionVote, error) {
	rows := []voteCsvRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse votes csv: %w", err)
	}

	out := []model.PositionVote{}
	for i, row := range rows {
		if strings.TrimSpace(row.PositionID) == "" || strings.TrimSpace(row.VoterID) == "" {
			return nil, fmt.Errorf("votes csv line %d: position_id and voter_id are required", i+2)
		}
		out = append(out, model.PositionVote{
			PositionID: strings.TrimSpace(row.PositionID),
			VoterID:    strings.TrimSpace(row.VoterID),
			Approve:    row.Approve,
		})
	}
	return out, nil
}

// normalizeStatus matches the known statuses case-insensitively and
// keeps anything else verbatim
func normalizeStatus(s string) domain.PositionStatus {
	s = strings.TrimSpace(s)
	for _, status := range []domain.PositionStatus{
		domain.PositionStatus_OnWatchlist,
		domain.PositionStatus_Neutral,
		domain.PositionStatus_Refused,
	} {
		if strings.EqualFold(s, string(status)) {
			return status
		}
	}
	return domain.PositionStatus(s)
}
