package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PositionStatus string

const (
	PositionStatus_OnWatchlist PositionStatus = "On Watchlist"
	PositionStatus_Neutral     PositionStatus = "Neutral"
	PositionStatus_Refused     PositionStatus = "Refused"
)

// StockStatuses are the analysis outcomes that describe an actual stock
// pick. Anything else (events, presentations) is ignored by the engine.
var StockStatuses = []PositionStatus{
	PositionStatus_OnWatchlist,
	PositionStatus_Neutral,
	PositionStatus_Refused,
}

func (s PositionStatus) IsStock() bool {
	for _, st := range StockStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Analyst is a club member credited with a pick
type Analyst struct {
	AnalystID string
	Name      string
}

// Position is a single stock pick as recorded by the club
type Position struct {
	PositionID   string
	CompanyName  string
	Ticker       *string
	Sector       *string
	Status       PositionStatus
	AnalysisDate time.Time
	PurchaseDate *time.Time
	IsOtherEvent bool
	Analysts     []Analyst
}

// EntryDate is the purchase date when the pick was bought, otherwise
// the date it was analysed
func (p Position) EntryDate() time.Time {
	if p.PurchaseDate != nil {
		return *p.PurchaseDate
	}
	return p.AnalysisDate
}

func (p Position) Symbol() string {
	if p.Ticker == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(*p.Ticker))
}

func (p Position) IsEligible() bool {
	return p.Status.IsStock() && !p.IsOtherEvent && p.Symbol() != ""
}

type VoteTally struct {
	Yes int
	No  int
}

func (v VoteTally) IsApproved() bool {
	return v.Yes > v.No
}

// PositionSnapshot is a consistent read of everything the recalculation
// needs from the position source
type PositionSnapshot struct {
	Positions []Position
	Votes     map[string]VoteTally
	Purchased map[string]bool
	LoadedAt  time.Time
}

// PositionPerformance is the in-memory form of a performance record,
// joined with the position it describes
type PositionPerformance struct {
	Position            Position
	CalculationDate     time.Time
	PriceAtEntry        decimal.Decimal
	PriceCurrent        decimal.Decimal
	ReturnPct           decimal.Decimal
	AnnualizedReturnPct decimal.Decimal
}

// UnifiedDataset is the frozen result of one recalculation pass. Every
// view is derived from it.
type UnifiedDataset struct {
	CalculationDate time.Time
	// Positions is every eligible pick in the snapshot, priced or not
	Positions       []Position
	Performances    map[string]PositionPerformance
	ByStatus        map[PositionStatus][]string
	BoardApproved   []string
	Purchased       []string
}

func NewUnifiedDataset(calculationDate time.Time, snapshot PositionSnapshot, performances []PositionPerformance) UnifiedDataset {
	sort.SliceStable(performances, func(i, j int) bool {
		ei, ej := performances[i].Position.EntryDate(), performances[j].Position.EntryDate()
		if ei.Equal(ej) {
			return performances[i].Position.PositionID < performances[j].Position.PositionID
		}
		return ei.Before(ej)
	})

	out := UnifiedDataset{
		CalculationDate: calculationDate,
		Positions:       append([]Position{}, snapshot.Positions...),
		Performances:    map[string]PositionPerformance{},
		ByStatus:        map[PositionStatus][]string{},
		BoardApproved:   []string{},
		Purchased:       []string{},
	}
	for _, p := range performances {
		id := p.Position.PositionID
		out.Performances[id] = p
		out.ByStatus[p.Position.Status] = append(out.ByStatus[p.Position.Status], id)
		if snapshot.Votes[id].IsApproved() {
			out.BoardApproved = append(out.BoardApproved, id)
		}
		if snapshot.Purchased[id] {
			out.Purchased = append(out.Purchased, id)
		}
	}

	return out
}

// PositionIDs returns the ids in a filter, ordered by entry date
func (d UnifiedDataset) PositionIDs(filter FilterCategory) []string {
	var ids []string
	switch filter {
	case FilterCategory_Purchased:
		ids = append(ids, d.Purchased...)
	case FilterCategory_BoardApproved:
		ids = append(ids, d.BoardApproved...)
	case FilterCategory_AllApproved:
		ids = append(ids, d.ByStatus[PositionStatus_OnWatchlist]...)
	case FilterCategory_ApprovedNeutral:
		ids = append(ids, d.ByStatus[PositionStatus_OnWatchlist]...)
		ids = append(ids, d.ByStatus[PositionStatus_Neutral]...)
	case FilterCategory_All:
		for _, status := range StockStatuses {
			ids = append(ids, d.ByStatus[status]...)
		}
	}

	sort.SliceStable(ids, func(i, j int) bool {
		ei := d.Performances[ids[i]].Position.EntryDate()
		ej := d.Performances[ids[j]].Position.EntryDate()
		if ei.Equal(ej) {
			return ids[i] < ids[j]
		}
		return ei.Before(ej)
	})
	if ids == nil {
		ids = []string{}
	}
	return ids
}
