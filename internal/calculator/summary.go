package calculator

import (
	"sort"
	"time"

	"picktracker/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

const unknownSector = "Unknown"

type PerformanceSummary struct {
	NumPositions     int
	AvgReturn        *decimal.Decimal
	AvgAnnualized    *decimal.Decimal
	EarliestEntry    *time.Time
	PositiveRatioPct decimal.Decimal
}

// Summarize averages the position returns. Averages are nil when there
// are no positions.
func Summarize(performances []domain.PositionPerformance) PerformanceSummary {
	out := PerformanceSummary{
		NumPositions:     len(performances),
		PositiveRatioPct: decimal.Zero,
	}
	if len(performances) == 0 {
		return out
	}

	totalReturn := decimal.Zero
	totalAnnualized := decimal.Zero
	positive := 0
	for _, p := range performances {
		totalReturn = totalReturn.Add(p.ReturnPct)
		totalAnnualized = totalAnnualized.Add(p.AnnualizedReturnPct)
		if p.ReturnPct.IsPositive() {
			positive++
		}
		entry := p.Position.EntryDate()
		if out.EarliestEntry == nil || entry.Before(*out.EarliestEntry) {
			out.EarliestEntry = &entry
		}
	}

	n := decimal.NewFromInt(int64(len(performances)))
	avgReturn := totalReturn.Div(n)
	avgAnnualized := totalAnnualized.Div(n)
	out.AvgReturn = &avgReturn
	out.AvgAnnualized = &avgAnnualized
	out.PositiveRatioPct = decimal.NewFromInt(int64(positive)).Div(n).Mul(hundred)

	return out
}

// topRanked is how many entries each leaderboard keeps
const topRanked = 5

// SectorBreakdown groups returns by sector. Risk is the population
// standard deviation of the sector's returns.
func SectorBreakdown(performances []domain.PositionPerformance) (domain.SectorBreakdown, error) {
	returnsBySector := map[string][]float64{}
	for _, p := range performances {
		sector := unknownSector
		if p.Position.Sector != nil && *p.Position.Sector != "" {
			sector = *p.Position.Sector
		}
		returnsBySector[sector] = append(returnsBySector[sector], p.ReturnPct.InexactFloat64())
	}

	sectors := []domain.SectorStats{}
	for sector, returns := range returnsBySector {
		mean, err := stats.Mean(returns)
		if err != nil {
			return domain.SectorBreakdown{}, err
		}
		risk, err := stats.StandardDeviationPopulation(returns)
		if err != nil {
			return domain.SectorBreakdown{}, err
		}
		minReturn, err := stats.Min(returns)
		if err != nil {
			return domain.SectorBreakdown{}, err
		}
		maxReturn, err := stats.Max(returns)
		if err != nil {
			return domain.SectorBreakdown{}, err
		}
		positive := 0
		for _, r := range returns {
			if r > 0 {
				positive++
			}
		}

		sectors = append(sectors, domain.SectorStats{
			Sector:        sector,
			Count:         len(returns),
			AvgReturn:     round2(mean),
			PositiveRatio: round2(float64(positive) / float64(len(returns)) * 100),
			Risk:          round2(risk),
			MinReturn:     round2(minReturn),
			MaxReturn:     round2(maxReturn),
		})
	}
	sort.Slice(sectors, func(i, j int) bool {
		return sectors[i].Sector < sectors[j].Sector
	})

	return domain.SectorBreakdown{
		Sectors:     sectors,
		TopByReturn: topBy(sectors, func(s domain.SectorStats) float64 { return s.AvgReturn }),
		TopByRisk:   topBy(sectors, func(s domain.SectorStats) float64 { return s.Risk }),
	}, nil
}

// minWinRatePositions is the fewest scored picks an analyst needs to
// appear on the win rate board
const minWinRatePositions = 3

type analystTally struct {
	analyst  domain.Analyst
	approved int
	total    int
	returns  []float64
}

// AnalystRankings builds the club wide leaderboards. Counts cover every
// pick an analyst is credited on. Returns cover only their On Watchlist
// picks analysed on or before asOf that have a performance.
func AnalystRankings(positions []domain.Position, performances map[string]domain.PositionPerformance, asOf time.Time) (domain.AnalystRankings, error) {
	tallies := map[string]*analystTally{}
	ids := []string{}
	for _, p := range positions {
		for _, a := range p.Analysts {
			t, ok := tallies[a.AnalystID]
			if !ok {
				t = &analystTally{analyst: a}
				tallies[a.AnalystID] = t
				ids = append(ids, a.AnalystID)
			}
			t.total++
			if p.Status != domain.PositionStatus_OnWatchlist {
				continue
			}
			t.approved++
			perf, ok := performances[p.PositionID]
			if ok && !p.AnalysisDate.After(asOf) {
				t.returns = append(t.returns, perf.ReturnPct.InexactFloat64())
			}
		}
	}
	sort.Strings(ids)

	approvedCounts := []domain.AnalystCount{}
	totalCounts := []domain.AnalystCount{}
	scored := []domain.AnalystPerformance{}
	for _, id := range ids {
		t := tallies[id]
		approvedCounts = append(approvedCounts, domain.AnalystCount{AnalystID: id, AnalystName: t.analyst.Name, Count: t.approved})
		totalCounts = append(totalCounts, domain.AnalystCount{AnalystID: id, AnalystName: t.analyst.Name, Count: t.total})
		if len(t.returns) == 0 {
			continue
		}

		perf, err := analystPerformance(t)
		if err != nil {
			return domain.AnalystRankings{}, err
		}
		scored = append(scored, perf)
	}

	winRates := []domain.AnalystPerformance{}
	for _, p := range scored {
		if p.NumPositions >= minWinRatePositions {
			winRates = append(winRates, p)
		}
	}

	count := func(c domain.AnalystCount) float64 { return float64(c.Count) }
	return domain.AnalystRankings{
		TopBoardApproved: topBy(approvedCounts, count),
		TopTotal:         topBy(totalCounts, count),
		TopWinRate:       topBy(winRates, func(p domain.AnalystPerformance) float64 { return p.WinRate }),
		TopPerformance:   topBy(scored, func(p domain.AnalystPerformance) float64 { return p.AvgReturn }),
	}, nil
}

func analystPerformance(t *analystTally) (domain.AnalystPerformance, error) {
	mean, err := stats.Mean(t.returns)
	if err != nil {
		return domain.AnalystPerformance{}, err
	}
	median, err := stats.Median(t.returns)
	if err != nil {
		return domain.AnalystPerformance{}, err
	}
	best, err := stats.Max(t.returns)
	if err != nil {
		return domain.AnalystPerformance{}, err
	}
	worst, err := stats.Min(t.returns)
	if err != nil {
		return domain.AnalystPerformance{}, err
	}
	wins := 0
	for _, r := range t.returns {
		if r > 0 {
			wins++
		}
	}

	return domain.AnalystPerformance{
		AnalystID:    t.analyst.AnalystID,
		AnalystName:  t.analyst.Name,
		NumPositions: len(t.returns),
		AvgReturn:    round2(mean),
		MedianReturn: round2(median),
		WinRate:      round2(float64(wins) / float64(len(t.returns)) * 100),
		BestReturn:   round2(best),
		WorstReturn:  round2(worst),
	}, nil
}

// topBy keeps the highest topRanked items by metric. Ties keep their
// input order.
func topBy[T any](items []T, metric func(T) float64) []T {
	out := append([]T{}, items...)
	sort.SliceStable(out, func(i, j int) bool {
		return metric(out[i]) > metric(out[j])
	})
	if len(out) > topRanked {
		out = out[:topRanked]
	}
	return out
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
