package domain

import (
	"fmt"
	"time"
)

type FilterCategory string

const (
	FilterCategory_Purchased       FilterCategory = "purchased"
	FilterCategory_BoardApproved   FilterCategory = "board_approved"
	FilterCategory_AllApproved     FilterCategory = "all_approved"
	FilterCategory_ApprovedNeutral FilterCategory = "approved_neutral"
	FilterCategory_All             FilterCategory = "all"
)

var FilterCategories = []FilterCategory{
	FilterCategory_Purchased,
	FilterCategory_BoardApproved,
	FilterCategory_AllApproved,
	FilterCategory_ApprovedNeutral,
	FilterCategory_All,
}

func ParseFilterCategory(s string) (FilterCategory, error) {
	for _, f := range FilterCategories {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter category %q", s)
}

type CalculationMethod string

const (
	CalculationMethod_Equal       CalculationMethod = "equal"
	CalculationMethod_Incremental CalculationMethod = "incremental"
)

var CalculationMethods = []CalculationMethod{
	CalculationMethod_Equal,
	CalculationMethod_Incremental,
}

func ParseCalculationMethod(s string) (CalculationMethod, error) {
	for _, m := range CalculationMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown calculation method %q", s)
}

type ViewKey struct {
	Filter FilterCategory    `json:"filter"`
	Method CalculationMethod `json:"method"`
}

func (k ViewKey) String() string {
	return fmt.Sprintf("%s_%s", k.Filter, k.Method)
}

// AllViewKeys is every filter/method combination the cache holds
func AllViewKeys() []ViewKey {
	out := []ViewKey{}
	for _, f := range FilterCategories {
		for _, m := range CalculationMethods {
			out = append(out, ViewKey{Filter: f, Method: m})
		}
	}
	return out
}

type PortfolioSummary struct {
	NumPositions     int                `json:"numPositions"`
	TotalReturn      *float64           `json:"totalReturn"`
	AnnualizedReturn *float64           `json:"annualizedReturn"`
	StartDate        *string            `json:"startDate"`
	BenchmarkReturns map[string]float64 `json:"benchmarkReturns"`
}

// SeriesView is a presentation-ready series. All value slices are
// aligned with Dates.
type SeriesView struct {
	Dates      []string             `json:"dates"`
	Portfolio  []float64            `json:"portfolio"`
	Benchmarks map[string][]float64 `json:"benchmarks"`
}

type SectorStats struct {
	Sector        string  `json:"sector"`
	Count         int     `json:"count"`
	AvgReturn     float64 `json:"avgReturn"`
	PositiveRatio float64 `json:"positiveRatio"`
	Risk          float64 `json:"risk"`
	MinReturn     float64 `json:"minReturn"`
	MaxReturn     float64 `json:"maxReturn"`
}

type SectorBreakdown struct {
	Sectors     []SectorStats `json:"sectors"`
	TopByReturn []SectorStats `json:"topByReturn"`
	TopByRisk   []SectorStats `json:"topByRisk"`
}

type AnalystCount struct {
	AnalystID   string `json:"analystID"`
	AnalystName string `json:"analystName"`
	Count       int    `json:"count"`
}

// AnalystPerformance aggregates the returns of an analyst's approved
// picks. Returns are percentages rounded to two places.
type AnalystPerformance struct {
	AnalystID    string  `json:"analystID"`
	AnalystName  string  `json:"analystName"`
	NumPositions int     `json:"numPositions"`
	AvgReturn    float64 `json:"avgReturn"`
	MedianReturn float64 `json:"medianReturn"`
	WinRate      float64 `json:"winRate"`
	BestReturn   float64 `json:"bestReturn"`
	WorstReturn  float64 `json:"worstReturn"`
}

// AnalystRankings are club wide and identical in every view
type AnalystRankings struct {
	TopBoardApproved []AnalystCount       `json:"topBoardApproved"`
	TopTotal         []AnalystCount       `json:"topTotal"`
	TopWinRate       []AnalystPerformance `json:"topWinRate"`
	TopPerformance   []AnalystPerformance `json:"topPerformance"`
}

// ViewResult is one precomputed view. It is always replaced as a whole.
type ViewResult struct {
	Key             ViewKey          `json:"key"`
	Summary         PortfolioSummary `json:"summary"`
	InceptionSeries *SeriesView      `json:"inceptionSeries"`
	OneYearSeries   *SeriesView      `json:"oneYearSeries"`
	SectorBreakdown SectorBreakdown  `json:"sectorBreakdown"`
	AnalystRankings AnalystRankings  `json:"analystRankings"`
	PositiveRatio   float64          `json:"positiveRatio"`
	TotalPositions  int              `json:"totalPositions"`
	PositionIDs     []string         `json:"positionIDs"`
	CachedAt        time.Time        `json:"cachedAt"`
	ExpiresAt       *time.Time       `json:"expiresAt"`
}

// IsFresh reports whether the view is younger than maxAge at now and
// has not passed its explicit expiry
func (r ViewResult) IsFresh(maxAge time.Duration, now time.Time) bool {
	if r.ExpiresAt != nil && !now.Before(*r.ExpiresAt) {
		return false
	}
	return now.Sub(r.CachedAt) < maxAge
}

// AgeDays is the view age rounded to a tenth of a day
func (r ViewResult) AgeDays(now time.Time) float64 {
	days := now.Sub(r.CachedAt).Hours() / 24
	return float64(int64(days*10+0.5)) / 10
}

type CacheEntryStatus struct {
	Key      ViewKey    `json:"key"`
	Cached   bool       `json:"cached"`
	CachedAt *time.Time `json:"cachedAt"`
	AgeDays  *float64   `json:"ageDays"`
	IsFresh  bool       `json:"isFresh"`
	Source   *string    `json:"source"`
}

type CacheStatus struct {
	Entries         []CacheEntryStatus `json:"entries"`
	AllFresh        bool               `json:"allFresh"`
	OldestCacheDays *float64           `json:"oldestCacheDays"`
}
