package l2_service

import (
	"context"
	"testing"
	"time"

	"picktracker/internal/calculator"
	"picktracker/internal/domain"
	l1_service "picktracker/internal/service/l1"
	"picktracker/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func price(symbol string, date time.Time, p float64) domain.AssetPrice {
	return domain.AssetPrice{Symbol: symbol, Price: decimal.NewFromFloat(p), Date: date}
}

// twoPickFixture is AAPL picked 2023-01-01 and MSFT picked 2023-07-01,
// valued on 2024-01-01
func twoPickFixture() ([]domain.Position, *l1_service.PriceCache) {
	positions := []domain.Position{
		{
			PositionID:   "aapl-pick",
			CompanyName:  "Apple",
			Ticker:       util.StringPointer("AAPL"),
			Sector:       util.StringPointer("Technology"),
			Status:       domain.PositionStatus_OnWatchlist,
			AnalysisDate: util.NewDate(2023, 1, 1),
			Analysts:     []domain.Analyst{{AnalystID: "alice", Name: "Alice"}},
		},
		{
			PositionID:   "msft-pick",
			CompanyName:  "Microsoft",
			Ticker:       util.StringPointer("MSFT"),
			Sector:       util.StringPointer("Technology"),
			Status:       domain.PositionStatus_Neutral,
			AnalysisDate: util.NewDate(2023, 7, 1),
			Analysts:     []domain.Analyst{{AnalystID: "alice", Name: "Alice"}, {AnalystID: "bob", Name: "Bob"}},
		},
	}
	prices := l1_service.NewPriceCache(map[string][]domain.AssetPrice{
		"AAPL": {
			price("AAPL", util.NewDate(2023, 1, 1), 100),
			price("AAPL", util.NewDate(2023, 7, 1), 120),
			price("AAPL", util.NewDate(2024, 1, 1), 150),
		},
		"MSFT": {
			price("MSFT", util.NewDate(2023, 7, 1), 200),
			price("MSFT", util.NewDate(2024, 1, 1), 220),
		},
	})
	return positions, prices
}

func buildInput(t *testing.T) ViewBuildInput {
	positions, prices := twoPickFixture()
	today := util.NewDate(2024, 1, 1)

	perf, err := NewPerformanceService(nil).Compute(context.Background(), positions, prices, today)
	require.NoError(t, err)
	require.Empty(t, perf.Skipped)

	snapshot := domain.PositionSnapshot{
		Positions: positions,
		Votes: map[string]domain.VoteTally{
			"aapl-pick": {Yes: 3, No: 1},
			"msft-pick": {Yes: 1, No: 2},
		},
		Purchased: map[string]bool{},
	}

	return ViewBuildInput{
		Dataset:          domain.NewUnifiedDataset(today, snapshot, perf.Performances),
		Prices:           prices,
		BenchmarkTickers: []string{"SPY"},
		Today:            today,
		Now:              time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC),
	}
}

func lastValue(values []float64) float64 {
	return values[len(values)-1]
}

func Test_viewServiceHandler_BuildView(t *testing.T) {
	h := NewViewService(calculator.NewBenchmarkSeriesBuilder())

	t.Run("equal weight averages returns since entry", func(t *testing.T) {
		view, err := h.BuildView(buildInput(t), domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)

		require.Equal(t, 2, view.TotalPositions)
		require.Equal(t, []string{"aapl-pick", "msft-pick"}, view.PositionIDs)
		require.Equal(t, 30.0, *view.Summary.TotalReturn)
		require.Equal(t, "2023-01-01", *view.Summary.StartDate)
		require.Equal(t, 100.0, view.PositiveRatio)

		series := view.InceptionSeries
		require.NotNil(t, series)
		require.Len(t, series.Dates, 13)
		require.Equal(t, "2023-01-01", series.Dates[0])
		require.Equal(t, "2024-01-01", series.Dates[12])
		require.Equal(t, 0.0, series.Portfolio[0])
		require.Equal(t, 30.0, lastValue(series.Portfolio))
		require.Len(t, series.Benchmarks["SPY"], 13)
	})

	t.Run("incremental rebalances into the new pick", func(t *testing.T) {
		view, err := h.BuildView(buildInput(t), domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Incremental})
		require.NoError(t, err)

		// 1 AAPL share is worth 120 on MSFT's entry, split into 0.5 AAPL
		// and 0.3 MSFT, worth 75 + 66 at the end
		require.Equal(t, 41.0, lastValue(view.InceptionSeries.Portfolio))
		// the summary is method independent
		require.Equal(t, 30.0, *view.Summary.TotalReturn)
	})

	t.Run("filters narrow the positions", func(t *testing.T) {
		in := buildInput(t)

		approved, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_BoardApproved, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		require.Equal(t, []string{"aapl-pick"}, approved.PositionIDs)
		require.Equal(t, 50.0, *approved.Summary.TotalReturn)

		watchlist, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_AllApproved, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		require.Equal(t, []string{"aapl-pick"}, watchlist.PositionIDs)

		neutral, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_ApprovedNeutral, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		require.Equal(t, []string{"aapl-pick", "msft-pick"}, neutral.PositionIDs)
	})

	t.Run("empty view has no series and null averages", func(t *testing.T) {
		view, err := h.BuildView(buildInput(t), domain.ViewKey{Filter: domain.FilterCategory_Purchased, Method: domain.CalculationMethod_Incremental})
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(domain.PortfolioSummary{
			NumPositions:     0,
			BenchmarkReturns: map[string]float64{},
		}, view.Summary))
		require.Nil(t, view.InceptionSeries)
		require.Nil(t, view.OneYearSeries)
		require.Equal(t, 0, view.TotalPositions)
	})

	t.Run("benchmark without prices falls back to its synthetic return", func(t *testing.T) {
		view, err := h.BuildView(buildInput(t), domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		require.Equal(t, 10.0, view.Summary.BenchmarkReturns["SPY"])
	})

	t.Run("one year window keeps picks entered inside it", func(t *testing.T) {
		view, err := h.BuildView(buildInput(t), domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		require.NotNil(t, view.OneYearSeries)
		require.Equal(t, "2023-01-01", view.OneYearSeries.Dates[0])
		require.Equal(t, 30.0, lastValue(view.OneYearSeries.Portfolio))
	})

	t.Run("analyst rankings are the same in every view", func(t *testing.T) {
		in := buildInput(t)
		all, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		purchased, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_Purchased, Method: domain.CalculationMethod_Incremental})
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(all.AnalystRankings, purchased.AnalystRankings))
		require.Equal(t, "", cmp.Diff([]domain.AnalystCount{
			{AnalystID: "alice", AnalystName: "Alice", Count: 2},
			{AnalystID: "bob", AnalystName: "Bob", Count: 1},
		}, all.AnalystRankings.TopTotal))
		require.Len(t, all.AnalystRankings.TopPerformance, 1)
		require.Equal(t, 50.0, all.AnalystRankings.TopPerformance[0].AvgReturn)
	})

	t.Run("cached at matches timestamptz precision", func(t *testing.T) {
		in := buildInput(t)
		in.Now = time.Date(2024, 1, 1, 18, 0, 0, 123456789, time.UTC)
		view, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Equal})
		require.NoError(t, err)
		require.Equal(t, time.Date(2024, 1, 1, 18, 0, 0, 123456000, time.UTC), view.CachedAt)
	})

	t.Run("purchase dated after today stays out of the series", func(t *testing.T) {
		positions, prices := twoPickFixture()
		future := util.NewDate(2024, 2, 1)
		positions[1].PurchaseDate = &future
		today := util.NewDate(2024, 1, 1)

		perf, err := NewPerformanceService(nil).Compute(context.Background(), positions, prices, today)
		require.NoError(t, err)
		in := ViewBuildInput{
			Dataset: domain.NewUnifiedDataset(today, domain.PositionSnapshot{
				Positions: positions,
				Votes:     map[string]domain.VoteTally{},
				Purchased: map[string]bool{"msft-pick": true},
			}, perf.Performances),
			Prices:           prices,
			BenchmarkTickers: []string{"SPY"},
			Today:            today,
			Now:              today,
		}

		purchased, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_Purchased, Method: domain.CalculationMethod_Incremental})
		require.NoError(t, err)
		require.Equal(t, []string{"msft-pick"}, purchased.PositionIDs)
		require.Nil(t, purchased.InceptionSeries)

		all, err := h.BuildView(in, domain.ViewKey{Filter: domain.FilterCategory_All, Method: domain.CalculationMethod_Incremental})
		require.NoError(t, err)
		require.Equal(t, "2023-01-01", all.InceptionSeries.Dates[0])
		require.Equal(t, "2024-01-01", all.InceptionSeries.Dates[len(all.InceptionSeries.Dates)-1])
		require.Equal(t, 50.0, lastValue(all.InceptionSeries.Portfolio))
	})
}

func Test_viewServiceHandler_BuildAll(t *testing.T) {
	h := NewViewService(calculator.NewBenchmarkSeriesBuilder())

	views, err := h.BuildAll(buildInput(t))
	require.NoError(t, err)
	require.Len(t, views, 10)

	seen := map[string]bool{}
	for _, v := range views {
		seen[v.Key.String()] = true
	}
	require.Len(t, seen, 10)
}

func Test_performanceServiceHandler_Compute(t *testing.T) {
	positions, prices := twoPickFixture()
	positions = append(positions, domain.Position{
		PositionID:   "ipo-pick",
		CompanyName:  "Unlisted",
		Ticker:       util.StringPointer("NEWCO"),
		Status:       domain.PositionStatus_Neutral,
		AnalysisDate: util.NewDate(2023, 3, 1),
	})

	got, err := NewPerformanceService(nil).Compute(context.Background(), positions, prices, util.NewDate(2024, 1, 1))
	require.NoError(t, err)
	require.Len(t, got.Performances, 2)
	require.ErrorIs(t, got.Skipped["ipo-pick"], domain.ErrPriceUnavailable)

	aapl := got.Performances[0]
	require.True(t, decimal.NewFromInt(100).Equal(aapl.PriceAtEntry))
	require.True(t, decimal.NewFromInt(150).Equal(aapl.PriceCurrent))
	require.True(t, decimal.NewFromInt(50).Equal(aapl.ReturnPct))
	// exactly one year held, so no annualization
	require.True(t, decimal.NewFromInt(50).Equal(aapl.AnnualizedReturnPct))
}
