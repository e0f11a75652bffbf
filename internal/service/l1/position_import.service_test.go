package l1_service

import (
	"strings"
	"testing"

	"picktracker/internal/db/models/postgres/public/model"
	"picktracker/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParsePositionsCsv(t *testing.T) {
	t.Run("parses positions and derives purchases", func(t *testing.T) {
		in := strings.NewReader(`position_id,company_name,ticker,sector,status,analysis_date,purchase_date,is_other_event
p1,Apple,aapl,Technology,on watchlist,2023-01-01,2023-02-15,false
p2,Club dinner,,,Neutral,2023-03-01,,true
`)
		parsed, err := ParsePositionsCsv(in)
		require.NoError(t, err)
		require.Empty(t, parsed.Analysts)

		purchaseDate := util.NewDate(2023, 2, 15)
		require.Equal(t, "", cmp.Diff([]model.AnalysisPosition{
			{
				PositionID:   "p1",
				CompanyName:  "Apple",
				Ticker:       util.StringPointer("AAPL"),
				Sector:       util.StringPointer("Technology"),
				Status:       "On Watchlist",
				AnalysisDate: util.NewDate(2023, 1, 1),
				PurchaseDate: &purchaseDate,
			},
			{
				PositionID:   "p2",
				CompanyName:  "Club dinner",
				Status:       "Neutral",
				AnalysisDate: util.NewDate(2023, 3, 1),
				IsOtherEvent: true,
			},
		}, parsed.Positions))
		require.Equal(t, "", cmp.Diff([]model.PortfolioPurchase{
			{PositionID: "p1", PurchasedAt: purchaseDate},
		}, parsed.Purchases))
	})

	t.Run("credits analysts by name", func(t *testing.T) {
		in := strings.NewReader(`position_id,company_name,ticker,sector,status,analysis_date,purchase_date,is_other_event,analysts
p1,Apple,AAPL,Technology,Neutral,2023-01-01,,false,"Alice  Smith; Bob;alice smith"
p2,Exxon,XOM,Energy,Neutral,2023-01-01,,false,
`)
		parsed, err := ParsePositionsCsv(in)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]model.PositionAnalyst{
			{PositionID: "p1", AnalystID: "alice-smith", AnalystName: "Alice Smith"},
			{PositionID: "p1", AnalystID: "bob", AnalystName: "Bob"},
		}, parsed.Analysts))
	})

	t.Run("bad date names the line", func(t *testing.T) {
		in := strings.NewReader(`position_id,company_name,ticker,sector,status,analysis_date,purchase_date,is_other_event
p1,Apple,AAPL,Technology,Neutral,01/02/2023,,false
`)
		_, err := ParsePositionsCsv(in)
		require.ErrorContains(t, err, "line 2")
	})
}

func TestParseVotesCsv(t *testing.T) {
	in := strings.NewReader(`position_id,voter_id,approve
p1,alice,true
p1,bob,false
`)
	votes, err := ParseVotesCsv(in)
	require.NoError(t, err)
	require.Equal(t, []model.PositionVote{
		{PositionID: "p1", VoterID: "alice", Approve: true},
		{PositionID: "p1", VoterID: "bob", Approve: false},
	}, votes)
}
