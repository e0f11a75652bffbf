package l2_service

import (
	"context"
	"testing"

	"picktracker/internal/calculator"
	"picktracker/internal/domain"
	mock_repository "picktracker/internal/repository/mocks"
	l1_service "picktracker/internal/service/l1"
	"picktracker/internal/util"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_benchmarkServiceHandler_GetSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("weekly series from stored prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPricePointRepository(ctrl)
		repo.EXPECT().List(gomock.Any(), []string{"SPY"}, util.NewDate(2023, 12, 25), util.NewDate(2024, 1, 15)).Return(map[string][]domain.AssetPrice{
			"SPY": {
				price("SPY", util.NewDate(2023, 12, 29), 400),
				price("SPY", util.NewDate(2024, 1, 5), 420),
				price("SPY", util.NewDate(2024, 1, 12), 440),
			},
		}, nil)

		h := NewBenchmarkService(l1_service.NewPriceService(repo, nil, l1_service.PriceServiceConfig{}), calculator.NewBenchmarkSeriesBuilder())
		got, err := h.GetSeries(ctx, " spy", util.NewDate(2024, 1, 1), util.NewDate(2024, 1, 15), calculator.Granularity_Weekly)
		require.NoError(t, err)

		require.Len(t, got, 3)
		require.Equal(t, []float64{0, 5, 10}, toPctSlice(got))
		require.Equal(t, util.NewDate(2024, 1, 15), got[2].Date)
	})

	t.Run("unknown symbol gets the synthetic line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_repository.NewMockPricePointRepository(ctrl)
		repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(map[string][]domain.AssetPrice{}, nil)

		h := NewBenchmarkService(l1_service.NewPriceService(repo, nil, l1_service.PriceServiceConfig{}), calculator.NewBenchmarkSeriesBuilder())
		got, err := h.GetSeries(ctx, "SPY", util.NewDate(2023, 1, 1), util.NewDate(2024, 1, 1), calculator.Granularity_Monthly)
		require.NoError(t, err)
		require.Len(t, got, 13)
		require.Equal(t, 10.0, domain.ToPct(got[12].Value))
	})

	t.Run("end before start", func(t *testing.T) {
		h := NewBenchmarkService(nil, calculator.NewBenchmarkSeriesBuilder())
		_, err := h.GetSeries(ctx, "SPY", util.NewDate(2024, 1, 2), util.NewDate(2024, 1, 1), calculator.Granularity_Daily)
		require.Error(t, err)
	})
}
