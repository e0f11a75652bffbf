package api

import (
	"net/http"
	"time"

	"picktracker/internal/domain"
	l3_service "picktracker/internal/service/l3"

	"github.com/gin-gonic/gin"
)

type getViewResponse struct {
	Filter          domain.FilterCategory    `json:"filter"`
	Method          domain.CalculationMethod `json:"method"`
	Summary         domain.PortfolioSummary  `json:"summary"`
	InceptionSeries *domain.SeriesView       `json:"inceptionSeries"`
	OneYearSeries   *domain.SeriesView       `json:"oneYearSeries"`
	SectorBreakdown domain.SectorBreakdown   `json:"sectorBreakdown"`
	PositiveRatio   float64                  `json:"positiveRatio"`
	TotalPositions  int                      `json:"totalPositions"`
	PositionIDs     []string                 `json:"positionIds"`
	CachedAt        time.Time                `json:"cachedAt"`
	Source          string                   `json:"source"`
	IsStale         bool                     `json:"isStale"`
	Warning         *string                  `json:"warning"`
}

func (m ApiHandler) getView(c *gin.Context) {
	filter, err := domain.ParseFilterCategory(c.Param("filter"))
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	method, err := domain.ParseCalculationMethod(c.Param("method"))
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	policy, err := l3_service.ParseStalePolicy(c.Query("stale"))
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}

	result, err := m.ViewReaderService.GetView(c.Request.Context(), domain.ViewKey{Filter: filter, Method: method}, policy)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	view := result.View
	c.JSON(200, getViewResponse{
		Filter:          view.Key.Filter,
		Method:          view.Key.Method,
		Summary:         view.Summary,
		InceptionSeries: view.InceptionSeries,
		OneYearSeries:   view.OneYearSeries,
		SectorBreakdown: view.SectorBreakdown,
		PositiveRatio:   view.PositiveRatio,
		TotalPositions:  view.TotalPositions,
		PositionIDs:     view.PositionIDs,
		CachedAt:        view.CachedAt,
		Source:          result.Source,
		IsStale:         result.Stale,
		Warning:         result.Warning,
	})
}
