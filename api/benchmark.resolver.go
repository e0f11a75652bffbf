package api

import (
	"fmt"
	"net/http"
	"time"

	"picktracker/internal/calculator"
	"picktracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type benchmarkResponse map[string]float64

type benchmarkRequest struct {
	Symbol      string `json:"symbol"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Granularity string `json:"granularity"`
}

func (m ApiHandler) benchmark(c *gin.Context) {
	var requestBody benchmarkRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.DateOnly, requestBody.Start)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}
	end, err := time.Parse(time.DateOnly, requestBody.End)
	if err != nil {
		returnErrorJsonCode(err, c, http.StatusBadRequest)
		return
	}

	granularity := calculator.Granularity_Daily
	if requestBody.Granularity == "weekly" {
		granularity = calculator.Granularity_Weekly
	} else if requestBody.Granularity == "monthly" {
		granularity = calculator.Granularity_Monthly
	}

	results, err := m.BenchmarkService.GetSeries(c.Request.Context(), requestBody.Symbol, start, end, granularity)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := benchmarkResponse{}
	for _, point := range results {
		out[point.Date.Format(time.DateOnly)] = domain.ToPct(point.Value)
	}

	c.JSON(200, out)
}
