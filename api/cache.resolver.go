package api

import (
	"net/http"

	"picktracker/internal/domain"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) cacheStatus(c *gin.Context) {
	status, err := m.ViewReaderService.CacheStatus(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, status)
}

// invalidateCache clears one view when both filter and method are given,
// otherwise every view
func (m ApiHandler) invalidateCache(c *gin.Context) {
	var key *domain.ViewKey
	if c.Query("filter") != "" || c.Query("method") != "" {
		filter, err := domain.ParseFilterCategory(c.Query("filter"))
		if err != nil {
			returnErrorJsonCode(err, c, http.StatusBadRequest)
			return
		}
		method, err := domain.ParseCalculationMethod(c.Query("method"))
		if err != nil {
			returnErrorJsonCode(err, c, http.StatusBadRequest)
			return
		}
		key = &domain.ViewKey{Filter: filter, Method: method}
	}

	if err := m.ViewReaderService.InvalidateCache(c.Request.Context(), key); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"message": "cache cleared"})
}
