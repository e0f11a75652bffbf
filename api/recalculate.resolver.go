package api

import (
	"io"
	"net/http"
	"time"

	"picktracker/internal/domain"
	l3_service "picktracker/internal/service/l3"

	"github.com/gin-gonic/gin"
)

type recalculateRequest struct {
	// OnlyIfDue skips the pass when the last one is under a week old
	OnlyIfDue bool `json:"onlyIfDue"`
}

func (m ApiHandler) recalculate(c *gin.Context) {
	var requestBody recalculateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&requestBody); err != nil {
			returnErrorJsonCode(err, c, http.StatusBadRequest)
			return
		}
	}
	ctx := c.Request.Context()

	trigger := l3_service.RecalculationTrigger_Manual
	if requestBody.OnlyIfDue {
		due, lastCompleted, err := m.RecalculationService.IsDue(ctx)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		if !due {
			c.JSON(200, gin.H{"started": false, "lastCompletedAt": lastCompleted})
			return
		}
		trigger = l3_service.RecalculationTrigger_Weekly
	}

	if err := m.RecalculationService.Start(ctx, trigger); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"started": true})
}

func (m ApiHandler) recalculationProgress(c *gin.Context) {
	c.JSON(200, m.RecalculationService.Progress())
}

func isTerminal(status domain.RecalculationStatus) bool {
	return status == domain.RecalculationStatus_Idle ||
		status == domain.RecalculationStatus_Completed ||
		status == domain.RecalculationStatus_Error
}

// streamRecalculationProgress emits progress snapshots as server sent
// events until the pass ends or the client goes away
func (m ApiHandler) streamRecalculationProgress(c *gin.Context) {
	interval := m.ProgressInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		snapshot := m.RecalculationService.Progress()
		c.SSEvent("progress", snapshot)
		if isTerminal(snapshot.Status) {
			return false
		}

		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
			return true
		}
	})
}
