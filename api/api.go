package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"picktracker/internal/domain"
	"picktracker/internal/logger"
	l2_service "picktracker/internal/service/l2"
	l3_service "picktracker/internal/service/l3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiHandler struct {
	ViewReaderService    l3_service.ViewReaderService
	RecalculationService l3_service.RecalculationService
	BenchmarkService     l2_service.BenchmarkService

	// ProgressInterval is how often the progress stream emits. Zero
	// means one second.
	ProgressInterval time.Duration
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to picktracker"})
	})
	router.GET("/views/:filter/:method", m.getView)
	router.GET("/cache/status", m.cacheStatus)
	router.DELETE("/cache", m.invalidateCache)
	router.POST("/recalculate", m.recalculate)
	router.GET("/recalculate/progress", m.recalculationProgress)
	router.GET("/recalculate/stream", m.streamRecalculationProgress)
	router.POST("/benchmark", m.benchmark)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, errorCode(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Warnw("request failed", "status", code, "error", err.Error())
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrAlreadyRunning):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCacheMiss):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// logRequestMiddleware tags every request with an id and a request
// scoped logger
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.New()
	log := logger.FromContext(c.Request.Context()).With("requestID", requestID.String())
	c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), log))
	c.Header("X-Request-Id", requestID.String())

	start := time.Now()
	c.Next()

	log.Infow("handled request",
		"method", c.Request.Method,
		"route", c.FullPath(),
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
