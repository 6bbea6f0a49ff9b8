package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dirscope/internal/logging"
	"dirscope/internal/monitoring"
	"dirscope/internal/service"
	"dirscope/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	log      *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, log *logging.Logger, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		registry: registry,
		log:      log.Named("http"),
		metrics:  metrics,
	}
}

// Root handles the liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "dirscope",
		"version": "0.1.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	stats := h.registry.Stats()

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    stats,
	})
}

// DiscoverServices discovers relevant services for a request
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}
	services := h.registry.Discover(req.Message, limit)

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Message,
		"services": services,
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params)
	if err != nil {
		h.metrics.RecordToolCall(req.ToolID, "error", time.Since(start))
		h.log.Error("tool execution failed", zap.String("tool", req.ToolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "success"
	if !result.Success {
		status = "failure"
		if result.Error != nil {
			h.metrics.RecordToolError(req.ToolID, string(result.Error.Kind))
		}
	}
	h.metrics.RecordToolCall(req.ToolID, status, time.Since(start))

	c.JSON(http.StatusOK, result)
}
