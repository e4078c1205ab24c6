package handler

import (
	"net/http"

	"minerops/internal/service"
	"minerops/pkg/logger"
	queue "minerops/pkg/queue/asynq"

	"github.com/gin-gonic/gin"
)

// ProfitabilityHandler handles profitability projections and snapshot refresh
type ProfitabilityHandler struct {
	profitabilityService *service.ProfitabilityService
	queueManager         *queue.Manager
}

// NewProfitabilityHandler creates profitability handler
func NewProfitabilityHandler(profitabilityService *service.ProfitabilityService, queueManager *queue.Manager) *ProfitabilityHandler {
	return &ProfitabilityHandler{
		profitabilityService: profitabilityService,
		queueManager:         queueManager,
	}
}

// Calculate runs the profitability projection over the full catalog
// @Summary Calculate profitability
// @Description Project daily and monthly profit for every coin and GPU pair
// @Tags profitability
// @Produce json
// @Success 200 {object} profit.Result
// @Router /api/v1/profitability/calculate [get]
func (h *ProfitabilityHandler) Calculate(c *gin.Context) {
	c.JSON(http.StatusOK, h.profitabilityService.Calculate(c.Request.Context()))
}

// Snapshot gets the combined mining, energy and rental view
// @Summary Get operations snapshot
// @Description Get the mining, energy and rental state in one call
// @Tags profitability
// @Produce json
// @Success 200 {object} service.OperationsSnapshot
// @Router /api/v1/profitability/snapshot [get]
func (h *ProfitabilityHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.profitabilityService.Snapshot(c.Request.Context()))
}

// Refresh enqueues a background snapshot refresh
// @Summary Refresh snapshots
// @Description Enqueue a refresh of the cached source snapshots
// @Tags profitability
// @Produce json
// @Param scope query string false "Scope to refresh" default(all)
// @Success 202 {object} map[string]string
// @Router /api/v1/profitability/refresh [post]
func (h *ProfitabilityHandler) Refresh(c *gin.Context) {
	if h.queueManager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queue not available"})
		return
	}

	scope := c.DefaultQuery("scope", service.ScopeAll)
	if err := h.queueManager.EnqueueRefresh(c.Request.Context(), scope); err != nil {
		logger.Errorf("failed to enqueue refresh, scope: %s, error: %v", scope, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue refresh"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "refresh enqueued", "scope": scope})
}
