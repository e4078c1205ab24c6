package handler

import (
	"net/http"

	"minerops/internal/model"
	"minerops/internal/service"

	"github.com/gin-gonic/gin"
)

// AssistantHandler handles LLM-backed strategy and analysis operations
type AssistantHandler struct {
	profitabilityService *service.ProfitabilityService
}

// NewAssistantHandler creates assistant handler
func NewAssistantHandler(profitabilityService *service.ProfitabilityService) *AssistantHandler {
	return &AssistantHandler{profitabilityService: profitabilityService}
}

// ChatRequest is the free-form question payload
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// Chat answers a free-form operator question
// @Summary Ask the assistant
// @Description Answer a free-form question with the fleet state as context
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Question"
// @Success 200 {object} map[string]string
// @Router /api/v1/assistant/chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	answer := h.profitabilityService.Chat(c.Request.Context(), req.Question)
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Optimize builds an optimization strategy for the given setup
// @Summary Optimize mining strategy
// @Description Ask the assistant for a strategy and extract structured suggestions
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body model.UserConfig true "Current setup"
// @Success 200 {object} model.OptimizationResult
// @Router /api/v1/assistant/optimize [post]
func (h *AssistantHandler) Optimize(c *gin.Context) {
	var userCfg model.UserConfig
	if err := c.ShouldBindJSON(&userCfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, h.profitabilityService.OptimizeStrategy(c.Request.Context(), userCfg))
}

// Analyze runs the sectioned analysis over the current fleet state
// @Summary Analyze mining data
// @Description Ask the assistant for a sectioned analysis of the fleet
// @Tags assistant
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/assistant/analyze [get]
func (h *AssistantHandler) Analyze(c *gin.Context) {
	c.JSON(http.StatusOK, h.profitabilityService.AnalyzeMiningData(c.Request.Context()))
}
