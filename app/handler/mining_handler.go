package handler

import (
	"net/http"
	"strconv"

	"minerops/internal/service"

	"github.com/gin-gonic/gin"
)

// MiningHandler handles mining telemetry and rig control operations
type MiningHandler struct {
	miningService *service.MiningService
}

// NewMiningHandler creates mining handler
func NewMiningHandler(miningService *service.MiningService) *MiningHandler {
	return &MiningHandler{miningService: miningService}
}

// Stats gets the aggregated fleet snapshot
// @Summary Get mining stats
// @Description Get aggregated hashrate, power and earnings for the fleet
// @Tags mining
// @Produce json
// @Success 200 {object} model.MiningStats
// @Router /api/v1/mining/stats [get]
func (h *MiningHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.miningService.GetStats(c.Request.Context()))
}

// GPUs gets per-device telemetry
// @Summary Get GPU stats
// @Description Get per-GPU temperature, fan, power and hashrate
// @Tags mining
// @Produce json
// @Success 200 {array} model.GPUInfo
// @Router /api/v1/mining/gpus [get]
func (h *MiningHandler) GPUs(c *gin.Context) {
	c.JSON(http.StatusOK, h.miningService.GetGPUStats(c.Request.Context()))
}

// Coins gets the normalized coin market dataset
// @Summary Get coin profitability
// @Description Get per-coin price, network hashrate and reward rates
// @Tags mining
// @Produce json
// @Success 200 {object} map[string]model.CoinMarket
// @Router /api/v1/mining/coins [get]
func (h *MiningHandler) Coins(c *gin.Context) {
	c.JSON(http.StatusOK, h.miningService.GetCoinProfitability(c.Request.Context()))
}

// Start activates a stored config and starts the rigs
// @Summary Start mining
// @Description Activate the given mining config and start the rigs
// @Tags mining
// @Produce json
// @Param config_id path int true "Mining config ID"
// @Success 200 {object} model.ActionResult
// @Router /api/v1/mining/start/{config_id} [post]
func (h *MiningHandler) Start(c *gin.Context) {
	configID, err := strconv.ParseInt(c.Param("config_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config_id"})
		return
	}

	result := h.miningService.StartMining(c.Request.Context(), configID)
	if result.Status != "success" {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stop deactivates a stored config and stops the rigs
// @Summary Stop mining
// @Description Deactivate the given mining config and stop the rigs
// @Tags mining
// @Produce json
// @Param config_id path int true "Mining config ID"
// @Success 200 {object} model.ActionResult
// @Router /api/v1/mining/stop/{config_id} [post]
func (h *MiningHandler) Stop(c *gin.Context) {
	configID, err := strconv.ParseInt(c.Param("config_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config_id"})
		return
	}

	result := h.miningService.StopMining(c.Request.Context(), configID)
	if result.Status != "success" {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusOK, result)
}
