package handler

import (
	"net/http"
	"strconv"

	"minerops/internal/service"

	"github.com/gin-gonic/gin"
)

// EnergyHandler handles energy consumption and solar operations
type EnergyHandler struct {
	energyService *service.EnergyService
}

// NewEnergyHandler creates energy handler
func NewEnergyHandler(energyService *service.EnergyService) *EnergyHandler {
	return &EnergyHandler{energyService: energyService}
}

// Data gets the combined consumption and solar reading
// @Summary Get energy data
// @Description Get current consumption, solar production and cost split
// @Tags energy
// @Produce json
// @Success 200 {object} model.EnergyData
// @Router /api/v1/energy/data [get]
func (h *EnergyHandler) Data(c *gin.Context) {
	c.JSON(http.StatusOK, h.energyService.GetEnergyData(c.Request.Context()))
}

// Solar gets the solar production reading
// @Summary Get solar production
// @Description Get current solar production, 404 when no installation is configured
// @Tags energy
// @Produce json
// @Success 200 {object} model.SolarProduction
// @Router /api/v1/energy/solar [get]
func (h *EnergyHandler) Solar(c *gin.Context) {
	production := h.energyService.GetSolarProduction(c.Request.Context())
	if production == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no solar installation configured"})
		return
	}

	c.JSON(http.StatusOK, production)
}

// Forecast gets the per-day energy forecast
// @Summary Get energy forecast
// @Description Get per-day consumption, solar and cost forecast
// @Tags energy
// @Produce json
// @Param days query int false "Forecast horizon in days" default(7)
// @Success 200 {array} model.EnergyForecastDay
// @Router /api/v1/energy/forecast [get]
func (h *EnergyHandler) Forecast(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}

	c.JSON(http.StatusOK, h.energyService.GetEnergyForecast(c.Request.Context(), days))
}
