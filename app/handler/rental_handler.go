package handler

import (
	"net/http"

	"minerops/internal/service"
	"minerops/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RentalHandler handles GPU marketplace operations
type RentalHandler struct {
	rentalService *service.RentalService
}

// NewRentalHandler creates rental handler
func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// RentRequest is the rental order payload
type RentRequest struct {
	GPUModel      string `json:"gpu_model" binding:"required"`
	DurationHours int    `json:"duration_hours" binding:"required"`
}

// ProfitabilityRequest selects the models to estimate
type ProfitabilityRequest struct {
	GPUModels []string `json:"gpu_models"`
}

// Availability gets marketplace GPU availability
// @Summary Get GPU availability
// @Description Get available and total counts per GPU model
// @Tags rental
// @Produce json
// @Success 200 {array} model.GPUAvailability
// @Router /api/v1/rental/availability [get]
func (h *RentalHandler) Availability(c *gin.Context) {
	c.JSON(http.StatusOK, h.rentalService.GetAvailability(c.Request.Context()))
}

// Pricing gets marketplace GPU pricing
// @Summary Get GPU pricing
// @Description Get hourly, daily and weekly rates per GPU model
// @Tags rental
// @Produce json
// @Success 200 {array} model.GPUPricing
// @Router /api/v1/rental/pricing [get]
func (h *RentalHandler) Pricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.rentalService.GetPricing(c.Request.Context()))
}

// Profitability estimates rental returns for the selected models
// @Summary Get rental profitability
// @Description Get rental offers, market trend and a recommendation
// @Tags rental
// @Accept json
// @Produce json
// @Param request body ProfitabilityRequest true "Model selection, empty means all"
// @Success 200 {object} model.RentalProfitability
// @Router /api/v1/rental/profitability [post]
func (h *RentalHandler) Profitability(c *gin.Context) {
	var req ProfitabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	c.JSON(http.StatusOK, h.rentalService.GetProfitability(c.Request.Context(), req.GPUModels))
}

// Rent places a rental order
// @Summary Rent a GPU
// @Description Place a rental order and record it in the audit trail
// @Tags rental
// @Accept json
// @Produce json
// @Param request body RentRequest true "Rental order"
// @Success 200 {object} model.RentalReceipt
// @Router /api/v1/rental/rent [post]
func (h *RentalHandler) Rent(c *gin.Context) {
	var req RentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	receipt := h.rentalService.Rent(c.Request.Context(), req.GPUModel, req.DurationHours)
	if receipt.Status != "success" {
		c.JSON(http.StatusBadGateway, receipt)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// Cancel cancels an active rental
// @Summary Cancel a rental
// @Description Cancel the rental and close its audit record
// @Tags rental
// @Produce json
// @Param rental_id path string true "Rental ID"
// @Success 200 {object} model.ActionResult
// @Router /api/v1/rental/rentals/{rental_id} [delete]
func (h *RentalHandler) Cancel(c *gin.Context) {
	rentalID := c.Param("rental_id")
	if rentalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rental_id required"})
		return
	}

	result := h.rentalService.CancelRental(c.Request.Context(), rentalID)
	if result.Status != "success" {
		c.JSON(http.StatusBadGateway, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ActiveRentals lists rentals still open in the audit trail
// @Summary List active rentals
// @Description List rentals recorded as active
// @Tags rental
// @Produce json
// @Success 200 {array} model.RentalRecord
// @Router /api/v1/rental/rentals [get]
func (h *RentalHandler) ActiveRentals(c *gin.Context) {
	records, err := h.rentalService.ListActiveRentals(c.Request.Context())
	if err != nil {
		logger.Errorf("failed to list active rentals: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rentals"})
		return
	}

	c.JSON(http.StatusOK, records)
}
