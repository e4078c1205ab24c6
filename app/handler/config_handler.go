package handler

import (
	"net/http"
	"strconv"

	"minerops/internal/service"
	"minerops/pkg/logger"
	smodel "minerops/pkg/store/mysql/model"

	"github.com/gin-gonic/gin"
)

// ConfigHandler handles mining config CRUD
type ConfigHandler struct {
	configService *service.ConfigService
}

// NewConfigHandler creates config handler
func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// Create stores a new rig setup
// @Summary Create mining config
// @Description Store a named rig setup for a user
// @Tags configs
// @Accept json
// @Produce json
// @Param request body model.MiningConfig true "Rig setup"
// @Success 201 {object} model.MiningConfig
// @Router /api/v1/configs [post]
func (h *ConfigHandler) Create(c *gin.Context) {
	var cfg smodel.MiningConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.configService.Create(c.Request.Context(), &cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cfg)
}

// Get gets one rig setup
// @Summary Get mining config
// @Description Get a rig setup by ID
// @Tags configs
// @Produce json
// @Param id path int true "Config ID"
// @Success 200 {object} model.MiningConfig
// @Router /api/v1/configs/{id} [get]
func (h *ConfigHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	cfg, err := h.configService.Get(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("failed to get mining config, id: %d, error: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get config"})
		return
	}
	if cfg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "config not found"})
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// List lists a user's rig setups
// @Summary List mining configs
// @Description List rig setups for a user
// @Tags configs
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} model.MiningConfig
// @Router /api/v1/configs [get]
func (h *ConfigHandler) List(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	configs, err := h.configService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("failed to list mining configs, user_id: %d, error: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list configs"})
		return
	}

	c.JSON(http.StatusOK, configs)
}

// Update applies field updates to a rig setup
// @Summary Update mining config
// @Description Apply field updates to a rig setup
// @Tags configs
// @Accept json
// @Produce json
// @Param id path int true "Config ID"
// @Param request body map[string]interface{} true "Fields to update"
// @Success 200 {object} map[string]string
// @Router /api/v1/configs/{id} [put]
func (h *ConfigHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.configService.Update(c.Request.Context(), id, updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "config updated"})
}

// Delete removes a rig setup
// @Summary Delete mining config
// @Description Remove a rig setup, active setups must be stopped first
// @Tags configs
// @Param id path int true "Config ID"
// @Success 200 {object} map[string]string
// @Router /api/v1/configs/{id} [delete]
func (h *ConfigHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.configService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "config deleted"})
}
