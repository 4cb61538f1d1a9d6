package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

type SettingHandler struct {
	db *gorm.DB
}

func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{db: db}
}

// --------- Requests ---------

type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// --------- Handlers ---------

// GetAll returns the settings table as a flat key→value map.
func (h *SettingHandler) GetAll(c *gin.Context) {
	var settings []models.Setting
	if err := h.db.Find(&settings).Error; err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Error al consultar la configuración.")
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.SettingKey] = s.SettingValue
	}

	c.JSON(http.StatusOK, out)
}

func (h *SettingHandler) Get(c *gin.Context) {
	var setting models.Setting
	if err := h.db.Where("setting_key = ?", c.Param("key")).First(&setting).Error; err != nil {
		httperr.NotFound(c, "setting_not_found", "Configuración no encontrada.")
		return
	}
	c.JSON(http.StatusOK, setting)
}

// Set hace upsert sobre la clave usando ON CONFLICT.
func (h *SettingHandler) Set(c *gin.Context) {
	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El valor es obligatorio.")
		return
	}

	setting := models.Setting{
		SettingKey:   c.Param("key"),
		SettingValue: req.Value,
	}

	if err := h.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
		}).
		Create(&setting).Error; err != nil {
		httperr.Internal(c, "failed_to_save_setting", "Error al guardar la configuración.")
		return
	}

	c.JSON(http.StatusOK, setting)
}
