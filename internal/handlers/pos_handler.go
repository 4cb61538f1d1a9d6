package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// POSHandler serves the master data the point-of-sale screen loads in a
// single round trip.
type POSHandler struct {
	db *gorm.DB
}

func NewPOSHandler(db *gorm.DB) *POSHandler {
	return &POSHandler{db: db}
}

func (h *POSHandler) MasterData(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_get_master_data", "Error al cargar datos del punto de venta.")
		return
	}

	var products []models.Product
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_get_master_data", "Error al cargar datos del punto de venta.")
		return
	}

	var barbers []models.Barber
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_get_master_data", "Error al cargar datos del punto de venta.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"products": products,
		"barbers":  barbers,
	})
}
