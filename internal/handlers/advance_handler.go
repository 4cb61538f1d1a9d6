package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"github.com/BarberiaElCorte/barber-pos-api/internal/timezone"
)

type AdvanceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdvanceHandler(db *gorm.DB, audit *audit.Dispatcher) *AdvanceHandler {
	return &AdvanceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateAdvanceRequest struct {
	BarberID uint       `json:"barber_id" binding:"required"`
	Amount   float64    `json:"amount" binding:"required,gt=0"`
	Date     *time.Time `json:"date"`
	Notes    string     `json:"notes"`
}

// --------- Handlers ---------

func (h *AdvanceHandler) Create(c *gin.Context) {
	var req CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, req.BarberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	date := timezone.Now()
	if req.Date != nil {
		date = *req.Date
	}

	advance := models.BarberAdvance{
		BarberID: req.BarberID,
		Amount:   req.Amount,
		Date:     date,
		Notes:    req.Notes,
	}

	if err := h.db.Create(&advance).Error; err != nil {
		httperr.Internal(c, "failed_to_create_advance", "Error al registrar el adelanto.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "advance_created",
		Entity:   "barber_advance",
		EntityID: &advance.ID,
		Metadata: map[string]any{
			"barber_id": advance.BarberID,
			"amount":    advance.Amount,
		},
	})

	c.JSON(http.StatusCreated, advance)
}

func (h *AdvanceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.BarberAdvance{}).Preload("Barber")

	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}
	if c.Query("pending") == "true" {
		q = q.Where("commission_id IS NULL")
	}

	var advances []models.BarberAdvance
	if err := q.Order("date DESC").Find(&advances).Error; err != nil {
		httperr.Internal(c, "failed_to_list_advances", "Error al listar adelantos.")
		return
	}

	c.JSON(http.StatusOK, advances)
}

// Delete borra un adelanto solo si todavía no fue descontado de una
// liquidación; después de eso la fila es parte del historial contable.
func (h *AdvanceHandler) Delete(c *gin.Context) {
	var advance models.BarberAdvance
	if err := h.db.First(&advance, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "advance_not_found", "Adelanto no encontrado.")
		return
	}

	if advance.CommissionID != nil {
		httperr.Conflict(c, "advance_absorbed", "El adelanto ya fue descontado en una liquidación.")
		return
	}

	if err := h.db.Delete(&advance).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_advance", "Error al eliminar el adelanto.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "advance_deleted",
		Entity:   "barber_advance",
		EntityID: &advance.ID,
	})

	c.Status(http.StatusNoContent)
}
