package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/commission"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"github.com/BarberiaElCorte/barber-pos-api/internal/timezone"
	usecase "github.com/BarberiaElCorte/barber-pos-api/internal/usecase/commission"
)

type CommissionHandler struct {
	db       *gorm.DB
	repo     domain.Repository
	summary  *usecase.MonthlySummary
	finalize *usecase.FinalizePayment
}

func NewCommissionHandler(
	db *gorm.DB,
	repo domain.Repository,
	summary *usecase.MonthlySummary,
	finalize *usecase.FinalizePayment,
) *CommissionHandler {
	return &CommissionHandler{
		db:       db,
		repo:     repo,
		summary:  summary,
		finalize: finalize,
	}
}

// --------- Requests ---------

type FinalizePaymentRequest struct {
	BarberID uint `json:"barber_id" binding:"required"`
	Year     int  `json:"year" binding:"required"`
	Month    int  `json:"month" binding:"required"`
}

// --------- Handlers ---------

// MonthlySummary muestra la liquidación del mes por barbero: filas ya
// pagadas tal como quedaron y proyecciones en vivo para el resto.
func (h *CommissionHandler) MonthlySummary(c *gin.Context) {
	year, month, ok := h.periodFromQuery(c)
	if !ok {
		return
	}

	rows, err := h.summary.Execute(c.Request.Context(), year, month, timezone.Location(""))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *CommissionHandler) FinalizePayment(c *gin.Context) {
	var req FinalizePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	commission, err := h.finalize.Execute(
		c.Request.Context(),
		req.BarberID,
		req.Year,
		req.Month,
		currentUserID(c),
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, commission)
}

// BarberServices is the settlement drill-down: every service line the
// barber sold inside the period.
func (h *CommissionHandler) BarberServices(c *gin.Context) {
	barberID, ok := parseUintParam(c, "barberId")
	if !ok {
		return
	}
	period, ok := h.periodParam(c)
	if !ok {
		return
	}

	rows, err := h.repo.ListBarberServices(c.Request.Context(), barberID, period)
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios del barbero.")
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *CommissionHandler) BarberAdvances(c *gin.Context) {
	barberID, ok := parseUintParam(c, "barberId")
	if !ok {
		return
	}
	period, ok := h.periodParam(c)
	if !ok {
		return
	}

	advances, err := h.repo.ListBarberAdvances(c.Request.Context(), barberID, period)
	if err != nil {
		httperr.Internal(c, "failed_to_list_advances", "Error al listar adelantos del barbero.")
		return
	}

	c.JSON(http.StatusOK, advances)
}

// Payments lists finalized commissions, newest period first.
func (h *CommissionHandler) Payments(c *gin.Context) {
	q := h.db.Model(&models.BarberCommission{}).Preload("Barber")

	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}

	var payments []models.BarberCommission
	if err := q.Order("period_start DESC").Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Error al listar pagos.")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// --------- helpers ---------

func (h *CommissionHandler) periodFromQuery(c *gin.Context) (int, int, bool) {
	now := timezone.Now()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_period", "Año inválido.")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		httperr.BadRequest(c, "invalid_period", "Mes inválido.")
		return 0, 0, false
	}
	return year, month, true
}

func (h *CommissionHandler) periodParam(c *gin.Context) (domain.Period, bool) {
	year, month, ok := h.periodFromQuery(c)
	if !ok {
		return domain.Period{}, false
	}

	period, err := domain.MonthPeriod(year, month, timezone.Location(""))
	if err != nil {
		writeBusinessError(c, err)
		return domain.Period{}, false
	}
	return period, true
}
