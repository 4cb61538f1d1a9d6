package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"github.com/BarberiaElCorte/barber-pos-api/internal/timezone"
	usecase "github.com/BarberiaElCorte/barber-pos-api/internal/usecase/reservation"
)

type ReservationHandler struct {
	db *gorm.DB

	create        *usecase.CreateReservation
	update        *usecase.UpdateReservation
	cancel        *usecase.CancelReservation
	complete      *usecase.CompleteReservation
	addProduct    *usecase.AddProductToReservation
	removeProduct *usecase.RemoveProductFromReservation
	fixEndTimes   *usecase.FixEndTimes
}

func NewReservationHandler(
	db *gorm.DB,
	create *usecase.CreateReservation,
	update *usecase.UpdateReservation,
	cancel *usecase.CancelReservation,
	complete *usecase.CompleteReservation,
	addProduct *usecase.AddProductToReservation,
	removeProduct *usecase.RemoveProductFromReservation,
	fixEndTimes *usecase.FixEndTimes,
) *ReservationHandler {
	return &ReservationHandler{
		db:            db,
		create:        create,
		update:        update,
		cancel:        cancel,
		complete:      complete,
		addProduct:    addProduct,
		removeProduct: removeProduct,
		fixEndTimes:   fixEndTimes,
	}
}

// --------- Requests ---------

type CreateReservationRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	StationID uint `json:"station_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	StartTime time.Time `json:"start_time" binding:"required"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
}

type UpdateReservationRequest struct {
	BarberID  *uint `json:"barber_id,omitempty"`
	StationID *uint `json:"station_id,omitempty"`
	ServiceID *uint `json:"service_id,omitempty"`

	ClientName  *string `json:"client_name,omitempty"`
	ClientPhone *string `json:"client_phone,omitempty"`
	ClientEmail *string `json:"client_email,omitempty"`

	StartTime *time.Time `json:"start_time,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CompleteReservationRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type AddReservationProductRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// --------- Handlers ---------

func (h *ReservationHandler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	res, err := h.create.Execute(c.Request.Context(), usecase.CreateReservationInput{
		BarberID:    req.BarberID,
		StationID:   req.StationID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		StartTime:   req.StartTime,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// List pagina sobre created_at descendente y admite filtros por fecha,
// barbero y estado. Con include_sale=true se adjunta la venta asociada.
func (h *ReservationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := h.db.Model(&models.Reservation{}).
		Preload("Barber").
		Preload("Station").
		Preload("Service")

	if date := c.Query("date"); date != "" {
		q = q.Where("DATE(start_time) = ?", date)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("start_time >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("start_time <= ?", to)
	}
	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Error al listar reservas.")
		return
	}

	var reservations []models.Reservation
	if err := q.
		Order("start_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reservations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Error al listar reservas.")
		return
	}

	if c.Query("include_sale") == "true" {
		h.attachSales(reservations, c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      reservations,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// attachSales resolves the reservation→sale join in one query instead of
// N preloads.
func (h *ReservationHandler) attachSales(reservations []models.Reservation, c *gin.Context) {
	ids := make([]uint, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}

	var sales []models.Sale
	if len(ids) > 0 {
		if err := h.db.Where("reservation_id IN ?", ids).Find(&sales).Error; err != nil {
			httperr.Internal(c, "failed_to_list_reservations", "Error al listar reservas.")
			return
		}
	}

	saleByReservation := make(map[uint]*models.Sale, len(sales))
	for i := range sales {
		if sales[i].ReservationID != nil {
			saleByReservation[*sales[i].ReservationID] = &sales[i]
		}
	}

	type reservationWithSale struct {
		models.Reservation
		Sale *models.Sale `json:"sale,omitempty"`
	}

	out := make([]reservationWithSale, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, reservationWithSale{
			Reservation: r,
			Sale:        saleByReservation[r.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  out,
		"total": len(out),
	})
}

// Calendar returns a day's reservations grouped per station, the shape the
// front desk board renders directly.
func (h *ReservationHandler) Calendar(c *gin.Context) {
	date := c.DefaultQuery("date", timezone.Now().Format("2006-01-02"))

	var reservations []models.Reservation
	if err := h.db.
		Preload("Barber").
		Preload("Service").
		Preload("Station").
		Where("DATE(start_time) = ? AND status <> ?", date, "cancelled").
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		httperr.Internal(c, "failed_to_get_calendar", "Error al consultar el calendario.")
		return
	}

	byStation := map[uint][]models.Reservation{}
	for _, r := range reservations {
		byStation[r.StationID] = append(byStation[r.StationID], r)
	}

	// The board also needs the active catalog to offer slots and services
	// without extra round trips.
	var barbers []models.Barber
	h.db.Where("is_active = ?", true).Order("name ASC").Find(&barbers)

	var services []models.Service
	h.db.Where("is_active = ?", true).Order("name ASC").Find(&services)

	c.JSON(http.StatusOK, gin.H{
		"date":     date,
		"stations": byStation,
		"barbers":  barbers,
		"services": services,
	})
}

func (h *ReservationHandler) Get(c *gin.Context) {
	var res models.Reservation
	if err := h.db.
		Preload("Barber").
		Preload("Station").
		Preload("Service").
		Preload("Products").
		Preload("Products.Product").
		First(&res, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "reservation_not_found", "Reserva no encontrada.")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	res, err := h.update.Execute(c.Request.Context(), id, usecase.UpdateReservationPatch{
		BarberID:    req.BarberID,
		StationID:   req.StationID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		StartTime:   req.StartTime,
		Status:      req.Status,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El estado es obligatorio.")
		return
	}

	res, err := h.update.Execute(c.Request.Context(), id, usecase.UpdateReservationPatch{
		Status: &req.Status,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req CompleteReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "payment_method_required", "El método de pago es obligatorio.")
		return
	}

	sale, err := h.complete.Execute(c.Request.Context(), id, req.PaymentMethod, currentUserID(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *ReservationHandler) AddProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req AddReservationProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	rp, err := h.addProduct.Execute(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rp)
}

func (h *ReservationHandler) RemoveProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	rpID, ok := parseUintParam(c, "reservationProductId")
	if !ok {
		return
	}

	if err := h.removeProduct.Execute(c.Request.Context(), id, rpID); err != nil {
		writeBusinessError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) FixEndTimes(c *gin.Context) {
	fixed, err := h.fixEndTimes.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_fix_end_times", "Error al corregir horarios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"fixed": fixed})
}
