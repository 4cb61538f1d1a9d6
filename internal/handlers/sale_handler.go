package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

type SaleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSaleHandler(db *gorm.DB, audit *audit.Dispatcher) *SaleHandler {
	return &SaleHandler{db: db, audit: audit}
}

// --------- Handlers ---------

func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := h.db.Model(&models.Sale{}).
		Preload("Barber").
		Preload("Items")

	if from := c.Query("from"); from != "" {
		q = q.Where("sale_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("sale_date <= ?", to)
	}
	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if method := c.Query("payment_method"); method != "" {
		q = q.Where("payment_method = ?", method)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Error al listar ventas.")
		return
	}

	var sales []models.Sale
	if err := q.
		Order("sale_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Error al listar ventas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      sales,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *SaleHandler) Get(c *gin.Context) {
	var sale models.Sale
	if err := h.db.
		Preload("Barber").
		Preload("Items").
		First(&sale, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "sale_not_found", "Venta no encontrada.")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) GetByReservation(c *gin.Context) {
	var sale models.Sale
	if err := h.db.
		Preload("Barber").
		Preload("Items").
		Where("reservation_id = ?", c.Param("reservationId")).
		First(&sale).Error; err != nil {
		httperr.NotFound(c, "sale_not_found", "La reserva no tiene venta asociada.")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// Cancel deshace una venta completa: devuelve el stock de los productos,
// reabre la reserva en estado "completed" y borra la venta con sus items.
// Todo dentro de una transacción; la fila de la venta queda bloqueada para
// que dos cancelaciones simultáneas no dupliquen la devolución de stock.
func (h *SaleHandler) Cancel(c *gin.Context) {
	saleID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var cancelled models.Sale

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var sale models.Sale
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&sale, saleID).Error; err != nil {
			return httperr.ErrBusiness("sale_not_found")
		}

		var items []models.SaleItem
		if err := tx.Where("sale_id = ?", sale.ID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if item.ItemType != "product" {
				continue
			}

			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ItemID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}

			movement := models.InventoryMovement{
				ProductID:     item.ItemID,
				MovementType:  "in",
				Quantity:      item.Quantity,
				ReferenceType: "sale_cancellation",
				ReferenceID:   &sale.ID,
				Notes:         "Devolución por venta cancelada",
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		if sale.ReservationID != nil {
			if err := tx.Model(&models.Reservation{}).
				Where("id = ?", *sale.ReservationID).
				Update("status", "completed").Error; err != nil {
				return err
			}
		}

		if err := tx.Where("sale_id = ?", sale.ID).
			Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&sale).Error; err != nil {
			return err
		}

		cancelled = sale
		return nil
	})

	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "sale_cancelled",
		Entity:   "sale",
		EntityID: &cancelled.ID,
		Metadata: map[string]any{
			"receipt_number": cancelled.ReceiptNumber,
			"total_amount":   cancelled.TotalAmount,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"message":        "Venta cancelada.",
		"receipt_number": cancelled.ReceiptNumber,
	})
}
