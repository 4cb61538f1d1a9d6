package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

type InventoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewInventoryHandler(db *gorm.DB, audit *audit.Dispatcher) *InventoryHandler {
	return &InventoryHandler{db: db, audit: audit}
}

// --------- Requests ---------

type AdjustStockRequest struct {
	ProductID    uint   `json:"product_id" binding:"required"`
	MovementType string `json:"movement_type" binding:"required,oneof=in out"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	Notes        string `json:"notes"`
}

// --------- Handlers ---------

// Summary devuelve el estado del inventario con la bandera de stock bajo
// por producto.
func (h *InventoryHandler) Summary(c *gin.Context) {
	var products []models.Product
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_get_inventory", "Error al consultar inventario.")
		return
	}

	type productStock struct {
		models.Product
		LowStock bool `json:"low_stock"`
	}

	out := make([]productStock, 0, len(products))
	lowCount := 0
	totalValue := 0.0
	for _, p := range products {
		low := p.StockQuantity <= p.MinStockLevel
		if low {
			lowCount++
		}
		totalValue += float64(p.StockQuantity) * p.Price
		out = append(out, productStock{Product: p, LowStock: low})
	}

	c.JSON(http.StatusOK, gin.H{
		"products":        out,
		"total_products":  len(out),
		"low_stock_count": lowCount,
		"total_value":     totalValue,
	})
}

func (h *InventoryHandler) Movements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	q := h.db.Model(&models.InventoryMovement{}).Preload("Product")

	if productID := c.Query("product_id"); productID != "" {
		q = q.Where("product_id = ?", productID)
	}
	if movementType := c.Query("movement_type"); movementType != "" {
		q = q.Where("movement_type = ?", movementType)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("created_at <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_movements", "Error al listar movimientos.")
		return
	}

	var movements []models.InventoryMovement
	if err := q.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&movements).Error; err != nil {
		httperr.Internal(c, "failed_to_list_movements", "Error al listar movimientos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      movements,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Adjust registra un ajuste manual de stock. Las salidas nunca dejan el
// stock en negativo.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var movement models.InventoryMovement

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var product models.Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			return httperr.ErrBusiness("product_not_found")
		}

		delta := req.Quantity
		if req.MovementType == "out" {
			if product.StockQuantity < req.Quantity {
				return httperr.ErrBusiness("insufficient_stock")
			}
			delta = -req.Quantity
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
			return err
		}

		movement = models.InventoryMovement{
			ProductID:     req.ProductID,
			MovementType:  req.MovementType,
			Quantity:      req.Quantity,
			ReferenceType: "manual_adjustment",
			Notes:         req.Notes,
		}
		return tx.Create(&movement).Error
	})

	if err != nil {
		writeBusinessError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "stock_adjusted",
		Entity:   "inventory_movement",
		EntityID: &movement.ID,
		Metadata: map[string]any{
			"product_id":    req.ProductID,
			"movement_type": req.MovementType,
			"quantity":      req.Quantity,
		},
	})

	c.JSON(http.StatusCreated, movement)
}
