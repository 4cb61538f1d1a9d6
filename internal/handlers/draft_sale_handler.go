package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// DraftSaleHandler persists the in-progress POS cart per reservation so
// the front desk can resume a half-built ticket after a page reload.
type DraftSaleHandler struct {
	db *gorm.DB
}

func NewDraftSaleHandler(db *gorm.DB) *DraftSaleHandler {
	return &DraftSaleHandler{db: db}
}

// --------- Requests ---------

type DraftSaleItemRequest struct {
	ItemID       uint    `json:"item_id" binding:"required"`
	ItemType     string  `json:"item_type" binding:"required,oneof=service product"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	PriceAtDraft float64 `json:"price_at_draft" binding:"gte=0"`
}

type UpsertDraftSaleRequest struct {
	ClientName  string                 `json:"client_name"`
	BarberID    *uint                  `json:"barber_id"`
	TotalAmount float64                `json:"total_amount"`
	Items       []DraftSaleItemRequest `json:"items"`
}

// --------- Handlers ---------

// Upsert reemplaza el borrador completo de la reserva: los items viejos se
// descartan y se escriben los nuevos en una sola transacción.
func (h *DraftSaleHandler) Upsert(c *gin.Context) {
	reservationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req UpsertDraftSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var draft models.DraftSale

	err := h.db.Transaction(func(tx *gorm.DB) error {

		err := tx.Where("reservation_id = ?", reservationID).First(&draft).Error
		switch {
		case err == nil:
			if err := tx.Where("draft_sale_id = ?", draft.ID).
				Delete(&models.DraftSaleItem{}).Error; err != nil {
				return err
			}
		case err == gorm.ErrRecordNotFound:
			draft = models.DraftSale{ReservationID: reservationID}
		default:
			return err
		}

		// The total is recomputed from the lines; the client-sent figure
		// is ignored.
		total := 0.0
		for _, item := range req.Items {
			total += item.PriceAtDraft * float64(item.Quantity)
		}

		draft.ClientName = req.ClientName
		draft.BarberID = req.BarberID
		draft.TotalAmount = total

		if err := tx.Save(&draft).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			row := models.DraftSaleItem{
				DraftSaleID:  draft.ID,
				ItemID:       item.ItemID,
				ItemType:     item.ItemType,
				Quantity:     item.Quantity,
				PriceAtDraft: item.PriceAtDraft,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_draft", "Error al guardar el borrador.")
		return
	}

	if err := h.db.Preload("Items").First(&draft, draft.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_save_draft", "Error al guardar el borrador.")
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *DraftSaleHandler) Get(c *gin.Context) {
	var draft models.DraftSale
	if err := h.db.
		Preload("Items").
		Where("reservation_id = ?", c.Param("id")).
		First(&draft).Error; err != nil {
		httperr.NotFound(c, "draft_not_found", "La reserva no tiene borrador.")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftSaleHandler) Delete(c *gin.Context) {
	reservationID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var draft models.DraftSale
		if err := tx.Where("reservation_id = ?", reservationID).First(&draft).Error; err != nil {
			return err
		}
		if err := tx.Where("draft_sale_id = ?", draft.ID).
			Delete(&models.DraftSaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&draft).Error
	})

	if err == gorm.ErrRecordNotFound {
		httperr.NotFound(c, "draft_not_found", "La reserva no tiene borrador.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_delete_draft", "Error al eliminar el borrador.")
		return
	}

	c.Status(http.StatusNoContent)
}
