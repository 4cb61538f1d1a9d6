package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/middleware"
)

// currentUserID reads the authenticated user from the gin context. Nil on
// unauthenticated routes.
func currentUserID(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// Mensajes en el idioma del mostrador.
var businessMessages = map[string]string{
	"reservation_not_found":         "Reserva no encontrada.",
	"service_not_found":             "Servicio no encontrado.",
	"product_not_found":             "Producto no encontrado.",
	"barber_not_found":              "Barbero no encontrado.",
	"reservation_product_not_found": "El producto no está en la reserva.",
	"service_record_missing":        "El servicio de la reserva ya no existe.",
	"product_record_missing":        "Un producto de la reserva ya no existe.",
	"reservation_already_paid":      "La reserva ya fue cobrada.",
	"reservation_cancelled":         "La reserva está cancelada.",
	"reservation_has_sale":          "La reserva tiene una venta asociada.",
	"reservation_closed":            "La reserva ya está cerrada.",
	"commission_already_finalized":  "El pago de ese período ya fue liquidado.",
	"period_not_ended":              "El período aún no termina.",
	"advance_absorbed":              "El adelanto ya fue descontado en una liquidación.",
	"insufficient_stock":            "No hay stock suficiente.",
	"invalid_status":                "Estado inválido.",
	"invalid_state":                 "La reserva no admite ese cambio de estado.",
	"invalid_quantity":              "La cantidad debe ser mayor a cero.",
	"invalid_period":                "Período inválido.",
	"payment_method_required":       "El método de pago es obligatorio.",
}

// writeBusinessError translates a use case error into an HTTP response.
// Unknown errors are treated as internal.
func writeBusinessError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !asBusiness(err, &be) {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	msg := businessMessages[be.Code]
	if msg == "" {
		msg = "Operación rechazada."
	}

	switch {
	case strings.HasSuffix(be.Code, "_not_found") || strings.HasSuffix(be.Code, "_record_missing"):
		httperr.NotFound(c, be.Code, msg)
	case be.Code == "period_not_ended":
		httperr.Forbidden(c, be.Code, msg)
	case be.Code == "reservation_already_paid",
		be.Code == "reservation_cancelled",
		be.Code == "reservation_has_sale",
		be.Code == "reservation_closed",
		be.Code == "commission_already_finalized",
		be.Code == "advance_absorbed",
		be.Code == "insufficient_stock",
		be.Code == "invalid_state":
		httperr.Conflict(c, be.Code, msg)
	default:
		httperr.BadRequest(c, be.Code, msg)
	}
}

func asBusiness(err error, target *httperr.BusinessError) bool {
	be, ok := err.(httperr.BusinessError)
	if !ok {
		return false
	}
	*target = be
	return true
}
