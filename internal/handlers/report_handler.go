package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"github.com/BarberiaElCorte/barber-pos-api/internal/timezone"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

// dateRange resolves the from/to query pair, defaulting to the current
// month.
func dateRange(c *gin.Context) (string, string) {
	now := timezone.Now()
	from := c.DefaultQuery("from", now.AddDate(0, 0, -now.Day()+1).Format("2006-01-02"))
	to := c.DefaultQuery("to", now.Format("2006-01-02"))
	return from, to
}

// --------- Handlers ---------

// Sales es el reporte integral de ventas: totales, desglose por método de
// pago y por barbero dentro del rango.
func (h *ReportHandler) Sales(c *gin.Context) {
	from, to := dateRange(c)

	base := h.db.Model(&models.Sale{}).
		Where("DATE(sale_date) BETWEEN ? AND ?", from, to)
	if barberID := c.Query("barber_id"); barberID != "" {
		base = base.Where("barber_id = ?", barberID)
	}

	type totals struct {
		Count          int64   `json:"count"`
		ServiceAmount  float64 `json:"service_amount"`
		ProductsAmount float64 `json:"products_amount"`
		TotalAmount    float64 `json:"total_amount"`
	}

	var t totals
	if err := base.Session(&gorm.Session{}).
		Select(
			"COUNT(*) AS count",
			"COALESCE(SUM(service_amount), 0) AS service_amount",
			"COALESCE(SUM(products_amount), 0) AS products_amount",
			"COALESCE(SUM(total_amount), 0) AS total_amount",
		).
		Scan(&t).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	type methodRow struct {
		PaymentMethod string  `json:"payment_method"`
		Count         int64   `json:"count"`
		Total         float64 `json:"total"`
	}
	var byMethod []methodRow
	if err := base.Session(&gorm.Session{}).
		Select("payment_method", "COUNT(*) AS count", "COALESCE(SUM(total_amount), 0) AS total").
		Group("payment_method").
		Scan(&byMethod).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	type barberRow struct {
		BarberID   uint    `json:"barber_id"`
		BarberName string  `json:"barber_name"`
		Count      int64   `json:"count"`
		Total      float64 `json:"total"`
	}
	var byBarber []barberRow
	if err := h.db.Model(&models.Sale{}).
		Select(
			"sales.barber_id",
			"barbers.name AS barber_name",
			"COUNT(*) AS count",
			"COALESCE(SUM(sales.total_amount), 0) AS total",
		).
		Joins("JOIN barbers ON barbers.id = sales.barber_id").
		Where("DATE(sales.sale_date) BETWEEN ? AND ?", from, to).
		Group("sales.barber_id, barbers.name").
		Order("total DESC").
		Scan(&byBarber).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":              from,
		"to":                to,
		"totals":            t,
		"by_payment_method": byMethod,
		"by_barber":         byBarber,
	})
}

// ServicesVsProducts compara ingresos por servicios contra productos, día
// por día.
func (h *ReportHandler) ServicesVsProducts(c *gin.Context) {
	from, to := dateRange(c)

	type dayRow struct {
		Day            string  `json:"day"`
		ServiceAmount  float64 `json:"service_amount"`
		ProductsAmount float64 `json:"products_amount"`
	}

	var rows []dayRow
	if err := h.db.Model(&models.Sale{}).
		Select(
			"DATE(sale_date) AS day",
			"COALESCE(SUM(service_amount), 0) AS service_amount",
			"COALESCE(SUM(products_amount), 0) AS products_amount",
		).
		Where("DATE(sale_date) BETWEEN ? AND ?", from, to).
		Group("DATE(sale_date)").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from": from,
		"to":   to,
		"days": rows,
	})
}

// CustomerFrequency ranks customers by completed visits in the range.
func (h *ReportHandler) CustomerFrequency(c *gin.Context) {
	from, to := dateRange(c)

	type customerRow struct {
		CustomerName string  `json:"customer_name"`
		Visits       int64   `json:"visits"`
		TotalSpent   float64 `json:"total_spent"`
	}

	var rows []customerRow
	if err := h.db.Model(&models.Sale{}).
		Select(
			"customer_name",
			"COUNT(*) AS visits",
			"COALESCE(SUM(total_amount), 0) AS total_spent",
		).
		Where("DATE(sale_date) BETWEEN ? AND ? AND customer_name <> ''", from, to).
		Group("customer_name").
		Order("visits DESC").
		Limit(50).
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":      from,
		"to":        to,
		"customers": rows,
	})
}

// PeakHours agrupa reservas no canceladas por hora de inicio.
func (h *ReportHandler) PeakHours(c *gin.Context) {
	from, to := dateRange(c)

	type hourRow struct {
		Hour  int   `json:"hour"`
		Count int64 `json:"count"`
	}

	var rows []hourRow
	if err := h.db.Model(&models.Reservation{}).
		Select("EXTRACT(HOUR FROM start_time)::int AS hour", "COUNT(*) AS count").
		Where("DATE(start_time) BETWEEN ? AND ? AND status <> ?", from, to, "cancelled").
		Group("hour").
		Order("hour ASC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":  from,
		"to":    to,
		"hours": rows,
	})
}

// StationUsage counts reservations handled per station in the range.
func (h *ReportHandler) StationUsage(c *gin.Context) {
	from, to := dateRange(c)

	type stationRow struct {
		StationID   uint   `json:"station_id"`
		StationName string `json:"station_name"`
		Count       int64  `json:"count"`
	}

	var rows []stationRow
	if err := h.db.Model(&models.Reservation{}).
		Select(
			"reservations.station_id",
			"stations.name AS station_name",
			"COUNT(*) AS count",
		).
		Joins("JOIN stations ON stations.id = reservations.station_id").
		Where("DATE(reservations.start_time) BETWEEN ? AND ? AND reservations.status <> ?",
			from, to, "cancelled").
		Group("reservations.station_id, stations.name").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":     from,
		"to":       to,
		"stations": rows,
	})
}

// BarberPayments resume por barbero lo vendido en servicios, los adelantos
// del rango y la comisión liquidada si existe.
func (h *ReportHandler) BarberPayments(c *gin.Context) {
	from, to := dateRange(c)

	type paymentRow struct {
		BarberID      uint    `json:"barber_id"`
		BarberName    string  `json:"barber_name"`
		BaseSalary    float64 `json:"base_salary"`
		ServicesTotal float64 `json:"services_total"`
		AdvancesTotal float64 `json:"advances_total"`
	}

	var rows []paymentRow
	if err := h.db.Raw(`
		SELECT
			b.id AS barber_id,
			b.name AS barber_name,
			b.base_salary,
			COALESCE((
				SELECT SUM(si.total_price)
				FROM sale_items si
				JOIN sales s ON s.id = si.sale_id
				WHERE s.barber_id = b.id
				  AND si.item_type = 'service'
				  AND DATE(s.sale_date) BETWEEN ? AND ?
			), 0) AS services_total,
			COALESCE((
				SELECT SUM(a.amount)
				FROM barber_advances a
				WHERE a.barber_id = b.id
				  AND DATE(a.date) BETWEEN ? AND ?
			), 0) AS advances_total
		FROM barbers b
		WHERE b.is_active = TRUE
		ORDER BY b.name ASC
	`, from, to, from, to).Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_get_report", "Error al generar el reporte.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":    from,
		"to":      to,
		"barbers": rows,
	})
}
