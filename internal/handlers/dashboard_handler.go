package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/cache"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"github.com/BarberiaElCorte/barber-pos-api/internal/timezone"
)

// The dashboard refreshes aggressively from the front desk screen, so the
// aggregate gets a short cache window.
const dashboardCacheTTL = 30 * time.Second

type DashboardHandler struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewDashboardHandler(db *gorm.DB, c cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c}
}

type dashboardSummary struct {
	Date string `json:"date"`

	TodayReservations int64 `json:"today_reservations"`
	PendingCount      int64 `json:"pending_count"`
	InProgressCount   int64 `json:"in_progress_count"`
	CompletedCount    int64 `json:"completed_count"`
	PaidCount         int64 `json:"paid_count"`

	TodaySales      int64   `json:"today_sales"`
	TodayRevenue    float64 `json:"today_revenue"`
	MonthRevenue    float64 `json:"month_revenue"`
	LowStockCount   int64   `json:"low_stock_count"`
	ActiveBarbers   int64   `json:"active_barbers"`
	OpenAdvancesSum float64 `json:"open_advances_sum"`

	DailyRevenue []dailyRevenuePoint  `json:"daily_revenue"`
	TopServices  []topServiceRow      `json:"top_services"`
	Upcoming     []models.Reservation `json:"upcoming_reservations"`
}

type dailyRevenuePoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

type topServiceRow struct {
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Count       int64   `json:"count"`
	Revenue     float64 `json:"revenue"`
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	today := timezone.Now().Format("2006-01-02")
	cacheKey := "dashboard:summary:" + today

	if cached, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	var s dashboardSummary
	s.Date = today

	statusCount := func(status string) int64 {
		var n int64
		h.db.Model(&models.Reservation{}).
			Where("DATE(start_time) = ? AND status = ?", today, status).
			Count(&n)
		return n
	}

	if err := h.db.Model(&models.Reservation{}).
		Where("DATE(start_time) = ? AND status <> ?", today, "cancelled").
		Count(&s.TodayReservations).Error; err != nil {
		httperr.Internal(c, "failed_to_get_dashboard", "Error al consultar el panel.")
		return
	}

	s.PendingCount = statusCount("pending")
	s.InProgressCount = statusCount("in_progress")
	s.CompletedCount = statusCount("completed")
	s.PaidCount = statusCount("paid")

	h.db.Model(&models.Sale{}).
		Where("DATE(sale_date) = ?", today).
		Count(&s.TodaySales)

	h.db.Model(&models.Sale{}).
		Where("DATE(sale_date) = ?", today).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&s.TodayRevenue)

	monthStart := timezone.Now().Format("2006-01") + "-01"
	h.db.Model(&models.Sale{}).
		Where("DATE(sale_date) >= ?", monthStart).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&s.MonthRevenue)

	h.db.Model(&models.Product{}).
		Where("is_active = ? AND stock_quantity <= min_stock_level", true).
		Count(&s.LowStockCount)

	h.db.Model(&models.Barber{}).
		Where("is_active = ?", true).
		Count(&s.ActiveBarbers)

	h.db.Model(&models.BarberAdvance{}).
		Where("commission_id IS NULL").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&s.OpenAdvancesSum)

	since := timezone.Now().AddDate(0, 0, -30).Format("2006-01-02")

	h.db.Model(&models.Sale{}).
		Select("DATE(sale_date)::text AS day", "COALESCE(SUM(total_amount), 0) AS revenue").
		Where("DATE(sale_date) >= ?", since).
		Group("DATE(sale_date)").
		Order("day ASC").
		Scan(&s.DailyRevenue)

	h.db.Model(&models.SaleItem{}).
		Select(
			"sale_items.item_id AS service_id",
			"sale_items.item_name AS service_name",
			"COUNT(*) AS count",
			"COALESCE(SUM(sale_items.total_price), 0) AS revenue",
		).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sale_items.item_type = ? AND DATE(sales.sale_date) >= ?", "service", since).
		Group("sale_items.item_id, sale_items.item_name").
		Order("count DESC").
		Limit(5).
		Scan(&s.TopServices)

	h.db.
		Preload("Barber").
		Preload("Service").
		Where("DATE(start_time) = ? AND status IN ?", today, []string{"pending", "in_progress"}).
		Order("start_time ASC").
		Limit(10).
		Find(&s.Upcoming)

	if body, err := json.Marshal(s); err == nil {
		h.cache.Set(c.Request.Context(), cacheKey, string(body), dashboardCacheTTL)
	}

	c.JSON(http.StatusOK, s)
}
