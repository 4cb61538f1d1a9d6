package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	"github.com/BarberiaElCorte/barber-pos-api/internal/cache"
	"github.com/BarberiaElCorte/barber-pos-api/internal/config"
	"github.com/BarberiaElCorte/barber-pos-api/internal/handlers"
	infraRepo "github.com/BarberiaElCorte/barber-pos-api/internal/infra/repository"
	"github.com/BarberiaElCorte/barber-pos-api/internal/middleware"
	"github.com/BarberiaElCorte/barber-pos-api/internal/storage"
	"github.com/BarberiaElCorte/barber-pos-api/internal/timezone"
	ucCommission "github.com/BarberiaElCorte/barber-pos-api/internal/usecase/commission"
	ucReservation "github.com/BarberiaElCorte/barber-pos-api/internal/usecase/reservation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	commissionRepo := infraRepo.NewCommissionGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var dashboardCache cache.Cache = cache.NewNoopCache()
	if cfg.RedisURL != "" {
		if rc, err := cache.NewRedisCache(cfg.RedisURL); err == nil {
			dashboardCache = rc
		} else {
			log.Println("redis unavailable, dashboard cache disabled:", err)
		}
	}

	photoStore := storage.NewPhotoStore(cfg)

	// ======================================================
	// 🧠 USE CASES — RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(reservationRepo)
	updateReservationUC := ucReservation.NewUpdateReservation(reservationRepo)
	cancelReservationUC := ucReservation.NewCancelReservation(reservationRepo, auditDispatcher)
	completeReservationUC := ucReservation.NewCompleteReservation(reservationRepo, auditDispatcher)
	addProductUC := ucReservation.NewAddProductToReservation(reservationRepo)
	removeProductUC := ucReservation.NewRemoveProductFromReservation(reservationRepo)
	fixEndTimesUC := ucReservation.NewFixEndTimes(reservationRepo)

	// ======================================================
	// 🧠 USE CASES — COMMISSIONS
	// ======================================================
	monthlySummaryUC := ucCommission.NewMonthlySummary(commissionRepo)
	finalizePaymentUC := ucCommission.NewFinalizePayment(
		commissionRepo,
		auditDispatcher,
		timezone.Now,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	barberHandler := handlers.NewBarberHandler(db, photoStore)
	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db)
	stationHandler := handlers.NewStationHandler(db)

	reservationHandler := handlers.NewReservationHandler(
		db,
		createReservationUC,
		updateReservationUC,
		cancelReservationUC,
		completeReservationUC,
		addProductUC,
		removeProductUC,
		fixEndTimesUC,
	)

	saleHandler := handlers.NewSaleHandler(db, auditDispatcher)
	commissionHandler := handlers.NewCommissionHandler(
		db,
		commissionRepo,
		monthlySummaryUC,
		finalizePaymentUC,
	)
	advanceHandler := handlers.NewAdvanceHandler(db, auditDispatcher)
	draftSaleHandler := handlers.NewDraftSaleHandler(db)
	inventoryHandler := handlers.NewInventoryHandler(db, auditDispatcher)

	reportHandler := handlers.NewReportHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, dashboardCache)
	posHandler := handlers.NewPOSHandler(db)
	settingHandler := handlers.NewSettingHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/barbers", barberHandler.List)
			secured.GET("/barbers/:id", barberHandler.Get)
			secured.POST("/barbers", barberHandler.Create)
			secured.PATCH("/barbers/:id", barberHandler.Update)
			secured.DELETE("/barbers/:id", barberHandler.Delete)
			secured.GET("/barbers/:id/availability", barberHandler.Availability)
			secured.POST("/barbers/:id/photo", barberHandler.UploadPhoto)

			secured.GET("/services", serviceHandler.List)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/products", productHandler.List)
			secured.GET("/products/:id", productHandler.Get)
			secured.POST("/products", productHandler.Create)
			secured.PATCH("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)

			secured.GET("/stations", stationHandler.List)
			secured.GET("/stations/:id", stationHandler.Get)
			secured.POST("/stations", stationHandler.Create)
			secured.PATCH("/stations/:id", stationHandler.Update)
			secured.DELETE("/stations/:id", stationHandler.Delete)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.POST("/reservations", reservationHandler.Create)
			secured.GET("/reservations", reservationHandler.List)
			secured.GET("/reservations/calendar", reservationHandler.Calendar)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.PATCH("/reservations/:id", reservationHandler.Update)
			secured.PATCH("/reservations/:id/status", reservationHandler.UpdateStatus)
			secured.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)
			secured.POST("/reservations/:id/complete", reservationHandler.Complete)
			secured.POST("/reservations/:id/products", reservationHandler.AddProduct)
			secured.DELETE("/reservations/:id/products/:reservationProductId", reservationHandler.RemoveProduct)

			// ------------------------------
			// DRAFT SALES (CARRITO POS)
			// ------------------------------
			secured.PUT("/reservations/:id/draft-sale", draftSaleHandler.Upsert)
			secured.GET("/reservations/:id/draft-sale", draftSaleHandler.Get)
			secured.DELETE("/reservations/:id/draft-sale", draftSaleHandler.Delete)

			// ------------------------------
			// SALES
			// ------------------------------
			secured.GET("/sales", saleHandler.List)
			secured.GET("/sales/:id", saleHandler.Get)
			secured.GET("/sales/by-reservation/:reservationId", saleHandler.GetByReservation)

			// ------------------------------
			// COMMISSIONS & ADVANCES
			// ------------------------------
			secured.GET("/barber-commissions/monthly-summary", commissionHandler.MonthlySummary)
			secured.GET("/barber-commissions/payments", commissionHandler.Payments)
			secured.GET("/barber-commissions/:barberId/services", commissionHandler.BarberServices)
			secured.GET("/barber-commissions/:barberId/advances", commissionHandler.BarberAdvances)

			secured.POST("/barber-advances", advanceHandler.Create)
			secured.GET("/barber-advances", advanceHandler.List)

			// ------------------------------
			// INVENTORY
			// ------------------------------
			secured.GET("/inventory/summary", inventoryHandler.Summary)
			secured.GET("/inventory/movements", inventoryHandler.Movements)
			secured.POST("/inventory/adjust", inventoryHandler.Adjust)

			// ------------------------------
			// POS, REPORTS & DASHBOARD
			// ------------------------------
			secured.GET("/pos/master-data", posHandler.MasterData)

			secured.GET("/reports/sales", reportHandler.Sales)
			secured.GET("/reports/services-vs-products", reportHandler.ServicesVsProducts)
			secured.GET("/reports/customer-frequency", reportHandler.CustomerFrequency)
			secured.GET("/reports/peak-hours", reportHandler.PeakHours)
			secured.GET("/reports/station-usage", reportHandler.StationUsage)
			secured.GET("/reports/barber-payments", reportHandler.BarberPayments)

			secured.GET("/dashboard/summary", dashboardHandler.Summary)

			secured.GET("/settings", settingHandler.GetAll)
			secured.GET("/settings/:key", settingHandler.Get)

			// ------------------------------
			// 🔒 SOLO ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/barber-commissions/finalize-payment", commissionHandler.FinalizePayment)
				admin.DELETE("/barber-advances/:id", advanceHandler.Delete)
				admin.PATCH("/sales/:id/cancel", saleHandler.Cancel)
				admin.PUT("/settings/:key", settingHandler.Set)
				admin.POST("/maintenance/fix-end-times", reservationHandler.FixEndTimes)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
