package db

import (
	"log"
	"time"

	"github.com/BarberiaElCorte/barber-pos-api/internal/config"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Station{},
		&models.Barber{},
		&models.Service{},
		&models.Product{},
		&models.Reservation{},
		&models.ReservationProduct{},
		&models.Sale{},
		&models.SaleItem{},
		&models.DraftSale{},
		&models.DraftSaleItem{},
		&models.BarberCommission{},
		&models.BarberAdvance{},
		&models.InventoryMovement{},
		&models.Setting{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Close releases the underlying pool. Called from main on shutdown.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("error closing database: %v", err)
	}
}
