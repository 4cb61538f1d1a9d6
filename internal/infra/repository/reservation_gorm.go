package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *ReservationGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ReservationGormRepository) GetProduct(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) GetReservationForUpdate(
	ctx context.Context,
	id uint,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationGormRepository) CreateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ReservationGormRepository) ListAllReservations(
	ctx context.Context,
) ([]models.Reservation, error) {

	var all []models.Reservation
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

// --------------------------------------------------
// Reservation products
// --------------------------------------------------

func (r *ReservationGormRepository) ListReservationProducts(
	ctx context.Context,
	reservationID uint,
) ([]models.ReservationProduct, error) {

	var rps []models.ReservationProduct
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Find(&rps).Error; err != nil {
		return nil, err
	}
	return rps, nil
}

func (r *ReservationGormRepository) AddReservationProduct(
	ctx context.Context,
	rp *models.ReservationProduct,
) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *ReservationGormRepository) RemoveReservationProduct(
	ctx context.Context,
	reservationID uint,
	reservationProductID uint,
) error {

	result := r.db.WithContext(ctx).
		Where("id = ? AND reservation_id = ?", reservationProductID, reservationID).
		Delete(&models.ReservationProduct{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Sale
// --------------------------------------------------

func (r *ReservationGormRepository) SaleExistsForReservation(
	ctx context.Context,
	reservationID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Where("reservation_id = ?", reservationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReservationGormRepository) CreateSale(
	ctx context.Context,
	sale *models.Sale,
) error {
	// Items are inserted in the same statement batch via the association.
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *ReservationGormRepository) RecordStockOut(
	ctx context.Context,
	productID uint,
	quantity int,
	saleID uint,
) error {

	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).
		Error; err != nil {
		return err
	}

	movement := models.InventoryMovement{
		ProductID:     productID,
		MovementType:  "out",
		Quantity:      quantity,
		ReferenceType: "sale",
		ReferenceID:   &saleID,
	}
	return r.db.WithContext(ctx).Create(&movement).Error
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *ReservationGormRepository) InTx(
	ctx context.Context,
	fn func(txRepo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReservationGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
