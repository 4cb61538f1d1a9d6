package reservation

import (
	"context"

	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

type Repository interface {
	// -------- Catalog lookups --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetProduct(
		ctx context.Context,
		id uint,
	) (*models.Product, error)

	// -------- Reservation --------
	GetReservation(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	// GetReservationForUpdate loads the row under an exclusive lock.
	// Only meaningful inside InTx.
	GetReservationForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Reservation, error)

	CreateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	UpdateReservation(
		ctx context.Context,
		res *models.Reservation,
	) error

	ListAllReservations(
		ctx context.Context,
	) ([]models.Reservation, error)

	// -------- Reservation products --------
	ListReservationProducts(
		ctx context.Context,
		reservationID uint,
	) ([]models.ReservationProduct, error)

	AddReservationProduct(
		ctx context.Context,
		rp *models.ReservationProduct,
	) error

	RemoveReservationProduct(
		ctx context.Context,
		reservationID uint,
		reservationProductID uint,
	) error

	// -------- Sale --------
	SaleExistsForReservation(
		ctx context.Context,
		reservationID uint,
	) (bool, error)

	CreateSale(
		ctx context.Context,
		sale *models.Sale,
	) error

	// RecordStockOut decrements product stock and logs the movement.
	RecordStockOut(
		ctx context.Context,
		productID uint,
		quantity int,
		saleID uint,
	) error

	// InTx runs fn against a transaction-scoped copy of the repository.
	// Returning an error rolls the whole transaction back.
	InTx(
		ctx context.Context,
		fn func(txRepo Repository) error,
	) error
}
