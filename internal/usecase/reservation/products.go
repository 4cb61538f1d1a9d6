package reservation

import (
	"context"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// ======================================================
// ADD PRODUCT
// ======================================================

type AddProductToReservation struct {
	repo domain.Repository
}

func NewAddProductToReservation(repo domain.Repository) *AddProductToReservation {
	return &AddProductToReservation{repo: repo}
}

func (uc *AddProductToReservation) Execute(
	ctx context.Context,
	reservationID uint,
	productID uint,
	quantity int,
) (*models.ReservationProduct, error) {

	if quantity <= 0 {
		return nil, httperr.ErrBusiness("invalid_quantity")
	}

	res, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}
	if !domain.IsOpen(domain.Status(res.Status)) {
		return nil, httperr.ErrBusiness("reservation_closed")
	}

	product, err := uc.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, httperr.ErrBusiness("product_not_found")
	}

	rp := &models.ReservationProduct{
		ReservationID: reservationID,
		ProductID:     productID,
		Quantity:      quantity,
		// Price snapshot: later catalog changes do not touch it.
		PriceAtReservation: product.Price,
	}

	if err := uc.repo.AddReservationProduct(ctx, rp); err != nil {
		return nil, err
	}

	return rp, nil
}

// ======================================================
// REMOVE PRODUCT
// ======================================================

type RemoveProductFromReservation struct {
	repo domain.Repository
}

func NewRemoveProductFromReservation(repo domain.Repository) *RemoveProductFromReservation {
	return &RemoveProductFromReservation{repo: repo}
}

func (uc *RemoveProductFromReservation) Execute(
	ctx context.Context,
	reservationID uint,
	reservationProductID uint,
) error {

	res, err := uc.repo.GetReservation(ctx, reservationID)
	if err != nil {
		return httperr.ErrBusiness("reservation_not_found")
	}
	if !domain.IsOpen(domain.Status(res.Status)) {
		return httperr.ErrBusiness("reservation_closed")
	}

	if err := uc.repo.RemoveReservationProduct(ctx, reservationID, reservationProductID); err != nil {
		return httperr.ErrBusiness("reservation_product_not_found")
	}
	return nil
}
