package reservation

import (
	"context"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

type CancelReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelReservation) Execute(
	ctx context.Context,
	reservationID uint,
	userID *uint,
) (*models.Reservation, error) {

	var cancelled *models.Reservation

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		res, err := tx.GetReservationForUpdate(ctx, reservationID)
		if err != nil {
			return httperr.ErrBusiness("reservation_not_found")
		}

		if err := domain.CanCancel(domain.Status(res.Status)); err != nil {
			return err
		}

		// A reservation that already produced a sale cannot be
		// cancelled; the sale must be cancelled first.
		hasSale, err := tx.SaleExistsForReservation(ctx, reservationID)
		if err != nil {
			return err
		}
		if hasSale {
			return httperr.ErrBusiness("reservation_has_sale")
		}

		res.Status = string(domain.StatusCancelled)
		if err := tx.UpdateReservation(ctx, res); err != nil {
			return err
		}

		cancelled = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "reservation_cancelled",
		Entity:   "reservation",
		EntityID: &cancelled.ID,
	})

	return cancelled, nil
}
