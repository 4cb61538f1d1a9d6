package reservation

import (
	"context"
	"time"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// UpdateReservationPatch enumerates every updatable field. Nil means
// "leave unchanged".
type UpdateReservationPatch struct {
	BarberID  *uint
	StationID *uint
	ServiceID *uint

	ClientName  *string
	ClientPhone *string
	ClientEmail *string

	StartTime *time.Time
	Status    *string
	Notes     *string
}

type UpdateReservation struct {
	repo domain.Repository
}

func NewUpdateReservation(repo domain.Repository) *UpdateReservation {
	return &UpdateReservation{repo: repo}
}

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	reservationID uint,
	patch UpdateReservationPatch,
) (*models.Reservation, error) {

	var updated *models.Reservation

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		res, err := tx.GetReservationForUpdate(ctx, reservationID)
		if err != nil {
			return httperr.ErrBusiness("reservation_not_found")
		}

		if patch.BarberID != nil {
			res.BarberID = *patch.BarberID
		}
		if patch.StationID != nil {
			res.StationID = *patch.StationID
		}
		if patch.ClientName != nil {
			res.ClientName = *patch.ClientName
		}
		if patch.ClientPhone != nil {
			res.ClientPhone = *patch.ClientPhone
		}
		if patch.ClientEmail != nil {
			res.ClientEmail = *patch.ClientEmail
		}
		if patch.Notes != nil {
			res.Notes = *patch.Notes
		}

		if patch.Status != nil {
			next := domain.Status(*patch.Status)
			if err := domain.CanTransition(domain.Status(res.Status), next); err != nil {
				return err
			}
			res.Status = string(next)
		}

		if patch.ServiceID != nil {
			res.ServiceID = *patch.ServiceID
		}
		if patch.StartTime != nil {
			res.StartTime = *patch.StartTime
		}

		// A new service or start time invalidates the derived fields:
		// price snapshot and end time must be recomputed together.
		if patch.ServiceID != nil || patch.StartTime != nil {
			svc, err := tx.GetService(ctx, res.ServiceID)
			if err != nil {
				return httperr.ErrBusiness("service_not_found")
			}
			res.ServicePrice = svc.Price
			res.EndTime = domain.DeriveEndTime(res.StartTime, svc.DurationMinutes)
		}

		if err := tx.UpdateReservation(ctx, res); err != nil {
			return err
		}

		updated = res
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}
