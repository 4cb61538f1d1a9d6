package reservation

import (
	"context"
	"time"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	BarberID  uint
	StationID uint
	ServiceID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	StartTime time.Time
	Status    string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	repo domain.Repository
}

func NewCreateReservation(repo domain.Repository) *CreateReservation {
	return &CreateReservation{repo: repo}
}

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	status := domain.Status(in.Status)
	if in.Status == "" {
		status = domain.InitialStatus()
	}
	if !domain.IsValid(status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	res := &models.Reservation{
		BarberID:    in.BarberID,
		StationID:   in.StationID,
		ServiceID:   in.ServiceID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: in.ClientEmail,
		StartTime:   in.StartTime,
		EndTime:     domain.DeriveEndTime(in.StartTime, svc.DurationMinutes),
		Status:      string(status),
		// Snapshot: the client was quoted this price; later catalog
		// changes must not affect the eventual sale.
		ServicePrice: svc.Price,
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}
