package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

func newCancelUC(repo *fakeRepo) *CancelReservation {
	return NewCancelReservation(repo, audit.NewDispatcher(nil))
}

func TestCancelReservation(t *testing.T) {
	repo := newFakeRepo()
	res := repo.addReservation(models.Reservation{
		Status: string(domain.StatusPending),
	})

	cancelled, err := newCancelUC(repo).Execute(context.Background(), res.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.Equal(t, string(domain.StatusCancelled), repo.reservations[res.ID].Status)
}

func TestCancelReservationRejectsTerminalStates(t *testing.T) {
	repo := newFakeRepo()
	paid := repo.addReservation(models.Reservation{Status: string(domain.StatusPaid)})
	gone := repo.addReservation(models.Reservation{Status: string(domain.StatusCancelled)})

	uc := newCancelUC(repo)

	_, err := uc.Execute(context.Background(), paid.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Execute(context.Background(), gone.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelReservationRejectsWhenSaleExists(t *testing.T) {
	repo := newFakeRepo()
	res := repo.addReservation(models.Reservation{
		Status: string(domain.StatusCompleted),
	})

	resID := res.ID
	repo.sales = append(repo.sales, &models.Sale{ID: 1, ReservationID: &resID})

	_, err := newCancelUC(repo).Execute(context.Background(), res.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "reservation_has_sale"))
	assert.Equal(t, string(domain.StatusCompleted), repo.reservations[res.ID].Status)
}
