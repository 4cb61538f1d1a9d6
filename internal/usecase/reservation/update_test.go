package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

func strPtr(s string) *string       { return &s }
func uintPtr(u uint) *uint          { return &u }
func timePtr(t time.Time) *time.Time { return &t }

func TestUpdateReservationPatchesFields(t *testing.T) {
	repo := newFakeRepo()
	res := repo.addReservation(models.Reservation{
		ClientName: "Ana",
		Status:     string(domain.StatusPending),
	})

	updated, err := NewUpdateReservation(repo).Execute(context.Background(), res.ID, UpdateReservationPatch{
		ClientName: strPtr("Ana María"),
		Notes:      strPtr("prefiere tijera"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana María", updated.ClientName)
	assert.Equal(t, "prefiere tijera", updated.Notes)
	assert.Equal(t, string(domain.StatusPending), updated.Status)
}

func TestUpdateReservationRecomputesDerivedFieldsOnServiceChange(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(models.Service{ID: 1, Price: 20, DurationMinutes: 30})
	repo.addService(models.Service{ID: 2, Price: 35, DurationMinutes: 60})

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	res := repo.addReservation(models.Reservation{
		ServiceID:    1,
		StartTime:    start,
		EndTime:      start.Add(30 * time.Minute),
		ServicePrice: 20,
		Status:       string(domain.StatusPending),
	})

	updated, err := NewUpdateReservation(repo).Execute(context.Background(), res.ID, UpdateReservationPatch{
		ServiceID: uintPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, 35.0, updated.ServicePrice)
	assert.Equal(t, start.Add(60*time.Minute), updated.EndTime)
}

func TestUpdateReservationRecomputesEndTimeOnStartChange(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(models.Service{ID: 1, Price: 20, DurationMinutes: 45})

	start := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	res := repo.addReservation(models.Reservation{
		ServiceID:    1,
		StartTime:    start,
		EndTime:      start.Add(45 * time.Minute),
		ServicePrice: 20,
		Status:       string(domain.StatusPending),
	})

	newStart := time.Date(2026, 8, 21, 16, 0, 0, 0, time.UTC)
	updated, err := NewUpdateReservation(repo).Execute(context.Background(), res.ID, UpdateReservationPatch{
		StartTime: timePtr(newStart),
	})
	require.NoError(t, err)

	assert.Equal(t, newStart.Add(45*time.Minute), updated.EndTime)
}

func TestUpdateReservationStatusTransition(t *testing.T) {
	repo := newFakeRepo()
	res := repo.addReservation(models.Reservation{Status: string(domain.StatusPending)})

	uc := NewUpdateReservation(repo)

	updated, err := uc.Execute(context.Background(), res.ID, UpdateReservationPatch{
		Status: strPtr(string(domain.StatusInProgress)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), updated.Status)

	// Backwards transitions are refused.
	_, err = uc.Execute(context.Background(), res.ID, UpdateReservationPatch{
		Status: strPtr(string(domain.StatusPending)),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestFixEndTimesBackfill(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(models.Service{ID: 1, DurationMinutes: 60})

	// One row ends past closing, one starts before opening, one is fine.
	late := repo.addReservation(models.Reservation{
		ServiceID: 1,
		StartTime: time.Date(2026, 8, 20, 20, 30, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 20, 21, 30, 0, 0, time.UTC),
	})
	early := repo.addReservation(models.Reservation{
		ServiceID: 1,
		StartTime: time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC),
	})
	repo.addReservation(models.Reservation{
		ServiceID: 1,
		StartTime: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC),
	})

	fixed, err := NewFixEndTimes(repo).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fixed)

	assert.Equal(t, 21, repo.reservations[late.ID].EndTime.Hour())
	assert.Equal(t, 8, repo.reservations[early.ID].StartTime.Hour())
}
