package reservation

import (
	"context"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// FixEndTimes is a maintenance batch that re-derives stored end times from
// (start_time + service duration) and clamps them to business hours. It
// exists because historical rows predate the clamping rule.
type FixEndTimes struct {
	repo domain.Repository
}

func NewFixEndTimes(repo domain.Repository) *FixEndTimes {
	return &FixEndTimes{repo: repo}
}

func (uc *FixEndTimes) Execute(ctx context.Context) (int, error) {

	fixed := 0

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		all, err := tx.ListAllReservations(ctx)
		if err != nil {
			return err
		}

		durations := map[uint]int{}
		serviceFor := func(res *models.Reservation) (int, bool) {
			if d, ok := durations[res.ServiceID]; ok {
				return d, true
			}
			svc, err := tx.GetService(ctx, res.ServiceID)
			if err != nil {
				return 0, false
			}
			durations[res.ServiceID] = svc.DurationMinutes
			return svc.DurationMinutes, true
		}

		for i := range all {
			res := &all[i]

			duration, ok := serviceFor(res)
			if !ok {
				// Orphaned service reference: skip, nothing to derive from.
				continue
			}

			start, end, changed := domain.ClampToBusinessHours(res.StartTime, duration)
			if !changed && res.EndTime.Equal(end) {
				continue
			}

			res.StartTime = start
			res.EndTime = end
			if err := tx.UpdateReservation(ctx, res); err != nil {
				return err
			}
			fixed++
		}

		return nil
	})

	if err != nil {
		return 0, err
	}
	return fixed, nil
}
