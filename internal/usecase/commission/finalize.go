package commission

import (
	"context"
	"time"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/commission"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

type FinalizePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewFinalizePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *FinalizePayment {
	return &FinalizePayment{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// Execute settles one barber's month exactly once. The existence check is
// an early exit; the unique index on (barber_id, period_start, period_end)
// decides the race between concurrent calls. Totals are recomputed fresh
// inside the transaction — a preview read may be stale by the time the
// payment is confirmed.
func (uc *FinalizePayment) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
	userID *uint,
) (*models.BarberCommission, error) {

	now := uc.now()

	period, err := domain.MonthPeriod(year, month, now.Location())
	if err != nil {
		return nil, err
	}

	if !period.Ended(now) {
		return nil, httperr.ErrBusiness("period_not_ended")
	}

	var finalized *models.BarberCommission

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {

		barber, err := tx.GetBarber(ctx, barberID)
		if err != nil {
			return httperr.ErrBusiness("barber_not_found")
		}

		existing, err := tx.GetCommissionForPeriod(ctx, barberID, period)
		if err != nil {
			return err
		}
		if existing != nil {
			return httperr.ErrBusiness("commission_already_finalized")
		}

		servicesTotal, err := tx.ServicesTotal(ctx, barberID, period)
		if err != nil {
			return err
		}
		advancesTotal, err := tx.UnabsorbedAdvancesTotal(ctx, barberID, period)
		if err != nil {
			return err
		}

		commissionAmount := domain.Amount(servicesTotal, barber.BaseSalary)

		c := &models.BarberCommission{
			BarberID:         barberID,
			PeriodStart:      period.Start,
			PeriodEnd:        period.End,
			BaseSalary:       barber.BaseSalary,
			ServicesTotal:    servicesTotal,
			CommissionAmount: commissionAmount,
			AdvancesTotal:    advancesTotal,
			TotalPayment:     domain.NetPayment(commissionAmount, advancesTotal),
			Status:           "paid",
		}

		if err := tx.CreateCommission(ctx, c); err != nil {
			return err
		}

		if err := tx.AbsorbAdvances(ctx, barberID, period, c.ID); err != nil {
			return err
		}

		finalized = c
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "commission_finalized",
		Entity:   "barber_commission",
		EntityID: &finalized.ID,
		Metadata: map[string]any{
			"barber_id":     barberID,
			"period_start":  period.Start,
			"total_payment": finalized.TotalPayment,
		},
	})

	return finalized, nil
}
