package commission

import (
	"context"
	"time"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/commission"
)

// BarberCommissionSummary is one row of the monthly settlement screen:
// either the finalized commission (status "paid") or a live projection
// (status "pending").
type BarberCommissionSummary struct {
	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name"`

	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	BaseSalary       float64 `json:"base_salary"`
	ServicesTotal    float64 `json:"services_total"`
	CommissionAmount float64 `json:"commission_amount"`
	AdvancesTotal    float64 `json:"advances_total"`
	TotalPayment     float64 `json:"total_payment"`

	Status string `json:"status"`
}

type MonthlySummary struct {
	repo domain.Repository
}

func NewMonthlySummary(repo domain.Repository) *MonthlySummary {
	return &MonthlySummary{repo: repo}
}

func (uc *MonthlySummary) Execute(
	ctx context.Context,
	year int,
	month int,
	loc *time.Location,
) ([]BarberCommissionSummary, error) {

	period, err := domain.MonthPeriod(year, month, loc)
	if err != nil {
		return nil, err
	}

	barbers, err := uc.repo.ListActiveBarbers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]BarberCommissionSummary, 0, len(barbers))

	for _, barber := range barbers {

		row := BarberCommissionSummary{
			BarberID:    barber.ID,
			BarberName:  barber.Name,
			PeriodStart: period.Start,
			PeriodEnd:   period.End,
		}

		// A finalized commission is returned verbatim; the projection
		// is only for months not yet settled.
		finalized, err := uc.repo.GetCommissionForPeriod(ctx, barber.ID, period)
		if err != nil {
			return nil, err
		}

		if finalized != nil {
			row.BaseSalary = finalized.BaseSalary
			row.ServicesTotal = finalized.ServicesTotal
			row.CommissionAmount = finalized.CommissionAmount
			row.AdvancesTotal = finalized.AdvancesTotal
			row.TotalPayment = finalized.TotalPayment
			row.Status = "paid"
			out = append(out, row)
			continue
		}

		servicesTotal, err := uc.repo.ServicesTotal(ctx, barber.ID, period)
		if err != nil {
			return nil, err
		}
		advancesTotal, err := uc.repo.UnabsorbedAdvancesTotal(ctx, barber.ID, period)
		if err != nil {
			return nil, err
		}

		commissionAmount := domain.Amount(servicesTotal, barber.BaseSalary)

		row.BaseSalary = barber.BaseSalary
		row.ServicesTotal = servicesTotal
		row.CommissionAmount = commissionAmount
		row.AdvancesTotal = advancesTotal
		row.TotalPayment = domain.NetPayment(commissionAmount, advancesTotal)
		row.Status = "pending"

		out = append(out, row)
	}

	return out, nil
}
