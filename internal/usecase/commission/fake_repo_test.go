package commission

import (
	"context"
	"errors"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/commission"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// fakeRepo keeps everything in memory. CreateCommission enforces the
// (barber, period) uniqueness the real table's index provides.
type fakeRepo struct {
	barbers     map[uint]*models.Barber
	commissions []*models.BarberCommission
	advances    []*models.BarberAdvance

	// servicesSold maps barberID to total service production per period
	// start, keyed by period start unix.
	servicesSold map[uint]map[int64]float64

	serviceRows []domain.ServiceSaleRow

	nextCommissionID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers:      map[uint]*models.Barber{},
		servicesSold: map[uint]map[int64]float64{},
	}
}

func (f *fakeRepo) addBarber(b models.Barber) *models.Barber {
	f.barbers[b.ID] = &b
	return &b
}

func (f *fakeRepo) setServicesTotal(barberID uint, period domain.Period, total float64) {
	if f.servicesSold[barberID] == nil {
		f.servicesSold[barberID] = map[int64]float64{}
	}
	f.servicesSold[barberID][period.Start.Unix()] = total
}

// -------- Repository --------

func (f *fakeRepo) ListActiveBarbers(ctx context.Context) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range f.barbers {
		if b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, errors.New("barber not found")
	}
	return b, nil
}

func (f *fakeRepo) GetCommissionForPeriod(ctx context.Context, barberID uint, period domain.Period) (*models.BarberCommission, error) {
	for _, c := range f.commissions {
		if c.BarberID == barberID && c.PeriodStart.Equal(period.Start) && c.PeriodEnd.Equal(period.End) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateCommission(ctx context.Context, c *models.BarberCommission) error {
	for _, existing := range f.commissions {
		if existing.BarberID == c.BarberID &&
			existing.PeriodStart.Equal(c.PeriodStart) &&
			existing.PeriodEnd.Equal(c.PeriodEnd) {
			return httperr.ErrBusiness("commission_already_finalized")
		}
	}
	f.nextCommissionID++
	c.ID = f.nextCommissionID
	f.commissions = append(f.commissions, c)
	return nil
}

func (f *fakeRepo) ServicesTotal(ctx context.Context, barberID uint, period domain.Period) (float64, error) {
	return f.servicesSold[barberID][period.Start.Unix()], nil
}

func (f *fakeRepo) UnabsorbedAdvancesTotal(ctx context.Context, barberID uint, period domain.Period) (float64, error) {
	total := 0.0
	for _, a := range f.advances {
		if a.BarberID == barberID && a.CommissionID == nil && inPeriod(a, period) {
			total += a.Amount
		}
	}
	return total, nil
}

func (f *fakeRepo) AbsorbAdvances(ctx context.Context, barberID uint, period domain.Period, commissionID uint) error {
	for _, a := range f.advances {
		if a.BarberID == barberID && a.CommissionID == nil && inPeriod(a, period) {
			id := commissionID
			a.CommissionID = &id
		}
	}
	return nil
}

func (f *fakeRepo) ListBarberServices(ctx context.Context, barberID uint, period domain.Period) ([]domain.ServiceSaleRow, error) {
	return f.serviceRows, nil
}

func (f *fakeRepo) ListBarberAdvances(ctx context.Context, barberID uint, period domain.Period) ([]models.BarberAdvance, error) {
	var out []models.BarberAdvance
	for _, a := range f.advances {
		if a.BarberID == barberID && inPeriod(a, period) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(txRepo domain.Repository) error) error {
	return fn(f)
}

func inPeriod(a *models.BarberAdvance, period domain.Period) bool {
	return !a.Date.Before(period.Start) && !a.Date.After(period.End)
}

var _ domain.Repository = (*fakeRepo)(nil)
