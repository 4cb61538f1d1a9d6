package commission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/commission"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// fixedNow pins "today" to mid-March so the February period has ended.
func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
}

func newFinalizeUC(repo *fakeRepo) *FinalizePayment {
	return NewFinalizePayment(repo, audit.NewDispatcher(nil), fixedNow)
}

func febPeriod(t *testing.T) domain.Period {
	t.Helper()
	p, err := domain.MonthPeriod(2026, 2, time.UTC)
	require.NoError(t, err)
	return p
}

func TestFinalizePaymentAboveThreshold(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, Name: "Luis", BaseSalary: 1000, IsActive: true})
	repo.setServicesTotal(1, febPeriod(t), 2500)

	c, err := newFinalizeUC(repo).Execute(context.Background(), 1, 2026, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, 1250.0, c.CommissionAmount)
	assert.Equal(t, 1250.0, c.TotalPayment)
	assert.Equal(t, 2500.0, c.ServicesTotal)
	assert.Equal(t, 1000.0, c.BaseSalary)
	assert.Equal(t, "paid", c.Status)
}

func TestFinalizePaymentBelowThresholdPaysBase(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, Name: "Luis", BaseSalary: 1000, IsActive: true})
	repo.setServicesTotal(1, febPeriod(t), 1900)

	c, err := newFinalizeUC(repo).Execute(context.Background(), 1, 2026, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, c.CommissionAmount)
}

func TestFinalizePaymentDeductsAndAbsorbsAdvances(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, BaseSalary: 1000, IsActive: true})
	period := febPeriod(t)
	repo.setServicesTotal(1, period, 3000)

	repo.advances = append(repo.advances,
		&models.BarberAdvance{ID: 1, BarberID: 1, Amount: 200, Date: period.Start.AddDate(0, 0, 5)},
		&models.BarberAdvance{ID: 2, BarberID: 1, Amount: 100, Date: period.Start.AddDate(0, 0, 20)},
		// Outside the period: untouched.
		&models.BarberAdvance{ID: 3, BarberID: 1, Amount: 999, Date: period.Start.AddDate(0, 1, 3)},
	)

	c, err := newFinalizeUC(repo).Execute(context.Background(), 1, 2026, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, 1500.0, c.CommissionAmount)
	assert.Equal(t, 300.0, c.AdvancesTotal)
	assert.Equal(t, 1200.0, c.TotalPayment)

	// The period's advances carry the commission ID; the later one stays open.
	require.NotNil(t, repo.advances[0].CommissionID)
	assert.Equal(t, c.ID, *repo.advances[0].CommissionID)
	require.NotNil(t, repo.advances[1].CommissionID)
	assert.Nil(t, repo.advances[2].CommissionID)
}

func TestFinalizePaymentIsIdempotencyGuarded(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, BaseSalary: 1000, IsActive: true})
	repo.setServicesTotal(1, febPeriod(t), 2500)

	uc := newFinalizeUC(repo)

	_, err := uc.Execute(context.Background(), 1, 2026, 2, nil)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), 1, 2026, 2, nil)
	assert.True(t, httperr.IsBusiness(err, "commission_already_finalized"))
	assert.Len(t, repo.commissions, 1)
}

func TestFinalizePaymentRejectsOpenPeriod(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, BaseSalary: 1000, IsActive: true})

	// March 2026 is still running on the pinned clock.
	_, err := newFinalizeUC(repo).Execute(context.Background(), 1, 2026, 3, nil)
	assert.True(t, httperr.IsBusiness(err, "period_not_ended"))
	assert.Empty(t, repo.commissions)
}

func TestFinalizePaymentUnknownBarber(t *testing.T) {
	repo := newFakeRepo()

	_, err := newFinalizeUC(repo).Execute(context.Background(), 9, 2026, 2, nil)
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}
