package commission

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

func TestMonthlySummaryProjectsOpenMonths(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, Name: "Luis", BaseSalary: 1000, IsActive: true})
	repo.setServicesTotal(1, febPeriod(t), 2500)

	repo.advances = append(repo.advances, &models.BarberAdvance{
		ID: 1, BarberID: 1, Amount: 250,
		Date: febPeriod(t).Start.AddDate(0, 0, 10),
	})

	rows, err := NewMonthlySummary(repo).Execute(context.Background(), 2026, 2, time.UTC)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "pending", row.Status)
	assert.Equal(t, "Luis", row.BarberName)
	assert.Equal(t, 2500.0, row.ServicesTotal)
	assert.Equal(t, 1250.0, row.CommissionAmount)
	assert.Equal(t, 250.0, row.AdvancesTotal)
	assert.Equal(t, 1000.0, row.TotalPayment)
}

func TestMonthlySummaryReturnsFinalizedRowVerbatim(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, Name: "Luis", BaseSalary: 9999, IsActive: true})
	period := febPeriod(t)

	// The live projection would disagree with the stored row; the stored
	// row wins.
	repo.setServicesTotal(1, period, 5000)
	repo.commissions = append(repo.commissions, &models.BarberCommission{
		ID:               1,
		BarberID:         1,
		PeriodStart:      period.Start,
		PeriodEnd:        period.End,
		BaseSalary:       1000,
		ServicesTotal:    2500,
		CommissionAmount: 1250,
		AdvancesTotal:    0,
		TotalPayment:     1250,
		Status:           "paid",
	})

	rows, err := NewMonthlySummary(repo).Execute(context.Background(), 2026, 2, time.UTC)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "paid", row.Status)
	assert.Equal(t, 2500.0, row.ServicesTotal)
	assert.Equal(t, 1250.0, row.TotalPayment)
	assert.Equal(t, 1000.0, row.BaseSalary)
}

func TestMonthlySummarySkipsInactiveBarbers(t *testing.T) {
	repo := newFakeRepo()
	repo.addBarber(models.Barber{ID: 1, Name: "Luis", IsActive: true})
	repo.addBarber(models.Barber{ID: 2, Name: "Pedro", IsActive: false})

	rows, err := NewMonthlySummary(repo).Execute(context.Background(), 2026, 2, time.UTC)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMonthlySummaryRejectsInvalidPeriod(t *testing.T) {
	repo := newFakeRepo()

	_, err := NewMonthlySummary(repo).Execute(context.Background(), 2026, 13, time.UTC)
	assert.True(t, httperr.IsBusiness(err, "invalid_period"))
}
