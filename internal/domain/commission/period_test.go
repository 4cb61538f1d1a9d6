package commission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
)

func TestMonthPeriod(t *testing.T) {
	p, err := MonthPeriod(2026, 2, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC), p.End)
}

func TestMonthPeriodDecemberRollsOver(t *testing.T) {
	p, err := MonthPeriod(2026, 12, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC), p.End)
}

func TestMonthPeriodRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		year  int
		month int
	}{
		{2026, 0},
		{2026, 13},
		{1999, 6},
		{2101, 6},
	}

	for _, tt := range tests {
		_, err := MonthPeriod(tt.year, tt.month, time.UTC)
		assert.True(t, httperr.IsBusiness(err, "invalid_period"),
			"year=%d month=%d", tt.year, tt.month)
	}
}

func TestPeriodEnded(t *testing.T) {
	p, err := MonthPeriod(2026, 1, time.UTC)
	require.NoError(t, err)

	assert.False(t, p.Ended(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, p.Ended(p.End))
	assert.True(t, p.Ended(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}
