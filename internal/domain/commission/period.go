package commission

import (
	"time"

	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
)

// Period is a calendar-month settlement window: first day 00:00:00 through
// last day 23:59:59 in the shop's location.
type Period struct {
	Start time.Time
	End   time.Time
}

func MonthPeriod(year int, month int, loc *time.Location) (Period, error) {
	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return Period{}, httperr.ErrBusiness("invalid_period")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)

	return Period{Start: start, End: end}, nil
}

// Ended reports whether the period has fully elapsed. A commission cannot
// be finalized while its month is still in progress.
func (p Period) Ended(now time.Time) bool {
	return now.After(p.End)
}
