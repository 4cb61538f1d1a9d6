package reservation

import "time"

// Shop business hours. End times derived from a service duration are
// clamped so no reservation runs outside this window.
const (
	OpeningHour = 8
	ClosingHour = 21
)

// DeriveEndTime computes the end of a reservation from its start and the
// booked service's duration. The end is always at least one minute after
// the start, even for zero-duration services.
func DeriveEndTime(start time.Time, durationMinutes int) time.Time {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	if !end.After(start) {
		end = start.Add(time.Minute)
	}
	return end
}

// ClampToBusinessHours normalizes a stored (start, end) pair so that it
// respects the 08:00–21:00 window and stays consistent with the service
// duration. Used by the end-time backfill job; creation and update paths
// derive times fresh and only need DeriveEndTime.
func ClampToBusinessHours(start time.Time, durationMinutes int) (time.Time, time.Time, bool) {
	changed := false

	if start.Hour() < OpeningHour {
		start = atHour(start, OpeningHour)
		changed = true
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	if end.Hour() > ClosingHour || (end.Hour() == ClosingHour && end.Minute() > 0) {
		end = atHour(start, ClosingHour)
		if end.Before(start) {
			start = end.Add(-time.Duration(durationMinutes) * time.Minute)
			if start.Hour() < OpeningHour {
				start = atHour(start, OpeningHour)
			}
		}
		changed = true
	}

	if !end.After(start) {
		end = start.Add(time.Minute)
		changed = true
	}

	return start, end, changed
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
