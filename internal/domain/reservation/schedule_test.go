package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestDeriveEndTime(t *testing.T) {
	start := at(10, 0)

	assert.Equal(t, at(10, 45), DeriveEndTime(start, 45))

	// Zero or negative durations still produce a non-empty interval.
	assert.Equal(t, at(10, 1), DeriveEndTime(start, 0))
	assert.Equal(t, at(10, 1), DeriveEndTime(start, -30))
}

func TestClampToBusinessHours(t *testing.T) {
	t.Run("inside the window is untouched", func(t *testing.T) {
		start, end, changed := ClampToBusinessHours(at(10, 0), 30)
		assert.False(t, changed)
		assert.Equal(t, at(10, 0), start)
		assert.Equal(t, at(10, 30), end)
	})

	t.Run("early start moves to opening", func(t *testing.T) {
		start, end, changed := ClampToBusinessHours(at(6, 30), 60)
		assert.True(t, changed)
		assert.Equal(t, at(8, 0), start)
		assert.Equal(t, at(9, 0), end)
	})

	t.Run("late end clamps to closing", func(t *testing.T) {
		start, end, changed := ClampToBusinessHours(at(20, 45), 60)
		assert.True(t, changed)
		assert.Equal(t, at(21, 0), end)
		assert.True(t, end.After(start))
	})

	t.Run("end exactly at closing is allowed", func(t *testing.T) {
		start, end, changed := ClampToBusinessHours(at(20, 0), 60)
		assert.False(t, changed)
		assert.Equal(t, at(20, 0), start)
		assert.Equal(t, at(21, 0), end)
	})
}
