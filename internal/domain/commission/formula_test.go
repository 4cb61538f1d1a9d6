package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name          string
		servicesTotal float64
		baseSalary    float64
		want          float64
	}{
		{"below threshold pays base salary", 1900, 1000, 1000},
		{"above threshold pays half of production", 2500, 1000, 1250},
		{"exactly at threshold switches to half", 2000, 1000, 1000},
		{"just above threshold", 2000.02, 1000, 1000.01},
		{"no production still guarantees base", 0, 1000, 1000},
		{"zero base salary pays half of anything", 300, 0, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Amount(tt.servicesTotal, tt.baseSalary), 0.001)
		})
	}
}

func TestNetPayment(t *testing.T) {
	assert.Equal(t, 800.0, NetPayment(1000, 200))
	assert.Equal(t, 1000.0, NetPayment(1000, 0))

	// Advances can exceed the commission; the negative balance is the
	// admin's problem, not the formula's.
	assert.Equal(t, -50.0, NetPayment(100, 150))
}
