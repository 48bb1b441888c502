package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInstallment(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		down     float64
		rate     float64
		years    int
		expected float64
	}{
		{"house loan", 20_000_000, 4_000_000, 12.5, 20, 181_782.49},
		{"vehicle loan", 8_000_000, 2_000_000, 14.5, 7, 114_103.83},
		{"forty years", 1_000_000, 0, 12, 40, 10_085.00},
		{"down payment covers price", 5_000_000, 5_000_000, 10, 10, 0},
		{"down payment exceeds price", 5_000_000, 6_000_000, 10, 10, 0},
		{"zero rate", 5_000_000, 0, 0, 10, 0},
		{"negative rate", 5_000_000, 0, -3, 10, 0},
		{"zero term", 5_000_000, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeInstallment(tt.price, tt.down, tt.rate, tt.years)
			assert.InDelta(t, tt.expected, got, 0.01)
		})
	}
}

func TestComputeInstallment_Bounds(t *testing.T) {
	principal := 16_000_000.0
	months := 240.0
	emi := ComputeInstallment(20_000_000, 4_000_000, 12.5, 20)
	monthlyInterest := principal * 12.5 / 100 / 12
	assert.Greater(t, emi, principal/months)
	assert.Greater(t, emi, monthlyInterest)
}

func TestComputeInstallment_NaN(t *testing.T) {
	assert.True(t, math.IsNaN(ComputeInstallment(math.NaN(), 0, 10, 10)))
	assert.True(t, math.IsNaN(ComputeInstallment(1000, 0, math.NaN(), 10)))
	assert.True(t, math.IsNaN(ComputeInstallment(1000, math.NaN(), 10, 10)))
	assert.Empty(t, AmortizationSchedule(math.NaN(), 0, 10, 10))
	assert.Empty(t, AmortizationSchedule(1000, 0, math.NaN(), 10))
	assert.Empty(t, AmortizationSchedule(math.Inf(1), 0, 10, 10))
}

func TestAmortizationSchedule(t *testing.T) {
	schedule := AmortizationSchedule(20_000_000, 4_000_000, 12.5, 20)
	require.Len(t, schedule, 240)

	emi := ComputeInstallment(20_000_000, 4_000_000, 12.5, 20)
	first := schedule[0]
	assert.Equal(t, 1, first.Month)
	assert.InDelta(t, 166_666.67, first.Interest, 0.01)
	assert.InDelta(t, emi-first.Interest, first.Principal, 1e-6)

	last := schedule[len(schedule)-1]
	assert.Equal(t, 0.0, last.Remaining)
	assert.InDelta(t, emi, last.Payment, 0.01)

	paid := 0.0
	for _, inst := range schedule {
		paid += inst.Principal
	}
	assert.InDelta(t, 16_000_000, paid, 1e-3)
	assert.InDelta(t, emi*240-16_000_000, TotalInterest(schedule), 1)
}

func TestAmortizationSchedule_Degenerate(t *testing.T) {
	assert.Empty(t, AmortizationSchedule(100, 200, 10, 5))
	assert.Equal(t, 0.0, TotalInterest(nil))
}

func TestSummarizeLoan(t *testing.T) {
	cfg := domain.LoanConfig{
		Name:              "House",
		Price:             domain.NewAmount(20_000_000),
		DownPayment:       domain.NewAmount(4_000_000),
		AnnualRatePercent: 12.5,
		TermYears:         20,
	}
	res := SummarizeLoan(cfg)
	assert.Equal(t, 16_000_000.0, res.Principal)
	assert.InDelta(t, 181_782.49, res.Installment, 0.01)
	assert.Empty(t, res.Schedule, "schedule only when requested")
	assert.Greater(t, res.TotalInterest, 0.0)

	cfg.Schedule = true
	assert.Len(t, SummarizeLoan(cfg).Schedule, 240)
}
