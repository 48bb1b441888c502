package calculation

import (
	"errors"
	"math"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTax_DefaultTable(t *testing.T) {
	tests := []struct {
		name        string
		income      float64
		expectedTax float64
		slices      int
	}{
		{"zero income", 0, 0, 0},
		{"negative income", -50_000, 0, 0},
		{"inside tax-free bracket", 1_000_000, 0, 1},
		{"exactly at first ceiling", 1_200_000, 0, 1},
		{"exactly at second ceiling", 1_700_000, 30_000, 2},
		{"two million", 2_000_000, 66_000, 3},
		{"top bracket", 5_000_000, 918_000, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ComputeTax(tt.income, DefaultBracketTable())
			require.NoError(t, err)
			assert.InDelta(t, tt.expectedTax, res.Tax, 1e-6)
			assert.Len(t, res.Breakdown, tt.slices)
			sum := 0.0
			for _, s := range res.Breakdown {
				sum += s.TaxInRange
			}
			assert.InDelta(t, res.Tax, sum, 1e-6, "breakdown sums to total")
		})
	}
}

func TestComputeTax_TwoMillionBreakdown(t *testing.T) {
	res, err := ComputeTax(2_000_000, DefaultBracketTable())
	require.NoError(t, err)
	require.Len(t, res.Breakdown, 3)

	assert.Equal(t, "0 - 1,200,000", res.Breakdown[0].Range)
	assert.Equal(t, 1_200_000.0, res.Breakdown[0].TaxableInRange)
	assert.Equal(t, 0.0, res.Breakdown[0].TaxInRange)

	assert.Equal(t, "1,200,000 - 1,700,000", res.Breakdown[1].Range)
	assert.InDelta(t, 30_000, res.Breakdown[1].TaxInRange, 1e-9)

	assert.Equal(t, 300_000.0, res.Breakdown[2].TaxableInRange)
	assert.InDelta(t, 36_000, res.Breakdown[2].TaxInRange, 1e-9)
	assert.InDelta(t, 0.033, res.EffectiveRate(), 1e-12)
}

func TestComputeTax_TopSliceRange(t *testing.T) {
	res, err := ComputeTax(4_000_000, DefaultBracketTable())
	require.NoError(t, err)
	last := res.Breakdown[len(res.Breakdown)-1]
	assert.Equal(t, "3,700,000 - ∞", last.Range)
	assert.True(t, last.Upper.IsUnbounded())
}

func TestComputeTax_Monotonic(t *testing.T) {
	table := DefaultBracketTable()
	prev := -1.0
	for income := 0.0; income <= 6_000_000; income += 12_345 {
		res, err := ComputeTax(income, table)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Tax, prev, "tax must not fall as income rises (income %.0f)", income)
		prev = res.Tax
	}
}

func TestComputeTax_ContinuousAtBoundaries(t *testing.T) {
	table := DefaultBracketTable()
	for _, b := range table[:len(table)-1] {
		ceiling := b.UpperBound.Float64()
		below, err := ComputeTax(ceiling-1e-6, table)
		require.NoError(t, err)
		at, err := ComputeTax(ceiling, table)
		require.NoError(t, err)
		above, err := ComputeTax(ceiling+1e-6, table)
		require.NoError(t, err)
		assert.InDelta(t, at.Tax, below.Tax, 1e-3)
		assert.InDelta(t, at.Tax, above.Tax, 1e-3)
	}
}

func TestComputeTax_NaNPropagates(t *testing.T) {
	res, err := ComputeTax(math.NaN(), DefaultBracketTable())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Tax))
}

func TestComputeTax_ConfigurationErrors(t *testing.T) {
	_, err := ComputeTax(100, nil)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "empty")

	capped := domain.BracketTable{{UpperBound: 1000, Rate: 0.1}}
	res, err := ComputeTax(500, capped)
	require.NoError(t, err, "income covered by a finite table is fine")
	assert.InDelta(t, 50, res.Tax, 1e-9)

	_, err = ComputeTax(5000, capped)
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, "no bracket covers")

	below := domain.BracketTable{{UpperBound: -100, Rate: 0}, {UpperBound: domain.Unbounded, Rate: 0.1}}
	res, err = ComputeTax(1000, below)
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, "below zero")
	assert.Zero(t, res.Tax)
}

func TestValidateBrackets(t *testing.T) {
	tests := []struct {
		name    string
		table   domain.BracketTable
		wantErr string
	}{
		{"default", DefaultBracketTable(), ""},
		{"empty", domain.BracketTable{}, "empty"},
		{"no sentinel", domain.BracketTable{{UpperBound: 10, Rate: 0.1}}, "last bracket must be unbounded"},
		{"descending", domain.BracketTable{{UpperBound: 10, Rate: 0}, {UpperBound: 5, Rate: 0.1}, {UpperBound: domain.Unbounded, Rate: 0.2}}, "not above"},
		{"rate above one", domain.BracketTable{{UpperBound: domain.Unbounded, Rate: 1.5}}, "outside [0,1]"},
		{"negative first bound", domain.BracketTable{{UpperBound: -100, Rate: 0}, {UpperBound: domain.Unbounded, Rate: 0.1}}, "below zero"},
		{"zero first bound", domain.BracketTable{{UpperBound: 0, Rate: 0}, {UpperBound: domain.Unbounded, Rate: 0.1}}, ""},
		{"double sentinel", domain.BracketTable{{UpperBound: domain.Unbounded, Rate: 0.1}, {UpperBound: domain.Unbounded, Rate: 0.2}}, "unbounded but not last"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBrackets(tt.table)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBracketWarnings(t *testing.T) {
	assert.Empty(t, BracketWarnings(DefaultBracketTable()))
	table := domain.BracketTable{{UpperBound: 10, Rate: 0.2}, {UpperBound: domain.Unbounded, Rate: 0.1}}
	warnings := BracketWarnings(table)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "below the previous rate")
}

// slabTax applies relief and width slabs directly, the way a year-end
// statement is worked by hand.
func slabTax(income, relief float64, slabs []domain.Slab) float64 {
	remaining := math.Max(0, income-relief)
	tax := 0.0
	for _, s := range slabs {
		if remaining <= 0 {
			break
		}
		take := math.Min(remaining, s.Width.Float64())
		tax += take * s.Rate
		remaining -= take
	}
	return tax
}

func TestBracketsFromSlabs_MatchesSlabArithmetic(t *testing.T) {
	table := BracketsFromSlabs(DefaultFDRelief, DefaultFDSlabs())
	require.NoError(t, ValidateBrackets(table))
	require.Len(t, table, 6)
	assert.Equal(t, domain.Bound(1_800_000), table[0].UpperBound)
	assert.Equal(t, domain.Bound(2_800_000), table[1].UpperBound)
	assert.Equal(t, domain.Bound(4_300_000), table[4].UpperBound)

	for _, income := range []float64{0, 1_000_000, 1_800_000, 2_500_000, 3_000_000, 4_300_000, 9_876_543} {
		res, err := ComputeTax(income, table)
		require.NoError(t, err)
		assert.InDelta(t, slabTax(income, DefaultFDRelief, DefaultFDSlabs()), res.Tax, 1e-6, "income %.0f", income)
	}
}

func TestBracketsFromSlabs_NoRelief(t *testing.T) {
	table := BracketsFromSlabs(0, []domain.Slab{{Width: 100, Rate: 0.1}, {Width: domain.Unbounded, Rate: 0.2}, {Width: 50, Rate: 0.9}})
	require.Len(t, table, 2)
	assert.Equal(t, domain.Bound(100), table[0].UpperBound)
	assert.True(t, table[1].UpperBound.IsUnbounded())
}
