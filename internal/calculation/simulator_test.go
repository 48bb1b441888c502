package calculation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateTwoTrack_FirstYear(t *testing.T) {
	half := [5]float64{0.5, 0.5, 0.5, 0.5, 0.5}
	all := [5]float64{1, 1, 1, 1, 1}
	years, err := SimulateTwoTrack(10_000_000, 20_000_000, 0.20, 0.10, half, all, DefaultBracketTable())
	require.NoError(t, err)
	require.Len(t, years, 5)

	y1 := years[0]
	assert.Equal(t, 1, y1.Year)
	assert.InDelta(t, 2_000_000, y1.TrackA().Interest, 1e-6)
	assert.InDelta(t, 1_000_000, y1.TrackA().Withdrawal, 1e-6)
	assert.InDelta(t, 11_000_000, y1.TrackA().End, 1e-6)
	assert.InDelta(t, 2_000_000, y1.TrackB().Withdrawal, 1e-6)
	assert.InDelta(t, 20_000_000, y1.TrackB().End, 1e-6)
	assert.InDelta(t, 3_000_000, y1.TotalWithdrawal, 1e-6)
	assert.InDelta(t, 252_000, y1.Tax, 1e-6)
	assert.InDelta(t, 2_748_000, y1.NetWithdrawal, 1e-6)

	y2 := years[1]
	assert.InDelta(t, 2_200_000, y2.TrackA().Interest, 1e-6)
	assert.InDelta(t, 12_100_000, y2.TrackA().End, 1e-6)
}

func TestSimulate_TrackIdentities(t *testing.T) {
	input := domain.SimulationInput{
		Years: 5,
		Tracks: []domain.TrackInput{
			{Name: "equity", Capital: 12_345_678, Rate: 0.1733, WithdrawFractions: []float64{0, 0.25, 0.5, 0.75, 1}},
			{Name: "other", Capital: 7_654_321, Rate: 0.0911, WithdrawFractions: []float64{1, 0.9, 0.1, 0, 0.3}},
			{Name: "third", Capital: 1_000_000, Rate: 0.05, WithdrawFractions: []float64{0.5}},
		},
	}
	years, err := Simulate(input, DefaultBracketTable())
	require.NoError(t, err)
	require.Len(t, years, 5)

	for yi, y := range years {
		total := 0.0
		for ti, tr := range y.Tracks {
			assert.Equal(t, tr.Start+tr.Interest-tr.Withdrawal, tr.End, "year %d track %d", y.Year, ti)
			assert.Equal(t, input.Tracks[ti].Name, tr.Name)
			if yi > 0 {
				assert.Equal(t, years[yi-1].Tracks[ti].End, tr.Start, "year %d track %d start", y.Year, ti)
			} else {
				assert.Equal(t, input.Tracks[ti].Capital, tr.Start)
			}
			total += tr.Withdrawal
		}
		assert.Equal(t, total, y.TotalWithdrawal)
		tax, err := ComputeTax(y.TotalWithdrawal, DefaultBracketTable())
		require.NoError(t, err)
		assert.Equal(t, tax.Tax, y.Tax)
		assert.Equal(t, y.TotalWithdrawal-y.Tax, y.NetWithdrawal)
	}
	// the third track has no fraction after year 1
	assert.Equal(t, 0.0, years[1].Tracks[2].Withdrawal)
}

func TestSimulate_ZeroWithdrawalsCompound(t *testing.T) {
	years, err := SimulateTwoTrack(1_000_000, 0, 0.10, 0.05, [5]float64{}, [5]float64{}, DefaultBracketTable())
	require.NoError(t, err)
	for _, y := range years {
		assert.Equal(t, 0.0, y.TotalWithdrawal)
		assert.Equal(t, 0.0, y.Tax)
		assert.Equal(t, 0.0, y.TrackB().End)
	}
	assert.InDelta(t, 1_610_510, years[4].TrackA().End, 1e-6)
}

func TestSimulate_Deterministic(t *testing.T) {
	frac := [5]float64{0.3, 0.4, 0.5, 0.6, 0.7}
	a, err := SimulateTwoTrack(9_000_000, 3_000_000, 0.15, 0.08, frac, frac, DefaultBracketTable())
	require.NoError(t, err)
	b, err := SimulateTwoTrack(9_000_000, 3_000_000, 0.15, 0.08, frac, frac, DefaultBracketTable())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulate_FractionsNotClamped(t *testing.T) {
	years, err := Simulate(domain.SimulationInput{Years: 1, Tracks: []domain.TrackInput{
		{Name: "over", Capital: 100, Rate: 0.1, WithdrawFractions: []float64{2}},
	}}, DefaultBracketTable())
	require.NoError(t, err)
	assert.InDelta(t, 20, years[0].TotalWithdrawal, 1e-9)
	assert.InDelta(t, 90, years[0].TrackA().End, 1e-9)
}

func TestSimulate_DefaultYears(t *testing.T) {
	years, err := Simulate(domain.SimulationInput{Tracks: []domain.TrackInput{{Name: "a", Capital: 1, Rate: 0.1}}}, DefaultBracketTable())
	require.NoError(t, err)
	assert.Len(t, years, DefaultSimulationYears)
}

func TestSimulate_BadBracketTable(t *testing.T) {
	table := domain.BracketTable{{UpperBound: 100, Rate: 0.1}}
	_, err := SimulateTwoTrack(10_000, 0, 0.5, 0, [5]float64{1}, [5]float64{}, table)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "year 1")
}

func TestBlendedRate(t *testing.T) {
	tests := []struct {
		name     string
		funds    []domain.Instrument
		expected float64
	}{
		{"weighted", []domain.Instrument{{Principal: 100, AnnualRate: 0.1}, {Principal: 300, AnnualRate: 0.2}}, 0.175},
		{"single", []domain.Instrument{{Principal: 50, AnnualRate: 0.08}}, 0.08},
		{"none", nil, 0},
		{"zero capital", []domain.Instrument{{Principal: 0, AnnualRate: 0.3}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, BlendedRate(tt.funds), 1e-12)
		})
	}
}

func TestTotalNetWithdrawal(t *testing.T) {
	years := []domain.SimulationYear{{NetWithdrawal: 10}, {NetWithdrawal: 15.5}}
	assert.Equal(t, 25.5, TotalNetWithdrawal(years))
}
