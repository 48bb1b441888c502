package calculation

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// DefaultSimulationYears is the projection horizon when none is given.
const DefaultSimulationYears = 5

// Simulate compounds each track for input.Years years. Every year a track
// earns start*rate, withdraws a fraction of that interest and carries the rest
// into the next year. The combined withdrawal is taxed with brackets.
// A year with no configured fraction withdraws nothing.
func Simulate(input domain.SimulationInput, brackets domain.BracketTable) ([]domain.SimulationYear, error) {
	years := input.Years
	if years <= 0 {
		years = DefaultSimulationYears
	}
	balances := make([]float64, len(input.Tracks))
	for i, track := range input.Tracks {
		balances[i] = track.Capital
	}

	out := make([]domain.SimulationYear, 0, years)
	for y := 1; y <= years; y++ {
		year := domain.SimulationYear{Year: y, Tracks: make([]domain.TrackYear, len(input.Tracks))}
		for i, track := range input.Tracks {
			start := balances[i]
			interest := start * track.Rate
			withdrawal := interest * fractionFor(track.WithdrawFractions, y)
			end := start + interest - withdrawal
			year.Tracks[i] = domain.TrackYear{
				Name:       track.Name,
				Start:      start,
				Interest:   interest,
				Withdrawal: withdrawal,
				End:        end,
			}
			year.TotalWithdrawal += withdrawal
			balances[i] = end
		}
		tax, err := ComputeTax(year.TotalWithdrawal, brackets)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", y, err)
		}
		year.Tax = tax.Tax
		year.NetWithdrawal = year.TotalWithdrawal - year.Tax
		out = append(out, year)
	}
	return out, nil
}

// SimulateTwoTrack is the equity-versus-other projection: two tracks over five
// years with per-year withdrawal fractions.
func SimulateTwoTrack(trackA0, trackB0, rateA, rateB float64, fracA, fracB [DefaultSimulationYears]float64, brackets domain.BracketTable) ([]domain.SimulationYear, error) {
	return Simulate(domain.SimulationInput{
		Years: DefaultSimulationYears,
		Tracks: []domain.TrackInput{
			{Name: "A", Capital: trackA0, Rate: rateA, WithdrawFractions: fracA[:]},
			{Name: "B", Capital: trackB0, Rate: rateB, WithdrawFractions: fracB[:]},
		},
	}, brackets)
}

// BlendedRate is the capital-weighted yield of instruments, or 0 when there
// is no positive capital to weight by.
func BlendedRate(instruments []domain.Instrument) float64 {
	capital, yearly := 0.0, 0.0
	for _, inst := range instruments {
		capital += inst.Principal
		yearly += inst.Principal * inst.AnnualRate
	}
	if !(capital > 0) {
		return 0
	}
	return yearly / capital
}

// TotalNetWithdrawal sums the after-tax withdrawals of a run.
func TotalNetWithdrawal(years []domain.SimulationYear) float64 {
	total := 0.0
	for _, y := range years {
		total += y.NetWithdrawal
	}
	return total
}

func fractionFor(fractions []float64, year int) float64 {
	if year-1 < len(fractions) {
		return fractions[year-1]
	}
	return 0
}
