package calculation

import "github.com/rgehrsitz/fincalc/internal/domain"

// DefaultWithholdingFraction is the advance income tax withheld on deposit interest.
const DefaultWithholdingFraction = 0.10

// DefaultExchangeRate converts AED deposits into LKR when none is configured.
const DefaultExchangeRate = 82

// Project computes gross and net periodic income for an instrument.
func Project(inst domain.Instrument, withholdingFraction float64) domain.YieldProjection {
	annual := inst.Principal * inst.AnnualRate
	monthly := annual / 12
	withheld := monthly * withholdingFraction
	return domain.YieldProjection{
		GrossAnnual:  annual,
		GrossMonthly: monthly,
		Withheld:     withheld,
		Net:          monthly - withheld,
	}
}

// WithholdingFor returns the withholding fraction for a taxpayer.
func WithholdingFor(exempt bool) float64 {
	if exempt {
		return 0
	}
	return DefaultWithholdingFraction
}

// ConvertToBase restates a foreign-currency instrument in the base currency
// using a caller-supplied rate (base units per foreign unit).
func ConvertToBase(inst domain.Instrument, base domain.Currency, exchangeRate float64) domain.Instrument {
	if inst.Currency == base || inst.Currency == "" {
		inst.Currency = base
		return inst
	}
	inst.Principal *= exchangeRate
	inst.Currency = base
	return inst
}

// RateSensitivity returns the monthly income of principal at each rate.
func RateSensitivity(principal float64, rates []float64) []domain.SensitivityPoint {
	points := make([]domain.SensitivityPoint, len(rates))
	for i, rate := range rates {
		points[i] = domain.SensitivityPoint{Rate: rate, Monthly: principal * rate / 12}
	}
	return points
}
