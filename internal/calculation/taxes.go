package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/pkg/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets are inclusive ceilings walked in ascending order; income above a
//    ceiling spills into the next bracket. The last bracket must be Unbounded.
//
// 2. The default table is the one the household calculators apply to fund
//    withdrawals: 1.2M tax free, then 6% steps of 500k up to 36%.
//
// 3. The fixed-deposit year-end summary uses a separate relief + slab schedule
//    (1.8M relief, 1M@6%, 500k@18/24/30%, rest 36%), converted to a bracket
//    table by BracketsFromSlabs.

// ConfigurationError reports a bracket table that cannot price an income.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid tax configuration: " + e.Reason
}

// DefaultBracketTable returns the progressive schedule used for withdrawals.
func DefaultBracketTable() domain.BracketTable {
	return domain.BracketTable{
		{UpperBound: 1_200_000, Rate: 0},
		{UpperBound: 1_700_000, Rate: 0.06},
		{UpperBound: 2_200_000, Rate: 0.12},
		{UpperBound: 2_700_000, Rate: 0.18},
		{UpperBound: 3_200_000, Rate: 0.24},
		{UpperBound: 3_700_000, Rate: 0.30},
		{UpperBound: domain.Unbounded, Rate: 0.36},
	}
}

// DefaultFDRelief is the personal relief of the fixed-deposit summary.
const DefaultFDRelief = 1_800_000

// DefaultFDSlabs returns the width-based slabs applied after DefaultFDRelief.
func DefaultFDSlabs() []domain.Slab {
	return []domain.Slab{
		{Width: 1_000_000, Rate: 0.06},
		{Width: 500_000, Rate: 0.18},
		{Width: 500_000, Rate: 0.24},
		{Width: 500_000, Rate: 0.30},
		{Width: domain.Unbounded, Rate: 0.36},
	}
}

// BracketsFromSlabs folds a tax-free relief and width-based slabs into an
// equivalent bracket table. Slabs after an Unbounded width are ignored.
func BracketsFromSlabs(relief float64, slabs []domain.Slab) domain.BracketTable {
	table := make(domain.BracketTable, 0, len(slabs)+1)
	ceiling := math.Max(0, relief)
	if ceiling > 0 {
		table = append(table, domain.TaxBracket{UpperBound: domain.Bound(ceiling), Rate: 0})
	}
	for _, s := range slabs {
		if s.Width.IsUnbounded() {
			table = append(table, domain.TaxBracket{UpperBound: domain.Unbounded, Rate: s.Rate})
			break
		}
		ceiling += s.Width.Float64()
		table = append(table, domain.TaxBracket{UpperBound: domain.Bound(ceiling), Rate: s.Rate})
	}
	return table
}

// ValidateBrackets checks that a table is non-empty, starts at or above zero, strictly ascending,
// has rates within [0,1] and ends with exactly one Unbounded ceiling.
func ValidateBrackets(table domain.BracketTable) error {
	if len(table) == 0 {
		return &ConfigurationError{Reason: "bracket table is empty"}
	}
	prev := math.Inf(-1)
	for i, b := range table {
		upper := b.UpperBound.Float64()
		if math.IsNaN(upper) || math.IsNaN(b.Rate) {
			return &ConfigurationError{Reason: fmt.Sprintf("bracket %d has a NaN bound or rate", i)}
		}
		if i == 0 && upper < 0 {
			return &ConfigurationError{Reason: fmt.Sprintf("bracket 0 upper bound %s is below zero", b.UpperBound)}
		}
		if b.Rate < 0 || b.Rate > 1 {
			return &ConfigurationError{Reason: fmt.Sprintf("bracket %d rate %.4f outside [0,1]", i, b.Rate)}
		}
		if upper <= prev {
			return &ConfigurationError{Reason: fmt.Sprintf("bracket %d upper bound %s is not above %s", i, b.UpperBound, domain.Bound(prev))}
		}
		if b.UpperBound.IsUnbounded() && i != len(table)-1 {
			return &ConfigurationError{Reason: fmt.Sprintf("bracket %d is unbounded but not last", i)}
		}
		prev = upper
	}
	if !table[len(table)-1].UpperBound.IsUnbounded() {
		return &ConfigurationError{Reason: "last bracket must be unbounded"}
	}
	return nil
}

// BracketWarnings lists non-fatal oddities, currently rates that decrease
// from one bracket to the next.
func BracketWarnings(table domain.BracketTable) []string {
	var warnings []string
	for i := 1; i < len(table); i++ {
		if table[i].Rate < table[i-1].Rate {
			warnings = append(warnings, fmt.Sprintf("bracket %d rate %.4f is below the previous rate %.4f", i, table[i].Rate, table[i-1].Rate))
		}
	}
	return warnings
}

// ComputeTax applies the progressive schedule to income. Negative income is
// untaxed; NaN income yields NaN tax. A table that runs out of brackets
// before covering the income is a *ConfigurationError.
func ComputeTax(income float64, brackets domain.BracketTable) (domain.TaxResult, error) {
	result := domain.TaxResult{Income: income}
	if len(brackets) == 0 {
		return result, &ConfigurationError{Reason: "bracket table is empty"}
	}
	if first := brackets[0].UpperBound; first.Float64() < 0 {
		return result, &ConfigurationError{Reason: fmt.Sprintf("bracket 0 upper bound %s is below zero", first)}
	}
	if math.IsNaN(income) {
		result.Tax = math.NaN()
		return result, nil
	}

	lower := 0.0
	for _, b := range brackets {
		upper := b.UpperBound.Float64()
		taxable := math.Max(0, math.Min(income, upper)-lower)
		if taxable > 0 {
			part := taxable * b.Rate
			result.Tax += part
			result.Breakdown = append(result.Breakdown, domain.BracketSlice{
				Range:          bracketRange(lower, b.UpperBound),
				Lower:          lower,
				Upper:          b.UpperBound,
				Rate:           b.Rate,
				TaxableInRange: taxable,
				TaxInRange:     part,
			})
		}
		if income <= upper {
			return result, nil
		}
		lower = upper
	}
	return result, &ConfigurationError{Reason: fmt.Sprintf("no bracket covers income %s (highest bound %s)",
		decimal.Grouped(income, 2), brackets[len(brackets)-1].UpperBound)}
}

func bracketRange(lower float64, upper domain.Bound) string {
	if upper.IsUnbounded() {
		return decimal.Grouped(lower, 0) + " - ∞"
	}
	return decimal.Grouped(lower, 0) + " - " + decimal.Grouped(upper.Float64(), 0)
}
