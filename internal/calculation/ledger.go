package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// LedgerPeriods is the number of months in a ledger.
const LedgerPeriods = 12

// DefaultLevyFraction is the share of each month's inflow set aside.
const DefaultLevyFraction = 0.10

// ErrPeriodOutOfRange is returned for an edit outside the ledger.
var ErrPeriodOutOfRange = errors.New("ledger period out of range")

// Ledger owns a year of chained periods. Every period's opening balance is
// the previous period's closing balance; only expenses are edited directly.
type Ledger struct {
	Params  domain.LedgerParams
	Periods []domain.LedgerPeriod
}

// BuildLedger derives twelve periods from a zero opening balance.
// savingsRateAnnual is a fraction; interest accrues monthly at a twelfth of it.
func BuildLedger(totalPeriodicIncome, savingsRateAnnual float64, initialExpenses [LedgerPeriods]float64, levyFraction float64) *Ledger {
	l := &Ledger{
		Params: domain.LedgerParams{
			RecurringIncome:   totalPeriodicIncome,
			SavingsRateAnnual: savingsRateAnnual,
			LevyFraction:      levyFraction,
		},
		Periods: make([]domain.LedgerPeriod, LedgerPeriods),
	}
	for i := range l.Periods {
		l.Periods[i] = domain.LedgerPeriod{
			Index:           i,
			RecurringIncome: totalPeriodicIncome,
			PeriodExpense:   initialExpenses[i],
		}
	}
	recompute(l.Periods, l.Params, 0)
	return l
}

// EditExpense sets one period's expense and re-derives it and every later
// period. Earlier periods are not touched.
func (l *Ledger) EditExpense(index int, newExpense float64) error {
	_, err := EditExpense(l.Periods, l.Params, index, newExpense)
	return err
}

// RecomputeFrom re-derives periods[index:] from periods[index-1].
func (l *Ledger) RecomputeFrom(index int) error {
	if err := checkIndex(l.Periods, index); err != nil {
		return err
	}
	recompute(l.Periods, l.Params, index)
	return nil
}

// Clone returns a copy that shares no memory with l.
func (l *Ledger) Clone() *Ledger {
	periods := make([]domain.LedgerPeriod, len(l.Periods))
	copy(periods, l.Periods)
	return &Ledger{Params: l.Params, Periods: periods}
}

// Closing returns the final closing balance, or 0 for an empty ledger.
func (l *Ledger) Closing() float64 {
	if len(l.Periods) == 0 {
		return 0
	}
	return l.Periods[len(l.Periods)-1].ClosingBalance
}

// TotalIncidentalYield sums the savings interest of every period.
func (l *Ledger) TotalIncidentalYield() float64 {
	total := 0.0
	for _, p := range l.Periods {
		total += p.IncidentalYield
	}
	return total
}

// EditExpense works on a caller-owned slice of periods: it sets the expense
// of periods[index] and recomputes forward in place, returning the slice.
func EditExpense(periods []domain.LedgerPeriod, params domain.LedgerParams, index int, newExpense float64) ([]domain.LedgerPeriod, error) {
	if err := checkIndex(periods, index); err != nil {
		return periods, err
	}
	periods[index].PeriodExpense = newExpense
	recompute(periods, params, index)
	return periods, nil
}

func checkIndex(periods []domain.LedgerPeriod, index int) error {
	if index < 0 || index >= len(periods) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrPeriodOutOfRange, index, len(periods))
	}
	return nil
}

// recompute walks left to right; each period depends only on its own inputs
// and the closing balance before it.
func recompute(periods []domain.LedgerPeriod, params domain.LedgerParams, from int) {
	opening := 0.0
	if from > 0 {
		opening = periods[from-1].ClosingBalance
	}
	monthlyRate := params.SavingsRateAnnual / 12
	for i := from; i < len(periods); i++ {
		p := &periods[i]
		p.Index = i
		p.OpeningBalance = opening

		p.IncidentalYield = 0
		if before := opening + p.RecurringIncome; before > 0 {
			p.IncidentalYield = before * monthlyRate
		}
		p.TotalInflow = p.RecurringIncome + p.IncidentalYield
		p.TotalAvailable = opening + p.TotalInflow

		p.Levy = 0
		if p.TotalInflow > 0 {
			p.Levy = p.TotalInflow * params.LevyFraction
		}
		p.ClosingBalance = p.TotalAvailable - p.PeriodExpense - p.Levy
		opening = p.ClosingBalance
	}
}
