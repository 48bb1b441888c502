package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// ErrLedgerIncomplete is returned when an annual summary gets a partial year.
var ErrLedgerIncomplete = errors.New("ledger must cover twelve periods")

// FDIncomeInput is everything the fixed-deposit calculator needs.
type FDIncomeInput struct {
	Deposits          []domain.Instrument
	BaseCurrency      domain.Currency
	ExchangeRate      float64
	Withholding       float64
	SavingsRateAnnual float64
	LevyFraction      float64
	Expenses          [LedgerPeriods]float64
	Schedule          domain.BracketTable
}

// SummarizeFDYear computes the year-end tax position: deposit interest and
// savings interest are assessed together, tax withheld during the year is
// credited, and whatever remains payable comes out of the final balance.
// A negative NetTaxPayable is a refund.
func SummarizeFDYear(deposits []domain.YieldProjection, periods []domain.LedgerPeriod, schedule domain.BracketTable) (domain.FDAnnualSummary, error) {
	if len(periods) != LedgerPeriods {
		return domain.FDAnnualSummary{}, fmt.Errorf("%w: got %d", ErrLedgerIncomplete, len(periods))
	}
	var s domain.FDAnnualSummary
	for _, d := range deposits {
		s.GrossFDIncome += d.GrossMonthly * 12
		s.WithholdingPaid += d.Withheld * 12
	}
	for _, p := range periods {
		s.SavingsInterest += p.IncidentalYield
	}
	s.AssessableIncome = s.GrossFDIncome + s.SavingsInterest

	tax, err := ComputeTax(s.AssessableIncome, schedule)
	if err != nil {
		return domain.FDAnnualSummary{}, err
	}
	s.Tax = tax.Tax
	s.Breakdown = tax.Breakdown
	s.NetTaxPayable = s.Tax - s.WithholdingPaid
	s.FinalSavings = periods[LedgerPeriods-1].ClosingBalance - s.NetTaxPayable
	return s, nil
}

// CalculateFDIncome converts deposits to the base currency, projects their
// monthly income, builds the savings ledger from the combined net income and
// summarizes the tax year.
func CalculateFDIncome(in FDIncomeInput) (*domain.FDIncomeResult, *Ledger, error) {
	result := &domain.FDIncomeResult{Deposits: make([]domain.DepositIncome, 0, len(in.Deposits))}
	projections := make([]domain.YieldProjection, 0, len(in.Deposits))
	for _, d := range in.Deposits {
		converted := ConvertToBase(d, in.BaseCurrency, in.ExchangeRate)
		p := Project(converted, in.Withholding)
		result.Deposits = append(result.Deposits, domain.DepositIncome{Source: d, Converted: converted, Projection: p})
		projections = append(projections, p)
		result.TotalNetMonthly += p.Net
	}

	ledger := BuildLedger(result.TotalNetMonthly, in.SavingsRateAnnual, in.Expenses, in.LevyFraction)
	summary, err := SummarizeFDYear(projections, ledger.Periods, in.Schedule)
	if err != nil {
		return nil, nil, err
	}
	result.Params = ledger.Params
	result.Ledger = ledger.Periods
	result.Summary = summary
	return result, ledger, nil
}

// ResummarizeFD refreshes the ledger and summary of a result after the ledger
// has been edited.
func ResummarizeFD(result *domain.FDIncomeResult, ledger *Ledger, schedule domain.BracketTable) error {
	projections := make([]domain.YieldProjection, len(result.Deposits))
	for i, d := range result.Deposits {
		projections[i] = d.Projection
	}
	summary, err := SummarizeFDYear(projections, ledger.Periods, schedule)
	if err != nil {
		return err
	}
	result.Ledger = ledger.Periods
	result.Summary = summary
	return nil
}
