package server

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
)

const maxSimulationYears = 50

func handleTax(body []byte) (string, interface{}, interface{}, error) {
	var req TaxRequest
	if err := decode(body, &req); err != nil {
		return "", nil, nil, err
	}
	table, err := brackets(req.Brackets)
	if err != nil {
		return "", nil, nil, err
	}
	res, err := calculation.ComputeTax(req.Income, table)
	if err != nil {
		return "", nil, nil, err
	}
	return output.CalculatorTax, req, res, nil
}

func handleLoan(body []byte) (string, interface{}, interface{}, error) {
	var req LoanRequest
	if err := decode(body, &req); err != nil {
		return "", nil, nil, err
	}
	if req.TermYears < 0 {
		return "", nil, nil, errors.New("term_years must not be negative")
	}
	res := calculation.SummarizeLoan(domain.LoanConfig{
		Name:              req.Name,
		Price:             domain.NewAmount(req.Price),
		DownPayment:       domain.NewAmount(req.DownPayment),
		AnnualRatePercent: req.AnnualRatePercent,
		TermYears:         req.TermYears,
		Schedule:          req.Schedule,
	})
	return output.CalculatorLoan, req, res, nil
}

func handleYield(body []byte) (string, interface{}, interface{}, error) {
	var req YieldRequest
	if err := decode(body, &req); err != nil {
		return "", nil, nil, err
	}
	if len(req.Instruments) == 0 {
		return "", nil, nil, errors.New("at least one instrument is required")
	}
	base := req.BaseCurrency
	if base == "" {
		base = domain.LKR
	}
	rate := req.ExchangeRate
	if rate == 0 {
		rate = calculation.DefaultExchangeRate
	}
	withholding := calculation.WithholdingFor(req.TaxExempt)
	if req.WithholdingPercent != nil && !req.TaxExempt {
		withholding = *req.WithholdingPercent / 100
	}

	res := YieldResult{}
	converted := make([]domain.Instrument, 0, len(req.Instruments))
	for _, in := range req.Instruments {
		cur := in.Currency
		if cur != "" {
			parsed, err := domain.ParseCurrency(string(cur))
			if err != nil {
				return "", nil, nil, err
			}
			cur = parsed
		}
		src := domain.Instrument{Name: in.Name, Principal: in.Principal, AnnualRate: in.AnnualRatePercent / 100, Currency: cur}
		conv := calculation.ConvertToBase(src, base, rate)
		p := calculation.Project(conv, withholding)
		res.Deposits = append(res.Deposits, domain.DepositIncome{Source: src, Converted: conv, Projection: p})
		res.TotalNetMonthly += p.Net
		converted = append(converted, conv)
	}
	res.BlendedRate = calculation.BlendedRate(converted)
	if len(req.SensitivityRates) > 0 {
		principal := 0.0
		for _, c := range converted {
			principal += c.Principal
		}
		fractions := make([]float64, len(req.SensitivityRates))
		for i, r := range req.SensitivityRates {
			fractions[i] = r / 100
		}
		res.Sensitivity = calculation.RateSensitivity(principal, fractions)
	}
	return output.CalculatorYield, req, res, nil
}

func handleLedger(body []byte) (string, interface{}, interface{}, error) {
	var req LedgerRequest
	if err := decode(body, &req); err != nil {
		return "", nil, nil, err
	}
	if len(req.Expenses) > calculation.LedgerPeriods {
		return "", nil, nil, fmt.Errorf("expenses cover %d periods, at most %d allowed", len(req.Expenses), calculation.LedgerPeriods)
	}
	var expenses [calculation.LedgerPeriods]float64
	copy(expenses[:], req.Expenses)
	levy := calculation.DefaultLevyFraction
	if req.LevyPercent != nil {
		levy = *req.LevyPercent / 100
	}
	ledger := calculation.BuildLedger(req.RecurringIncome, req.SavingsRatePercent/100, expenses, levy)
	return output.CalculatorLedger, req, LedgerResult{Params: ledger.Params, Periods: ledger.Periods, Closing: ledger.Closing()}, nil
}

func handleLedgerEdit(body []byte) (string, interface{}, interface{}, error) {
	var req LedgerEditRequest
	if err := decode(body, &req); err != nil {
		return "", nil, nil, err
	}
	ledger := (&calculation.Ledger{Params: req.Params, Periods: req.Periods}).Clone()
	if err := ledger.EditExpense(req.Index, req.Expense); err != nil {
		return "", nil, nil, err
	}
	return output.CalculatorLedger, req, LedgerResult{Params: ledger.Params, Periods: ledger.Periods, Closing: ledger.Closing()}, nil
}

func handleSimulate(body []byte) (string, interface{}, interface{}, error) {
	var req SimulateRequest
	if err := decode(body, &req); err != nil {
		return "", nil, nil, err
	}
	if len(req.Tracks) == 0 {
		return "", nil, nil, errors.New("at least one track is required")
	}
	if req.Years > maxSimulationYears {
		return "", nil, nil, fmt.Errorf("years must be at most %d", maxSimulationYears)
	}
	table, err := brackets(req.Brackets)
	if err != nil {
		return "", nil, nil, err
	}
	years, err := calculation.Simulate(req.SimulationInput, table)
	if err != nil {
		return "", nil, nil, err
	}
	return output.CalculatorSimulator, req, SimulateResult{Years: years, TotalNetWithdrawal: calculation.TotalNetWithdrawal(years)}, nil
}
