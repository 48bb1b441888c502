package calculation

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// CalculationEngine runs a scenario file through every calculator.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Log intermediate figures at debug level
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// TaxTable returns the configured bracket table or the default one.
func TaxTable(cfg *domain.Configuration) domain.BracketTable {
	if cfg != nil && cfg.Tax != nil && len(cfg.Tax.Brackets) > 0 {
		return cfg.Tax.Brackets
	}
	return DefaultBracketTable()
}

// Run calculates every section present in cfg.
func (ce *CalculationEngine) Run(cfg *domain.Configuration) (*domain.CalculationResults, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	brackets := TaxTable(cfg)
	if err := ValidateBrackets(brackets); err != nil {
		return nil, err
	}
	results := &domain.CalculationResults{Name: cfg.Name, Warnings: BracketWarnings(brackets)}
	for _, w := range results.Warnings {
		ce.Logger.Warnf("tax table: %s", w)
	}

	if cfg.Tax != nil {
		for _, q := range cfg.Tax.Queries {
			res, err := ComputeTax(q.Float64(), brackets)
			if err != nil {
				return nil, fmt.Errorf("tax query %s: %w", q.String(), err)
			}
			results.TaxQueries = append(results.TaxQueries, res)
		}
	}

	for _, loan := range cfg.Loans {
		res := SummarizeLoan(loan)
		if res.Installment == 0 {
			ce.Logger.Warnf("loan %q has no installment (principal %.2f, rate %.2f%%, term %d)", loan.Name, res.Principal, loan.AnnualRatePercent, loan.TermYears)
		}
		if ce.Debug {
			ce.Logger.Debugf("loan %q: installment %.2f, total interest %.2f", loan.Name, res.Installment, res.TotalInterest)
		}
		results.Loans = append(results.Loans, res)
	}

	if cfg.FixedDeposits != nil {
		fd, _, err := ce.RunFixedDeposits(cfg.FixedDeposits)
		if err != nil {
			return nil, fmt.Errorf("fixed deposits: %w", err)
		}
		results.FixedDeposits = fd
	}

	if cfg.Portfolio != nil {
		pr, err := ce.RunPortfolio(cfg.Portfolio, cfg.Portfolio.Withdrawals, brackets)
		if err != nil {
			return nil, fmt.Errorf("portfolio: %w", err)
		}
		results.Portfolio = pr
	}

	ce.Logger.Infof("calculated %q: %d tax queries, %d loans, fixed deposits=%t, portfolio=%t",
		cfg.Name, len(results.TaxQueries), len(results.Loans), results.FixedDeposits != nil, results.Portfolio != nil)
	return results, nil
}

// FDInput converts the fixed-deposit section into engine inputs.
func FDInput(cfg *domain.FixedDepositConfig) FDIncomeInput {
	in := FDIncomeInput{
		BaseCurrency:      cfg.BaseCurrency,
		ExchangeRate:      cfg.ExchangeRate,
		Withholding:       WithholdingFor(cfg.TaxExempt),
		SavingsRateAnnual: cfg.SavingsRatePercent / 100,
		LevyFraction:      DefaultLevyFraction,
	}
	if in.BaseCurrency == "" {
		in.BaseCurrency = domain.LKR
	}
	if in.ExchangeRate == 0 {
		in.ExchangeRate = DefaultExchangeRate
	}
	if cfg.WithholdingPercent != nil && !cfg.TaxExempt {
		in.Withholding = *cfg.WithholdingPercent / 100
	}
	if cfg.LevyPercent != nil {
		in.LevyFraction = *cfg.LevyPercent / 100
	}
	for i := range in.Expenses {
		in.Expenses[i] = cfg.MonthlyExpense.Float64()
		if v, ok := cfg.ExpenseOverrides[i+1]; ok {
			in.Expenses[i] = v.Float64()
		}
	}
	relief := float64(DefaultFDRelief)
	if cfg.Relief != nil {
		relief = cfg.Relief.Float64()
	}
	slabs := cfg.Slabs
	if len(slabs) == 0 {
		slabs = DefaultFDSlabs()
	}
	in.Schedule = BracketsFromSlabs(relief, slabs)
	for _, d := range cfg.Deposits {
		in.Deposits = append(in.Deposits, domain.Instrument{
			Name:       d.Name,
			Principal:  d.Principal.Float64(),
			AnnualRate: d.AnnualRatePercent / 100,
			Currency:   d.Currency,
		})
	}
	return in
}

// RunFixedDeposits calculates deposit income, the savings ledger and the
// annual summary. The ledger is returned for interactive editing.
func (ce *CalculationEngine) RunFixedDeposits(cfg *domain.FixedDepositConfig) (*domain.FDIncomeResult, *Ledger, error) {
	in := FDInput(cfg)
	if err := ValidateBrackets(in.Schedule); err != nil {
		return nil, nil, err
	}
	result, ledger, err := CalculateFDIncome(in)
	if err != nil {
		return nil, nil, err
	}
	if ce.Debug {
		for _, d := range result.Deposits {
			ce.Logger.Debugf("deposit %q: principal %.2f %s, net monthly %.2f", d.Source.Name, d.Converted.Principal, d.Converted.Currency, d.Projection.Net)
		}
		ce.Logger.Debugf("ledger closing %.2f, net tax payable %.2f", ledger.Closing(), result.Summary.NetTaxPayable)
	}
	return result, ledger, nil
}

// PortfolioFunds converts the configured funds into instruments.
func PortfolioFunds(cfg *domain.PortfolioConfig) []domain.Instrument {
	funds := make([]domain.Instrument, 0, len(cfg.Funds))
	for _, f := range cfg.Funds {
		cur := f.Currency
		if cur == "" {
			cur = baseCurrency(cfg)
		}
		funds = append(funds, domain.Instrument{
			Name:       f.Name,
			Principal:  f.Capital.Float64(),
			AnnualRate: f.AnnualRatePercent / 100,
			Currency:   cur,
		})
	}
	return funds
}

// RunPortfolio summarizes the funds and projects them under plan.
func (ce *CalculationEngine) RunPortfolio(cfg *domain.PortfolioConfig, plan domain.WithdrawalPlan, brackets domain.BracketTable) (*domain.PortfolioResult, error) {
	funds := PortfolioFunds(cfg)
	input, err := SimulationTracks(funds, cfg.PrimaryFund, baseCurrency(cfg), plan, cfg.Years)
	if err != nil {
		return nil, err
	}
	years, err := Simulate(input, brackets)
	if err != nil {
		return nil, err
	}
	if ce.Debug {
		for _, y := range years {
			ce.Logger.Debugf("year %d: withdrawal %.2f, tax %.2f, net %.2f", y.Year, y.TotalWithdrawal, y.Tax, y.NetWithdrawal)
		}
	}
	return &domain.PortfolioResult{Summary: SummarizePortfolio(funds), Input: input, Simulation: years}, nil
}

// PortfolioInput builds the two-track projection input of cfg under plan.
func PortfolioInput(cfg *domain.PortfolioConfig, plan domain.WithdrawalPlan) (domain.SimulationInput, error) {
	return SimulationTracks(PortfolioFunds(cfg), cfg.PrimaryFund, baseCurrency(cfg), plan, cfg.Years)
}

func baseCurrency(cfg *domain.PortfolioConfig) domain.Currency {
	if cfg.BaseCurrency == "" {
		return domain.LKR
	}
	return cfg.BaseCurrency
}
