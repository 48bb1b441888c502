package domain

// Configuration is a scenario file. Every section is optional; a run
// calculates whatever sections are present.
type Configuration struct {
	Name          string              `yaml:"name" json:"name"`
	Tax           *TaxConfig          `yaml:"tax,omitempty" json:"tax,omitempty"`
	Loans         []LoanConfig        `yaml:"loans,omitempty" json:"loans,omitempty"`
	FixedDeposits *FixedDepositConfig `yaml:"fixed_deposits,omitempty" json:"fixed_deposits,omitempty"`
	Portfolio     *PortfolioConfig    `yaml:"portfolio,omitempty" json:"portfolio,omitempty"`
}

// TaxConfig overrides the bracket table and lists incomes to price.
type TaxConfig struct {
	Brackets BracketTable `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	Queries  []Amount     `yaml:"queries,omitempty" json:"queries,omitempty"`
}

// LoanConfig is a financed purchase.
type LoanConfig struct {
	Name              string  `yaml:"name" json:"name"`
	Price             Amount  `yaml:"price" json:"price"`
	DownPayment       Amount  `yaml:"down_payment" json:"down_payment"`
	AnnualRatePercent float64 `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TermYears         int     `yaml:"term_years" json:"term_years"`
	Schedule          bool    `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

// DepositConfig is one fixed deposit.
type DepositConfig struct {
	Name              string   `yaml:"name" json:"name"`
	Currency          Currency `yaml:"currency" json:"currency"`
	Principal         Amount   `yaml:"principal" json:"principal"`
	AnnualRatePercent float64  `yaml:"annual_rate_percent" json:"annual_rate_percent"`
}

// FixedDepositConfig drives the deposit income, the monthly ledger and the
// annual tax summary. ExpenseOverrides is keyed by month number 1..12.
type FixedDepositConfig struct {
	BaseCurrency       Currency        `yaml:"base_currency,omitempty" json:"base_currency,omitempty"`
	ExchangeRate       float64         `yaml:"exchange_rate" json:"exchange_rate"`
	TaxExempt          bool            `yaml:"tax_exempt" json:"tax_exempt"`
	WithholdingPercent *float64        `yaml:"withholding_percent,omitempty" json:"withholding_percent,omitempty"`
	SavingsRatePercent float64         `yaml:"savings_rate_percent" json:"savings_rate_percent"`
	LevyPercent        *float64        `yaml:"levy_percent,omitempty" json:"levy_percent,omitempty"`
	MonthlyExpense     Amount          `yaml:"monthly_expense" json:"monthly_expense"`
	ExpenseOverrides   map[int]Amount  `yaml:"expense_overrides,omitempty" json:"expense_overrides,omitempty"`
	Relief             *Amount         `yaml:"relief,omitempty" json:"relief,omitempty"`
	Slabs              []Slab          `yaml:"slabs,omitempty" json:"slabs,omitempty"`
	Deposits           []DepositConfig `yaml:"deposits" json:"deposits"`
}

// FundConfig is one unit-trust or wealth fund holding.
type FundConfig struct {
	Name              string   `yaml:"name" json:"name"`
	Currency          Currency `yaml:"currency" json:"currency"`
	Capital           Amount   `yaml:"capital" json:"capital"`
	AnnualRatePercent float64  `yaml:"annual_rate_percent" json:"annual_rate_percent"`
}

// WithdrawalPlan holds per-year withdrawal percentages of each track's interest.
type WithdrawalPlan struct {
	Primary []float64 `yaml:"primary" json:"primary"`
	Other   []float64 `yaml:"other" json:"other"`
}

// PortfolioConfig drives the fund summary and the multi-year projection.
// Plans are alternative withdrawal plans used by comparisons.
type PortfolioConfig struct {
	BaseCurrency Currency                  `yaml:"base_currency,omitempty" json:"base_currency,omitempty"`
	PrimaryFund  string                    `yaml:"primary_fund" json:"primary_fund"`
	Years        int                       `yaml:"years,omitempty" json:"years,omitempty"`
	Funds        []FundConfig              `yaml:"funds" json:"funds"`
	Withdrawals  WithdrawalPlan            `yaml:"withdrawals" json:"withdrawals"`
	Plans        map[string]WithdrawalPlan `yaml:"plans,omitempty" json:"plans,omitempty"`
}

// CalculationResults holds the output of every section that was calculated.
type CalculationResults struct {
	Name          string           `json:"name"`
	TaxQueries    []TaxResult      `json:"tax_queries,omitempty"`
	Loans         []LoanResult     `json:"loans,omitempty"`
	FixedDeposits *FDIncomeResult  `json:"fixed_deposits,omitempty"`
	Portfolio     *PortfolioResult `json:"portfolio,omitempty"`
	Warnings      []string         `json:"warnings,omitempty"`
}
