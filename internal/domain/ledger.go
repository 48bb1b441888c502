package domain

// LedgerPeriod is one month of the cash ledger. PeriodExpense is the only
// field a caller edits; every other field is derived.
type LedgerPeriod struct {
	Index           int     `json:"index"`
	OpeningBalance  float64 `json:"opening_balance"`
	RecurringIncome float64 `json:"recurring_income"`
	IncidentalYield float64 `json:"incidental_yield"`
	TotalInflow     float64 `json:"total_inflow"`
	TotalAvailable  float64 `json:"total_available"`
	PeriodExpense   float64 `json:"period_expense"`
	Levy            float64 `json:"levy"`
	ClosingBalance  float64 `json:"closing_balance"`
}

// LedgerParams are the ledger-wide inputs of the recurrence.
type LedgerParams struct {
	RecurringIncome   float64 `json:"recurring_income"`
	SavingsRateAnnual float64 `json:"savings_rate_annual"`
	LevyFraction      float64 `json:"levy_fraction"`
}

// DepositIncome pairs a fixed deposit (already in base currency) with its yield.
type DepositIncome struct {
	Source     Instrument      `json:"source"`
	Converted  Instrument      `json:"converted"`
	Projection YieldProjection `json:"projection"`
}

// FDAnnualSummary is the year-end tax position of a fixed-deposit household.
type FDAnnualSummary struct {
	GrossFDIncome    float64        `json:"gross_fd_income"`
	SavingsInterest  float64        `json:"savings_interest"`
	AssessableIncome float64        `json:"assessable_income"`
	Tax              float64        `json:"tax"`
	Breakdown        []BracketSlice `json:"breakdown"`
	WithholdingPaid  float64        `json:"withholding_paid"`
	NetTaxPayable    float64        `json:"net_tax_payable"`
	FinalSavings     float64        `json:"final_savings"`
}

// FDIncomeResult is the full fixed-deposit calculation.
type FDIncomeResult struct {
	Deposits        []DepositIncome `json:"deposits"`
	TotalNetMonthly float64         `json:"total_net_monthly"`
	Params          LedgerParams    `json:"params"`
	Ledger          []LedgerPeriod  `json:"ledger"`
	Summary         FDAnnualSummary `json:"summary"`
}
