package server

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Calculation outcomes.
const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

// Response wraps every successful calculation.
type Response struct {
	CalculationID         string      `json:"calculation_id"`
	CalculationStartedAt  string      `json:"calculation_started_at"`
	CalculationDurationMs int64       `json:"calculation_duration_ms"`
	Outcome               string      `json:"outcome"`
	Result                interface{} `json:"result"`
}

// ErrorResponse is returned with a non-2xx status.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// TaxRequest asks for the tax on income. Brackets default to the built-in table.
type TaxRequest struct {
	Income   float64             `json:"income"`
	Brackets domain.BracketTable `json:"brackets,omitempty"`
}

// LoanRequest describes a purchase financed with a level-payment loan.
type LoanRequest struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	DownPayment       float64 `json:"down_payment"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         int     `json:"term_years"`
	Schedule          bool    `json:"schedule"`
}

// YieldInstrument is one holding in a YieldRequest. Rates are percentages.
type YieldInstrument struct {
	Name              string          `json:"name"`
	Principal         float64         `json:"principal"`
	AnnualRatePercent float64         `json:"annual_rate_percent"`
	Currency          domain.Currency `json:"currency"`
}

// YieldRequest projects the monthly income of several instruments.
type YieldRequest struct {
	Instruments        []YieldInstrument `json:"instruments"`
	BaseCurrency       domain.Currency   `json:"base_currency"`
	ExchangeRate       float64           `json:"exchange_rate"`
	TaxExempt          bool              `json:"tax_exempt"`
	WithholdingPercent *float64          `json:"withholding_percent,omitempty"`
	SensitivityRates   []float64         `json:"sensitivity_rates,omitempty"`
}

// YieldResult lists each projection and the combined figures.
type YieldResult struct {
	Deposits        []domain.DepositIncome    `json:"deposits"`
	TotalNetMonthly float64                   `json:"total_net_monthly"`
	BlendedRate     float64                   `json:"blended_rate"`
	Sensitivity     []domain.SensitivityPoint `json:"sensitivity,omitempty"`
}

// LedgerRequest builds a twelve-month ledger. Rates are percentages; a missing
// levy uses the default.
type LedgerRequest struct {
	RecurringIncome    float64   `json:"recurring_income"`
	SavingsRatePercent float64   `json:"savings_rate_percent"`
	LevyPercent        *float64  `json:"levy_percent,omitempty"`
	Expenses           []float64 `json:"expenses"`
}

// LedgerEditRequest edits one period of a ledger the client holds.
type LedgerEditRequest struct {
	Params  domain.LedgerParams   `json:"params"`
	Periods []domain.LedgerPeriod `json:"periods"`
	Index   int                   `json:"index"`
	Expense float64               `json:"expense"`
}

// LedgerResult is a ledger and its closing balance.
type LedgerResult struct {
	Params  domain.LedgerParams   `json:"params"`
	Periods []domain.LedgerPeriod `json:"periods"`
	Closing float64               `json:"closing"`
}

// SimulateRequest runs the multi-year projection.
type SimulateRequest struct {
	domain.SimulationInput
	Brackets domain.BracketTable `json:"brackets,omitempty"`
}

// SimulateResult is the yearly projection and its after-tax total.
type SimulateResult struct {
	Years              []domain.SimulationYear `json:"years"`
	TotalNetWithdrawal float64                 `json:"total_net_withdrawal"`
}

// VersionResult reports the running build.
type VersionResult struct {
	Version string `json:"version"`
}
