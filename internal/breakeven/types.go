package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// OptimizationTarget defines which withdrawal percentage the solver moves.
type OptimizationTarget string

const (
	OptimizePrimaryPercent OptimizationTarget = "primary_percent" // flat % of the primary fund's interest
	OptimizeOtherPercent   OptimizationTarget = "other_percent"   // flat % of the other funds' interest
	OptimizeBothPercent    OptimizationTarget = "both_percent"    // the same flat % on both tracks
)

// AllTargets lists every target in display order.
var AllTargets = []OptimizationTarget{OptimizePrimaryPercent, OptimizeOtherPercent, OptimizeBothPercent}

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchIncome     OptimizationGoal = "match_income"     // first-year net withdrawal equals TargetIncome
	GoalPreserveCapital OptimizationGoal = "preserve_capital" // highest % that still ends with TargetCapital
)

// Constraints bound the search and carry the goal's target figure.
// Percentages are 0..100.
type Constraints struct {
	MinPercent *decimal.Decimal `json:"min_percent,omitempty"`
	MaxPercent *decimal.Decimal `json:"max_percent,omitempty"`

	TargetIncome  *decimal.Decimal `json:"target_income,omitempty"`
	TargetCapital *decimal.Decimal `json:"target_capital,omitempty"`
}

// DefaultConstraints searches the full 0..100% range.
func DefaultConstraints() Constraints {
	minPct := decimal.Zero
	maxPct := decimal.NewFromInt(100)
	return Constraints{MinPercent: &minPct, MaxPercent: &maxPct}
}

// bounds returns the search range, defaulting to 0..100.
func (c *Constraints) bounds() (float64, float64) {
	lo, hi := 0.0, 100.0
	if c.MinPercent != nil {
		lo = c.MinPercent.InexactFloat64()
	}
	if c.MaxPercent != nil {
		hi = c.MaxPercent.InexactFloat64()
	}
	return lo, hi
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Config        *domain.Configuration `json:"-"`
	Target        OptimizationTarget    `json:"target"`
	Goal          OptimizationGoal      `json:"goal"`
	Constraints   Constraints           `json:"constraints"`
	MaxIterations int                   `json:"max_iterations"`
	Tolerance     decimal.Decimal       `json:"tolerance"` // currency units, for GoalMatchIncome
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	OptimalPercent decimal.Decimal         `json:"optimal_percent"`
	Plan           domain.WithdrawalPlan   `json:"plan"`
	Result         *domain.PortfolioResult `json:"-"`

	FirstYearNet decimal.Decimal `json:"first_year_net"`
	TotalNet     decimal.Decimal `json:"total_net"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	FinalCapital decimal.Decimal `json:"final_capital"`

	// Against the scenario's own withdrawal plan
	NetDiffFromBase decimal.Decimal `json:"net_diff_from_base"`
	TaxDiffFromBase decimal.Decimal `json:"tax_diff_from_base"`
}

// MultiDimensionalResult contains results when optimizing every target
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	BestByIncome    *OptimizationResult  `json:"best_by_income,omitempty"`
	BestByCapital   *OptimizationResult  `json:"best_by_capital,omitempty"`
	BestByTaxes     *OptimizationResult  `json:"best_by_taxes,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Income match tolerance in currency units
	Resolution    float64         // Smallest percentage step worth distinguishing
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		Resolution:    0.01,
		MaxIterations: 60,
	}
}

// Validate checks the range and that the goal has its target figure.
func (c *Constraints) Validate(goal OptimizationGoal) error {
	lo, hi := c.bounds()
	if lo < 0 || hi > 100 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "percent bounds must be within 0 and 100"}
	}
	if lo > hi {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_percent cannot be greater than max_percent"}
	}
	switch goal {
	case GoalMatchIncome:
		if c.TargetIncome == nil {
			return &BreakEvenError{Operation: "validate_constraints", Message: "target_income is required for match_income"}
		}
	case GoalPreserveCapital:
		if c.TargetCapital == nil {
			return &BreakEvenError{Operation: "validate_constraints", Message: "target_capital is required for preserve_capital"}
		}
		if c.TargetCapital.IsNegative() {
			return &BreakEvenError{Operation: "validate_constraints", Message: "target_capital cannot be negative"}
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
