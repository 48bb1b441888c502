package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/compare"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Solver finds flat withdrawal percentages that meet an income or capital
// goal. Year-one net income rises and final capital falls as the percentage
// grows, so both goals are solved by bisection.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Config == nil || req.Config.Portfolio == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "configuration has no portfolio"}
	}
	if err := req.Constraints.Validate(req.Goal); err != nil {
		return nil, err
	}
	switch req.Target {
	case OptimizePrimaryPercent, OptimizeOtherPercent, OptimizeBothPercent:
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	base, err := s.run(req.Config, req.Config.Portfolio.Withdrawals)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to calculate scenario plan", Cause: err}
	}

	var result *OptimizationResult
	switch req.Goal {
	case GoalMatchIncome:
		result, err = s.matchIncome(ctx, req)
	case GoalPreserveCapital:
		result, err = s.preserveCapital(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization goal: %s", req.Goal),
		}
	}
	if err != nil {
		return nil, err
	}
	result.NetDiffFromBase = result.TotalNet.Sub(base.TotalNet)
	result.TaxDiffFromBase = result.TotalTax.Sub(base.TotalTax)
	return result, nil
}

// matchIncome bisects for the percentage whose first-year net withdrawal is
// within tolerance of the target.
func (s *Solver) matchIncome(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	target := *req.Constraints.TargetIncome
	lo, hi := req.Constraints.bounds()
	iterations := 0

	atMax, err := s.evaluate(req, hi, &iterations)
	if err != nil {
		return nil, err
	}
	if atMax.FirstYearNet.Sub(target).LessThan(req.Tolerance.Neg()) {
		atMax.ConvergenceInfo = fmt.Sprintf("Target income is above the %s%% maximum", atMax.OptimalPercent.StringFixed(2))
		return atMax, nil
	}
	atMin, err := s.evaluate(req, lo, &iterations)
	if err != nil {
		return nil, err
	}
	if atMin.FirstYearNet.Sub(target).GreaterThan(req.Tolerance) {
		atMin.ConvergenceInfo = fmt.Sprintf("Target income is below the %s%% minimum", atMin.OptimalPercent.StringFixed(2))
		return atMin, nil
	}

	var last *OptimizationResult
	for iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mid := (lo + hi) / 2
		result, err := s.evaluate(req, mid, &iterations)
		if err != nil {
			return nil, err
		}
		last = result

		diff := result.FirstYearNet.Sub(target)
		if diff.Abs().LessThan(req.Tolerance) {
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("Converged to target income within %s", req.Tolerance.StringFixed(0))
			return result, nil
		}
		if diff.IsNegative() {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < s.resolution() {
			result.Success = true
			result.ConvergenceInfo = "Binary search converged"
			return result, nil
		}
	}

	if last == nil {
		return nil, &BreakEvenError{
			Operation: "optimize_match_income",
			Message:   fmt.Sprintf("optimization did not converge after %d iterations", req.MaxIterations),
		}
	}
	last.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return last, nil
}

// preserveCapital bisects for the highest percentage whose final capital is
// still at least the target.
func (s *Solver) preserveCapital(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	target := *req.Constraints.TargetCapital
	lo, hi := req.Constraints.bounds()
	iterations := 0

	best, err := s.evaluate(req, lo, &iterations)
	if err != nil {
		return nil, err
	}
	if best.FinalCapital.LessThan(target) {
		best.ConvergenceInfo = fmt.Sprintf("Target capital is out of reach even at %s%%", best.OptimalPercent.StringFixed(2))
		return best, nil
	}
	atMax, err := s.evaluate(req, hi, &iterations)
	if err != nil {
		return nil, err
	}
	if atMax.FinalCapital.GreaterThanOrEqual(target) {
		atMax.Success = true
		atMax.ConvergenceInfo = "Target capital holds at the maximum percentage"
		return atMax, nil
	}

	for hi-lo >= s.resolution() {
		if iterations >= req.MaxIterations {
			best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
			return best, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mid := (lo + hi) / 2
		result, err := s.evaluate(req, mid, &iterations)
		if err != nil {
			return nil, err
		}
		if result.FinalCapital.GreaterThanOrEqual(target) {
			lo, best = mid, result
		} else {
			hi = mid
		}
	}
	best.Success = true
	best.ConvergenceInfo = "Binary search converged"
	return best, nil
}

func (s *Solver) resolution() float64 {
	if s.Options.Resolution > 0 {
		return s.Options.Resolution
	}
	return DefaultSolverOptions().Resolution
}

// evaluate projects the plan for pct and fills the result metrics.
func (s *Solver) evaluate(req OptimizationRequest, pct float64, iterations *int) (*OptimizationResult, error) {
	*iterations++
	plan := PlanFor(req.Config.Portfolio, req.Target, pct)
	metrics, err := s.run(req.Config, plan)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "optimize_" + string(req.Goal),
			Message:   fmt.Sprintf("failed to calculate plan at %.2f%%", pct),
			Cause:     err,
		}
	}
	return &OptimizationResult{
		Request:        req,
		Iterations:     *iterations,
		OptimalPercent: decimal.NewFromFloat(pct).Round(2),
		Plan:           plan,
		Result:         metrics.Result,
		FirstYearNet:   metrics.FirstYearNet,
		TotalNet:       metrics.TotalNet,
		TotalTax:       metrics.TotalTax,
		FinalCapital:   metrics.FinalCapital,
	}, nil
}

func (s *Solver) run(cfg *domain.Configuration, plan domain.WithdrawalPlan) (compare.ComparisonResult, error) {
	result, err := s.CalcEngine.RunPortfolio(cfg.Portfolio, plan, calculation.TaxTable(cfg))
	if err != nil {
		return compare.ComparisonResult{}, err
	}
	return compare.NewMetricsCalculator().CalculateMetrics("", result), nil
}

// PlanFor replaces the target track(s) of the scenario's withdrawal plan with
// a flat percentage for every projected year.
func PlanFor(p *domain.PortfolioConfig, target OptimizationTarget, pct float64) domain.WithdrawalPlan {
	years := p.Years
	if years <= 0 {
		years = calculation.DefaultSimulationYears
	}
	flat := make([]float64, years)
	for i := range flat {
		flat[i] = math.Round(pct*1e6) / 1e6
	}
	plan := p.Withdrawals
	switch target {
	case OptimizePrimaryPercent:
		plan.Primary = flat
	case OptimizeOtherPercent:
		plan.Other = flat
	case OptimizeBothPercent:
		plan.Primary = flat
		plan.Other = append([]float64(nil), flat...)
	}
	return plan
}
