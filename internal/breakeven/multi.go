package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// OptimizeAllTargets solves goal for every target and compares the outcomes.
// Targets that fail or do not converge are left out.
func (s *Solver) OptimizeAllTargets(
	ctx context.Context,
	config *domain.Configuration,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(goal); err != nil {
		return nil, err
	}

	var results []OptimizationResult
	for _, target := range AllTargets {
		req := OptimizationRequest{
			Config:        config,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}
		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.CalcEngine.Logger.Warnf("break-even %s: %v", target, err)
			continue
		}
		if result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_all_targets",
			Message:   "no successful optimizations found",
		}
	}

	md := &MultiDimensionalResult{Results: results}
	for i := range results {
		r := &results[i]
		if md.BestByIncome == nil || r.TotalNet.GreaterThan(md.BestByIncome.TotalNet) {
			md.BestByIncome = r
		}
		if md.BestByCapital == nil || r.FinalCapital.GreaterThan(md.BestByCapital.FinalCapital) {
			md.BestByCapital = r
		}
		if md.BestByTaxes == nil || r.TotalTax.LessThan(md.BestByTaxes.TotalTax) {
			md.BestByTaxes = r
		}
	}
	md.Recommendations = generateRecommendations(md)
	return md, nil
}

func generateRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string
	if r := result.BestByIncome; r != nil {
		recommendations = append(recommendations, fmt.Sprintf("To maximize total net income: adjust %s (%s%%)",
			r.Request.Target, r.OptimalPercent.StringFixed(2)))
	}
	if r := result.BestByCapital; r != nil {
		recommendations = append(recommendations, fmt.Sprintf("To keep the most capital (%s): adjust %s",
			formatShort(r.FinalCapital), r.Request.Target))
	}
	if r := result.BestByTaxes; r != nil {
		recommendations = append(recommendations, fmt.Sprintf("To minimize tax (%s over the projection): adjust %s",
			formatShort(r.TotalTax), r.Request.Target))
	}
	if result.BestByIncome != nil && result.BestByCapital != nil &&
		result.BestByIncome.Request.Target == result.BestByCapital.Request.Target {
		recommendations = append(recommendations,
			fmt.Sprintf("Adjusting %s gives both the highest income and the most capital", result.BestByIncome.Request.Target))
	}
	return recommendations
}
