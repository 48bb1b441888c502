package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// BasePlanName labels the scenario's own withdrawal plan.
const BasePlanName = "configured"

// CompareEngine runs a portfolio under several withdrawal plans.
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  CreateBuiltInTemplates(),
	}
}

// CompareOptions selects the alternatives. Each name is looked up first in
// the scenario's named plans, then in the template registry. BasePlan picks
// a named plan as the base instead of the configured withdrawals.
type CompareOptions struct {
	BasePlan string
	With     []string
}

// Compare projects the base plan and every alternative and measures each
// alternative against the base.
func (ce *CompareEngine) Compare(ctx context.Context, config *domain.Configuration, options CompareOptions) (*ComparisonSet, error) {
	if config == nil || config.Portfolio == nil {
		return nil, fmt.Errorf("configuration has no portfolio to compare")
	}
	brackets := calculation.TaxTable(config)

	baseName := BasePlanName
	basePlan := config.Portfolio.Withdrawals
	if options.BasePlan != "" {
		plan, _, err := ce.resolve(config.Portfolio, options.BasePlan)
		if err != nil {
			return nil, err
		}
		baseName, basePlan = options.BasePlan, plan
	}

	baseRun, err := ce.CalcEngine.RunPortfolio(config.Portfolio, basePlan, brackets)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseRun)

	alternatives := []ComparisonResult{}
	for _, name := range options.With {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan, description, err := ce.resolve(config.Portfolio, name)
		if err != nil {
			return nil, err
		}
		run, err := ce.CalcEngine.RunPortfolio(config.Portfolio, plan, brackets)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate plan %s: %w", name, err)
		}
		alt := ce.MetricsCalculator.CalculateMetrics(name, run)
		alt.Description = description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BasePlanName:       baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) resolve(p *domain.PortfolioConfig, name string) (domain.WithdrawalPlan, string, error) {
	if plan, ok := p.Plans[name]; ok {
		return plan, "Plan from scenario file", nil
	}
	if ce.TemplateRegistry != nil {
		if t, ok := ce.TemplateRegistry.Get(name); ok {
			years := p.Years
			if years <= 0 {
				years = calculation.DefaultSimulationYears
			}
			return t.Plan(years), t.Description, nil
		}
	}
	return domain.WithdrawalPlan{}, "", fmt.Errorf("plan %s not found in scenario or templates", name)
}
