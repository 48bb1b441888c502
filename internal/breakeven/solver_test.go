package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Growth earns 2,000,000 a year and Income 720,000; the scenario withdraws
// all of Income's interest and none of Growth's.
func portfolioConfig() *domain.Configuration {
	return &domain.Configuration{
		Name: "Funds",
		Portfolio: &domain.PortfolioConfig{
			PrimaryFund: "Growth",
			Funds: []domain.FundConfig{
				{Name: "Growth", Currency: domain.LKR, Capital: domain.NewAmount(10_000_000), AnnualRatePercent: 20},
				{Name: "Income", Currency: domain.LKR, Capital: domain.NewAmount(6_000_000), AnnualRatePercent: 12},
			},
			Withdrawals: domain.WithdrawalPlan{Primary: []float64{0, 0, 0, 0, 0}, Other: []float64{100, 100, 100, 100, 100}},
		},
	}
}

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func newSolver() *Solver {
	return NewDefaultSolver(calculation.NewCalculationEngine())
}

func TestNewDefaultSolver(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)
	assert.Same(t, engine, solver.CalcEngine)
	assert.Equal(t, DefaultSolverOptions(), solver.Options)
}

func TestConstraints_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Constraints
		goal    OptimizationGoal
		wantErr string
	}{
		{"defaults with income", Constraints{TargetIncome: dec(1)}, GoalMatchIncome, ""},
		{"missing income", DefaultConstraints(), GoalMatchIncome, "target_income is required"},
		{"missing capital", DefaultConstraints(), GoalPreserveCapital, "target_capital is required"},
		{"negative capital", Constraints{TargetCapital: dec(-1)}, GoalPreserveCapital, "cannot be negative"},
		{"inverted range", Constraints{MinPercent: dec(60), MaxPercent: dec(40), TargetIncome: dec(1)}, GoalMatchIncome, "min_percent cannot be greater"},
		{"out of range", Constraints{MaxPercent: dec(150), TargetIncome: dec(1)}, GoalMatchIncome, "within 0 and 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate(tt.goal)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var be *BreakEvenError
			require.True(t, errors.As(err, &be))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPlanFor(t *testing.T) {
	p := portfolioConfig().Portfolio

	plan := PlanFor(p, OptimizePrimaryPercent, 40)
	assert.Equal(t, []float64{40, 40, 40, 40, 40}, plan.Primary)
	assert.Equal(t, p.Withdrawals.Other, plan.Other)

	plan = PlanFor(p, OptimizeOtherPercent, 10)
	assert.Equal(t, p.Withdrawals.Primary, plan.Primary)
	assert.Equal(t, []float64{10, 10, 10, 10, 10}, plan.Other)

	p.Years = 2
	plan = PlanFor(p, OptimizeBothPercent, 25)
	assert.Equal(t, []float64{25, 25}, plan.Primary)
	assert.Equal(t, []float64{25, 25}, plan.Other)
}

func TestOptimize_MatchIncome(t *testing.T) {
	// At 50% of Growth the first year withdraws 1,720,000; tax is
	// 30,000 + 2,400, leaving 1,687,600.
	req := OptimizationRequest{
		Config:      portfolioConfig(),
		Target:      OptimizePrimaryPercent,
		Goal:        GoalMatchIncome,
		Constraints: Constraints{TargetIncome: dec(1_687_600)},
	}
	result, err := newSolver().Optimize(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Success, result.ConvergenceInfo)
	assert.InDelta(t, 50, result.OptimalPercent.InexactFloat64(), 0.01)
	assert.InDelta(t, 1_687_600, result.FirstYearNet.InexactFloat64(), 1)
	assert.True(t, result.NetDiffFromBase.IsPositive())
	assert.True(t, result.TaxDiffFromBase.IsPositive())
	assert.NotNil(t, result.Result)
}

func TestOptimize_MatchIncomeUnreachable(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   string
	}{
		{"above maximum", 50_000_000, "above the 100.00% maximum"},
		{"below minimum", 100_000, "below the 0.00% minimum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := OptimizationRequest{
				Config:      portfolioConfig(),
				Target:      OptimizePrimaryPercent,
				Goal:        GoalMatchIncome,
				Constraints: Constraints{TargetIncome: dec(tt.target)},
			}
			result, err := newSolver().Optimize(context.Background(), req)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Contains(t, result.ConvergenceInfo, tt.want)
		})
	}
}

func TestOptimize_PreserveCapital(t *testing.T) {
	// Income keeps its 6,000,000. Growth must end at 14,000,000:
	// (1 + 0.2(1-p))^5 >= 1.4 gives p <= 65.19%.
	req := OptimizationRequest{
		Config:      portfolioConfig(),
		Target:      OptimizePrimaryPercent,
		Goal:        GoalPreserveCapital,
		Constraints: Constraints{TargetCapital: dec(20_000_000)},
	}
	result, err := newSolver().Optimize(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.Success, result.ConvergenceInfo)
	assert.InDelta(t, 65.19, result.OptimalPercent.InexactFloat64(), 0.02)
	assert.True(t, result.FinalCapital.GreaterThanOrEqual(decimal.NewFromInt(20_000_000)))

	req.Constraints.TargetCapital = dec(0)
	result, err = newSolver().Optimize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "100", result.OptimalPercent.String())

	req.Constraints.TargetCapital = dec(40_000_000)
	result, err = newSolver().Optimize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ConvergenceInfo, "out of reach")
}

func TestOptimize_Errors(t *testing.T) {
	solver := newSolver()

	_, err := solver.Optimize(context.Background(), OptimizationRequest{Config: &domain.Configuration{}, Goal: GoalMatchIncome})
	assert.ErrorContains(t, err, "configuration has no portfolio")

	_, err = solver.Optimize(context.Background(), OptimizationRequest{
		Config: portfolioConfig(), Target: "fund_mix", Goal: GoalMatchIncome,
		Constraints: Constraints{TargetIncome: dec(1)},
	})
	assert.ErrorContains(t, err, "unsupported optimization target")

	cfg := portfolioConfig()
	cfg.Portfolio.PrimaryFund = "Missing"
	_, err = solver.Optimize(context.Background(), OptimizationRequest{
		Config: cfg, Target: OptimizePrimaryPercent, Goal: GoalMatchIncome,
		Constraints: Constraints{TargetIncome: dec(1)},
	})
	assert.ErrorIs(t, err, calculation.ErrUnknownFund)
}

func TestOptimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newSolver().Optimize(ctx, OptimizationRequest{
		Config: portfolioConfig(), Target: OptimizePrimaryPercent, Goal: GoalMatchIncome,
		Constraints: Constraints{TargetIncome: dec(1_687_600)},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptimizeAllTargets(t *testing.T) {
	md, err := newSolver().OptimizeAllTargets(context.Background(), portfolioConfig(),
		Constraints{TargetCapital: dec(18_000_000)}, GoalPreserveCapital)
	require.NoError(t, err)

	require.NotEmpty(t, md.Results)
	require.NotNil(t, md.BestByIncome)
	require.NotNil(t, md.BestByCapital)
	require.NotNil(t, md.BestByTaxes)
	assert.NotEmpty(t, md.Recommendations)

	out := (&TableFormatter{}).FormatMultiDimensional(md)
	assert.Contains(t, out, "BREAK-EVEN RESULTS BY TARGET")
	assert.Contains(t, out, string(OptimizePrimaryPercent))
}

func TestFormatters(t *testing.T) {
	req := OptimizationRequest{
		Config:      portfolioConfig(),
		Target:      OptimizePrimaryPercent,
		Goal:        GoalMatchIncome,
		Constraints: Constraints{TargetIncome: dec(1_687_600)},
	}
	result, err := newSolver().Optimize(context.Background(), req)
	require.NoError(t, err)

	table := (&TableFormatter{}).Format(result)
	assert.Contains(t, table, "BREAK-EVEN WITHDRAWAL RESULTS")
	assert.Contains(t, table, "✓ Converged")
	assert.Contains(t, table, "Target Income:    1,687,600.00")

	js, err := (&JSONFormatter{Pretty: true}).Format(result)
	require.NoError(t, err)
	assert.Contains(t, js, `"target": "primary_percent"`)
	assert.Contains(t, js, `"success": true`)
}
