package sequencing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Planner sources a yearly income need from the tracks of a projection and
// turns the result into a withdrawal plan the simulator can run.
type Planner struct {
	Strategy SequencingStrategy
	Logger   calculation.Logger
}

// NewPlanner returns a planner that logs nothing.
func NewPlanner(strategy SequencingStrategy) *Planner {
	return &Planner{Strategy: strategy, Logger: calculation.NopLogger{}}
}

// Result is the per-year sourcing and the plan derived from it. Plan holds
// percentages of each track's interest.
type Result struct {
	Strategy string                `json:"strategy"`
	Years    []YearPlan            `json:"years"`
	Plan     domain.WithdrawalPlan `json:"plan"`
}

// Build compounds the tracks year by year. Each year the strategy draws from
// the interest earned, and whatever is not drawn stays invested.
func (p *Planner) Build(ctx context.Context, input domain.SimulationInput, sctx StrategyContext) (*Result, error) {
	if len(input.Tracks) == 0 {
		return nil, errors.New("projection has no tracks")
	}
	years := input.Years
	if years <= 0 {
		years = calculation.DefaultSimulationYears
	}

	balances := make([]decimal.Decimal, len(input.Tracks))
	for i, t := range input.Tracks {
		balances[i] = decimal.NewFromFloat(t.Capital)
	}
	percents := make([][]float64, len(input.Tracks))

	result := &Result{Strategy: p.Strategy.Name(), Years: make([]YearPlan, 0, years)}
	hundred := decimal.NewFromInt(100)
	for y := 1; y <= years; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sources := CreateWithdrawalSources(input.Tracks, balances)
		yp := p.Strategy.Plan(sources, sctx)
		yp.Year = y

		for i, src := range sources {
			fraction := yp.Fraction(src.Name)
			percents[i] = append(percents[i], fraction.Mul(hundred).InexactFloat64())
			balances[i] = src.Balance.Add(src.Available).Sub(src.Available.Mul(fraction))
		}
		if yp.RemainingNeed.IsPositive() {
			p.Logger.Warnf("year %d: short by %s under %s", y, yp.RemainingNeed.StringFixed(2), yp.StrategyUsed)
		}
		p.Logger.Debugf("year %d: sourced %s of %s", y, yp.TotalSourced.StringFixed(2), yp.Requested.StringFixed(2))
		result.Years = append(result.Years, yp)
	}

	result.Plan.Primary = percents[0]
	if len(percents) > 1 {
		result.Plan.Other = percents[1]
	}
	return result, nil
}
