package sequencing

import "github.com/shopspring/decimal"

// ProportionalStrategy draws the same share of every source's interest, so
// each track contributes in proportion to what it earns.
type ProportionalStrategy struct{}

func NewProportionalStrategy() *ProportionalStrategy { return &ProportionalStrategy{} }

func (s *ProportionalStrategy) Name() string { return StrategyProportional }

func (s *ProportionalStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) YearPlan {
	plan := newYearPlan(s.Name(), ctx.NeedAmount)

	total := decimal.Zero
	for _, src := range sources {
		if src.Available.IsPositive() {
			total = total.Add(src.Available)
		}
	}
	if !total.IsPositive() || !ctx.NeedAmount.IsPositive() {
		plan.finish(true)
		return plan
	}

	ratio := decimal.Min(ctx.NeedAmount.Div(total), decimal.NewFromInt(1))
	for _, src := range sources {
		if !src.Available.IsPositive() {
			continue
		}
		plan.allocate(src, src.Available.Mul(ratio))
	}
	plan.finish(true)
	return plan
}
