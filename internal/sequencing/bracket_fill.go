package sequencing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BracketFillStrategy draws in priority order but keeps the year's total at or
// below a bracket edge minus a buffer. A zero need fills up to the edge.
type BracketFillStrategy struct{}

func NewBracketFillStrategy() *BracketFillStrategy { return &BracketFillStrategy{} }

func (s *BracketFillStrategy) Name() string { return StrategyBracketFill }

func (s *BracketFillStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) YearPlan {
	index := 0
	if ctx.TargetBracketIndex != nil {
		index = *ctx.TargetBracketIndex
	}
	if index < 0 || index >= len(ctx.BracketEdges) {
		plan := NewStandardStrategy().Plan(sources, ctx)
		plan.StrategyUsed = "bracket_fill->standard_fallback"
		plan.Notes = append(plan.Notes, fmt.Sprintf("no bracket edge at index %d", index))
		return plan
	}

	edge := ctx.BracketEdges[index]
	headroom := edge.Sub(ctx.BracketBuffer)
	if headroom.IsNegative() {
		headroom = decimal.Zero
	}

	limit := headroom
	if ctx.NeedAmount.IsPositive() && ctx.NeedAmount.LessThan(headroom) {
		limit = ctx.NeedAmount
	}

	plan := newYearPlan(s.Name(), ctx.NeedAmount)
	if !ctx.NeedAmount.IsPositive() {
		plan.Requested = headroom
		plan.RemainingNeed = headroom
	}
	plan.draw(byPriority(sources), limit)
	plan.BracketFilled = headroom.IsPositive() && plan.TotalSourced.Equal(headroom)

	capped := ctx.NeedAmount.GreaterThan(headroom) && plan.TotalSourced.Equal(headroom)
	if capped {
		plan.Notes = append(plan.Notes, fmt.Sprintf("capped at bracket edge %s", edge.StringFixed(2)))
	}
	plan.finish(!capped)
	return plan
}
