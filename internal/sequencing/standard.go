package sequencing

import "sort"

// StandardStrategy draws sources in ascending priority: the blended other
// funds first, leaving the primary fund to compound.
type StandardStrategy struct{}

func NewStandardStrategy() *StandardStrategy { return &StandardStrategy{} }

func (s *StandardStrategy) Name() string { return StrategyStandard }

func (s *StandardStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) YearPlan {
	plan := newYearPlan(s.Name(), ctx.NeedAmount)
	plan.draw(byPriority(sources), ctx.NeedAmount)
	plan.finish(true)
	return plan
}

func byPriority(sources []WithdrawalSource) []WithdrawalSource {
	ordered := append([]WithdrawalSource(nil), sources...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })
	return ordered
}
