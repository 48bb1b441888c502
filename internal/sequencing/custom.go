package sequencing

// CustomStrategy draws sources in a user-given order of track names. Tracks
// missing from the sequence are not drawn. An invalid sequence falls back to
// the standard order.
type CustomStrategy struct {
	Sequence []string
}

func NewCustomStrategy(sequence []string) *CustomStrategy { return &CustomStrategy{Sequence: sequence} }

func (s *CustomStrategy) Name() string { return StrategyCustom }

func (s *CustomStrategy) Plan(sources []WithdrawalSource, ctx StrategyContext) YearPlan {
	lookup := map[string]WithdrawalSource{}
	for _, src := range sources {
		lookup[src.Name] = src
	}

	ordered := make([]WithdrawalSource, 0, len(s.Sequence))
	seen := map[string]bool{}
	valid := len(s.Sequence) > 0
	for _, name := range s.Sequence {
		src, ok := lookup[name]
		if !ok || seen[name] {
			valid = false
			break
		}
		seen[name] = true
		ordered = append(ordered, src)
	}
	if !valid {
		plan := NewStandardStrategy().Plan(sources, ctx)
		plan.StrategyUsed = "custom->standard_fallback"
		plan.Notes = append(plan.Notes, "invalid or empty custom sequence - falling back to standard")
		return plan
	}

	plan := newYearPlan(s.Name(), ctx.NeedAmount)
	plan.draw(ordered, ctx.NeedAmount)
	plan.finish(true)
	return plan
}
