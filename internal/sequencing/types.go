package sequencing

import "github.com/shopspring/decimal"

// WithdrawalSource is one track's interest that can be drawn in a year.
type WithdrawalSource struct {
	Name      string
	Balance   decimal.Decimal // start-of-year capital
	Available decimal.Decimal // interest earned this year
	Priority  int             // lower draws first
}

// WithdrawalAllocation is the amount drawn from one source. Fraction is the
// share of that source's interest.
type WithdrawalAllocation struct {
	Source   string          `json:"source"`
	Gross    decimal.Decimal `json:"gross"`
	Fraction decimal.Decimal `json:"fraction"`
}

// YearPlan is the outcome of sourcing one year's need.
type YearPlan struct {
	Year          int                    `json:"year"`
	Requested     decimal.Decimal        `json:"requested"`
	TotalSourced  decimal.Decimal        `json:"total_sourced"`
	RemainingNeed decimal.Decimal        `json:"remaining_need"`
	Allocations   []WithdrawalAllocation `json:"allocations"`
	StrategyUsed  string                 `json:"strategy_used"`
	BracketFilled bool                   `json:"bracket_filled,omitempty"`
	Notes         []string               `json:"notes,omitempty"`
}

// StrategyContext carries the yearly need and the bracket edges a strategy
// may aim for. BracketEdges are the finite upper bounds of the tax table.
type StrategyContext struct {
	NeedAmount         decimal.Decimal
	BracketEdges       []decimal.Decimal
	TargetBracketIndex *int
	BracketBuffer      decimal.Decimal
}

// SequencingStrategy decides how a year's need is drawn from the sources.
type SequencingStrategy interface {
	Name() string
	Plan(sources []WithdrawalSource, ctx StrategyContext) YearPlan
}

func newYearPlan(strategy string, need decimal.Decimal) YearPlan {
	return YearPlan{
		Requested:     need,
		RemainingNeed: need,
		StrategyUsed:  strategy,
		Allocations:   []WithdrawalAllocation{},
	}
}

// draw takes up to limit from sources in the given order, each capped at the
// interest it has available.
func (p *YearPlan) draw(sources []WithdrawalSource, limit decimal.Decimal) {
	remaining := limit
	for _, src := range sources {
		if !remaining.IsPositive() {
			break
		}
		if !src.Available.IsPositive() {
			continue
		}
		amount := decimal.Min(src.Available, remaining)
		p.allocate(src, amount)
		remaining = remaining.Sub(amount)
	}
}

func (p *YearPlan) allocate(src WithdrawalSource, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	p.Allocations = append(p.Allocations, WithdrawalAllocation{
		Source:   src.Name,
		Gross:    amount,
		Fraction: amount.Div(src.Available),
	})
	p.TotalSourced = p.TotalSourced.Add(amount)
	p.RemainingNeed = p.Requested.Sub(p.TotalSourced)
}

// finish settles the remaining need and, when asked, notes a shortfall.
func (p *YearPlan) finish(noteShortfall bool) {
	p.RemainingNeed = p.RemainingNeed.Round(2)
	if noteShortfall && p.RemainingNeed.IsPositive() {
		p.Notes = append(p.Notes, "insufficient interest to meet request")
	}
	if p.RemainingNeed.IsNegative() {
		p.RemainingNeed = decimal.Zero
	}
}

// Fraction returns the share of source's interest drawn in this year.
func (p YearPlan) Fraction(source string) decimal.Decimal {
	for _, a := range p.Allocations {
		if a.Source == source {
			return a.Fraction
		}
	}
	return decimal.Zero
}
