package sequencing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Strategy names accepted by CreateStrategy.
const (
	StrategyStandard     = "standard"
	StrategyProportional = "proportional"
	StrategyBracketFill  = "bracket_fill"
	StrategyCustom       = "custom"
)

// AvailableStrategies lists the strategy names in display order.
func AvailableStrategies() []string {
	return []string{StrategyStandard, StrategyProportional, StrategyBracketFill, StrategyCustom}
}

// CreateStrategy builds a strategy by name. sequence is only used by custom.
func CreateStrategy(name string, sequence []string) (SequencingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyStandard:
		return NewStandardStrategy(), nil
	case StrategyProportional:
		return NewProportionalStrategy(), nil
	case StrategyBracketFill:
		return NewBracketFillStrategy(), nil
	case StrategyCustom:
		return NewCustomStrategy(sequence), nil
	}
	return nil, fmt.Errorf("unknown sequencing strategy %q (available: %s)", name, strings.Join(AvailableStrategies(), ", "))
}

// CreateStrategyContext collects the finite bracket edges of brackets.
func CreateStrategyContext(need float64, brackets domain.BracketTable, target *int, buffer float64) StrategyContext {
	edges := make([]decimal.Decimal, 0, len(brackets))
	for _, b := range brackets {
		if b.UpperBound.IsUnbounded() {
			break
		}
		edges = append(edges, decimal.NewFromFloat(b.UpperBound.Float64()))
	}
	return StrategyContext{
		NeedAmount:         decimal.NewFromFloat(need),
		BracketEdges:       edges,
		TargetBracketIndex: target,
		BracketBuffer:      decimal.NewFromFloat(buffer),
	}
}

// CreateWithdrawalSources turns the tracks and their current balances into
// sources. The blended other-funds track draws before any named fund.
func CreateWithdrawalSources(tracks []domain.TrackInput, balances []decimal.Decimal) []WithdrawalSource {
	sources := make([]WithdrawalSource, 0, len(tracks))
	for i, track := range tracks {
		priority := i + 2
		if track.Name == calculation.OtherFundsTrack {
			priority = 1
		}
		sources = append(sources, WithdrawalSource{
			Name:      track.Name,
			Balance:   balances[i],
			Available: balances[i].Mul(decimal.NewFromFloat(track.Rate)),
			Priority:  priority,
		})
	}
	return sources
}
