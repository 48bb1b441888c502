package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// ErrUnknownFund is returned when the primary fund is not in the portfolio.
var ErrUnknownFund = errors.New("unknown fund")

// OtherFundsTrack names the blended track of the projection.
const OtherFundsTrack = "Other funds"

// SummarizePortfolio projects each fund's yield and totals them per currency,
// keeping the order in which currencies first appear.
func SummarizePortfolio(funds []domain.Instrument) domain.PortfolioSummary {
	summary := domain.PortfolioSummary{Funds: make([]domain.FundResult, 0, len(funds))}
	index := map[domain.Currency]int{}
	for _, f := range funds {
		p := Project(f, 0)
		summary.Funds = append(summary.Funds, domain.FundResult{
			Name:     f.Name,
			Currency: f.Currency,
			Capital:  f.Principal,
			Rate:     f.AnnualRate,
			Yearly:   p.GrossAnnual,
			Monthly:  p.GrossMonthly,
		})
		i, ok := index[f.Currency]
		if !ok {
			i = len(summary.Totals)
			index[f.Currency] = i
			summary.Totals = append(summary.Totals, domain.CurrencyTotals{Currency: f.Currency})
		}
		summary.Totals[i].Capital += f.Principal
		summary.Totals[i].Yearly += p.GrossAnnual
		summary.Totals[i].Monthly += p.GrossMonthly
	}
	return summary
}

// SimulationTracks turns a portfolio into the two-track projection input: the
// primary fund on its own, and every other base-currency fund blended into a
// single track. Funds in other currencies stay out of the projection.
// Withdrawal plans are percentages per year.
func SimulationTracks(funds []domain.Instrument, primary string, base domain.Currency, plan domain.WithdrawalPlan, years int) (domain.SimulationInput, error) {
	var (
		lead   *domain.Instrument
		others []domain.Instrument
	)
	for i := range funds {
		f := funds[i]
		if f.Name == primary && lead == nil {
			lead = &funds[i]
			continue
		}
		if f.Currency == base {
			others = append(others, f)
		}
	}
	if lead == nil {
		return domain.SimulationInput{}, fmt.Errorf("%w: %q", ErrUnknownFund, primary)
	}
	otherCapital := 0.0
	for _, f := range others {
		otherCapital += f.Principal
	}
	return domain.SimulationInput{
		Years: years,
		Tracks: []domain.TrackInput{
			{Name: lead.Name, Capital: lead.Principal, Rate: lead.AnnualRate, WithdrawFractions: percentsToFractions(plan.Primary)},
			{Name: OtherFundsTrack, Capital: otherCapital, Rate: BlendedRate(others), WithdrawFractions: percentsToFractions(plan.Other)},
		},
	}, nil
}

// WithdrawalIncome is the yearly income from withdrawing pct percent of a
// fund's yield.
func WithdrawalIncome(fund domain.Instrument, pct float64) float64 {
	return fund.Principal * fund.AnnualRate * pct / 100
}

func percentsToFractions(pcts []float64) []float64 {
	out := make([]float64, len(pcts))
	for i, p := range pcts {
		out[i] = p / 100
	}
	return out
}
