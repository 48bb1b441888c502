package calculation

import (
	"sort"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// RankOffers computes each offer's return on amount and sorts them best
// first. Maturity returns are a year's interest; monthly returns a twelfth of
// it. Ties keep their input order.
func RankOffers(amount float64, offers []domain.RateOffer, mode domain.PayoutMode) []domain.RankedOffer {
	ranked := make([]domain.RankedOffer, len(offers))
	for i, o := range offers {
		ret := amount * o.Rate / 100
		if mode == domain.PayoutMonthly {
			ret /= 12
		}
		ranked[i] = domain.RankedOffer{RateOffer: o, Return: ret}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Return > ranked[j].Return })
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// DefaultOffers returns the built-in rate table for a payout mode.
func DefaultOffers(mode domain.PayoutMode) []domain.RateOffer {
	if mode == domain.PayoutMonthly {
		return []domain.RateOffer{
			{Bank: "Softlogic (Senior)", Rate: 12.50, Tenure: "5 Years", Type: "Finance Co", Badge: "Age 60+ Only", Recommended: true, Special: true},
			{Bank: "Softlogic Finance", Rate: 12.00, Tenure: "5 Years", Type: "Finance Co", Badge: "Max Monthly Yield", Recommended: true},
			{Bank: "NSB (Senior Citizen)", Rate: 11.32, Tenure: "1 Year", Type: "State Bank", Badge: "Govt Backed (60+)", Special: true},
			{Bank: "Softlogic Finance", Rate: 9.54, Tenure: "1 Year", Type: "Finance Co", Badge: "Best 1Y Monthly", Recommended: true},
			{Bank: "LB Finance", Rate: 10.25, Tenure: "5 Years", Type: "Finance Co", Badge: "Long Term"},
			{Bank: "MBSL", Rate: 10.00, Tenure: "5 Years", Type: "Finance Co", Badge: "Long Term"},
			{Bank: "MBSL", Rate: 8.25, Tenure: "1 Year", Type: "Finance Co", Badge: "High Yield"},
			{Bank: "Seylan Bank", Rate: 7.00, Tenure: "1 Year", Type: "Private Bank"},
			{Bank: "NSB", Rate: 6.50, Tenure: "1 Year", Type: "State Bank"},
			{Bank: "People's Bank", Rate: 6.50, Tenure: "1 Year", Type: "State Bank"},
		}
	}
	return []domain.RateOffer{
		{Bank: "Softlogic Finance", Rate: 10.02, Tenure: "1 Year", Type: "Finance Co", Badge: "Market Leader", Recommended: true, Special: true},
		{Bank: "People's Leasing (PLC)", Rate: 9.50, Tenure: "1 Year", Type: "Finance Co", Badge: "Solid High Yield"},
		{Bank: "MBSL Bank", Rate: 8.75, Tenure: "1 Year", Type: "Finance Co", Badge: "High Yield"},
		{Bank: "LB Finance", Rate: 8.75, Tenure: "1 Year", Type: "Finance Co"},
		{Bank: "Vallibel Finance", Rate: 8.50, Tenure: "1 Year", Type: "Finance Co"},
		{Bank: "NDB Bank", Rate: 8.25, Tenure: "1 Year", Type: "Private Bank"},
		{Bank: "Cargills Bank", Rate: 8.00, Tenure: "1 Year", Type: "Private Bank"},
		{Bank: "Union Bank", Rate: 8.00, Tenure: "1 Year", Type: "Private Bank"},
		{Bank: "Commercial Bank", Rate: 8.00, Tenure: "1 Year", Type: "Private Bank"},
		{Bank: "LOLC Finance", Rate: 8.00, Tenure: "1 Year", Type: "Finance Co"},
		{Bank: "HNB", Rate: 7.70, Tenure: "1 Year", Type: "Private Bank"},
		{Bank: "Seylan Bank", Rate: 7.50, Tenure: "1 Year", Type: "Private Bank"},
		{Bank: "People's Bank", Rate: 7.25, Tenure: "1 Year", Type: "State Bank", Badge: "State Leader"},
		{Bank: "NSB", Rate: 6.75, Tenure: "1 Year", Type: "State Bank"},
		{Bank: "BOC", Rate: 6.75, Tenure: "1 Year", Type: "State Bank"},
	}
}
