package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// ComparisonResult holds the metrics of one withdrawal plan run.
type ComparisonResult struct {
	PlanName    string                  `json:"planName"`
	Description string                  `json:"description"`
	Result      *domain.PortfolioResult `json:"-"`

	// Key Metrics
	FirstYearNet    decimal.Decimal `json:"firstYearNet"`
	TotalWithdrawal decimal.Decimal `json:"totalWithdrawal"`
	TotalNet        decimal.Decimal `json:"totalNet"`
	TotalTax        decimal.Decimal `json:"totalTax"`
	FinalCapital    decimal.Decimal `json:"finalCapital"`

	// Comparison to Base
	NetDiffFromBase     decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase      decimal.Decimal `json:"netPctFromBase"`
	CapitalDiffFromBase decimal.Decimal `json:"capitalDiffFromBase"`
	TaxDiffFromBase     decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet is a base plan and the alternatives measured against it.
type ComparisonSet struct {
	BasePlanName       string             `json:"basePlanName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts comparison metrics from a projection.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics totals a projection. Final capital is the sum of every
// track's closing balance in the last year.
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.PortfolioResult) ComparisonResult {
	cr := ComparisonResult{PlanName: name, Result: result}
	if result == nil {
		return cr
	}
	for i, y := range result.Simulation {
		if i == 0 {
			cr.FirstYearNet = decimal.NewFromFloat(y.NetWithdrawal)
		}
		cr.TotalWithdrawal = cr.TotalWithdrawal.Add(decimal.NewFromFloat(y.TotalWithdrawal))
		cr.TotalNet = cr.TotalNet.Add(decimal.NewFromFloat(y.NetWithdrawal))
		cr.TotalTax = cr.TotalTax.Add(decimal.NewFromFloat(y.Tax))
	}
	if n := len(result.Simulation); n > 0 {
		for _, tr := range result.Simulation[n-1].Tracks {
			cr.FinalCapital = cr.FinalCapital.Add(decimal.NewFromFloat(tr.End))
		}
	}
	return cr
}

// CalculateComparison fills the deltas of plan against base.
func (mc *MetricsCalculator) CalculateComparison(plan, base ComparisonResult) ComparisonResult {
	plan.NetDiffFromBase = plan.TotalNet.Sub(base.TotalNet)
	if !base.TotalNet.IsZero() {
		plan.NetPctFromBase = plan.NetDiffFromBase.
			Div(base.TotalNet).
			Mul(decimal.NewFromInt(100))
	}
	plan.CapitalDiffFromBase = plan.FinalCapital.Sub(base.FinalCapital)
	plan.TaxDiffFromBase = plan.TotalTax.Sub(base.TotalTax)
	return plan
}

// GenerateRecommendations names the alternatives that beat the base plan on
// after-tax income, remaining capital and tax paid.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestNet := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].TotalNet.GreaterThan(bestNet.TotalNet) {
			bestNet = &compSet.AlternativeResults[i]
		}
	}
	if bestNet != compSet.BaseResult {
		diff := bestNet.TotalNet.Sub(compSet.BaseResult.TotalNet)
		recommendations = append(recommendations,
			fmt.Sprintf("Most income: %s withdraws %s more after tax than %s", bestNet.PlanName, diff.StringFixed(0), compSet.BasePlanName))
	}

	bestCapital := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].FinalCapital.GreaterThan(bestCapital.FinalCapital) {
			bestCapital = &compSet.AlternativeResults[i]
		}
	}
	if bestCapital != compSet.BaseResult {
		diff := bestCapital.FinalCapital.Sub(compSet.BaseResult.FinalCapital)
		recommendations = append(recommendations,
			fmt.Sprintf("Most capital: %s ends with %s more invested", bestCapital.PlanName, diff.StringFixed(0)))
	}

	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = &compSet.AlternativeResults[i]
		}
	}
	if lowestTax != compSet.BaseResult {
		diff := compSet.BaseResult.TotalTax.Sub(lowestTax.TotalTax)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest taxes: %s saves %s in tax", lowestTax.PlanName, diff.StringFixed(0)))
	}

	return recommendations
}
