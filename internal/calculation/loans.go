package calculation

import (
	"math"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// ComputeInstallment returns the level monthly payment (EMI) that repays
// price-downPayment over termYears at annualRatePercent. Loans with no
// principal, no rate or no term have no installment and return 0. NaN inputs
// propagate to a NaN installment.
func ComputeInstallment(price, downPayment, annualRatePercent float64, termYears int) float64 {
	principal := price - downPayment
	if principal <= 0 || annualRatePercent <= 0 || termYears <= 0 {
		return 0
	}
	r := annualRatePercent / 100 / 12
	n := float64(termYears * 12)
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// AmortizationSchedule splits every installment into interest and principal.
// The final month pays off whatever balance floating-point drift leaves so
// that Remaining ends at exactly zero.
func AmortizationSchedule(price, downPayment, annualRatePercent float64, termYears int) []domain.Installment {
	emi := ComputeInstallment(price, downPayment, annualRatePercent, termYears)
	if emi == 0 || math.IsNaN(emi) || math.IsInf(emi, 0) {
		return nil
	}
	r := annualRatePercent / 100 / 12
	months := termYears * 12
	remaining := price - downPayment
	schedule := make([]domain.Installment, 0, months)
	for m := 1; m <= months; m++ {
		interest := remaining * r
		principal := emi - interest
		payment := emi
		if m == months {
			principal = remaining
			payment = principal + interest
		}
		remaining -= principal
		schedule = append(schedule, domain.Installment{
			Month:     m,
			Payment:   payment,
			Interest:  interest,
			Principal: principal,
			Remaining: remaining,
		})
	}
	return schedule
}

// TotalInterest sums the interest column of a schedule.
func TotalInterest(schedule []domain.Installment) float64 {
	total := 0.0
	for _, inst := range schedule {
		total += inst.Interest
	}
	return total
}

// SummarizeLoan builds the loan result for a configured purchase.
func SummarizeLoan(cfg domain.LoanConfig) domain.LoanResult {
	price := cfg.Price.Float64()
	down := cfg.DownPayment.Float64()
	schedule := AmortizationSchedule(price, down, cfg.AnnualRatePercent, cfg.TermYears)
	result := domain.LoanResult{
		Name:              cfg.Name,
		Price:             price,
		DownPayment:       down,
		Principal:         price - down,
		AnnualRatePercent: cfg.AnnualRatePercent,
		TermYears:         cfg.TermYears,
		Installment:       ComputeInstallment(price, down, cfg.AnnualRatePercent, cfg.TermYears),
		TotalInterest:     TotalInterest(schedule),
	}
	if cfg.Schedule {
		result.Schedule = schedule
	}
	return result
}
