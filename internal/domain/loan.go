package domain

// Installment is one month of an amortization schedule.
type Installment struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Remaining float64 `json:"remaining"`
}

// LoanResult summarizes a financed purchase.
type LoanResult struct {
	Name              string        `json:"name"`
	Price             float64       `json:"price"`
	DownPayment       float64       `json:"down_payment"`
	Principal         float64       `json:"principal"`
	AnnualRatePercent float64       `json:"annual_rate_percent"`
	TermYears         int           `json:"term_years"`
	Installment       float64       `json:"installment"`
	TotalInterest     float64       `json:"total_interest"`
	Schedule          []Installment `json:"schedule,omitempty"`
}
