package domain

// TrackInput seeds one compounding track. Rate and withdrawal fractions are
// fractions; WithdrawFractions[y-1] applies to year y.
type TrackInput struct {
	Name              string    `json:"name"`
	Capital           float64   `json:"capital"`
	Rate              float64   `json:"rate"`
	WithdrawFractions []float64 `json:"withdraw_fractions"`
}

// SimulationInput describes a multi-year projection.
type SimulationInput struct {
	Years  int          `json:"years"`
	Tracks []TrackInput `json:"tracks"`
}

// TrackYear is one track's movement in a simulated year.
type TrackYear struct {
	Name       string  `json:"name"`
	Start      float64 `json:"start"`
	Interest   float64 `json:"interest"`
	Withdrawal float64 `json:"withdrawal"`
	End        float64 `json:"end"`
}

// SimulationYear aggregates all tracks of a year and the tax on the combined withdrawal.
type SimulationYear struct {
	Year            int         `json:"year"`
	Tracks          []TrackYear `json:"tracks"`
	TotalWithdrawal float64     `json:"total_withdrawal"`
	Tax             float64     `json:"tax"`
	NetWithdrawal   float64     `json:"net_withdrawal"`
}

// TrackA returns the first track, or a zero value if there is none.
func (y SimulationYear) TrackA() TrackYear { return y.track(0) }

// TrackB returns the second track, or a zero value if there is none.
func (y SimulationYear) TrackB() TrackYear { return y.track(1) }

func (y SimulationYear) track(i int) TrackYear {
	if i < len(y.Tracks) {
		return y.Tracks[i]
	}
	return TrackYear{}
}

// FundResult is the yield of one fund in a portfolio.
type FundResult struct {
	Name     string   `json:"name"`
	Currency Currency `json:"currency"`
	Capital  float64  `json:"capital"`
	Rate     float64  `json:"rate"`
	Yearly   float64  `json:"yearly"`
	Monthly  float64  `json:"monthly"`
}

// CurrencyTotals sums the funds of one currency.
type CurrencyTotals struct {
	Currency Currency `json:"currency"`
	Capital  float64  `json:"capital"`
	Yearly   float64  `json:"yearly"`
	Monthly  float64  `json:"monthly"`
}

// PortfolioSummary lists fund yields and per-currency totals in input order.
type PortfolioSummary struct {
	Funds  []FundResult     `json:"funds"`
	Totals []CurrencyTotals `json:"totals"`
}

// Total returns the totals for c, or a zero value.
func (p PortfolioSummary) Total(c Currency) CurrencyTotals {
	for _, t := range p.Totals {
		if t.Currency == c {
			return t
		}
	}
	return CurrencyTotals{Currency: c}
}

// PortfolioResult is the portfolio section of a calculation run.
type PortfolioResult struct {
	Summary    PortfolioSummary `json:"summary"`
	Input      SimulationInput  `json:"input"`
	Simulation []SimulationYear `json:"simulation"`
}
