package domain

import (
	"fmt"
	"strings"
)

// Currency identifies the denomination of an instrument.
type Currency string

const (
	LKR Currency = "LKR"
	AED Currency = "AED"
	USD Currency = "USD"
)

// ParseCurrency normalizes a currency code. The labels "Rs." and "$" used on
// fund statements map to LKR and USD.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "LKR", "RS", "RS.":
		return LKR, nil
	case "AED":
		return AED, nil
	case "USD", "$":
		return USD, nil
	}
	return "", fmt.Errorf("unsupported currency %q", s)
}

// Instrument is an interest-bearing holding. AnnualRate is a fraction.
type Instrument struct {
	Name       string   `yaml:"name" json:"name"`
	Principal  float64  `yaml:"principal" json:"principal"`
	AnnualRate float64  `yaml:"annual_rate" json:"annual_rate"`
	Currency   Currency `yaml:"currency" json:"currency"`
}

// YieldProjection is the periodic income of one instrument.
type YieldProjection struct {
	GrossAnnual  float64 `json:"gross_annual"`
	GrossMonthly float64 `json:"gross_monthly"`
	Withheld     float64 `json:"withheld"`
	Net          float64 `json:"net"`
}

// SensitivityPoint is the monthly income at an alternative rate.
type SensitivityPoint struct {
	Rate    float64 `json:"rate"`
	Monthly float64 `json:"monthly"`
}

// PayoutMode selects how a fixed deposit pays interest.
type PayoutMode string

const (
	PayoutMaturity PayoutMode = "maturity"
	PayoutMonthly  PayoutMode = "monthly"
)

// RateOffer is a bank's quoted fixed-deposit rate. Rate is a percentage.
type RateOffer struct {
	Bank   string  `yaml:"bank" json:"bank"`
	Rate   float64 `yaml:"rate" json:"rate"`
	Tenure string  `yaml:"tenure" json:"tenure"`
	Type   string  `yaml:"type" json:"type"`
	Badge  string  `yaml:"badge,omitempty" json:"badge,omitempty"`

	Recommended bool `yaml:"recommended,omitempty" json:"recommended,omitempty"`
	Special     bool `yaml:"special,omitempty" json:"special,omitempty"`
}

// RankedOffer is an offer with the return it produces on a given amount.
type RankedOffer struct {
	RateOffer
	Rank   int     `json:"rank"`
	Return float64 `json:"return"`
}
