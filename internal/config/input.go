package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// maxYears bounds loan terms and projection horizons.
const maxYears = 50

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, normalizes and validates a YAML scenario.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.normalize(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// normalize rewrites currency labels to their canonical codes.
func (ip *InputParser) normalize(config *domain.Configuration) error {
	canon := func(c *domain.Currency, where string) error {
		v, err := domain.ParseCurrency(string(*c))
		if err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		*c = v
		return nil
	}
	if fd := config.FixedDeposits; fd != nil {
		if err := canon(&fd.BaseCurrency, "fixed_deposits.base_currency"); err != nil {
			return err
		}
		for i := range fd.Deposits {
			if err := canon(&fd.Deposits[i].Currency, fmt.Sprintf("fixed_deposits.deposits[%d]", i)); err != nil {
				return err
			}
		}
	}
	if p := config.Portfolio; p != nil {
		if err := canon(&p.BaseCurrency, "portfolio.base_currency"); err != nil {
			return err
		}
		for i := range p.Funds {
			if p.Funds[i].Currency == "" {
				p.Funds[i].Currency = p.BaseCurrency
				continue
			}
			if err := canon(&p.Funds[i].Currency, fmt.Sprintf("portfolio.funds[%d]", i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Tax == nil && len(config.Loans) == 0 && config.FixedDeposits == nil && config.Portfolio == nil {
		return fmt.Errorf("scenario has no tax, loans, fixed_deposits or portfolio section")
	}
	if config.Tax != nil && len(config.Tax.Brackets) > 0 {
		if err := calculation.ValidateBrackets(config.Tax.Brackets); err != nil {
			return fmt.Errorf("tax brackets: %w", err)
		}
	}
	for i := range config.Loans {
		if err := ip.validateLoan(&config.Loans[i]); err != nil {
			return fmt.Errorf("loan %d (%s) validation failed: %w", i, config.Loans[i].Name, err)
		}
	}
	if config.FixedDeposits != nil {
		if err := ip.validateFixedDeposits(config.FixedDeposits); err != nil {
			return fmt.Errorf("fixed deposits validation failed: %w", err)
		}
	}
	if config.Portfolio != nil {
		if err := ip.validatePortfolio(config.Portfolio); err != nil {
			return fmt.Errorf("portfolio validation failed: %w", err)
		}
	}
	return nil
}

// validateLoan validates a single loan
func (ip *InputParser) validateLoan(loan *domain.LoanConfig) error {
	if strings.TrimSpace(loan.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !loan.Price.IsPositive() {
		return fmt.Errorf("price must be positive")
	}
	if loan.DownPayment.IsNegative() {
		return fmt.Errorf("down payment cannot be negative")
	}
	if loan.AnnualRatePercent < 0 {
		return fmt.Errorf("annual rate cannot be negative")
	}
	if loan.TermYears < 0 || loan.TermYears > maxYears {
		return fmt.Errorf("term must be between 0 and %d years", maxYears)
	}
	return nil
}

// validateFixedDeposits validates the deposit section
func (ip *InputParser) validateFixedDeposits(fd *domain.FixedDepositConfig) error {
	if len(fd.Deposits) == 0 {
		return fmt.Errorf("at least one deposit is required")
	}
	if fd.ExchangeRate < 0 {
		return fmt.Errorf("exchange rate cannot be negative")
	}
	if err := percentInRange("savings rate", fd.SavingsRatePercent); err != nil {
		return err
	}
	if fd.WithholdingPercent != nil {
		if err := percentInRange("withholding", *fd.WithholdingPercent); err != nil {
			return err
		}
	}
	if fd.LevyPercent != nil {
		if err := percentInRange("levy", *fd.LevyPercent); err != nil {
			return err
		}
	}
	if fd.MonthlyExpense.IsNegative() {
		return fmt.Errorf("monthly expense cannot be negative")
	}
	for month, amount := range fd.ExpenseOverrides {
		if month < 1 || month > calculation.LedgerPeriods {
			return fmt.Errorf("expense override month %d must be between 1 and %d", month, calculation.LedgerPeriods)
		}
		if amount.IsNegative() {
			return fmt.Errorf("expense override for month %d cannot be negative", month)
		}
	}
	if fd.Relief != nil && fd.Relief.IsNegative() {
		return fmt.Errorf("relief cannot be negative")
	}
	if len(fd.Slabs) > 0 {
		relief := float64(calculation.DefaultFDRelief)
		if fd.Relief != nil {
			relief = fd.Relief.Float64()
		}
		if err := calculation.ValidateBrackets(calculation.BracketsFromSlabs(relief, fd.Slabs)); err != nil {
			return fmt.Errorf("slabs: %w", err)
		}
	}
	for i, d := range fd.Deposits {
		if d.Principal.IsNegative() {
			return fmt.Errorf("deposit %d (%s): principal cannot be negative", i, d.Name)
		}
		if d.AnnualRatePercent < 0 {
			return fmt.Errorf("deposit %d (%s): rate cannot be negative", i, d.Name)
		}
	}
	return nil
}

// validatePortfolio validates the fund section and its withdrawal plans
func (ip *InputParser) validatePortfolio(p *domain.PortfolioConfig) error {
	if len(p.Funds) == 0 {
		return fmt.Errorf("at least one fund is required")
	}
	if p.Years < 0 || p.Years > maxYears {
		return fmt.Errorf("years must be between 0 and %d", maxYears)
	}
	found := false
	for i, f := range p.Funds {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("fund %d: name is required", i)
		}
		if f.Capital.IsNegative() {
			return fmt.Errorf("fund %d (%s): capital cannot be negative", i, f.Name)
		}
		if f.Name == p.PrimaryFund {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("primary fund %q is not listed in funds", p.PrimaryFund)
	}
	if err := ip.validatePlan("withdrawals", p.Withdrawals); err != nil {
		return err
	}
	for name, plan := range p.Plans {
		if err := ip.validatePlan("plan "+name, plan); err != nil {
			return err
		}
	}
	return nil
}

func (ip *InputParser) validatePlan(label string, plan domain.WithdrawalPlan) error {
	for i, pct := range plan.Primary {
		if err := percentInRange(fmt.Sprintf("%s primary year %d", label, i+1), pct); err != nil {
			return err
		}
	}
	for i, pct := range plan.Other {
		if err := percentInRange(fmt.Sprintf("%s other year %d", label, i+1), pct); err != nil {
			return err
		}
	}
	return nil
}

func percentInRange(label string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100 percent, got %.2f", label, v)
	}
	return nil
}
