package main

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/pkg/decimal"
)

func mustAmount(flag, value string) float64 {
	a, err := domain.ParseAmount(value)
	if err != nil {
		log.Fatalf("--%s: %v", flag, err)
	}
	return a.Float64()
}

// printJSON writes v as indented JSON when --format json was requested and
// reports whether it did.
func printJSON(cmd *cobra.Command, v interface{}) bool {
	if f, _ := cmd.Flags().GetString("format"); output.NormalizeFormatName(f) != "json" {
		return false
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return true
}

var taxCmd = &cobra.Command{
	Use:   "tax [income]",
	Short: "Compute progressive income tax with a per-bracket breakdown",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		income := mustAmount("income", args[0])
		brackets := calculation.DefaultBracketTable()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			brackets = calculation.TaxTable(loadScenario(path))
		}
		result, err := calculation.ComputeTax(income, brackets)
		if err != nil {
			log.Fatal(err)
		}
		if printJSON(cmd, result) {
			return
		}
		var buf bytes.Buffer
		output.WriteTaxResult(&buf, result)
		cmd.OutOrStdout().Write(buf.Bytes())
	},
}

var loanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Compute the monthly installment of a financed purchase",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		price, _ := cmd.Flags().GetString("price")
		down, _ := cmd.Flags().GetString("down")
		rate, _ := cmd.Flags().GetFloat64("rate")
		years, _ := cmd.Flags().GetInt("years")
		name, _ := cmd.Flags().GetString("name")
		withSchedule, _ := cmd.Flags().GetBool("schedule")

		cfg := domain.LoanConfig{
			Name:              name,
			Price:             domain.NewAmount(mustAmount("price", price)),
			DownPayment:       domain.NewAmount(mustAmount("down", down)),
			AnnualRatePercent: rate,
			TermYears:         years,
		}
		result := calculation.SummarizeLoan(cfg)
		if !withSchedule {
			result.Schedule = nil
		}
		if printJSON(cmd, result) {
			return
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: principal %s at %.2f%% over %d years\n", result.Name,
			decimal.Grouped(result.Principal, 2), result.AnnualRatePercent, result.TermYears)
		fmt.Fprintf(out, "Monthly installment: %s\n", decimal.Grouped(result.Installment, 2))
		fmt.Fprintf(out, "Total interest:      %s\n", decimal.Grouped(result.TotalInterest, 2))
		if withSchedule {
			fmt.Fprintf(out, "\n%6s %14s %14s %14s %16s\n", "Month", "Payment", "Interest", "Principal", "Remaining")
			for _, in := range result.Schedule {
				fmt.Fprintf(out, "%6d %14s %14s %14s %16s\n", in.Month, decimal.Grouped(in.Payment, 2),
					decimal.Grouped(in.Interest, 2), decimal.Grouped(in.Principal, 2), decimal.Grouped(in.Remaining, 2))
			}
		}
	},
}

var yieldCmd = &cobra.Command{
	Use:   "yield",
	Short: "Project the monthly income of a fixed deposit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		principal, _ := cmd.Flags().GetString("principal")
		rate, _ := cmd.Flags().GetFloat64("rate")
		exempt, _ := cmd.Flags().GetBool("exempt")
		currencyFlag, _ := cmd.Flags().GetString("currency")
		exchangeRate, _ := cmd.Flags().GetFloat64("exchange-rate")
		sensitivity, _ := cmd.Flags().GetString("sensitivity")

		currency, err := domain.ParseCurrency(currencyFlag)
		if err != nil {
			log.Fatal(err)
		}
		inst := domain.Instrument{
			Name:       "Deposit",
			Principal:  mustAmount("principal", principal),
			AnnualRate: rate / 100,
			Currency:   currency,
		}
		converted := calculation.ConvertToBase(inst, domain.LKR, exchangeRate)
		projection := calculation.Project(converted, calculation.WithholdingFor(exempt))

		var points []domain.SensitivityPoint
		if sensitivity != "" {
			rates := []float64{}
			for _, s := range parseList(sensitivity) {
				r, err := strconv.ParseFloat(s, 64)
				if err != nil {
					log.Fatalf("--sensitivity: %v", err)
				}
				rates = append(rates, r/100)
			}
			points = calculation.RateSensitivity(converted.Principal, rates)
		}

		if printJSON(cmd, map[string]interface{}{"instrument": converted, "projection": projection, "sensitivity": points}) {
			return
		}
		out := cmd.OutOrStdout()
		if currency != domain.LKR {
			fmt.Fprintf(out, "Converted %s to %s at %.2f\n", decimal.Display(inst.Principal, string(currency)),
				decimal.Display(converted.Principal, string(domain.LKR)), exchangeRate)
		}
		fmt.Fprintf(out, "Gross annual:   %s\n", decimal.Grouped(projection.GrossAnnual, 2))
		fmt.Fprintf(out, "Gross monthly:  %s\n", decimal.Grouped(projection.GrossMonthly, 2))
		fmt.Fprintf(out, "Withheld:       %s\n", decimal.Grouped(projection.Withheld, 2))
		fmt.Fprintf(out, "Net monthly:    %s\n", decimal.Grouped(projection.Net, 2))
		if len(points) > 0 {
			fmt.Fprintln(out, "\nRate sensitivity (gross monthly):")
			for _, p := range points {
				fmt.Fprintf(out, "  %7s  %s\n", decimal.Percent(p.Rate), decimal.Grouped(p.Monthly, 2))
			}
		}
	},
}

// parseEdit reads a "month=amount" ledger edit. Months are 1..12.
func parseEdit(s string) (int, float64, error) {
	month, amount, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("edit %q must look like month=amount", s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return 0, 0, fmt.Errorf("edit %q: invalid month: %w", s, err)
	}
	a, err := domain.ParseAmount(amount)
	if err != nil {
		return 0, 0, fmt.Errorf("edit %q: %w", s, err)
	}
	return m, a.Float64(), nil
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger [input-file]",
	Short: "Show the fixed-deposit savings ledger, optionally with edited expenses",
	Long: `Show the fixed-deposit savings ledger and year-end tax position.

Each --edit replaces one month's expense and recomputes that month and every
month after it. Months are numbered 1 to 12.

Examples:
  fincalc ledger household.yaml --edit 4=80,000 --edit 12=150000
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadScenario(args[0])
		if cfg.FixedDeposits == nil {
			log.Fatal("scenario has no fixed_deposits section")
		}
		engine, logger := newEngine(cmd)
		defer logger.Sync()

		result, ledger, err := engine.RunFixedDeposits(cfg.FixedDeposits)
		if err != nil {
			log.Fatal(err)
		}
		edits, _ := cmd.Flags().GetStringArray("edit")
		for _, e := range edits {
			month, amount, err := parseEdit(e)
			if err != nil {
				log.Fatal(err)
			}
			if err := ledger.EditExpense(month-1, amount); err != nil {
				log.Fatalf("edit %q: %v", e, err)
			}
		}
		if len(edits) > 0 {
			if err := calculation.ResummarizeFD(result, ledger, calculation.FDInput(cfg.FixedDeposits).Schedule); err != nil {
				log.Fatal(err)
			}
		}
		writeResults(cmd, &domain.CalculationResults{Name: cfg.Name, FixedDeposits: result})
	},
}

// planFromFlags builds a withdrawal plan from --plan or --primary/--other,
// defaulting to the scenario's withdrawals.
func planFromFlags(cmd *cobra.Command, p *domain.PortfolioConfig) domain.WithdrawalPlan {
	if name, _ := cmd.Flags().GetString("plan"); name != "" {
		plan, ok := p.Plans[name]
		if !ok {
			log.Fatalf("plan %q not found in scenario", name)
		}
		return plan
	}
	plan := p.Withdrawals
	if s, _ := cmd.Flags().GetString("primary"); s != "" {
		plan.Primary = mustPercents("primary", s)
	}
	if s, _ := cmd.Flags().GetString("other"); s != "" {
		plan.Other = mustPercents("other", s)
	}
	return plan
}

func mustPercents(flag, s string) []float64 {
	var out []float64
	for _, part := range parseList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			log.Fatalf("--%s: %v", flag, err)
		}
		out = append(out, v)
	}
	return out
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Project portfolio withdrawals and tax year by year",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadScenario(args[0])
		if cfg.Portfolio == nil {
			log.Fatal("scenario has no portfolio section")
		}
		if years, _ := cmd.Flags().GetInt("years"); years > 0 {
			cfg.Portfolio.Years = years
		}
		engine, logger := newEngine(cmd)
		defer logger.Sync()

		plan := planFromFlags(cmd, cfg.Portfolio)
		result, err := engine.RunPortfolio(cfg.Portfolio, plan, calculation.TaxTable(cfg))
		if err != nil {
			log.Fatal(err)
		}
		if printJSON(cmd, result) {
			return
		}
		var buf bytes.Buffer
		output.WriteSimulation(&buf, result.Simulation)
		fmt.Fprintf(&buf, "\nTotal net withdrawal: %s\n", decimal.Grouped(calculation.TotalNetWithdrawal(result.Simulation), 2))
		cmd.OutOrStdout().Write(buf.Bytes())
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Rank fixed-deposit offers by return on an amount",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		amount, _ := cmd.Flags().GetString("amount")
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode := domain.PayoutMode(strings.ToLower(modeFlag))
		if mode != domain.PayoutMaturity && mode != domain.PayoutMonthly {
			log.Fatalf("--mode must be %s or %s", domain.PayoutMaturity, domain.PayoutMonthly)
		}
		ranked := calculation.RankOffers(mustAmount("amount", amount), calculation.DefaultOffers(mode), mode)
		if printJSON(cmd, ranked) {
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %-24s %7s  %-8s %-13s %14s  %s\n", "Rank", "Bank", "Rate", "Tenure", "Type", "Return", "Note")
		for _, r := range ranked {
			note := r.Badge
			if r.Recommended {
				note = strings.TrimSpace(note + " *")
			}
			fmt.Fprintf(out, "%4d  %-24s %6.2f%%  %-8s %-13s %14s  %s\n", r.Rank, r.Bank, r.Rate, r.Tenure, r.Type,
				decimal.Grouped(r.Return, 2), note)
		}
	},
}

func initCalculatorCommands() {
	taxCmd.Flags().String("config", "", "Scenario file whose tax brackets to use")
	taxCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	loanCmd.Flags().String("name", "Loan", "Label for the loan")
	loanCmd.Flags().String("price", "0", "Purchase price")
	loanCmd.Flags().String("down", "0", "Down payment")
	loanCmd.Flags().Float64("rate", 0, "Annual interest rate in percent")
	loanCmd.Flags().Int("years", 0, "Term in years")
	loanCmd.Flags().Bool("schedule", false, "Print the month-by-month amortization schedule")
	loanCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	yieldCmd.Flags().String("principal", "0", "Deposit principal")
	yieldCmd.Flags().Float64("rate", 0, "Annual interest rate in percent")
	yieldCmd.Flags().Bool("exempt", false, "Taxpayer is exempt from withholding")
	yieldCmd.Flags().String("currency", "LKR", "Deposit currency (LKR, AED, USD)")
	yieldCmd.Flags().Float64("exchange-rate", calculation.DefaultExchangeRate, "LKR per unit of a foreign deposit")
	yieldCmd.Flags().String("sensitivity", "", "Comma-separated alternative rates in percent")
	yieldCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	ledgerCmd.Flags().StringArray("edit", nil, "Replace a month's expense, e.g. 4=80,000 (repeatable)")
	ledgerCmd.Flags().StringP("format", "f", "", "Output format (console, csv, json)")
	ledgerCmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory")

	simulateCmd.Flags().String("plan", "", "Named plan from the scenario's portfolio.plans")
	simulateCmd.Flags().String("primary", "", "Comma-separated primary fund withdrawal percentages per year")
	simulateCmd.Flags().String("other", "", "Comma-separated other funds withdrawal percentages per year")
	simulateCmd.Flags().Int("years", 0, "Projection length (default from scenario, else 5)")
	simulateCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	ratesCmd.Flags().String("amount", "1,000,000", "Amount to deposit")
	ratesCmd.Flags().String("mode", string(domain.PayoutMaturity), "Payout mode (maturity, monthly)")
	ratesCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")

	rootCmd.AddCommand(taxCmd, loanCmd, yieldCmd, ledgerCmd, simulateCmd, ratesCmd)
}
