package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/pkg/decimal"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

const rule = "================================================================================="

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the short name of ledger period i (0-based).
func MonthName(i int) string {
	if i >= 0 && i < len(monthNames) {
		return monthNames[i]
	}
	return fmt.Sprintf("M%d", i+1)
}

// ConsoleFormatter renders the detailed text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.CalculationResults) ([]byte, error) {
	var buf bytes.Buffer

	title := "FINANCIAL CALCULATION REPORT"
	if results.Name != "" {
		title = strings.ToUpper(results.Name) + " - " + title
	}
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, titleStyle.Render(title))
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for _, w := range results.Warnings {
		fmt.Fprintf(&buf, "WARNING: %s\n", w)
	}

	if len(results.TaxQueries) > 0 {
		section(&buf, "INCOME TAX")
		for _, q := range results.TaxQueries {
			WriteTaxResult(&buf, q)
			fmt.Fprintln(&buf)
		}
	}
	if len(results.Loans) > 0 {
		section(&buf, "LOANS")
		for _, l := range results.Loans {
			writeLoan(&buf, l)
		}
		fmt.Fprintln(&buf)
	}
	if fd := results.FixedDeposits; fd != nil {
		section(&buf, "FIXED DEPOSIT INCOME")
		writeFixedDeposits(&buf, fd)
	}
	if p := results.Portfolio; p != nil {
		section(&buf, "FUND PORTFOLIO")
		writePortfolio(&buf, p)
	}
	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, name string) {
	fmt.Fprintln(buf, name)
	fmt.Fprintln(buf, strings.Repeat("=", len(name)))
}

// WriteTaxResult prints a tax figure with its bracket breakdown.
func WriteTaxResult(buf *bytes.Buffer, r domain.TaxResult) {
	fmt.Fprintf(buf, "Income %s: tax %s (effective %s)\n", decimal.Grouped(r.Income, 0), decimal.Grouped(r.Tax, 2), decimal.Percent(r.EffectiveRate()))
	for _, s := range r.Breakdown {
		fmt.Fprintf(buf, "  %-26s %7s %16s %14s\n", s.Range, decimal.Percent(s.Rate), decimal.Grouped(s.TaxableInRange, 0), decimal.Grouped(s.TaxInRange, 2))
	}
}

func writeLoan(buf *bytes.Buffer, l domain.LoanResult) {
	if l.Installment == 0 {
		fmt.Fprintf(buf, "%-20s no installment (principal %s)\n", l.Name, decimal.Format(l.Principal))
		return
	}
	fmt.Fprintf(buf, "%-20s principal %s at %.2f%% over %d years: %s per month, total interest %s\n",
		l.Name, decimal.Format(l.Principal), l.AnnualRatePercent, l.TermYears, decimal.Grouped(l.Installment, 2), decimal.Format(l.TotalInterest))
}

func writeFixedDeposits(buf *bytes.Buffer, fd *domain.FDIncomeResult) {
	for _, d := range fd.Deposits {
		fmt.Fprintf(buf, "%-20s %s %s -> %s: gross %s, withheld %s, net %s per month\n",
			d.Source.Name, d.Source.Currency, decimal.Grouped(d.Source.Principal, 0), decimal.Format(d.Converted.Principal),
			decimal.Grouped(d.Projection.GrossMonthly, 2), decimal.Grouped(d.Projection.Withheld, 2), decimal.Grouped(d.Projection.Net, 2))
	}
	fmt.Fprintf(buf, "Total net monthly income: %s\n\n", decimal.Grouped(fd.TotalNetMonthly, 2))

	fmt.Fprintf(buf, "%-5s %14s %14s %12s %14s %12s %12s %14s\n", "Month", "Opening", "Income", "Interest", "Available", "Expense", "Levy", "Closing")
	for _, p := range fd.Ledger {
		fmt.Fprintf(buf, "%-5s %14s %14s %12s %14s %12s %12s %14s\n", MonthName(p.Index),
			decimal.Grouped(p.OpeningBalance, 2), decimal.Grouped(p.RecurringIncome, 2), decimal.Grouped(p.IncidentalYield, 2),
			decimal.Grouped(p.TotalAvailable, 2), decimal.Grouped(p.PeriodExpense, 2), decimal.Grouped(p.Levy, 2), decimal.Grouped(p.ClosingBalance, 2))
	}
	fmt.Fprintln(buf)

	s := fd.Summary
	fmt.Fprintln(buf, "ANNUAL TAX POSITION:")
	fmt.Fprintf(buf, "  Gross deposit income:   %s\n", decimal.Grouped(s.GrossFDIncome, 2))
	fmt.Fprintf(buf, "  Savings interest:       %s\n", decimal.Grouped(s.SavingsInterest, 2))
	fmt.Fprintf(buf, "  Assessable income:      %s\n", decimal.Grouped(s.AssessableIncome, 2))
	fmt.Fprintf(buf, "  Tax:                    %s\n", decimal.Grouped(s.Tax, 2))
	fmt.Fprintf(buf, "  Withholding paid:       %s\n", decimal.Grouped(s.WithholdingPaid, 2))
	if s.NetTaxPayable < 0 {
		fmt.Fprintf(buf, "  Refund due:             %s\n", decimal.Grouped(-s.NetTaxPayable, 2))
	} else {
		fmt.Fprintf(buf, "  Net tax payable:        %s\n", decimal.Grouped(s.NetTaxPayable, 2))
	}
	fmt.Fprintf(buf, "  Final savings:          %s\n\n", decimal.Grouped(s.FinalSavings, 2))
}

func writePortfolio(buf *bytes.Buffer, p *domain.PortfolioResult) {
	fmt.Fprintf(buf, "%-30s %-4s %14s %8s %14s %14s\n", "Fund", "Cur", "Capital", "Rate", "Yearly", "Monthly")
	for _, f := range p.Summary.Funds {
		fmt.Fprintf(buf, "%-30s %-4s %14s %8s %14s %14s\n", f.Name, f.Currency, decimal.Format(f.Capital), decimal.Percent(f.Rate), decimal.Grouped(f.Yearly, 0), decimal.Grouped(f.Monthly, 0))
	}
	for _, t := range p.Summary.Totals {
		fmt.Fprintf(buf, "%-30s %-4s %14s %8s %14s %14s\n", "Total", t.Currency, decimal.Format(t.Capital), "", decimal.Grouped(t.Yearly, 0), decimal.Grouped(t.Monthly, 0))
	}
	fmt.Fprintln(buf)
	WriteSimulation(buf, p.Simulation)
}

// WriteSimulation prints the year-by-year projection table.
func WriteSimulation(buf *bytes.Buffer, years []domain.SimulationYear) {
	if len(years) == 0 {
		return
	}
	fmt.Fprintf(buf, "%-5s", "Year")
	for _, tr := range years[0].Tracks {
		fmt.Fprintf(buf, " %16s %12s", truncate(tr.Name, 16), "End")
	}
	fmt.Fprintf(buf, " %14s %12s %14s\n", "Withdrawal", "Tax", "Net")
	for _, y := range years {
		fmt.Fprintf(buf, "%-5d", y.Year)
		for _, tr := range y.Tracks {
			fmt.Fprintf(buf, " %16s %12s", decimal.Grouped(tr.Withdrawal, 0), decimal.Format(tr.End))
		}
		fmt.Fprintf(buf, " %14s %12s %14s\n", decimal.Grouped(y.TotalWithdrawal, 0), decimal.Grouped(y.Tax, 0), decimal.Grouped(y.NetWithdrawal, 0))
	}
	fmt.Fprintln(buf)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
