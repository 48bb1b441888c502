package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// CSVFormatter writes every figure as one row: section, name, period, metric, value.
// Periods are 1-based months for the ledger and years for the projection.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results *domain.CalculationResults) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	rows := [][]string{{"Section", "Name", "Period", "Metric", "Value"}}
	add := func(section, name string, period int, metric string, v float64) {
		p := ""
		if period > 0 {
			p = strconv.Itoa(period)
		}
		rows = append(rows, []string{section, name, p, metric, strconv.FormatFloat(v, 'f', 2, 64)})
	}

	for _, q := range results.TaxQueries {
		name := strconv.FormatFloat(q.Income, 'f', 0, 64)
		add("tax", name, 0, "tax", q.Tax)
		for _, s := range q.Breakdown {
			rows = append(rows, []string{"tax", name, "", "slice " + s.Range, strconv.FormatFloat(s.TaxInRange, 'f', 2, 64)})
		}
	}
	for _, l := range results.Loans {
		add("loan", l.Name, 0, "principal", l.Principal)
		add("loan", l.Name, 0, "installment", l.Installment)
		add("loan", l.Name, 0, "total_interest", l.TotalInterest)
	}
	if fd := results.FixedDeposits; fd != nil {
		for _, d := range fd.Deposits {
			add("deposit", d.Source.Name, 0, "principal_base", d.Converted.Principal)
			add("deposit", d.Source.Name, 0, "gross_monthly", d.Projection.GrossMonthly)
			add("deposit", d.Source.Name, 0, "withheld", d.Projection.Withheld)
			add("deposit", d.Source.Name, 0, "net_monthly", d.Projection.Net)
		}
		for _, p := range fd.Ledger {
			month := p.Index + 1
			add("ledger", MonthName(p.Index), month, "opening", p.OpeningBalance)
			add("ledger", MonthName(p.Index), month, "incidental_yield", p.IncidentalYield)
			add("ledger", MonthName(p.Index), month, "expense", p.PeriodExpense)
			add("ledger", MonthName(p.Index), month, "levy", p.Levy)
			add("ledger", MonthName(p.Index), month, "closing", p.ClosingBalance)
		}
		s := fd.Summary
		add("fd_summary", "", 0, "assessable_income", s.AssessableIncome)
		add("fd_summary", "", 0, "tax", s.Tax)
		add("fd_summary", "", 0, "withholding_paid", s.WithholdingPaid)
		add("fd_summary", "", 0, "net_tax_payable", s.NetTaxPayable)
		add("fd_summary", "", 0, "final_savings", s.FinalSavings)
	}
	if p := results.Portfolio; p != nil {
		for _, f := range p.Summary.Funds {
			add("fund", f.Name, 0, "capital", f.Capital)
			add("fund", f.Name, 0, "yearly", f.Yearly)
		}
		for _, y := range p.Simulation {
			for _, tr := range y.Tracks {
				add("projection", tr.Name, y.Year, "withdrawal", tr.Withdrawal)
				add("projection", tr.Name, y.Year, "end", tr.End)
			}
			add("projection", "total", y.Year, "withdrawal", y.TotalWithdrawal)
			add("projection", "total", y.Year, "tax", y.Tax)
			add("projection", "total", y.Year, "net", y.NetWithdrawal)
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
