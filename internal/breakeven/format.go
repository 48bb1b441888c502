package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	fcdecimal "github.com/rgehrsitz/fincalc/pkg/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN WITHDRAWAL RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Adjusting:    %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Goal:         %s\n", result.Request.Goal))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("WITHDRAWAL PLAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Withdrawal percentage: %s%%\n", result.OptimalPercent.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Primary by year:       %s\n", formatPercents(result.Plan.Primary)))
	sb.WriteString(fmt.Sprintf("Other by year:         %s\n", formatPercents(result.Plan.Other)))
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("First Year Net:  %s\n", formatCurrency(result.FirstYearNet)))
	sb.WriteString(fmt.Sprintf("Total Net:       %s\n", formatCurrency(result.TotalNet)))
	sb.WriteString(fmt.Sprintf("Total Tax:       %s\n", formatCurrency(result.TotalTax)))
	sb.WriteString(fmt.Sprintf("Final Capital:   %s\n", formatCurrency(result.FinalCapital)))
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO SCENARIO PLAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Net Income Change: %s%s\n", deltaSymbol(result.NetDiffFromBase), formatCurrency(result.NetDiffFromBase)))
	sb.WriteString(fmt.Sprintf("Tax Change:        %s%s\n", deltaSymbol(result.TaxDiffFromBase), formatCurrency(result.TaxDiffFromBase)))
	sb.WriteString("\n")

	c := result.Request.Constraints
	if result.Request.Goal == GoalMatchIncome && c.TargetIncome != nil {
		diff := result.FirstYearNet.Sub(*c.TargetIncome)
		sb.WriteString("TARGET INCOME MATCH\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Target Income:    %s\n", formatCurrency(*c.TargetIncome)))
		sb.WriteString(fmt.Sprintf("Achieved Income:  %s\n", formatCurrency(result.FirstYearNet)))
		sb.WriteString(fmt.Sprintf("Difference:       %s%s\n", deltaSymbol(diff), formatCurrency(diff)))
		sb.WriteString("\n")
	}
	if result.Request.Goal == GoalPreserveCapital && c.TargetCapital != nil {
		sb.WriteString("TARGET CAPITAL\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Target Capital:   %s\n", formatCurrency(*c.TargetCapital)))
		sb.WriteString(fmt.Sprintf("Final Capital:    %s\n", formatCurrency(result.FinalCapital)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatMultiDimensional formats results from every target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS BY TARGET\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %10s %14s %14s %12s %14s\n",
		"Target", "Percent", "First Year", "Total Net", "Total Tax", "Final Capital"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-16s %9s%% %14s %14s %12s %14s\n",
			res.Request.Target,
			res.OptimalPercent.StringFixed(2),
			formatShort(res.FirstYearNet),
			formatShort(res.TotalNet),
			formatShort(res.TotalTax),
			formatShort(res.FinalCapital)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats results from every target as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v interface{}) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func formatCurrency(d decimal.Decimal) string {
	return fcdecimal.Grouped(d.Abs().InexactFloat64(), 2)
}

func formatShort(d decimal.Decimal) string {
	return fcdecimal.Format(d.InexactFloat64())
}

func formatPercents(pcts []float64) string {
	parts := make([]string, len(pcts))
	for i, p := range pcts {
		parts[i] = fmt.Sprintf("%.2f%%", p)
	}
	return strings.Join(parts, " ")
}

func deltaSymbol(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+"
	case delta.IsNegative():
		return "-"
	}
	return " "
}
