package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// BarChart draws one horizontal bar per labelled value. Negative values are
// drawn in the danger color, scaled by their magnitude.
type BarChart struct {
	Title  string
	Labels []string
	Values []float64
	Width  int
}

// NewBarChart creates a chart with a 40-column bar area.
func NewBarChart(title string, labels []string, values []float64) *BarChart {
	return &BarChart{Title: title, Labels: labels, Values: values, Width: 40}
}

// Render returns the chart, or a placeholder when there is nothing to draw.
func (c *BarChart) Render() string {
	if len(c.Values) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	peak := 0.0
	labelWidth := 0
	for i, v := range c.Values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			peak = math.Max(peak, math.Abs(v))
		}
		if i < len(c.Labels) {
			labelWidth = max(labelWidth, lipgloss.Width(c.Labels[i]))
		}
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(tuistyles.SectionStyle.Render(c.Title))
		out.WriteString("\n")
	}
	for i, v := range c.Values {
		label := ""
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		n := 0
		if peak > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			n = int(math.Round(math.Abs(v) / peak * float64(c.Width)))
		}
		style := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
		if v < 0 {
			style = lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
		}
		fmt.Fprintf(&out, "%-*s %s %s\n", labelWidth, label,
			style.Render(strings.Repeat("█", n)+strings.Repeat(" ", c.Width-n)),
			tuistyles.FormatCurrency(v))
	}
	return strings.TrimRight(out.String(), "\n")
}
