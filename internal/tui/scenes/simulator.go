package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/components"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
	"github.com/rgehrsitz/fincalc/pkg/decimal"
)

// SliderStep is how far one key press moves a withdrawal slider.
const SliderStep = 10

// SimulatorModel edits per-year withdrawal percentages for the primary fund
// and the other funds, and shows the resulting projection.
type SimulatorModel struct {
	primary  []*components.ParameterSlider
	other    []*components.ParameterSlider
	focused  int
	result   *domain.PortfolioResult
	baseline float64
	dirty    bool
	width    int
	height   int
}

// NewSimulatorModel creates a new simulator scene model
func NewSimulatorModel() *SimulatorModel {
	return &SimulatorModel{}
}

// SetPlan builds one slider pair per year from a percentage plan. Years the
// plan does not cover start at 0%.
func (m *SimulatorModel) SetPlan(plan domain.WithdrawalPlan, years int) {
	m.primary = make([]*components.ParameterSlider, years)
	m.other = make([]*components.ParameterSlider, years)
	for y := 0; y < years; y++ {
		m.primary[y] = components.NewPercentSlider(fmt.Sprintf("Y%d primary", y+1), at(plan.Primary, y), SliderStep)
		m.other[y] = components.NewPercentSlider(fmt.Sprintf("Y%d other  ", y+1), at(plan.Other, y), SliderStep)
	}
	m.focused = 0
	m.dirty = false
	m.syncFocus()
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

// SetResult shows a projection. The first result becomes the baseline that
// later runs are compared against.
func (m *SimulatorModel) SetResult(result *domain.PortfolioResult) {
	if m.result == nil && result != nil {
		m.baseline = totalNet(result)
	}
	m.result = result
	m.dirty = false
}

// SetSize updates the model dimensions
func (m *SimulatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Plan returns the withdrawal percentages the sliders currently hold.
func (m *SimulatorModel) Plan() domain.WithdrawalPlan {
	plan := domain.WithdrawalPlan{
		Primary: make([]float64, len(m.primary)),
		Other:   make([]float64, len(m.other)),
	}
	for i, s := range m.primary {
		plan.Primary[i] = s.Value
	}
	for i, s := range m.other {
		plan.Other[i] = s.Value
	}
	return plan
}

// Dirty reports whether sliders changed since the last projection.
func (m *SimulatorModel) Dirty() bool { return m.dirty }

// slider maps the focus index onto the interleaved primary/other list.
func (m *SimulatorModel) slider(i int) *components.ParameterSlider {
	if i%2 == 0 {
		return m.primary[i/2]
	}
	return m.other[i/2]
}

func (m *SimulatorModel) count() int { return len(m.primary) * 2 }

func (m *SimulatorModel) syncFocus() {
	for i := 0; i < m.count(); i++ {
		m.slider(i).SetFocused(i == m.focused)
	}
}

// Update handles messages for the simulator scene
func (m *SimulatorModel) Update(msg tea.Msg) (*SimulatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.count() == 0 {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.focused > 0 {
			m.focused--
		}
		m.syncFocus()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.focused < m.count()-1 {
			m.focused++
		}
		m.syncFocus()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "+"))):
		m.slider(m.focused).Increment()
		m.dirty = true
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "-"))):
		m.slider(m.focused).Decrement()
		m.dirty = true
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "r"))):
		plan := m.Plan()
		return m, func() tea.Msg { return tuimsg.SimulationRequestedMsg{Plan: plan} }
	}
	return m, nil
}

func totalNet(r *domain.PortfolioResult) float64 {
	total := 0.0
	for _, y := range r.Simulation {
		total += y.NetWithdrawal
	}
	return total
}

// View renders the sliders and the projection
func (m *SimulatorModel) View() string {
	if m.count() == 0 {
		return tuistyles.BorderStyle.Render(tuistyles.InfoStyle.Render("No portfolio configured"))
	}
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Withdrawal Simulator"))
	content.WriteString("\n\n")
	for i := 0; i < m.count(); i++ {
		content.WriteString(m.slider(i).Render())
		content.WriteString("\n")
	}

	if m.result != nil {
		content.WriteString("\n")
		header := fmt.Sprintf("%-5s %14s %12s %14s %14s", "Year", "Withdrawal", "Tax", "Net", "Capital")
		content.WriteString(tuistyles.TableHeaderStyle.Render(header))
		content.WriteString("\n")
		labels := make([]string, 0, len(m.result.Simulation))
		nets := make([]float64, 0, len(m.result.Simulation))
		for _, y := range m.result.Simulation {
			capital := 0.0
			for _, tr := range y.Tracks {
				capital += tr.End
			}
			content.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("%-5d %14s %12s %14s %14s", y.Year,
				decimal.Grouped(y.TotalWithdrawal, 0), decimal.Grouped(y.Tax, 0),
				decimal.Grouped(y.NetWithdrawal, 0), tuistyles.FormatCurrency(capital))))
			content.WriteString("\n")
			labels = append(labels, fmt.Sprintf("Y%d", y.Year))
			nets = append(nets, y.NetWithdrawal)
		}
		content.WriteString("\n")
		content.WriteString(components.NewBarChart("Net withdrawal", labels, nets).Render())
		content.WriteString("\n\n")
		total := totalNet(m.result)
		content.WriteString(components.NewMoneyCard("Total net", total).WithDelta(total - m.baseline).RenderCompact())
		content.WriteString("\n")
	}

	content.WriteString("\n")
	hint := "↑↓ select • ←→ adjust • enter recalculate"
	if m.dirty {
		hint += " • " + tuistyles.InfoStyle.Render("changed")
	}
	content.WriteString(tuistyles.SubtitleStyle.Render(hint))
	return tuistyles.BorderStyle.Render(content.String())
}
