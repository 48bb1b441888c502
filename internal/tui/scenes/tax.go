package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
	"github.com/rgehrsitz/fincalc/pkg/decimal"
)

// TaxModel computes the progressive tax on an entered income.
type TaxModel struct {
	input  textinput.Model
	result *domain.TaxResult
	err    string
	width  int
	height int
}

// NewTaxModel creates a new tax scene model with the input focused.
func NewTaxModel() *TaxModel {
	ti := textinput.New()
	ti.Placeholder = "e.g., 2,000,000"
	ti.CharLimit = 20
	ti.Width = 20
	ti.Focus()
	return &TaxModel{input: ti}
}

// SetSize updates the model dimensions
func (m *TaxModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResult shows a calculated tax.
func (m *TaxModel) SetResult(result domain.TaxResult) {
	m.result = &result
	m.err = ""
}

// SetError shows a calculation failure.
func (m *TaxModel) SetError(err error) {
	m.err = err.Error()
}

// Editing reports whether keystrokes belong to the income input.
func (m *TaxModel) Editing() bool { return m.input.Focused() }

// Update handles messages for the tax scene
func (m *TaxModel) Update(msg tea.Msg) (*TaxModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.input.Focused() {
		if ok && key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "e"))) {
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}
	if ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			amount, err := domain.ParseAmount(m.input.Value())
			if err != nil {
				m.err = fmt.Sprintf("not an amount: %q", m.input.Value())
				return m, nil
			}
			income := amount.Float64()
			return m, func() tea.Msg { return tuimsg.TaxRequestedMsg{Income: income} }
		case tea.KeyEsc:
			m.input.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the income input and bracket breakdown
func (m *TaxModel) View() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Income Tax"))
	content.WriteString("\n\n")
	content.WriteString("Annual income: " + m.input.View())
	content.WriteString("\n\n")

	if r := m.result; r != nil {
		header := fmt.Sprintf("%-26s %8s %16s %14s", "Range", "Rate", "Taxable", "Tax")
		content.WriteString(tuistyles.TableHeaderStyle.Render(header))
		content.WriteString("\n")
		for _, s := range r.Breakdown {
			content.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("%-26s %8s %16s %14s",
				s.Range, decimal.Percent(s.Rate), decimal.Grouped(s.TaxableInRange, 0), decimal.Grouped(s.TaxInRange, 2))))
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(tuistyles.MetricLabelStyle.Render("Total tax: "))
		content.WriteString(tuistyles.MetricValueStyle.Render(decimal.Grouped(r.Tax, 2)))
		content.WriteString(tuistyles.MetricLabelStyle.Render("   Effective rate: "))
		content.WriteString(tuistyles.MetricValueStyle.Render(decimal.Percent(r.EffectiveRate())))
		content.WriteString("\n")
	}
	if m.err != "" {
		content.WriteString(tuistyles.ErrorStyle.Render(m.err))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	if m.input.Focused() {
		content.WriteString(tuistyles.SubtitleStyle.Render("enter calculate • esc leave input"))
	} else {
		content.WriteString(tuistyles.SubtitleStyle.Render("enter edit income"))
	}
	return tuistyles.BorderStyle.Render(content.String())
}
