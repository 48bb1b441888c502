package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/components"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
	"github.com/rgehrsitz/fincalc/pkg/decimal"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func monthName(i int) string {
	if i >= 0 && i < len(monthNames) {
		return monthNames[i]
	}
	return fmt.Sprintf("M%d", i+1)
}

// LedgerModel shows the savings ledger and edits one month's expense at a
// time. Edits are sent to the parent, which owns the ledger and recomputes.
type LedgerModel struct {
	periods  []domain.LedgerPeriod
	summary  *domain.FDAnnualSummary
	selected int
	editing  bool
	input    textinput.Model
	err      string
	width    int
	height   int
}

// NewLedgerModel creates a new ledger scene model
func NewLedgerModel() *LedgerModel {
	ti := textinput.New()
	ti.Placeholder = "e.g., 32,500"
	ti.CharLimit = 16
	ti.Width = 18
	return &LedgerModel{input: ti}
}

// SetLedger replaces the periods and year-end summary shown.
func (m *LedgerModel) SetLedger(periods []domain.LedgerPeriod, summary *domain.FDAnnualSummary) {
	m.periods = periods
	m.summary = summary
	if m.selected >= len(periods) {
		m.selected = 0
	}
}

// SetSize updates the model dimensions
func (m *LedgerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted period index.
func (m *LedgerModel) Selected() int { return m.selected }

// Editing reports whether keystrokes belong to the expense input.
func (m *LedgerModel) Editing() bool { return m.editing }

// Update handles messages for the ledger scene
func (m *LedgerModel) Update(msg tea.Msg) (*LedgerModel, tea.Cmd) {
	if m.editing {
		return m.updateInput(msg)
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.periods) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selected < len(m.periods)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "e"))):
		m.editing = true
		m.err = ""
		m.input.SetValue(decimal.Grouped(m.periods[m.selected].PeriodExpense, 0))
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *LedgerModel) updateInput(msg tea.Msg) (*LedgerModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			amount, err := domain.ParseAmount(m.input.Value())
			if err != nil {
				m.err = fmt.Sprintf("not an amount: %q", m.input.Value())
				return m, nil
			}
			m.editing = false
			m.input.Blur()
			index, expense := m.selected, amount.Float64()
			return m, func() tea.Msg {
				return tuimsg.LedgerEditedMsg{Index: index, Expense: expense}
			}
		case tea.KeyEsc:
			m.editing = false
			m.err = ""
			m.input.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the ledger table
func (m *LedgerModel) View() string {
	if len(m.periods) == 0 {
		return tuistyles.BorderStyle.Render(tuistyles.InfoStyle.Render("No fixed deposits configured"))
	}
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Savings Ledger"))
	content.WriteString("\n\n")

	header := fmt.Sprintf("  %-5s %13s %11s %13s %11s %10s %13s", "Month", "Opening", "Interest", "Available", "Expense", "Levy", "Closing")
	content.WriteString(tuistyles.TableHeaderStyle.Render(header))
	content.WriteString("\n")
	for i, p := range m.periods {
		row := fmt.Sprintf("%-5s %13s %11s %13s %11s %10s %13s", monthName(p.Index),
			decimal.Grouped(p.OpeningBalance, 0), decimal.Grouped(p.IncidentalYield, 0),
			decimal.Grouped(p.TotalAvailable, 0), decimal.Grouped(p.PeriodExpense, 0),
			decimal.Grouped(p.Levy, 0), decimal.Grouped(p.ClosingBalance, 0))
		if i == m.selected {
			content.WriteString(tuistyles.TableHighlightStyle.Render("▸ " + row))
		} else {
			content.WriteString(tuistyles.TableCellStyle.Render("  " + row))
		}
		content.WriteString("\n")
	}

	if m.summary != nil {
		content.WriteString("\n")
		cards := []*components.MetricCard{
			components.NewMoneyCard("Assessable income", m.summary.AssessableIncome),
			components.NewMoneyCard("Tax", m.summary.Tax),
			components.NewMoneyCard("Withheld", m.summary.WithholdingPaid),
			components.NewMoneyCard("Final savings", m.summary.FinalSavings),
		}
		for _, c := range cards {
			content.WriteString(c.RenderCompact())
			content.WriteString("   ")
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	if m.editing {
		content.WriteString(fmt.Sprintf("%s expense: %s", monthName(m.selected), m.input.View()))
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render("enter to apply • esc to cancel"))
	} else {
		content.WriteString(tuistyles.SubtitleStyle.Render("↑↓ select month • enter edit expense"))
	}
	if m.err != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.ErrorStyle.Render(m.err))
	}
	return tuistyles.BorderStyle.Render(content.String())
}
