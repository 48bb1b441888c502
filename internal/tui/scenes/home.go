package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/components"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// HomeModel is the dashboard: portfolio, deposit income and loans at a glance.
type HomeModel struct {
	config  *domain.Configuration
	results *domain.CalculationResults
	width   int
	height  int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetConfig updates the configuration
func (m *HomeModel) SetConfig(config *domain.Configuration) {
	m.config = config
}

// SetResults updates the figures shown.
func (m *HomeModel) SetResults(results *domain.CalculationResults) {
	m.results = results
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Home scene is passive; navigation is handled by the parent.
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	if m.config == nil {
		return tuistyles.BorderStyle.Render(
			tuistyles.TitleStyle.Render("Personal Finance Calculator") + "\n\n" +
				tuistyles.SubtitleStyle.Render("Loading configuration..."))
	}

	var content strings.Builder
	name := m.config.Name
	if name == "" {
		name = "Scenario"
	}
	content.WriteString(tuistyles.TitleStyle.Render(name))
	content.WriteString("\n\n")

	if m.results == nil {
		content.WriteString(tuistyles.SubtitleStyle.Render("Calculating..."))
		return tuistyles.BorderStyle.Render(content.String())
	}

	if p := m.results.Portfolio; p != nil {
		content.WriteString(m.renderPortfolio(p))
		content.WriteString("\n\n")
	}
	if fd := m.results.FixedDeposits; fd != nil {
		content.WriteString(m.renderDeposits(fd))
		content.WriteString("\n\n")
	}
	if len(m.results.Loans) > 0 {
		content.WriteString(m.renderLoans(m.results.Loans))
		content.WriteString("\n\n")
	}
	for _, w := range m.results.Warnings {
		content.WriteString(tuistyles.ErrorStyle.Render("! " + w))
		content.WriteString("\n")
	}
	content.WriteString(tuistyles.SubtitleStyle.Render("l ledger • s simulator • t tax"))
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *HomeModel) columns() int {
	if m.width >= 120 {
		return 4
	}
	if m.width >= 90 {
		return 3
	}
	return 2
}

func (m *HomeModel) renderPortfolio(p *domain.PortfolioResult) string {
	cards := []*components.MetricCard{}
	for _, t := range p.Summary.Totals {
		cards = append(cards,
			components.NewMoneyCard(fmt.Sprintf("Capital (%s)", t.Currency), t.Capital),
			components.NewMoneyCard(fmt.Sprintf("Yearly yield (%s)", t.Currency), t.Yearly).
				WithDescription(tuistyles.FormatCurrency(t.Monthly)+" per month"))
	}
	if len(p.Simulation) > 0 {
		first := p.Simulation[0]
		cards = append(cards, components.NewMoneyCard("Year 1 net withdrawal", first.NetWithdrawal).
			WithDescription("tax "+tuistyles.FormatCurrency(first.Tax)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SectionStyle.Render("Fund Portfolio"),
		components.MetricGrid(cards, m.columns()))
}

func (m *HomeModel) renderDeposits(fd *domain.FDIncomeResult) string {
	s := fd.Summary
	payable := components.NewMoneyCard("Tax payable", s.NetTaxPayable)
	if s.NetTaxPayable < 0 {
		payable = components.NewMoneyCard("Tax refund", -s.NetTaxPayable)
	}
	cards := []*components.MetricCard{
		components.NewMoneyCard("Net monthly income", fd.TotalNetMonthly),
		components.NewMoneyCard("Final savings", s.FinalSavings).WithDescription("after year-end tax"),
		payable,
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.SectionStyle.Render("Fixed Deposits"),
		components.MetricGrid(cards, m.columns()))
}

func (m *HomeModel) renderLoans(loans []domain.LoanResult) string {
	lines := []string{tuistyles.SectionStyle.Render("Loans")}
	for _, l := range loans {
		card := components.NewMetricCard(l.Name, tuistyles.FormatCurrency(l.Installment)+" / month").
			WithDescription("interest " + tuistyles.FormatCurrency(l.TotalInterest))
		lines = append(lines, "  "+card.RenderCompact())
	}
	return strings.Join(lines, "\n")
}
