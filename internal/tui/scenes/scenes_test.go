package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
)

func keyPress(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func samplePeriods() []domain.LedgerPeriod {
	periods := make([]domain.LedgerPeriod, 12)
	for i := range periods {
		periods[i] = domain.LedgerPeriod{Index: i, PeriodExpense: 32_500, ClosingBalance: float64(i+1) * 50_000}
	}
	return periods
}

func TestLedgerModel_SelectAndEdit(t *testing.T) {
	m := NewLedgerModel()
	m.SetLedger(samplePeriods(), &domain.FDAnnualSummary{FinalSavings: 600_000})

	m, _ = m.Update(keyPress(tea.KeyDown))
	m, _ = m.Update(runes("j"))
	m, _ = m.Update(keyPress(tea.KeyUp))
	assert.Equal(t, 1, m.Selected())

	m, _ = m.Update(keyPress(tea.KeyEnter))
	require.True(t, m.Editing())
	assert.Contains(t, m.View(), "Feb expense")

	// Clear "32,500" and type a new amount.
	for i := 0; i < len("32,500"); i++ {
		m, _ = m.Update(keyPress(tea.KeyBackspace))
	}
	m, _ = m.Update(runes("45,000"))

	m, cmd := m.Update(keyPress(tea.KeyEnter))
	assert.False(t, m.Editing())
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.LedgerEditedMsg{Index: 1, Expense: 45_000}, cmd())
}

func TestLedgerModel_InvalidAmountKeepsEditing(t *testing.T) {
	m := NewLedgerModel()
	m.SetLedger(samplePeriods(), nil)
	m, _ = m.Update(keyPress(tea.KeyEnter))
	m, _ = m.Update(runes("x"))

	m, cmd := m.Update(keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.True(t, m.Editing())
	assert.Contains(t, m.View(), "not an amount")

	m, _ = m.Update(keyPress(tea.KeyEsc))
	assert.False(t, m.Editing())
	assert.NotContains(t, m.View(), "not an amount")
}

func TestLedgerModel_Empty(t *testing.T) {
	m := NewLedgerModel()
	m, cmd := m.Update(keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.False(t, m.Editing())
	assert.Contains(t, m.View(), "No fixed deposits configured")
}

func TestSimulatorModel_AdjustAndRequest(t *testing.T) {
	m := NewSimulatorModel()
	m.SetPlan(domain.WithdrawalPlan{Primary: []float64{50}, Other: []float64{20, 40}}, 2)
	assert.Equal(t, domain.WithdrawalPlan{Primary: []float64{50, 0}, Other: []float64{20, 40}}, m.Plan())

	// Focus order is Y1 primary, Y1 other, Y2 primary, Y2 other.
	m, _ = m.Update(keyPress(tea.KeyRight))
	m, _ = m.Update(keyPress(tea.KeyDown))
	m, _ = m.Update(keyPress(tea.KeyLeft))
	m, _ = m.Update(keyPress(tea.KeyDown))
	m, _ = m.Update(keyPress(tea.KeyDown))
	m, _ = m.Update(keyPress(tea.KeyDown)) // stays on the last slider
	m, _ = m.Update(runes("+"))
	assert.True(t, m.Dirty())

	want := domain.WithdrawalPlan{Primary: []float64{60, 0}, Other: []float64{10, 50}}
	assert.Equal(t, want, m.Plan())

	m, cmd := m.Update(keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.SimulationRequestedMsg{Plan: want}, cmd())
	assert.Contains(t, m.View(), "changed")
}

func TestSimulatorModel_ResultAndBaseline(t *testing.T) {
	m := NewSimulatorModel()
	assert.Contains(t, m.View(), "No portfolio configured")

	m.SetPlan(domain.WithdrawalPlan{Primary: []float64{100}}, 1)
	first := &domain.PortfolioResult{Simulation: []domain.SimulationYear{{Year: 1, NetWithdrawal: 1_000_000}}}
	m.SetResult(first)
	assert.Equal(t, 1_000_000.0, m.baseline)

	second := &domain.PortfolioResult{Simulation: []domain.SimulationYear{{Year: 1, NetWithdrawal: 1_200_000}}}
	m.SetResult(second)
	assert.Equal(t, 1_000_000.0, m.baseline)
	assert.False(t, m.Dirty())

	out := m.View()
	assert.Contains(t, out, "Net withdrawal")
	assert.Contains(t, out, "1,200,000")
}

func TestTaxModel(t *testing.T) {
	m := NewTaxModel()
	require.True(t, m.Editing())

	m, _ = m.Update(runes("2,000,000"))
	m, cmd := m.Update(keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.TaxRequestedMsg{Income: 2_000_000}, cmd())

	m.SetResult(domain.TaxResult{Income: 2_000_000, Tax: 66_000})
	assert.Contains(t, m.View(), "66,000.00")

	m, _ = m.Update(keyPress(tea.KeyEsc))
	assert.False(t, m.Editing())
	m, _ = m.Update(runes("e"))
	assert.True(t, m.Editing())
}

func TestTaxModel_RejectsGarbage(t *testing.T) {
	m := NewTaxModel()
	m, _ = m.Update(runes("lots"))
	m, cmd := m.Update(keyPress(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "not an amount")
}

func TestHomeModel_View(t *testing.T) {
	m := NewHomeModel()
	m.SetSize(120, 40)
	m.SetConfig(&domain.Configuration{Name: "Household"})
	m.SetResults(&domain.CalculationResults{
		Name:     "Household",
		Warnings: []string{"top bracket rate is 0"},
		Loans:    []domain.LoanResult{{Name: "House", Installment: 181_782.49}},
	})
	out := m.View()
	assert.Contains(t, out, "House")
	assert.Contains(t, out, "top bracket rate is 0")
}
