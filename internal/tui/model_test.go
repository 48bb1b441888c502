package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
)

func householdConfig() *domain.Configuration {
	return &domain.Configuration{
		Name: "Household",
		FixedDeposits: &domain.FixedDepositConfig{
			SavingsRatePercent: 4.5,
			MonthlyExpense:     domain.NewAmount(32_500),
			Deposits: []domain.DepositConfig{
				{Name: "Local", Currency: domain.LKR, Principal: domain.NewAmount(20_000_000), AnnualRatePercent: 10},
			},
		},
		Portfolio: &domain.PortfolioConfig{
			PrimaryFund: "Growth",
			Funds: []domain.FundConfig{
				{Name: "Growth", Currency: domain.LKR, Capital: domain.NewAmount(10_000_000), AnnualRatePercent: 12},
				{Name: "Income", Currency: domain.LKR, Capital: domain.NewAmount(5_000_000), AnnualRatePercent: 9},
			},
			Withdrawals: domain.WithdrawalPlan{Primary: []float64{50, 50}, Other: []float64{100}},
		},
	}
}

// step applies msg and returns the updated model with its command.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// loaded returns a model that has loaded and calculated householdConfig.
func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel("household.yaml")
	m, cmd := step(t, m, ConfigLoadedMsg{Config: householdConfig()})
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	msg := cmd()
	done, ok := msg.(CalculationCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	require.NotNil(t, done.Ledger)

	m, _ = step(t, m, done)
	assert.False(t, m.loading)
	require.NotNil(t, m.results)
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadAndCalculate(t *testing.T) {
	m := loaded(t)

	assert.NotNil(t, m.results.FixedDeposits)
	assert.NotNil(t, m.results.Portfolio)
	assert.Len(t, m.ledger.Periods, 12)
	assert.Equal(t, domain.WithdrawalPlan{Primary: []float64{50, 50, 0, 0, 0}, Other: []float64{100, 0, 0, 0, 0}}, m.simulatorModel.Plan())
	assert.Contains(t, m.View(), "Household")
}

func TestModel_LedgerEditRecomputesSummary(t *testing.T) {
	m := loaded(t)
	before := append([]domain.LedgerPeriod(nil), m.ledger.Periods...)
	finalBefore := m.results.FixedDeposits.Summary.FinalSavings

	m, _ = step(t, m, tuimsg.LedgerEditedMsg{Index: 5, Expense: 100_000})

	require.NoError(t, m.err)
	for i := 0; i < 5; i++ {
		assert.Equal(t, before[i], m.ledger.Periods[i], "period %d should be untouched", i)
	}
	assert.Equal(t, 100_000.0, m.ledger.Periods[5].PeriodExpense)
	assert.Less(t, m.ledger.Periods[11].ClosingBalance, before[11].ClosingBalance)
	assert.Less(t, m.results.FixedDeposits.Summary.FinalSavings, finalBefore)
	assert.Equal(t, m.ledger.Periods, m.results.FixedDeposits.Ledger)
}

func TestModel_LedgerEditOutOfRange(t *testing.T) {
	m := loaded(t)
	m, _ = step(t, m, tuimsg.LedgerEditedMsg{Index: 12, Expense: 1})
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "Error")

	// Any key dismisses the error.
	m, _ = step(t, m, keyRunes("x"))
	assert.NoError(t, m.err)
}

func TestModel_Navigation(t *testing.T) {
	m := loaded(t)

	tests := []struct {
		key  string
		from Scene
		want Scene
	}{
		{"l", SceneHome, SceneLedger},
		{"s", SceneHome, SceneSimulator},
		{"?", SceneHome, SceneHelp},
		{"t", SceneHome, SceneTax},
		{"h", SceneLedger, SceneHome},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			start := m
			start.currentScene = tt.from
			_, cmd := step(t, start, keyRunes(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, NavigateMsg{Scene: tt.want}, cmd())
		})
	}

	t.Run("same scene", func(t *testing.T) {
		_, cmd := step(t, m, keyRunes("h"))
		assert.Nil(t, cmd)
	})
}

func TestModel_EditingCapturesKeys(t *testing.T) {
	m := loaded(t)
	m, _ = step(t, m, NavigateMsg{Scene: SceneLedger})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.ledgerModel.Editing())

	// "h" is typed into the input rather than going home.
	m, cmd := step(t, m, keyRunes("h"))
	if cmd != nil {
		_, isNav := cmd().(NavigateMsg)
		assert.False(t, isNav)
	}
	assert.Equal(t, SceneLedger, m.currentScene)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.ledgerModel.Editing())
}

func TestModel_SimulationRoundTrip(t *testing.T) {
	m := loaded(t)
	plan := domain.WithdrawalPlan{Primary: []float64{100}, Other: []float64{100}}

	m, cmd := step(t, m, tuimsg.SimulationRequestedMsg{Plan: plan})
	require.NotNil(t, cmd)
	done, ok := cmd().(SimulationCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	require.NotNil(t, done.Result)
	assert.Equal(t, plan, done.Plan)

	m, _ = step(t, m, done)
	assert.NoError(t, m.err)
	assert.False(t, m.simulatorModel.Dirty())
}

func TestModel_TaxRoundTrip(t *testing.T) {
	m := loaded(t)

	m, cmd := step(t, m, tuimsg.TaxRequestedMsg{Income: 2_000_000})
	require.NotNil(t, cmd)
	done, ok := cmd().(TaxCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.InDelta(t, 66_000, done.Result.Tax, 0.005)

	m, _ = step(t, m, done)
	m, _ = step(t, m, NavigateMsg{Scene: SceneTax})
	assert.Contains(t, m.View(), "66,000")
}

func TestModel_CalculationError(t *testing.T) {
	m := NewModel("broken.yaml")
	m, _ = step(t, m, CalculationCompleteMsg{Err: errors.New("boom")})
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "boom")
}

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel("household.yaml")
	for _, k := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := step(t, m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestScene_String(t *testing.T) {
	assert.Equal(t, "Ledger", SceneLedger.String())
	assert.Equal(t, "Unknown", Scene(99).String())
}
