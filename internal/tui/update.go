package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.ledgerModel.SetSize(msg.Width, msg.Height)
		m.simulatorModel.SetSize(msg.Width, msg.Height)
		m.taxModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.homeModel.SetConfig(msg.Config)
		if p := msg.Config.Portfolio; p != nil {
			years := p.Years
			if years <= 0 {
				years = calculation.DefaultSimulationYears
			}
			m.simulatorModel.SetPlan(p.Withdrawals, years)
		}
		m.loading = true
		m.loadingMessage = "Calculating..."
		return m, calculateCmd(m.calcEngine, msg.Config)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.results = msg.Results
		m.ledger = msg.Ledger
		m.homeModel.SetResults(msg.Results)
		if fd := msg.Results.FixedDeposits; fd != nil && m.ledger != nil {
			m.ledgerModel.SetLedger(m.ledger.Periods, &fd.Summary)
		}
		if msg.Results.Portfolio != nil {
			m.simulatorModel.SetResult(msg.Results.Portfolio)
		}
		return m, nil

	case tuimsg.LedgerEditedMsg:
		return m.applyLedgerEdit(msg)

	case tuimsg.SimulationRequestedMsg:
		if m.config == nil || m.config.Portfolio == nil {
			return m, nil
		}
		return m, simulateCmd(m.calcEngine, m.config, msg.Plan)

	case SimulationCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.simulatorModel.SetResult(msg.Result)
		return m, nil

	case tuimsg.TaxRequestedMsg:
		return m, taxCmd(m.config, msg.Income)

	case TaxCompleteMsg:
		if msg.Err != nil {
			m.taxModel.SetError(msg.Err)
		} else {
			m.taxModel.SetResult(msg.Result)
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// applyLedgerEdit changes one expense, recomputes the months after it and
// refreshes the year-end summary.
func (m Model) applyLedgerEdit(msg tuimsg.LedgerEditedMsg) (tea.Model, tea.Cmd) {
	if m.ledger == nil || m.results == nil || m.results.FixedDeposits == nil {
		return m, nil
	}
	if err := m.ledger.EditExpense(msg.Index, msg.Expense); err != nil {
		m.err = err
		return m, nil
	}
	fd := m.results.FixedDeposits
	schedule := calculation.FDInput(m.config.FixedDeposits).Schedule
	if err := calculation.ResummarizeFD(fd, m.ledger, schedule); err != nil {
		m.err = err
		return m, nil
	}
	m.ledgerModel.SetLedger(m.ledger.Periods, &fd.Summary)
	return m, nil
}

// capturingInput reports whether the current scene is reading typed text.
func (m Model) capturingInput() bool {
	switch m.currentScene {
	case SceneLedger:
		return m.ledgerModel.Editing()
	case SceneTax:
		return m.taxModel.Editing()
	}
	return false
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.err != nil {
		// Any key dismisses the error.
		m.err = nil
		return m, nil
	}
	if m.capturingInput() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp)
	case "esc":
		if m.currentScene != SceneHome {
			if m.previousScene != m.currentScene {
				return m.navigate(m.previousScene)
			}
			return m.navigate(SceneHome)
		}
	case "h":
		return m.navigate(SceneHome)
	case "l":
		return m.navigate(SceneLedger)
	case "s":
		return m.navigate(SceneSimulator)
	case "t":
		return m.navigate(SceneTax)
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if scene == m.currentScene {
		return m, nil
	}
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneLedger:
		m.ledgerModel, cmd = m.ledgerModel.Update(msg)
	case SceneSimulator:
		m.simulatorModel, cmd = m.simulatorModel.Update(msg)
	case SceneTax:
		m.taxModel, cmd = m.taxModel.Update(msg)
	}
	return m, cmd
}
