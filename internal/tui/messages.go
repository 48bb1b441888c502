package tui

import (
	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneLedger
	SceneSimulator
	SceneTax
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneLedger:
		return "Ledger"
	case SceneSimulator:
		return "Simulator"
	case SceneTax:
		return "Tax"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// CalculationCompleteMsg carries a full scenario run. Ledger is the editable
// ledger behind Results.FixedDeposits, nil when the scenario has no deposits.
type CalculationCompleteMsg struct {
	Results *domain.CalculationResults
	Ledger  *calculation.Ledger
	Err     error
}

// SimulationCompleteMsg carries a portfolio projection.
type SimulationCompleteMsg struct {
	Plan   domain.WithdrawalPlan
	Result *domain.PortfolioResult
	Err    error
}

// TaxCompleteMsg carries a tax calculation.
type TaxCompleteMsg struct {
	Result domain.TaxResult
	Err    error
}
