package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration
	results    *domain.CalculationResults
	ledger     *calculation.Ledger

	// Calculation engine
	calcEngine *calculation.CalculationEngine

	// Scene models
	homeModel      *scenes.HomeModel
	ledgerModel    *scenes.LedgerModel
	simulatorModel *scenes.SimulatorModel
	taxModel       *scenes.TaxModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(configPath string) Model {
	return Model{
		currentScene:   SceneHome,
		configPath:     configPath,
		calcEngine:     calculation.NewCalculationEngine(),
		homeModel:      scenes.NewHomeModel(),
		ledgerModel:    scenes.NewLedgerModel(),
		simulatorModel: scenes.NewSimulatorModel(),
		taxModel:       scenes.NewTaxModel(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading configuration...",
	}
}

// SetLogger routes calculation logs, e.g. to a file while the UI owns the terminal.
func (m *Model) SetLogger(l calculation.Logger) {
	m.calcEngine.SetLogger(l)
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// calculateCmd runs the whole scenario and keeps the editable ledger.
func calculateCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration) tea.Cmd {
	return func() tea.Msg {
		results, err := engine.Run(cfg)
		if err != nil {
			return CalculationCompleteMsg{Err: err}
		}
		msg := CalculationCompleteMsg{Results: results}
		if cfg.FixedDeposits != nil {
			fd, ledger, err := engine.RunFixedDeposits(cfg.FixedDeposits)
			if err != nil {
				return CalculationCompleteMsg{Err: err}
			}
			results.FixedDeposits = fd
			msg.Ledger = ledger
		}
		return msg
	}
}

// simulateCmd projects the portfolio under plan.
func simulateCmd(engine *calculation.CalculationEngine, cfg *domain.Configuration, plan domain.WithdrawalPlan) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.RunPortfolio(cfg.Portfolio, plan, calculation.TaxTable(cfg))
		return SimulationCompleteMsg{Plan: plan, Result: result, Err: err}
	}
}

// taxCmd computes the tax on income with the scenario's bracket table.
func taxCmd(cfg *domain.Configuration, income float64) tea.Cmd {
	return func() tea.Msg {
		result, err := calculation.ComputeTax(income, calculation.TaxTable(cfg))
		return TaxCompleteMsg{Result: result, Err: err}
	}
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
