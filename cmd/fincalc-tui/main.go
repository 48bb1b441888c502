package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/logging"
	"github.com/rgehrsitz/fincalc/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: fincalc-tui <scenario-file>")
		os.Exit(1)
	}
	configPath := os.Args[1]

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Scenario file not found: %s\n", configPath)
		os.Exit(1)
	}

	model := tui.NewModel(configPath)

	// The terminal belongs to the UI, so calculation logs only go to a file
	// (FINCALC_LOG_OUTPUT_FILE).
	settings, err := config.LoadSettings(os.Getenv(config.EnvPrefix + "_SETTINGS"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if settings.Log.OutputFile != "" {
		logger, err := logging.New(settings.Log, "")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		model.SetLogger(logging.NewCalculationLogger(logger))
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
