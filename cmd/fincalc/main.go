package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/compare"
	"github.com/rgehrsitz/fincalc/internal/config"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/logging"
	"github.com/rgehrsitz/fincalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fincalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "fincalc",
	Short: "Personal finance calculator CLI",
	Long:  "Income tax, loan, fixed deposit, savings ledger and withdrawal projections for a household",
}

// loadSettings reads the --settings file (if any) plus FINCALC_* overrides.
func loadSettings(cmd *cobra.Command) *config.Settings {
	path, _ := cmd.Flags().GetString("settings")
	settings, err := config.LoadSettings(path)
	if err != nil {
		log.Fatal(err)
	}
	return settings
}

// newLogger builds the zap logger from settings and the --log-level flag.
func newLogger(cmd *cobra.Command, settings *config.Settings) *zap.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := logging.New(settings.Log, level)
	if err != nil {
		log.Fatal(err)
	}
	return logger
}

// newEngine returns a calculation engine that logs through zap.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, *zap.Logger) {
	logger := newLogger(cmd, loadSettings(cmd))
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewCalculationLogger(logger))
	engine.Debug, _ = cmd.Flags().GetBool("debug")
	return engine, logger
}

func loadScenario(path string) *domain.Configuration {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// formatName returns --format, falling back to the settings default.
func formatName(cmd *cobra.Command) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	return loadSettings(cmd).Output.Format
}

// writeResults prints results with the chosen formatter, or writes them to a
// timestamped file when --output-dir is set.
func writeResults(cmd *cobra.Command, results *domain.CalculationResults) {
	name := formatName(cmd)
	f := output.GetFormatterByName(name)
	if f == nil {
		log.Fatalf("unknown format %q (available: %s)", name, strings.Join(output.AvailableFormatAliases(), ", "))
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal(err)
		}
		path, err := output.WriteFormatted(f, results, dir, extensionFor(f.Name()))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
		return
	}
	data, err := f.Format(results)
	if err != nil {
		log.Fatal(err)
	}
	cmd.OutOrStdout().Write(data)
}

func extensionFor(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "json":
		return "json"
	}
	return "txt"
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate every section of a scenario file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadScenario(args[0])
		engine, logger := newEngine(cmd)
		defer logger.Sync()

		results, err := engine.Run(cfg)
		if err != nil {
			log.Fatal(err)
		}
		writeResults(cmd, results)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadScenario(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare withdrawal plans against the scenario's plan",
	Long: `Compare the scenario's withdrawal plan against named plans or built-in templates.

Examples:
  fincalc compare household.yaml --with interest_only,ramp_up
  fincalc compare household.yaml --base cautious --with reinvest --format csv
  fincalc compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			registry := compare.CreateBuiltInTemplates()
			for _, name := range registry.List() {
				t, _ := registry.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s\n", t.Name, t.Description)
			}
			return
		}
		if len(args) == 0 {
			log.Fatal("input file required for comparison (use --list-templates to see available templates)")
		}

		cfg := loadScenario(args[0])
		withStr, _ := cmd.Flags().GetString("with")
		base, _ := cmd.Flags().GetString("base")
		with := parseList(withStr)
		if len(with) == 0 {
			log.Fatal("--with flag is required to specify plans to compare (or use --list-templates)")
		}

		engine, logger := newEngine(cmd)
		defer logger.Sync()
		set, err := compare.NewCompareEngine(engine).Compare(context.Background(), cfg, compare.CompareOptions{BasePlan: base, With: with})
		if err != nil {
			log.Fatal(err)
		}
		set.ConfigPath, _ = filepath.Abs(args[0])

		format, _ := cmd.Flags().GetString("format")
		var out string
		switch format {
		case "csv":
			out, err = (&compare.CSVFormatter{}).Format(set)
		case "json":
			out, err = (&compare.JSONFormatter{}).Format(set)
		case "compact":
			out = (&compare.TableFormatter{}).FormatCompact(set)
		default:
			out = (&compare.TableFormatter{}).Format(set)
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	},
}

// parseList splits a comma-separated flag value, dropping blanks.
func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides settings")
	rootCmd.PersistentFlags().String("settings", "", "Path to an application settings file")
	rootCmd.PersistentFlags().Bool("debug", false, "Log intermediate figures")

	calculateCmd.Flags().StringP("format", "f", "", "Output format (console, csv, json)")
	calculateCmd.Flags().String("output-dir", "", "Write the report to a timestamped file in this directory")

	compareCmd.Flags().String("base", "", "Named plan to compare against (default: the scenario's withdrawals)")
	compareCmd.Flags().String("with", "", "Comma-separated plans or templates to compare (required)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List the built-in withdrawal templates")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd())
	initCalculatorCommands()
	initServiceCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
