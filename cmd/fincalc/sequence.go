package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/internal/sequencing"
	"github.com/rgehrsitz/fincalc/pkg/decimal"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence [input-file]",
	Short: "Build a withdrawal plan that sources a yearly income need",
	Long: `Build a withdrawal plan from a yearly gross income need.

Each year the chosen strategy draws the need from the interest the primary
fund and the other funds earn; undrawn interest stays invested. The
generated plan is then projected like any other plan.

Strategies:
  standard      other funds first, then the primary fund
  proportional  the same share of every track's interest
  bracket_fill  standard order, capped at a tax bracket edge
  custom        the track order given with --order

Examples:
  fincalc sequence household.yaml --need 2,000,000
  fincalc sequence household.yaml --strategy bracket_fill --bracket 1 --buffer 50,000
  fincalc sequence household.yaml --need 1,500,000 --strategy custom --order "Growth Fund,Other funds"
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadScenario(args[0])
		if cfg.Portfolio == nil {
			log.Fatal("scenario has no portfolio section")
		}
		if years, _ := cmd.Flags().GetInt("years"); years > 0 {
			cfg.Portfolio.Years = years
		}

		name, _ := cmd.Flags().GetString("strategy")
		order, _ := cmd.Flags().GetString("order")
		strategy, err := sequencing.CreateStrategy(name, parseList(order))
		if err != nil {
			log.Fatal(err)
		}

		need, _ := cmd.Flags().GetString("need")
		buffer, _ := cmd.Flags().GetString("buffer")
		var target *int
		if b, _ := cmd.Flags().GetInt("bracket"); b >= 0 {
			target = &b
		}
		brackets := calculation.TaxTable(cfg)
		sctx := sequencing.CreateStrategyContext(mustAmount("need", need), brackets, target, mustAmount("buffer", buffer))

		input, err := calculation.PortfolioInput(cfg.Portfolio, cfg.Portfolio.Withdrawals)
		if err != nil {
			log.Fatal(err)
		}

		engine, logger := newEngine(cmd)
		defer logger.Sync()
		planner := sequencing.NewPlanner(strategy)
		planner.Logger = engine.Logger
		seq, err := planner.Build(context.Background(), input, sctx)
		if err != nil {
			log.Fatal(err)
		}
		result, err := engine.RunPortfolio(cfg.Portfolio, seq.Plan, brackets)
		if err != nil {
			log.Fatal(err)
		}

		if printJSON(cmd, struct {
			Sequence   *sequencing.Result `json:"sequence"`
			Simulation interface{}        `json:"simulation"`
		}{seq, result.Simulation}) {
			return
		}

		var buf bytes.Buffer
		fmt.Fprintf(&buf, "Strategy: %s\n\n", seq.Strategy)
		fmt.Fprintf(&buf, "%4s %16s %16s %14s %9s %9s  %s\n", "Year", "Requested", "Sourced", "Shortfall", "Primary", "Other", "Notes")
		for i, y := range seq.Years {
			fmt.Fprintf(&buf, "%4d %16s %16s %14s %8.2f%% %8.2f%%  %s\n", y.Year,
				decimal.Grouped(y.Requested.InexactFloat64(), 2),
				decimal.Grouped(y.TotalSourced.InexactFloat64(), 2),
				decimal.Grouped(y.RemainingNeed.InexactFloat64(), 2),
				seq.Plan.Primary[i], seq.Plan.Other[i], strings.Join(y.Notes, "; "))
		}
		fmt.Fprintln(&buf, "\nGenerated plan projection:")
		output.WriteSimulation(&buf, result.Simulation)
		fmt.Fprintf(&buf, "\nTotal net withdrawal: %s\n", decimal.Grouped(calculation.TotalNetWithdrawal(result.Simulation), 2))
		cmd.OutOrStdout().Write(buf.Bytes())
	},
}

func init() {
	sequenceCmd.Flags().String("need", "0", "Gross income needed each year")
	sequenceCmd.Flags().String("strategy", sequencing.StrategyStandard, "Strategy ("+strings.Join(sequencing.AvailableStrategies(), ", ")+")")
	sequenceCmd.Flags().String("order", "", "Comma-separated track order for the custom strategy")
	sequenceCmd.Flags().Int("bracket", -1, "Bracket edge index for bracket_fill (default first edge)")
	sequenceCmd.Flags().String("buffer", "0", "Amount kept below the bracket edge")
	sequenceCmd.Flags().Int("years", 0, "Projection length (default from scenario, else 5)")
	sequenceCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	rootCmd.AddCommand(sequenceCmd)
}
