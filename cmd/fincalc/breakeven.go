package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fincalc/internal/breakeven"
)

var breakEvenCmd = &cobra.Command{
	Use:   "break-even [input-file]",
	Short: "Find the flat withdrawal percentage that meets an income or capital goal",
	Long: `Find the flat withdrawal percentage that meets a goal.

With --target-income the solver matches the first year's net withdrawal.
With --target-capital it finds the highest percentage that still ends the
projection with at least that much capital.

Examples:
  fincalc break-even household.yaml --target-income 2,400,000
  fincalc break-even household.yaml --target-capital 20,000,000 --adjust both
  fincalc break-even household.yaml --target-capital 20,000,000 --adjust all
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadScenario(args[0])
		if cfg.Portfolio == nil {
			log.Fatal("scenario has no portfolio section")
		}

		income, _ := cmd.Flags().GetString("target-income")
		capital, _ := cmd.Flags().GetString("target-capital")
		constraints := breakeven.DefaultConstraints()
		var goal breakeven.OptimizationGoal
		switch {
		case income != "" && capital != "":
			log.Fatal("use either --target-income or --target-capital, not both")
		case income != "":
			goal = breakeven.GoalMatchIncome
			v := decimal.NewFromFloat(mustAmount("target-income", income))
			constraints.TargetIncome = &v
		case capital != "":
			goal = breakeven.GoalPreserveCapital
			v := decimal.NewFromFloat(mustAmount("target-capital", capital))
			constraints.TargetCapital = &v
		default:
			log.Fatal("--target-income or --target-capital is required")
		}
		if v, _ := cmd.Flags().GetFloat64("min"); v > 0 {
			d := decimal.NewFromFloat(v)
			constraints.MinPercent = &d
		}
		if v, _ := cmd.Flags().GetFloat64("max"); v < 100 {
			d := decimal.NewFromFloat(v)
			constraints.MaxPercent = &d
		}

		engine, logger := newEngine(cmd)
		defer logger.Sync()
		solver := breakeven.NewDefaultSolver(engine)
		format, _ := cmd.Flags().GetString("format")
		adjust, _ := cmd.Flags().GetString("adjust")

		var out string
		var err error
		if adjust == "all" {
			md, serr := solver.OptimizeAllTargets(context.Background(), cfg, constraints, goal)
			if serr != nil {
				log.Fatal(serr)
			}
			if format == "json" {
				out, err = (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(md)
			} else {
				out = (&breakeven.TableFormatter{}).FormatMultiDimensional(md)
			}
		} else {
			target, ok := targetFor(adjust)
			if !ok {
				log.Fatalf("--adjust must be primary, other, both or all, got %q", adjust)
			}
			result, serr := solver.Optimize(context.Background(), breakeven.OptimizationRequest{
				Config:      cfg,
				Target:      target,
				Goal:        goal,
				Constraints: constraints,
			})
			if serr != nil {
				log.Fatal(serr)
			}
			if format == "json" {
				out, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result)
			} else {
				out = (&breakeven.TableFormatter{}).Format(result)
			}
		}
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	},
}

func targetFor(adjust string) (breakeven.OptimizationTarget, bool) {
	switch adjust {
	case "primary":
		return breakeven.OptimizePrimaryPercent, true
	case "other":
		return breakeven.OptimizeOtherPercent, true
	case "both":
		return breakeven.OptimizeBothPercent, true
	}
	return "", false
}

func init() {
	breakEvenCmd.Flags().String("target-income", "", "First-year net withdrawal to match")
	breakEvenCmd.Flags().String("target-capital", "", "Capital to keep at the end of the projection")
	breakEvenCmd.Flags().String("adjust", "primary", "Track to adjust (primary, other, both, all)")
	breakEvenCmd.Flags().Float64("min", 0, "Lowest withdrawal percentage to consider")
	breakEvenCmd.Flags().Float64("max", 100, "Highest withdrawal percentage to consider")
	breakEvenCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	rootCmd.AddCommand(breakEvenCmd)
}
