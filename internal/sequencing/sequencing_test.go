package sequencing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

func twoTracks(years int) domain.SimulationInput {
	return domain.SimulationInput{
		Years: years,
		Tracks: []domain.TrackInput{
			{Name: "Growth", Capital: 10_000_000, Rate: 0.12},
			{Name: calculation.OtherFundsTrack, Capital: 5_000_000, Rate: 0.09},
		},
	}
}

func firstYearSources() []WithdrawalSource {
	input := twoTracks(1)
	return CreateWithdrawalSources(input.Tracks, []decimal.Decimal{
		decimal.NewFromInt(10_000_000),
		decimal.NewFromInt(5_000_000),
	})
}

func testBrackets() domain.BracketTable {
	return domain.BracketTable{
		{UpperBound: 500_000, Rate: 0},
		{UpperBound: 1_000_000, Rate: 0.06},
		{UpperBound: domain.Unbounded, Rate: 0.12},
	}
}

func gross(t *testing.T, plan YearPlan, source string) float64 {
	t.Helper()
	for _, a := range plan.Allocations {
		if a.Source == source {
			return a.Gross.InexactFloat64()
		}
	}
	return 0
}

func TestCreateStrategy(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{name: "", expected: StrategyStandard},
		{name: "standard", expected: StrategyStandard},
		{name: "Proportional", expected: StrategyProportional},
		{name: "bracket_fill", expected: StrategyBracketFill},
		{name: "custom", expected: StrategyCustom},
	}
	for _, tt := range tests {
		t.Run(tt.expected+"/"+tt.name, func(t *testing.T) {
			strategy, err := CreateStrategy(tt.name, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, strategy.Name())
		})
	}

	_, err := CreateStrategy("roth_first", nil)
	assert.ErrorContains(t, err, "unknown sequencing strategy")
}

func TestCreateWithdrawalSources(t *testing.T) {
	sources := firstYearSources()
	require.Len(t, sources, 2)

	assert.Equal(t, "Growth", sources[0].Name)
	assert.Equal(t, 2, sources[0].Priority)
	assert.InDelta(t, 1_200_000, sources[0].Available.InexactFloat64(), 1e-6)

	assert.Equal(t, calculation.OtherFundsTrack, sources[1].Name)
	assert.Equal(t, 1, sources[1].Priority)
	assert.InDelta(t, 450_000, sources[1].Available.InexactFloat64(), 1e-6)
}

func TestCreateStrategyContext(t *testing.T) {
	ctx := CreateStrategyContext(1_000, testBrackets(), nil, 50)
	require.Len(t, ctx.BracketEdges, 2)
	assert.True(t, ctx.BracketEdges[0].Equal(decimal.NewFromInt(500_000)))
	assert.True(t, ctx.BracketEdges[1].Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, ctx.NeedAmount.Equal(decimal.NewFromInt(1_000)))
	assert.True(t, ctx.BracketBuffer.Equal(decimal.NewFromInt(50)))
}

func TestStandardStrategy(t *testing.T) {
	tests := []struct {
		name      string
		need      float64
		other     float64
		growth    float64
		remaining float64
		note      bool
	}{
		{name: "other funds cover the need", need: 300_000, other: 300_000},
		{name: "spills into the primary fund", need: 1_000_000, other: 450_000, growth: 550_000},
		{name: "not enough interest", need: 2_000_000, other: 450_000, growth: 1_200_000, remaining: 350_000, note: true},
		{name: "nothing needed", need: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewStandardStrategy().Plan(firstYearSources(), CreateStrategyContext(tt.need, nil, nil, 0))

			assert.Equal(t, StrategyStandard, plan.StrategyUsed)
			assert.InDelta(t, tt.other, gross(t, plan, calculation.OtherFundsTrack), 1e-6)
			assert.InDelta(t, tt.growth, gross(t, plan, "Growth"), 1e-6)
			assert.InDelta(t, tt.remaining, plan.RemainingNeed.InexactFloat64(), 1e-6)
			if tt.note {
				assert.Contains(t, plan.Notes, "insufficient interest to meet request")
			} else {
				assert.Empty(t, plan.Notes)
			}
		})
	}
}

func TestProportionalStrategy(t *testing.T) {
	plan := NewProportionalStrategy().Plan(firstYearSources(), CreateStrategyContext(825_000, nil, nil, 0))

	assert.InDelta(t, 600_000, gross(t, plan, "Growth"), 1e-6)
	assert.InDelta(t, 225_000, gross(t, plan, calculation.OtherFundsTrack), 1e-6)
	assert.InDelta(t, 0.5, plan.Fraction("Growth").InexactFloat64(), 1e-9)
	assert.InDelta(t, 0.5, plan.Fraction(calculation.OtherFundsTrack).InexactFloat64(), 1e-9)
	assert.True(t, plan.RemainingNeed.IsZero())

	t.Run("need above all interest", func(t *testing.T) {
		plan := NewProportionalStrategy().Plan(firstYearSources(), CreateStrategyContext(2_000_000, nil, nil, 0))
		assert.InDelta(t, 1, plan.Fraction("Growth").InexactFloat64(), 1e-9)
		assert.InDelta(t, 350_000, plan.RemainingNeed.InexactFloat64(), 1e-6)
		assert.NotEmpty(t, plan.Notes)
	})
}

func TestBracketFillStrategy(t *testing.T) {
	idx := func(i int) *int { return &i }
	tests := []struct {
		name    string
		need    float64
		target  *int
		buffer  float64
		sourced float64
		filled  bool
		used    string
	}{
		{name: "need below the first edge", need: 300_000, sourced: 300_000, used: StrategyBracketFill},
		{name: "need capped at the first edge", need: 800_000, sourced: 500_000, filled: true, used: StrategyBracketFill},
		{name: "zero need fills to the edge", need: 0, sourced: 500_000, filled: true, used: StrategyBracketFill},
		{name: "buffer lowers the edge", need: 800_000, buffer: 100_000, sourced: 400_000, filled: true, used: StrategyBracketFill},
		{name: "second edge", need: 0, target: idx(1), sourced: 1_000_000, filled: true, used: StrategyBracketFill},
		{name: "edge out of range", need: 800_000, target: idx(5), sourced: 800_000, used: "bracket_fill->standard_fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := CreateStrategyContext(tt.need, testBrackets(), tt.target, tt.buffer)
			plan := NewBracketFillStrategy().Plan(firstYearSources(), ctx)

			assert.Equal(t, tt.used, plan.StrategyUsed)
			assert.InDelta(t, tt.sourced, plan.TotalSourced.InexactFloat64(), 1e-6)
			assert.Equal(t, tt.filled, plan.BracketFilled)
		})
	}

	t.Run("capped note", func(t *testing.T) {
		plan := NewBracketFillStrategy().Plan(firstYearSources(), CreateStrategyContext(800_000, testBrackets(), nil, 0))
		assert.Equal(t, []string{"capped at bracket edge 500000.00"}, plan.Notes)
		assert.InDelta(t, 450_000, gross(t, plan, calculation.OtherFundsTrack), 1e-6)
		assert.InDelta(t, 50_000, gross(t, plan, "Growth"), 1e-6)
	})
}

func TestCustomStrategy(t *testing.T) {
	t.Run("primary first", func(t *testing.T) {
		s := NewCustomStrategy([]string{"Growth", calculation.OtherFundsTrack})
		plan := s.Plan(firstYearSources(), CreateStrategyContext(1_000_000, nil, nil, 0))

		assert.Equal(t, StrategyCustom, plan.StrategyUsed)
		assert.InDelta(t, 1_000_000, gross(t, plan, "Growth"), 1e-6)
		assert.Zero(t, gross(t, plan, calculation.OtherFundsTrack))
	})

	t.Run("unlisted tracks are not drawn", func(t *testing.T) {
		s := NewCustomStrategy([]string{"Growth"})
		plan := s.Plan(firstYearSources(), CreateStrategyContext(1_500_000, nil, nil, 0))
		assert.InDelta(t, 1_200_000, plan.TotalSourced.InexactFloat64(), 1e-6)
		assert.InDelta(t, 300_000, plan.RemainingNeed.InexactFloat64(), 1e-6)
	})

	for _, seq := range [][]string{nil, {"Nope"}, {"Growth", "Growth"}} {
		plan := NewCustomStrategy(seq).Plan(firstYearSources(), CreateStrategyContext(300_000, nil, nil, 0))
		assert.Equal(t, "custom->standard_fallback", plan.StrategyUsed)
		assert.InDelta(t, 300_000, gross(t, plan, calculation.OtherFundsTrack), 1e-6)
		assert.Contains(t, plan.Notes, "invalid or empty custom sequence - falling back to standard")
	}
}

func TestPlanner_Build(t *testing.T) {
	planner := NewPlanner(NewStandardStrategy())
	result, err := planner.Build(context.Background(), twoTracks(3), CreateStrategyContext(1_000_000, nil, nil, 0))
	require.NoError(t, err)

	assert.Equal(t, StrategyStandard, result.Strategy)
	require.Len(t, result.Years, 3)
	require.Len(t, result.Plan.Primary, 3)
	require.Len(t, result.Plan.Other, 3)

	assert.Equal(t, 1, result.Years[0].Year)
	assert.InDelta(t, 100, result.Plan.Other[0], 1e-9)
	assert.InDelta(t, 45.8333, result.Plan.Primary[0], 1e-3)
	// The growth track keeps 650,000 of its first-year interest.
	assert.InDelta(t, 100*550_000.0/1_278_000.0, result.Plan.Primary[1], 1e-6)

	t.Run("generated plan reproduces the need", func(t *testing.T) {
		input := twoTracks(3)
		input.Tracks[0].WithdrawFractions = []float64{}
		input.Tracks[1].WithdrawFractions = []float64{}
		for y := 0; y < 3; y++ {
			input.Tracks[0].WithdrawFractions = append(input.Tracks[0].WithdrawFractions, result.Plan.Primary[y]/100)
			input.Tracks[1].WithdrawFractions = append(input.Tracks[1].WithdrawFractions, result.Plan.Other[y]/100)
		}
		years, err := calculation.Simulate(input, calculation.DefaultBracketTable())
		require.NoError(t, err)
		for _, y := range years {
			assert.InDelta(t, 1_000_000, y.TotalWithdrawal, 1e-3)
		}
	})
}

func TestPlanner_BuildProportionalKeepsSharesEqual(t *testing.T) {
	result, err := NewPlanner(NewProportionalStrategy()).Build(context.Background(), twoTracks(0), CreateStrategyContext(825_000, nil, nil, 0))
	require.NoError(t, err)

	require.Len(t, result.Plan.Primary, calculation.DefaultSimulationYears)
	assert.InDelta(t, 50, result.Plan.Primary[0], 1e-9)
	for i := range result.Plan.Primary {
		assert.InDelta(t, result.Plan.Primary[i], result.Plan.Other[i], 1e-9)
	}
	assert.Less(t, result.Plan.Primary[1], result.Plan.Primary[0])
}

func TestPlanner_Errors(t *testing.T) {
	planner := NewPlanner(NewStandardStrategy())

	_, err := planner.Build(context.Background(), domain.SimulationInput{}, StrategyContext{})
	assert.ErrorContains(t, err, "no tracks")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = planner.Build(ctx, twoTracks(2), StrategyContext{})
	assert.ErrorIs(t, err, context.Canceled)
}
