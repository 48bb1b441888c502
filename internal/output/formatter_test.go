package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

func sampleResults(t *testing.T) *domain.CalculationResults {
	t.Helper()
	cfg := &domain.Configuration{
		Name: "Household",
		Tax:  &domain.TaxConfig{Queries: []domain.Amount{domain.NewAmount(2_000_000)}},
		Loans: []domain.LoanConfig{
			{Name: "House", Price: domain.NewAmount(20_000_000), DownPayment: domain.NewAmount(4_000_000), AnnualRatePercent: 12.5, TermYears: 20},
		},
		FixedDeposits: &domain.FixedDepositConfig{
			SavingsRatePercent: 4.5,
			MonthlyExpense:     domain.NewAmount(32_500),
			Deposits: []domain.DepositConfig{
				{Name: "Local", Currency: domain.LKR, Principal: domain.NewAmount(10_000_000), AnnualRatePercent: 10},
			},
		},
		Portfolio: &domain.PortfolioConfig{
			PrimaryFund: "Growth Fund",
			Funds: []domain.FundConfig{
				{Name: "Growth Fund", Capital: domain.NewAmount(10_000_000), AnnualRatePercent: 20},
				{Name: "Income Fund", Capital: domain.NewAmount(5_000_000), AnnualRatePercent: 10},
			},
			Withdrawals: domain.WithdrawalPlan{Primary: []float64{50, 50, 50, 50, 50}, Other: []float64{100, 100, 100, 100, 100}},
		},
	}
	results, err := calculation.NewCalculationEngine().Run(cfg)
	require.NoError(t, err)
	return results
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"console", "console"},
		{"TEXT", "console"},
		{"table", "console"},
		{"csv-long", "csv"},
		{" json-pretty ", "json"},
		{"json", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "text")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(sampleResults(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "HOUSEHOLD - FINANCIAL CALCULATION REPORT")
	assert.Contains(t, text, "KEY ASSUMPTIONS:")
	assert.Contains(t, text, "INCOME TAX")
	assert.Contains(t, text, "1,200,000 - 1,700,000")
	assert.Contains(t, text, "tax 66,000.00")
	assert.Contains(t, text, "181,782.49")
	assert.Contains(t, text, "FIXED DEPOSIT INCOME")
	assert.Contains(t, text, "Dec")
	assert.Contains(t, text, "FUND PORTFOLIO")
	assert.Contains(t, text, "Growth Fund")
}

func TestConsoleFormatter_EmptyResults(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(&domain.CalculationResults{})
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "FINANCIAL CALCULATION REPORT")
	assert.NotContains(t, text, "LOANS")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(sampleResults(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Equal(t, "Section,Name,Period,Metric,Value", lines[0])
	assert.Contains(t, string(out), "loan,House,,installment,181782.49")
	assert.Contains(t, string(out), "ledger,Dec,12,closing,")
	assert.Contains(t, string(out), "projection,total,5,net,")
}

func TestJSONFormatter(t *testing.T) {
	results := sampleResults(t)
	out, err := JSONFormatter{}.Format(results)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Household", decoded["name"])

	pretty, err := JSONFormatter{Pretty: true}.Format(results)
	require.NoError(t, err)
	assert.Greater(t, len(pretty), len(out))
}

func TestWriteFormatted(t *testing.T) {
	restore := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { nowFunc = restore }()

	dir := t.TempDir()
	path, err := WriteFormatted(CSVFormatter{}, sampleResults(t), dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fincalc_report_20260102_030405.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Section,"))
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "names", F: func(r *domain.CalculationResults) ([]byte, error) {
		return []byte(r.Name), nil
	}}
	out, err := f.Format(&domain.CalculationResults{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "names", f.Name())
	assert.Equal(t, "x", string(out))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Jan", MonthName(0))
	assert.Equal(t, "Dec", MonthName(11))
	assert.Equal(t, "M13", MonthName(12))
}

func TestFileSink(t *testing.T) {
	restoreID, restoreNow := newID, nowFunc
	newID = func() string { return "fixed-id" }
	nowFunc = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { newID, nowFunc = restoreID, restoreNow }()

	snap := NewSnapshot(CalculatorTax, map[string]float64{"income": 2_000_000}, map[string]float64{"tax": 57_000})
	assert.Equal(t, "fixed-id", snap.ID)

	sink := FileSink{Dir: filepath.Join(t.TempDir(), "snapshots")}
	path, err := sink.Save(snap)
	require.NoError(t, err)
	assert.Equal(t, "tax_fixed-id.json", filepath.Base(path))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, CalculatorTax, loaded.CalculatorType)
	assert.True(t, snap.CreatedAt.Equal(loaded.CreatedAt))
	assert.Equal(t, map[string]interface{}{"tax": float64(57_000)}, loaded.Results)
}

func TestLoadSnapshot_Missing(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
