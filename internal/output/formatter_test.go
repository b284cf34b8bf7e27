package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

func sampleReport() *SweepReport {
	return &SweepReport{
		Incomes: []decimal.Decimal{decimal.NewFromInt(10000), decimal.NewFromInt(20000)},
		Curves: []RateCurve{
			{
				Kind:  domain.RateWageMarginal,
				Rates: []decimal.Decimal{decimal.NewFromFloat(0.1), decimal.NewFromFloat(0.15)},
			},
			{
				Kind:  domain.RateEffective,
				Rates: []decimal.Decimal{decimal.NewFromFloat(0.08), decimal.NewFromFloat(0.12)},
			},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"csv", "json", "console"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, "formatter %s", name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, "csv", GetFormatterByName("  CSV ").Name())
	assert.Nil(t, GetFormatterByName("html"))
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Income,wage_marginal,effective", lines[0])
	assert.Equal(t, "10000.00,0.100000,0.080000", lines[1])
	assert.Equal(t, "20000.00,0.150000,0.120000", lines[2])
}

func TestCSVFormatterRejectsShapeMismatch(t *testing.T) {
	report := sampleReport()
	report.Curves[0].Rates = report.Curves[0].Rates[:1]

	_, err := CSVFormatter{}.Format(report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 points for a 2-point grid")
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	var decoded struct {
		Incomes []string `json:"incomes"`
		Curves  []struct {
			Kind  string   `json:"kind"`
			Rates []string `json:"rates"`
		} `json:"curves"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Curves, 2)
	assert.Equal(t, "wage_marginal", decoded.Curves[0].Kind)
	assert.Equal(t, []string{"0.1", "0.15"}, decoded.Curves[0].Rates)
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleReport())
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "TAX RATE SWEEP")
	assert.Contains(t, text, "wage_marginal")
	assert.Contains(t, text, "$10000.00")
	assert.Contains(t, text, "0.1000")
}

func TestWriteFormatted(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	filename, err := WriteFormatted(CSVFormatter{}, sampleReport(), "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(filename), "rate_sweep_"))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Income,wage_marginal,effective")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "25.00%", FormatPercentage(decimal.NewFromFloat(0.25)))
}
