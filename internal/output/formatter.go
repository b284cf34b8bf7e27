package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// RateCurve is one published rate array, parallel to the report's income
// grid.
type RateCurve struct {
	Kind  domain.RateKind   `json:"kind"`
	Rates []decimal.Decimal `json:"rates"`
}

// SweepReport bundles the income grid with every published curve for
// formatting.
type SweepReport struct {
	Incomes []decimal.Decimal `json:"incomes"`
	Curves  []RateCurve       `json:"curves"`
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type Formatter interface {
	Format(report *SweepReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// WriteFormatted runs a formatter and writes output to a timestamped file
// with the given extension, returning the filename.
func WriteFormatted(f Formatter, report *SweepReport, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("rate_sweep_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	CSVFormatter{},
	JSONFormatter{},
	ConsoleFormatter{},
}

// GetFormatterByName fetches a registered formatter, nil if unknown.
func GetFormatterByName(name string) Formatter {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// FormatterNames lists the registered formatter names.
func FormatterNames() []string {
	names := make([]string, len(builtInFormatters))
	for i, f := range builtInFormatters {
		names[i] = f.Name()
	}
	return names
}
