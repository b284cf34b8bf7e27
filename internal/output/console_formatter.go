package output

import (
	"bytes"
	"fmt"
)

// ConsoleFormatter provides a concise console table via the formatter
// interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *SweepReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "TAX RATE SWEEP")
	fmt.Fprintln(&buf, "================================")

	fmt.Fprintf(&buf, "%12s", "Income")
	for _, curve := range report.Curves {
		fmt.Fprintf(&buf, "  %28s", curve.Kind)
	}
	fmt.Fprintln(&buf)

	for i, income := range report.Incomes {
		fmt.Fprintf(&buf, "%12s", FormatCurrency(income))
		for _, curve := range report.Curves {
			if i >= len(curve.Rates) {
				fmt.Fprintf(&buf, "  %28s", "-")
				continue
			}
			fmt.Fprintf(&buf, "  %28s", curve.Rates[i].StringFixed(4))
		}
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}
