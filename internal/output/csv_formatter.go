package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVFormatter emits one row per income grid point with a column per curve.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *SweepReport) ([]byte, error) {
	for _, curve := range report.Curves {
		if len(curve.Rates) != len(report.Incomes) {
			return nil, fmt.Errorf("curve %s has %d points for a %d-point grid",
				curve.Kind, len(curve.Rates), len(report.Incomes))
		}
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Income"}
	for _, curve := range report.Curves {
		header = append(header, string(curve.Kind))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i, income := range report.Incomes {
		row := []string{income.StringFixed(2)}
		for _, curve := range report.Curves {
			row = append(row, curve.Rates[i].StringFixed(6))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
