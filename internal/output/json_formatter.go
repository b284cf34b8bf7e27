package output

import (
	"encoding/json"
)

// JSONFormatter serializes the sweep report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *SweepReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
