package output

import "encoding/json"

// JSONFormatter marshals the full report, parameters included, so a consumer
// can re-run the exact simulation from the output alone.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
