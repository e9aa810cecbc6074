package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVFormatter exports the per-age percentile bands as tidy tabular data for
// a charting layer: one row per age, one column per statistic.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"age", "p10", "p25", "p50", "p75", "p90",
		"median_withdrawal_rate", "success_rate",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	success := report.Result.SuccessRate.StringFixed(4)
	for _, band := range report.Result.Bands {
		row := []string{
			strconv.Itoa(band.Age),
			band.P10.StringFixed(2),
			band.P25.StringFixed(2),
			band.P50.StringFixed(2),
			band.P75.StringFixed(2),
			band.P90.StringFixed(2),
			band.MedianWithdrawalRate.StringFixed(4),
			success,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
