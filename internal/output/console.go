package output

import (
	"bytes"
	"fmt"

	"github.com/biswassantanu/retirement-mc/pkg/money"
)

// ConsoleFormatter renders a human-readable summary plus the percentile
// bands table, in the style of the CSV layout but padded for terminals.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	res := report.Result

	fmt.Fprintf(&buf, "RETIREMENT MONTE CARLO RESULTS\n")
	fmt.Fprintf(&buf, "==============================\n")
	fmt.Fprintf(&buf, "Run ID:           %s\n", report.RunID)
	fmt.Fprintf(&buf, "Trials:           %d (%d excluded)\n", report.Trials, res.ExcludedCount)
	fmt.Fprintf(&buf, "Seed:             %d\n", report.Seed)
	fmt.Fprintf(&buf, "Success Rate:     %s\n", money.Percent(res.SuccessRate))
	fmt.Fprintf(&buf, "Depletion Rate:   %s\n", money.Percent(res.DepletionRate))
	fmt.Fprintf(&buf, "Median Ending:    %s\n", money.FormatUSD(res.MedianEndingBalance))
	fmt.Fprintf(&buf, "\n")

	fmt.Fprintf(&buf, "%-5s %14s %14s %14s %14s %14s %9s\n",
		"Age", "P10", "P25", "P50", "P75", "P90", "Draw%")
	for _, band := range res.Bands {
		fmt.Fprintf(&buf, "%-5d %14s %14s %14s %14s %14s %9s\n",
			band.Age,
			money.FormatUSD(band.P10),
			money.FormatUSD(band.P25),
			money.FormatUSD(band.P50),
			money.FormatUSD(band.P75),
			money.FormatUSD(band.P90),
			money.Percent(band.MedianWithdrawalRate),
		)
	}

	return buf.Bytes(), nil
}
