package output

import (
	"fmt"
	"os"
	"time"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

// Report bundles everything a formatter may render: the validated input, the
// aggregate statistics, and the run identity needed to reproduce it.
type Report struct {
	RunID   string                  `json:"run_id"`
	Seed    int64                   `json:"seed"`
	Trials  int                     `json:"trials"`
	Params  *domain.Parameters      `json:"params"`
	Result  *domain.AggregateResult `json:"result"`
	Elapsed time.Duration           `json:"elapsed_ns"`
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// ByName returns the formatter registered under the given name.
func ByName(name string) (Formatter, error) {
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// Write runs a formatter and writes the result to path, or to stdout when
// path is empty.
func Write(f Formatter, report *Report, path string) error {
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
