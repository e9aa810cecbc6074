package simulation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

// DefaultParallelism bounds the trial worker pool when not configured.
const DefaultParallelism = 10

// seedFunc returns a pseudo-random seed (override for deterministic tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// Result is the raw outcome of a batch: completed trials plus any excluded
// (faulted) trials, in trial-index order.
type Result struct {
	Trials   []*domain.Trial
	Excluded []error

	Seed int64
}

// Engine orchestrates N independent trials. Parameters are read-only for the
// whole batch; every trial gets its own state and RNG, so no locking is
// needed between trials.
type Engine struct {
	Logger Logger
}

// NewEngine returns an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. Nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Run validates the parameters and executes the batch. Trials run on a
// bounded worker pool; output order is by trial index regardless of
// scheduling, and a sequential run (parallelism 1) produces byte-identical
// results because each trial is seeded from seed+index. Cancelling ctx stops
// scheduling and discards all partial results. The batch fails when the
// excluded-trial rate exceeds the configured threshold.
func (e *Engine) Run(ctx context.Context, params *domain.Parameters) (*Result, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}

	seed := params.Simulation.Seed
	if seed == 0 {
		seed = seedFunc()
	}

	parallelism := params.Simulation.Parallelism
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	trialCount := params.Simulation.Trials
	trials := make([]*domain.Trial, trialCount)

	var mu sync.Mutex
	var excluded []error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	start := time.Now()
	e.Logger.Infof("starting batch: %d trials, seed %d, %d workers", trialCount, seed, parallelism)

	for i := 0; i < trialCount; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			runner, err := NewTrialRunner(params, seed, i, e.Logger)
			if err != nil {
				return err
			}
			trial, err := runner.Run(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				// Trial-local fault: exclude the trial, keep the batch.
				e.Logger.Errorf("%v; trial excluded", err)
				mu.Lock()
				excluded = append(excluded, err)
				mu.Unlock()
				return nil
			}
			trials[i] = trial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	completed := make([]*domain.Trial, 0, trialCount)
	for _, t := range trials {
		if t != nil {
			completed = append(completed, t)
		}
	}

	maxFailureRate := params.Simulation.MaxFailureRate
	if maxFailureRate.IsZero() {
		maxFailureRate = decimal.NewFromFloat(0.01)
	}
	if trialCount > 0 {
		rate := decimal.NewFromInt(int64(len(excluded))).Div(decimal.NewFromInt(int64(trialCount)))
		if rate.GreaterThan(maxFailureRate) {
			return nil, &BatchError{Excluded: len(excluded), Total: trialCount, Errs: excluded}
		}
	}

	e.Logger.Infof("batch complete: %d trials (%d excluded) in %s",
		len(completed), len(excluded), time.Since(start).Round(time.Millisecond))

	return &Result{Trials: completed, Excluded: excluded, Seed: seed}, nil
}

// BatchError reports a batch aborted because too many trials faulted.
type BatchError struct {
	Excluded int
	Total    int
	Errs     []error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("simulation batch failed: %d/%d trials excluded", e.Excluded, e.Total)
}

// SortByEnding orders trials from worst to best: earlier depletion first,
// then lower ending balance. Aggregation does not depend on this order; it
// exists for percentile-scenario style reporting.
func SortByEnding(trials []*domain.Trial) {
	sort.SliceStable(trials, func(i, j int) bool {
		di, dj := depletionAgeOf(trials[i]), depletionAgeOf(trials[j])
		if di != dj {
			return di < dj
		}
		return trials[i].EndingBalance.LessThan(trials[j].EndingBalance)
	})
}

func depletionAgeOf(t *domain.Trial) int {
	if t.DepletionAge != nil {
		return *t.DepletionAge
	}
	return int(^uint(0) >> 1)
}
