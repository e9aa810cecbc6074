package simulation

import (
	"context"
	"math/rand"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

// TrialRunner drives one full trial: a fresh YearState stepped from Self's
// current age through life expectancy, or until depletion. Each runner owns
// its RNG so trials never share randomness.
type TrialRunner struct {
	Params  *domain.Parameters
	Sampler ReturnSampler
	Logger  Logger

	Index int
}

// NewTrialRunner builds a runner whose sampler is seeded deterministically
// from the batch seed and the trial index, so any trial can be reproduced in
// isolation.
func NewTrialRunner(params *domain.Parameters, seed int64, index int, logger Logger) (*TrialRunner, error) {
	rng := rand.New(rand.NewSource(seed + int64(index)))
	sampler, err := NewSampler(params.Market, rng)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &TrialRunner{Params: params, Sampler: sampler, Logger: logger, Index: index}, nil
}

// Run executes the trial. A ConvergenceError inside a year is downgraded to a
// depletion outcome and logged; sampler faults abort the trial with a
// TrialError. Cancellation aborts between years.
func (tr *TrialRunner) Run(ctx context.Context) (*domain.Trial, error) {
	state := NewYearState(tr.Params)
	transition := &Transition{Params: tr.Params, Logger: tr.Logger, Trial: tr.Index}

	years := tr.Params.Years()
	trial := &domain.Trial{
		Index:   tr.Index,
		Results: make([]domain.YearResult, 0, years),
		Outcome: domain.OutcomeSucceeded,
	}

	for year := 0; year < years; year++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		returns, err := tr.Sampler.Sample(year)
		if err != nil {
			return nil, &TrialError{
				Trial:     tr.Index,
				Age:       tr.Params.Household.Self.CurrentAge + year,
				Component: "sampler",
				Err:       err,
			}
		}

		result, err := transition.Apply(state, returns)
		if err != nil {
			// Non-convergence of the tax gross-up counts as depletion for
			// this trial, not a batch failure.
			tr.Logger.Warnf("%v; treating as depletion", err)
		}
		trial.Results = append(trial.Results, result)

		if state.Depleted {
			age := result.Age
			trial.Outcome = domain.OutcomeDepleted
			trial.DepletionAge = &age
			break
		}
	}

	if n := len(trial.Results); n > 0 {
		trial.EndingBalance = trial.Results[n-1].EndingBalance
	}
	return trial, nil
}
