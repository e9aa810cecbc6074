package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

// flatSampler returns the same rates every year.
type flatSampler struct {
	returns YearReturns
}

func (f flatSampler) Sample(int) (YearReturns, error) { return f.returns, nil }

// faultySampler fails on a chosen year.
type faultySampler struct {
	failAt int
}

func (f faultySampler) Sample(year int) (YearReturns, error) {
	if year == f.failAt {
		return YearReturns{}, errors.New("boom")
	}
	return YearReturns{}, nil
}

func TestTrialRunsFullHorizon(t *testing.T) {
	params := testParams()
	runner := &TrialRunner{Params: params, Sampler: flatSampler{}, Logger: NopLogger{}, Index: 0}

	trial, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, trial.Results, params.Years())
	assert.Equal(t, domain.OutcomeSucceeded, trial.Outcome)
	assert.Nil(t, trial.DepletionAge)
	// 5 years of 40k expenses from a flat 1M portfolio.
	assert.True(t, trial.EndingBalance.Equal(decimal.NewFromInt(800000)),
		"ending balance %s", trial.EndingBalance)
}

func TestTrialStopsAtDepletion(t *testing.T) {
	params := testParams()
	params.Accounts.Taxable = decimal.NewFromInt(90000)
	runner := &TrialRunner{Params: params, Sampler: flatSampler{}, Logger: NopLogger{}, Index: 0}

	trial, err := runner.Run(context.Background())
	require.NoError(t, err)

	// 40k per year against 90k depletes in year three at age 62.
	assert.Equal(t, domain.OutcomeDepleted, trial.Outcome)
	require.NotNil(t, trial.DepletionAge)
	assert.Equal(t, 62, *trial.DepletionAge)
	assert.Len(t, trial.Results, 3)
	assert.True(t, trial.EndingBalance.IsZero())
}

func TestTrialSamplerFaultIsTrialError(t *testing.T) {
	params := testParams()
	runner := &TrialRunner{Params: params, Sampler: faultySampler{failAt: 2}, Logger: NopLogger{}, Index: 4}

	_, err := runner.Run(context.Background())
	var trialErr *TrialError
	require.ErrorAs(t, err, &trialErr)
	assert.Equal(t, 4, trialErr.Trial)
	assert.Equal(t, 62, trialErr.Age)
	assert.Equal(t, "sampler", trialErr.Component)
}

func TestTrialConvergenceFailureIsDepletion(t *testing.T) {
	params := testParams()
	params.Accounts = domain.Accounts{TaxDeferred: decimal.NewFromInt(1000000)}
	params.Expenses.AnnualLiving = decimal.NewFromInt(80000)
	params.Withdrawal.TaxRate = dec(0.40)
	params.Withdrawal.MaxTaxIterations = 1

	runner := &TrialRunner{Params: params, Sampler: flatSampler{}, Logger: NopLogger{}, Index: 0}
	trial, err := runner.Run(context.Background())
	require.NoError(t, err, "non-convergence must not fail the trial")

	assert.Equal(t, domain.OutcomeDepleted, trial.Outcome)
	require.NotNil(t, trial.DepletionAge)
	assert.Equal(t, 60, *trial.DepletionAge)
}

func TestTrialHonorsCancellation(t *testing.T) {
	params := testParams()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &TrialRunner{Params: params, Sampler: flatSampler{}, Logger: NopLogger{}, Index: 0}
	_, err := runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewTrialRunnerSeedsPerIndex(t *testing.T) {
	params := testParams()
	params.Market.StockReturnStd = dec(0.15)

	a, err := NewTrialRunner(params, 100, 3, nil)
	require.NoError(t, err)
	b, err := NewTrialRunner(params, 100, 3, nil)
	require.NoError(t, err)
	c, err := NewTrialRunner(params, 100, 4, nil)
	require.NoError(t, err)

	ra, _ := a.Sampler.Sample(0)
	rb, _ := b.Sampler.Sample(0)
	rc, _ := c.Sampler.Sample(0)

	assert.Equal(t, ra, rb, "same seed and index must replay")
	assert.NotEqual(t, ra, rc, "different index must draw differently")
}
