package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalancesGetSet(t *testing.T) {
	var b Balances
	for i, acct := range AllAccountTypes {
		b.Set(acct, decimal.NewFromInt(int64(100*(i+1))))
	}

	assert.True(t, b.Get(AccountTaxable).Equal(decimal.NewFromInt(100)))
	assert.True(t, b.Get(AccountTaxDeferred).Equal(decimal.NewFromInt(200)))
	assert.True(t, b.Get(AccountCash).Equal(decimal.NewFromInt(300)))
	assert.True(t, b.Get(AccountRoth).Equal(decimal.NewFromInt(400)))
	assert.True(t, b.Total().Equal(decimal.NewFromInt(1000)))
	assert.True(t, b.Get("hsa").IsZero())
}

func TestTrialBalanceAtPastDepletion(t *testing.T) {
	depletionAge := 62
	trial := Trial{
		Outcome:      OutcomeDepleted,
		DepletionAge: &depletionAge,
		Results: []YearResult{
			{Age: 60, EndingBalance: decimal.NewFromInt(50000)},
			{Age: 61, EndingBalance: decimal.NewFromInt(10000)},
			{Age: 62, EndingBalance: decimal.Zero},
		},
	}

	assert.True(t, trial.BalanceAt(60).Equal(decimal.NewFromInt(50000)))
	assert.True(t, trial.BalanceAt(62).IsZero())
	assert.True(t, trial.BalanceAt(70).IsZero(), "ages past depletion report zero")
	assert.False(t, trial.Succeeded())
}

func TestEffectiveOrderDefault(t *testing.T) {
	var w WithdrawalPolicy
	assert.Equal(t, AllAccountTypes, w.EffectiveOrder())

	w.Order = []AccountType{AccountRoth}
	assert.Equal(t, []AccountType{AccountRoth}, w.EffectiveOrder())
}

func TestYears(t *testing.T) {
	p := Parameters{Household: Household{
		Self:           Person{CurrentAge: 55},
		LifeExpectancy: 92,
	}}
	assert.Equal(t, 38, p.Years())
}

func TestWeightedReturn(t *testing.T) {
	m := MarketAssumptions{
		StockPercent: decimal.NewFromInt(60),
		BondPercent:  decimal.NewFromInt(40),
	}
	got := m.WeightedReturn(decimal.NewFromFloat(0.10), decimal.NewFromFloat(0.05))
	assert.True(t, got.Equal(decimal.NewFromFloat(0.08)), "weighted %s", got)
}
