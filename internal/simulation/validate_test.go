package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

func TestValidateAcceptsBaseline(t *testing.T) {
	assert.NoError(t, Validate(testParams()))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Parameters)
		field  string
	}{
		{
			name:   "negative current age",
			mutate: func(p *domain.Parameters) { p.Household.Self.CurrentAge = -1 },
			field:  "household.self.current_age",
		},
		{
			name: "retirement before current age",
			mutate: func(p *domain.Parameters) {
				p.Household.Self.CurrentAge = 60
				p.Household.Self.RetirementAge = 55
			},
			field: "household.self.retirement_age",
		},
		{
			name:   "life expectancy below current age",
			mutate: func(p *domain.Parameters) { p.Household.LifeExpectancy = 50 },
			field:  "household.life_expectancy",
		},
		{
			name: "retirement past life expectancy",
			mutate: func(p *domain.Parameters) {
				p.Household.Self.RetirementAge = 80
			},
			field: "household.self.retirement_age",
		},
		{
			name:   "ss claim age out of range",
			mutate: func(p *domain.Parameters) { p.Household.Self.SSClaimAge = 55 },
			field:  "household.self.ss_claim_age",
		},
		{
			name: "social security without claim age",
			mutate: func(p *domain.Parameters) {
				p.Household.Self.SocialSecurity = decimal.NewFromInt(30000)
			},
			field: "household.self.ss_claim_age",
		},
		{
			name: "healthcare cost without start age",
			mutate: func(p *domain.Parameters) {
				p.Household.Self.HealthcareCost = decimal.NewFromInt(8000)
			},
			field: "household.self.healthcare_start_age",
		},
		{
			name:   "negative salary",
			mutate: func(p *domain.Parameters) { p.Household.Self.AnnualSalary = decimal.NewFromInt(-1) },
			field:  "household.self.annual_salary",
		},
		{
			name:   "negative balance",
			mutate: func(p *domain.Parameters) { p.Accounts.Roth = decimal.NewFromInt(-100) },
			field:  "accounts.roth",
		},
		{
			name: "allocation does not sum to 100",
			mutate: func(p *domain.Parameters) {
				p.Market.StockPercent = decimal.NewFromInt(70)
				p.Market.BondPercent = decimal.NewFromInt(40)
			},
			field: "market.stock_percent",
		},
		{
			name:   "negative volatility",
			mutate: func(p *domain.Parameters) { p.Market.StockReturnStd = dec(-0.1) },
			field:  "market",
		},
		{
			name:   "unknown distribution",
			mutate: func(p *domain.Parameters) { p.Market.Distribution = "cauchy" },
			field:  "market.distribution",
		},
		{
			name: "lognormal with zero mean",
			mutate: func(p *domain.Parameters) {
				p.Market.Distribution = domain.DistLogNormal
				p.Market.StockReturnMean = decimal.Zero
			},
			field: "market.distribution",
		},
		{
			name:   "tax rate at one",
			mutate: func(p *domain.Parameters) { p.Withdrawal.TaxRate = decimal.NewFromInt(1) },
			field:  "withdrawal.tax_rate",
		},
		{
			name: "unknown withdrawal account",
			mutate: func(p *domain.Parameters) {
				p.Withdrawal.Order = []domain.AccountType{"hsa"}
			},
			field: "withdrawal.order",
		},
		{
			name: "duplicate withdrawal account",
			mutate: func(p *domain.Parameters) {
				p.Withdrawal.Order = []domain.AccountType{domain.AccountTaxable, domain.AccountTaxable}
			},
			field: "withdrawal.order",
		},
		{
			name:   "zero trials",
			mutate: func(p *domain.Parameters) { p.Simulation.Trials = 0 },
			field:  "simulation.trials",
		},
		{
			name:   "failure rate above one",
			mutate: func(p *domain.Parameters) { p.Simulation.MaxFailureRate = decimal.NewFromInt(2) },
			field:  "simulation.max_failure_rate",
		},
		{
			name: "unknown event type",
			mutate: func(p *domain.Parameters) {
				p.Events = []domain.Event{{Type: "lottery", Age: 62}}
			},
			field: "events[0].type",
		},
		{
			name: "negative windfall",
			mutate: func(p *domain.Parameters) {
				p.Events = []domain.Event{{Type: domain.EventWindfall, Age: 62, Amount: decimal.NewFromInt(-5)}}
			},
			field: "events[0].amount",
		},
		{
			name: "rental window inverted",
			mutate: func(p *domain.Parameters) {
				p.Rental = &domain.RentalIncome{StartAge: 65, EndAge: 60}
			},
			field: "rental.end_age",
		},
		{
			name: "partner validated too",
			mutate: func(p *domain.Parameters) {
				p.Household.Partner = &domain.Person{CurrentAge: 58, RetirementAge: 50}
			},
			field: "household.partner.retirement_age",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testParams()
			tt.mutate(params)

			err := Validate(params)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestValidateAllowsNegativeExpenseAdjustment(t *testing.T) {
	params := testParams()
	params.Events = []domain.Event{
		{Type: domain.EventExpenseAdjustment, Age: 62, Amount: decimal.NewFromInt(-10000)},
	}
	assert.NoError(t, Validate(params))
}
