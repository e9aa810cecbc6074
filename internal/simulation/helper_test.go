package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

// testParams returns a deterministic baseline: a single retiree with a
// taxable-only portfolio, zero market volatility and zero tax, so every
// figure in a test can be computed by hand. Tests mutate what they need.
func testParams() *domain.Parameters {
	return &domain.Parameters{
		Household: domain.Household{
			Self: domain.Person{
				CurrentAge:    60,
				RetirementAge: 60,
			},
			LifeExpectancy: 64,
		},
		Accounts: domain.Accounts{
			Taxable: decimal.NewFromInt(1000000),
		},
		Expenses: domain.Expenses{
			AnnualLiving: decimal.NewFromInt(40000),
		},
		Market: domain.MarketAssumptions{
			StockPercent: decimal.NewFromInt(60),
			BondPercent:  decimal.NewFromInt(40),
			Distribution: domain.DistNormal,
		},
		Simulation: domain.SimulationSettings{
			Trials: 8,
			Seed:   42,
		},
	}
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
