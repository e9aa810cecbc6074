package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/biswassantanu/retirement-mc/internal/domain"
	"github.com/biswassantanu/retirement-mc/internal/simulation"
)

// ReadParameters parses a parameter file without validating it, so callers
// can layer defaults over optional settings (trial count, parallelism)
// before validation runs.
func ReadParameters(filename string) (*domain.Parameters, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var params domain.Parameters
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &params, nil
}

// LoadParameters reads and validates a parameter file. A file that loads
// cleanly will reproduce an identical run given the same seed.
func LoadParameters(filename string) (*domain.Parameters, error) {
	params, err := ReadParameters(filename)
	if err != nil {
		return nil, err
	}

	if err := simulation.Validate(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	return params, nil
}

// SaveParameters writes the parameter set back to YAML. Save-then-load
// preserves every field, so a saved file plus the same seed reproduces the
// original run.
func SaveParameters(filename string, params *domain.Parameters) error {
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ExampleParameters returns a fully populated two-person household that
// passes validation, used by the `example` command as a starting template.
func ExampleParameters() *domain.Parameters {
	healthcareInflation := decimal.NewFromFloat(0.05)

	return &domain.Parameters{
		Household: domain.Household{
			Self: domain.Person{
				CurrentAge:         55,
				RetirementAge:      60,
				AnnualSalary:       decimal.NewFromInt(200000),
				SalaryGrowth:       decimal.NewFromFloat(0.03),
				AnnualPension:      decimal.NewFromInt(12000),
				PensionGrowth:      decimal.NewFromFloat(0.01),
				SocialSecurity:     decimal.NewFromInt(36000),
				SSClaimAge:         67,
				HealthcareCost:     decimal.NewFromInt(5000),
				HealthcareStartAge: 60,
				Contribution401k:   decimal.NewFromInt(23500),
				EmployerMatch:      decimal.NewFromInt(6000),
			},
			Partner: &domain.Person{
				CurrentAge:         50,
				RetirementAge:      60,
				AnnualSalary:       decimal.NewFromInt(200000),
				SalaryGrowth:       decimal.NewFromFloat(0.03),
				SocialSecurity:     decimal.NewFromInt(18000),
				SSClaimAge:         65,
				HealthcareCost:     decimal.NewFromInt(5000),
				HealthcareStartAge: 60,
				Contribution401k:   decimal.NewFromInt(20000),
				EmployerMatch:      decimal.NewFromInt(6000),
			},
			LifeExpectancy: 92,
		},
		Accounts: domain.Accounts{
			Taxable:     decimal.NewFromInt(800000),
			TaxDeferred: decimal.NewFromInt(900000),
			Roth:        decimal.NewFromInt(150000),
			Cash:        decimal.NewFromInt(150000),
		},
		Expenses: domain.Expenses{
			AnnualLiving:           decimal.NewFromInt(96000),
			AnnualDecrease:         decimal.NewFromFloat(0.005),
			MortgagePayment:        decimal.NewFromInt(36000),
			MortgageYearsRemaining: 25,
			HealthcareInflation:    &healthcareInflation,
		},
		Rental: &domain.RentalIncome{
			Amount:         decimal.NewFromInt(24000),
			StartAge:       60,
			EndAge:         75,
			AnnualIncrease: decimal.NewFromFloat(0.02),
		},
		Market: domain.MarketAssumptions{
			StockPercent:    decimal.NewFromInt(60),
			BondPercent:     decimal.NewFromInt(40),
			StockReturnMean: decimal.NewFromFloat(0.101),
			StockReturnStd:  decimal.NewFromFloat(0.196),
			BondReturnMean:  decimal.NewFromFloat(0.039),
			BondReturnStd:   decimal.NewFromFloat(0.0117),
			InflationMean:   decimal.NewFromFloat(0.025),
			InflationStd:    decimal.NewFromFloat(0.01),
			COLARate:        decimal.NewFromFloat(0.015),
			CashReturn:      decimal.NewFromFloat(0.015),
			Distribution:    domain.DistNormal,
		},
		Events: []domain.Event{
			{Type: domain.EventExpense, Age: 62, Amount: decimal.NewFromInt(50000)},
			{Type: domain.EventWindfall, Age: 70, Amount: decimal.NewFromInt(100000)},
			{Type: domain.EventDownsize, Age: 75, Amount: decimal.NewFromInt(400000)},
		},
		Withdrawal: domain.WithdrawalPolicy{
			TaxRate: decimal.NewFromFloat(0.15),
		},
		Simulation: domain.SimulationSettings{
			Trials: 1000,
			Seed:   12345,
		},
	}
}
