package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Validate checks the full parameter set and fails fast with a
// ValidationError naming the first offending field. No simulation work
// happens on invalid input.
func Validate(p *domain.Parameters) error {
	if err := validatePerson("household.self", &p.Household.Self); err != nil {
		return err
	}
	if p.Household.Partner != nil {
		if err := validatePerson("household.partner", p.Household.Partner); err != nil {
			return err
		}
	}

	if p.Household.LifeExpectancy < p.Household.Self.CurrentAge {
		return &ValidationError{Field: "household.life_expectancy",
			Message: "must not be below self's current age"}
	}
	if p.Household.Self.RetirementAge > p.Household.LifeExpectancy {
		return &ValidationError{Field: "household.self.retirement_age",
			Message: "must not exceed life expectancy"}
	}

	for field, amount := range map[string]decimal.Decimal{
		"accounts.taxable":          p.Accounts.Taxable,
		"accounts.tax_deferred":     p.Accounts.TaxDeferred,
		"accounts.roth":             p.Accounts.Roth,
		"accounts.cash":             p.Accounts.Cash,
		"expenses.annual_living":    p.Expenses.AnnualLiving,
		"expenses.mortgage_payment": p.Expenses.MortgagePayment,
	} {
		if amount.IsNegative() {
			return &ValidationError{Field: field, Message: "must not be negative"}
		}
	}
	if p.Expenses.MortgageYearsRemaining < 0 {
		return &ValidationError{Field: "expenses.mortgage_years_remaining", Message: "must not be negative"}
	}

	if !p.Market.StockPercent.Add(p.Market.BondPercent).Equal(hundred) {
		return &ValidationError{Field: "market.stock_percent",
			Message: "stock and bond allocation must sum to 100"}
	}
	if p.Market.StockReturnStd.IsNegative() || p.Market.BondReturnStd.IsNegative() ||
		p.Market.InflationStd.IsNegative() {
		return &ValidationError{Field: "market", Message: "volatility must not be negative"}
	}
	switch p.Market.Distribution {
	case domain.DistNormal, domain.DistLogNormal, domain.DistStudentT, domain.DistEmpirical, "":
	default:
		return &ValidationError{Field: "market.distribution",
			Message: fmt.Sprintf("unknown distribution %q", p.Market.Distribution)}
	}
	if p.Market.Distribution == domain.DistLogNormal &&
		(!p.Market.StockReturnMean.IsPositive() || !p.Market.BondReturnMean.IsPositive()) {
		return &ValidationError{Field: "market.distribution",
			Message: "lognormal sampling requires positive mean returns"}
	}

	if p.Withdrawal.TaxRate.IsNegative() || p.Withdrawal.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return &ValidationError{Field: "withdrawal.tax_rate", Message: "must be in [0, 1)"}
	}
	seen := map[domain.AccountType]bool{}
	for _, acct := range p.Withdrawal.Order {
		switch acct {
		case domain.AccountTaxable, domain.AccountTaxDeferred, domain.AccountRoth, domain.AccountCash:
		default:
			return &ValidationError{Field: "withdrawal.order",
				Message: fmt.Sprintf("unknown account type %q", acct)}
		}
		if seen[acct] {
			return &ValidationError{Field: "withdrawal.order",
				Message: fmt.Sprintf("account %q listed twice", acct)}
		}
		seen[acct] = true
	}

	if p.Simulation.Trials < 1 {
		return &ValidationError{Field: "simulation.trials", Message: "must be at least 1"}
	}
	if p.Simulation.MaxFailureRate.IsNegative() || p.Simulation.MaxFailureRate.GreaterThan(decimal.NewFromInt(1)) {
		return &ValidationError{Field: "simulation.max_failure_rate", Message: "must be in [0, 1]"}
	}

	for i, ev := range p.Events {
		switch ev.Type {
		case domain.EventWindfall, domain.EventExpense, domain.EventDownsize, domain.EventExpenseAdjustment:
		default:
			return &ValidationError{Field: fmt.Sprintf("events[%d].type", i),
				Message: fmt.Sprintf("unknown event type %q", ev.Type)}
		}
		if ev.Type != domain.EventExpenseAdjustment && ev.Amount.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("events[%d].amount", i),
				Message: "must not be negative"}
		}
	}

	if r := p.Rental; r != nil {
		if r.Amount.IsNegative() {
			return &ValidationError{Field: "rental.amount", Message: "must not be negative"}
		}
		if r.EndAge < r.StartAge {
			return &ValidationError{Field: "rental.end_age", Message: "must not be before start_age"}
		}
	}

	return nil
}

func validatePerson(field string, person *domain.Person) error {
	if person.CurrentAge < 0 || person.CurrentAge > 120 {
		return &ValidationError{Field: field + ".current_age", Message: "must be between 0 and 120"}
	}
	if person.RetirementAge < person.CurrentAge {
		return &ValidationError{Field: field + ".retirement_age",
			Message: "must not be below current age"}
	}
	if person.SSClaimAge != 0 && (person.SSClaimAge < 62 || person.SSClaimAge > 70) {
		return &ValidationError{Field: field + ".ss_claim_age", Message: "must be between 62 and 70"}
	}
	if person.SocialSecurity.IsPositive() && person.SSClaimAge == 0 {
		return &ValidationError{Field: field + ".ss_claim_age",
			Message: "required when social_security is set"}
	}
	if person.HealthcareCost.IsPositive() && person.HealthcareStartAge == 0 {
		return &ValidationError{Field: field + ".healthcare_start_age",
			Message: "required when healthcare_cost is set"}
	}
	for suffix, amount := range map[string]decimal.Decimal{
		".annual_salary":     person.AnnualSalary,
		".annual_pension":    person.AnnualPension,
		".social_security":   person.SocialSecurity,
		".healthcare_cost":   person.HealthcareCost,
		".contribution_401k": person.Contribution401k,
		".employer_match":    person.EmployerMatch,
	} {
		if amount.IsNegative() {
			return &ValidationError{Field: field + suffix, Message: "must not be negative"}
		}
	}
	return nil
}
