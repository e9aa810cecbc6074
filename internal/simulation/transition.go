package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

const (
	// MedicareAge is when individual healthcare premiums stop.
	MedicareAge = 65

	// CatchUpAge is when the additional 401(k) catch-up applies.
	CatchUpAge = 50

	// DefaultMaxTaxIterations bounds the withdrawal/tax gross-up fixed point.
	// The loop gains one factor of the tax rate per iteration, so sixteen
	// reaches cent precision for any rate up to about 45%.
	DefaultMaxTaxIterations = 16
)

// Base 401(k) deferral caps (2025 IRS limits), COLA-indexed during a run.
var (
	contributionCap401k = decimal.NewFromInt(23500)
	catchUpCap401k      = decimal.NewFromInt(7500)
)

// cent is the convergence tolerance for money fixed points.
var cent = decimal.NewFromFloat(0.01)

// YearState is the mutable per-trial state threaded through a trial.
// It is owned exclusively by the trial that created it.
type YearState struct {
	YearIndex int
	Balances  domain.Balances

	// ExpenseLevel is the inflated living-expense level carried forward.
	ExpenseLevel decimal.Decimal

	Depleted bool
}

// NewYearState seeds the state from validated parameters.
func NewYearState(params *domain.Parameters) *YearState {
	return &YearState{
		Balances: domain.Balances{
			Taxable:     params.Accounts.Taxable,
			TaxDeferred: params.Accounts.TaxDeferred,
			Roth:        params.Accounts.Roth,
			Cash:        params.Accounts.Cash,
		},
		ExpenseLevel: params.Expenses.AnnualLiving,
	}
}

// Transition computes one year of the projection.
type Transition struct {
	Params *domain.Parameters
	Logger Logger

	Trial int
}

// Apply advances the state by one year under the sampled returns and returns
// the immutable record for that year. The order is fixed: market returns,
// income, expenses, contributions, withdrawal with tax gross-up, special
// events, depletion check. A ConvergenceError marks the state depleted and is
// also returned so the caller can log it.
func (t *Transition) Apply(state *YearState, returns YearReturns) (domain.YearResult, error) {
	p := t.Params
	age := p.Household.Self.CurrentAge + state.YearIndex
	partnerAge := 0
	if p.Household.Partner != nil {
		partnerAge = p.Household.Partner.CurrentAge + state.YearIndex
	}

	start := state.Balances.Total()

	// 1. Market returns. Taxable, tax-deferred and Roth hold the stock/bond
	// mix; cash earns its own rate.
	stock := decimal.NewFromFloat(returns.Stock)
	bond := decimal.NewFromFloat(returns.Bond)
	inflation := decimal.NewFromFloat(returns.Inflation)
	weighted := p.Market.WeightedReturn(stock, bond)

	growBy := func(acct domain.AccountType, rate decimal.Decimal) {
		bal := state.Balances.Get(acct)
		state.Balances.Set(acct, bal.Add(bal.Mul(rate)))
	}
	growBy(domain.AccountTaxable, weighted)
	growBy(domain.AccountTaxDeferred, weighted)
	growBy(domain.AccountRoth, weighted)
	growBy(domain.AccountCash, p.Market.CashReturn)
	investmentReturn := state.Balances.Total().Sub(start)

	// 2. Income.
	income := t.yearIncome(age, partnerAge, state.YearIndex)

	// 3. Expenses. Permanent adjustments land on the expense level before the
	// inflation roll-forward; the first year uses the base level unchanged.
	eventApplied := false
	for _, ev := range p.Events {
		if ev.Age == age && ev.Type == domain.EventExpenseAdjustment {
			state.ExpenseLevel = state.ExpenseLevel.Add(ev.Amount)
			eventApplied = true
		}
	}
	if state.YearIndex > 0 {
		drift := inflation
		if age >= p.Household.Self.RetirementAge ||
			(p.Household.Partner != nil && partnerAge >= p.Household.Partner.RetirementAge) {
			drift = drift.Sub(p.Expenses.AnnualDecrease)
		}
		state.ExpenseLevel = state.ExpenseLevel.Mul(decimal.NewFromInt(1).Add(drift))
	}

	expenses := t.yearExpenses(state, age, partnerAge)
	for _, ev := range p.Events {
		if ev.Age == age && ev.Type == domain.EventExpense {
			expenses.OneTime = expenses.OneTime.Add(ev.Amount)
			eventApplied = true
		}
	}

	// 4. Contributions while working. The employee deferral is a cash
	// outflow; the employer match is not.
	employee, employer := t.contributions(age, partnerAge, state.YearIndex)
	total := employee.Add(employer)
	state.Balances.Set(domain.AccountTaxDeferred,
		state.Balances.Get(domain.AccountTaxDeferred).Add(total))

	// 5. Flat tax on income, then cover any shortfall from the accounts.
	grossIncome := income.Total()
	incomeTax := grossIncome.Mul(p.Withdrawal.TaxRate)
	need := expenses.Total().Add(employee).Sub(grossIncome.Sub(incomeTax))

	var draws domain.Balances
	withdrawal := decimal.Zero
	withdrawalTax := decimal.Zero
	var convErr error

	if need.GreaterThan(decimal.Zero) {
		var ok bool
		draws, withdrawalTax, ok = t.grossUpWithdrawal(state.Balances, need)
		withdrawal = draws.Total()
		for _, acct := range domain.AllAccountTypes {
			state.Balances.Set(acct, state.Balances.Get(acct).Sub(draws.Get(acct)))
		}
		if !ok {
			if withdrawal.GreaterThanOrEqual(state.Balances.Total().Add(withdrawal).Sub(cent)) {
				// Everything was drawn and it still was not enough.
				state.Depleted = true
			} else {
				convErr = &ConvergenceError{
					Trial:      t.Trial,
					Age:        age,
					Iterations: t.maxTaxIterations(),
				}
				state.Depleted = true
			}
		}
	} else {
		// Surplus accrues to the taxable account, as contributions beyond the
		// deferral caps would.
		state.Balances.Set(domain.AccountTaxable,
			state.Balances.Get(domain.AccountTaxable).Add(need.Neg()))
	}

	// 6. Windfalls and downsizing proceeds credit the taxable account.
	for _, ev := range p.Events {
		if ev.Age != age {
			continue
		}
		switch ev.Type {
		case domain.EventWindfall, domain.EventDownsize:
			state.Balances.Set(domain.AccountTaxable,
				state.Balances.Get(domain.AccountTaxable).Add(ev.Amount))
			eventApplied = true
		}
	}

	// 7. Depletion check: clamp and stop.
	ending := state.Balances.Total()
	if ending.LessThanOrEqual(decimal.Zero) {
		state.Balances = domain.Balances{}
		ending = decimal.Zero
		state.Depleted = true
	}

	withdrawalRate := decimal.Zero
	if start.GreaterThan(decimal.Zero) {
		withdrawalRate = withdrawal.Div(start)
	}

	baseYear := p.Simulation.BaseYear
	deflator := decimal.NewFromInt(1).Add(p.Market.InflationMean).
		Pow(decimal.NewFromInt(int64(state.YearIndex + 1)))

	result := domain.YearResult{
		Year:             baseYear + state.YearIndex,
		Age:              age,
		PartnerAge:       partnerAge,
		StartingBalance:  start,
		EndingBalance:    ending,
		ConstantCurrency: ending.Div(deflator),
		GrossReturnRate:  weighted,
		InvestmentReturn: investmentReturn,
		InflationRate:    inflation,
		Income:           income,
		Expenses:         expenses,
		Contributions:    total,
		Taxes:            incomeTax.Add(withdrawalTax),
		Withdrawal:       withdrawal,
		WithdrawalRate:   withdrawalRate,
		Draws:            draws,
		EndingBalances:   state.Balances,
		EventApplied:     eventApplied,
	}

	state.YearIndex++
	return result, convErr
}

// yearIncome computes all income streams for the year. Formulas follow the
// household model: salary grows until retirement, pension grows from
// retirement age, Social Security grows at COLA from the claim age, rental
// grows from its start age.
func (t *Transition) yearIncome(age, partnerAge, yearIndex int) domain.YearIncome {
	p := t.Params
	cola := p.Market.COLARate

	income := domain.YearIncome{
		SelfSalary:         salaryFor(&p.Household.Self, age, yearIndex),
		SelfPension:        pensionFor(&p.Household.Self, age),
		SelfSocialSecurity: socialSecurityFor(&p.Household.Self, age, cola),
	}
	if p.Household.Partner != nil {
		income.PartnerSalary = salaryFor(p.Household.Partner, partnerAge, yearIndex)
		income.PartnerPension = pensionFor(p.Household.Partner, partnerAge)
		income.PartnerSocialSecurity = socialSecurityFor(p.Household.Partner, partnerAge, cola)
	}
	if r := p.Rental; r != nil && age >= r.StartAge && age <= r.EndAge {
		income.Rental = r.Amount.Mul(growthFactor(r.AnnualIncrease, age-r.StartAge))
	}
	return income
}

func salaryFor(person *domain.Person, age, yearIndex int) decimal.Decimal {
	if age >= person.RetirementAge {
		return decimal.Zero
	}
	return person.AnnualSalary.Mul(growthFactor(person.SalaryGrowth, yearIndex))
}

func pensionFor(person *domain.Person, age int) decimal.Decimal {
	if age < person.RetirementAge {
		return decimal.Zero
	}
	return person.AnnualPension.Mul(growthFactor(person.PensionGrowth, age-person.RetirementAge))
}

func socialSecurityFor(person *domain.Person, age int, cola decimal.Decimal) decimal.Decimal {
	if age < person.SSClaimAge {
		return decimal.Zero
	}
	return person.SocialSecurity.Mul(growthFactor(cola, age-person.SSClaimAge))
}

// yearExpenses computes the year's spending. Healthcare runs from each
// person's start age until Medicare age; the mortgage drops off after payoff.
func (t *Transition) yearExpenses(state *YearState, age, partnerAge int) domain.YearExpenses {
	p := t.Params
	out := domain.YearExpenses{Living: state.ExpenseLevel}

	if state.YearIndex < p.Expenses.MortgageYearsRemaining {
		out.Mortgage = p.Expenses.MortgagePayment
	}

	hcInflation := p.Market.InflationMean
	if p.Expenses.HealthcareInflation != nil {
		hcInflation = *p.Expenses.HealthcareInflation
	}
	out.SelfHealthcare = healthcareFor(&p.Household.Self, age, hcInflation)
	if p.Household.Partner != nil {
		out.PartnerHealthcare = healthcareFor(p.Household.Partner, partnerAge, hcInflation)
	}
	return out
}

func healthcareFor(person *domain.Person, age int, inflation decimal.Decimal) decimal.Decimal {
	if age < person.HealthcareStartAge || age >= MedicareAge {
		return decimal.Zero
	}
	return person.HealthcareCost.Mul(growthFactor(inflation, age-person.HealthcareStartAge))
}

// contributions returns the household's employee deferrals and employer
// matches for the year, capped at the COLA-indexed 401(k) limits.
func (t *Transition) contributions(age, partnerAge, yearIndex int) (employee, employer decimal.Decimal) {
	p := t.Params

	e, m := contributionFor(&p.Household.Self, age, yearIndex, p.Market.COLARate)
	employee, employer = e, m
	if p.Household.Partner != nil {
		e, m = contributionFor(p.Household.Partner, partnerAge, yearIndex, p.Market.COLARate)
		employee = employee.Add(e)
		employer = employer.Add(m)
	}
	return employee, employer
}

func contributionFor(person *domain.Person, age, yearIndex int, cola decimal.Decimal) (employee, employer decimal.Decimal) {
	if age >= person.RetirementAge {
		return decimal.Zero, decimal.Zero
	}

	cap := contributionCap401k.Mul(growthFactor(cola, yearIndex))
	if age >= CatchUpAge {
		cap = cap.Add(catchUpCap401k.Mul(growthFactor(cola, yearIndex)))
	}

	if person.Maximize401k {
		employee = cap
	} else {
		employee = decimal.Min(person.Contribution401k.Mul(growthFactor(person.SalaryGrowth, yearIndex)), cap)
	}
	employer = person.EmployerMatch.Mul(growthFactor(person.SalaryGrowth, yearIndex))
	return employee, employer
}

// grossUpWithdrawal sizes a withdrawal that nets the needed amount after the
// flat tax on the tax-deferred share. The gross amount is allocated across
// accounts in policy order and re-taxed until the after-tax proceeds cover
// the need within a cent (fixed point, bounded iterations). ok is false when
// the loop hit its bound or the accounts ran dry.
func (t *Transition) grossUpWithdrawal(balances domain.Balances, need decimal.Decimal) (draws domain.Balances, tax decimal.Decimal, ok bool) {
	p := t.Params
	order := p.Withdrawal.EffectiveOrder()
	target := need

	for i := 0; i < t.maxTaxIterations(); i++ {
		draws = allocateDraws(balances, order, target)
		tax = draws.Get(domain.AccountTaxDeferred).Mul(p.Withdrawal.TaxRate)
		afterTax := draws.Total().Sub(tax)

		if afterTax.GreaterThanOrEqual(need.Sub(cent)) {
			return draws, tax, true
		}
		if draws.Total().GreaterThanOrEqual(balances.Total().Sub(cent)) {
			// Accounts exhausted; the partial withdrawal stands.
			return draws, tax, false
		}
		target = need.Add(tax)
	}
	return draws, tax, false
}

func (t *Transition) maxTaxIterations() int {
	if t.Params.Withdrawal.MaxTaxIterations > 0 {
		return t.Params.Withdrawal.MaxTaxIterations
	}
	return DefaultMaxTaxIterations
}

// allocateDraws fills the target from the buckets in order, capping each draw
// at the bucket's balance.
func allocateDraws(balances domain.Balances, order []domain.AccountType, target decimal.Decimal) domain.Balances {
	var draws domain.Balances
	remaining := target
	for _, acct := range order {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		d := decimal.Min(remaining, balances.Get(acct))
		if d.IsNegative() {
			d = decimal.Zero
		}
		draws.Set(acct, d)
		remaining = remaining.Sub(d)
	}
	return draws
}

func growthFactor(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
}
