package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType identifies one of the household's account buckets.
type AccountType string

const (
	AccountTaxable     AccountType = "taxable"
	AccountTaxDeferred AccountType = "tax_deferred"
	AccountCash        AccountType = "cash"
	AccountRoth        AccountType = "roth"
)

// AllAccountTypes lists every account bucket in default withdrawal order:
// taxable first, then tax-deferred, then cash, Roth last.
var AllAccountTypes = []AccountType{AccountTaxable, AccountTaxDeferred, AccountCash, AccountRoth}

// EventType identifies a one-time special event in the projection.
type EventType string

const (
	// EventWindfall credits the taxable account (inheritance, sale proceeds).
	EventWindfall EventType = "windfall"
	// EventExpense is a one-time expense in the trigger year.
	EventExpense EventType = "expense"
	// EventDownsize credits home-downsizing residual proceeds.
	EventDownsize EventType = "downsize"
	// EventExpenseAdjustment permanently shifts the living-expense level.
	EventExpenseAdjustment EventType = "expense_adjustment"
)

// Distribution selects the sampling model for yearly market returns.
type Distribution string

const (
	DistNormal    Distribution = "normal"
	DistLogNormal Distribution = "lognormal"
	DistStudentT  Distribution = "student-t"
	DistEmpirical Distribution = "empirical"
)

// Parameters is the complete, validated input for one simulation run.
// It is immutable for the duration of the run and round-trips through YAML.
type Parameters struct {
	Household  Household          `yaml:"household" json:"household"`
	Accounts   Accounts           `yaml:"accounts" json:"accounts"`
	Expenses   Expenses           `yaml:"expenses" json:"expenses"`
	Rental     *RentalIncome      `yaml:"rental,omitempty" json:"rental,omitempty"`
	Market     MarketAssumptions  `yaml:"market" json:"market"`
	Events     []Event            `yaml:"events,omitempty" json:"events,omitempty"`
	Withdrawal WithdrawalPolicy   `yaml:"withdrawal" json:"withdrawal"`
	Simulation SimulationSettings `yaml:"simulation" json:"simulation"`
}

// Household describes who is being simulated. Partner is optional.
// LifeExpectancy is a terminal age keyed to Self: the projection runs from
// Self's current age through that age inclusive.
type Household struct {
	Self           Person  `yaml:"self" json:"self"`
	Partner        *Person `yaml:"partner,omitempty" json:"partner,omitempty"`
	LifeExpectancy int     `yaml:"life_expectancy" json:"life_expectancy"`
}

// Person holds one member's profile, income streams and contribution rules.
type Person struct {
	CurrentAge    int `yaml:"current_age" json:"current_age"`
	RetirementAge int `yaml:"retirement_age" json:"retirement_age"`

	AnnualSalary decimal.Decimal `yaml:"annual_salary" json:"annual_salary"`
	SalaryGrowth decimal.Decimal `yaml:"salary_growth" json:"salary_growth"`

	AnnualPension decimal.Decimal `yaml:"annual_pension" json:"annual_pension"`
	PensionGrowth decimal.Decimal `yaml:"pension_growth" json:"pension_growth"`

	SocialSecurity decimal.Decimal `yaml:"social_security" json:"social_security"`
	SSClaimAge     int             `yaml:"ss_claim_age" json:"ss_claim_age"`

	// Pre-Medicare healthcare premium; paid from HealthcareStartAge until 65.
	HealthcareCost     decimal.Decimal `yaml:"healthcare_cost" json:"healthcare_cost"`
	HealthcareStartAge int             `yaml:"healthcare_start_age" json:"healthcare_start_age"`

	// Employee deferral plus employer match into the tax-deferred bucket,
	// while working. Maximize overrides the deferral with the indexed cap.
	Contribution401k decimal.Decimal `yaml:"contribution_401k" json:"contribution_401k"`
	EmployerMatch    decimal.Decimal `yaml:"employer_match" json:"employer_match"`
	Maximize401k     bool            `yaml:"maximize_401k" json:"maximize_401k"`
}

// Accounts holds starting balances per bucket.
type Accounts struct {
	Taxable     decimal.Decimal `yaml:"taxable" json:"taxable"`
	TaxDeferred decimal.Decimal `yaml:"tax_deferred" json:"tax_deferred"`
	Roth        decimal.Decimal `yaml:"roth" json:"roth"`
	Cash        decimal.Decimal `yaml:"cash" json:"cash"`
}

// Total returns the combined starting balance.
func (a Accounts) Total() decimal.Decimal {
	return a.Taxable.Add(a.TaxDeferred).Add(a.Roth).Add(a.Cash)
}

// Expenses describes the household's recurring spending.
type Expenses struct {
	AnnualLiving decimal.Decimal `yaml:"annual_living" json:"annual_living"`

	// Annual reduction applied once retired ("retirement smile"), netted
	// against inflation when the expense level rolls forward.
	AnnualDecrease decimal.Decimal `yaml:"annual_decrease" json:"annual_decrease"`

	MortgagePayment        decimal.Decimal `yaml:"mortgage_payment" json:"mortgage_payment"`
	MortgageYearsRemaining int             `yaml:"mortgage_years_remaining" json:"mortgage_years_remaining"`

	// Optional healthcare-specific inflation; nil means use Market.InflationMean.
	HealthcareInflation *decimal.Decimal `yaml:"healthcare_inflation,omitempty" json:"healthcare_inflation,omitempty"`
}

// RentalIncome is an income stream active between two of Self's ages.
type RentalIncome struct {
	Amount         decimal.Decimal `yaml:"amount" json:"amount"`
	StartAge       int             `yaml:"start_age" json:"start_age"`
	EndAge         int             `yaml:"end_age" json:"end_age"`
	AnnualIncrease decimal.Decimal `yaml:"annual_increase" json:"annual_increase"`
}

// MarketAssumptions parameterizes the return and inflation distributions.
type MarketAssumptions struct {
	StockPercent decimal.Decimal `yaml:"stock_percent" json:"stock_percent"`
	BondPercent  decimal.Decimal `yaml:"bond_percent" json:"bond_percent"`

	StockReturnMean decimal.Decimal `yaml:"stock_return_mean" json:"stock_return_mean"`
	StockReturnStd  decimal.Decimal `yaml:"stock_return_std" json:"stock_return_std"`
	BondReturnMean  decimal.Decimal `yaml:"bond_return_mean" json:"bond_return_mean"`
	BondReturnStd   decimal.Decimal `yaml:"bond_return_std" json:"bond_return_std"`

	InflationMean decimal.Decimal `yaml:"inflation_mean" json:"inflation_mean"`
	InflationStd  decimal.Decimal `yaml:"inflation_std" json:"inflation_std"`

	// COLA applied to Social Security benefits and contribution caps.
	COLARate decimal.Decimal `yaml:"cola_rate" json:"cola_rate"`

	// Yield on the cash bucket; it does not participate in market returns.
	CashReturn decimal.Decimal `yaml:"cash_return" json:"cash_return"`

	Distribution Distribution `yaml:"distribution" json:"distribution"`
}

// WeightedReturn combines stock and bond return rates by allocation.
func (m MarketAssumptions) WeightedReturn(stock, bond decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return stock.Mul(m.StockPercent.Div(hundred)).Add(bond.Mul(m.BondPercent.Div(hundred)))
}

// Event is a one-time special event triggered at an exact age of Self.
type Event struct {
	Type   EventType       `yaml:"type" json:"type"`
	Age    int             `yaml:"age" json:"age"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// WithdrawalPolicy fixes the order accounts are drawn down and the simplified
// flat tax applied to tax-deferred withdrawals.
type WithdrawalPolicy struct {
	// Order of buckets to draw from; empty means AllAccountTypes.
	Order []AccountType `yaml:"order,omitempty" json:"order,omitempty"`

	// Flat marginal rate applied to income and tax-deferred withdrawals.
	TaxRate decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`

	// Bound on the withdrawal/tax gross-up fixed point; 0 means the default.
	MaxTaxIterations int `yaml:"max_tax_iterations,omitempty" json:"max_tax_iterations,omitempty"`
}

// EffectiveOrder returns the configured order or the documented default.
func (w WithdrawalPolicy) EffectiveOrder() []AccountType {
	if len(w.Order) == 0 {
		return AllAccountTypes
	}
	return w.Order
}

// SimulationSettings controls batch size, seeding and scheduling.
type SimulationSettings struct {
	Trials int   `yaml:"trials" json:"trials"`
	Seed   int64 `yaml:"seed" json:"seed"`

	// Worker pool size; 0 means the engine default. 1 forces sequential runs.
	Parallelism int `yaml:"parallelism,omitempty" json:"parallelism,omitempty"`

	// Fraction of excluded (faulted) trials above which the batch fails.
	MaxFailureRate decimal.Decimal `yaml:"max_failure_rate,omitempty" json:"max_failure_rate,omitempty"`

	// Base calendar year for reporting; 0 means the current year.
	BaseYear int `yaml:"base_year,omitempty" json:"base_year,omitempty"`
}

// Years returns the number of simulated years per trial.
func (p *Parameters) Years() int {
	return p.Household.LifeExpectancy - p.Household.Self.CurrentAge + 1
}
