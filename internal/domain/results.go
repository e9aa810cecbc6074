package domain

import (
	"github.com/shopspring/decimal"
)

// Outcome is the terminal state of a trial.
type Outcome string

const (
	// OutcomeSucceeded means the portfolio lasted through life expectancy.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeDepleted means the balance hit zero before life expectancy.
	OutcomeDepleted Outcome = "depleted"
)

// Balances is a point-in-time snapshot of all account buckets.
type Balances struct {
	Taxable     decimal.Decimal `json:"taxable"`
	TaxDeferred decimal.Decimal `json:"tax_deferred"`
	Roth        decimal.Decimal `json:"roth"`
	Cash        decimal.Decimal `json:"cash"`
}

// Total returns the combined balance across buckets.
func (b Balances) Total() decimal.Decimal {
	return b.Taxable.Add(b.TaxDeferred).Add(b.Roth).Add(b.Cash)
}

// Get returns the balance of one bucket.
func (b Balances) Get(t AccountType) decimal.Decimal {
	switch t {
	case AccountTaxable:
		return b.Taxable
	case AccountTaxDeferred:
		return b.TaxDeferred
	case AccountRoth:
		return b.Roth
	case AccountCash:
		return b.Cash
	}
	return decimal.Zero
}

// Set overwrites the balance of one bucket.
func (b *Balances) Set(t AccountType, v decimal.Decimal) {
	switch t {
	case AccountTaxable:
		b.Taxable = v
	case AccountTaxDeferred:
		b.TaxDeferred = v
	case AccountRoth:
		b.Roth = v
	case AccountCash:
		b.Cash = v
	}
}

// YearIncome breaks down the income received in one simulated year.
type YearIncome struct {
	SelfSalary            decimal.Decimal `json:"self_salary"`
	PartnerSalary         decimal.Decimal `json:"partner_salary"`
	SelfPension           decimal.Decimal `json:"self_pension"`
	PartnerPension        decimal.Decimal `json:"partner_pension"`
	SelfSocialSecurity    decimal.Decimal `json:"self_social_security"`
	PartnerSocialSecurity decimal.Decimal `json:"partner_social_security"`
	Rental                decimal.Decimal `json:"rental"`
}

// Total sums all income streams.
func (y YearIncome) Total() decimal.Decimal {
	return y.SelfSalary.Add(y.PartnerSalary).
		Add(y.SelfPension).Add(y.PartnerPension).
		Add(y.SelfSocialSecurity).Add(y.PartnerSocialSecurity).
		Add(y.Rental)
}

// YearExpenses breaks down the expenses paid in one simulated year.
type YearExpenses struct {
	Living            decimal.Decimal `json:"living"`
	Mortgage          decimal.Decimal `json:"mortgage"`
	SelfHealthcare    decimal.Decimal `json:"self_healthcare"`
	PartnerHealthcare decimal.Decimal `json:"partner_healthcare"`
	OneTime           decimal.Decimal `json:"one_time"`
}

// Total sums all expense categories.
func (y YearExpenses) Total() decimal.Decimal {
	return y.Living.Add(y.Mortgage).
		Add(y.SelfHealthcare).Add(y.PartnerHealthcare).
		Add(y.OneTime)
}

// YearResult is the immutable record of one simulated year within a trial.
type YearResult struct {
	Year       int `json:"year"`
	Age        int `json:"age"`
	PartnerAge int `json:"partner_age,omitempty"`

	StartingBalance decimal.Decimal `json:"starting_balance"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`

	// ConstantCurrency is the ending balance deflated back to the base year
	// using cumulative mean inflation.
	ConstantCurrency decimal.Decimal `json:"constant_currency"`

	// GrossReturnRate is the stock/bond weighted return realized this year.
	GrossReturnRate  decimal.Decimal `json:"gross_return_rate"`
	InvestmentReturn decimal.Decimal `json:"investment_return"`
	InflationRate    decimal.Decimal `json:"inflation_rate"`

	Income   YearIncome   `json:"income"`
	Expenses YearExpenses `json:"expenses"`

	Contributions decimal.Decimal `json:"contributions"`
	Taxes         decimal.Decimal `json:"taxes"`

	Withdrawal     decimal.Decimal `json:"withdrawal"`
	WithdrawalRate decimal.Decimal `json:"withdrawal_rate"`
	Draws          Balances        `json:"draws"`

	EndingBalances Balances `json:"ending_balances"`

	// EventApplied is set when any special event triggered this year.
	EventApplied bool `json:"event_applied"`
}

// Trial is the completed trajectory of one simulated lifetime.
type Trial struct {
	Index   int          `json:"index"`
	Results []YearResult `json:"results"`
	Outcome Outcome      `json:"outcome"`

	// DepletionAge is set only when Outcome is OutcomeDepleted.
	DepletionAge  *int            `json:"depletion_age,omitempty"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// Succeeded reports whether the portfolio lasted through life expectancy.
func (t *Trial) Succeeded() bool {
	return t.Outcome == OutcomeSucceeded
}

// BalanceAt returns the ending balance at the given age. Ages past depletion
// report zero so aggregation can treat all trials as equal length.
func (t *Trial) BalanceAt(age int) decimal.Decimal {
	for _, yr := range t.Results {
		if yr.Age == age {
			return yr.EndingBalance
		}
	}
	return decimal.Zero
}

// PercentileBand is the distribution of ending balances at one age.
type PercentileBand struct {
	Age int             `json:"age"`
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`

	// MedianWithdrawalRate is the p50 of withdrawal/starting-balance across
	// trials still active at this age.
	MedianWithdrawalRate decimal.Decimal `json:"median_withdrawal_rate"`
}

// AggregateResult reduces a batch of trials to reportable statistics.
// It is derived once after all trials complete and immutable thereafter.
type AggregateResult struct {
	Bands []PercentileBand `json:"bands"`

	SuccessRate         decimal.Decimal `json:"success_rate"`
	DepletionRate       decimal.Decimal `json:"depletion_rate"`
	MedianEndingBalance decimal.Decimal `json:"median_ending_balance"`

	TrialCount    int `json:"trial_count"`
	ExcludedCount int `json:"excluded_count"`
}
