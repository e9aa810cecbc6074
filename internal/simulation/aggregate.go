package simulation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

// Aggregate reduces a completed trial set to per-age percentile bands and
// summary statistics. It is order-independent and idempotent: aggregating the
// same trials twice yields identical results.
//
// Percentiles use linear interpolation on the sorted sample (the R-7 method:
// rank = p*(n-1), interpolate between the bracketing order statistics).
// Trials that depleted early contribute zero balance for every age past
// depletion, so all trials weigh equally at every age.
func Aggregate(params *domain.Parameters, trials []*domain.Trial) *domain.AggregateResult {
	out := &domain.AggregateResult{TrialCount: len(trials)}
	if len(trials) == 0 {
		return out
	}

	startAge := params.Household.Self.CurrentAge
	endAge := params.Household.LifeExpectancy

	for age := startAge; age <= endAge; age++ {
		balances := make([]decimal.Decimal, 0, len(trials))
		rates := make([]decimal.Decimal, 0, len(trials))
		for _, t := range trials {
			balances = append(balances, t.BalanceAt(age))
			if yr, ok := resultAt(t, age); ok {
				rates = append(rates, yr.WithdrawalRate)
			}
		}
		sortDecimals(balances)
		sortDecimals(rates)

		band := domain.PercentileBand{
			Age: age,
			P10: percentile(balances, 0.10),
			P25: percentile(balances, 0.25),
			P50: percentile(balances, 0.50),
			P75: percentile(balances, 0.75),
			P90: percentile(balances, 0.90),
		}
		if len(rates) > 0 {
			band.MedianWithdrawalRate = percentile(rates, 0.50)
		}
		out.Bands = append(out.Bands, band)
	}

	succeeded := 0
	endings := make([]decimal.Decimal, 0, len(trials))
	for _, t := range trials {
		if t.Succeeded() {
			succeeded++
		}
		endings = append(endings, t.EndingBalance)
	}
	sortDecimals(endings)

	n := decimal.NewFromInt(int64(len(trials)))
	out.SuccessRate = decimal.NewFromInt(int64(succeeded)).Div(n)
	out.DepletionRate = decimal.NewFromInt(int64(len(trials) - succeeded)).Div(n)
	out.MedianEndingBalance = percentile(endings, 0.50)

	return out
}

// resultAt finds the year record for an age; ok is false past depletion.
func resultAt(t *domain.Trial, age int) (domain.YearResult, bool) {
	for _, yr := range t.Results {
		if yr.Age == age {
			return yr, true
		}
	}
	return domain.YearResult{}, false
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentile computes the p-th percentile of sorted values by linear
// interpolation between closest ranks.
func percentile(sorted []decimal.Decimal, p float64) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n == 1 {
		return sorted[0]
	}

	rank := p * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := decimal.NewFromFloat(rank - float64(lo))
	return sorted[lo].Add(sorted[lo+1].Sub(sorted[lo]).Mul(frac))
}
