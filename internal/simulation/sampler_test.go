package simulation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

func testMarket(dist domain.Distribution) domain.MarketAssumptions {
	return domain.MarketAssumptions{
		StockPercent:    decimal.NewFromInt(60),
		BondPercent:     decimal.NewFromInt(40),
		StockReturnMean: dec(0.101),
		StockReturnStd:  dec(0.196),
		BondReturnMean:  dec(0.039),
		BondReturnStd:   dec(0.0117),
		InflationMean:   dec(0.025),
		InflationStd:    dec(0.01),
		Distribution:    dist,
	}
}

func sampleN(t *testing.T, s ReturnSampler, n int) []YearReturns {
	t.Helper()
	out := make([]YearReturns, n)
	for i := range out {
		r, err := s.Sample(i)
		require.NoError(t, err)
		out[i] = r
	}
	return out
}

func TestNewSamplerUnknownDistribution(t *testing.T) {
	market := testMarket("cauchy")
	_, err := NewSampler(market, rand.New(rand.NewSource(1)))
	assert.ErrorContains(t, err, "cauchy")
}

func TestSamplerDeterministic(t *testing.T) {
	for _, dist := range []domain.Distribution{
		domain.DistNormal, domain.DistLogNormal, domain.DistStudentT, domain.DistEmpirical,
	} {
		t.Run(string(dist), func(t *testing.T) {
			market := testMarket(dist)

			a, err := NewSampler(market, rand.New(rand.NewSource(7)))
			require.NoError(t, err)
			b, err := NewSampler(market, rand.New(rand.NewSource(7)))
			require.NoError(t, err)
			c, err := NewSampler(market, rand.New(rand.NewSource(8)))
			require.NoError(t, err)

			sa := sampleN(t, a, 50)
			sb := sampleN(t, b, 50)
			sc := sampleN(t, c, 50)

			assert.Equal(t, sa, sb, "same seed must replay the same sequence")
			assert.NotEqual(t, sa, sc, "different seeds must diverge")
		})
	}
}

func TestNormalSamplerClipsToHistoricalRange(t *testing.T) {
	market := testMarket(domain.DistNormal)
	market.StockReturnStd = dec(5) // absurd volatility to force clipping
	market.BondReturnStd = dec(5)

	s, err := NewSampler(market, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	stockMin, stockMax, bondMin, bondMax := historicalBounds()
	for _, r := range sampleN(t, s, 200) {
		assert.GreaterOrEqual(t, r.Stock, stockMin)
		assert.LessOrEqual(t, r.Stock, stockMax)
		assert.GreaterOrEqual(t, r.Bond, bondMin)
		assert.LessOrEqual(t, r.Bond, bondMax)
	}
}

func TestSamplersCollapseToMeanAtZeroVolatility(t *testing.T) {
	tests := []struct {
		dist domain.Distribution
	}{
		{domain.DistNormal},
		{domain.DistLogNormal},
		{domain.DistStudentT},
	}
	for _, tt := range tests {
		t.Run(string(tt.dist), func(t *testing.T) {
			market := testMarket(tt.dist)
			market.StockReturnStd = decimal.Zero
			market.BondReturnStd = decimal.Zero
			market.InflationStd = decimal.Zero

			s, err := NewSampler(market, rand.New(rand.NewSource(1)))
			require.NoError(t, err)

			for _, r := range sampleN(t, s, 10) {
				assert.InDelta(t, 0.101, r.Stock, 1e-9)
				assert.InDelta(t, 0.039, r.Bond, 1e-9)
				assert.InDelta(t, 0.025, r.Inflation, 1e-9)
			}
		})
	}
}

func TestEmpiricalSamplerKeepsYearsPaired(t *testing.T) {
	market := testMarket(domain.DistEmpirical)
	s, err := NewSampler(market, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	// Every draw must be an actual historical stock/bond pair, not an
	// independent recombination.
	pairs := map[historicalReturn]bool{}
	for _, h := range historicalReturns {
		pairs[h] = true
	}
	for _, r := range sampleN(t, s, 200) {
		h := historicalReturn{Stock: r.Stock * 100, Bond: r.Bond * 100}
		found := false
		for p := range pairs {
			if closeEnough(p.Stock, h.Stock) && closeEnough(p.Bond, h.Bond) {
				found = true
				break
			}
		}
		assert.True(t, found, "draw %+v is not a historical pair", h)
	}
}

func closeEnough(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestStudentTSamplerHasFatTails(t *testing.T) {
	market := testMarket(domain.DistStudentT)
	s, err := NewSampler(market, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	// With df=5 the scaled t occasionally lands well past 3 sigma; over a
	// large fixed-seed sample at least a handful of such draws must appear.
	extreme := 0
	for _, r := range sampleN(t, s, 5000) {
		if r.Stock > 0.101+3*0.196 || r.Stock < 0.101-3*0.196 {
			extreme++
		}
	}
	assert.Greater(t, extreme, 5)
}

func TestFiniteRejectsNaN(t *testing.T) {
	_, err := finite(YearReturns{Stock: math.NaN()})
	assert.Error(t, err)

	_, err = finite(YearReturns{Bond: math.Inf(1)})
	assert.Error(t, err)

	_, err = finite(YearReturns{Stock: 0.1, Bond: 0.04, Inflation: 0.02})
	assert.NoError(t, err)
}
