package simulation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/biswassantanu/retirement-mc/internal/domain"
)

// YearReturns is one year's sampled market conditions, as fractional rates.
type YearReturns struct {
	Stock     float64
	Bond      float64
	Inflation float64
}

// ReturnSampler draws yearly stock/bond/inflation rates. Draws are
// independent across years; each trial owns its sampler and RNG, so draws are
// independent across trials as well. With a fixed seed the sequence is
// bit-identical between runs.
type ReturnSampler interface {
	Sample(yearIndex int) (YearReturns, error)
}

// NewSampler builds the sampler selected by the market assumptions, driven by
// the given RNG. The RNG must not be shared between trials.
func NewSampler(market domain.MarketAssumptions, rng *rand.Rand) (ReturnSampler, error) {
	base := baseSampler{
		stockMean:     market.StockReturnMean.InexactFloat64(),
		stockStd:      market.StockReturnStd.InexactFloat64(),
		bondMean:      market.BondReturnMean.InexactFloat64(),
		bondStd:       market.BondReturnStd.InexactFloat64(),
		inflationMean: market.InflationMean.InexactFloat64(),
		inflationStd:  market.InflationStd.InexactFloat64(),
		rng:           rng,
	}

	switch market.Distribution {
	case domain.DistNormal, "":
		s := &normalSampler{baseSampler: base}
		s.stockMin, s.stockMax, s.bondMin, s.bondMax = historicalBounds()
		return s, nil
	case domain.DistStudentT:
		return &studentTSampler{baseSampler: base, df: 5}, nil
	case domain.DistLogNormal:
		return &lognormalSampler{baseSampler: base}, nil
	case domain.DistEmpirical:
		return &empiricalSampler{baseSampler: base, years: historicalYears()}, nil
	}
	return nil, fmt.Errorf("unknown distribution %q", market.Distribution)
}

type baseSampler struct {
	stockMean, stockStd         float64
	bondMean, bondStd           float64
	inflationMean, inflationStd float64
	rng                         *rand.Rand
}

func (b *baseSampler) inflation() float64 {
	return b.inflationMean + b.inflationStd*b.rng.NormFloat64()
}

// finite rejects NaN and infinite draws so a broken distribution surfaces as
// a TrialError instead of silently corrupting balances.
func finite(r YearReturns) (YearReturns, error) {
	for _, v := range []float64{r.Stock, r.Bond, r.Inflation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return YearReturns{}, fmt.Errorf("sampler produced non-finite rate %v", v)
		}
	}
	return r, nil
}

// normalSampler draws normal returns clipped to the historical range.
type normalSampler struct {
	baseSampler
	stockMin, stockMax float64
	bondMin, bondMax   float64
}

func (s *normalSampler) Sample(int) (YearReturns, error) {
	stock := clip(s.stockMean+s.stockStd*s.rng.NormFloat64(), s.stockMin, s.stockMax)
	bond := clip(s.bondMean+s.bondStd*s.rng.NormFloat64(), s.bondMin, s.bondMax)
	return finite(YearReturns{Stock: stock, Bond: bond, Inflation: s.inflation()})
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// studentTSampler draws fat-tailed returns from a scaled Student's t.
type studentTSampler struct {
	baseSampler
	df int
}

// tVariate draws t = Z / sqrt(V/df) with V chi-squared on df degrees of
// freedom, built from df squared standard normals.
func (s *studentTSampler) tVariate() float64 {
	z := s.rng.NormFloat64()
	var chi2 float64
	for i := 0; i < s.df; i++ {
		n := s.rng.NormFloat64()
		chi2 += n * n
	}
	return z / math.Sqrt(chi2/float64(s.df))
}

func (s *studentTSampler) Sample(int) (YearReturns, error) {
	stock := s.stockMean + s.stockStd*s.tVariate()
	bond := s.bondMean + s.bondStd*s.tVariate()
	return finite(YearReturns{Stock: stock, Bond: bond, Inflation: s.inflation()})
}

// lognormalSampler draws exp(Normal(ln(mean), std)); means must be positive.
type lognormalSampler struct {
	baseSampler
}

func (s *lognormalSampler) Sample(int) (YearReturns, error) {
	stock := math.Exp(math.Log(s.stockMean) + s.stockStd*s.rng.NormFloat64())
	bond := math.Exp(math.Log(s.bondMean) + s.bondStd*s.rng.NormFloat64())
	return finite(YearReturns{Stock: stock, Bond: bond, Inflation: s.inflation()})
}

// empiricalSampler resamples actual historical years with replacement.
// A year's stock and bond returns stay paired so the sampled correlation
// matches history.
type empiricalSampler struct {
	baseSampler
	years []int
}

func (s *empiricalSampler) Sample(int) (YearReturns, error) {
	year := s.years[s.rng.Intn(len(s.years))]
	h := historicalReturns[year]
	return finite(YearReturns{
		Stock:     h.Stock / 100,
		Bond:      h.Bond / 100,
		Inflation: s.inflation(),
	})
}
