package simulation

import "sort"

// historicalReturn is one calendar year of market history, in percent.
type historicalReturn struct {
	Stock float64
	Bond  float64
}

// historicalReturns holds annual S&P 500 total returns and 10-year Treasury
// returns, 1974-2023. Used by the empirical sampler and to clip normal draws
// to the historically observed range.
var historicalReturns = map[int]historicalReturn{
	1974: {-25.90, 2.03},
	1975: {37.00, 3.61},
	1976: {23.83, 15.98},
	1977: {-6.98, 1.29},
	1978: {6.51, -0.78},
	1979: {18.52, 0.67},
	1980: {31.74, -2.99},
	1981: {-4.70, 8.20},
	1982: {20.42, 32.81},
	1983: {22.34, 3.20},
	1984: {6.15, 13.73},
	1985: {31.24, 25.71},
	1986: {18.49, 24.28},
	1987: {5.81, -4.96},
	1988: {16.54, 8.22},
	1989: {31.48, 17.69},
	1990: {-3.06, 6.24},
	1991: {30.23, 15.00},
	1992: {7.49, 9.36},
	1993: {9.97, 14.21},
	1994: {1.33, -8.04},
	1995: {37.20, 23.48},
	1996: {22.68, 1.43},
	1997: {33.10, 9.94},
	1998: {28.34, 14.92},
	1999: {20.89, -8.25},
	2000: {-9.03, 16.66},
	2001: {-11.85, 5.57},
	2002: {-21.97, 15.12},
	2003: {28.36, 0.38},
	2004: {10.74, 4.49},
	2005: {4.83, 2.87},
	2006: {15.61, 1.96},
	2007: {5.48, 10.21},
	2008: {-36.55, 20.10},
	2009: {25.94, -11.12},
	2010: {14.82, 8.46},
	2011: {2.10, 16.04},
	2012: {15.89, 2.97},
	2013: {32.15, -9.10},
	2014: {13.52, 10.75},
	2015: {1.38, 1.28},
	2016: {11.77, 0.69},
	2017: {21.61, 2.80},
	2018: {-4.23, -0.02},
	2019: {31.21, 9.64},
	2020: {18.02, 11.33},
	2021: {28.47, -4.42},
	2022: {-18.04, -17.83},
	2023: {26.06, 3.88},
}

// historicalYears returns the available years in ascending order.
func historicalYears() []int {
	years := make([]int, 0, len(historicalReturns))
	for y := range historicalReturns {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// historicalBounds returns the observed min/max stock and bond returns as
// fractions. Normal draws are clipped to these so a single sampled year never
// falls outside anything history has produced.
func historicalBounds() (stockMin, stockMax, bondMin, bondMax float64) {
	first := true
	for _, r := range historicalReturns {
		s, b := r.Stock/100, r.Bond/100
		if first {
			stockMin, stockMax, bondMin, bondMax = s, s, b, b
			first = false
			continue
		}
		if s < stockMin {
			stockMin = s
		}
		if s > stockMax {
			stockMax = s
		}
		if b < bondMin {
			bondMin = b
		}
		if b > bondMax {
			bondMax = b
		}
	}
	return stockMin, stockMax, bondMin, bondMax
}
