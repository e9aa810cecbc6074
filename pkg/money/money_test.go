package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{812000.50, "$812,001"},
		{1234567.891, "$1,234,568"},
		{-45000, "-$45,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUSD(decimal.NewFromFloat(tt.in)), "input %v", tt.in)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "93.12%", Percent(decimal.NewFromFloat(0.9312)))
	assert.Equal(t, "0.00%", Percent(decimal.Zero))
	assert.Equal(t, "100.00%", Percent(decimal.NewFromInt(1)))
}
