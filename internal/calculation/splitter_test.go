package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitIncomeEvenSplit(t *testing.T) {
	totals := []int64{0, 1, 100, 117000, 999999}
	for _, total := range totals {
		d := decimal.NewFromInt(total)
		first, second := SplitIncome(d, decimal.NewFromFloat(0.5))
		half := d.Div(decimal.NewFromInt(2))
		assert.True(t, half.Equal(first), "split(%d, 0.5) first = %s", total, first)
		assert.True(t, half.Equal(second), "split(%d, 0.5) second = %s", total, second)
	}
}

func TestSplitIncomeSumsToTotal(t *testing.T) {
	tests := []struct {
		name  string
		total decimal.Decimal
		ratio decimal.Decimal
	}{
		{"even", decimal.NewFromInt(100000), decimal.NewFromFloat(0.5)},
		{"uneven", decimal.NewFromInt(100000), decimal.NewFromFloat(0.3)},
		{"all to first", decimal.NewFromInt(50000), decimal.NewFromInt(1)},
		{"all to second", decimal.NewFromInt(50000), decimal.Zero},
		{"out of range high", decimal.NewFromInt(80000), decimal.NewFromFloat(1.5)},
		{"out of range negative", decimal.NewFromInt(80000), decimal.NewFromFloat(-0.25)},
		{"negative total", decimal.NewFromInt(-10000), decimal.NewFromFloat(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := SplitIncome(tt.total, tt.ratio)
			assert.True(t, tt.total.Equal(first.Add(second)),
				"%s + %s != %s", first, second, tt.total)
		})
	}
}

// Out-of-range ratios pass through arithmetically: the first share exceeds
// the total and the second goes negative.
func TestSplitIncomeOutOfRangePassThrough(t *testing.T) {
	first, second := SplitIncome(decimal.NewFromInt(100), decimal.NewFromInt(2))
	assert.True(t, decimal.NewFromInt(200).Equal(first))
	assert.True(t, decimal.NewFromInt(-100).Equal(second))
}
