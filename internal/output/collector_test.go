package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

func TestCurveCollectorKeepsLatest(t *testing.T) {
	collector := NewCurveCollector()

	first := []decimal.Decimal{decimal.NewFromFloat(0.1)}
	second := []decimal.Decimal{decimal.NewFromFloat(0.2)}
	collector.Publish(domain.RateEffective, first)
	collector.Publish(domain.RateEffective, second)

	got := collector.Curve(domain.RateEffective)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromFloat(0.2).Equal(got[0]))
	assert.Nil(t, collector.Curve(domain.RateTotal))
}

// Report orders curves canonically regardless of publish order.
func TestCurveCollectorReportOrder(t *testing.T) {
	collector := NewCurveCollector()
	rates := []decimal.Decimal{decimal.NewFromFloat(0.1)}

	collector.Publish(domain.RateEffective, rates)
	collector.Publish(domain.RateWageMarginal, rates)
	collector.Publish(domain.RateCapitalGainsMarginal, rates)

	report := collector.Report([]decimal.Decimal{decimal.NewFromInt(10000)})
	require.Len(t, report.Curves, 3)
	assert.Equal(t, domain.RateWageMarginal, report.Curves[0].Kind)
	assert.Equal(t, domain.RateCapitalGainsMarginal, report.Curves[1].Kind)
	assert.Equal(t, domain.RateEffective, report.Curves[2].Kind)
}
