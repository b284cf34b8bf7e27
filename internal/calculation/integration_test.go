package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
	"github.com/rpgo/marginal-rate-explorer/internal/taxengine"
)

// Full stack against the built-in reference engine: controller -> sweep ->
// finite differences -> builder -> engine, over a trimmed grid.
func TestControllerEndToEndWithReferenceEngine(t *testing.T) {
	builder := testBuilder()
	adapter := NewEngineAdapter(taxengine.NewReferenceEngine2016())
	runner := NewSweepRunner(NewFiniteDifferenceEngine(builder, adapter))

	grid := domain.GridSpec{
		Min:  decimal.NewFromInt(10000),
		Max:  decimal.NewFromInt(510000),
		Step: decimal.NewFromInt(50000),
	}.Points()

	kinds := []domain.RateKind{
		domain.RateWageMarginal,
		domain.RateCapitalGainsMarginal,
		domain.RateLocalTaxDeductionMarginal,
		domain.RateMortgageInterestDeductionMarginal,
		domain.RateEffective,
	}

	sink := newRecordingSink()
	controller := NewParameterController(runner, sink, grid, kinds, domain.DefaultKnobRanges())
	require.NoError(t, controller.Start())

	for _, kind := range kinds {
		require.Len(t, sink.curves[kind], len(grid), "kind %s", kind)
	}

	one := decimal.NewFromInt(1)
	for i := range grid {
		wage := sink.curves[domain.RateWageMarginal][i]
		assert.False(t, wage.IsNegative(), "wage marginal %s at %s", wage, grid[i])
		assert.True(t, wage.LessThan(one), "wage marginal %s at %s", wage, grid[i])

		effective := sink.curves[domain.RateEffective][i]
		assert.False(t, effective.IsNegative(), "effective %s at %s", effective, grid[i])
		assert.True(t, effective.LessThan(one), "effective %s at %s", effective, grid[i])

		// An extra deductible dollar never raises liability.
		for _, kind := range []domain.RateKind{
			domain.RateLocalTaxDeductionMarginal,
			domain.RateMortgageInterestDeductionMarginal,
		} {
			assert.False(t, sink.curves[kind][i].IsPositive(),
				"%s = %s at %s", kind, sink.curves[kind][i], grid[i])
		}
	}

	// Pushing capital gains up recomputes everything and keeps shapes.
	require.NoError(t, controller.SetCapitalGains(decimal.NewFromInt(100000)))
	for _, kind := range kinds {
		assert.Len(t, sink.curves[kind], len(grid), "kind %s after knob change", kind)
	}
}
