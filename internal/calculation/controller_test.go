package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// recordingSink counts publishes and keeps the latest curve per kind.
type recordingSink struct {
	publishes int
	curves    map[domain.RateKind][]decimal.Decimal
}

func newRecordingSink() *recordingSink {
	return &recordingSink{curves: make(map[domain.RateKind][]decimal.Decimal)}
}

func (rs *recordingSink) Publish(kind domain.RateKind, rates []decimal.Decimal) {
	rs.publishes++
	rs.curves[kind] = rates
}

func subscribedKinds() []domain.RateKind {
	return []domain.RateKind{
		domain.RateWageMarginal,
		domain.RateCapitalGainsMarginal,
		domain.RateEffective,
	}
}

func newTestController(sink Sink) *ParameterController {
	runner := NewSweepRunner(quarterRateEngine())
	return NewParameterController(runner, sink, testGrid(), subscribedKinds(), domain.DefaultKnobRanges())
}

// Start publishes one curve per subscribed kind, each the length of the
// grid.
func TestControllerInitialSweep(t *testing.T) {
	sink := newRecordingSink()
	controller := newTestController(sink)

	require.NoError(t, controller.Start())

	assert.Equal(t, len(subscribedKinds()), sink.publishes)
	for _, kind := range subscribedKinds() {
		require.Contains(t, sink.curves, kind)
		assert.Len(t, sink.curves[kind], len(testGrid()))
	}
}

// A knob change re-runs every subscribed sweep and republishes.
func TestControllerRecomputeOnKnobChange(t *testing.T) {
	sink := newRecordingSink()
	controller := newTestController(sink)
	require.NoError(t, controller.Start())

	before := sink.curves[domain.RateEffective]
	require.NoError(t, controller.SetCapitalGains(decimal.NewFromInt(50000)))

	assert.Equal(t, 2*len(subscribedKinds()), sink.publishes)

	// The flat engine taxes gains too, so effective rates over wages+gains
	// stay 0.25, but totals shift; check the effective curve was replaced
	// by a recomputed one of equal shape.
	after := sink.curves[domain.RateEffective]
	require.Len(t, after, len(before))

	// Wage marginal is unchanged at 0.25 under the flat engine.
	for i, rate := range sink.curves[domain.RateWageMarginal] {
		assert.True(t, decimal.NewFromFloat(0.25).Equal(rate), "grid[%d] = %s", i, rate)
	}
}

// Every knob setter triggers exactly one recompute and lands in the fixed
// profile the sweeps use.
func TestControllerSetters(t *testing.T) {
	sink := newRecordingSink()
	controller := newTestController(sink)
	require.NoError(t, controller.Start())

	v := decimal.NewFromInt(1234)
	require.NoError(t, controller.SetLocalTax(v))
	require.NoError(t, controller.SetCapitalGains(v))
	require.NoError(t, controller.SetAMTBasisAdjustment(v))
	require.NoError(t, controller.SetMortgageInterest(v))
	require.NoError(t, controller.SetSpouseRatio(decimal.NewFromFloat(0.3)))

	// Initial sweep plus one per setter.
	assert.Equal(t, 6*len(subscribedKinds()), sink.publishes)

	knobs := controller.Knobs()
	assert.True(t, v.Equal(knobs.LocalTax))
	assert.True(t, v.Equal(knobs.CapitalGains))
	assert.True(t, v.Equal(knobs.AMTBasisAdjustment))
	assert.True(t, v.Equal(knobs.MortgageInterest))
	assert.True(t, decimal.NewFromFloat(0.3).Equal(knobs.SpouseRatio))
	assert.True(t, knobs.TotalWages.IsZero(), "wages come from the grid, not the knobs")
}

// Knob defaults come from the configured ranges.
func TestControllerKnobDefaults(t *testing.T) {
	controller := newTestController(newRecordingSink())
	knobs := controller.Knobs()

	assert.True(t, knobs.LocalTax.IsZero())
	assert.True(t, knobs.CapitalGains.IsZero())
	assert.True(t, knobs.AMTBasisAdjustment.IsZero())
	assert.True(t, knobs.MortgageInterest.IsZero())
	assert.True(t, decimal.NewFromFloat(0.5).Equal(knobs.SpouseRatio))
}

// On a sweep failure nothing is published: the sink keeps the previous
// curves.
func TestControllerRetainsCurvesOnFailure(t *testing.T) {
	sink := newRecordingSink()
	controller := newTestController(sink)
	require.NoError(t, controller.Start())
	published := sink.publishes

	// Swap in a runner whose engine rejects everything.
	controller.Runner = NewSweepRunner(NewFiniteDifferenceEngine(testBuilder(), NewEngineAdapter(rejectingEngine{})))

	err := controller.SetLocalTax(decimal.NewFromInt(1000))
	require.Error(t, err)
	assert.Equal(t, published, sink.publishes, "failed recompute must not publish")
	for _, kind := range subscribedKinds() {
		assert.Len(t, sink.curves[kind], len(testGrid()), "previous curve retained")
	}
}
