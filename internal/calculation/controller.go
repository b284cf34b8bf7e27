package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// Sink receives one rate array per rate kind per recompute. The consumer
// (typically a rendering layer) owns all display concerns.
type Sink interface {
	Publish(kind domain.RateKind, rates []decimal.Decimal)
}

// ParameterController holds the current values of the adjustable knobs and
// re-runs the sweep for every subscribed rate kind whenever one changes.
//
// The controller is driven by a single control surface: knob setters must
// not be called concurrently. Each setter blocks until the full recompute
// has been delivered to the sink, so two sweeps never overlap. On a sweep
// failure nothing is published for that recompute; the sink keeps whatever
// curves it last received.
type ParameterController struct {
	Runner *SweepRunner
	Sink   Sink
	Logger Logger

	grid  []decimal.Decimal
	kinds []domain.RateKind
	ratio decimal.Decimal

	localTax           decimal.Decimal
	capitalGains       decimal.Decimal
	amtBasisAdjustment decimal.Decimal
	mortgageInterest   decimal.Decimal
}

// NewParameterController creates a controller with knobs at their configured
// defaults and an even spouse split.
func NewParameterController(runner *SweepRunner, sink Sink, grid []decimal.Decimal, kinds []domain.RateKind, knobs domain.KnobRanges) *ParameterController {
	return &ParameterController{
		Runner: runner,
		Sink:   sink,
		Logger: NopLogger{},

		grid:  grid,
		kinds: kinds,
		ratio: decimal.NewFromFloat(0.5),

		localTax:           knobs.LocalTax.Default,
		capitalGains:       knobs.CapitalGains.Default,
		amtBasisAdjustment: knobs.AMTBasisAdjustment.Default,
		mortgageInterest:   knobs.MortgageInterest.Default,
	}
}

// Start runs the initial sweep. Call once before any knob change.
func (pc *ParameterController) Start() error {
	return pc.recompute()
}

// SetLocalTax updates the deductible local-tax amount and recomputes.
// Knob values are passed through unclamped; the configured range is
// advisory.
func (pc *ParameterController) SetLocalTax(v decimal.Decimal) error {
	pc.localTax = v
	return pc.recompute()
}

// SetCapitalGains updates long-term capital gains and recomputes.
func (pc *ParameterController) SetCapitalGains(v decimal.Decimal) error {
	pc.capitalGains = v
	return pc.recompute()
}

// SetAMTBasisAdjustment updates the AMT basis adjustment and recomputes.
func (pc *ParameterController) SetAMTBasisAdjustment(v decimal.Decimal) error {
	pc.amtBasisAdjustment = v
	return pc.recompute()
}

// SetMortgageInterest updates the mortgage-interest deduction and
// recomputes.
func (pc *ParameterController) SetMortgageInterest(v decimal.Decimal) error {
	pc.mortgageInterest = v
	return pc.recompute()
}

// SetSpouseRatio updates the wage split ratio and recomputes.
func (pc *ParameterController) SetSpouseRatio(v decimal.Decimal) error {
	pc.ratio = v
	return pc.recompute()
}

// Knobs returns the current knob values as a fixed profile with zero wages;
// the sweep substitutes each grid point as total wages.
func (pc *ParameterController) Knobs() domain.IncomeProfile {
	return domain.IncomeProfile{
		SpouseRatio:        pc.ratio,
		CapitalGains:       pc.capitalGains,
		LocalTax:           pc.localTax,
		MortgageInterest:   pc.mortgageInterest,
		AMTBasisAdjustment: pc.amtBasisAdjustment,
	}
}

func (pc *ParameterController) recompute() error {
	fixed := pc.Knobs()

	// Sweep every kind before publishing anything, so the sink never sees a
	// half-updated set of curves.
	curves := make([][]decimal.Decimal, len(pc.kinds))
	for i, kind := range pc.kinds {
		rates, err := pc.Runner.Sweep(kind, pc.grid, fixed)
		if err != nil {
			pc.logger().Errorf("recompute aborted on %s sweep: %v", kind, err)
			return fmt.Errorf("sweep %s: %w", kind, err)
		}
		curves[i] = rates
	}

	for i, kind := range pc.kinds {
		pc.Sink.Publish(kind, curves[i])
	}
	return nil
}

func (pc *ParameterController) logger() Logger {
	if pc.Logger == nil {
		return NopLogger{}
	}
	return pc.Logger
}
