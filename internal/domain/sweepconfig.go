package domain

import (
	"github.com/shopspring/decimal"
)

// FilingConstants are the named constants that parameterize record
// construction and the finite-difference step. They are passed explicitly
// into the builder and engine, never consulted as ambient globals.
type FilingConstants struct {
	// Delta is the fixed forward-difference step in dollars.
	Delta decimal.Decimal `yaml:"delta" json:"delta"`
	// MedicareRate is the payroll Medicare withholding rate.
	MedicareRate decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
	// SocialSecurityMax caps per-earner Social-Security-subject wages.
	SocialSecurityMax decimal.Decimal `yaml:"social_security_max" json:"social_security_max"`
	// StateWithholdingRate is applied to (total wages + capital gains) as a
	// simplifying proxy for state tax withheld. The reference behavior uses
	// 10%, not the 9% state rate its own comments mention; changing it
	// shifts every downstream marginal rate.
	StateWithholdingRate decimal.Decimal `yaml:"state_withholding_rate" json:"state_withholding_rate"`
}

// DefaultFilingConstants returns the reference constants: DELTA=10,
// Medicare 1.45%, Social Security wage cap 117,000, state withholding 10%.
func DefaultFilingConstants() FilingConstants {
	return FilingConstants{
		Delta:                decimal.NewFromInt(10),
		MedicareRate:         decimal.NewFromFloat(0.0145),
		SocialSecurityMax:    decimal.NewFromInt(117000),
		StateWithholdingRate: decimal.NewFromFloat(0.10),
	}
}

// KnobRange describes the advisory range for one adjustable knob. Values
// outside the range are passed through arithmetically, never clamped; the
// range exists for control surfaces (sliders) to consume.
type KnobRange struct {
	Min     decimal.Decimal `yaml:"min" json:"min"`
	Max     decimal.Decimal `yaml:"max" json:"max"`
	Default decimal.Decimal `yaml:"default" json:"default"`
}

// KnobRanges collects the ranges for every adjustable knob.
type KnobRanges struct {
	LocalTax           KnobRange `yaml:"local_tax" json:"local_tax"`
	CapitalGains       KnobRange `yaml:"capital_gains" json:"capital_gains"`
	AMTBasisAdjustment KnobRange `yaml:"amt_basis_adjustment" json:"amt_basis_adjustment"`
	MortgageInterest   KnobRange `yaml:"mortgage_interest" json:"mortgage_interest"`
}

// DefaultKnobRanges returns the reference control ranges.
func DefaultKnobRanges() KnobRanges {
	million := decimal.NewFromInt(1000000)
	return KnobRanges{
		LocalTax:           KnobRange{Min: decimal.Zero, Max: decimal.NewFromInt(37500), Default: decimal.Zero},
		CapitalGains:       KnobRange{Min: decimal.Zero, Max: million, Default: decimal.Zero},
		AMTBasisAdjustment: KnobRange{Min: million.Neg(), Max: million, Default: decimal.Zero},
		MortgageInterest:   KnobRange{Min: decimal.Zero, Max: decimal.NewFromInt(100000), Default: decimal.Zero},
	}
}

// GridSpec describes the ordered income sweep grid: Min inclusive, Max
// exclusive, fixed Step.
type GridSpec struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Step decimal.Decimal `yaml:"step" json:"step"`
}

// DefaultGridSpec returns the reference grid: 10,000 to 1,000,000 exclusive,
// stepping by 10,000.
func DefaultGridSpec() GridSpec {
	return GridSpec{
		Min:  decimal.NewFromInt(10000),
		Max:  decimal.NewFromInt(1000000),
		Step: decimal.NewFromInt(10000),
	}
}

// Points expands the grid into its ordered income values.
func (g GridSpec) Points() []decimal.Decimal {
	var points []decimal.Decimal
	for v := g.Min; v.LessThan(g.Max); v = v.Add(g.Step) {
		points = append(points, v)
	}
	return points
}

// SweepConfiguration is the full configuration surface for a run: template,
// constants, grid, knob ranges, the rate kinds to publish, and optional tax
// rule overrides for the built-in engine.
type SweepConfiguration struct {
	Template  FilingTemplate  `yaml:"template" json:"template"`
	Constants FilingConstants `yaml:"constants" json:"constants"`
	Grid      GridSpec        `yaml:"grid" json:"grid"`
	Knobs     KnobRanges      `yaml:"knobs" json:"knobs"`
	RateKinds []RateKind      `yaml:"rate_kinds" json:"rate_kinds"`
	TaxRules  *TaxRulesConfig `yaml:"tax_rules,omitempty" json:"tax_rules,omitempty"`
}

// TaxBracketConfig is one bracket row for the built-in engine.
type TaxBracketConfig struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxRulesConfig overrides the built-in engine's year rules. Empty fields
// fall back to the engine defaults.
type TaxRulesConfig struct {
	Brackets              []TaxBracketConfig `yaml:"brackets" json:"brackets"`
	StandardDeduction     decimal.Decimal    `yaml:"standard_deduction" json:"standard_deduction"`
	ExemptionAmount       decimal.Decimal    `yaml:"exemption_amount" json:"exemption_amount"`
	LTCGZeroRateCeiling   decimal.Decimal    `yaml:"ltcg_zero_rate_ceiling" json:"ltcg_zero_rate_ceiling"`
	LTCGTopRateFloor      decimal.Decimal    `yaml:"ltcg_top_rate_floor" json:"ltcg_top_rate_floor"`
	AMTExemption          decimal.Decimal    `yaml:"amt_exemption" json:"amt_exemption"`
	AMTPhaseoutStart      decimal.Decimal    `yaml:"amt_phaseout_start" json:"amt_phaseout_start"`
	AMTRateBreakpoint     decimal.Decimal    `yaml:"amt_rate_breakpoint" json:"amt_rate_breakpoint"`
	AddlMedicareThreshold decimal.Decimal    `yaml:"addl_medicare_threshold" json:"addl_medicare_threshold"`
}
