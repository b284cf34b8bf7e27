package taxengine

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// TaxBracket is one row of a progressive rate ladder.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// ReferenceEngine is a built-in Engine modeling a 2016 married-filing-jointly
// federal return: ordinary bracket ladder, long-term capital gains stacked at
// preferential rates, itemized-vs-standard deduction, personal exemptions, a
// simplified AMT, and the Additional Medicare Tax.
//
// It exists so the sweep runs end to end without an external collaborator;
// everything upstream depends only on the Engine interface.
type ReferenceEngine struct {
	Brackets          []TaxBracket
	StandardDeduction decimal.Decimal
	ExemptionAmount   decimal.Decimal // per exemption

	// LTCG stacking thresholds, expressed against taxable income: gains
	// below the zero-rate ceiling are untaxed, above the top-rate floor
	// taxed at the top gains rate, 15% in between.
	LTCGZeroRateCeiling decimal.Decimal
	LTCGTopRateFloor    decimal.Decimal
	LTCGMidRate         decimal.Decimal
	LTCGTopRate         decimal.Decimal

	// Simplified AMT: exemption with 25%-per-dollar phaseout, 26% up to the
	// rate breakpoint and 28% above, gains still at preferential rates.
	AMTExemption      decimal.Decimal
	AMTPhaseoutStart  decimal.Decimal
	AMTPhaseoutRate   decimal.Decimal
	AMTLowRate        decimal.Decimal
	AMTHighRate       decimal.Decimal
	AMTRateBreakpoint decimal.Decimal

	// Additional Medicare Tax on combined Medicare wages above the
	// threshold.
	AddlMedicareRate      decimal.Decimal
	AddlMedicareThreshold decimal.Decimal
}

// NewReferenceEngine2016 creates the engine with 2016 MFJ figures.
func NewReferenceEngine2016() *ReferenceEngine {
	return &ReferenceEngine{
		Brackets:          defaultBrackets2016(),
		StandardDeduction: decimal.NewFromInt(12600),
		ExemptionAmount:   decimal.NewFromInt(4050),

		LTCGZeroRateCeiling: decimal.NewFromInt(75300),
		LTCGTopRateFloor:    decimal.NewFromInt(466950),
		LTCGMidRate:         decimal.NewFromFloat(0.15),
		LTCGTopRate:         decimal.NewFromFloat(0.20),

		AMTExemption:      decimal.NewFromInt(83800),
		AMTPhaseoutStart:  decimal.NewFromInt(159700),
		AMTPhaseoutRate:   decimal.NewFromFloat(0.25),
		AMTLowRate:        decimal.NewFromFloat(0.26),
		AMTHighRate:       decimal.NewFromFloat(0.28),
		AMTRateBreakpoint: decimal.NewFromInt(186300),

		AddlMedicareRate:      decimal.NewFromFloat(0.009),
		AddlMedicareThreshold: decimal.NewFromInt(250000),
	}
}

// NewReferenceEngineWithConfig creates the engine with rule overrides.
// Zero-valued fields fall back to the 2016 defaults.
func NewReferenceEngineWithConfig(rules domain.TaxRulesConfig) *ReferenceEngine {
	engine := NewReferenceEngine2016()
	if len(rules.Brackets) > 0 {
		var brackets []TaxBracket
		for _, b := range rules.Brackets {
			brackets = append(brackets, TaxBracket{Min: b.Min, Max: b.Max, Rate: b.Rate})
		}
		engine.Brackets = brackets
	}
	if !rules.StandardDeduction.IsZero() {
		engine.StandardDeduction = rules.StandardDeduction
	}
	if !rules.ExemptionAmount.IsZero() {
		engine.ExemptionAmount = rules.ExemptionAmount
	}
	if !rules.LTCGZeroRateCeiling.IsZero() {
		engine.LTCGZeroRateCeiling = rules.LTCGZeroRateCeiling
	}
	if !rules.LTCGTopRateFloor.IsZero() {
		engine.LTCGTopRateFloor = rules.LTCGTopRateFloor
	}
	if !rules.AMTExemption.IsZero() {
		engine.AMTExemption = rules.AMTExemption
	}
	if !rules.AMTPhaseoutStart.IsZero() {
		engine.AMTPhaseoutStart = rules.AMTPhaseoutStart
	}
	if !rules.AMTRateBreakpoint.IsZero() {
		engine.AMTRateBreakpoint = rules.AMTRateBreakpoint
	}
	if !rules.AddlMedicareThreshold.IsZero() {
		engine.AddlMedicareThreshold = rules.AddlMedicareThreshold
	}
	return engine
}

func defaultBrackets2016() []TaxBracket {
	return []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(18550), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(18550), decimal.NewFromInt(75300), decimal.NewFromFloat(0.15)},
		{decimal.NewFromInt(75300), decimal.NewFromInt(151900), decimal.NewFromFloat(0.25)},
		{decimal.NewFromInt(151900), decimal.NewFromInt(231450), decimal.NewFromFloat(0.28)},
		{decimal.NewFromInt(231450), decimal.NewFromInt(413350), decimal.NewFromFloat(0.33)},
		{decimal.NewFromInt(413350), decimal.NewFromInt(466950), decimal.NewFromFloat(0.35)},
		{decimal.NewFromInt(466950), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.396)},
	}
}

// Evaluate computes the return. The record must describe a joint filing with
// exactly two earners; anything else is rejected with an InputError.
func (re *ReferenceEngine) Evaluate(record *domain.FilingInputRecord) (map[string]decimal.Decimal, error) {
	if err := re.validate(record); err != nil {
		return nil, err
	}

	agi := record.TotalWages().Add(record.CapitalGainLong)

	itemized := record.StateWithholding.
		Add(record.Deduction(domain.DeductionLineRealEstateTax)).
		Add(record.Deduction(domain.DeductionLineMortgageInterest))
	deduction := decimal.Max(itemized, re.StandardDeduction)
	usedItemized := itemized.GreaterThan(re.StandardDeduction)

	exemptions := re.ExemptionAmount.Mul(decimal.NewFromInt(int64(record.Exemptions)))

	taxable := agi.Sub(deduction).Sub(exemptions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	// Gains actually reaching the preferential rates are bounded by taxable
	// income; deductions absorb gains first when ordinary income is small.
	gains := decimal.Min(record.CapitalGainLong, taxable)
	ordinary := taxable.Sub(gains)

	regularTax := ladderTax(re.Brackets, ordinary).
		Add(re.gainsTax(ordinary, taxable))

	amtExcess := re.alternativeMinimumExcess(record, agi, usedItemized, regularTax)

	addlMedicare := decimal.Zero
	excessWages := record.TotalMedicareWages().Sub(re.AddlMedicareThreshold)
	if excessWages.IsPositive() {
		addlMedicare = excessWages.Mul(re.AddlMedicareRate)
	}

	total := regularTax.Add(amtExcess).Add(addlMedicare)
	if !record.DisableRounding {
		total = total.Round(0)
	}

	return map[string]decimal.Decimal{
		LineAGI:           agi,
		LineDeduction:     deduction,
		LineExemptions:    exemptions,
		LineTaxableIncome: taxable,
		LineRegularTax:    regularTax,
		LineAMT:           amtExcess,
		LineOtherTaxes:    addlMedicare,
		LineTotalTax:      total,
	}, nil
}

func (re *ReferenceEngine) validate(record *domain.FilingInputRecord) error {
	if record == nil {
		return invalidf("nil record")
	}
	if record.Status != domain.FilingStatusJoint {
		return invalidf("unsupported filing status %q", record.Status)
	}
	if len(record.Wages) != 2 {
		return invalidf("expected 2 earner wage amounts, got %d", len(record.Wages))
	}
	if len(record.WagesMedicare) != len(record.Wages) {
		return invalidf("medicare wage count %d does not match earner count %d",
			len(record.WagesMedicare), len(record.Wages))
	}
	if record.Exemptions < 0 {
		return invalidf("negative exemption count %d", record.Exemptions)
	}
	return nil
}

// ladderTax applies a progressive bracket ladder to taxable income.
func ladderTax(brackets []TaxBracket, taxable decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	for _, bracket := range brackets {
		if taxable.LessThanOrEqual(bracket.Min) {
			break
		}
		inBracket := decimal.Min(taxable, bracket.Max).Sub(bracket.Min)
		if inBracket.GreaterThan(decimal.Zero) {
			tax = tax.Add(inBracket.Mul(bracket.Rate))
		}
	}
	return tax
}

// gainsTax taxes the slice of taxable income from ordinary (exclusive) to
// taxable (inclusive) at the stacked preferential rates: gains fill the
// brackets above ordinary income.
func (re *ReferenceEngine) gainsTax(ordinary, taxable decimal.Decimal) decimal.Decimal {
	if taxable.LessThanOrEqual(ordinary) {
		return decimal.Zero
	}
	tax := decimal.Zero

	// 15% band between the zero-rate ceiling and the top-rate floor.
	midLo := decimal.Max(ordinary, re.LTCGZeroRateCeiling)
	midHi := decimal.Min(taxable, re.LTCGTopRateFloor)
	if midHi.GreaterThan(midLo) {
		tax = tax.Add(midHi.Sub(midLo).Mul(re.LTCGMidRate))
	}

	// Top band above the top-rate floor.
	topLo := decimal.Max(ordinary, re.LTCGTopRateFloor)
	if taxable.GreaterThan(topLo) {
		tax = tax.Add(taxable.Sub(topLo).Mul(re.LTCGTopRate))
	}

	return tax
}

// alternativeMinimumExcess computes max(0, tentative minimum tax − regular
// tax). AMTI starts from AGI: the standard deduction, exemptions, and
// state/local tax deductions are disallowed; mortgage interest stays
// deductible when itemizing; the basis adjustment shifts AMTI directly.
func (re *ReferenceEngine) alternativeMinimumExcess(record *domain.FilingInputRecord, agi decimal.Decimal, usedItemized bool, regularTax decimal.Decimal) decimal.Decimal {
	amti := agi.Add(record.AMTBasisAdjustment)
	if usedItemized {
		amti = amti.Sub(record.Deduction(domain.DeductionLineMortgageInterest))
	}

	exemption := re.AMTExemption
	overPhaseout := amti.Sub(re.AMTPhaseoutStart)
	if overPhaseout.IsPositive() {
		exemption = exemption.Sub(overPhaseout.Mul(re.AMTPhaseoutRate))
	}
	if exemption.IsNegative() {
		exemption = decimal.Zero
	}

	base := amti.Sub(exemption)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	gains := decimal.Min(record.CapitalGainLong, base)
	ordinary := base.Sub(gains)

	tmt := ladderTax([]TaxBracket{
		{decimal.Zero, re.AMTRateBreakpoint, re.AMTLowRate},
		{re.AMTRateBreakpoint, decimal.NewFromInt(999999999), re.AMTHighRate},
	}, ordinary).Add(re.gainsTax(ordinary, base))

	excess := tmt.Sub(regularTax)
	if excess.IsNegative() {
		return decimal.Zero
	}
	return excess
}
