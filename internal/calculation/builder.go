package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// ProfileBuilder converts an IncomeProfile into the FilingInputRecord the
// tax engine consumes. The template and constants are fixed at construction;
// Build is a pure function of its profile argument.
type ProfileBuilder struct {
	Template  domain.FilingTemplate
	Constants domain.FilingConstants
}

// NewProfileBuilder creates a builder for a fixed template and constants.
func NewProfileBuilder(template domain.FilingTemplate, constants domain.FilingConstants) *ProfileBuilder {
	return &ProfileBuilder{Template: template, Constants: constants}
}

// Build derives the filing record. Every field is computed here and never
// patched afterwards:
//
//   - per-earner wages from the spouse split,
//   - Medicare-subject wages equal to wages, withheld at the Medicare rate,
//   - Social-Security-subject wages capped at the maximum per earner, not on
//     the combined total,
//   - state withholding as a fixed share of (total wages + capital gains),
//   - a deduction schedule carrying the real-estate-tax and
//     mortgage-interest lines.
//
// Negative wages (negative total or out-of-range ratio) flow through the
// same arithmetic without special-casing.
func (pb *ProfileBuilder) Build(profile domain.IncomeProfile) *domain.FilingInputRecord {
	first, second := SplitIncome(profile.TotalWages, profile.SpouseRatio)
	wages := []decimal.Decimal{first, second}

	medicareWithheld := make([]decimal.Decimal, len(wages))
	ssWages := make([]decimal.Decimal, len(wages))
	for i, w := range wages {
		medicareWithheld[i] = w.Mul(pb.Constants.MedicareRate)
		ssWages[i] = decimal.Min(w, pb.Constants.SocialSecurityMax)
	}

	stateWithholding := profile.TotalWages.Add(profile.CapitalGains).
		Mul(pb.Constants.StateWithholdingRate)

	return &domain.FilingInputRecord{
		Status:          pb.Template.Status,
		Exemptions:      pb.Template.Exemptions,
		DisableRounding: pb.Template.DisableRounding,

		Wages:               wages,
		WagesMedicare:       wages,
		MedicareWithheld:    medicareWithheld,
		WagesSocialSecurity: ssWages,

		StateWithholding:   stateWithholding,
		CapitalGainLong:    profile.CapitalGains,
		AMTBasisAdjustment: profile.AMTBasisAdjustment,

		Deductions: map[string]decimal.Decimal{
			domain.DeductionLineRealEstateTax:    profile.LocalTax,
			domain.DeductionLineMortgageInterest: profile.MortgageInterest,
		},
	}
}
