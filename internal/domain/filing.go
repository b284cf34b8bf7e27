package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FilingStatus identifies the household filing status on the return.
type FilingStatus string

const (
	// FilingStatusJoint is a married couple filing a joint return.
	FilingStatusJoint FilingStatus = "joint"
)

// FilingTemplate holds the configuration that is fixed for an entire run:
// filing status, exemption count, and whether intermediate rounding is
// disabled inside the tax engine. Created once at startup and never mutated.
type FilingTemplate struct {
	Status          FilingStatus `yaml:"status" json:"status"`
	Exemptions      int          `yaml:"exemptions" json:"exemptions"`
	DisableRounding bool         `yaml:"disable_rounding" json:"disable_rounding"`
}

// DefaultFilingTemplate returns the fixed household template: married filing
// jointly, two exemptions, rounding disabled so finite differences are not
// quantized to whole dollars.
func DefaultFilingTemplate() FilingTemplate {
	return FilingTemplate{
		Status:          FilingStatusJoint,
		Exemptions:      2,
		DisableRounding: true,
	}
}

// IncomeProfile carries the variable inputs for a single evaluation point.
// Immutable once built; a fresh profile is constructed per grid point.
type IncomeProfile struct {
	TotalWages         decimal.Decimal // combined W-2 wages for both earners
	SpouseRatio        decimal.Decimal // share of wages assigned to the first earner
	CapitalGains       decimal.Decimal // long-term capital gains
	LocalTax           decimal.Decimal // deductible local/real-estate tax amount
	MortgageInterest   decimal.Decimal // deductible mortgage interest amount
	AMTBasisAdjustment decimal.Decimal
}

// Deduction schedule line identifiers. The deduction sub-record is a mapping
// from line id to amount so that adding a deductible dimension is a map
// entry, not a structural change.
const (
	DeductionLineRealEstateTax    = "6"
	DeductionLineMortgageInterest = "10"
)

// FilingInputRecord is the structured record handed to the tax engine. It is
// a pure function of (FilingTemplate, IncomeProfile); no field is patched
// after construction.
type FilingInputRecord struct {
	Status          FilingStatus `json:"status"`
	Exemptions      int          `json:"exemptions"`
	DisableRounding bool         `json:"disable_rounding"`

	// Per-earner amounts, index 0 and 1. Wages sum to the profile's total
	// wages up to decimal arithmetic.
	Wages               []decimal.Decimal `json:"wages"`
	WagesMedicare       []decimal.Decimal `json:"wages_medicare"`
	MedicareWithheld    []decimal.Decimal `json:"medicare_withheld"`
	WagesSocialSecurity []decimal.Decimal `json:"wages_ss"`

	StateWithholding   decimal.Decimal `json:"state_withholding"`
	CapitalGainLong    decimal.Decimal `json:"capital_gain_long"`
	AMTBasisAdjustment decimal.Decimal `json:"amt_basis_adjustment"`

	// Deductions maps schedule line id to amount (see DeductionLine*).
	Deductions map[string]decimal.Decimal `json:"deductions"`
}

// TotalWages returns the combined wages across both earners.
func (r *FilingInputRecord) TotalWages() decimal.Decimal {
	total := decimal.Zero
	for _, w := range r.Wages {
		total = total.Add(w)
	}
	return total
}

// TotalMedicareWages returns the combined Medicare-subject wages.
func (r *FilingInputRecord) TotalMedicareWages() decimal.Decimal {
	total := decimal.Zero
	for _, w := range r.WagesMedicare {
		total = total.Add(w)
	}
	return total
}

// Deduction returns the amount on a deduction schedule line, zero if absent.
func (r *FilingInputRecord) Deduction(line string) decimal.Decimal {
	if r.Deductions == nil {
		return decimal.Zero
	}
	return r.Deductions[line]
}

// RateKind selects which sensitivity or aggregate a rate computation
// produces.
type RateKind string

const (
	// RateWageMarginal is the forward difference of liability with respect
	// to total wages, re-split across both earners at the same ratio.
	RateWageMarginal RateKind = "wage_marginal"
	// RateCapitalGainsMarginal perturbs long-term capital gains.
	RateCapitalGainsMarginal RateKind = "capital_gains_marginal"
	// RateLocalTaxDeductionMarginal perturbs the deductible local-tax amount.
	RateLocalTaxDeductionMarginal RateKind = "local_tax_deduction_marginal"
	// RateMortgageInterestDeductionMarginal perturbs the mortgage-interest
	// deduction.
	RateMortgageInterestDeductionMarginal RateKind = "mortgage_interest_deduction_marginal"
	// RateEffective is total liability divided by (wages + capital gains).
	RateEffective RateKind = "effective"
	// RateTotal is the unperturbed total liability.
	RateTotal RateKind = "total"
)

// AllRateKinds lists every rate kind in canonical publication order.
func AllRateKinds() []RateKind {
	return []RateKind{
		RateWageMarginal,
		RateCapitalGainsMarginal,
		RateLocalTaxDeductionMarginal,
		RateMortgageInterestDeductionMarginal,
		RateEffective,
		RateTotal,
	}
}

// ParseRateKind validates a rate kind string.
func ParseRateKind(s string) (RateKind, error) {
	for _, k := range AllRateKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown rate kind %q", s)
}

// IsMarginal reports whether the kind is a forward-difference sensitivity
// (as opposed to an aggregate like effective or total).
func (k RateKind) IsMarginal() bool {
	switch k {
	case RateWageMarginal, RateCapitalGainsMarginal,
		RateLocalTaxDeductionMarginal, RateMortgageInterestDeductionMarginal:
		return true
	}
	return false
}
