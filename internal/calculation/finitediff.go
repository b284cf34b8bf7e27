package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// FiniteDifferenceEngine derives tax rates from pairs of engine evaluations.
// Marginal kinds are forward differences with a fixed step: the approximation
// error is O(Delta) and dominated by any bracket boundary falling inside the
// step, so sampled marginal-rate curves can jump sharply near boundaries.
type FiniteDifferenceEngine struct {
	Builder *ProfileBuilder
	Adapter *EngineAdapter
	Delta   decimal.Decimal
}

// NewFiniteDifferenceEngine wires a builder and adapter with the
// forward-difference step from the constants.
func NewFiniteDifferenceEngine(builder *ProfileBuilder, adapter *EngineAdapter) *FiniteDifferenceEngine {
	return &FiniteDifferenceEngine{
		Builder: builder,
		Adapter: adapter,
		Delta:   builder.Constants.Delta,
	}
}

// Rate computes one rate for the given profile.
//
// For marginal kinds exactly one dimension of the perturbed profile differs
// from the base, by Delta; every other field of the constructed records is
// identical, so the measured difference is attributable solely to the
// perturbed dimension. The wage perturbation re-splits income+Delta at the
// same ratio, shifting both earners proportionally.
//
// Effective is base liability over (wages + capital gains); a zero
// denominator returns decimal zero, the documented sentinel. Total is the
// unperturbed base liability.
func (fd *FiniteDifferenceEngine) Rate(kind domain.RateKind, profile domain.IncomeProfile) (decimal.Decimal, error) {
	base, err := fd.Adapter.TotalLiability(fd.Builder.Build(profile))
	if err != nil {
		return decimal.Zero, err
	}

	switch kind {
	case domain.RateTotal:
		return base, nil
	case domain.RateEffective:
		denom := profile.TotalWages.Add(profile.CapitalGains)
		if denom.IsZero() {
			return decimal.Zero, nil
		}
		return base.Div(denom), nil
	}

	perturbed := profile
	switch kind {
	case domain.RateWageMarginal:
		perturbed.TotalWages = profile.TotalWages.Add(fd.Delta)
	case domain.RateCapitalGainsMarginal:
		perturbed.CapitalGains = profile.CapitalGains.Add(fd.Delta)
	case domain.RateLocalTaxDeductionMarginal:
		perturbed.LocalTax = profile.LocalTax.Add(fd.Delta)
	case domain.RateMortgageInterestDeductionMarginal:
		perturbed.MortgageInterest = profile.MortgageInterest.Add(fd.Delta)
	default:
		return decimal.Zero, fmt.Errorf("unknown rate kind %q", kind)
	}

	next, err := fd.Adapter.TotalLiability(fd.Builder.Build(perturbed))
	if err != nil {
		return decimal.Zero, err
	}
	return next.Sub(base).Div(fd.Delta), nil
}
