package output

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// CurveCollector is a sink that retains the latest published curve per rate
// kind. It satisfies the calculation package's Sink interface and turns the
// collected curves into a SweepReport for the formatters.
type CurveCollector struct {
	curves map[domain.RateKind][]decimal.Decimal
}

// NewCurveCollector creates an empty collector.
func NewCurveCollector() *CurveCollector {
	return &CurveCollector{curves: make(map[domain.RateKind][]decimal.Decimal)}
}

// Publish stores the latest curve for a kind, replacing any previous one.
func (cc *CurveCollector) Publish(kind domain.RateKind, rates []decimal.Decimal) {
	cc.curves[kind] = rates
}

// Curve returns the latest curve for a kind, nil if never published.
func (cc *CurveCollector) Curve(kind domain.RateKind) []decimal.Decimal {
	return cc.curves[kind]
}

// Report assembles the collected curves against an income grid, in canonical
// rate-kind order so output is deterministic.
func (cc *CurveCollector) Report(incomes []decimal.Decimal) *SweepReport {
	report := &SweepReport{Incomes: incomes}
	for _, kind := range domain.AllRateKinds() {
		if rates, ok := cc.curves[kind]; ok {
			report.Curves = append(report.Curves, RateCurve{Kind: kind, Rates: rates})
		}
	}
	return report
}
