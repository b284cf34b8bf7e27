package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
	"github.com/rpgo/marginal-rate-explorer/internal/taxengine"
)

// EngineAdapter invokes a tax engine and extracts the single scalar the
// sensitivity core needs: total tax liability. Engine failures are
// propagated untouched; retrying with an identical record cannot succeed.
type EngineAdapter struct {
	Engine taxengine.Engine
}

// NewEngineAdapter wraps an engine.
func NewEngineAdapter(engine taxengine.Engine) *EngineAdapter {
	return &EngineAdapter{Engine: engine}
}

// TotalLiability evaluates a record and returns the total-tax line.
func (ea *EngineAdapter) TotalLiability(record *domain.FilingInputRecord) (decimal.Decimal, error) {
	lines, err := ea.Engine.Evaluate(record)
	if err != nil {
		return decimal.Zero, err
	}
	total, ok := lines[taxengine.LineTotalTax]
	if !ok {
		return decimal.Zero, fmt.Errorf("tax engine result missing line %q", taxengine.LineTotalTax)
	}
	return total, nil
}
