package taxengine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// Return line identifiers produced by an Engine. The sensitivity core reads
// only LineTotalTax; the rest exist for diagnostics.
const (
	LineAGI           = "38"
	LineDeduction     = "40"
	LineExemptions    = "42"
	LineTaxableIncome = "43"
	LineRegularTax    = "44"
	LineAMT           = "45"
	LineOtherTaxes    = "62"
	LineTotalTax      = "63"
)

// Engine is the black-box annual tax-liability function. Evaluate returns a
// mapping from return line identifier to value. Implementations must be pure
// and reentrant: the sweep runner evaluates grid points concurrently.
type Engine interface {
	Evaluate(record *domain.FilingInputRecord) (map[string]decimal.Decimal, error)
}

// ErrInvalidInput is the sentinel wrapped by every engine rejection of a
// malformed or unsupported filing record.
var ErrInvalidInput = errors.New("invalid filing input")

// InputError reports why an engine rejected a record. It unwraps to
// ErrInvalidInput. Callers do not retry: the same record cannot succeed.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid filing input: %s", e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// invalidf builds an InputError with a formatted reason.
func invalidf(format string, args ...any) error {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}
