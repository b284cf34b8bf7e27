package calculation

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// SweepRunner vectorizes the finite-difference engine over an income grid.
// Each grid point is an independent pure computation, so points run on a
// bounded worker pool; results land in a position-indexed slice, preserving
// grid order regardless of completion order.
type SweepRunner struct {
	Engine *FiniteDifferenceEngine
	// MaxConcurrent bounds in-flight evaluations; values below 1 run the
	// sweep sequentially.
	MaxConcurrent int
	Logger        Logger
}

// NewSweepRunner creates a runner with the default concurrency bound.
func NewSweepRunner(engine *FiniteDifferenceEngine) *SweepRunner {
	return &SweepRunner{Engine: engine, MaxConcurrent: 10, Logger: NopLogger{}}
}

// Sweep computes one rate per grid point, with the grid point substituted as
// total wages and every other knob taken from fixed. The output has the same
// length and order as grid. On any evaluation failure the whole sweep fails
// with the error from the lowest-indexed failing point.
func (sr *SweepRunner) Sweep(kind domain.RateKind, grid []decimal.Decimal, fixed domain.IncomeProfile) ([]decimal.Decimal, error) {
	rates := make([]decimal.Decimal, len(grid))
	errs := make([]error, len(grid))

	if sr.MaxConcurrent < 1 {
		for i, income := range grid {
			profile := fixed
			profile.TotalWages = income
			rates[i], errs[i] = sr.Engine.Rate(kind, profile)
		}
	} else {
		var wg sync.WaitGroup
		semaphore := make(chan struct{}, sr.MaxConcurrent)
		for i, income := range grid {
			wg.Add(1)
			go func(i int, income decimal.Decimal) {
				defer wg.Done()
				semaphore <- struct{}{}
				defer func() { <-semaphore }()

				profile := fixed
				profile.TotalWages = income
				rates[i], errs[i] = sr.Engine.Rate(kind, profile)
			}(i, income)
		}
		wg.Wait()
	}

	for i, err := range errs {
		if err != nil {
			sr.logger().Errorf("sweep %s failed at income %s: %v", kind, grid[i], err)
			return nil, err
		}
	}
	return rates, nil
}

func (sr *SweepRunner) logger() Logger {
	if sr.Logger == nil {
		return NopLogger{}
	}
	return sr.Logger
}
