package simulation

import (
	"fmt"
	"math"
)

const (
	defaultTolerance     = 1e-7
	defaultMaxIterations = 128
)

// Maximizer is a bounded scalar maximization capability. Implementations must
// be deterministic for identical inputs and must terminate within their own
// iteration budget.
type Maximizer interface {
	Maximize(f func(float64) float64, lo, hi float64) (float64, error)
}

// GoldenSection maximizes a unimodal function by golden-section interval
// shrinking. The search is derivative-free and deterministic.
type GoldenSection struct {
	Tol     float64 // interval width at which the search stops
	MaxIter int     // hard budget; exceeding it reports non-convergence
}

func NewGoldenSection() GoldenSection {
	return GoldenSection{Tol: defaultTolerance, MaxIter: defaultMaxIterations}
}

var invphi = (math.Sqrt(5) - 1) / 2

func (gs GoldenSection) Maximize(f func(float64) float64, lo, hi float64) (float64, error) {
	if hi < lo {
		return 0, invalidParamf("search interval [%v, %v] is empty", lo, hi)
	}
	tol := gs.Tol
	if tol <= 0 {
		tol = defaultTolerance
	}
	maxIter := gs.MaxIter
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	a, b := lo, hi
	c := b - (b-a)*invphi
	d := a + (b-a)*invphi
	fc, fd := f(c), f(d)
	for i := 0; i < maxIter; i++ {
		if b-a <= tol {
			return (a + b) / 2, nil
		}
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - (b-a)*invphi
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + (b-a)*invphi
			fd = f(d)
		}
	}
	return 0, fmt.Errorf("%w: interval still %v wide after %d iterations", ErrSolverDidNotConverge, b-a, maxIter)
}
