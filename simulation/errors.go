package simulation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter flags an out-of-range pool share, attack rate,
	// search bound or round count. It is always surfaced before any round
	// executes.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrSolverDidNotConverge flags a best-response search that exhausted
	// its iteration budget before reaching its tolerance.
	ErrSolverDidNotConverge = errors.New("solver did not converge")
)

func invalidParamf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
