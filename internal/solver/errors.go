package solver

import "errors"

var (
	// ErrRoundLimit is returned when a round cap was configured with
	// WithMaxRounds and the iterate did not converge within it. The partial
	// Result is returned alongside.
	ErrRoundLimit = errors.New("solver: round limit reached")

	// ErrNumericInstability marks a run in which a relative error was NaN or
	// ±Inf, which happens when an iterate component is (near) zero. It is
	// joined into the round-limit error of such runs; without a cap those
	// runs never terminate.
	ErrNumericInstability = errors.New("solver: relative error is NaN or Inf")
)
