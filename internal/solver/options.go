package solver

import "github.com/sirupsen/logrus"

const (
	// DefaultWorkers runs the solve on a single worker.
	DefaultWorkers = 1

	// DefaultMaxRounds disables the round cap: the engine iterates until
	// every relative error is within tolerance.
	DefaultMaxRounds = 0
)

const (
	panicWorkersInvalid   = "solver: WithWorkers: workers must be >= 1"
	panicMaxRoundsInvalid = "solver: WithMaxRounds: rounds must be >= 0"
	panicLoggerNil        = "solver: WithLogger: logger must not be nil"
)

// Observer receives every completed round on rank 0. The slices in Round
// are copies and may be retained.
type Observer func(Round)

// Round describes one completed round.
type Round struct {
	// Index is the 1-based round number.
	Index int
	// X is the newly assembled iterate.
	X []float64
	// RelErr holds |x_new - x_old| / |x_new| per component.
	RelErr []float64
	// Converged is true on the round that ends the solve.
	Converged bool
	// Unstable is true when some RelErr entry is NaN or ±Inf.
	Unstable bool
}

// Option configures Solve and RunWorker.
type Option func(*Options)

// Options is the resolved configuration of a solve.
type Options struct {
	workers   int
	maxRounds int
	logger    logrus.FieldLogger
	observer  Observer
}

// WithWorkers sets the number of shared-memory workers used by Solve.
// RunWorker takes the worker count from its communicator instead.
// Panics if workers < 1.
func WithWorkers(workers int) Option {
	if workers < 1 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = workers }
}

// WithMaxRounds caps the number of rounds; 0 means no cap. A capped solve
// that runs out of rounds returns ErrRoundLimit. Panics if rounds < 0.
func WithMaxRounds(rounds int) Option {
	if rounds < 0 {
		panic(panicMaxRoundsInvalid)
	}
	return func(o *Options) { o.maxRounds = rounds }
}

// WithLogger sets the logger. Per-round detail is logged at debug level.
func WithLogger(logger logrus.FieldLogger) Option {
	if logger == nil {
		panic(panicLoggerNil)
	}
	return func(o *Options) { o.logger = logger }
}

// WithObserver registers fn to be called after every round on rank 0.
func WithObserver(fn Observer) Option {
	return func(o *Options) { o.observer = fn }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		workers:   DefaultWorkers,
		maxRounds: DefaultMaxRounds,
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
