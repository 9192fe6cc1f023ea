package analysis

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertrainer/internal/randutil"
	"github.com/lox/pokertrainer/poker"
)

const (
	defaultBatchSize  = 1000
	maxDefaultWorkers = 8
)

// Calculator runs Monte Carlo equity simulations across a pool of workers.
// Each worker owns its own deck and a generator split from the caller's, so a
// fixed seed and worker count always produce the same result.
type Calculator struct {
	workers   int
	batchSize int
	logger    *log.Logger
	clock     quartz.Clock
}

// Option configures a Calculator
type Option func(*Calculator)

// WithWorkers sets the number of parallel workers. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBatchSize sets how many trials a worker runs between cancellation checks.
func WithBatchSize(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *log.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger.WithPrefix("equity")
		}
	}
}

// WithClock sets the clock used for time budgets and elapsed-time reporting
func WithClock(clock quartz.Clock) Option {
	return func(c *Calculator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewCalculator creates a Calculator. By default it uses one worker per CPU
// (capped at 8), a discarding logger and the real clock.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		workers:   min(runtime.NumCPU(), maxDefaultWorkers),
		batchSize: defaultBatchSize,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		clock:     quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workers returns the number of parallel workers
func (c *Calculator) Workers() int {
	return c.workers
}

// Simulate runs simulations trials split evenly across the workers.
// Cancellation is checked between batches; a cancelled run returns the
// context error.
func (c *Calculator) Simulate(ctx context.Context, hole, community []poker.Card, numOpponents, simulations int, rng *rand.Rand) (EquityResult, error) {
	if err := validateEquity(hole, community, numOpponents); err != nil {
		return EquityResult{}, err
	}
	if simulations <= 0 {
		return EquityResult{}, fmt.Errorf("simulations must be positive, got %d: %w", simulations, ErrInvalidInput)
	}

	start := c.clock.Now()
	result, err := c.simulate(ctx, hole, community, numOpponents, simulations, ensureRand(rng))
	if err != nil {
		return EquityResult{}, err
	}

	c.logger.Debug("simulation complete",
		"simulations", result.Simulations,
		"workers", c.workers,
		"equity", result.Equity(),
		"elapsed", c.clock.Since(start))
	return result, nil
}

// SimulateFor keeps running rounds of trials until budget has elapsed on the
// calculator's clock or maxSimulations trials have been played, whichever
// comes first. At least one round always runs. If ctx is cancelled the trials
// finished so far are returned together with the context error.
func (c *Calculator) SimulateFor(ctx context.Context, hole, community []poker.Card, numOpponents int, budget time.Duration, maxSimulations int, rng *rand.Rand) (EquityResult, error) {
	if err := validateEquity(hole, community, numOpponents); err != nil {
		return EquityResult{}, err
	}
	if maxSimulations <= 0 {
		return EquityResult{}, fmt.Errorf("max simulations must be positive, got %d: %w", maxSimulations, ErrInvalidInput)
	}
	if budget < 0 {
		return EquityResult{}, fmt.Errorf("negative budget %s: %w", budget, ErrInvalidInput)
	}

	rng = ensureRand(rng)
	round := c.batchSize * c.workers
	start := c.clock.Now()

	var total EquityResult
	rounds := 0
	for total.Simulations < maxSimulations {
		n := min(round, maxSimulations-total.Simulations)
		result, err := c.simulate(ctx, hole, community, numOpponents, n, rng)
		if err != nil {
			return total, err
		}
		total.merge(result)
		rounds++

		if c.clock.Since(start) >= budget {
			break
		}
	}

	c.logger.Debug("budgeted simulation complete",
		"simulations", total.Simulations,
		"rounds", rounds,
		"budget", budget,
		"elapsed", c.clock.Since(start))
	return total, nil
}

// simulate fans n trials out over the workers and merges their tallies.
func (c *Calculator) simulate(ctx context.Context, hole, community []poker.Card, numOpponents, n int, rng *rand.Rand) (EquityResult, error) {
	workers := min(c.workers, n)
	perWorker, remainder := n/workers, n%workers

	// Generators are split before any goroutine starts so the parent is
	// consumed in a fixed order.
	rngs := make([]*rand.Rand, workers)
	for w := range rngs {
		rngs[w] = randutil.Split(rng)
	}

	results := make([]EquityResult, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		trials := perWorker
		if w < remainder {
			trials++
		}

		g.Go(func() error {
			s := newSimulator(hole, community, numOpponents, rngs[w])
			for done := 0; done < trials; {
				if err := ctx.Err(); err != nil {
					return err
				}
				batch := min(c.batchSize, trials-done)
				results[w].merge(s.run(batch))
				done += batch
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return EquityResult{}, fmt.Errorf("equity simulation: %w", err)
	}

	var total EquityResult
	for _, r := range results {
		total.merge(r)
	}
	return total, nil
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
