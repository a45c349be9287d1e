// Package simulation drives an enemy pool through repeated spawn waves.
//
// Each round draws a random enemy, the first enemy stronger than the health
// threshold, a warrior, and a batch of melee enemies. The enemies are placed
// on a line and released back into the pool at the end of the round. Pool
// errors are counted by type and do not stop the run.
package simulation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/pkg/config"
	"github.com/ajitpratap0/spawnpool/pkg/entity"
	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/logger"
	"github.com/ajitpratap0/spawnpool/pkg/observability"
	"github.com/ajitpratap0/spawnpool/pkg/pool"
	"github.com/ajitpratap0/spawnpool/pkg/report"
)

// EnemyPool is the pool type the simulation runs against
type EnemyPool = pool.Pool[entity.Kind, *entity.Enemy]

// Round is the outcome of one spawn wave
type Round struct {
	Index    int
	Acquired int
	Released int
	Failures int
	Duration time.Duration
}

// Result is the outcome of a run
type Result struct {
	RunID    string
	Rounds   []Round
	Failures map[errors.ErrorType]int
	Duration time.Duration
}

// Acquired returns the number of enemies drawn over all rounds
func (r *Result) Acquired() int {
	n := 0
	for _, round := range r.Rounds {
		n += round.Acquired
	}
	return n
}

// Released returns the number of enemies returned over all rounds
func (r *Result) Released() int {
	n := 0
	for _, round := range r.Rounds {
		n += round.Released
	}
	return n
}

// Summary converts the result for a report
func (r *Result) Summary() *report.Simulation {
	failures := make(map[string]int, len(r.Failures))
	for typ, n := range r.Failures {
		failures[string(typ)] = n
	}
	return &report.Simulation{
		Rounds:   len(r.Rounds),
		Acquired: r.Acquired(),
		Released: r.Released(),
		Failures: failures,
		Duration: r.Duration,
	}
}

// Runner runs the simulation
type Runner struct {
	pool   *EnemyPool
	cfg    config.SimulationConfig
	tracer trace.Tracer
	logger *zap.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithTracer sets the tracer used for round spans
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithLogger sets the runner's logger. The default is the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a runner over p
func New(p *EnemyPool, cfg config.SimulationConfig, opts ...Option) *Runner {
	r := &Runner{
		pool:   p,
		cfg:    cfg,
		tracer: observability.Tracer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cfg.Rounds rounds. A cancelled context stops the run between
// rounds; the rounds completed so far are returned with the error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:    uuid.NewString(),
		Rounds:   make([]Round, 0, r.cfg.Rounds),
		Failures: make(map[errors.ErrorType]int),
	}
	ctx = context.WithValue(ctx, logger.RunIDKey, res.RunID)
	ctx = context.WithValue(ctx, logger.PoolKey, r.pool.Name())
	log := logger.WithContext(ctx).Named("simulation")
	if r.logger != nil {
		log = r.logger.With(zap.String("run_id", res.RunID), zap.String("pool", r.pool.Name()))
	}

	ctx, span := observability.StartSpan(ctx, r.tracer, "simulation.run")
	span.SetAttribute("run_id", res.RunID)
	span.SetAttribute("rounds", r.cfg.Rounds)

	start := time.Now()
	var runErr error
	for i := 0; i < r.cfg.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			runErr = errors.Wrap(err, errors.ErrorTypeInternal, "simulation cancelled").
				WithDetail("completed_rounds", i)
			break
		}
		res.Rounds = append(res.Rounds, r.round(ctx, i, res.Failures, log))
	}
	res.Duration = time.Since(start)

	span.SetAttribute("acquired", res.Acquired())
	if runErr != nil {
		span.Fail(runErr)
	}
	span.End()

	log.Info("Simulation finished",
		zap.Int("rounds", len(res.Rounds)),
		zap.Int("acquired", res.Acquired()),
		zap.Any("failures", res.Failures),
		zap.Duration("duration", res.Duration))
	return res, runErr
}

func (r *Runner) round(ctx context.Context, index int, failures map[errors.ErrorType]int, log *zap.Logger) Round {
	_, span := observability.StartSpan(ctx, r.tracer, "simulation.round")
	span.SetAttribute("round", index)

	out := Round{Index: index}
	spawned := make([]*entity.Enemy, 0, r.cfg.BatchSize+3)
	fail := func(step string, err error) {
		out.Failures++
		failures[errors.TypeOf(err)]++
		span.RecordError(err)
		log.Debug("Spawn step failed", zap.Int("round", index), zap.String("step", step), zap.Error(err))
	}

	if e, err := r.pool.AcquireRandom(); err != nil {
		fail("random", err)
	} else {
		spawned = append(spawned, e)
	}

	if e, err := r.pool.AcquireFirst(entity.HealthAbove(r.cfg.HealthThreshold)); err != nil {
		fail("strong", err)
	} else {
		spawned = append(spawned, e)
	}

	if e, err := r.pool.Acquire(entity.Warrior); err != nil {
		fail("warrior", err)
	} else {
		spawned = append(spawned, e)
	}

	// A partial batch still carries usable enemies.
	melee, err := r.pool.AcquireBatch(entity.Attacks(entity.Melee), r.cfg.BatchSize, r.cfg.Randomize)
	if err != nil {
		fail("melee", err)
	}
	spawned = append(spawned, melee...)

	for i, e := range spawned {
		e.Place(entity.Vec2{X: float64(i) * r.cfg.Spacing})
	}
	out.Acquired = len(spawned)
	span.AddEvent("placed", attribute.Int("count", out.Acquired))

	for _, e := range spawned {
		r.pool.Release(e)
	}
	out.Released = len(spawned)

	span.SetAttribute("acquired", out.Acquired)
	span.SetAttribute("failures", out.Failures)
	out.Duration = span.End()
	return out
}
