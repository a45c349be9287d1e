package pool

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Host is the runtime collaborator that creates and toggles pooled entries.
//
// Construct must return a new, independent instance built from template,
// owned by parent, placed at the default transform and inactive. It is called
// an unbounded number of times for the same template. SetActive must be
// idempotent. TypeOf must be stable for the lifetime of an entry.
type Host[K comparable, E any] interface {
	Construct(template E, parent any) E
	SetActive(entry E, active bool)
	TypeOf(entry E) K
}

// Binding registers one type key with the template its instances are built
// from and the number of instances to pre-construct.
type Binding[K comparable, E any] struct {
	Key      K
	Template E
	Count    int
}

// Predicate selects entries by their observable attributes. It must not
// mutate the entry or call back into the pool.
type Predicate[E any] func(E) bool

// Observer receives pool events, typically to export them as metrics.
// Type labels are the fmt representation of the key.
type Observer interface {
	Acquired(typ string, constructed bool)
	Released(typ string)
	Anomaly(kind string)
	Depth(typ string, n int)
}

type noopObserver struct{}

func (noopObserver) Acquired(string, bool) {}
func (noopObserver) Released(string)       {}
func (noopObserver) Anomaly(string)        {}
func (noopObserver) Depth(string, int)     {}

// Option configures a Pool
type Option func(*options)

type options struct {
	name     string
	parent   any
	rng      *rand.Rand
	logger   *zap.Logger
	observer Observer
}

// WithName sets the pool name used in logs and metrics
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithParent sets the ownership context passed to Host.Construct
func WithParent(parent any) Option {
	return func(o *options) { o.parent = parent }
}

// WithRand sets the random source used by random and batch selection
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds a deterministic PCG random source
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithLogger sets the logger anomalies are reported to
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver attaches an event observer such as a metrics collector
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}
