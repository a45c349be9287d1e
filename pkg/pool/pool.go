package pool

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/logger"
)

// Pool recycles entries of type E through one FIFO queue per type key K.
//
// All public methods are safe for concurrent use; each holds the pool lock
// for its whole duration, batch acquisitions included.
type Pool[K comparable, E any] struct {
	mu sync.Mutex

	name     string
	host     Host[K, E]
	parent   any
	rng      *rand.Rand
	logger   *zap.Logger
	observer Observer

	queues    map[K]*queue.Queue
	templates map[K]E
	keys      []K

	keyScratch *scratch[*[]K]
	stats      Stats
}

// Stats counts pool activity since creation.
//
// Recycled and Constructed partition successful acquisitions: an acquisition
// is either served from a queue or built on exhaustion. Filled counts the
// instances built by Fill.
type Stats struct {
	Filled      int64 `json:"filled" yaml:"filled"`
	Recycled    int64 `json:"recycled" yaml:"recycled"`
	Constructed int64 `json:"constructed" yaml:"constructed"`
	Released    int64 `json:"released" yaml:"released"`
	Healed      int64 `json:"healed" yaml:"healed"`
	Misses      int64 `json:"misses" yaml:"misses"`
}

// Acquisitions returns the number of successful acquisitions
func (s Stats) Acquisitions() int64 {
	return s.Recycled + s.Constructed
}

// New creates an empty pool backed by host. Register types with Fill.
func New[K comparable, E any](host Host[K, E], opts ...Option) *Pool[K, E] {
	o := options{name: "default"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.logger == nil {
		o.logger = logger.Get().Named("pool")
	}
	if o.observer == nil {
		o.observer = noopObserver{}
	}

	return &Pool[K, E]{
		name:       o.name,
		host:       host,
		parent:     o.parent,
		rng:        o.rng,
		logger:     o.logger.With(zap.String("pool", o.name)),
		observer:   o.observer,
		queues:     make(map[K]*queue.Queue),
		templates:  make(map[K]E),
		keyScratch: newKeyScratch[K](),
	}
}

// Name returns the pool name
func (p *Pool[K, E]) Name() string {
	return p.name
}

// Fill registers each binding's key and pre-constructs Count inactive
// instances from its template. Keys that are already registered are skipped
// and keep their queue; they are reported together in an
// ErrorTypeDuplicate error after every other binding has been processed.
func (p *Pool[K, E]) Fill(bindings ...Binding[K, E]) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var duplicates []string
	for _, b := range bindings {
		label := p.label(b.Key)
		if _, ok := p.queues[b.Key]; ok {
			duplicates = append(duplicates, label)
			p.observer.Anomaly(string(errors.ErrorTypeDuplicate))
			p.logger.Warn("type already registered, skipping", zap.String("type", label))
			continue
		}

		q := queue.New()
		for i := 0; i < b.Count; i++ {
			obj := p.host.Construct(b.Template, p.parent)
			p.host.SetActive(obj, false)
			q.Add(obj)
		}
		p.queues[b.Key] = q
		p.templates[b.Key] = b.Template
		p.keys = append(p.keys, b.Key)
		p.stats.Filled += int64(q.Length())
		p.observer.Depth(label, q.Length())

		p.logger.Debug("registered type", zap.String("type", label), zap.Int("count", q.Length()))
	}

	if len(duplicates) > 0 {
		return errors.Newf(errors.ErrorTypeDuplicate, "%d type(s) already registered", len(duplicates)).
			WithDetail("types", duplicates)
	}
	return nil
}

// Acquire returns an active instance of key. It dequeues while the queue
// holds more than one entry and otherwise constructs a new instance from the
// key's template, leaving the last spare queued. It fails with
// ErrorTypeNotFound only when key was never registered.
func (p *Pool[K, E]) Acquire(key K) (E, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquire(key)
}

// AcquireLike acquires an instance of the same type as entry
func (p *Pool[K, E]) AcquireLike(entry E) (E, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquire(p.host.TypeOf(entry))
}

// AcquireRandom acquires an instance of a uniformly random registered type.
// It fails with ErrorTypeEmptyPool when nothing is registered.
func (p *Pool[K, E]) AcquireRandom() (E, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.keys) == 0 {
		var zero E
		p.observer.Anomaly(string(errors.ErrorTypeEmptyPool))
		p.logger.Warn("random acquisition from empty pool")
		return zero, errors.New(errors.ErrorTypeEmptyPool, "no types registered")
	}
	return p.acquire(p.keys[p.rng.IntN(len(p.keys))])
}

// Release deactivates entry and enqueues it at the tail of its type's queue.
// An entry whose type was never registered gets a new queue, a template
// cloned from it and a place at the end of the key list; this is logged but
// never fails.
func (p *Pool[K, E]) Release(entry E) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := p.host.TypeOf(entry)
	label := p.label(key)
	p.host.SetActive(entry, false)

	q, ok := p.queues[key]
	if !ok {
		q = queue.New()
		p.queues[key] = q

		template := p.host.Construct(entry, p.parent)
		p.host.SetActive(template, false)
		p.templates[key] = template
		p.keys = append(p.keys, key)

		p.stats.Healed++
		p.observer.Anomaly(string(errors.ErrorTypeUnknownType))
		p.logger.Warn("released entry of unregistered type, adding new queue", zap.String("type", label))
	}

	q.Add(entry)
	p.stats.Released++
	p.observer.Released(label)
	p.observer.Depth(label, q.Length())
}

// Keys returns the registered keys in registration order
func (p *Pool[K, E]) Keys() []K {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]K, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of queued entries for key, or -1 if key is unknown
func (p *Pool[K, E]) Len(key K) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	q, ok := p.queues[key]
	if !ok {
		return -1
	}
	return q.Length()
}

// Depths returns the queue length of every registered key
func (p *Pool[K, E]) Depths() map[K]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[K]int, len(p.queues))
	for k, q := range p.queues {
		out[k] = q.Length()
	}
	return out
}

// Stats returns a snapshot of the pool counters
func (p *Pool[K, E]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Pool[K, E]) acquire(key K) (E, error) {
	var zero E
	label := p.label(key)

	q, ok := p.queues[key]
	if !ok {
		p.stats.Misses++
		p.observer.Anomaly(string(errors.ErrorTypeNotFound))
		p.logger.Warn("asked for unregistered type", zap.String("type", label))
		return zero, errors.New(errors.ErrorTypeNotFound, "type is not registered").
			WithDetail("type", label)
	}

	var obj E
	constructed := q.Length() <= 1
	if constructed {
		p.logger.Debug("queue almost empty, constructing new instance",
			zap.String("type", label), zap.Int("queued", q.Length()))
		obj = p.host.Construct(p.templates[key], p.parent)
		p.stats.Constructed++
	} else {
		obj = q.Remove().(E)
		p.stats.Recycled++
	}

	p.host.SetActive(obj, true)
	p.observer.Acquired(label, constructed)
	p.observer.Depth(label, q.Length())
	return obj, nil
}

// representative is what predicates are evaluated against: the queue head,
// or the template when the queue is empty.
func (p *Pool[K, E]) representative(key K) E {
	if q := p.queues[key]; q != nil && q.Length() > 0 {
		return q.Peek().(E)
	}
	return p.templates[key]
}

func (p *Pool[K, E]) label(key K) string {
	return fmt.Sprint(key)
}
