package pool

import (
	"math"

	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

// maxPrealloc caps the capacity reserved up front for a batch result.
const maxPrealloc = 4096

// AcquireFirst acquires from the first registered key, in registration
// order, whose representative satisfies pred. It fails with ErrorTypeNoMatch,
// leaving every queue untouched, when no key matches.
func (p *Pool[K, E]) AcquireFirst(pred Predicate[E]) (E, error) {
	var zero E
	if pred == nil {
		return zero, errors.New(errors.ErrorTypeValidation, "predicate is nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, key := range p.keys {
		if pred(p.representative(key)) {
			return p.acquire(key)
		}
	}

	p.observer.Anomaly(string(errors.ErrorTypeNoMatch))
	p.logger.Warn("no registered type satisfies predicate")
	return zero, errors.New(errors.ErrorTypeNoMatch, "no registered type satisfies predicate")
}

// AcquireBatch acquires up to |amount| instances spread over every key whose
// representative satisfies pred. The matching set is computed once.
//
// With randomize, each of the |amount| instances comes from an independent
// uniform pick among the matching keys. Otherwise every matching key
// contributes |amount|/n instances in registration order, plus one instance
// from a random matching key when the division leaves a remainder, so fewer
// than |amount| instances are returned whenever n does not divide it.
//
// It fails with ErrorTypeNoMatch when no key matches. Individual
// acquisition failures are logged and skipped; the short result is then
// returned together with an ErrorTypePartialBatch error.
func (p *Pool[K, E]) AcquireBatch(pred Predicate[E], amount int, randomize bool) ([]E, error) {
	if pred == nil {
		return nil, errors.New(errors.ErrorTypeValidation, "predicate is nil")
	}
	if amount < 0 {
		if amount == math.MinInt {
			amount = math.MaxInt
		} else {
			amount = -amount
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	matches := p.keyScratch.Get()
	defer p.keyScratch.Put(matches)
	for _, key := range p.keys {
		if pred(p.representative(key)) {
			*matches = append(*matches, key)
		}
	}

	n := len(*matches)
	if n == 0 {
		p.observer.Anomaly(string(errors.ErrorTypeNoMatch))
		p.logger.Warn("no registered type satisfies batch predicate", zap.Int("amount", amount))
		return nil, errors.New(errors.ErrorTypeNoMatch, "no registered type satisfies predicate").
			WithDetail("amount", amount)
	}

	var (
		out    []E
		failed int
	)
	take := func(key K) {
		obj, err := p.acquire(key)
		if err != nil {
			failed++
			p.logger.Warn("batch acquisition failed", zap.String("type", p.label(key)), zap.Error(err))
			return
		}
		out = append(out, obj)
	}

	if randomize {
		out = make([]E, 0, min(amount, maxPrealloc))
		for i := 0; i < amount; i++ {
			take((*matches)[p.rng.IntN(n)])
		}
	} else {
		perType, remainder := amount/n, amount%n
		size := perType * n
		if remainder != 0 {
			size++
		}
		out = make([]E, 0, min(size, maxPrealloc))
		for _, key := range *matches {
			for i := 0; i < perType; i++ {
				take(key)
			}
		}
		if remainder != 0 {
			take((*matches)[p.rng.IntN(n)])
		}
	}

	if failed > 0 {
		p.observer.Anomaly(string(errors.ErrorTypePartialBatch))
		return out, errors.Newf(errors.ErrorTypePartialBatch, "%d of %d acquisitions failed", failed, failed+len(out)).
			WithDetail("requested", amount).
			WithDetail("acquired", len(out))
	}
	return out, nil
}
