// Package pool implements spawnpool's typed object pool: a set of per-type
// FIFO queues of inactive instances that are handed out on acquisition and
// taken back on release, so short-lived entities are recycled instead of
// rebuilt.
//
// # Architecture
//
// A Pool[K, E] owns three pieces of state, all guarded by one mutex:
//
//   - a map from type key K to a FIFO queue of inactive entries of that type
//   - the ordered list of known keys, in order of first registration
//   - one template per key, used for the initial fill and for every fallback
//     construction
//
// The pool never inspects entries itself. Everything it needs from the host
// runtime goes through the Host interface: Construct builds a new instance
// from a template, SetActive toggles the activation flag, and TypeOf yields
// the key an entry belongs to.
//
// # Exhaustion
//
// Acquire only dequeues while a queue holds more than one entry. When one or
// zero entries remain, a new instance is constructed from the key's template
// and the remaining spare stays queued. Acquisition of a registered key
// therefore never fails; the pool grows instead. Pools never shrink.
//
// # Selection
//
// Besides acquisition by key the pool supports:
//
//   - AcquireRandom: a uniformly random registered key
//   - AcquireFirst: the first key, in registration order, whose
//     representative satisfies a predicate
//   - AcquireBatch: many instances across all matching keys, either drawn
//     randomly with replacement or spread evenly with one random extra for
//     the remainder
//
// A key's representative is the head of its queue, or its template when the
// queue is empty. Each key is assumed to hold a homogeneous class of entries.
//
// # Diagnostics
//
// Anomalies (duplicate registration, unknown key, empty pool, no match,
// partial batch, release of an unregistered type) are returned as
// *errors.Error values where the operation can fail, logged through zap, and
// counted by the optional Observer. None of them leaves the pool in an
// inconsistent state.
//
// Example:
//
//	p := pool.New[entity.Kind, *entity.Enemy](entity.NewFactory(),
//	    pool.WithName("enemies"),
//	    pool.WithSeed(42),
//	)
//	_ = p.Fill(
//	    pool.Binding[entity.Kind, *entity.Enemy]{Key: entity.Mage, Template: mage, Count: 10},
//	)
//	enemy, err := p.Acquire(entity.Mage)
//	if err != nil {
//	    return err
//	}
//	defer p.Release(enemy)
package pool
