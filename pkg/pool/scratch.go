package pool

import (
	"sync"
	"sync/atomic"
)

// scratch is a typed wrapper over sync.Pool for short-lived working buffers,
// with a reset hook run on Put and allocation counters for tests.
type scratch[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
	}
}

func newScratch[T any](new func() T, reset func(T)) *scratch[T] {
	s := &scratch[T]{reset: reset}
	s.pool.New = func() interface{} {
		atomic.AddInt64(&s.stats.allocated, 1)
		return new()
	}
	return s
}

func (s *scratch[T]) Get() T {
	atomic.AddInt64(&s.stats.inUse, 1)
	return s.pool.Get().(T)
}

func (s *scratch[T]) Put(obj T) {
	if s.reset != nil {
		s.reset(obj)
	}
	atomic.AddInt64(&s.stats.inUse, -1)
	s.pool.Put(obj)
}

func (s *scratch[T]) Stats() (allocated, inUse int64) {
	return atomic.LoadInt64(&s.stats.allocated), atomic.LoadInt64(&s.stats.inUse)
}

// newKeyScratch pools the key slices built while evaluating predicates.
func newKeyScratch[K comparable]() *scratch[*[]K] {
	return newScratch(
		func() *[]K {
			s := make([]K, 0, 16)
			return &s
		},
		func(s *[]K) {
			var zero K
			for i := range *s {
				(*s)[i] = zero
			}
			*s = (*s)[:0]
		},
	)
}
