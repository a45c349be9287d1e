package entity

import (
	"fmt"
	"sync/atomic"

	"github.com/ajitpratap0/spawnpool/pkg/pool"
)

// Template describes one enemy kind and how many to pre-build
type Template struct {
	Kind       Kind
	Health     int
	AttackType AttackType
	// Count overrides the pool-wide initial amount when positive
	Count int
}

// Enemy returns the prototype instance for t
func (t Template) Enemy() *Enemy {
	return &Enemy{Kind: t.Kind, Health: t.Health, AttackType: t.AttackType}
}

// Factory builds enemies for a pool. IDs are unique per factory.
type Factory struct {
	nextID atomic.Uint64
	built  atomic.Int64
}

var _ pool.Host[Kind, *Enemy] = (*Factory)(nil)

// NewFactory creates a factory
func NewFactory() *Factory {
	return &Factory{}
}

// Construct clones template's stats into a new inactive enemy at the origin
func (f *Factory) Construct(template *Enemy, parent any) *Enemy {
	f.built.Add(1)
	e := &Enemy{
		ID:         f.nextID.Add(1),
		Kind:       template.Kind,
		Health:     template.Health,
		AttackType: template.AttackType,
	}
	if parent != nil {
		e.Parent = fmt.Sprint(parent)
	}
	return e
}

// SetActive toggles the enemy's active flag
func (f *Factory) SetActive(e *Enemy, active bool) {
	e.active = active
}

// TypeOf returns the enemy's kind
func (f *Factory) TypeOf(e *Enemy) Kind {
	return e.Kind
}

// Built returns the number of enemies constructed so far
func (f *Factory) Built() int64 {
	return f.built.Load()
}

// NewPool creates a pool of enemies filled from templates. Templates without
// a positive Count get initialAmount instances. A duplicate kind is reported
// in the returned error but does not prevent the pool from being used.
func NewPool(f *Factory, templates []Template, initialAmount int, opts ...pool.Option) (*pool.Pool[Kind, *Enemy], error) {
	p := pool.New[Kind, *Enemy](f, opts...)

	bindings := make([]pool.Binding[Kind, *Enemy], 0, len(templates))
	for _, t := range templates {
		count := t.Count
		if count <= 0 {
			count = initialAmount
		}
		bindings = append(bindings, pool.Binding[Kind, *Enemy]{
			Key:      t.Kind,
			Template: t.Enemy(),
			Count:    count,
		})
	}

	return p, p.Fill(bindings...)
}
