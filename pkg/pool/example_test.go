package pool_test

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ajitpratap0/spawnpool/pkg/pool"
)

type shape struct {
	name   string
	sides  int
	active bool
}

type shapeHost struct{}

func (shapeHost) Construct(t *shape, _ any) *shape {
	c := *t
	c.active = false
	return &c
}

func (shapeHost) SetActive(s *shape, active bool) { s.active = active }

func (shapeHost) TypeOf(s *shape) string { return s.name }

func newShapePool() *pool.Pool[string, *shape] {
	p := pool.New[string, *shape](shapeHost{}, pool.WithSeed(1), pool.WithLogger(zap.NewNop()))
	_ = p.Fill(
		pool.Binding[string, *shape]{Key: "triangle", Template: &shape{name: "triangle", sides: 3}, Count: 3},
		pool.Binding[string, *shape]{Key: "square", Template: &shape{name: "square", sides: 4}, Count: 2},
	)
	return p
}

// Example demonstrates acquiring an instance by type and releasing it.
func Example() {
	p := newShapePool()

	s, err := p.Acquire("triangle")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(s.name, s.active, p.Len("triangle"))

	p.Release(s)
	fmt.Println(s.active, p.Len("triangle"))

	// Output:
	// triangle true 2
	// false 3
}

// ExamplePool_AcquireFirst shows predicate selection in registration order.
func ExamplePool_AcquireFirst() {
	p := newShapePool()

	s, _ := p.AcquireFirst(func(s *shape) bool { return s.sides%2 == 0 })
	fmt.Println(s.name)

	_, err := p.AcquireFirst(func(s *shape) bool { return s.sides > 10 })
	fmt.Println(err)

	// Output:
	// square
	// no_match: no registered type satisfies predicate
}

// ExamplePool_AcquireBatch shows the even spread across matching types.
func ExamplePool_AcquireBatch() {
	p := newShapePool()

	batch, _ := p.AcquireBatch(func(*shape) bool { return true }, 4, false)
	for _, s := range batch {
		fmt.Println(s.name)
	}

	// Output:
	// triangle
	// triangle
	// square
	// square
}
