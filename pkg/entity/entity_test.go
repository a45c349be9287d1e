package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/spawnpool/pkg/errors"
	"github.com/ajitpratap0/spawnpool/pkg/pool"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(" " + k.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("dragon")
	assert.Error(t, err)
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestKindYAML(t *testing.T) {
	var doc struct {
		Kind   Kind       `yaml:"kind"`
		Attack AttackType `yaml:"attack"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("kind: Warrior\nattack: distance\n"), &doc))
	assert.Equal(t, Warrior, doc.Kind)
	assert.Equal(t, Distance, doc.Attack)

	assert.Error(t, yaml.Unmarshal([]byte("kind: ogre\n"), &doc))

	_, err := Kind(0).MarshalText()
	assert.Error(t, err)
}

func TestFactoryConstruct(t *testing.T) {
	f := NewFactory()
	tmpl := &Enemy{Kind: Spider, Health: 12, AttackType: Melee, Position: Vec2{X: 3, Y: 4}}

	a := f.Construct(tmpl, "arena")
	b := f.Construct(tmpl, nil)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, Vec2{}, a.Position)
	assert.Equal(t, 12, a.Health)
	assert.Equal(t, "arena", a.Parent)
	assert.Empty(t, b.Parent)
	assert.False(t, a.Active())
	assert.Equal(t, int64(2), f.Built())

	f.SetActive(a, true)
	f.SetActive(a, true)
	assert.True(t, a.Active())
	assert.Equal(t, Spider, f.TypeOf(a))
}

func TestNewPool(t *testing.T) {
	f := NewFactory()
	templates := []Template{
		{Kind: Mage, Health: 8, AttackType: Distance},
		{Kind: Warrior, Health: 20, AttackType: Melee, Count: 4},
		{Kind: Spider, Health: 12, AttackType: Melee},
	}

	p, err := NewPool(f, templates, 10, pool.WithLogger(zaptest.NewLogger(t)), pool.WithParent("arena"))

	require.NoError(t, err)
	assert.Equal(t, []Kind{Mage, Warrior, Spider}, p.Keys())
	assert.Equal(t, 10, p.Len(Mage))
	assert.Equal(t, 4, p.Len(Warrior))
	assert.Equal(t, int64(24), f.Built())

	e, err := p.AcquireFirst(HealthAbove(10))
	require.NoError(t, err)
	assert.Equal(t, Warrior, e.Kind)
	assert.True(t, e.Active())
	assert.Equal(t, "arena", e.Parent)

	melee, err := p.AcquireBatch(Attacks(Melee), 10, false)
	require.NoError(t, err)
	assert.Len(t, melee, 10)
	for _, m := range melee {
		assert.Equal(t, Melee, m.AttackType)
	}
}

func TestNewPoolDuplicateKind(t *testing.T) {
	templates := []Template{
		{Kind: Mage, Health: 8},
		{Kind: Mage, Health: 80},
	}

	p, err := NewPool(NewFactory(), templates, 2, pool.WithLogger(zaptest.NewLogger(t)))

	assert.True(t, errors.IsType(err, errors.ErrorTypeDuplicate))
	require.NotNil(t, p)
	e, err := p.Acquire(Mage)
	require.NoError(t, err)
	assert.Equal(t, 8, e.Health)
}

func TestPredicates(t *testing.T) {
	e := &Enemy{Kind: Mage, Health: 11, AttackType: Distance}

	assert.True(t, HealthAbove(10)(e))
	assert.False(t, HealthAbove(11)(e))
	assert.True(t, OfKind(Mage)(e))
	assert.False(t, Attacks(Melee)(e))
	assert.Equal(t, "mage#0(hp=11, distance)", e.String())
}
