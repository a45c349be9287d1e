// Package entity defines the enemy entities spawnpool recycles and the
// Factory that builds them for a pool.
package entity

import (
	"fmt"
	"strings"
)

// Kind is the explicit type key enemies are pooled under
type Kind uint8

const (
	// Mage is a ranged caster
	Mage Kind = iota + 1
	// Warrior is a melee fighter
	Warrior
	// Spider is a fast melee creature
	Spider
)

var kindNames = map[Kind]string{
	Mage:    "mage",
	Warrior: "warrior",
	Spider:  "spider",
}

// Kinds returns every known kind in declaration order
func Kinds() []Kind {
	return []Kind{Mage, Warrior, Spider}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind parses a kind name, case-insensitively
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown enemy kind %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown enemy kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// AttackType is how an enemy engages
type AttackType uint8

const (
	// Melee enemies attack at close range
	Melee AttackType = iota
	// Distance enemies attack from afar
	Distance
)

func (a AttackType) String() string {
	switch a {
	case Melee:
		return "melee"
	case Distance:
		return "distance"
	default:
		return fmt.Sprintf("attack(%d)", uint8(a))
	}
}

// ParseAttackType parses an attack type name, case-insensitively
func ParseAttackType(s string) (AttackType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "melee":
		return Melee, nil
	case "distance":
		return Distance, nil
	default:
		return 0, fmt.Errorf("unknown attack type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (a AttackType) MarshalText() ([]byte, error) {
	if a != Melee && a != Distance {
		return nil, fmt.Errorf("unknown attack type %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *AttackType) UnmarshalText(text []byte) error {
	parsed, err := ParseAttackType(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Vec2 is a position in the play field
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Enemy is a pooled enemy instance
type Enemy struct {
	ID         uint64
	Kind       Kind
	Health     int
	AttackType AttackType
	Position   Vec2
	Parent     string

	active bool
}

// Active reports whether the enemy is checked out of its pool
func (e *Enemy) Active() bool {
	return e.active
}

// Place moves the enemy
func (e *Enemy) Place(pos Vec2) {
	e.Position = pos
}

// String formats the enemy for logs
func (e *Enemy) String() string {
	return fmt.Sprintf("%s#%d(hp=%d, %s)", e.Kind, e.ID, e.Health, e.AttackType)
}

// HealthAbove matches enemies with more than hp health
func HealthAbove(hp int) func(*Enemy) bool {
	return func(e *Enemy) bool { return e.Health > hp }
}

// OfKind matches enemies of kind k
func OfKind(k Kind) func(*Enemy) bool {
	return func(e *Enemy) bool { return e.Kind == k }
}

// Attacks matches enemies with attack type a
func Attacks(a AttackType) func(*Enemy) bool {
	return func(e *Enemy) bool { return e.AttackType == a }
}
