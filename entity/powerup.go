package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/asteroidminer/common"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render"
)

var ErrNoPowerUps = errors.New("entity: no power-ups to choose from")

// PowerUp is a pickup floating where an asteroid broke.
type PowerUp interface {
	Object
	Name() string
	// DropFrequency is the relative weight of this variant in a Catalog.
	DropFrequency() float64
	OnPickUp(p *Player) error
}

type powerUp struct {
	Base
	name      string
	sprite    string
	frequency float64
}

func newPowerUp(world physics.World, spec prefabs.PowerUpSpec, sprite prefabs.SpriteSpec, at, velocity physics.Vec) (powerUp, error) {
	base, err := newBase(world, physics.BodyDef{
		Type:           physics.KinematicBody,
		Position:       at,
		LinearVelocity: velocity,
		FixedRotation:  true,
	}, physics.FixtureDef{
		Shape:  physics.Box(common.ToPhysics(sprite.Width)/2, common.ToPhysics(sprite.Height)/2),
		Sensor: true,
	})
	if err != nil {
		return powerUp{}, err
	}
	return powerUp{Base: base, name: spec.Name, sprite: spec.Sprite, frequency: spec.DropFrequency}, nil
}

func (p *powerUp) Type() Type { return TypePowerUp }

func (p *powerUp) Name() string { return p.name }

func (p *powerUp) DropFrequency() float64 { return p.frequency }

func (p *powerUp) Render(b render.Batch) {
	b.DrawSprite(p.sprite, p.spriteOp())
}

// ShieldPowerUp recharges the ship shield.
type ShieldPowerUp struct {
	powerUp
	amount int
}

func NewShieldPowerUp(world physics.World, t *prefabs.Tuning, spec prefabs.PowerUpSpec, at, velocity physics.Vec) (*ShieldPowerUp, error) {
	p, err := newPowerUp(world, spec, t.Sprite(spec.Sprite), at, velocity)
	if err != nil {
		return nil, err
	}
	return &ShieldPowerUp{powerUp: p, amount: spec.Amount}, nil
}

func (s *ShieldPowerUp) OnPickUp(p *Player) error {
	if p == nil || p.SpaceShip() == nil {
		return nil
	}
	p.SpaceShip().SetShield(s.amount)
	return nil
}

// Variant is one entry of a Catalog.
type Variant struct {
	Name          string
	DropFrequency float64
	Build         func(world physics.World, at, velocity physics.Vec) (PowerUp, error)
}

// Catalog picks power-up variants by weight, in registration order.
type Catalog struct {
	variants []Variant
}

func NewCatalog(variants ...Variant) *Catalog {
	c := &Catalog{}
	for _, v := range variants {
		c.Register(v)
	}
	return c
}

func (c *Catalog) Register(v Variant) {
	c.variants = append(c.variants, v)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.variants)
}

// Select draws u in [0, total weight) and returns the first variant whose
// cumulative weight exceeds it. Rounding never leaves the draw unmatched: the
// last positive-weight variant catches it.
func (c *Catalog) Select(r Rand) (Variant, error) {
	if c == nil || r == nil {
		return Variant{}, ErrNoPowerUps
	}
	total := 0.0
	for _, v := range c.variants {
		if v.DropFrequency > 0 {
			total += v.DropFrequency
		}
	}
	if total <= 0 {
		return Variant{}, ErrNoPowerUps
	}

	u := r.Float64() * total
	acc := 0.0
	var last Variant
	for _, v := range c.variants {
		if v.DropFrequency <= 0 {
			continue
		}
		acc += v.DropFrequency
		last = v
		if u < acc {
			return v, nil
		}
	}
	return last, nil
}

// NewCatalogFromTuning builds one variant per tuned power-up. Scripts are
// compiled up front so a broken script fails at load time.
func NewCatalogFromTuning(t *prefabs.Tuning) (*Catalog, error) {
	if t == nil {
		return nil, fmt.Errorf("entity: catalog: nil tuning")
	}
	c := NewCatalog()
	for _, spec := range t.PowerUps {
		switch spec.Kind {
		case prefabs.PowerUpShield:
			c.Register(Variant{
				Name:          spec.Name,
				DropFrequency: spec.DropFrequency,
				Build: func(world physics.World, at, velocity physics.Vec) (PowerUp, error) {
					return NewShieldPowerUp(world, t, spec, at, velocity)
				},
			})
		case prefabs.PowerUpScript:
			src, err := prefabs.LoadScript(spec.Script)
			if err != nil {
				return nil, fmt.Errorf("entity: catalog: load %s: %w", spec.Script, err)
			}
			script, err := CompileScript(spec.Script, src)
			if err != nil {
				return nil, err
			}
			c.Register(Variant{
				Name:          spec.Name,
				DropFrequency: spec.DropFrequency,
				Build: func(world physics.World, at, velocity physics.Vec) (PowerUp, error) {
					return NewScriptedPowerUp(world, t, spec, script, at, velocity)
				},
			})
		default:
			return nil, fmt.Errorf("entity: catalog: %w: unknown kind %q", prefabs.ErrInvalidTuning, spec.Kind)
		}
	}
	return c, nil
}
