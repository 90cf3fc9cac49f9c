package entity

import (
	"fmt"

	"github.com/milk9111/asteroidminer/common"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render"
	"golang.org/x/image/colornames"
)

// Controls is the per-tick intent for a ship. Turn is positive
// counter-clockwise.
type Controls struct {
	Thrust float64
	Turn   float64
	Fire   bool
}

type SpaceShip struct {
	Base
	cfg      prefabs.ShipSpec
	health   int
	shield   int
	controls Controls
	cooldown int
}

func NewSpaceShip(world physics.World, t *prefabs.Tuning, location physics.Vec) (*SpaceShip, error) {
	if t == nil {
		return nil, fmt.Errorf("entity: new spaceship: nil tuning")
	}
	base, err := newBase(world, physics.BodyDef{
		Type:         physics.DynamicBody,
		Position:     location,
		GravityScale: 0,
	}, physics.FixtureDef{
		Shape:   physics.Circle(t.Ship.Radius),
		Density: t.Ship.Density,
	})
	if err != nil {
		return nil, err
	}
	return &SpaceShip{
		Base:   base,
		cfg:    t.Ship,
		health: t.Ship.MaxHealth,
	}, nil
}

func (s *SpaceShip) Type() Type { return TypeSpaceShip }

// IsRemoved reports a destroyed ship.
func (s *SpaceShip) IsRemoved() bool {
	return s.Base.IsRemoved() || s.health == 0
}

func (s *SpaceShip) Health() int { return s.health }

func (s *SpaceShip) MaxHealth() int { return s.cfg.MaxHealth }

func (s *SpaceShip) SetHealth(v int) {
	s.health = common.ClampInt(v, 0, s.cfg.MaxHealth)
}

func (s *SpaceShip) Shield() int { return s.shield }

func (s *SpaceShip) MaxShield() int { return s.cfg.MaxShield }

// SetShield clamps amount to [0, MaxShield].
func (s *SpaceShip) SetShield(amount int) {
	s.shield = common.ClampInt(amount, 0, s.cfg.MaxShield)
}

// Hit applies damage to the shield first and the hull with the rest.
func (s *SpaceShip) Hit(damage int) {
	if damage <= 0 {
		return
	}
	absorbed := min(s.shield, damage)
	s.shield -= absorbed
	s.SetHealth(s.health - (damage - absorbed))
}

func (s *SpaceShip) Controls() Controls { return s.controls }

func (s *SpaceShip) SetControls(c Controls) {
	s.controls = Controls{
		Thrust: common.Clamp(c.Thrust, 0, 1),
		Turn:   common.Clamp(c.Turn, -1, 1),
		Fire:   c.Fire,
	}
}

// Steer turns control intent into forces on the body.
func (s *SpaceShip) Steer() {
	s.body.SetAngularVelocity(s.controls.Turn * s.cfg.TurnRate)
	if s.controls.Thrust > 0 {
		s.body.ApplyForce(physics.Forward(s.body.Angle()).Scale(s.controls.Thrust * s.cfg.Thrust))
	}
}

func (s *SpaceShip) CanFire() bool { return s.cooldown == 0 }

// Fire creates a laser from the ship's nose and starts the cooldown.
func (s *SpaceShip) Fire(world physics.World, t *prefabs.Tuning) (*Laser, error) {
	l, err := NewLaser(world, t, s)
	if err != nil {
		return nil, err
	}
	s.cooldown = t.Laser.CooldownTicks
	return l, nil
}

func (s *SpaceShip) Update(dt float64) {
	if s.cooldown > 0 {
		s.cooldown--
	}
}

func (s *SpaceShip) Render(b render.Batch) {
	op := s.spriteOp()
	b.DrawSprite(render.SpriteSpaceship, op)

	const barW, barH = 32.0, 3.0
	y := op.Y - 30
	if s.cfg.MaxShield > 0 && s.shield > 0 {
		b.FillRect(op.X-barW/2, y-barH-1, barW*float64(s.shield)/float64(s.cfg.MaxShield), barH, colornames.Deepskyblue)
	}
	b.FillRect(op.X-barW/2, y, barW*float64(s.health)/float64(s.cfg.MaxHealth), barH, colornames.Limegreen)
}
