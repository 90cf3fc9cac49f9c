package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/asteroidminer/common"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render"
)

var ErrInvalidRadius = errors.New("entity: invalid asteroid radius")

// IceAsteroid shrinks as it loses health and may drop a power-up when it
// breaks.
type IceAsteroid struct {
	Base
	cfg         prefabs.AsteroidSpec
	spriteWidth float64
	env         Env

	fixture     physics.Fixture
	firstRadius float64
	radius      float64
	renderScale float64
	health      int
	bar         *HealthBar
}

// NewIceAsteroid creates a full-health asteroid. The spawn angle is drawn from
// env.Rand when one is set.
func NewIceAsteroid(world physics.World, t *prefabs.Tuning, env Env, location, velocity physics.Vec, radius float64) (*IceAsteroid, error) {
	if t == nil {
		return nil, fmt.Errorf("entity: new ice asteroid: nil tuning")
	}
	if radius <= 0 || !common.Finite(radius) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	cfg := t.Asteroid

	angle := 0.0
	if env.Rand != nil {
		angle = env.Rand.Float64() * 2 * math.Pi
	}
	base, err := newBase(world, physics.BodyDef{
		Type:           physics.DynamicBody,
		Position:       location,
		Angle:          angle,
		LinearVelocity: velocity,
		GravityScale:   cfg.GravityScale,
		AllowSleep:     true,
	}, physics.FixtureDef{
		Shape:       physics.Circle(radius),
		Density:     cfg.Density,
		Restitution: cfg.Restitution,
	})
	if err != nil {
		return nil, err
	}

	a := &IceAsteroid{
		Base:        base,
		cfg:         cfg,
		spriteWidth: t.Sprite(render.SpriteAsteroid).Width,
		env:         env,
		fixture:     base.body.Fixtures()[0],
		firstRadius: radius,
		radius:      radius,
		health:      cfg.MaxHealth,
		bar:         NewHealthBar(cfg.MaxHealth),
	}
	a.renderScale = a.scaleFor(radius)
	return a, nil
}

func (a *IceAsteroid) Type() Type { return TypeAsteroid }

func (a *IceAsteroid) IsRemoved() bool {
	return a.Base.IsRemoved() || a.health == 0
}

func (a *IceAsteroid) Health() int { return a.health }

func (a *IceAsteroid) MaxHealth() int { return a.cfg.MaxHealth }

// Radius is the current physics radius.
func (a *IceAsteroid) Radius() float64 { return a.radius }

func (a *IceAsteroid) RenderScale() float64 { return a.renderScale }

func (a *IceAsteroid) HealthBar() *HealthBar { return a.bar }

// SetHealth clamps v to [0, MaxHealth]. Reaching zero rolls for a power-up
// drop; any other change resizes the body.
func (a *IceAsteroid) SetHealth(v int) {
	v = common.ClampInt(v, 0, a.cfg.MaxHealth)
	if v == a.health {
		return
	}
	a.health = v
	a.bar.ResetAlpha()

	if v == 0 {
		a.dropPowerUp()
		return
	}

	frac := float64(v) / float64(a.cfg.MaxHealth)
	a.radius = a.cfg.MinRadius + frac*(a.firstRadius-a.cfg.MinRadius)
	a.renderScale = a.scaleFor(a.radius)
	if err := a.fixture.SetRadius(a.radius); err != nil {
		panic("ice asteroid: set radius: " + err.Error())
	}
	a.body.ResetMassData()
}

func (a *IceAsteroid) Heal(n int) { a.SetHealth(a.health + n) }

func (a *IceAsteroid) Damage(n int) { a.SetHealth(a.health - n) }

func (a *IceAsteroid) Kill() { a.SetHealth(0) }

func (a *IceAsteroid) Update(dt float64) {
	a.bar.Update(dt)
}

func (a *IceAsteroid) Render(b render.Batch) {
	op := a.spriteOp()
	op.ScaleX, op.ScaleY = a.renderScale, a.renderScale
	b.DrawSprite(render.SpriteAsteroid, op)

	diameter := common.ToPixels(a.radius * 2)
	a.bar.Render(b, a.health, op.X, op.Y+diameter*0.6, diameter*0.95)
}

func (a *IceAsteroid) dropPowerUp() {
	if a.env.Rand == nil || a.env.Tasks == nil {
		return
	}
	if a.env.Rand.Float64() > a.cfg.PowerUpSpawnChance {
		return
	}
	launcher := NewPowerUpLauncher(a.body.World(), a.body.Position(), a.env.Catalog, a.env.Rand, a.env.Spawner)
	a.env.Tasks.RunTask(launcher)
}

func (a *IceAsteroid) scaleFor(radius float64) float64 {
	if a.spriteWidth <= 0 {
		return 1
	}
	return common.ToPixels(radius) * 2 / a.spriteWidth
}
