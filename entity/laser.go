package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/asteroidminer/common"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render"
)

// Laser is a kinematic sensor fired from a ship's nose.
type Laser struct {
	Base
	ship   *SpaceShip
	limitX float64
	limitY float64
}

// LaserBodyDef places a laser at the nose of a ship body: half the ship sprite
// height ahead of its centre, moving forward at speed plus the ship velocity.
func LaserBodyDef(ship physics.Body, shipHeightPx, speed float64) physics.BodyDef {
	angle := ship.Angle()
	dir := physics.Forward(angle)
	offset := shipHeightPx * 0.5 * common.PixelToPhysics

	return physics.BodyDef{
		Type:           physics.KinematicBody,
		Position:       ship.Position().Add(dir.Scale(offset)),
		Angle:          angle,
		LinearVelocity: dir.Scale(speed).Add(ship.LinearVelocity()),
		GravityScale:   0,
		AllowSleep:     false,
		FixedRotation:  true,
	}
}

// LaserFixture is a sensor box a quarter of the laser sprite in each
// dimension.
func LaserFixture(widthPx, heightPx float64) physics.FixtureDef {
	return physics.FixtureDef{
		Shape:  physics.Box(widthPx/4*common.PixelToPhysics, heightPx/4*common.PixelToPhysics),
		Sensor: true,
	}
}

func NewLaser(world physics.World, t *prefabs.Tuning, ship *SpaceShip) (*Laser, error) {
	if t == nil || ship == nil || ship.Body() == nil {
		return nil, fmt.Errorf("entity: new laser: missing tuning or ship")
	}
	shipSprite := t.Sprite(render.SpriteSpaceship)
	laserSprite := t.Sprite(render.SpriteLaser)

	base, err := newBase(world,
		LaserBodyDef(ship.Body(), shipSprite.Height, t.Laser.Speed),
		LaserFixture(laserSprite.Width, laserSprite.Height),
	)
	if err != nil {
		return nil, err
	}
	return &Laser{
		Base:   base,
		ship:   ship,
		limitX: t.World.Size + float64(t.World.ScreenWidth)*common.PixelToPhysics,
		limitY: t.World.Size + float64(t.World.ScreenHeight)*common.PixelToPhysics,
	}, nil
}

func (l *Laser) Type() Type { return TypeLaser }

// Shooter returns the ship that fired the laser.
func (l *Laser) Shooter() *SpaceShip { return l.ship }

// IsRemoved also reports lasers that left the playfield plus one screen.
func (l *Laser) IsRemoved() bool {
	if l.Base.IsRemoved() {
		return true
	}
	pos := l.body.Position()
	return math.Abs(pos.X) > l.limitX || math.Abs(pos.Y) > l.limitY
}

func (l *Laser) Render(b render.Batch) {
	b.DrawSprite(render.SpriteLaser, l.spriteOp())
}
