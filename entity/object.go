// Package entity holds the game objects: ships, lasers, ice asteroids and
// power-ups. Every object owns exactly one physics body, created by its
// constructor.
package entity

import (
	"fmt"

	"github.com/milk9111/asteroidminer/common"
	"github.com/milk9111/asteroidminer/ecs"
	"github.com/milk9111/asteroidminer/physics"
	"github.com/milk9111/asteroidminer/render"
)

type Object interface {
	Render(b render.Batch)
	// Update runs once per tick after the physics step.
	Update(dt float64)
	IsRemoved() bool
	Type() Type
	Body() physics.Body
	Remove()
}

// Damageable is an object with clamped health.
type Damageable interface {
	Object
	Health() int
	SetHealth(v int)
	Heal(n int)
	Damage(n int)
	Kill()
}

// TaskRunner accepts work for a later tick.
type TaskRunner interface {
	RunTask(t ecs.Task)
}

// Spawner adds a constructed object to the live set.
type Spawner interface {
	Spawn(o Object)
}

type Rand interface {
	Float64() float64
}

// Env is what objects need from the world they live in.
type Env struct {
	Tasks   TaskRunner
	Spawner Spawner
	Rand    Rand
	Catalog *Catalog
}

// Base carries the body and removal flag shared by every object.
type Base struct {
	body    physics.Body
	removed bool
}

func newBase(world physics.World, def physics.BodyDef, fixtures ...physics.FixtureDef) (Base, error) {
	if world == nil {
		return Base{}, fmt.Errorf("entity: create body: nil world")
	}
	body, err := world.CreateBody(def, fixtures...)
	if err != nil {
		return Base{}, fmt.Errorf("entity: create body: %w", err)
	}
	return Base{body: body}, nil
}

func (b *Base) Body() physics.Body { return b.body }

func (b *Base) Remove() { b.removed = true }

func (b *Base) IsRemoved() bool { return b.removed }

func (b *Base) Update(dt float64) {}

// spriteOp places a sprite on the body pose.
func (b *Base) spriteOp() render.DrawOp {
	pos := b.body.Position()
	op := render.At(common.ToPixels(pos.X), common.ToPixels(pos.Y))
	op.Rotation = b.body.Angle()
	return op
}
