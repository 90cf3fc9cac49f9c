// Package physics is the narrow view of the rigid-body engine the simulation
// core depends on. Adapters live in subpackages: chipmunk wraps
// github.com/jakecoffman/cp, physicstest is a deterministic stub for tests.
package physics

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrWorldLocked  = errors.New("physics: world is locked during step")
	ErrInvalidShape = errors.New("physics: invalid shape")
	ErrUnknownBody  = errors.New("physics: unknown body")
	ErrNoFixtures   = errors.New("physics: body needs at least one fixture")
)

// Vec is a 2D vector in world units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Forward returns the unit vector a body with the given angle faces.
// Angle zero points along +Y.
func Forward(angle float64) Vec {
	return Vec{X: -math.Sin(angle), Y: math.Cos(angle)}
}

type BodyType int

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

func (t BodyType) String() string {
	switch t {
	case StaticBody:
		return "static"
	case KinematicBody:
		return "kinematic"
	case DynamicBody:
		return "dynamic"
	default:
		return "unknown"
	}
}

// BodyDef describes a body at creation time.
type BodyDef struct {
	Type           BodyType
	Position       Vec
	Angle          float64
	LinearVelocity Vec
	// GravityScale multiplies world gravity for this body. Zero disables gravity.
	GravityScale  float64
	AllowSleep    bool
	FixedRotation bool
}

type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
)

// ShapeDef is either a circle (Radius) or an axis-aligned box (HalfWidth,
// HalfHeight) centred on the body.
type ShapeDef struct {
	Kind       ShapeKind
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
}

func Circle(radius float64) ShapeDef {
	return ShapeDef{Kind: ShapeCircle, Radius: radius}
}

func Box(halfWidth, halfHeight float64) ShapeDef {
	return ShapeDef{Kind: ShapeBox, HalfWidth: halfWidth, HalfHeight: halfHeight}
}

// Area returns the surface of the shape, used for density based mass.
func (s ShapeDef) Area() float64 {
	switch s.Kind {
	case ShapeCircle:
		return math.Pi * s.Radius * s.Radius
	case ShapeBox:
		return 4 * s.HalfWidth * s.HalfHeight
	default:
		return 0
	}
}

// Validate rejects shapes the engine cannot represent.
func (s ShapeDef) Validate() error {
	switch s.Kind {
	case ShapeCircle:
		if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
			return fmt.Errorf("%w: circle radius %v", ErrInvalidShape, s.Radius)
		}
	case ShapeBox:
		if !(s.HalfWidth > 0) || !(s.HalfHeight > 0) || math.IsInf(s.HalfWidth, 0) || math.IsInf(s.HalfHeight, 0) {
			return fmt.Errorf("%w: box %vx%v", ErrInvalidShape, s.HalfWidth, s.HalfHeight)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidShape, s.Kind)
	}
	return nil
}

type FixtureDef struct {
	Shape       ShapeDef
	Density     float64
	Friction    float64
	Restitution float64
	Sensor      bool
}

// ValidateFixtures checks every fixture of a body definition.
func ValidateFixtures(fixtures []FixtureDef) error {
	if len(fixtures) == 0 {
		return ErrNoFixtures
	}
	for i, f := range fixtures {
		if err := f.Shape.Validate(); err != nil {
			return fmt.Errorf("fixture %d: %w", i, err)
		}
		if f.Density < 0 {
			return fmt.Errorf("fixture %d: %w: negative density %v", i, ErrInvalidShape, f.Density)
		}
	}
	return nil
}

// BodyID identifies a body for the lifetime of its world. IDs are never reused.
type BodyID uint64

type World interface {
	CreateBody(def BodyDef, fixtures ...FixtureDef) (Body, error)
	DestroyBody(b Body) error
	Step(dt float64)
	SetContactListener(l ContactListener)
	// Locked reports whether the world is inside Step. Bodies cannot be
	// created or destroyed while locked.
	Locked() bool
	BodyCount() int
}

type Body interface {
	ID() BodyID
	Type() BodyType
	Position() Vec
	SetPosition(p Vec)
	Angle() float64
	LinearVelocity() Vec
	SetLinearVelocity(v Vec)
	SetAngularVelocity(w float64)
	ApplyForce(f Vec)
	Mass() float64
	Fixtures() []Fixture
	// ResetMassData recomputes mass from the current fixture shapes and densities.
	ResetMassData()
	World() World
}

type Fixture interface {
	Kind() ShapeKind
	// Radius is the circle radius; zero for boxes.
	Radius() float64
	SetRadius(r float64) error
	Sensor() bool
	Density() float64
}

// Contact is delivered synchronously from inside Step.
type Contact struct {
	A, B             BodyID
	SensorA, SensorB bool
}

type ContactListener interface {
	BeginContact(c Contact)
	EndContact(c Contact)
}
