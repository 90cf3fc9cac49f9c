package ebitenbatch

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/asteroidminer/common"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	// debugVelocityScale turns physics velocity into a pixel line length.
	debugVelocityScale = 0.5
)

// ShapeColorFunc picks the outline colour of a shape. Returning nil falls back
// to green for solids and red for sensors.
type ShapeColorFunc func(shape *cp.Shape) color.Color

// DrawPhysics outlines every shape in space using the batch camera and draws
// each moving body's velocity as a line from its centre.
func (b *Batch) DrawPhysics(space *cp.Space, colorOf ShapeColorFunc) {
	if b == nil || b.screen == nil || space == nil {
		return
	}
	d := &physicsDebugDrawer{batch: b, colorOf: colorOf}
	cp.DrawSpace(space, d)

	space.EachBody(func(body *cp.Body) {
		if body.GetType() == cp.BODY_STATIC {
			return
		}
		pos := body.Position()
		tip := pos.Add(body.Velocity().Mult(debugVelocityScale))
		d.line(pos, tip, colornames.Yellow)
	})
}

// physicsDebugDrawer implements cp.Drawer.
type physicsDebugDrawer struct {
	batch   *Batch
	colorOf ShapeColorFunc
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	c := fromFColor(fill)
	d.circle(pos, radius, c)
	d.line(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), c)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fromFColor(fill))
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fromFColor(fill))
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count > len(verts) {
		count = len(verts)
	}
	d.loop(verts[:count], fromFColor(fill))
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {}

func (d *physicsDebugDrawer) Flags() uint { return cp.DRAW_SHAPES }

func (d *physicsDebugDrawer) OutlineColor() cp.FColor { return toFColor(colornames.Lime) }

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if d.colorOf != nil {
		if c := d.colorOf(shape); c != nil {
			return toFColor(c)
		}
	}
	if shape.Sensor() {
		return toFColor(colornames.Red)
	}
	return toFColor(colornames.Lime)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor { return toFColor(colornames.Orange) }

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor { return toFColor(colornames.Red) }

func (d *physicsDebugDrawer) Data() interface{} { return nil }

func (d *physicsDebugDrawer) line(a, b cp.Vector, c color.Color) {
	x1, y1 := d.batch.toScreen(common.ToPixels(a.X), common.ToPixels(a.Y))
	x2, y2 := d.batch.toScreen(common.ToPixels(b.X), common.ToPixels(b.Y))
	vector.StrokeLine(d.batch.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, c, false)
}

func (d *physicsDebugDrawer) loop(verts []cp.Vector, c color.Color) {
	for i := range verts {
		d.line(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) circle(center cp.Vector, radius float64, c color.Color) {
	var pts [debugCircleSegments]cp.Vector
	for i := range pts {
		pts[i] = center.Add(cp.ForAngle(2 * math.Pi * float64(i) / debugCircleSegments).Mult(radius))
	}
	d.loop(pts[:], c)
}

func toFColor(c color.Color) cp.FColor {
	r, g, b, a := c.RGBA()
	return cp.FColor{R: float32(r) / 0xffff, G: float32(g) / 0xffff, B: float32(b) / 0xffff, A: float32(a) / 0xffff}
}

func fromFColor(c cp.FColor) color.Color {
	return color.NRGBA{
		R: uint8(common.Clamp(float64(c.R), 0, 1) * 255),
		G: uint8(common.Clamp(float64(c.G), 0, 1) * 255),
		B: uint8(common.Clamp(float64(c.B), 0, 1) * 255),
		A: uint8(common.Clamp(float64(c.A), 0, 1) * 255),
	}
}
