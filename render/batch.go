// Package render describes the drawing surface entities render onto. Coordinates
// are pixels with the world origin at the centre of the screen and y pointing up.
package render

import "image/color"

// Sprite names shared by entities and the tuning file.
const (
	SpriteSpaceship = "spaceship"
	SpriteLaser     = "laser"
	SpriteAsteroid  = "asteroid"
	SpriteHealthBar = "healthbar"
)

// DrawOp places a sprite centred on (X, Y).
type DrawOp struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	Alpha    float64
}

// At returns an unrotated, unscaled, opaque op at (x, y).
func At(x, y float64) DrawOp {
	return DrawOp{X: x, Y: y, ScaleX: 1, ScaleY: 1, Alpha: 1}
}

type Batch interface {
	DrawSprite(name string, op DrawOp)
	// FillRect fills a rectangle whose lower-left corner is (x, y).
	FillRect(x, y, w, h float64, c color.Color)
}

type SpriteCall struct {
	Name string
	Op   DrawOp
}

type RectCall struct {
	X, Y, W, H float64
	Color      color.Color
}

// Recorder is a Batch that remembers every call.
type Recorder struct {
	Sprites []SpriteCall
	Rects   []RectCall
}

func (r *Recorder) DrawSprite(name string, op DrawOp) {
	r.Sprites = append(r.Sprites, SpriteCall{Name: name, Op: op})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Rects = append(r.Rects, RectCall{X: x, Y: y, W: w, H: h, Color: c})
}

// Count returns how many sprites named name were drawn.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, s := range r.Sprites {
		if s.Name == name {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Sprites = r.Sprites[:0]
	r.Rects = r.Rects[:0]
}
