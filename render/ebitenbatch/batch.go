// Package ebitenbatch draws render.Batch calls onto an ebiten screen.
package ebitenbatch

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/asteroidminer/prefabs"
	"github.com/milk9111/asteroidminer/render"
	"golang.org/x/image/colornames"
)

// Atlas caches one solid placeholder image per tuned sprite.
type Atlas struct {
	images map[string]*ebiten.Image
}

func NewAtlas(sprites map[string]prefabs.SpriteSpec) *Atlas {
	a := &Atlas{images: make(map[string]*ebiten.Image, len(sprites))}
	for name, spec := range sprites {
		a.Register(name, spec)
	}
	return a
}

// Register builds the placeholder for name, replacing any previous image.
func (a *Atlas) Register(name string, spec prefabs.SpriteSpec) {
	if name == "" || spec.Width <= 0 || spec.Height <= 0 {
		return
	}
	w, h := int(spec.Width+0.5), int(spec.Height+0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := ebiten.NewImage(w, h)
	var c color.Color = colornames.Magenta
	if spec.Color != nil && spec.Color.Color != nil {
		c = spec.Color.Color
	}
	img.Fill(c)
	if old, ok := a.images[name]; ok {
		old.Deallocate()
	}
	a.images[name] = img
}

// Image returns a cached image by name.
func (a *Atlas) Image(name string) *ebiten.Image {
	if a == nil || name == "" {
		return nil
	}
	return a.images[name]
}

// Batch maps world pixels onto the screen, centred on (CamX, CamY).
type Batch struct {
	screen *ebiten.Image
	atlas  *Atlas

	CamX, CamY float64
}

func New(screen *ebiten.Image, atlas *Atlas) *Batch {
	return &Batch{screen: screen, atlas: atlas}
}

func (b *Batch) DrawSprite(name string, op render.DrawOp) {
	if b == nil || b.screen == nil {
		return
	}
	img := b.atlas.Image(name)
	if img == nil {
		return
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	sx, sy := b.toScreen(op.X, op.Y)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-w/2, -h/2)
	opts.GeoM.Scale(op.ScaleX, op.ScaleY)
	// world angles are counter-clockwise with y up
	opts.GeoM.Rotate(-op.Rotation)
	opts.GeoM.Translate(sx, sy)
	opts.ColorScale.ScaleAlpha(float32(op.Alpha))
	b.screen.DrawImage(img, opts)
}

func (b *Batch) FillRect(x, y, w, h float64, c color.Color) {
	if b == nil || b.screen == nil || w <= 0 || h <= 0 {
		return
	}
	sx, sy := b.toScreen(x, y+h)
	vector.FillRect(b.screen, float32(sx), float32(sy), float32(w), float32(h), c, false)
}

func (b *Batch) toScreen(x, y float64) (float64, float64) {
	bounds := b.screen.Bounds()
	cx := float64(bounds.Dx()) / 2
	cy := float64(bounds.Dy()) / 2
	return cx + (x - b.CamX), cy - (y - b.CamY)
}
