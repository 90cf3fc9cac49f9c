package entity

import (
	"image/color"

	"github.com/milk9111/asteroidminer/common"
	"github.com/milk9111/asteroidminer/render"
	"golang.org/x/image/colornames"
)

// healthBarFadeSeconds is how long a bar stays visible after the last change.
const healthBarFadeSeconds = 2.0

// HealthBar is drawn above a damaged object and fades out when health stops
// changing.
type HealthBar struct {
	max   int
	alpha float64
}

func NewHealthBar(max int) *HealthBar {
	return &HealthBar{max: max}
}

// ResetAlpha makes the bar fully visible again.
func (h *HealthBar) ResetAlpha() {
	h.alpha = 1
}

func (h *HealthBar) Alpha() float64 {
	return h.alpha
}

func (h *HealthBar) Update(dt float64) {
	h.alpha = common.Clamp(h.alpha-dt/healthBarFadeSeconds, 0, 1)
}

// Render draws the bar centred horizontally on x with its bottom edge at y.
func (h *HealthBar) Render(b render.Batch, health int, x, y, width float64) {
	if h.alpha <= 0 || h.max <= 0 || width <= 0 {
		return
	}
	const height = 4.0
	frac := common.Clamp(float64(health)/float64(h.max), 0, 1)
	left := x - width/2
	b.FillRect(left, y, width, height, fade(colornames.Darkred, h.alpha))
	b.FillRect(left, y, width*frac, height, fade(colornames.Limegreen, h.alpha))
}

func fade(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * common.Clamp(alpha, 0, 1))}
}
