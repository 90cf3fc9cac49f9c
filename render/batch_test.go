package render

import (
	"image/color"
	"testing"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.DrawSprite(SpriteAsteroid, At(1, 2))
	r.DrawSprite(SpriteLaser, At(3, 4))
	r.DrawSprite(SpriteAsteroid, At(5, 6))
	r.FillRect(0, 0, 10, 2, color.White)

	if got := r.Count(SpriteAsteroid); got != 2 {
		t.Fatalf("asteroid count %d, want 2", got)
	}
	if got := r.Sprites[1].Op; got.X != 3 || got.Y != 4 || got.ScaleX != 1 || got.Alpha != 1 {
		t.Fatalf("unexpected op %+v", got)
	}
	if len(r.Rects) != 1 || r.Rects[0].W != 10 {
		t.Fatalf("unexpected rects %+v", r.Rects)
	}

	r.Reset()
	if len(r.Sprites) != 0 || len(r.Rects) != 0 {
		t.Fatal("reset left calls behind")
	}
}
