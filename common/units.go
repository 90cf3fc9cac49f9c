package common

// Physics bodies live in world units; sprites are sized in pixels. Every
// geometry computation that crosses the boundary goes through these factors.
const (
	PhysicsToPixel = 10.0
	PixelToPhysics = 1.0 / PhysicsToPixel
)

// ToPhysics converts a pixel length to world units.
func ToPhysics(px float64) float64 {
	return px * PixelToPhysics
}

// ToPixels converts a world-unit length to pixels.
func ToPixels(u float64) float64 {
	return u * PhysicsToPixel
}
