// Package sprite provides positioned, rotatable bitmaps with collision masks
// and the player ship built on top of them.
package sprite

import (
	"image"
	"time"
)

// Source resolves a logical sprite name to its bitmap.
type Source interface {
	Get(name string) (*image.RGBA, bool)
}

// Canvas receives bitmaps to draw at screen coordinates.
type Canvas interface {
	Blit(img *image.RGBA, x, y float64)
}

// Input is the per-frame control state a ship reads.
type Input interface {
	MousePosition() (x, y float64)
	ThrustPressed() bool
}

// Actor is anything that can take part in mask collision tests.
type Actor interface {
	Bounds() Rect
	Mask() *Mask
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
