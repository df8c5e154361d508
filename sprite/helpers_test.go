package sprite

import (
	"image"
	"image/color"
	"time"
)

// mapSource is an in-memory sprite table.
type mapSource map[string]*image.RGBA

func (m mapSource) Get(name string) (*image.RGBA, bool) {
	img, ok := m[name]
	return img, ok
}

// solid returns a w x h bitmap filled with c.
func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var opaque = color.RGBA{R: 200, G: 40, B: 40, A: 255}

// scriptedInput is a fixed control state.
type scriptedInput struct {
	mouseX, mouseY float64
	thrust         bool
}

func (s *scriptedInput) MousePosition() (float64, float64) { return s.mouseX, s.mouseY }
func (s *scriptedInput) ThrustPressed() bool               { return s.thrust }

// manualClock only moves when told to.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time          { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// blit records one Canvas call.
type blit struct {
	img  *image.RGBA
	x, y float64
}

type recordingCanvas struct {
	blits []blit
}

func (c *recordingCanvas) Blit(img *image.RGBA, x, y float64) {
	c.blits = append(c.blits, blit{img: img, x: x, y: y})
}
