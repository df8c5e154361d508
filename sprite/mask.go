package sprite

import (
	"image"
	"math/bits"
)

// AlphaThreshold is the alpha value a pixel must exceed to be solid.
const AlphaThreshold = 127

// Mask is a per-pixel solidity map derived from a bitmap.
// Masks are immutable; a new bitmap needs a new mask.
type Mask struct {
	w, h   int
	stride int // words per row
	bits   []uint64
}

// MaskFromImage builds a mask with a bit set for every pixel whose alpha
// exceeds AlphaThreshold.
func MaskFromImage(img *image.RGBA) *Mask {
	b := img.Bounds()
	m := &Mask{w: b.Dx(), h: b.Dy()}
	m.stride = (m.w + 63) / 64
	m.bits = make([]uint64, m.stride*m.h)

	for y := 0; y < m.h; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < m.w; x++ {
			if row[x*4+3] > AlphaThreshold {
				m.bits[y*m.stride+x/64] |= 1 << uint(x%64)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// At reports whether the pixel at (x, y) is solid. Out of range is empty.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Overlap reports whether any solid pixel of m coincides with a solid pixel
// of o, where o's top-left corner sits at (dx, dy) relative to m's.
func (m *Mask) Overlap(o *Mask, dx, dy int) bool {
	if m == nil || o == nil {
		return false
	}
	x0, y0 := max(0, dx), max(0, dy)
	x1, y1 := min(m.w, dx+o.w), min(m.h, dy+o.h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.At(x, y) && o.At(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}
