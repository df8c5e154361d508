package sprite

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// sizeEpsilon absorbs float error in rotated extents so a 90 degree turn of a
// 4x2 bitmap is 2x4, not 3x5.
const sizeEpsilon = 1e-6

// Clone returns a copy of src with bounds starting at the origin.
func Clone(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Scale resizes src to w x h with nearest-neighbour sampling so alpha edges
// stay hard and masks stay deterministic.
func Scale(src *image.RGBA, w, h int) *image.RGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := src.Bounds()
	if w == b.Dx() && h == b.Dy() {
		return Clone(src)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 || b.Empty() {
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// RotatedSize returns the bounding box of a w x h bitmap turned by deg degrees.
func RotatedSize(w, h int, deg float64) (int, int) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	fw := math.Abs(float64(w)*cos) + math.Abs(float64(h)*sin)
	fh := math.Abs(float64(w)*sin) + math.Abs(float64(h)*cos)
	return int(math.Ceil(fw - sizeEpsilon)), int(math.Ceil(fh - sizeEpsilon))
}

// Rotate turns src counter-clockwise (as seen on screen, y down) by deg
// degrees around its center. The result grows to hold the whole rotated
// bitmap; uncovered pixels are transparent.
func Rotate(src *image.RGBA, deg float64) *image.RGBA {
	if math.Mod(deg, 360) == 0 {
		return Clone(src)
	}

	b := src.Bounds()
	dw, dh := RotatedSize(b.Dx(), b.Dy(), deg)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	if dw == 0 || dh == 0 {
		return dst
	}

	sin, cos := math.Sincos(deg * math.Pi / 180)
	csx := float64(b.Min.X) + float64(b.Dx())/2
	csy := float64(b.Min.Y) + float64(b.Dy())/2
	cdx := float64(dw) / 2
	cdy := float64(dh) / 2

	// Source to destination: d = R(s - cs) + cd with R = [cos sin; -sin cos]
	s2d := f64.Aff3{
		cos, sin, cdx - cos*csx - sin*csy,
		-sin, cos, cdy + sin*csx - cos*csy,
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, b, draw.Src, nil)
	return dst
}
