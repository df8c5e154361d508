package sprite

import (
	"image"
	"image/color"
	"testing"
)

func TestMaskThreshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{A: AlphaThreshold})
	img.SetRGBA(1, 0, color.RGBA{A: AlphaThreshold + 1})
	img.SetRGBA(2, 0, color.RGBA{A: 255})

	m := MaskFromImage(img)
	if m.At(0, 0) {
		t.Error("alpha at threshold should be empty")
	}
	if !m.At(1, 0) || !m.At(2, 0) {
		t.Error("alpha above threshold should be solid")
	}
	if m.Count() != 2 {
		t.Errorf("expected 2 solid pixels, got %d", m.Count())
	}
	if m.At(-1, 0) || m.At(3, 0) {
		t.Error("out of range should be empty")
	}
}

func TestMaskWideRows(t *testing.T) {
	// Rows longer than one word
	m := MaskFromImage(solid(130, 2, opaque))
	if m.Width() != 130 || m.Height() != 2 {
		t.Fatalf("unexpected size %dx%d", m.Width(), m.Height())
	}
	if m.Count() != 260 {
		t.Errorf("expected 260 solid pixels, got %d", m.Count())
	}
	if !m.At(129, 1) {
		t.Error("expected last pixel solid")
	}
}

func TestMaskOverlap(t *testing.T) {
	a := MaskFromImage(solid(10, 10, opaque))

	ring := solid(10, 10, opaque)
	for y := 2; y < 8; y++ {
		for x := 2; x < 8; x++ {
			ring.SetRGBA(x, y, color.RGBA{})
		}
	}
	hollow := MaskFromImage(ring)
	dot := MaskFromImage(solid(2, 2, opaque))

	tests := []struct {
		name   string
		m, o   *Mask
		dx, dy int
		want   bool
	}{
		{"same spot", a, a, 0, 0, true},
		{"touching edge", a, a, 10, 0, false},
		{"one pixel in", a, a, 9, 9, true},
		{"negative offset", a, a, -9, -9, true},
		{"far away", a, dot, 50, 50, false},
		{"inside the hole", hollow, dot, 4, 4, false},
		{"on the ring", hollow, dot, 1, 4, true},
		{"nil other", a, nil, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Overlap(tc.o, tc.dx, tc.dy); got != tc.want {
				t.Errorf("Overlap(%d, %d) = %v, want %v", tc.dx, tc.dy, got, tc.want)
			}
		})
	}
}
