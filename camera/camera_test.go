package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(900, 500)

	// Origin view: offset is zero
	ox, oy := cam.Offset()
	if ox != 0 || oy != 0 {
		t.Errorf("expected zero offset, got (%f, %f)", ox, oy)
	}
}

func TestFollowCentersTarget(t *testing.T) {
	cam := New(900, 500)
	cam.Follow(1000, -200)

	ox, oy := cam.Offset()
	if ox != 550 || oy != -450 {
		t.Errorf("expected offset (550, -450), got (%f, %f)", ox, oy)
	}

	sx, sy := cam.WorldToScreen(1000, -200)
	if sx != 450 || sy != 250 {
		t.Errorf("expected followed point at screen center, got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.Follow(333.5, 91.25)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 0.01 || math.Abs(sy-tc.sy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestResizeKeepsTargetCentered(t *testing.T) {
	cam := New(900, 500)
	cam.Follow(100, 100)
	cam.Resize(400, 200)

	sx, sy := cam.WorldToScreen(100, 100)
	if sx != 200 || sy != 100 {
		t.Errorf("expected (200, 100), got (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(900, 500)
	cam.Follow(450, 250)

	if !cam.IsVisible(450, 250, 10, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2000, 2000, 10, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(-50, 100, 60, 10) {
		t.Error("rectangle straddling the left edge should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(900, 500)
	cam.Follow(5000, 5000)
	cam.Reset()

	if ox, oy := cam.Offset(); ox != 0 || oy != 0 {
		t.Errorf("expected zero offset after reset, got (%f, %f)", ox, oy)
	}
}
