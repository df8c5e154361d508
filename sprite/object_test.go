package sprite

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"testing"
)

const tolerance = 1e-9

func newTestObject(t *testing.T, opts ObjectOptions) *Object {
	t.Helper()
	src := mapSource{"rock": solid(20, 10, opaque)}
	o, err := NewObject(src, 50, 60, "rock", opts)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	return o
}

// assertConsistent checks that rect, bitmap and mask describe the same shape.
func assertConsistent(t *testing.T, o *Object) {
	t.Helper()
	b := o.Image().Bounds()
	if o.Mask().Width() != b.Dx() || o.Mask().Height() != b.Dy() {
		t.Errorf("mask %dx%d does not match bitmap %dx%d",
			o.Mask().Width(), o.Mask().Height(), b.Dx(), b.Dy())
	}
	if o.Rect.W != float64(b.Dx()) || o.Rect.H != float64(b.Dy()) {
		t.Errorf("rect %vx%v does not match bitmap %dx%d", o.Rect.W, o.Rect.H, b.Dx(), b.Dy())
	}
}

func assertCenter(t *testing.T, o *Object, cx, cy float64) {
	t.Helper()
	x, y := o.Rect.Center()
	if math.Abs(x-cx) > tolerance || math.Abs(y-cy) > tolerance {
		t.Errorf("center moved from (%v, %v) to (%v, %v)", cx, cy, x, y)
	}
}

func TestNewObjectUnknownSprite(t *testing.T) {
	_, err := NewObject(mapSource{}, 0, 0, "missing", ObjectOptions{})
	if !errors.Is(err, ErrUnknownSprite) {
		t.Errorf("expected ErrUnknownSprite, got %v", err)
	}
}

func TestNewObjectDefaults(t *testing.T) {
	o := newTestObject(t, ObjectOptions{Payload: "cargo"})

	if o.Scale != 1 {
		t.Errorf("expected scale 1, got %v", o.Scale)
	}
	if o.Width != 20 || o.Height != 10 {
		t.Errorf("expected natural size 20x10, got %vx%v", o.Width, o.Height)
	}
	if o.Rect != (Rect{X: 50, Y: 60, W: 20, H: 10}) {
		t.Errorf("unexpected rect %+v", o.Rect)
	}
	if o.Payload != "cargo" {
		t.Errorf("expected payload to be kept, got %v", o.Payload)
	}
	assertConsistent(t, o)
}

func TestNewObjectScaledAndSized(t *testing.T) {
	o := newTestObject(t, ObjectOptions{Scale: 2, Width: 8, Height: 4})
	if o.Rect.W != 16 || o.Rect.H != 8 {
		t.Errorf("expected 16x8 rect, got %vx%v", o.Rect.W, o.Rect.H)
	}
	assertConsistent(t, o)

	cx, cy := o.Rect.Center()
	o.ResetSize()
	if o.Rect.W != 40 || o.Rect.H != 20 {
		t.Errorf("expected natural size at scale 2 (40x20), got %vx%v", o.Rect.W, o.Rect.H)
	}
	assertCenter(t, o, cx, cy)
	assertConsistent(t, o)
}

func TestReloadAndRotateStayConsistent(t *testing.T) {
	o := newTestObject(t, ObjectOptions{})
	cx, cy := o.Rect.Center()

	for _, deg := range []float64{0, 15, 45, 90, 133, 180, 270, -30, 725} {
		o.SetAngle(deg)
		assertConsistent(t, o)
		assertCenter(t, o, cx, cy)

		o.SetScale(1.5)
		assertConsistent(t, o)
		assertCenter(t, o, cx, cy)

		o.SetScale(1)
	}
}

func TestRotateUsesScaledBitmap(t *testing.T) {
	o := newTestObject(t, ObjectOptions{Scale: 2})
	o.Angle = 90
	o.Rotate()
	if o.Rect.W != 20 || o.Rect.H != 40 {
		t.Errorf("expected 20x40 after quarter turn at scale 2, got %vx%v", o.Rect.W, o.Rect.H)
	}
}

func TestPackUnpackRendersIdentically(t *testing.T) {
	o := newTestObject(t, ObjectOptions{Angle: 30, Scale: 1.5})

	before := &recordingCanvas{}
	o.Display(before, 5, 7)

	o.Pack()
	if !o.Packed() || o.Image() != nil || o.Mask() != nil {
		t.Fatal("expected derived resources to be released")
	}
	packed := &recordingCanvas{}
	o.Display(packed, 5, 7)
	if len(packed.blits) != 0 {
		t.Error("packed object should not draw")
	}

	o.Unpack()
	after := &recordingCanvas{}
	o.Display(after, 5, 7)

	if len(before.blits) != 1 || len(after.blits) != 1 {
		t.Fatalf("expected one blit each, got %d and %d", len(before.blits), len(after.blits))
	}
	b, a := before.blits[0], after.blits[0]
	if a.x != b.x || a.y != b.y {
		t.Errorf("position changed: (%v, %v) -> (%v, %v)", b.x, b.y, a.x, a.y)
	}
	if a.img.Bounds() != b.img.Bounds() || !bytes.Equal(a.img.Pix, b.img.Pix) {
		t.Error("bitmap changed across pack/unpack")
	}
}

func TestRotateWhilePackedAppliesOnUnpack(t *testing.T) {
	o := newTestObject(t, ObjectOptions{})
	o.Pack()
	o.SetAngle(90)
	o.Unpack()
	if o.Rect.W != 10 || o.Rect.H != 20 {
		t.Errorf("expected 10x20 after unpack, got %vx%v", o.Rect.W, o.Rect.H)
	}
	assertConsistent(t, o)
}

func TestDisplayAppliesOffset(t *testing.T) {
	o := newTestObject(t, ObjectOptions{})
	c := &recordingCanvas{}
	o.Display(c, 10, -5)
	if got := c.blits[0]; got.x != 40 || got.y != 65 {
		t.Errorf("expected blit at (40, 65), got (%v, %v)", got.x, got.y)
	}
}

func TestCollisionStubs(t *testing.T) {
	src := mapSource{
		"rock": solid(20, 20, opaque),
		"dot":  solid(4, 4, color.RGBA{A: 255}),
	}
	rock, _ := NewObject(src, 0, 0, "rock", ObjectOptions{})
	near, _ := NewObject(src, 18, 18, "dot", ObjectOptions{})
	far, _ := NewObject(src, 100, 100, "dot", ObjectOptions{})

	if got := rock.Collide(near, far); len(got) != 0 {
		t.Errorf("Collide should report nothing, got %v", got)
	}
	if !rock.ResolveXCollision(near) || !rock.ResolveYCollision(near) {
		t.Error("expected overlap with nearby actor")
	}
	if rock.ResolveXCollision(far) || rock.ResolveYCollision(far) {
		t.Error("expected no overlap with distant actor")
	}

	rock.Pack()
	if rock.ResolveXCollision(near) {
		t.Error("packed object has no mask to collide with")
	}
}
