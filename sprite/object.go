package sprite

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrUnknownSprite is returned when a sprite name is not in the source.
var ErrUnknownSprite = errors.New("unknown sprite")

// ObjectOptions configures a new Object. Zero values mean scale 1, angle 0,
// natural bitmap size and no payload.
type ObjectOptions struct {
	Scale   float64
	Angle   float64 // Degrees, counter-clockwise on screen
	Width   float64 // Unscaled width (0 = natural)
	Height  float64 // Unscaled height (0 = natural)
	Payload any
}

// Contact describes a collision found by Collide.
type Contact struct {
	Actor  Actor
	DX, DY float64
}

// Object is a positioned sprite with scale, rotation and a collision mask.
//
// Rect, the rotated bitmap and the mask are kept consistent: after any
// mutating method returns, the mask has the bitmap's dimensions and Rect is
// the bitmap's bounding box centered where the previous Rect was centered.
type Object struct {
	Rect    Rect
	Name    string
	Scale   float64
	Angle   float64
	Width   float64
	Height  float64
	Payload any

	base    *image.RGBA
	scaled  *image.RGBA
	rotated *image.RGBA
	mask    *Mask
	packed  bool
}

// NewObject creates an object whose unrotated, scaled bitmap has its
// top-left corner at (x, y).
func NewObject(src Source, x, y float64, name string, opts ObjectOptions) (*Object, error) {
	base, ok := src.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSprite, name)
	}

	o := &Object{
		Name:    name,
		Scale:   opts.Scale,
		Angle:   opts.Angle,
		Width:   opts.Width,
		Height:  opts.Height,
		Payload: opts.Payload,
		base:    base,
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Width == 0 || o.Height == 0 {
		o.Width, o.Height = o.naturalSize()
	}
	o.Rect = Rect{X: x, Y: y, W: o.Width * o.Scale, H: o.Height * o.Scale}
	o.Reload()
	return o, nil
}

func (o *Object) naturalSize() (float64, float64) {
	b := o.base.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// ResetSize restores the bitmap's natural size and re-derives the object.
func (o *Object) ResetSize() {
	o.Width, o.Height = o.naturalSize()
	o.Reload()
}

// SetSize changes the unscaled size and re-derives the object.
func (o *Object) SetSize(w, h float64) {
	o.Width, o.Height = w, h
	o.Reload()
}

// SetScale changes the scale factor and re-derives the object.
func (o *Object) SetScale(scale float64) {
	o.Scale = scale
	o.Reload()
}

// SetAngle changes the heading and re-derives only the rotation.
func (o *Object) SetAngle(deg float64) {
	o.Angle = deg
	o.Rotate()
}

// Reload recomputes the scaled and rotated bitmaps and the mask. Call after
// any change to size, scale or angle.
func (o *Object) Reload() {
	if o.packed {
		return
	}
	w := int(math.Round(o.Width * o.Scale))
	h := int(math.Round(o.Height * o.Scale))
	o.scaled = Scale(o.base, w, h)
	o.Rotate()
}

// Rotate recomputes the rotated bitmap and mask from the already scaled
// bitmap. Call when only the angle changed.
func (o *Object) Rotate() {
	if o.packed {
		return
	}
	o.rotated = Rotate(o.scaled, o.Angle)
	o.mask = MaskFromImage(o.rotated)

	cx, cy := o.Rect.Center()
	b := o.rotated.Bounds()
	o.Rect = CenteredAt(cx, cy, float64(b.Dx()), float64(b.Dy()))
}

// Pack releases the derived bitmaps and mask. The object must be unpacked
// before it is displayed again.
func (o *Object) Pack() {
	o.scaled = nil
	o.rotated = nil
	o.mask = nil
	o.packed = true
}

// Unpack re-derives everything released by Pack.
func (o *Object) Unpack() {
	if !o.packed {
		return
	}
	o.packed = false
	o.Reload()
}

// Packed reports whether derived resources are released.
func (o *Object) Packed() bool { return o.packed }

// Display blits the rotated bitmap at Rect shifted by the camera offset.
// A packed object draws nothing.
func (o *Object) Display(c Canvas, offX, offY float64) {
	if o.packed || o.rotated == nil {
		return
	}
	c.Blit(o.rotated, o.Rect.X-offX, o.Rect.Y-offY)
}

// Bounds returns the current bounding rectangle.
func (o *Object) Bounds() Rect { return o.Rect }

// Mask returns the mask of the current rotated bitmap, nil while packed.
func (o *Object) Mask() *Mask { return o.mask }

// Image returns the current rotated bitmap, nil while packed.
func (o *Object) Image() *image.RGBA { return o.rotated }

// Collide does not resolve anything yet and always returns no contacts.
func (o *Object) Collide(actors ...Actor) []Contact {
	return nil
}

// ResolveXCollision reports whether the actor's mask overlaps this object's.
func (o *Object) ResolveXCollision(a Actor) bool {
	return o.overlaps(a)
}

// ResolveYCollision reports whether the actor's mask overlaps this object's.
func (o *Object) ResolveYCollision(a Actor) bool {
	return o.overlaps(a)
}

func (o *Object) overlaps(a Actor) bool {
	if o.mask == nil {
		return false
	}
	ab := a.Bounds()
	if !o.Rect.Intersects(ab) {
		return false
	}
	dx := int(math.Round(ab.X - o.Rect.X))
	dy := int(math.Round(ab.Y - o.Rect.Y))
	return o.mask.Overlap(a.Mask(), dx, dy)
}
