// Package assets loads the sprite table: a fixed mapping from logical sprite
// names to decoded bitmaps, built once at startup and read-only afterwards.
package assets

import (
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"math"
	"sort"

	"golang.org/x/image/draw"

	"github.com/pthm-cable/drift/sprite"
)

// ErrUnknownAsset is returned by sprite constructors given a name the table
// does not hold, and is the reason MustGet panics with.
var ErrUnknownAsset = sprite.ErrUnknownSprite

// Spec binds a logical name to a PNG file inside the asset filesystem.
type Spec struct {
	Name string
	Path string
}

// Table maps sprite names to bitmaps. It is safe to share by reference.
type Table struct {
	images map[string]*image.RGBA
}

// Load decodes every spec from fsys and pre-scales it by scale.
// Any missing or undecodable file fails the whole load.
func Load(fsys fs.FS, specs []Spec, scale float64) (*Table, error) {
	t := &Table{images: make(map[string]*image.RGBA, len(specs))}
	for _, s := range specs {
		img, err := decode(fsys, s.Path)
		if err != nil {
			return nil, fmt.Errorf("loading asset %q from %s: %w", s.Name, s.Path, err)
		}
		if scale != 1 && scale > 0 {
			b := img.Bounds()
			w := int(math.Round(float64(b.Dx()) * scale))
			h := int(math.Round(float64(b.Dy()) * scale))
			img = sprite.Scale(img, w, h)
		}
		t.images[s.Name] = img
	}
	return t, nil
}

// FromImages builds a table from already decoded bitmaps.
func FromImages(images map[string]*image.RGBA) *Table {
	t := &Table{images: make(map[string]*image.RGBA, len(images))}
	for name, img := range images {
		t.images[name] = img
	}
	return t
}

func decode(fsys fs.FS, path string) (*image.RGBA, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding png: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// Get returns the bitmap for name.
func (t *Table) Get(name string) (*image.RGBA, bool) {
	img, ok := t.images[name]
	return img, ok
}

// MustGet returns the bitmap for name or panics.
func (t *Table) MustGet(name string) *image.RGBA {
	img, ok := t.images[name]
	if !ok {
		panic(fmt.Sprintf("assets: %v: %q", ErrUnknownAsset, name))
	}
	return img
}

// Names returns the sorted sprite names.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.images))
	for name := range t.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of sprites.
func (t *Table) Len() int { return len(t.images) }
