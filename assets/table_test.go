package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/pthm-cable/drift/sprite"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"Space Station.png": {Data: pngBytes(t, 8, 6)},
		"planet.png":        {Data: pngBytes(t, 4, 4)},
	}
	specs := []Spec{
		{Name: "Space Station", Path: "Space Station.png"},
		{Name: "Planet", Path: "planet.png"},
	}

	table, err := Load(fsys, specs, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 sprites, got %d", table.Len())
	}
	img, ok := table.Get("Space Station")
	if !ok {
		t.Fatal("expected Space Station")
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("expected 8x6, got %dx%d", b.Dx(), b.Dy())
	}
	if got := img.RGBAAt(3, 3); got.A != 255 || got.R != 10 {
		t.Errorf("unexpected pixel %v", got)
	}
	if names := table.Names(); names[0] != "Planet" || names[1] != "Space Station" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestLoadPreScales(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: pngBytes(t, 10, 4)}}
	table, err := Load(fsys, []Spec{{Name: "a", Path: "a.png"}}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if b := table.MustGet("a").Bounds(); b.Dx() != 5 || b.Dy() != 2 {
		t.Errorf("expected 5x2, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, []Spec{{Name: "ghost", Path: "ghost.png"}}, 1)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadBadPNG(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not a png")}}
	if _, err := Load(fsys, []Spec{{Name: "bad", Path: "bad.png"}}, 1); err == nil {
		t.Error("expected decode error")
	}
}

func TestUnknownAssetAtConstruction(t *testing.T) {
	table := FromImages(map[string]*image.RGBA{"ship": image.NewRGBA(image.Rect(0, 0, 4, 4))})
	if _, err := sprite.NewObject(table, 0, 0, "ship", sprite.ObjectOptions{}); err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	_, err := sprite.NewObject(table, 0, 0, "moon", sprite.ObjectOptions{})
	if !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("expected ErrUnknownAsset, got %v", err)
	}
}

func TestMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown asset")
		}
	}()
	FromImages(nil).MustGet("nope")
}
