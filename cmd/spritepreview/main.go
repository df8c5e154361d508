// Sprite preview tool - interactive rotation, scale and collision mask
// inspection for the asset table.
//
// Usage: go run ./cmd/spritepreview [-config path] [-sprite name]
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/assets"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/sprite"
)

const (
	windowWidth  = 1000
	windowHeight = 600
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

var maskColor = color.RGBA{R: 230, G: 40, B: 40, A: 120}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	name := flag.String("sprite", "", "Sprite to preview (empty = first in table)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	specs := make([]assets.Spec, 0, len(cfg.Assets.Sprites))
	for _, s := range cfg.Assets.Sprites {
		specs = append(specs, assets.Spec{Name: s.Name, Path: s.Path})
	}
	table, err := assets.Load(os.DirFS(cfg.Assets.Dir), specs, 1)
	if err != nil {
		slog.Error("failed to load assets", "error", err)
		os.Exit(1)
	}

	names := table.Names()
	selected := 0
	for i, n := range names {
		if n == *name {
			selected = i
		}
	}

	win := renderer.NewWindow(game.KeyNull)
	if err := win.Open(game.Options{
		Width:  windowWidth,
		Height: windowHeight,
		Title:  "Sprite Preview",
		FPS:    30,
	}); err != nil {
		slog.Error("failed to open window", "error", err)
		os.Exit(1)
	}
	defer win.Close()

	obj := mustObject(table, names[selected])
	var (
		angle    float32
		scale    float32 = 1
		showMask         = true
		spinning bool
		overlay  *image.RGBA
	)
	overlay = maskImage(obj.Mask())

	for !rl.WindowShouldClose() {
		if spinning {
			angle += 90 * rl.GetFrameTime()
			if angle >= 360 {
				angle -= 360
			}
		}
		if float64(angle) != obj.Angle {
			obj.SetAngle(float64(angle))
			overlay = maskImage(obj.Mask())
		}

		win.Clear(color.RGBA{R: 245, G: 245, B: 245, A: 255})

		// Preview area, object centered in it
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		cx, cy := obj.Rect.Center()
		offX := cx - (10 + previewSize/2)
		offY := cy - (10 + previewSize/2)
		obj.Display(win, offX, offY)
		if showMask && overlay != nil {
			win.Blit(overlay, obj.Rect.X-offX, obj.Rect.Y-offY)
		}
		rl.DrawRectangleLines(
			int32(obj.Rect.X-offX), int32(obj.Rect.Y-offY),
			int32(obj.Rect.W), int32(obj.Rect.H), rl.Blue,
		)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Bounds: %.0fx%.0f  Mask pixels: %d", obj.Rect.W, obj.Rect.H, obj.Mask().Count()), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Textures: %d", win.TextureCount()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText(fmt.Sprintf("Sprite: %s", obj.Name), int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Angle (degrees, counter-clockwise)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		angle = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "360",
			angle, 0, 360,
		)
		rl.DrawText(fmt.Sprintf("%.1f", angle), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "4.0",
			scale, 0.1, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != scale {
			scale = newScale
			obj.SetScale(float64(scale))
			overlay = maskImage(obj.Mask())
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(spinning, "Stop", "Spin")) {
			spinning = !spinning
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(showMask, "Hide Mask", "Show Mask")) {
			showMask = !showMask
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Next Sprite") {
			selected = (selected + 1) % len(names)
			obj = mustObject(table, names[selected])
			angle, scale = 0, 1
			overlay = maskImage(obj.Mask())
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset") {
			angle, scale = 0, 1
			obj.SetScale(1)
			obj.SetAngle(0)
			overlay = maskImage(obj.Mask())
		}

		rl.DrawText("Press R to reset size", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyR) {
			obj.ResetSize()
			overlay = maskImage(obj.Mask())
		}

		win.Present()
	}
}

func mustObject(table *assets.Table, name string) *sprite.Object {
	obj, err := sprite.NewObject(table, 0, 0, name, sprite.ObjectOptions{})
	if err != nil {
		slog.Error("failed to create object", "sprite", name, "error", err)
		os.Exit(1)
	}
	return obj
}

// maskImage paints the set bits of m for drawing over the sprite.
func maskImage(m *sprite.Mask) *image.RGBA {
	if m == nil {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) {
				img.SetRGBA(x, y, maskColor)
			}
		}
	}
	return img
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
