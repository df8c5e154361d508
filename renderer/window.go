// Package renderer draws the game with raylib: the window backend, sprite
// textures and screen text.
package renderer

import (
	"image"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/game"
)

// cachedTexture is a GPU copy of a bitmap.
type cachedTexture struct {
	tex  rl.Texture2D
	used bool // blitted since the last sweep
}

// Window is a resizable raylib window. It is the loop backend, the sprite
// canvas and the ship's input source.
//
// Textures are cached per bitmap pointer, so the cache only helps bitmaps
// that stay the same across frames. A spinning body or a re-rotated ship
// uploads a new texture each frame and the old one is released by sweep.
type Window struct {
	thrustKey game.Key
	textures  map[*image.RGBA]*cachedTexture
}

// NewWindow creates a window backend; thrustKey is read by ThrustPressed.
func NewWindow(thrustKey game.Key) *Window {
	return &Window{
		thrustKey: thrustKey,
		textures:  make(map[*image.RGBA]*cachedTexture),
	}
}

// Open creates the window and sets the frame rate cap.
func (w *Window) Open(opts game.Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetExitKey(int32(game.KeyNull))
	rl.SetTargetFPS(int32(opts.FPS))
	return nil
}

// Close releases all textures and the window.
func (w *Window) Close() {
	for img, c := range w.textures {
		rl.UnloadTexture(c.tex)
		delete(w.textures, img)
	}
	rl.CloseWindow()
}

// PollEvents turns raylib's per-frame input state into events.
func (w *Window) PollEvents() []game.Event {
	var events []game.Event
	if rl.WindowShouldClose() {
		events = append(events, game.Event{Kind: game.EventQuit})
	}
	if rl.IsWindowResized() {
		events = append(events, game.Event{
			Kind:   game.EventResize,
			Width:  rl.GetScreenWidth(),
			Height: rl.GetScreenHeight(),
		})
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		events = append(events, game.Event{Kind: game.EventKeyDown, Key: game.Key(key)})
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		events = append(events, game.Event{Kind: game.EventMouseWheel, Wheel: float64(wheel)})
	}
	return events
}

// Tick returns the last frame's duration. raylib waits for the frame cap
// inside EndDrawing.
func (w *Window) Tick(int) time.Duration {
	return time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
}

// Clear starts the frame and fills it with bg.
func (w *Window) Clear(bg color.RGBA) {
	rl.BeginDrawing()
	rl.ClearBackground(bg)
}

// Present ends the frame and frees textures nothing drew this frame.
func (w *Window) Present() {
	rl.EndDrawing()
	w.sweep()
}

// Blit draws img with its top-left corner at screen (x, y). Each distinct
// bitmap is uploaded once and reused while it keeps being drawn.
func (w *Window) Blit(img *image.RGBA, x, y float64) {
	c, ok := w.textures[img]
	if !ok {
		rlImg := rl.NewImageFromImage(img)
		c = &cachedTexture{tex: rl.LoadTextureFromImage(rlImg)}
		rl.UnloadImage(rlImg)
		w.textures[img] = c
	}
	c.used = true
	rl.DrawTextureV(c.tex, rl.Vector2{X: float32(x), Y: float32(y)}, rl.White)
}

func (w *Window) sweep() {
	for img, c := range w.textures {
		if !c.used {
			rl.UnloadTexture(c.tex)
			delete(w.textures, img)
			continue
		}
		c.used = false
	}
}

// MousePosition returns the cursor in window coordinates.
func (w *Window) MousePosition() (float64, float64) {
	p := rl.GetMousePosition()
	return float64(p.X), float64(p.Y)
}

// ThrustPressed reports whether the thrust key is held.
func (w *Window) ThrustPressed() bool {
	return rl.IsKeyDown(int32(w.thrustKey))
}

// TextureCount returns the number of cached textures.
func (w *Window) TextureCount() int { return len(w.textures) }
