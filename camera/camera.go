// Package camera provides a 2D camera that keeps a target centered on screen.
package camera

// Camera maps world coordinates to the screen.
// The screen shows the world translated by Offset; there is no zoom.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Viewport dimensions (window size)
	ViewportW, ViewportH float64
}

// New creates a camera whose view starts at the world origin.
func New(viewportW, viewportH float64) *Camera {
	return &Camera{
		X:         viewportW / 2,
		Y:         viewportH / 2,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// Follow centers the camera on a world point.
func (c *Camera) Follow(wx, wy float64) {
	c.X = wx
	c.Y = wy
}

// Offset returns the world-to-screen translation: the followed point minus
// half the viewport. Subtract it from world positions to get screen positions.
func (c *Camera) Offset() (x, y float64) {
	return c.X - c.ViewportW/2, c.Y - c.ViewportH/2
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	ox, oy := c.Offset()
	return wx - ox, wy - oy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	ox, oy := c.Offset()
	return sx + ox, sy + oy
}

// IsVisible returns true if a w x h rectangle at (wx, wy) could be visible
// on screen.
func (c *Camera) IsVisible(wx, wy, w, h float64) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	return sx+w >= 0 && sy+h >= 0 && sx <= c.ViewportW && sy <= c.ViewportH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Reset returns the camera to the world origin view.
func (c *Camera) Reset() {
	c.X = c.ViewportW / 2
	c.Y = c.ViewportH / 2
}
