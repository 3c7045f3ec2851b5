package renderer

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceDSN/pkg/geom"
)

// Camera represents a viewport onto a DSN document. World coordinates are
// in the document's own unit, so zoom limits are derived from the fitted
// extent rather than fixed.
type Camera struct {
	// Center position in world coordinates
	Center geom.Point

	// Zoom level (pixels per world unit)
	Zoom    float64
	MinZoom float64
	MaxZoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int

	// View controls
	FlipView bool    // true = mirrored view (looking at the back side)
	Rotation float64 // view rotation in degrees, kept in [0, 360)

	// View rotates and flips around this world point
	RotationCenter geom.Point
}

// NewCamera creates a camera with default settings
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         1.0,
		MinZoom:      1e-6,
		MaxZoom:      1e6,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates to screen pixels.
// DSN has Y increasing upward, so the screen Y axis is inverted.
func (c *Camera) WorldToScreen(pos geom.Point) (float64, float64) {
	pos = c.applyViewTransform(pos)

	x := (pos.X-c.Center.X)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (pos.Y-c.Center.Y)*c.Zoom + float64(c.ScreenHeight)/2.0

	return x, float64(c.ScreenHeight) - y
}

// ScreenToWorld converts screen pixels to world coordinates
func (c *Camera) ScreenToWorld(screenX, screenY float64) geom.Point {
	y := float64(c.ScreenHeight) - screenY

	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.Center.X
	y = (y-float64(c.ScreenHeight)/2.0)/c.Zoom + c.Center.Y

	return c.applyInverseViewTransform(geom.Pt(x, y))
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.Center.X -= deltaX / c.Zoom
	c.Center.Y += deltaY / c.Zoom
}

// ZoomAt zooms in/out keeping the world point under the given screen position fixed.
// factor > 1 zooms in, factor < 1 zooms out
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, c.Zoom*factor))

	after := c.ScreenToWorld(screenX, screenY)
	c.Center.X += before.X - after.X
	c.Center.Y += before.Y - after.Y
}

// Fit centers the camera on bbox and zooms so it fills 90% of the screen.
// The zoom limits are reset around the fitted zoom.
func (c *Camera) Fit(bbox geom.Rect) {
	if bbox.IsEmpty() {
		return
	}
	width, height := bbox.Width(), bbox.Height()
	if width <= 0 && height <= 0 {
		return
	}

	c.Center = bbox.Center()
	c.RotationCenter = c.Center

	zoom := math.Inf(1)
	if width > 0 {
		zoom = float64(c.ScreenWidth) * 0.9 / width
	}
	if height > 0 {
		zoom = math.Min(zoom, float64(c.ScreenHeight)*0.9/height)
	}

	c.Zoom = zoom
	c.MinZoom = zoom / 100
	c.MaxZoom = zoom * 1000
}

// UpdateScreenSize updates camera when window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// Flip toggles the view flip state (mirrored/normal)
func (c *Camera) Flip() {
	c.FlipView = !c.FlipView
}

// Rotate rotates the view by the given degrees
func (c *Camera) Rotate(degrees float64) {
	c.Rotation = math.Mod(c.Rotation+degrees, 360)
	if c.Rotation < 0 {
		c.Rotation += 360
	}
}

// PixelsFor converts a world length to pixels, never less than min
func (c *Camera) PixelsFor(length, min float64) float64 {
	return math.Max(length*c.Zoom, min)
}

func (c *Camera) applyViewTransform(pos geom.Point) geom.Point {
	rel := geom.Pt(pos.X-c.RotationCenter.X, pos.Y-c.RotationCenter.Y).Rotate(c.Rotation)
	if c.FlipView {
		rel = rel.MirrorX()
	}
	return rel.Add(c.RotationCenter)
}

func (c *Camera) applyInverseViewTransform(pos geom.Point) geom.Point {
	rel := geom.Pt(pos.X-c.RotationCenter.X, pos.Y-c.RotationCenter.Y)
	if c.FlipView {
		rel = rel.MirrorX()
	}
	return rel.Rotate(-c.Rotation).Add(c.RotationCenter)
}

// VisibleBounds returns the visible area in world coordinates
func (c *Camera) VisibleBounds() geom.Rect {
	bbox := geom.EmptyRect()
	w, h := float64(c.ScreenWidth), float64(c.ScreenHeight)

	// All four corners, since rotation may change which is which
	bbox.Expand(c.ScreenToWorld(0, 0))
	bbox.Expand(c.ScreenToWorld(w, 0))
	bbox.Expand(c.ScreenToWorld(0, h))
	bbox.Expand(c.ScreenToWorld(w, h))

	return bbox
}
