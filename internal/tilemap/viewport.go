package tilemap

import "github.com/vovakirdan/tilejump/internal/core"

// Viewport is the visible window onto the map. It is positioned by a focus
// point (its center) which is clamped so the view never leaves the map.
type Viewport struct {
	W, H   float64 // view size in world pixels
	FX, FY float64 // clamped focus point
	mapW   float64
	mapH   float64
}

// NewViewport creates a viewport of the given size over a map.
func NewViewport(m *Map, w, h float64) *Viewport {
	v := &Viewport{W: w, H: h, mapW: m.PixelWidth(), mapH: m.PixelHeight()}
	v.SetFocus(w/2, h/2)
	return v
}

// Resize changes the view size and re-clamps the current focus.
func (v *Viewport) Resize(w, h float64) {
	v.W, v.H = w, h
	v.SetFocus(v.FX, v.FY)
}

// SetFocus centers the view on (fx, fy), clamped to the map edges.
// When the map is smaller than the view along an axis the view is pinned to
// the map origin on that axis.
func (v *Viewport) SetFocus(fx, fy float64) {
	v.FX = clampAxis(fx, v.W, v.mapW)
	v.FY = clampAxis(fy, v.H, v.mapH)
}

func clampAxis(f, view, world float64) float64 {
	if world <= view {
		return view / 2
	}
	return core.ClampF(f, view/2, world-view/2)
}

// Rect returns the visible world rectangle.
func (v *Viewport) Rect() core.RectF {
	return core.NewRectF(v.FX-v.W/2, v.FY-v.H/2, v.W, v.H)
}

// Origin returns the world coordinates of the view's top-left corner.
func (v *Viewport) Origin() (float64, float64) {
	r := v.Rect()
	return r.X, r.Y
}
