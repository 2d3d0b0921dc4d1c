// Package viewport tracks the zoom/pan transform for the drawing layer.
// It owns no tree data; it only holds the current scale and translation
// and exposes them as a transform.
package viewport

import "fmt"

// Viewport is the current pan/zoom state. Scale starts at 1.0 and is
// clamped to [MinScale, MaxScale] on every zoom event; the gesture source
// is expected to clamp too, this is a second line.
type Viewport struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
	MinScale   float64
	MaxScale   float64
}

// New returns a viewport at scale 1.0 with the given translate offset and
// scale extent. A degenerate extent (max <= min) is kept as supplied;
// Zoom clamps against it regardless.
func New(translateX, translateY, minScale, maxScale float64) *Viewport {
	return &Viewport{
		Scale:      1.0,
		TranslateX: translateX,
		TranslateY: translateY,
		MinScale:   minScale,
		MaxScale:   maxScale,
	}
}

// Zoom sets the scale to the gesture's reported value, clamped to the
// configured extent.
func (v *Viewport) Zoom(scale float64) {
	if scale < v.MinScale {
		scale = v.MinScale
	}
	if scale > v.MaxScale {
		scale = v.MaxScale
	}
	v.Scale = scale
}

// ZoomBy multiplies the current scale by factor, with the same clamping.
func (v *Viewport) ZoomBy(factor float64) {
	v.Zoom(v.Scale * factor)
}

// Pan shifts the translation by the given deltas.
func (v *Viewport) Pan(dx, dy float64) {
	v.TranslateX += dx
	v.TranslateY += dy
}

// Transform renders the state as an SVG/d3 transform string.
func (v *Viewport) Transform() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", v.TranslateX, v.TranslateY, v.Scale)
}

// Project maps a layout coordinate into viewport space.
func (v *Viewport) Project(x, y float64) (float64, float64) {
	return x*v.Scale + v.TranslateX, y*v.Scale + v.TranslateY
}
