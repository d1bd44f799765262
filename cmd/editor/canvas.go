package main

import "math"

const (
	minZoom = 0.25
	maxZoom = 8.0
)

// view maps screen pixels to map pixels through a pan offset and zoom. The
// canvas starts at left on screen, to the right of the side panel.
type view struct {
	left    int
	zoom    float64
	offsetX float64
	offsetY float64

	panning bool
	lastMX  int
	lastMY  int
}

func newView(left int) *view {
	return &view{left: left, zoom: 1, offsetX: 16, offsetY: 56}
}

// toMap converts a screen position to map pixels. ok is false when the
// point is left of the canvas.
func (v *view) toMap(sx, sy int) (x, y float64, ok bool) {
	if sx < v.left {
		return 0, 0, false
	}
	if v.zoom == 0 {
		v.zoom = 1
	}
	x = (float64(sx-v.left) - v.offsetX) / v.zoom
	y = (float64(sy) - v.offsetY) / v.zoom
	return x, y, true
}

// toScreen converts map pixels to a screen position.
func (v *view) toScreen(x, y float64) (float32, float32) {
	return float32(float64(v.left) + v.offsetX + x*v.zoom), float32(v.offsetY + y*v.zoom)
}

// zoomAt scales by factor, keeping the map point under (sx,sy) fixed.
func (v *view) zoomAt(sx, sy int, factor float64) {
	mx, my, ok := v.toMap(sx, sy)
	if !ok {
		return
	}
	v.zoom = math.Max(minZoom, math.Min(maxZoom, v.zoom*factor))
	v.offsetX = float64(sx-v.left) - mx*v.zoom
	v.offsetY = float64(sy) - my*v.zoom
}

// pan follows a middle-button drag.
func (v *view) pan(pressed bool, mx, my int) {
	if !pressed {
		v.panning = false
		return
	}
	if !v.panning {
		v.panning = true
		v.lastMX, v.lastMY = mx, my
		return
	}
	v.offsetX += float64(mx - v.lastMX)
	v.offsetY += float64(my - v.lastMY)
	v.lastMX, v.lastMY = mx, my
}
