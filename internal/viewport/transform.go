// Package viewport owns the zoom/pan transform applied to the rendered
// surface. It is independent of pagination: turning pages never changes the
// transform, and zooming never changes the page.
package viewport

import (
	"sync"

	"flipbook-viewer/internal/logger"
)

// Matrix is the affine transform the presentation layer applies to the
// surface: scale by Zoom, then translate by (PanX, PanY) in pixels.
type Matrix struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

// Transform holds the zoom level and pan offset. Zoom is clamped to the
// configured range; pan accumulates without clamping — dragging content past
// the viewport edge is allowed by design.
type Transform struct {
	mu      sync.Mutex
	zoom    float64
	panX    float64
	panY    float64
	minZoom float64
	maxZoom float64
	step    float64

	panActive bool
	pinch     *pinchState
}

type pinchState struct {
	startZoom float64
	startDist float64
	lastX     float64
	lastY     float64
}

// NewTransform creates an identity transform with the given zoom bounds and
// discrete step
func NewTransform(minZoom, maxZoom, step float64) *Transform {
	if minZoom <= 0 {
		minZoom = 0.5
	}
	if maxZoom <= minZoom {
		maxZoom = 3.0
	}
	if step <= 0 {
		step = 0.25
	}
	return &Transform{
		zoom:    1,
		minZoom: minZoom,
		maxZoom: maxZoom,
		step:    step,
	}
}

// Matrix returns the current transform
func (t *Transform) Matrix() Matrix {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Matrix{Zoom: t.zoom, PanX: t.panX, PanY: t.panY}
}

// Zoom returns the current zoom level
func (t *Transform) Zoom() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.zoom
}

// ZoomIn applies one discrete zoom step
func (t *Transform) ZoomIn() Matrix {
	return t.ZoomBy(t.step)
}

// ZoomOut applies one discrete zoom step down
func (t *Transform) ZoomOut() Matrix {
	return t.ZoomBy(-t.step)
}

// ZoomBy adjusts the zoom by delta, clamped into the configured range
func (t *Transform) ZoomBy(delta float64) Matrix {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.zoom = t.clamp(t.zoom + delta)
	return Matrix{Zoom: t.zoom, PanX: t.panX, PanY: t.panY}
}

// PanBy accumulates a pan offset. No clamping: the content may be dragged
// arbitrarily far, like sliding a poster around a table.
func (t *Transform) PanBy(dx, dy float64) Matrix {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.panX += dx
	t.panY += dy
	return Matrix{Zoom: t.zoom, PanX: t.panX, PanY: t.panY}
}

// Reset restores the identity transform (zoom 1, no pan)
func (t *Transform) Reset() Matrix {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.zoom = 1
	t.panX = 0
	t.panY = 0
	t.pinch = nil
	logger.Debug("viewport reset")
	return Matrix{Zoom: 1}
}

// BeginPan marks a pan gesture as active. While active, turn-triggering
// input from the same gesture must be suppressed by the caller; the two are
// mutually exclusive.
func (t *Transform) BeginPan() {
	t.mu.Lock()
	t.panActive = true
	t.mu.Unlock()
}

// EndPan clears the active pan gesture
func (t *Transform) EndPan() {
	t.mu.Lock()
	t.panActive = false
	t.mu.Unlock()
}

// PanActive reports whether a pan gesture is in progress
func (t *Transform) PanActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.panActive
}

// BeginPinch starts a two-finger pinch: dist is the distance between the
// contact points, (centerX, centerY) their midpoint in viewport pixels.
// A pinch is also a pan gesture for input-exclusivity purposes.
func (t *Transform) BeginPinch(dist, centerX, centerY float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if dist <= 0 {
		dist = 1
	}
	t.pinch = &pinchState{
		startZoom: t.zoom,
		startDist: dist,
		lastX:     centerX,
		lastY:     centerY,
	}
	t.panActive = true
}

// UpdatePinch applies a pinch movement. The zoom follows the distance ratio
// against the gesture start, and the pan combines two independent terms: the
// translation of the finger midpoint, and the re-centering needed to keep
// the content point under the midpoint visually fixed while the zoom
// changes. The terms are computed separately so they cannot fight.
func (t *Transform) UpdatePinch(dist, centerX, centerY float64) Matrix {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pinch == nil {
		return Matrix{Zoom: t.zoom, PanX: t.panX, PanY: t.panY}
	}
	if dist <= 0 {
		dist = t.pinch.startDist
	}

	newZoom := t.clamp(t.pinch.startZoom * (dist / t.pinch.startDist))

	// Zoom-anchored term: the content point currently under the gesture
	// center stays at the center across the zoom change.
	if newZoom != t.zoom {
		contentX := (centerX - t.panX) / t.zoom
		contentY := (centerY - t.panY) / t.zoom
		t.panX = centerX - contentX*newZoom
		t.panY = centerY - contentY*newZoom
		t.zoom = newZoom
	}

	// Finger-center translation term.
	t.panX += centerX - t.pinch.lastX
	t.panY += centerY - t.pinch.lastY
	t.pinch.lastX = centerX
	t.pinch.lastY = centerY

	return Matrix{Zoom: t.zoom, PanX: t.panX, PanY: t.panY}
}

// EndPinch finishes the pinch gesture
func (t *Transform) EndPinch() {
	t.mu.Lock()
	t.pinch = nil
	t.panActive = false
	t.mu.Unlock()
}

// clamp bounds a zoom value into [minZoom, maxZoom]
func (t *Transform) clamp(zoom float64) float64 {
	if zoom < t.minZoom {
		return t.minZoom
	}
	if zoom > t.maxZoom {
		return t.maxZoom
	}
	return zoom
}
