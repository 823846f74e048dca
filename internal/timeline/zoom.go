package timeline

import (
	"sync"
	"time"
)

const (
	ZoomMin  = 0.5
	ZoomMax  = 3.0
	ZoomStep = 0.1

	controlsHideDelay = 3 * time.Second
)

// Zoom holds the continuous scale factor of one chart instance. The
// level only changes through explicit gestures and is never reset; the
// zoom controls become visible on any change and hide again after three
// seconds without gestures.
type Zoom struct {
	mu      sync.Mutex
	level   float64
	visible bool
	hide    *time.Timer
	delay   time.Duration
}

func NewZoom() *Zoom {
	return &Zoom{level: 1.0, delay: controlsHideDelay}
}

// HandleScroll applies one scroll tick. Ticks without the platform zoom
// modifier key are ignored so plain scrolling still pans the chart.
// Returns whether the tick was consumed.
func (z *Zoom) HandleScroll(delta float64, zoomModifier bool) bool {
	if !zoomModifier || delta == 0 {
		return false
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	step := ZoomStep
	if delta < 0 {
		step = -ZoomStep
	}
	z.level = clampZoom(z.level + step)

	z.visible = true
	// Each gesture replaces the pending hide timer; a stale timer would
	// hide the controls mid-interaction.
	if z.hide != nil {
		z.hide.Stop()
	}
	z.hide = time.AfterFunc(z.delay, func() {
		z.mu.Lock()
		z.visible = false
		z.mu.Unlock()
	})
	return true
}

func (z *Zoom) Level() float64 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.level
}

func (z *Zoom) ControlsVisible() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.visible
}

func clampZoom(level float64) float64 {
	if level < ZoomMin {
		return ZoomMin
	}
	if level > ZoomMax {
		return ZoomMax
	}
	return level
}
