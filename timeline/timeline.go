// Package timeline maps pointer positions on a zoomed, scrollable ruler to
// media time and snaps them onto cue boundaries.
package timeline

import (
	"math"

	"github.com/user/showcut-cli/cue"
)

const (
	// SnapThresholdPx is the on-screen distance within which a pointer
	// locks onto a cue boundary.
	SnapThresholdPx = 15.0
	// MinZoom and MaxZoom bound the zoom factor.
	MinZoom = 1.0
	MaxZoom = 20.0
)

// Viewport describes the visible part of the ruler.
// WidthPx is the visible width, Zoom multiplies it into the rendered content
// width and ScrollPx is the horizontal scroll offset into that content.
// CellPx is the on-screen size of one width unit when the ruler is laid out
// in coarser units than pixels, such as terminal cells; 0 means 1.
type Viewport struct {
	WidthPx  float64
	Zoom     float64
	ScrollPx float64
	CellPx   float64
}

// ContentWidth returns the total rendered width of the zoomed ruler.
func (v Viewport) ContentWidth() float64 {
	return v.WidthPx * v.zoom()
}

func (v Viewport) cellPx() float64 {
	if v.CellPx <= 0 {
		return 1
	}
	return v.CellPx
}

func (v Viewport) zoom() float64 {
	return clamp(v.Zoom, MinZoom, MaxZoom)
}

// WithZoom returns v with a new zoom factor, keeping the scroll offset valid.
func (v Viewport) WithZoom(z float64) Viewport {
	v.Zoom = clamp(z, MinZoom, MaxZoom)
	return v.WithScroll(v.ScrollPx)
}

// WithScroll returns v scrolled to px, clamped to the scrollable range.
func (v Viewport) WithScroll(px float64) Viewport {
	v.ScrollPx = clamp(px, 0, math.Max(0, v.ContentWidth()-v.WidthPx))
	return v
}

// ScrollToReveal scrolls the minimum amount needed to bring content
// position px into view.
func (v Viewport) ScrollToReveal(px float64) Viewport {
	switch {
	case px < v.ScrollPx:
		return v.WithScroll(px)
	case px >= v.ScrollPx+v.WidthPx:
		return v.WithScroll(px - v.WidthPx + 1)
	}
	return v
}

// RawTime converts a pointer offset x within the visible viewport into a
// media time in [0, d], without snapping.
func RawTime(x float64, v Viewport, d float64) float64 {
	content := v.ContentWidth()
	if content <= 0 || d <= 0 {
		return 0
	}
	offset := x + v.ScrollPx
	return clamp(offset/content*d, 0, d)
}

// Threshold converts SnapThresholdPx into seconds. It is proportional to the
// visible width in pixels (WidthPx * CellPx), not the zoomed content width.
func Threshold(v Viewport, d float64) float64 {
	if v.WidthPx <= 0 {
		return 0
	}
	return SnapThresholdPx / (v.WidthPx * v.cellPx()) * d
}

// Snap returns the cue boundary closest to raw when it is strictly closer
// than threshold, otherwise raw. Boundaries are tested in list order, start
// before end, so the first boundary at a given distance wins.
func Snap(raw, threshold float64, cues []cue.Cue) float64 {
	best := raw
	minDist := threshold
	for _, c := range cues {
		if dist := math.Abs(c.StartTime - raw); dist < minDist {
			minDist = dist
			best = c.StartTime
		}
		if dist := math.Abs(c.EndTime - raw); dist < minDist {
			minDist = dist
			best = c.EndTime
		}
	}
	return best
}

// ResolveTime maps pointer offset x to a media time, snapped to nearby cue
// boundaries. The result is always within [0, d].
func ResolveTime(x float64, v Viewport, d float64, cues []cue.Cue) float64 {
	if v.WidthPx <= 0 || d <= 0 {
		return 0
	}
	raw := RawTime(x, v, d)
	return clamp(Snap(raw, Threshold(v, d), cues), 0, d)
}

// PositionPx maps a media time to its offset within the zoomed content.
func PositionPx(t float64, v Viewport, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return clamp(t, 0, d) / d * v.ContentWidth()
}

// Markers returns ruler tick times. The interval shrinks as zoom grows and
// never drops below one second.
func Markers(d, zoom float64) []float64 {
	if d <= 0 {
		return nil
	}
	zoom = clamp(zoom, MinZoom, MaxZoom)
	interval := math.Max(1, math.Floor(d/15/zoom))
	var out []float64
	for t := 0.0; t <= d; t += interval {
		out = append(out, t)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
