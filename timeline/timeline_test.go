package timeline

import (
	"math"
	"testing"

	"github.com/user/showcut-cli/cue"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func halves() []cue.Cue {
	return []cue.Cue{
		{ID: "a", StartTime: 0, EndTime: 5, Camera: 1},
		{ID: "b", StartTime: 5, EndTime: 10, Camera: 2},
	}
}

func TestResolveTime_Snapping(t *testing.T) {
	// 15px on a 750px viewport over 10s is a 0.2s threshold.
	vp := Viewport{WidthPx: 750, Zoom: 1}
	if th := Threshold(vp, 10); !approx(th, 0.2) {
		t.Fatalf("threshold = %g, want 0.2", th)
	}

	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"snaps onto nearby boundary", 5.15, 5.0},
		{"outside threshold is left alone", 4.5, 4.5},
		{"snaps onto end of media", 9.9, 10},
		{"snaps onto start", 0.05, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := tt.raw / 10 * vp.ContentWidth()
			got := ResolveTime(x, vp, 10, halves())
			if !approx(got, tt.want) {
				t.Errorf("ResolveTime(raw %g) = %g, want %g", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSnap_FirstBoundaryWinsTies(t *testing.T) {
	cues := []cue.Cue{
		{ID: "a", StartTime: 0, EndTime: 4.75},
		{ID: "b", StartTime: 4.75, EndTime: 5.25},
		{ID: "c", StartTime: 5.25, EndTime: 10},
	}
	if got := Snap(5.0, 0.3, cues); got != 4.75 {
		t.Fatalf("Snap = %g, want 4.75", got)
	}
	if got := Snap(5.0, 0.25, cues); got != 5.0 {
		t.Fatalf("distance equal to threshold must not snap, got %g", got)
	}
}

func TestRawTime_ZoomAndScroll(t *testing.T) {
	vp := Viewport{WidthPx: 100, Zoom: 4, ScrollPx: 200}
	// content is 400px wide, pointer at 50 is offset 250 -> 62.5% of 80s
	if got := RawTime(50, vp, 80); !approx(got, 50) {
		t.Fatalf("RawTime = %g, want 50", got)
	}
	if got := RawTime(1000, vp, 80); got != 80 {
		t.Errorf("expected clamp to duration, got %g", got)
	}
	if got := RawTime(-500, vp, 80); got != 0 {
		t.Errorf("expected clamp to zero, got %g", got)
	}
}

func TestResolveTime_ThresholdUsesVisibleWidth(t *testing.T) {
	// At 10x zoom the content is 7500px but the threshold stays 0.2s.
	vp := Viewport{WidthPx: 750, Zoom: 10}
	if th := Threshold(vp, 10); !approx(th, 0.2) {
		t.Fatalf("threshold = %g, want 0.2", th)
	}
	x := 5.15 / 10 * vp.ContentWidth()
	vp = vp.WithScroll(x - 100)
	got := ResolveTime(100, vp, 10, halves())
	if !approx(got, 5.0) {
		t.Fatalf("got %g, want 5.0", got)
	}
}

func TestThreshold_Cells(t *testing.T) {
	// 116 cells of 8px: 15px is under two cells, about 1/62 of the width
	vp := Viewport{WidthPx: 116, Zoom: 1, CellPx: 8}
	want := 15.0 / 928 * 600
	if th := Threshold(vp, 600); !approx(th, want) {
		t.Fatalf("threshold = %g, want %g", th, want)
	}

	cues := []cue.Cue{
		{ID: "a", StartTime: 0, EndTime: 300, Camera: 1},
		{ID: "b", StartTime: 300, EndTime: 600, Camera: 2},
	}
	// 250s is about ten cells left of the cut
	x := 250.0 / 600 * 116
	if got := ResolveTime(x, vp, 600, cues); !approx(got, 250) {
		t.Errorf("click at 250s resolved to %g", got)
	}
	// one cell away still snaps
	x = 299.0 / 600 * 116
	if got := ResolveTime(x, vp, 600, cues); !approx(got, 300) {
		t.Errorf("click next to the cut resolved to %g, want 300", got)
	}
}

func TestResolveTime_Degenerate(t *testing.T) {
	if got := ResolveTime(10, Viewport{}, 10, halves()); got != 0 {
		t.Errorf("zero width viewport = %g", got)
	}
	if got := ResolveTime(10, Viewport{WidthPx: 100}, 0, nil); got != 0 {
		t.Errorf("zero duration = %g", got)
	}
}

func TestViewport(t *testing.T) {
	vp := Viewport{WidthPx: 100, Zoom: 50}
	if vp.ContentWidth() != 2000 {
		t.Fatalf("zoom should clamp to %g, content = %g", MaxZoom, vp.ContentWidth())
	}
	vp = vp.WithScroll(5000)
	if vp.ScrollPx != 1900 {
		t.Errorf("scroll = %g, want 1900", vp.ScrollPx)
	}
	vp = vp.WithZoom(1)
	if vp.ScrollPx != 0 {
		t.Errorf("scroll after unzoom = %g, want 0", vp.ScrollPx)
	}

	vp = Viewport{WidthPx: 100, Zoom: 4}
	vp = vp.ScrollToReveal(250)
	if vp.ScrollPx != 151 {
		t.Errorf("reveal scroll = %g, want 151", vp.ScrollPx)
	}
	if got := vp.ScrollToReveal(200); got.ScrollPx != 151 {
		t.Errorf("visible position should not scroll, got %g", got.ScrollPx)
	}
}

func TestPositionPx(t *testing.T) {
	vp := Viewport{WidthPx: 200, Zoom: 2}
	if got := PositionPx(5, vp, 10); got != 200 {
		t.Fatalf("PositionPx = %g, want 200", got)
	}
	if got := PositionPx(15, vp, 10); got != 400 {
		t.Errorf("PositionPx past end = %g, want 400", got)
	}
}

func TestMarkers(t *testing.T) {
	got := Markers(150, 1)
	if len(got) != 16 || got[1] != 10 || got[15] != 150 {
		t.Fatalf("Markers(150, 1) = %v", got)
	}
	got = Markers(150, 20)
	if got[1] != 1 {
		t.Errorf("interval at 20x should bottom out at 1s, got %g", got[1])
	}
	if Markers(0, 1) != nil {
		t.Errorf("no markers without duration")
	}
}
