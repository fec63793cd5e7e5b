package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/timeline"
)

var testCues = []cue.Cue{
	{ID: "a", StartTime: 0, EndTime: 4, Camera: 1, Description: "Start Cue", Color: cue.Black},
	{ID: "b", StartTime: 4, EndTime: 10, Camera: 3, Description: "Cut to 3", Color: cue.White},
}

func TestBarWidth(t *testing.T) {
	if got := BarWidth(120); got != 116 {
		t.Errorf("BarWidth(120) = %d", got)
	}
	if got := BarWidth(StripMinWidth - 1); got != 0 {
		t.Errorf("narrow strip should have no cells, got %d", got)
	}
}

func TestTimeline_Shape(t *testing.T) {
	out := Timeline(StripState{
		Cues:     testCues,
		Duration: 10,
		Time:     5,
		Viewport: timeline.Viewport{Zoom: 1},
	}, 60)

	lines := strings.Split(out, "\n")
	if len(lines) != StripHeight {
		t.Fatalf("strip has %d lines, want %d", len(lines), StripHeight)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d, want 60", i, w)
		}
	}

	plain := ansi.Strip(out)
	for _, want := range []string{"Timeline", "0:00", "1 Start Cue", "3 Cut to 3", "▲"} {
		if !strings.Contains(plain, want) {
			t.Errorf("strip missing %q:\n%s", want, plain)
		}
	}
}

func TestTimeline_PlayheadColumn(t *testing.T) {
	// 56 cells over 10s: t=5 lands in cell 28
	out := ansi.Strip(Timeline(StripState{Cues: testCues, Duration: 10, Time: 5, Viewport: timeline.Viewport{Zoom: 1}}, 60))
	row := []rune(strings.Split(out, "\n")[4])
	if got := string(row[StripBarOffset+28]); got != "▲" {
		t.Errorf("playhead at cell 28 = %q, row %q", got, string(row))
	}
}

func TestTimeline_NoMedia(t *testing.T) {
	out := ansi.Strip(Timeline(StripState{Viewport: timeline.Viewport{Zoom: 1}}, 40))
	if strings.Contains(out, "▲") {
		t.Errorf("no playhead without media")
	}
	if !strings.Contains(out, "···") {
		t.Errorf("empty strip should be dotted:\n%s", out)
	}
}

func TestCueList_RowsAndMarkers(t *testing.T) {
	out := ansi.Strip(CueList(CueListState{Cues: testCues, ActiveID: "b", SelectedID: "a"}, 60, 6))
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("list has %d lines, want 6", len(lines))
	}
	if !strings.Contains(lines[0], "Description") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "▸ 0:00") || !strings.Contains(lines[1], ":04") {
		t.Errorf("selected row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Cut to 3") || !strings.Contains(lines[2], ":06") {
		t.Errorf("second row = %q", lines[2])
	}
}

func TestCueList_Empty(t *testing.T) {
	out := ansi.Strip(CueList(CueListState{}, 60, 4))
	if !strings.Contains(out, "No cues yet") {
		t.Errorf("empty list = %q", out)
	}
}

func TestCueDetail(t *testing.T) {
	out := ansi.Strip(CueDetail(testCues[1], true, 40))
	for _, want := range []string{"00:00:04.000", "00:00:10.000", "6.000s", "white", "Cut to 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(ansi.Strip(CueDetail(cue.Cue{}, false, 40)), "Nothing selected") {
		t.Errorf("empty detail should say nothing is selected")
	}
}

func TestStatusBar(t *testing.T) {
	out := ansi.Strip(StatusBar(StatusBarState{
		Playing:   true,
		Connected: true,
		Time:      61.25,
		Duration:  600,
		Title:     "[3] Dress",
		Dirty:     true,
		Zoom:      2,
	}, 80))
	for _, want := range []string{"▶", "00:01:01.250", "00:10:00.000", "[3] Dress ●", "x2"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q: %q", want, out)
		}
	}
	if w := lipgloss.Width(out); w != 80 {
		t.Errorf("width = %d", w)
	}
}

func TestExportProgress(t *testing.T) {
	if ExportProgress(ExportProgressState{}, 40) != "" {
		t.Errorf("inactive export should render nothing")
	}
	out := ansi.Strip(ExportProgress(ExportProgressState{Active: true, Total: 4, Completed: 2, Errors: 1, CurrentFile: "CAM01/001.mp4"}, 40))
	for _, want := range []string{" 50%", "2/4 clips", "1 errors", "CAM01/001.mp4"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress missing %q:\n%s", want, out)
		}
	}
}

func TestRenderInfoBox_Width(t *testing.T) {
	out := RenderInfoBox("Cue", []string{"a line that is far too long for the box"}, 20)
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d width = %d", i, w)
		}
	}
}
