package tui

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/db"
	"github.com/user/showcut-cli/editor"
	"github.com/user/showcut-cli/playback"
	"github.com/user/showcut-cli/project"
	"github.com/user/showcut-cli/tui/components"
)

const (
	testWidth  = 120
	testHeight = 30
)

type fixture struct {
	clock *playback.ManualClock
	model *Model
	path  string
}

// newFixture opens an empty document over a frozen 10 second clock and
// lets the model pick up the media duration.
func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	frozen := time.Unix(0, 0)
	f := &fixture{
		clock: playback.NewManualClock(10, func() time.Time { return frozen }),
		path:  filepath.Join(t.TempDir(), "show"+project.Extension),
	}
	session := editor.New(playback.NewSynchronizer(f.clock, 25),
		editor.WithIDGenerator(&cue.SequenceGenerator{}),
		editor.WithLogger(log.New(io.Discard)),
	)
	session.Open(project.New("/v/show.mp4"), f.path)

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	f.model = NewModel(session, opts)
	f.model.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	f.model.Update(statusTickMsg(frozen))
	return f
}

func (f *fixture) at(t *testing.T, pos float64, playing bool) {
	t.Helper()
	if err := f.clock.SetPaused(!playing); err != nil {
		t.Fatal(err)
	}
	if err := f.clock.Seek(pos); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.model.Update(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (f *fixture) cues() []cue.Cue {
	return f.model.session.Cues()
}

func TestStatusTick_LoadsMedia(t *testing.T) {
	f := newFixture(t, Options{})
	if got := f.model.session.Duration(); got != 10 {
		t.Fatalf("duration = %g, want 10", got)
	}
	if len(f.cues()) != 1 {
		t.Fatalf("cues = %+v, want the seeded cue", f.cues())
	}
	if !f.model.status.Dirty || !f.model.status.Connected {
		t.Errorf("status = %+v", f.model.status)
	}
}

func TestKeys_LiveCutAndAdd(t *testing.T) {
	f := newFixture(t, Options{})

	f.at(t, 4, true)
	f.press("2")
	cues := f.cues()
	if len(cues) != 2 || cues[1].StartTime != 4 || cues[1].Camera != 2 {
		t.Fatalf("after cut: %+v", cues)
	}
	if f.model.session.SelectedID() != cues[1].ID {
		t.Errorf("live cut while playing should select the new cue")
	}
	if f.model.playhead != 4 {
		t.Errorf("playhead = %g, want 4", f.model.playhead)
	}

	f.at(t, 6, false)
	f.press("a")
	cues = f.cues()
	if len(cues) != 3 || cues[2].StartTime != 6 || cues[2].Description != "New Cue" {
		t.Fatalf("after add: %+v", cues)
	}
	if f.model.result != "Added cue" {
		t.Errorf("result = %q", f.model.result)
	}
}

func TestKeys_DeleteNeedsSelection(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("x")
	if f.model.result != "Select a cue to delete" {
		t.Fatalf("result = %q", f.model.result)
	}

	f.press("j", "x")
	if len(f.cues()) != 1 {
		t.Fatalf("last cue must survive, got %+v", f.cues())
	}
	if f.model.result != "The last cue cannot be deleted" {
		t.Errorf("result = %q", f.model.result)
	}
}

func TestKeys_SelectAndToggleColor(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("j", "w")
	if got := f.cues()[0].Color; got != cue.White {
		t.Fatalf("color = %q, want white", got)
	}
	f.press("esc")
	if f.model.session.SelectedID() != "" {
		t.Errorf("esc should clear the selection")
	}
}

func TestKeys_Transport(t *testing.T) {
	f := newFixture(t, Options{})
	f.press(" ")
	paused, _ := f.clock.Paused()
	if paused {
		t.Fatalf("space should start playback")
	}
	f.at(t, 2, false)
	f.press("right")
	if pos, _ := f.clock.Position(); math.Abs(pos-2.04) > 1e-9 {
		t.Errorf("frame step = %g, want 2.04", pos)
	}
}

func TestZoomAndScroll(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("+", "+")
	if f.model.viewport.Zoom != 3 || f.model.status.Zoom != 3 {
		t.Fatalf("zoom = %g", f.model.viewport.Zoom)
	}
	f.press("]")
	if f.model.viewport.ScrollPx != scrollStep {
		t.Fatalf("scroll = %g", f.model.viewport.ScrollPx)
	}
	f.press("-", "-", "-")
	if f.model.viewport.Zoom != 1 || f.model.viewport.ScrollPx != 0 {
		t.Errorf("zoom out should clamp: %+v", f.model.viewport)
	}
}

func TestMouse_ScrubSnapsAndDrags(t *testing.T) {
	f := newFixture(t, Options{})
	f.at(t, 4, true)
	f.press("2")
	f.at(t, 0, false)

	// 116 cells over 10s with a 15px snap: about 0.16s, under two cells.
	// Cell 50 is about 4.35s and stays put, cell 46 is about 4.01s and snaps.
	y := f.model.geometry().stripTop + 2
	f.model.Update(tea.MouseMsg{X: components.StripBarOffset + 50, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.model.Update(tea.MouseMsg{X: components.StripBarOffset + 50, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if pos, _ := f.clock.Position(); math.Abs(pos-50.5/116*10) > 1e-9 {
		t.Fatalf("press at cell 50 scrubbed to %g, want %g unsnapped", pos, 50.5/116*10)
	}

	f.model.Update(tea.MouseMsg{X: components.StripBarOffset + 46, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if pos, _ := f.clock.Position(); pos != 4 {
		t.Fatalf("press at cell 46 scrubbed to %g, want 4", pos)
	}

	f.model.Update(tea.MouseMsg{X: 500, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if pos, _ := f.clock.Position(); pos != 10 {
		t.Fatalf("drag past the end scrubbed to %g, want 10", pos)
	}

	f.model.Update(tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	f.model.Update(tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if pos, _ := f.clock.Position(); pos != 10 {
		t.Errorf("motion after release should not scrub, at %g", pos)
	}

	// clicks outside the strip are ignored
	f.model.Update(tea.MouseMsg{X: 10, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if pos, _ := f.clock.Position(); pos != 10 {
		t.Errorf("click outside the strip scrubbed to %g", pos)
	}
}

func TestStatusTick_ReportsDuplicateIDs(t *testing.T) {
	frozen := time.Unix(0, 0)
	clock := playback.NewManualClock(10, func() time.Time { return frozen })
	session := editor.New(playback.NewSynchronizer(clock, 25),
		editor.WithIDGenerator(&cue.SequenceGenerator{}),
		editor.WithLogger(log.New(io.Discard)),
		editor.WithChecks(true),
	)
	doc := project.New("/v/show.mp4")
	doc.Cues = []cue.Cue{
		{ID: "dup", StartTime: 0, EndTime: 5, Camera: 1},
		{ID: "dup", StartTime: 5, EndTime: 10, Camera: 2},
	}
	session.Open(doc, filepath.Join(t.TempDir(), "show"+project.Extension))

	m := NewModel(session, Options{Logger: log.New(io.Discard)})
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	m.Update(statusTickMsg(frozen))

	if !m.resultErr || !strings.Contains(m.result, "unique ids") {
		t.Fatalf("result = %q (err %v), want the duplicate id reported", m.result, m.resultErr)
	}

	// edits on the broken list are refused, not applied to the first match
	clock.SetPaused(false)
	clock.Seek(7)
	m.Update(keyMsg("3"))
	if len(session.Cues()) != 2 || session.Cues()[1].Camera != 2 {
		t.Errorf("cut was applied to a list with duplicate ids: %+v", session.Cues())
	}
	if !m.resultErr {
		t.Errorf("refused cut should show an error")
	}
}

func TestSave_WritesProjectAndLibrary(t *testing.T) {
	library, err := db.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	defer library.Close()

	f := newFixture(t, Options{DB: library})
	f.press("ctrl+s")
	if f.model.resultErr {
		t.Fatalf("save failed: %s", f.model.result)
	}
	if f.model.session.Dirty() || f.model.status.Dirty {
		t.Errorf("save should clear the dirty flag")
	}

	doc, err := project.Load(f.path, &cue.SequenceGenerator{})
	if err != nil {
		t.Fatalf("load saved project: %v", err)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].EndTime != 10 {
		t.Errorf("saved cues = %+v", doc.Cues)
	}

	p, err := db.GetProject(library, f.path)
	if err != nil {
		t.Fatalf("library entry: %v", err)
	}
	if p.CueCount != 1 || p.Duration != 10 || p.SavedAt == nil {
		t.Errorf("library project = %+v", p)
	}
}

func TestAutosave_OnlyWhenDirty(t *testing.T) {
	library, err := db.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	defer library.Close()

	f := newFixture(t, Options{DB: library, Autosave: time.Minute})
	_, cmd := f.model.Update(autosaveTickMsg(time.Now()))
	if cmd == nil {
		t.Errorf("autosave should reschedule itself")
	}
	snap, err := db.LatestSnapshot(library, f.path)
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if snap.Reason != db.ReasonAutosave {
		t.Errorf("reason = %q", snap.Reason)
	}
	if _, err := os.Stat(f.path); !os.IsNotExist(err) {
		t.Errorf("autosave must not write the project file")
	}

	f.press("ctrl+s")
	f.model.Update(autosaveTickMsg(time.Now()))
	snap, err = db.LatestSnapshot(library, f.path)
	if err != nil {
		t.Fatalf("latest snapshot: %v", err)
	}
	if snap.Reason != db.ReasonSave {
		t.Errorf("a clean document should not be autosaved, latest reason = %q", snap.Reason)
	}
}

func TestExportEDL_NextToProject(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("E")
	if f.model.resultErr {
		t.Fatalf("export failed: %s", f.model.result)
	}
	data, err := os.ReadFile(strings.TrimSuffix(f.path, project.Extension) + ".edl")
	if err != nil {
		t.Fatalf("read edl: %v", err)
	}
	if !strings.Contains(string(data), "TITLE:") {
		t.Errorf("edl = %q", data)
	}
}

func TestQuit_ConfirmsWhenDirty(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("q")
	if f.model.focus != FocusForm || f.model.dialog.kind != dialogQuit {
		t.Fatalf("dirty quit should ask first, focus = %v", f.model.focus)
	}
	f.press("esc")
	if f.model.focus != FocusEditor || f.model.quitting {
		t.Fatalf("esc should cancel the quit")
	}

	f.press("ctrl+s")
	cmd := f.press("q")
	if cmd == nil {
		t.Fatalf("clean quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("clean quit should quit immediately")
	}
}

func TestDialogs_CameraAndDescription(t *testing.T) {
	f := newFixture(t, Options{})

	f.press("c")
	if f.model.focus == FocusForm {
		t.Fatalf("camera form needs a selection")
	}

	f.press("j", "c")
	if f.model.focus != FocusForm || f.model.dialog.kind != dialogCamera {
		t.Fatalf("camera form not opened")
	}
	d := f.model.dialog
	d.camera = 17
	f.model.closeDialog()
	f.model.submitDialog(d)
	if got := f.cues()[0].Camera; got != 17 {
		t.Fatalf("camera = %d, want 17", got)
	}

	f.press("e")
	d = f.model.dialog
	if d.desc != "Start Cue" {
		t.Errorf("description form should start with the current text, got %q", d.desc)
	}
	d.desc = "  wide shot  "
	f.model.closeDialog()
	f.model.submitDialog(d)
	if got := f.cues()[0].Description; got != "wide shot" {
		t.Errorf("description = %q", got)
	}
}

func TestDialogs_Metadata(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("t")
	d := f.model.dialog
	d.meta.Title = "Dress"
	d.meta.Num = "4"
	f.model.closeDialog()
	f.model.submitDialog(d)

	if got := f.model.session.Title(); got != "[4] Dress" {
		t.Errorf("title = %q", got)
	}
	if got := f.model.status.Title; got != "[4] Dress" {
		t.Errorf("status title = %q", got)
	}

	d.meta.Num = "four"
	f.model.submitDialog(d)
	if !f.model.resultErr {
		t.Errorf("a non-numeric roll number should be rejected")
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("?")
	if f.model.focus != FocusHelp {
		t.Fatalf("help not shown")
	}
	if !strings.Contains(f.model.View(), "Keybindings") {
		t.Errorf("help view missing title")
	}
	f.press("2")
	if f.model.focus != FocusEditor || len(f.cues()) != 1 {
		t.Errorf("the closing key must not reach the editor")
	}
}

func TestClearResult_OnlyLatest(t *testing.T) {
	f := newFixture(t, Options{})
	f.model.setResult("first")
	stale := f.model.resultSeq
	f.model.setResult("second")

	f.model.Update(clearResultMsg{seq: stale})
	if f.model.result != "second" {
		t.Fatalf("stale clear removed %q", f.model.result)
	}
	f.model.Update(clearResultMsg{seq: f.model.resultSeq})
	if f.model.result != "" {
		t.Errorf("result not cleared")
	}
}

func TestFrame_FollowsPlayhead(t *testing.T) {
	f := newFixture(t, Options{})
	f.press("+", "+", "+", "+")
	f.model.Update(frameMsg{Time: 9.5, Playing: true})
	if f.model.playhead != 9.5 || !f.model.status.Playing {
		t.Fatalf("frame not applied: %g %v", f.model.playhead, f.model.status.Playing)
	}
	if f.model.viewport.ScrollPx == 0 {
		t.Errorf("playing near the end of a zoomed strip should scroll it")
	}
}

func TestView_Layout(t *testing.T) {
	f := newFixture(t, Options{})
	view := f.model.View()
	lines := strings.Split(view, "\n")
	if len(lines) != testHeight {
		t.Fatalf("view has %d lines, want %d", len(lines), testHeight)
	}
	for _, want := range []string{"Timeline", "Start Cue", "Untitled Cue", "00:00:10.000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	f.model.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if !strings.Contains(f.model.View(), "too narrow") {
		t.Errorf("narrow terminal should warn")
	}
}
