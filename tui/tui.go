package tui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/editor"
	"github.com/user/showcut-cli/playback"
	"github.com/user/showcut-cli/timeline"
	"github.com/user/showcut-cli/tui/components"
	"github.com/user/showcut-cli/tui/layout"
	"github.com/user/showcut-cli/tui/styles"
)

const (
	// frameInterval is the visual refresh cadence for the playhead.
	frameInterval = 50 * time.Millisecond
	// statusInterval is the slower cadence for the visible time and play state.
	statusInterval = 250 * time.Millisecond
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second
	// scrollStep is how far [ and ] move the timeline, in cells.
	scrollStep = 10.0
	// cellWidthPx is the nominal width of a terminal cell, so the snap
	// distance on the strip matches a pixel timeline.
	cellWidthPx = 8.0
)

// frameMsg carries one direct clock reading for the playhead.
type frameMsg playback.Frame

// statusTickMsg drives the slow status refresh.
type statusTickMsg time.Time

// autosaveTickMsg drives periodic library snapshots.
type autosaveTickMsg time.Time

// clearResultMsg clears the result line if it has not been replaced since.
type clearResultMsg struct{ seq int }

// Options configures a Model.
type Options struct {
	// DB is the project library; nil disables library writes
	DB *sql.DB
	// Logger receives TUI logs. The terminal belongs to the TUI, so this
	// should write to a file.
	Logger *log.Logger
	// Autosave is the snapshot interval; 0 disables autosave
	Autosave time.Duration
}

// Model is the Bubbletea model for the cue editor.
type Model struct {
	session *editor.Session
	clock   playback.Clock
	db      *sql.DB
	logger  *log.Logger

	autosave time.Duration

	width  int
	height int

	// playhead is the last frame reading; it only drives drawing
	playhead float64
	status   components.StatusBarState
	viewport timeline.Viewport
	dragging bool

	focus  FocusTarget
	dialog dialog

	result    string
	resultErr bool
	resultSeq int

	export       components.ExportProgressState
	exportCh     <-chan tea.Msg
	exportCancel context.CancelFunc

	quitting     bool
	titleChanged bool
}

// NewModel creates a model editing the session's document.
func NewModel(session *editor.Session, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	m := &Model{
		session:  session,
		clock:    session.Synchronizer().Clock(),
		db:       opts.DB,
		logger:   logger,
		autosave: opts.Autosave,
		viewport: timeline.Viewport{Zoom: timeline.MinZoom, CellPx: cellWidthPx},
	}
	m.status.Zoom = timeline.MinZoom
	m.status.Connected = true
	session.OnTitleChange(func(title string) {
		m.status.Title = title
		m.titleChanged = true
	})
	return m
}

// Init starts the status and autosave tickers.
func (m *Model) Init() tea.Cmd {
	m.titleChanged = false
	return tea.Batch(statusTickCmd(), m.autosaveCmd(), tea.SetWindowTitle(m.session.Title()))
}

func statusTickCmd() tea.Cmd {
	return tea.Tick(statusInterval, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

func (m *Model) autosaveCmd() tea.Cmd {
	if m.autosave <= 0 || m.db == nil {
		return nil
	}
	return tea.Tick(m.autosave, func(t time.Time) tea.Msg {
		return autosaveTickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if m.titleChanged {
		m.titleChanged = false
		cmd = tea.Batch(cmd, tea.SetWindowTitle(m.status.Title))
	}
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.WidthPx = float64(components.BarWidth(m.width))
		m.viewport = m.viewport.WithScroll(m.viewport.ScrollPx)
		m.revealTime(m.playhead)
		return m, m.forwardToDialog(msg)

	case frameMsg:
		m.applyFrame(playback.Frame(msg))
		return m, nil

	case statusTickMsg:
		m.refreshStatus()
		return m, statusTickCmd()

	case autosaveTickMsg:
		m.autosaveSnapshot()
		return m, m.autosaveCmd()

	case clearResultMsg:
		if msg.seq == m.resultSeq {
			m.result = ""
			m.resultErr = false
			if m.export.Done {
				m.export = components.ExportProgressState{}
			}
		}
		return m, nil

	case exportProgressMsg, exportDoneMsg:
		return m, m.handleExportMsg(msg)

	case tea.MouseMsg:
		if m.focus != FocusEditor {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.focus {
		case FocusHelp:
			m.focus = FocusEditor
			return m, nil
		case FocusForm:
			return m, m.handleDialogKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, m.forwardToDialog(msg)
}

// handleKey is normal-mode key handling.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// playback keys and live cuts go through the session's own key map
	if handled, err := m.session.HandleKey(editor.Key(key), false); handled {
		m.syncPlayhead()
		if err != nil {
			return m, m.setError(err)
		}
		return m, nil
	}

	switch key {
	case "?":
		m.focus = FocusHelp
		return m, nil
	case "q", "ctrl+c":
		if m.session.Dirty() {
			return m, m.openDialog(dialogQuit)
		}
		return m.quit()
	case "a":
		r, err := m.session.AddCueAtPlayhead()
		return m, m.reportEdit("Added cue", r, err)
	case "x", "delete":
		if m.session.SelectedID() == "" {
			return m, m.setResult("Select a cue to delete")
		}
		r, err := m.session.DeleteSelected()
		if err == nil && !r.Changed() {
			return m, m.setResult("The last cue cannot be deleted")
		}
		return m, m.reportEdit("Deleted cue", r, err)
	case "w":
		r, err := m.session.ToggleSelectedColor()
		return m, m.reportEdit("Label colour toggled", r, err)
	case "e":
		return m, m.openDialog(dialogDescription)
	case "c":
		return m, m.openDialog(dialogCamera)
	case "t":
		return m, m.openDialog(dialogMetadata)
	case "j", "down":
		m.session.SelectNext()
		m.revealSelected()
		return m, nil
	case "k", "up":
		m.session.SelectPrev()
		m.revealSelected()
		return m, nil
	case "esc":
		m.session.ClearSelection()
		return m, nil
	case "enter":
		c, ok := m.session.Selected()
		if !ok {
			return m, nil
		}
		if _, err := m.session.Synchronizer().Scrub(c.StartTime); err != nil {
			return m, m.setError(err)
		}
		m.syncPlayhead()
		return m, nil
	case "+", "=":
		m.setZoom(m.viewport.Zoom + 1)
		return m, nil
	case "-", "_":
		m.setZoom(m.viewport.Zoom - 1)
		return m, nil
	case "[":
		m.viewport = m.viewport.WithScroll(m.viewport.ScrollPx - scrollStep)
		return m, nil
	case "]":
		m.viewport = m.viewport.WithScroll(m.viewport.ScrollPx + scrollStep)
		return m, nil
	case "ctrl+s":
		path, err := m.save()
		if err != nil {
			return m, m.setError(err)
		}
		return m, m.setResult("Saved " + path)
	case "E":
		path, err := m.exportEDL()
		if err != nil {
			return m, m.setError(err)
		}
		return m, m.setResult("EDL written to " + path)
	case "X":
		return m, m.startClipExport()
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.exportCancel != nil {
		m.exportCancel()
	}
	m.quitting = true
	return m, tea.Quit
}

// reportEdit turns an edit outcome into a result line.
func (m *Model) reportEdit(done string, r cue.Result, err error) tea.Cmd {
	if err != nil {
		return m.setError(err)
	}
	if !r.Changed() {
		return nil
	}
	return m.setResult(done)
}

// applyFrame moves the drawn playhead to a direct clock reading and keeps
// it on screen while playing.
func (m *Model) applyFrame(f playback.Frame) {
	m.playhead = f.Time
	m.status.Playing = f.Playing
	m.status.Connected = true
	if f.Playing {
		m.revealTime(f.Time)
	}
}

// refreshStatus is the slow tick: visible time, play state, and the media
// duration once it becomes available.
func (m *Model) refreshStatus() {
	sync := m.session.Synchronizer()
	m.status.Time = sync.Refresh()

	paused, err := m.clock.Paused()
	m.status.Connected = err == nil
	if err == nil {
		m.status.Playing = !paused
	}

	if m.session.Duration() <= 0 && m.session.Document() != nil {
		if d, err := m.clock.Duration(); err == nil && d > 0 {
			if err := m.session.MediaLoaded(d); err != nil {
				m.logger.Error("media load failed", "err", err)
			} else if err := m.session.Check(); err != nil {
				// stays on the result line until something replaces it
				m.logger.Error("cue list is inconsistent", "err", err)
				m.result = err.Error()
				m.resultErr = true
			}
		}
	}
	m.status.Duration = m.session.Duration()
	m.status.Dirty = m.session.Dirty()
}

// syncPlayhead copies the synchronizer's visible time to the drawn playhead
// after a seek or an edit.
func (m *Model) syncPlayhead() {
	t := m.session.Synchronizer().Visible()
	m.playhead = t
	m.status.Time = t
	m.status.Dirty = m.session.Dirty()
	m.revealTime(t)
}

func (m *Model) revealTime(t float64) {
	d := m.session.Duration()
	if d <= 0 || m.viewport.WidthPx <= 0 {
		return
	}
	m.viewport = m.viewport.ScrollToReveal(timeline.PositionPx(t, m.viewport, d))
}

func (m *Model) revealSelected() {
	if c, ok := m.session.Selected(); ok {
		m.revealTime(c.StartTime)
	}
}

// setZoom changes the zoom factor while keeping the playhead in view.
func (m *Model) setZoom(z float64) {
	m.viewport = m.viewport.WithZoom(z)
	m.status.Zoom = m.viewport.Zoom
	m.revealTime(m.playhead)
}

// handleMouse scrubs when the left button is pressed or dragged over the
// timeline strip. The wheel scrolls the strip.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport = m.viewport.WithScroll(m.viewport.ScrollPx - scrollStep)
		return nil
	case tea.MouseButtonWheelDown:
		m.viewport = m.viewport.WithScroll(m.viewport.ScrollPx + scrollStep)
		return nil
	}

	switch msg.Action {
	case tea.MouseActionRelease:
		m.dragging = false
		return nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		x, ok := m.stripCell(msg.X, msg.Y)
		if !ok {
			return nil
		}
		m.dragging = true
		return m.scrubTo(x)
	case tea.MouseActionMotion:
		if !m.dragging {
			return nil
		}
		// keep scrubbing while dragging past the strip's ends
		return m.scrubTo(m.clampCell(msg.X))
	}
	return nil
}

func (m *Model) scrubTo(cell int) tea.Cmd {
	// aim at the middle of the cell, which is where the strip samples it
	if _, err := m.session.Scrub(float64(cell)+0.5, m.viewport); err != nil {
		if errors.Is(err, playback.ErrNoMedia) {
			return nil
		}
		return m.setError(err)
	}
	m.syncPlayhead()
	return nil
}

// setResult shows a message on the result line for resultDisplayDuration.
func (m *Model) setResult(s string) tea.Cmd {
	m.result = s
	m.resultErr = false
	return m.clearResultLater()
}

// setError shows err on the result line and logs it.
func (m *Model) setError(err error) tea.Cmd {
	m.logger.Warn("command failed", "err", err)
	m.result = err.Error()
	m.resultErr = true
	return m.clearResultLater()
}

func (m *Model) clearResultLater() tea.Cmd {
	m.resultSeq++
	seq := m.resultSeq
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{seq: seq}
	})
}

// forwardToDialog passes msg to the open huh form, if any.
func (m *Model) forwardToDialog(msg tea.Msg) tea.Cmd {
	if m.focus != FocusForm || m.dialog.form == nil {
		return nil
	}
	return m.updateDialog(msg)
}

// Run starts the editor. A playback.Refresher feeds frame readings into the
// program at frameInterval.
func Run(session *editor.Session, opts Options) error {
	model := NewModel(session, opts)
	model.refreshStatus()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	refresher := playback.NewRefresher(model.clock)
	refresher.Start(context.Background(), frameInterval, func(f playback.Frame) {
		p.Send(frameMsg(f))
	})
	defer refresher.Stop()

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.width < layout.MinTerminalWidth {
		warningStyle := lipgloss.NewStyle().
			Foreground(styles.Pink).
			Bold(true)
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Italic(true)
		return warningStyle.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth))
	}

	if m.focus == FocusHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	s := m.geometry()
	statusBar := components.StatusBar(m.status, m.width)

	var columns string
	switch {
	case m.focus == FocusForm:
		columns = m.renderDialog(m.width, s.colHeight)
	case s.showSide:
		columns = layout.JoinColumns(
			[]string{m.renderCueColumn(s.listWidth, s.colHeight), m.renderSideColumn(s.sideWidth, s.colHeight)},
			[]int{s.listWidth, s.sideWidth},
			s.colHeight,
		)
	default:
		columns = layout.Container{Width: m.width, Height: s.colHeight}.Render(m.renderCueColumn(m.width, s.colHeight))
	}

	strip := components.Timeline(components.StripState{
		Cues:       m.session.Cues(),
		Duration:   m.session.Duration(),
		Time:       m.playhead,
		Viewport:   m.viewport,
		SelectedID: m.session.SelectedID(),
	}, m.width)

	return statusBar + "\n" + columns + "\n" + strip + "\n" + m.renderResultLine(m.width, s.showSide)
}
