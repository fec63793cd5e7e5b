// Package editor ties the cue list, the playback clock and the timeline
// together into one editing session.
//
// A Session is driven from a single goroutine (the TUI update loop or a CLI
// command). Every edit samples the playback clock exactly once, so the time
// an operation acts on is the time it was requested.
package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/playback"
	"github.com/user/showcut-cli/project"
	"github.com/user/showcut-cli/timeline"
)

// WaterfallLookback is how far behind the playhead, in seconds, a finished
// cue stays in the visible list.
const WaterfallLookback = 1.5

// ErrNoDocument is returned by edits attempted before a document is open.
var ErrNoDocument = errors.New("editor: no document open")

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator sets the generator used for new cue ids.
func WithIDGenerator(gen cue.IDGenerator) Option {
	return func(s *Session) { s.gen = gen }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithChecks makes every edit validate the resulting list before it is
// committed. Invalid results are rejected with the validation error.
func WithChecks(on bool) Option {
	return func(s *Session) { s.checks = on }
}

// Session is the editing state for one open document.
type Session struct {
	sync   *playback.Synchronizer
	gen    cue.IDGenerator
	logger *log.Logger
	checks bool

	doc      *cue.Document
	path     string
	duration float64
	selected string
	dirty    bool

	listeners []Listener
	title     titleState
}

// New creates a session with no document open.
func New(sync *playback.Synchronizer, opts ...Option) *Session {
	s := &Session{
		sync:   sync,
		gen:    cue.UUIDGenerator{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.title.set(welcomeTitle)
	return s
}

// Open makes doc the session's document. path is where it will be saved.
func (s *Session) Open(doc *cue.Document, path string) {
	s.doc = doc
	s.path = path
	s.selected = ""
	s.dirty = false
	s.duration = 0
	if doc.Framerate > 0 {
		s.sync.SetFramerate(doc.Framerate)
	}
	s.logger.Debug("document opened", "path", path, "cues", len(doc.Cues))
	s.refreshTitle()
}

// Close drops the current document.
func (s *Session) Close() {
	s.doc = nil
	s.path = ""
	s.selected = ""
	s.dirty = false
	s.duration = 0
	s.refreshTitle()
}

// Document returns the open document, or nil.
func (s *Session) Document() *cue.Document {
	return s.doc
}

// Cues returns the current cue list.
func (s *Session) Cues() []cue.Cue {
	if s.doc == nil {
		return nil
	}
	return s.doc.Cues
}

// Path returns the project file path.
func (s *Session) Path() string {
	return s.path
}

// SetPath changes where the document will be saved.
func (s *Session) SetPath(path string) {
	s.path = path
}

// Dirty reports whether there are unsaved changes.
func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag.
func (s *Session) MarkSaved() {
	s.dirty = false
}

// Duration returns the media duration, 0 until MediaLoaded.
func (s *Session) Duration() float64 {
	return s.duration
}

// Synchronizer returns the playback synchronizer.
func (s *Session) Synchronizer() *playback.Synchronizer {
	return s.sync
}

// MediaLoaded records the media duration once metadata is available. An
// empty document is seeded with a single cue spanning the whole media.
func (s *Session) MediaLoaded(d float64) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	s.duration = d
	s.sync.SetDuration(d)
	if len(s.doc.Cues) == 0 {
		s.doc.Cues = cue.Seed(s.doc.Cues, d, s.gen)
		if len(s.doc.Cues) > 0 {
			s.dirty = true
		}
	}
	s.selected = ""
	s.logger.Info("media loaded", "duration", d, "cues", len(s.doc.Cues))
	return nil
}

// SetMetadata changes the document title and roll number.
func (s *Session) SetMetadata(title string, num *int) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if title == "" {
		title = project.DefaultTitle
	}
	s.doc.Title = title
	s.doc.Num = num
	s.dirty = true
	s.refreshTitle()
	return nil
}

// Check validates the current cue list against the media duration.
func (s *Session) Check() error {
	if s.doc == nil || s.duration <= 0 {
		return nil
	}
	return cue.Validate(s.doc.Cues, s.duration)
}

// VisibleCues returns the cues still shown in the waterfall list at time t:
// everything that has not ended more than WaterfallLookback seconds ago.
func (s *Session) VisibleCues(t float64) []cue.Cue {
	var out []cue.Cue
	for _, c := range s.Cues() {
		if c.EndTime > t-WaterfallLookback {
			out = append(out, c)
		}
	}
	return out
}

// ActiveCue returns the cue containing t.
func (s *Session) ActiveCue(t float64) (cue.Cue, bool) {
	return cue.FindActiveCue(s.Cues(), t)
}

// Scrub maps a pixel column on the timeline to a snapped time and seeks
// there.
func (s *Session) Scrub(x float64, vp timeline.Viewport) (float64, error) {
	if s.duration <= 0 {
		return 0, playback.ErrNoMedia
	}
	t := timeline.ResolveTime(x, vp, s.duration, s.Cues())
	return s.sync.Scrub(t)
}

// ready returns an error when edits cannot be applied yet.
func (s *Session) ready() error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if s.duration <= 0 {
		return playback.ErrNoMedia
	}
	return nil
}

// apply commits an edit result and notifies listeners.
func (s *Session) apply(op Op, r cue.Result, at playback.Instant, camera int) (cue.Result, error) {
	if !r.Changed() {
		return r, nil
	}
	if s.checks {
		if err := cue.Validate(r.Cues, s.duration); err != nil {
			s.logger.Error("edit rejected", "op", op, "err", err)
			return cue.Result{Cues: s.doc.Cues, Kind: cue.NoChange}, fmt.Errorf("%s: %w", op, err)
		}
	}

	s.doc.Cues = r.Cues
	s.dirty = true
	if s.selected != "" && cue.IndexOf(r.Cues, s.selected) < 0 {
		s.selected = ""
	}

	e := Edit{
		Op:         op,
		Kind:       r.Kind,
		AffectedID: r.AffectedID,
		RemovedID:  r.RemovedID,
		Camera:     camera,
		At:         at,
	}
	s.logger.Debug("edit applied", "op", op, "kind", r.Kind, "cue", r.AffectedID, "t", at.Time)
	for _, l := range s.listeners {
		l.EditApplied(e)
	}
	return r, nil
}

// LiveCut switches to camera at the current playhead.
func (s *Session) LiveCut(camera int) (cue.Result, error) {
	if err := s.ready(); err != nil {
		return cue.Result{}, err
	}
	at, err := s.sync.Sample()
	if err != nil {
		return cue.Result{}, err
	}
	r, err := s.apply(OpLiveCut, cue.LiveCut(s.doc.Cues, at.Time, at.Playing, camera, s.gen), at, camera)
	if err == nil && r.Changed() && at.Playing {
		s.selected = r.AffectedID
	}
	return r, err
}

// AddCueAtPlayhead splits the active cue at the current playhead and
// selects the new cue.
func (s *Session) AddCueAtPlayhead() (cue.Result, error) {
	if err := s.ready(); err != nil {
		return cue.Result{}, err
	}
	at, err := s.sync.Sample()
	if err != nil {
		return cue.Result{}, err
	}
	r, err := s.apply(OpAddCue, cue.AddCueAtPlayhead(s.doc.Cues, at.Time, s.gen), at, 0)
	if err == nil && r.Changed() {
		s.selected = r.AffectedID
	}
	return r, err
}

// DeleteCue removes the cue with id. The selection is cleared.
func (s *Session) DeleteCue(id string) (cue.Result, error) {
	if err := s.ready(); err != nil {
		return cue.Result{}, err
	}
	r, err := s.apply(OpDelete, cue.DeleteCue(s.doc.Cues, id), s.sync.LastSample(), 0)
	if err == nil && r.Changed() {
		s.selected = ""
	}
	return r, err
}

// DeleteSelected removes the selected cue, if any.
func (s *Session) DeleteSelected() (cue.Result, error) {
	if s.selected == "" {
		return cue.Result{Cues: s.Cues(), Kind: cue.NoChange}, nil
	}
	return s.DeleteCue(s.selected)
}

// UpdateCue replaces the cue with the same id.
func (s *Session) UpdateCue(c cue.Cue) (cue.Result, error) {
	if err := s.ready(); err != nil {
		return cue.Result{}, err
	}
	return s.apply(OpUpdate, cue.UpdateCue(s.doc.Cues, c), s.sync.LastSample(), c.Camera)
}

// SetSelectedCamera changes the camera of the selected cue.
func (s *Session) SetSelectedCamera(camera int) (cue.Result, error) {
	if err := s.ready(); err != nil {
		return cue.Result{}, err
	}
	return s.apply(OpSetCamera, cue.SetCamera(s.doc.Cues, s.selected, camera), s.sync.LastSample(), camera)
}

// ToggleSelectedColor flips the label contrast of the selected cue.
func (s *Session) ToggleSelectedColor() (cue.Result, error) {
	c, ok := s.Selected()
	if !ok {
		return cue.Result{Cues: s.Cues(), Kind: cue.NoChange}, nil
	}
	c.Color = c.Color.Toggle()
	return s.UpdateCue(c)
}

// Selected returns the selected cue.
func (s *Session) Selected() (cue.Cue, bool) {
	if s.selected == "" {
		return cue.Cue{}, false
	}
	return cue.Find(s.Cues(), s.selected)
}

// SelectedID returns the selected cue id, or "".
func (s *Session) SelectedID() string {
	return s.selected
}

// Select selects the cue with id. An unknown id clears the selection.
func (s *Session) Select(id string) bool {
	if cue.IndexOf(s.Cues(), id) < 0 {
		s.selected = ""
		return false
	}
	s.selected = id
	return true
}

// ClearSelection deselects.
func (s *Session) ClearSelection() {
	s.selected = ""
}

// SelectNext moves the selection one cue later, starting from the first cue.
func (s *Session) SelectNext() {
	s.step(1)
}

// SelectPrev moves the selection one cue earlier, starting from the last cue.
func (s *Session) SelectPrev() {
	s.step(-1)
}

func (s *Session) step(dir int) {
	cues := s.Cues()
	if len(cues) == 0 {
		return
	}
	i := cue.IndexOf(cues, s.selected)
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(cues) - 1
	default:
		i += dir
	}
	if i < 0 || i >= len(cues) {
		return
	}
	s.selected = cues[i].ID
}
