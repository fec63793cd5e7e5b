package editor

import (
	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/playback"
)

// Op names the session operation that produced an edit.
type Op int

const (
	OpLiveCut Op = iota
	OpAddCue
	OpDelete
	OpUpdate
	OpSetCamera
)

func (o Op) String() string {
	switch o {
	case OpLiveCut:
		return "live-cut"
	case OpAddCue:
		return "add-cue"
	case OpDelete:
		return "delete"
	case OpUpdate:
		return "update"
	case OpSetCamera:
		return "set-camera"
	default:
		return "unknown"
	}
}

// Edit describes an applied change.
type Edit struct {
	Op         Op
	Kind       cue.Kind
	AffectedID string
	RemovedID  string
	// Camera is the camera requested by the operation, 0 when it has none.
	Camera int
	// At is the clock sample the edit acted on.
	At playback.Instant
}

// Listener is notified after every edit that changed the cue list.
// Notifications run synchronously on the session's goroutine.
type Listener interface {
	EditApplied(Edit)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Edit)

// EditApplied calls f(e).
func (f ListenerFunc) EditApplied(e Edit) { f(e) }

// AddListener registers l.
func (s *Session) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}
