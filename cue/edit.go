package cue

import "fmt"

const (
	// CorrectionWindow is how long after a cut, in seconds, a repeated live
	// cut corrects the camera instead of splitting again.
	CorrectionWindow = 0.5
	// Epsilon is the minimum distance from a cue's start at which a manual
	// split is allowed.
	Epsilon = 0.001
)

// Kind describes what an operation did to the list.
type Kind int

const (
	// NoChange means the operation was a no-op.
	NoChange Kind = iota
	// Split means a cue was divided and a new cue created.
	Split
	// Corrected means a cue's camera was replaced in place.
	Corrected
	// Updated means a cue's fields were replaced.
	Updated
	// Deleted means a cue was removed and absorbed by a neighbour.
	Deleted
)

func (k Kind) String() string {
	switch k {
	case NoChange:
		return "no-change"
	case Split:
		return "split"
	case Corrected:
		return "corrected"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of an edit.
// AffectedID names the cue that was created, corrected or updated; for a
// delete it names the neighbour that absorbed the removed interval, and
// RemovedID holds the deleted cue's id.
type Result struct {
	Cues       []Cue
	Kind       Kind
	AffectedID string
	RemovedID  string
}

// Changed reports whether the edit modified the list.
func (r Result) Changed() bool {
	return r.Kind != NoChange
}

func unchanged(cues []Cue) Result {
	return Result{Cues: cues, Kind: NoChange}
}

// splitAt divides cues[i] at t. The leading half keeps every field of the
// original; the trailing half is built by tail and starts exactly at t.
func splitAt(cues []Cue, i int, t float64, tail Cue) []Cue {
	out := make([]Cue, 0, len(cues)+1)
	out = append(out, cues[:i+1]...)
	tail.StartTime = t
	tail.EndTime = cues[i].EndTime
	out[i].EndTime = t
	out = append(out, tail)
	out = append(out, cues[i+1:]...)
	return out
}

// LiveCut applies "switch to camera at instant t".
//
// While playing, a cut within CorrectionWindow of the active cue's start
// replaces that cue's camera; a later cut splits the active cue at t and the
// new trailing cue takes the camera. While paused the active cue's camera is
// replaced and nothing is split.
func LiveCut(cues []Cue, t float64, playing bool, camera int, gen IDGenerator) Result {
	if camera < 1 {
		return unchanged(cues)
	}
	i := FindActiveIndex(cues, t)
	if i < 0 {
		return unchanged(cues)
	}
	active := cues[i]

	if !playing || t-active.StartTime < CorrectionWindow {
		out := Clone(cues)
		out[i].Camera = camera
		return Result{Cues: out, Kind: Corrected, AffectedID: active.ID}
	}

	tail := Cue{
		ID:          gen.NewID(),
		Camera:      camera,
		Description: fmt.Sprintf("Cut to %d", camera),
		Color:       White,
	}
	return Result{Cues: splitAt(cues, i, t, tail), Kind: Split, AffectedID: tail.ID}
}

// AddCueAtPlayhead splits the active cue at t without changing camera.
// It is a no-op when t is within Epsilon of the active cue's start.
func AddCueAtPlayhead(cues []Cue, t float64, gen IDGenerator) Result {
	i := FindActiveIndex(cues, t)
	if i < 0 {
		return unchanged(cues)
	}
	active := cues[i]
	if t <= active.StartTime+Epsilon {
		return unchanged(cues)
	}

	tail := Cue{
		ID:          gen.NewID(),
		Camera:      active.Camera,
		Description: "New Cue",
		Color:       White,
	}
	return Result{Cues: splitAt(cues, i, t, tail), Kind: Split, AffectedID: tail.ID}
}

// UpdateCue replaces every field of the cue whose id matches updated.ID.
// Boundaries are taken as given; neighbours are not re-validated.
func UpdateCue(cues []Cue, updated Cue) Result {
	i := IndexOf(cues, updated.ID)
	if i < 0 {
		return unchanged(cues)
	}
	out := Clone(cues)
	out[i] = updated
	return Result{Cues: out, Kind: Updated, AffectedID: updated.ID}
}

// SetCamera changes only the camera of the cue with the given id.
func SetCamera(cues []Cue, id string, camera int) Result {
	c, ok := Find(cues, id)
	if !ok || camera < 1 {
		return unchanged(cues)
	}
	c.Camera = camera
	return UpdateCue(cues, c)
}

// DeleteCue removes the cue with the given id and lets a neighbour absorb
// its interval: the previous cue extends to the deleted end, or, for the
// first cue, the next cue extends back to 0. The last remaining cue can
// never be deleted.
func DeleteCue(cues []Cue, id string) Result {
	i := IndexOf(cues, id)
	if i < 0 || len(cues) <= 1 {
		return unchanged(cues)
	}

	out := make([]Cue, 0, len(cues)-1)
	out = append(out, cues[:i]...)
	out = append(out, cues[i+1:]...)

	var absorber string
	if i > 0 {
		out[i-1].EndTime = cues[i].EndTime
		absorber = out[i-1].ID
	} else {
		out[0].StartTime = 0
		absorber = out[0].ID
	}
	return Result{Cues: out, Kind: Deleted, AffectedID: absorber, RemovedID: id}
}
