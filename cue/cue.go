// Package cue holds the cue document model and the operations that edit it.
//
// A cue list is an ordered, contiguous, gap-free partition of a media
// duration into camera-labelled intervals. Every operation in this package is
// a pure transition from one valid list to another: inputs are never mutated,
// and conditions that cannot be applied resolve to a no-op.
package cue

import (
	"sort"
)

// Color is a rendering hint controlling label contrast.
type Color string

const (
	// Black renders the camera label in black text.
	Black Color = "black"
	// White renders the camera label in white text.
	White Color = "white"
)

// ParseColor returns the Color for s, falling back to Black for anything unknown.
func ParseColor(s string) Color {
	if Color(s) == White {
		return White
	}
	return Black
}

// Toggle returns the other contrast colour.
func (c Color) Toggle() Color {
	if c == White {
		return Black
	}
	return White
}

const (
	// DefaultCamera is the camera assigned to a freshly seeded document.
	DefaultCamera = 1
	// PaletteSize is the number of cameras offered by the palette.
	PaletteSize = 24
)

// Cue is a labelled half-open interval [StartTime, EndTime) in seconds.
type Cue struct {
	ID          string  `json:"id"`
	StartTime   float64 `json:"startTime"`
	EndTime     float64 `json:"endTime"`
	Camera      int     `json:"camera"`
	Description string  `json:"description"`
	Color       Color   `json:"color"`
}

// Length returns the cue's duration in seconds.
func (c Cue) Length() float64 {
	return c.EndTime - c.StartTime
}

// Contains reports whether t falls inside [StartTime, EndTime).
func (c Cue) Contains(t float64) bool {
	return c.StartTime <= t && t < c.EndTime
}

// Document is the aggregate edited by a session.
type Document struct {
	Title     string
	Num       *int
	VideoPath string
	Framerate float64
	Cues      []Cue
}

// HasMedia reports whether the document references a media file.
func (d *Document) HasMedia() bool {
	return d.VideoPath != ""
}

// FindActiveIndex returns the index of the cue containing t, or -1 when t is
// outside the covered range. The list is searched by position, so ids play
// no part in the lookup.
func FindActiveIndex(cues []Cue, t float64) int {
	// first cue whose end lies beyond t
	i := sort.Search(len(cues), func(i int) bool {
		return cues[i].EndTime > t
	})
	if i < len(cues) && cues[i].StartTime <= t {
		return i
	}
	return -1
}

// FindActiveCue returns the cue containing t. The boolean is false when t is
// before the first cue or at/after the end of the last one.
func FindActiveCue(cues []Cue, t float64) (Cue, bool) {
	i := FindActiveIndex(cues, t)
	if i < 0 {
		return Cue{}, false
	}
	return cues[i], true
}

// IndexOf returns the position of the cue with the given id, or -1.
func IndexOf(cues []Cue, id string) int {
	for i := range cues {
		if cues[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the cue with the given id.
func Find(cues []Cue, id string) (Cue, bool) {
	i := IndexOf(cues, id)
	if i < 0 {
		return Cue{}, false
	}
	return cues[i], true
}

// Duration returns the total covered duration of the list.
func Duration(cues []Cue) float64 {
	if len(cues) == 0 {
		return 0
	}
	return cues[len(cues)-1].EndTime - cues[0].StartTime
}

// Clone returns a copy of cues with its own backing array.
func Clone(cues []Cue) []Cue {
	if cues == nil {
		return nil
	}
	out := make([]Cue, len(cues))
	copy(out, cues)
	return out
}

// Seed returns cues unchanged when it already holds cues; otherwise it
// synthesizes a single cue spanning [0, d) on the default camera.
// It is called the first time the media duration becomes known.
func Seed(cues []Cue, d float64, gen IDGenerator) []Cue {
	if len(cues) > 0 || d <= 0 {
		return cues
	}
	return []Cue{{
		ID:          gen.NewID(),
		StartTime:   0,
		EndTime:     d,
		Camera:      DefaultCamera,
		Description: "Start Cue",
		Color:       Black,
	}}
}
