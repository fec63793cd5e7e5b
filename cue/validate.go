package cue

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is wrapped by Validate when two cues share an id. Unlike
// the other conditions in this package it signals a defect rather than a
// no-op.
var ErrDuplicateID = errors.New("cue: duplicate id")

// Invariant names one of the rules a cue list must satisfy.
type Invariant int

const (
	Sorted Invariant = iota + 1
	Contiguous
	Coverage
	NonDegenerate
	NonEmpty
	UniqueIDs
)

func (i Invariant) String() string {
	switch i {
	case Sorted:
		return "sorted"
	case Contiguous:
		return "contiguous"
	case Coverage:
		return "coverage"
	case NonDegenerate:
		return "non-degenerate"
	case NonEmpty:
		return "non-empty"
	case UniqueIDs:
		return "unique ids"
	default:
		return fmt.Sprintf("invariant(%d)", int(i))
	}
}

// InvariantError reports the first broken invariant found by Validate.
type InvariantError struct {
	Invariant Invariant
	Index     int
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("cue: %s violated at index %d: %s", e.Invariant, e.Index, e.Detail)
}

// Unwrap lets errors.Is match ErrDuplicateID.
func (e *InvariantError) Unwrap() error {
	if e.Invariant == UniqueIDs {
		return ErrDuplicateID
	}
	return nil
}

// Validate checks cues against a media duration d. It returns nil when the
// list is sorted, contiguous, covers [0, d], has no degenerate cue, is
// non-empty and has unique ids.
func Validate(cues []Cue, d float64) error {
	if len(cues) == 0 {
		return &InvariantError{Invariant: NonEmpty, Index: 0, Detail: "no cues"}
	}

	seen := make(map[string]int, len(cues))
	for i, c := range cues {
		if j, ok := seen[c.ID]; ok {
			return &InvariantError{Invariant: UniqueIDs, Index: i, Detail: fmt.Sprintf("id %q also at index %d", c.ID, j)}
		}
		seen[c.ID] = i

		if !(c.StartTime < c.EndTime) {
			return &InvariantError{Invariant: NonDegenerate, Index: i, Detail: fmt.Sprintf("[%g, %g)", c.StartTime, c.EndTime)}
		}
		if i == 0 {
			continue
		}
		prev := cues[i-1]
		if c.StartTime < prev.StartTime {
			return &InvariantError{Invariant: Sorted, Index: i, Detail: fmt.Sprintf("start %g before %g", c.StartTime, prev.StartTime)}
		}
		if prev.EndTime != c.StartTime {
			return &InvariantError{Invariant: Contiguous, Index: i, Detail: fmt.Sprintf("previous ends at %g, this starts at %g", prev.EndTime, c.StartTime)}
		}
	}

	if cues[0].StartTime != 0 {
		return &InvariantError{Invariant: Coverage, Index: 0, Detail: fmt.Sprintf("starts at %g", cues[0].StartTime)}
	}
	last := len(cues) - 1
	if cues[last].EndTime != d {
		return &InvariantError{Invariant: Coverage, Index: last, Detail: fmt.Sprintf("ends at %g, media ends at %g", cues[last].EndTime, d)}
	}
	return nil
}
