package cue

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator hands out cue ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates ids of the form cue_<uuid>.
type UUIDGenerator struct{}

// NewID returns a fresh random id.
func (UUIDGenerator) NewID() string {
	return "cue_" + uuid.NewString()
}

// SequenceGenerator generates predictable ids (prefix_1, prefix_2, ...).
// It is meant for tests and fixtures.
type SequenceGenerator struct {
	Prefix string
	n      int
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "cue"
	}
	return fmt.Sprintf("%s_%d", prefix, g.n)
}
