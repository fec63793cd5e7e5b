package cue

import (
	"strings"
	"testing"
)

func threeCues() []Cue {
	return []Cue{
		{ID: "a", StartTime: 0, EndTime: 2, Camera: 1},
		{ID: "b", StartTime: 2, EndTime: 5, Camera: 2},
		{ID: "c", StartTime: 5, EndTime: 9, Camera: 3},
	}
}

func TestFindActiveCue(t *testing.T) {
	cues := threeCues()
	tests := []struct {
		t      float64
		wantID string
		found  bool
	}{
		{0, "a", true},
		{1.999, "a", true},
		{2, "b", true},
		{4.5, "b", true},
		{5, "c", true},
		{8.999, "c", true},
		{9, "", false},
		{12, "", false},
		{-0.1, "", false},
	}
	for _, tt := range tests {
		got, ok := FindActiveCue(cues, tt.t)
		if ok != tt.found || got.ID != tt.wantID {
			t.Errorf("FindActiveCue(%g) = %q, %v; want %q, %v", tt.t, got.ID, ok, tt.wantID, tt.found)
		}
	}

	if _, ok := FindActiveCue(nil, 0); ok {
		t.Errorf("empty list should find nothing")
	}
}

func TestSeed(t *testing.T) {
	gen := &SequenceGenerator{Prefix: "seed"}
	cues := Seed(nil, 42.5, gen)
	if len(cues) != 1 {
		t.Fatalf("len = %d, want 1", len(cues))
	}
	c := cues[0]
	if c.StartTime != 0 || c.EndTime != 42.5 || c.Camera != DefaultCamera || c.ID != "seed_1" {
		t.Errorf("seeded cue = %+v", c)
	}

	existing := threeCues()
	if got := Seed(existing, 100, gen); len(got) != 3 || got[2].EndTime != 9 {
		t.Errorf("existing cues must be left alone, got %+v", got)
	}
	if got := Seed(nil, 0, gen); len(got) != 0 {
		t.Errorf("zero duration should not seed")
	}
}

func TestUUIDGenerator(t *testing.T) {
	var g UUIDGenerator
	a, b := g.NewID(), g.NewID()
	if a == b {
		t.Fatalf("ids collide: %s", a)
	}
	if !strings.HasPrefix(a, "cue_") {
		t.Errorf("id %q missing prefix", a)
	}
}

func TestParseColor(t *testing.T) {
	if ParseColor("white") != White || ParseColor("black") != Black || ParseColor("teal") != Black {
		t.Fatalf("unexpected colour parsing")
	}
	if White.Toggle() != Black || Black.Toggle() != White {
		t.Fatalf("toggle broken")
	}
}
