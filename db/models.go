package db

import "time"

// Project represents a row in the projects table.
type Project struct {
	ID          int64
	Path        string
	Title       string
	Num         *int
	VideoPath   string
	Framerate   float64
	CueCount    int
	CameraCount int
	Duration    float64
	OpenedAt    *time.Time
	SavedAt     *time.Time
}

// LastUsed is the later of OpenedAt and SavedAt.
func (p Project) LastUsed() time.Time {
	var t time.Time
	if p.OpenedAt != nil {
		t = *p.OpenedAt
	}
	if p.SavedAt != nil && p.SavedAt.After(t) {
		t = *p.SavedAt
	}
	return t
}

// Snapshot represents a row in the cue_snapshots table.
type Snapshot struct {
	ID        int64
	ProjectID int64
	SavedAt   time.Time
	CueCount  int
	Reason    string
	Body      string
}
