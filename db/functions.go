package db

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/project"
)

// SnapshotKeep is how many snapshots are retained per project.
const SnapshotKeep = 20

// Snapshot reasons.
const (
	ReasonSave     = "save"
	ReasonAutosave = "autosave"
)

// ErrNoSnapshot is returned when a project has no saved snapshots.
var ErrNoSnapshot = errors.New("no snapshot for project")

// now is swapped in tests.
var now = time.Now

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.UnixMilli(v.Int64)
	return &t
}

func numArg(doc *cue.Document) any {
	if doc.Num == nil {
		return nil
	}
	return *doc.Num
}

// cameraCount returns the number of distinct cameras used by cues.
func cameraCount(cues []cue.Cue) int {
	seen := make(map[int]struct{})
	for _, c := range cues {
		seen[c.Camera] = struct{}{}
	}
	return len(seen)
}

func scanProject(s scanner) (*Project, error) {
	var p Project
	var num sql.NullInt64
	var openedAt, savedAt sql.NullInt64
	if err := s.Scan(&p.ID, &p.Path, &p.Title, &num, &p.VideoPath, &p.Framerate,
		&p.CueCount, &p.CameraCount, &p.Duration, &openedAt, &savedAt); err != nil {
		return nil, err
	}
	if num.Valid {
		n := int(num.Int64)
		p.Num = &n
	}
	p.OpenedAt = fromMillis(openedAt)
	p.SavedAt = fromMillis(savedAt)
	return &p, nil
}

func scanSnapshot(s scanner) (*Snapshot, error) {
	var snap Snapshot
	var savedAt int64
	if err := s.Scan(&snap.ID, &snap.ProjectID, &savedAt, &snap.CueCount, &snap.Reason, &snap.Body); err != nil {
		return nil, err
	}
	snap.SavedAt = time.UnixMilli(savedAt)
	return &snap, nil
}

// TouchProject records that the project file at path was opened and returns its row ID.
func TouchProject(db *sql.DB, path string, doc *cue.Document) (int64, error) {
	_, err := db.Exec(UpsertProjectOpenedSQL, path, doc.Title, numArg(doc), doc.VideoPath,
		doc.Framerate, len(doc.Cues), cameraCount(doc.Cues), toMillis(now()))
	if err != nil {
		return 0, fmt.Errorf("upsert project: %w", err)
	}
	p, err := GetProject(db, path)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

// GetProject returns the project row for path, or sql.ErrNoRows wrapped.
func GetProject(db *sql.DB, path string) (*Project, error) {
	p, err := scanProject(db.QueryRow(SelectProjectByPathSQL, path))
	if err != nil {
		return nil, fmt.Errorf("select project: %w", err)
	}
	return p, nil
}

// RecordSave updates the project row for path and stores the encoded document
// as a snapshot. Only the newest SnapshotKeep snapshots are kept.
func RecordSave(db *sql.DB, path string, doc *cue.Document, duration float64, reason string) error {
	var body bytes.Buffer
	if err := project.Encode(&body, doc); err != nil {
		return err
	}
	if reason == "" {
		reason = ReasonSave
	}
	ts := toMillis(now())

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(UpsertProjectSavedSQL, path, doc.Title, numArg(doc), doc.VideoPath,
		doc.Framerate, len(doc.Cues), cameraCount(doc.Cues), duration, ts); err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}

	var projectID int64
	if err := tx.QueryRow("SELECT id FROM projects WHERE path = ?", path).Scan(&projectID); err != nil {
		return fmt.Errorf("select project id: %w", err)
	}

	if _, err := tx.Exec(InsertSnapshotSQL, projectID, ts, len(doc.Cues), reason, body.String()); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	if _, err := tx.Exec(PruneSnapshotsSQL, projectID, projectID, SnapshotKeep); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// ListProjects returns up to limit projects, most recently used first.
func ListProjects(db *sql.DB, limit int) ([]Project, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(SelectProjectsRecentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// LatestSnapshot returns the newest snapshot for the project at path.
func LatestSnapshot(db *sql.DB, path string) (*Snapshot, error) {
	snap, err := scanSnapshot(db.QueryRow(SelectLatestSnapshotSQL, path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSnapshot)
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns every retained snapshot for a project, newest first.
func ListSnapshots(db *sql.DB, projectID int64) ([]Snapshot, error) {
	rows, err := db.Query(SelectSnapshotsByProjectSQL, projectID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, *s)
	}
	return snaps, rows.Err()
}

// Document decodes the snapshot body.
func (s *Snapshot) Document(gen cue.IDGenerator) (*cue.Document, error) {
	return project.Decode(bytes.NewReader([]byte(s.Body)), gen)
}

// ForgetProject removes a project and its snapshots from the library.
func ForgetProject(db *sql.DB, path string) error {
	p, err := GetProject(db, path)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(DeleteSnapshotsByProjectSQL, p.ID); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	if _, err := tx.Exec(DeleteProjectSQL, path); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return tx.Commit()
}
