package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/project"
)

func openTest(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func fixedClock(t *testing.T, start time.Time) func(time.Duration) {
	t.Helper()
	orig := now
	t.Cleanup(func() { now = orig })
	cur := start
	now = func() time.Time { return cur }
	return func(d time.Duration) { cur = cur.Add(d) }
}

func sampleDoc(title string, cams ...int) *cue.Document {
	doc := project.New("/videos/" + title + ".mp4")
	doc.Title = title
	start := 0.0
	for i, c := range cams {
		doc.Cues = append(doc.Cues, cue.Cue{
			ID:        title + "_" + string(rune('a'+i)),
			StartTime: start,
			EndTime:   start + 2,
			Camera:    c,
			Color:     cue.Black,
		})
		start += 2
	}
	return doc
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	v1, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	db.Close()

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db.Close()
	v2, _ := SchemaVersion(db)
	if v1 != v2 || v1 < 2 {
		t.Fatalf("schema version %d then %d", v1, v2)
	}
}

func TestListMigrations_Order(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_late.sql":  {Data: []byte("x")},
		"m/002_early.sql": {Data: []byte("x")},
		"m/README.md":     {Data: []byte("x")},
		"m/bad.sql":       {Data: []byte("x")},
		"m/abc_name.sql":  {Data: []byte("x")},
	}
	got, err := listMigrations(fsys, "m")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].version != 2 || got[1].version != 10 {
		t.Fatalf("migrations = %+v", got)
	}
}

func TestTouchProject(t *testing.T) {
	db := openTest(t)
	advance := fixedClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	doc := sampleDoc("show", 1, 2, 2)
	id1, err := TouchProject(db, "/p/show.showcut.json", doc)
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	advance(time.Minute)
	doc.Title = "Renamed"
	id2, err := TouchProject(db, "/p/show.showcut.json", doc)
	if err != nil {
		t.Fatalf("touch again: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("touch should upsert, got ids %d and %d", id1, id2)
	}

	p, err := GetProject(db, "/p/show.showcut.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Title != "Renamed" || p.CueCount != 3 || p.CameraCount != 2 || p.Num != nil {
		t.Errorf("project = %+v", p)
	}
	if p.OpenedAt == nil || !p.OpenedAt.Equal(time.Date(2026, 3, 1, 12, 1, 0, 0, time.UTC)) {
		t.Errorf("opened_at = %v", p.OpenedAt)
	}
	if p.SavedAt != nil {
		t.Errorf("saved_at should be unset before any save")
	}
}

func TestRecordSave_SnapshotsAndPrune(t *testing.T) {
	db := openTest(t)
	advance := fixedClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	path := "/p/show.showcut.json"

	num := 4
	for i := 0; i < SnapshotKeep+5; i++ {
		doc := sampleDoc("show", make([]int, i+1)...)
		for j := range doc.Cues {
			doc.Cues[j].Camera = 1
		}
		doc.Num = &num
		if err := RecordSave(db, path, doc, float64(2*(i+1)), ""); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
		advance(time.Second)
	}

	p, err := GetProject(db, path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Num == nil || *p.Num != 4 || p.CueCount != SnapshotKeep+5 || p.Duration != float64(2*(SnapshotKeep+5)) {
		t.Errorf("project = %+v", p)
	}

	snaps, err := ListSnapshots(db, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(snaps) != SnapshotKeep {
		t.Fatalf("kept %d snapshots, want %d", len(snaps), SnapshotKeep)
	}
	if snaps[0].CueCount != SnapshotKeep+5 || snaps[0].Reason != ReasonSave {
		t.Errorf("newest snapshot = %+v", snaps[0])
	}

	latest, err := LatestSnapshot(db, path)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	doc, err := latest.Document(&cue.SequenceGenerator{})
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(doc.Cues) != SnapshotKeep+5 || project.NumLabel(doc) != "4" {
		t.Errorf("restored doc = %d cues, num %s", len(doc.Cues), project.NumLabel(doc))
	}
}

func TestLatestSnapshot_None(t *testing.T) {
	db := openTest(t)
	_, err := LatestSnapshot(db, "/missing")
	if !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("err = %v, want ErrNoSnapshot", err)
	}
}

func TestListProjects_RecentFirst(t *testing.T) {
	db := openTest(t)
	advance := fixedClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	for _, name := range []string{"a", "b", "c"} {
		if _, err := TouchProject(db, "/p/"+name, sampleDoc(name, 1)); err != nil {
			t.Fatalf("touch %s: %v", name, err)
		}
		advance(time.Minute)
	}
	// Saving "a" moves it to the front.
	if err := RecordSave(db, "/p/a", sampleDoc("a", 1), 2, ReasonAutosave); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := ListProjects(db, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Path != "/p/a" || got[1].Path != "/p/c" {
		t.Fatalf("projects = %+v", got)
	}
	if !got[0].LastUsed().Equal(*got[0].SavedAt) {
		t.Errorf("LastUsed should follow saved_at")
	}

	all, _ := ListProjects(db, 0)
	if len(all) != 3 {
		t.Errorf("unbounded list = %d", len(all))
	}
}

func TestForgetProject(t *testing.T) {
	db := openTest(t)
	if err := RecordSave(db, "/p/x", sampleDoc("x", 1), 2, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ForgetProject(db, "/p/x"); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if _, err := GetProject(db, "/p/x"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("project still present: %v", err)
	}
	if _, err := LatestSnapshot(db, "/p/x"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("snapshot still present: %v", err)
	}
}
