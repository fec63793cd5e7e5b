package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/project"
)

type failingSource struct{}

func (failingSource) Document() (*cue.Document, error) {
	return nil, errors.New("disk gone")
}

func testDoc() *cue.Document {
	num := 2
	doc := project.New("/media/show.mp4")
	doc.Title = "Matinee"
	doc.Num = &num
	doc.Cues = []cue.Cue{
		{ID: "a", StartTime: 0, EndTime: 4, Camera: 1, Description: "Start Cue", Color: cue.Black},
		{ID: "b", StartTime: 4, EndTime: 10, Camera: 3, Description: "Cut to 3", Color: cue.White},
	}
	return doc
}

func testConfig(src Source) ServerConfig {
	return ServerConfig{
		Source:  src,
		Logger:  log.New(io.Discard),
		Version: "test",
		Started: time.Now(),
	}
}

func do(t *testing.T, cfg ServerConfig, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewRouter(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, testConfig(StaticSource{}), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[HealthResponse](t, rec); got.Status != "ok" || got.Version != "test" {
		t.Errorf("health = %+v", got)
	}
}

func TestDocument(t *testing.T) {
	rec := do(t, testConfig(StaticSource{Doc: testDoc()}), "/document")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[DocumentResponse](t, rec)
	if got.Title != "Matinee" || got.Num == nil || *got.Num != 2 || got.CueCount != 2 || got.Duration != 10 {
		t.Errorf("document = %+v", got)
	}
}

func TestCues(t *testing.T) {
	rec := do(t, testConfig(StaticSource{Doc: testDoc()}), "/cues")
	got := decode[CuesResponse](t, rec)
	if len(got.Cues) != 2 || got.Cues[1].Camera != 3 || got.Cues[1].Color != cue.White {
		t.Errorf("cues = %+v", got.Cues)
	}
}

func TestActiveCue(t *testing.T) {
	cfg := testConfig(StaticSource{Doc: testDoc()})
	tests := []struct {
		name   string
		target string
		status int
		camera int
	}{
		{name: "first", target: "/cues/active?t=0", status: http.StatusOK, camera: 1},
		{name: "boundary belongs to next", target: "/cues/active?t=4", status: http.StatusOK, camera: 3},
		{name: "timestamp form", target: "/cues/active?t=0:05", status: http.StatusOK, camera: 3},
		{name: "end is outside", target: "/cues/active?t=10", status: http.StatusNotFound},
		{name: "missing", target: "/cues/active", status: http.StatusBadRequest},
		{name: "garbage", target: "/cues/active?t=soon", status: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, cfg, tc.target)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			if tc.status != http.StatusOK {
				if got := decode[ErrorResponse](t, rec); got.Error == "" {
					t.Errorf("error body missing")
				}
				return
			}
			if got := decode[ActiveCueResponse](t, rec); got.Cue.Camera != tc.camera {
				t.Errorf("camera = %d, want %d", got.Cue.Camera, tc.camera)
			}
		})
	}
}

func TestExports(t *testing.T) {
	cfg := testConfig(StaticSource{Doc: testDoc()})

	rec := do(t, cfg, "/export/edl?fps=25")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "002  CAM03") {
		t.Errorf("edl = %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, cfg, "/export/edl?fps=-1"); rec.Code != http.StatusBadRequest {
		t.Errorf("negative fps status = %d", rec.Code)
	}

	rec = do(t, cfg, "/export/csv")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "index,start,end") {
		t.Errorf("csv = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
}

func TestSourceFailure(t *testing.T) {
	rec := do(t, testConfig(failingSource{}), "/cues")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); got.Error != "document unavailable" {
		t.Errorf("error = %q", got.Error)
	}
}

func TestFileSource_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show"+project.Extension)
	doc := testDoc()
	if err := project.Save(path, doc); err != nil {
		t.Fatal(err)
	}
	src := &FileSource{Path: path}

	first, err := src.Document()
	if err != nil || first.Title != "Matinee" {
		t.Fatalf("first load = %+v, %v", first, err)
	}
	again, _ := src.Document()
	if again != first {
		t.Errorf("unchanged file should be cached")
	}

	doc.Title = "Evening"
	if err := project.Save(path, doc); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	reloaded, err := src.Document()
	if err != nil || reloaded.Title != "Evening" {
		t.Fatalf("reload = %+v, %v", reloaded, err)
	}
}
