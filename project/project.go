// Package project reads and writes cue documents as JSON project files.
//
// Loading is permissive: missing or nonsensical fields are replaced with
// defaults instead of failing, so a hand-edited or older file still opens.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/user/showcut-cli/cue"
)

const (
	// DefaultFramerate is used when a file has no framerate.
	DefaultFramerate = 24.0
	// DefaultTitle is used when a file has no title.
	DefaultTitle = "Untitled Cue"
	// Extension is the conventional project file extension.
	Extension = ".showcut.json"
)

// ErrNoVideo is returned by operations that need media when the document
// has none.
var ErrNoVideo = errors.New("project: document has no video")

// fileCue is the serialized cue.
type fileCue struct {
	ID          string  `json:"id"`
	StartTime   float64 `json:"startTime"`
	EndTime     float64 `json:"endTime"`
	Camera      int     `json:"camera"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
}

// file is the serialized document shape. Pointers distinguish absent
// fields from zero values.
type file struct {
	Title     *string   `json:"title,omitempty"`
	Num       *int      `json:"num,omitempty"`
	VideoPath string    `json:"videoPath"`
	Framerate *float64  `json:"framerate,omitempty"`
	Cues      []fileCue `json:"cues"`
}

// New returns an empty document for videoPath.
func New(videoPath string) *cue.Document {
	return &cue.Document{
		Title:     DefaultTitle,
		VideoPath: videoPath,
		Framerate: DefaultFramerate,
		Cues:      []cue.Cue{},
	}
}

// Decode reads a document from r, defaulting missing fields. Cues without
// an id receive one from gen; cues are returned sorted by start time.
func Decode(r io.Reader, gen cue.IDGenerator) (*cue.Document, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}

	doc := New(f.VideoPath)
	if f.Title != nil {
		doc.Title = *f.Title
	}
	doc.Num = f.Num
	if f.Framerate != nil && *f.Framerate > 0 {
		doc.Framerate = *f.Framerate
	}

	doc.Cues = make([]cue.Cue, 0, len(f.Cues))
	for _, fc := range f.Cues {
		c := cue.Cue{
			ID:          fc.ID,
			StartTime:   fc.StartTime,
			EndTime:     fc.EndTime,
			Camera:      fc.Camera,
			Description: fc.Description,
			Color:       cue.ParseColor(fc.Color),
		}
		if c.ID == "" {
			c.ID = gen.NewID()
		}
		if c.Camera < 1 {
			c.Camera = cue.DefaultCamera
		}
		doc.Cues = append(doc.Cues, c)
	}
	sort.SliceStable(doc.Cues, func(i, j int) bool {
		return doc.Cues[i].StartTime < doc.Cues[j].StartTime
	})
	return doc, nil
}

// Encode writes doc to w as indented JSON.
func Encode(w io.Writer, doc *cue.Document) error {
	title := doc.Title
	fps := doc.Framerate
	f := file{
		Title:     &title,
		Num:       doc.Num,
		VideoPath: doc.VideoPath,
		Framerate: &fps,
		Cues:      make([]fileCue, len(doc.Cues)),
	}
	for i, c := range doc.Cues {
		f.Cues[i] = fileCue{
			ID:          c.ID,
			StartTime:   c.StartTime,
			EndTime:     c.EndTime,
			Camera:      c.Camera,
			Description: c.Description,
			Color:       string(c.Color),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	return nil
}

// Load opens and decodes the project file at path.
func Load(path string, gen cue.IDGenerator) (*cue.Document, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}
	defer fh.Close()
	return Decode(fh, gen)
}

// Save writes doc to path through a temporary file and a rename, so a crash
// mid-write never leaves a truncated project behind.
func Save(path string, doc *cue.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".showcut-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Encode(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace project: %w", err)
	}
	return nil
}

// DefaultPath suggests a project file next to the video.
func DefaultPath(videoPath string) string {
	base := filepath.Base(videoPath)
	base = base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(videoPath), base+Extension)
}

// NumLabel renders the roll number for display, "?" when unset.
func NumLabel(doc *cue.Document) string {
	if doc == nil || doc.Num == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *doc.Num)
}
