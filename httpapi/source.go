package httpapi

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/project"
)

// Source supplies the document being served.
type Source interface {
	Document() (*cue.Document, error)
}

// StaticSource always serves the same document.
type StaticSource struct {
	Doc *cue.Document
}

func (s StaticSource) Document() (*cue.Document, error) {
	return s.Doc, nil
}

// FileSource serves a project file, reloading it whenever its modification
// time changes so edits saved by another process show up.
type FileSource struct {
	Path string

	mu      sync.Mutex
	modTime time.Time
	doc     *cue.Document
}

func (s *FileSource) Document() (*cue.Document, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("stat project: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc != nil && info.ModTime().Equal(s.modTime) {
		return s.doc, nil
	}
	// Ids are only generated for cues missing one; they need not be stable
	// across reloads.
	doc, err := project.Load(s.Path, cue.UUIDGenerator{})
	if err != nil {
		return nil, err
	}
	s.doc = doc
	s.modTime = info.ModTime()
	return doc, nil
}
