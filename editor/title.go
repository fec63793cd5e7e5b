package editor

import (
	"fmt"

	"github.com/user/showcut-cli/project"
)

const welcomeTitle = "Welcome to Showcut"

// titleState holds the window title and its observers.
type titleState struct {
	current   string
	observers []func(string)
}

func (t *titleState) set(title string) {
	if title == t.current {
		return
	}
	t.current = title
	for _, fn := range t.observers {
		fn(title)
	}
}

// Title returns "[num] title" for the open document, or the welcome title.
func (s *Session) Title() string {
	return s.title.current
}

// OnTitleChange registers fn to be called with each new title. fn is called
// immediately with the current one.
func (s *Session) OnTitleChange(fn func(string)) {
	s.title.observers = append(s.title.observers, fn)
	fn(s.title.current)
}

func (s *Session) refreshTitle() {
	if s.doc == nil {
		s.title.set(welcomeTitle)
		return
	}
	s.title.set(fmt.Sprintf("[%s] %s", project.NumLabel(s.doc), s.doc.Title))
}
