package cmd

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/db"
	"github.com/user/showcut-cli/editor"
	"github.com/user/showcut-cli/pkg/timeutil"
	"github.com/user/showcut-cli/playback"
	"github.com/user/showcut-cli/project"
	"github.com/user/showcut-cli/tally"
)

var errNoCues = errors.New("project has no cues yet (open it with its video, or create it with new --duration)")

// resolveProjectPath maps a command argument to a project file path. A
// project file is used as is; anything else is treated as a video and
// mapped to the project file beside it.
func resolveProjectPath(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if strings.HasSuffix(abs, project.Extension) {
		return abs, nil
	}
	return project.DefaultPath(abs), nil
}

// loadProject loads the project named by arg and returns its path.
func loadProject(arg string) (string, *cue.Document, error) {
	path, err := resolveProjectPath(arg)
	if err != nil {
		return "", nil, err
	}
	doc, err := project.Load(path, cue.UUIDGenerator{})
	if err != nil {
		return "", nil, fmt.Errorf("failed to load project: %w", err)
	}
	return path, doc, nil
}

// openLibrary opens the project library. Commands treat the library as
// optional: callers log the error and carry on without it.
func openLibrary() (*sql.DB, error) {
	library, err := db.Open(cfg.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return library, nil
}

// saveProject writes doc to path and records the save in the library.
func saveProject(path string, doc *cue.Document) error {
	if err := project.Save(path, doc); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	library, err := openLibrary()
	if err != nil {
		logger.Warn("project saved without library entry", "err", err)
		return nil
	}
	defer library.Close()
	if err := db.RecordSave(library, path, doc, cue.Duration(doc.Cues), db.ReasonSave); err != nil {
		logger.Warn("failed to record save", "path", path, "err", err)
	}
	return nil
}

// quietLogger returns a copy of logger that only reports warnings and
// errors, for sessions run inside one-shot commands.
func quietLogger(prefix string) *log.Logger {
	l := logger.WithPrefix(prefix)
	if l.GetLevel() < log.WarnLevel {
		l.SetLevel(log.WarnLevel)
	}
	return l
}

// editAt opens doc in an editing session whose clock is frozen at t. The
// clock plays when playing is set, so live cuts split instead of correct.
// Configured tally receivers are notified of the edits.
func editAt(doc *cue.Document, path string, t float64, playing bool) (*editor.Session, error) {
	d := cue.Duration(doc.Cues)
	if d <= 0 {
		return nil, errNoCues
	}
	if t < 0 || t > d {
		return nil, fmt.Errorf("time %s is outside the project (0:00:00 - %s)", timeutil.FormatTime(t), timeutil.FormatTime(d))
	}

	frozen := time.Now()
	clock := playback.NewManualClock(d, func() time.Time { return frozen })
	if err := clock.Seek(t); err != nil {
		return nil, err
	}
	if err := clock.SetPaused(!playing); err != nil {
		return nil, err
	}

	session := newSession(clock, doc, path, quietLogger("editor"))
	if err := session.MediaLoaded(d); err != nil {
		return nil, err
	}
	if err := session.Check(); err != nil {
		return nil, fmt.Errorf("project cue list is damaged: %w", err)
	}

	notifier, err := tally.New(cfg.OSCAddr(), logger.WithPrefix("tally"))
	if err != nil {
		return nil, err
	}
	if notifier.Enabled() {
		session.AddListener(notifier)
	}
	return session, nil
}

// newSession opens doc in an editing session over clock. Edits are
// validated before they are committed, so a damaged cue list is reported
// instead of edited.
func newSession(clock playback.Clock, doc *cue.Document, path string, l *log.Logger) *editor.Session {
	session := editor.New(playback.NewSynchronizer(clock, doc.Framerate),
		editor.WithLogger(l),
		editor.WithChecks(true),
	)
	session.Open(doc, path)
	return session
}

// findCue resolves a cue reference: a 1-based position in the list or a
// cue id (a unique id prefix is enough).
func findCue(cues []cue.Cue, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(cues) {
			return -1, fmt.Errorf("cue %d out of range (1-%d)", n, len(cues))
		}
		return n - 1, nil
	}

	if i := cue.IndexOf(cues, ref); i >= 0 {
		return i, nil
	}
	match := -1
	for i, c := range cues {
		if strings.HasPrefix(c.ID, ref) {
			if match >= 0 {
				return -1, fmt.Errorf("cue id prefix %q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("cue not found: %s", ref)
	}
	return match, nil
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// checkVideo returns an error unless path is an existing regular file.
func checkVideo(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a video file: %s", path)
	}
	return nil
}
