package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/showcut-cli/db"
	"github.com/user/showcut-cli/editor"
	"github.com/user/showcut-cli/logging"
	"github.com/user/showcut-cli/pkg/export"
	"github.com/user/showcut-cli/project"
	"github.com/user/showcut-cli/tui/components"
)

// exportProgressMsg carries one finished clip from the export goroutine.
type exportProgressMsg export.Progress

// exportDoneMsg is sent once when the export goroutine finishes.
type exportDoneMsg struct {
	written []string
	err     error
}

// waitForExportMsg returns a tea.Cmd that waits for the next message on the channel.
func waitForExportMsg(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// projectPath is where the document is saved: the session path, or a file
// next to the video.
func (m *Model) projectPath() (string, error) {
	if p := m.session.Path(); p != "" {
		return p, nil
	}
	doc := m.session.Document()
	if doc == nil {
		return "", editor.ErrNoDocument
	}
	if !doc.HasMedia() {
		return "", project.ErrNoVideo
	}
	return project.DefaultPath(doc.VideoPath), nil
}

// save writes the project file and records the save in the library. A
// library failure is logged but does not fail the save.
func (m *Model) save() (string, error) {
	doc := m.session.Document()
	if doc == nil {
		return "", editor.ErrNoDocument
	}
	path, err := m.projectPath()
	if err != nil {
		return "", err
	}
	if err := project.Save(path, doc); err != nil {
		return "", err
	}
	m.session.SetPath(path)
	m.session.MarkSaved()
	m.status.Dirty = false
	m.logger.Info("project saved", "path", logging.SanitizePath(path), "cues", len(doc.Cues))

	if m.db != nil {
		if err := db.RecordSave(m.db, path, doc, m.session.Duration(), db.ReasonSave); err != nil {
			m.logger.Error("library update failed", "err", err)
		}
	}
	return logging.SanitizePath(path), nil
}

// autosaveSnapshot stores a library snapshot of unsaved work. The project
// file itself is only written on an explicit save.
func (m *Model) autosaveSnapshot() {
	doc := m.session.Document()
	if m.db == nil || doc == nil || !m.session.Dirty() {
		return
	}
	path, err := m.projectPath()
	if err != nil {
		return
	}
	if err := db.RecordSave(m.db, path, doc, m.session.Duration(), db.ReasonAutosave); err != nil {
		m.logger.Error("autosave failed", "err", err)
		return
	}
	m.logger.Debug("autosave snapshot", "path", logging.SanitizePath(path), "cues", len(doc.Cues))
}

// exportEDL writes an EDL next to the project file.
func (m *Model) exportEDL() (string, error) {
	doc := m.session.Document()
	if doc == nil {
		return "", editor.ErrNoDocument
	}
	if len(doc.Cues) == 0 {
		return "", errors.New("no cues to export")
	}
	path, err := m.projectPath()
	if err != nil {
		return "", err
	}
	out := strings.TrimSuffix(path, project.Extension)
	out = strings.TrimSuffix(out, filepath.Ext(out)) + ".edl"

	if err := os.WriteFile(out, []byte(export.EDL(doc, 0)), 0644); err != nil {
		return "", fmt.Errorf("write edl: %w", err)
	}
	m.logger.Info("edl exported", "path", logging.SanitizePath(out))
	return logging.SanitizePath(out), nil
}

// startClipExport runs ffmpeg for every cue in a background goroutine.
// Progress arrives as exportProgressMsg, the end as exportDoneMsg.
func (m *Model) startClipExport() tea.Cmd {
	if m.export.Active && !m.export.Done {
		return m.setResult("Export already running")
	}
	doc := m.session.Document()
	if doc == nil {
		return m.setError(editor.ErrNoDocument)
	}
	if !doc.HasMedia() {
		return m.setError(project.ErrNoVideo)
	}
	if len(doc.Cues) == 0 {
		return m.setResult("No cues to export")
	}

	// the goroutine works on a copy so edits made meanwhile are not raced
	snapshot := *doc
	snapshot.Cues = append(snapshot.Cues[:0:0], doc.Cues...)

	ctx, cancel := context.WithCancel(context.Background())
	m.exportCancel = cancel
	m.export = components.ExportProgressState{Active: true, Total: len(snapshot.Cues)}

	progress := make(chan export.Progress)
	ch := make(chan tea.Msg)
	go func() {
		defer close(ch)
		done := make(chan exportDoneMsg, 1)
		go func() {
			written, err := export.ExportClips(ctx, &snapshot, 0, progress)
			done <- exportDoneMsg{written: written, err: err}
		}()
		for p := range progress {
			ch <- exportProgressMsg(p)
		}
		ch <- <-done
	}()

	m.exportCh = ch
	m.logger.Info("clip export started", "clips", len(snapshot.Cues))
	return waitForExportMsg(ch)
}

// handleExportMsg folds export messages into the progress box.
func (m *Model) handleExportMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case exportProgressMsg:
		m.export.Completed = msg.Done
		m.export.Total = msg.Total
		m.export.CurrentFile = logging.SanitizePath(msg.Path)
		if msg.Err != nil {
			m.export.Errors++
			m.logger.Warn("clip failed", "path", msg.Path, "err", msg.Err)
		}
		return waitForExportMsg(m.exportCh)

	case exportDoneMsg:
		m.export.Done = true
		m.exportCh = nil
		if m.exportCancel != nil {
			m.exportCancel()
			m.exportCancel = nil
		}
		if msg.err != nil && m.export.Errors == 0 {
			return m.setError(msg.err)
		}
		m.logger.Info("clip export finished", "written", len(msg.written), "errors", m.export.Errors)
		return m.setResult(fmt.Sprintf("Exported %d clips to %s", len(msg.written),
			logging.SanitizePath(export.ClipDir(m.session.Document().VideoPath))))
	}
	return nil
}
