package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/user/showcut-cli/editor"
	"github.com/user/showcut-cli/tui/forms"
)

// dialogKind identifies the form currently shown.
type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogQuit
	dialogDescription
	dialogCamera
	dialogMetadata
)

// dialog is an embedded huh form and the values bound to it.
type dialog struct {
	kind  dialogKind
	form  *huh.Form
	cueID string

	quit   bool
	desc   string
	camera int
	meta   forms.MetadataResult
}

func (d dialog) title() string {
	switch d.kind {
	case dialogQuit:
		return "Quit"
	case dialogDescription:
		return "Description"
	case dialogCamera:
		return "Camera"
	case dialogMetadata:
		return "Project"
	}
	return ""
}

// openDialog builds the form for kind and gives it focus.
func (m *Model) openDialog(kind dialogKind) tea.Cmd {
	m.dialog = dialog{kind: kind}
	d := &m.dialog

	switch kind {
	case dialogQuit:
		d.form = forms.NewConfirmQuitForm(&d.quit)
	case dialogDescription, dialogCamera:
		c, ok := m.session.Selected()
		if !ok {
			m.dialog = dialog{}
			return m.setResult("Select a cue first")
		}
		d.cueID = c.ID
		if kind == dialogDescription {
			d.form = forms.NewDescriptionForm(c, &d.desc)
		} else {
			d.form = forms.NewCameraForm(c, &d.camera)
		}
	case dialogMetadata:
		doc := m.session.Document()
		if doc == nil {
			m.dialog = dialog{}
			return m.setError(editor.ErrNoDocument)
		}
		d.form = forms.NewMetadataForm(doc, &d.meta)
	default:
		m.dialog = dialog{}
		return nil
	}

	m.focus = FocusForm
	return d.form.Init()
}

func (m *Model) closeDialog() {
	m.dialog = dialog{}
	m.focus = FocusEditor
}

// handleDialogKey routes a key to the open form. Esc always cancels.
func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.closeDialog()
		return nil
	}
	return m.updateDialog(msg)
}

// updateDialog forwards msg to the form and acts on completion.
func (m *Model) updateDialog(msg tea.Msg) tea.Cmd {
	model, cmd := m.dialog.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.dialog.form = f
	}

	switch m.dialog.form.State {
	case huh.StateCompleted:
		d := m.dialog
		m.closeDialog()
		if next := m.submitDialog(d); next != nil {
			return next
		}
		return cmd
	case huh.StateAborted:
		m.closeDialog()
		return nil
	}
	return cmd
}

// submitDialog applies a completed form.
func (m *Model) submitDialog(d dialog) tea.Cmd {
	switch d.kind {
	case dialogQuit:
		if d.quit {
			_, cmd := m.quit()
			return cmd
		}
		return nil

	case dialogDescription:
		m.session.Select(d.cueID)
		c, ok := m.session.Selected()
		if !ok {
			return m.setResult("Cue no longer exists")
		}
		c.Description = strings.TrimSpace(d.desc)
		r, err := m.session.UpdateCue(c)
		return m.reportEdit("Description updated", r, err)

	case dialogCamera:
		if !m.session.Select(d.cueID) {
			return m.setResult("Cue no longer exists")
		}
		r, err := m.session.SetSelectedCamera(d.camera)
		return m.reportEdit("Camera changed", r, err)

	case dialogMetadata:
		num, err := d.meta.ParsedNum()
		if err != nil {
			return m.setError(err)
		}
		if err := m.session.SetMetadata(strings.TrimSpace(d.meta.Title), num); err != nil {
			return m.setError(err)
		}
		m.status.Dirty = m.session.Dirty()
		return m.setResult("Project details updated")
	}
	return nil
}
