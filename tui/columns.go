package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/project"
	"github.com/user/showcut-cli/tui/components"
	"github.com/user/showcut-cli/tui/layout"
	"github.com/user/showcut-cli/tui/styles"
)

// screen is the vertical layout for the current terminal size.
type screen struct {
	listWidth int
	sideWidth int
	showSide  bool
	colHeight int
	stripTop  int
}

// geometry computes where everything goes. The status bar takes the first
// line, the strip and the result line the bottom.
func (m *Model) geometry() screen {
	var s screen
	s.listWidth, s.sideWidth, s.showSide = layout.ComputeColumnWidths(m.width)
	s.colHeight = m.height - 1 - components.StripHeight - 1
	if s.colHeight < 3 {
		s.colHeight = 3
	}
	s.stripTop = 1 + s.colHeight
	return s
}

// stripCell maps a terminal cell to a timeline cell. ok is false outside
// the strip's drawing rows.
func (m *Model) stripCell(x, y int) (int, bool) {
	s := m.geometry()
	if y <= s.stripTop || y >= s.stripTop+components.StripHeight-1 {
		return 0, false
	}
	cell := x - components.StripBarOffset
	if cell < 0 || cell >= components.BarWidth(m.width) {
		return 0, false
	}
	return cell, true
}

// clampCell maps x to the nearest timeline cell.
func (m *Model) clampCell(x int) int {
	cell := x - components.StripBarOffset
	last := components.BarWidth(m.width) - 1
	if cell > last {
		cell = last
	}
	if cell < 0 {
		cell = 0
	}
	return cell
}

// renderCueColumn renders the waterfall cue list.
func (m *Model) renderCueColumn(width, height int) string {
	state := components.CueListState{
		Cues:       m.session.VisibleCues(m.playhead),
		SelectedID: m.session.SelectedID(),
	}
	if c, ok := m.session.ActiveCue(m.playhead); ok {
		state.ActiveID = c.ID
	}
	return components.CueList(state, width, height)
}

// renderSideColumn renders the selected cue, project details and export
// progress.
func (m *Model) renderSideColumn(width, height int) string {
	var lines []string

	c, ok := m.session.Selected()
	lines = append(lines, strings.Split(components.CueDetail(c, ok, width), "\n")...)

	if doc := m.session.Document(); doc != nil {
		label := lipgloss.NewStyle().Foreground(styles.Lavender)
		value := lipgloss.NewStyle().Foreground(styles.LightLavender)
		row := func(k, v string) string {
			return label.Render(fmt.Sprintf(" %-8s", k)) + value.Render(v)
		}

		video := "-"
		if doc.HasMedia() {
			video = filepath.Base(doc.VideoPath)
		}
		cameras := map[int]bool{}
		for _, c := range doc.Cues {
			cameras[c.Camera] = true
		}
		info := []string{
			row("Title", doc.Title),
			row("Roll", project.NumLabel(doc)),
			row("Video", video),
			row("Rate", fmt.Sprintf("%g fps", doc.Framerate)),
			row("Cues", fmt.Sprintf("%d on %d cameras", len(doc.Cues), len(cameras))),
		}
		lines = append(lines, strings.Split(components.RenderInfoBox("Project", info, width), "\n")...)
	}

	if m.export.Active {
		lines = append(lines, strings.Split(components.ExportProgress(m.export, width), "\n")...)
	}

	return layout.Container{Width: width, Height: height, Focus: -1}.Render(strings.Join(lines, "\n"))
}

// renderDialog renders the open form in place of the columns.
func (m *Model) renderDialog(width, height int) string {
	if m.dialog.form == nil {
		return ""
	}
	formWidth := min(width, 60)
	body := strings.Split(m.dialog.form.View(), "\n")
	box := components.RenderFocusBox(m.dialog.title(), body, formWidth)
	hint := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true).Render(" enter to confirm, esc to cancel")
	return layout.Container{Width: width, Height: height, Focus: -1}.Render(box + "\n" + hint)
}

// renderResultLine renders the last command result, or the export counter
// when the side column is hidden.
func (m *Model) renderResultLine(width int, showSide bool) string {
	text := m.result
	style := lipgloss.NewStyle().Foreground(styles.Green)
	if m.resultErr {
		style = styles.Warning
	}
	if text == "" && m.export.Active && !m.export.Done && !showSide {
		text = fmt.Sprintf("Exporting %d/%d clips", m.export.Completed, m.export.Total)
		style = lipgloss.NewStyle().Foreground(styles.Amber)
	}
	if text == "" {
		text = "? for help"
		style = lipgloss.NewStyle().Foreground(styles.Purple)
	}
	return layout.PadToWidth(style.Render(" "+text), width)
}
