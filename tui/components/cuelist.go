package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/pkg/timeutil"
	"github.com/user/showcut-cli/tui/layout"
	"github.com/user/showcut-cli/tui/styles"
)

// CueListState holds the waterfall list shown beside the video.
type CueListState struct {
	// Cues are the cues still visible at the playhead, in order
	Cues []cue.Cue
	// ActiveID is the cue under the playhead
	ActiveID string
	// SelectedID is the cue being edited
	SelectedID string
}

// Column widths (marker: 2, start: 8, camera badge: 5, length: 4).
const (
	markerWidth = 2
	startWidth  = 8
	badgeWidth  = 5
	lengthWidth = 4
)

// CueList renders the waterfall cue list as a table of height lines,
// including the header. The window follows the selected cue, or the active
// cue when nothing is selected.
func CueList(state CueListState, width, height int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Underline(true)

	descWidth := width - markerWidth - startWidth - badgeWidth - lengthWidth - 3
	if descWidth < 4 {
		descWidth = 4
	}

	header := fmt.Sprintf("%*s%-*s %-*s %-*s%*s",
		markerWidth, "",
		startWidth, "Start",
		badgeWidth, "Cam",
		descWidth, "Description",
		lengthWidth, "Len")
	lines := []string{headerStyle.Render(layout.PadToWidth(header, width))}
	if height < 2 {
		return lines[0]
	}

	if len(state.Cues) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.Purple).
			Italic(true)
		lines = append(lines, emptyStyle.Render("  No cues yet - load media to begin"))
		return layout.Container{Width: width, Height: height}.Render(strings.Join(lines, "\n"))
	}

	focus := -1
	for i, c := range state.Cues {
		if c.ID == state.SelectedID || (focus < 0 && c.ID == state.ActiveID) {
			focus = i
		}
		lines = append(lines, renderCueRowLine(c, state, descWidth, width))
	}

	// the header takes the first line of the window
	body := layout.Container{Width: width, Height: height - 1, Focus: focus}.Render(strings.Join(lines[1:], "\n"))
	return lines[0] + "\n" + body
}

func renderCueRowLine(c cue.Cue, state CueListState, descWidth, width int) string {
	marker := "  "
	if c.ID == state.SelectedID {
		marker = "▸ "
	}

	desc := layout.Ellipsize(c.Description, descWidth)

	badge := styles.CueBlock(c).Bold(true).Render(fmt.Sprintf(" %2d ", c.Camera))
	rest := fmt.Sprintf(" %-*s%*s", descWidth, desc, lengthWidth, timeutil.FormatCueLength(c.Length()))

	var rowStyle lipgloss.Style
	switch {
	case c.ID == state.ActiveID:
		rowStyle = styles.Highlight
	case c.ID == state.SelectedID:
		rowStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	default:
		rowStyle = styles.PrimaryText
	}

	line := rowStyle.Render(marker+fmt.Sprintf("%-*s", startWidth, timeutil.FormatMarker(c.StartTime))) +
		badge + " " + rowStyle.Render(rest)
	return layout.PadToWidth(line, width)
}
