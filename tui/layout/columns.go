package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth  = 60 // below this the editor refuses to draw
	SideHideThreshold = 90 // below this width, hide the side column
	SideMinWidth      = 30 // side column width on medium terminals
)

// ComputeColumnWidths splits the terminal between the cue list and the side
// column. At >=120 the side column takes a third, between 90 and 119 it
// gets SideMinWidth, and below 90 only the cue list is shown.
func ComputeColumnWidths(termWidth int) (list, side int, showSide bool) {
	showSide = termWidth >= SideHideThreshold
	if !showSide {
		return termWidth, 0, false
	}

	// one border character between the columns
	usable := termWidth - 1
	if termWidth >= 120 {
		side = usable / 3
	} else {
		side = SideMinWidth
	}
	list = usable - side
	return list, side, true
}

// JoinColumns joins pre-rendered column strings side by side with purple border separators.
// Each column is normalized to the given height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	borderStr := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	rows := make([]string, 0, height)
	for row := 0; row < height; row++ {
		parts := make([]string, 0, len(colLines))
		for i, lines := range colLines {
			parts = append(parts, PadToWidth(lines[row], widths[i]))
		}
		rows = append(rows, strings.Join(parts, borderStr))
	}

	return strings.Join(rows, "\n")
}
