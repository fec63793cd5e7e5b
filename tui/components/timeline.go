package components

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/pkg/timeutil"
	"github.com/user/showcut-cli/timeline"
	"github.com/user/showcut-cli/tui/styles"
)

const (
	// StripHeight is the rendered height of the timeline strip:
	// top border, ruler, two cue rows, playhead row, bottom border.
	StripHeight = 6
	// StripBarOffset is the column of the first timeline cell relative to
	// the strip's left edge (border plus one space of padding).
	StripBarOffset = 2
	// StripMinWidth is the narrowest strip that still draws cells.
	StripMinWidth = 20

	stripCueRows = 2
)

// StripState holds what the timeline strip draws.
type StripState struct {
	Cues       []cue.Cue
	Duration   float64
	Time       float64
	Viewport   timeline.Viewport
	SelectedID string
}

// BarWidth returns the number of timeline cells in a strip of the given
// total width. This is the viewport width the strip must be given.
func BarWidth(width int) int {
	if width < StripMinWidth {
		return 0
	}
	return width - 2*StripBarOffset
}

// Timeline renders the cue strip inside a bordered box. Each cell is
// coloured by the camera of the cue covering the cell's midpoint, with
// ruler markers above and the playhead marked below.
func Timeline(state StripState, width int) string {
	barWidth := BarWidth(width)
	if barWidth <= 0 {
		return ""
	}
	vp := state.Viewport
	vp.WidthPx = float64(barWidth)

	cells := make([]int, barWidth)
	for i := range cells {
		cells[i] = -1
		if state.Duration > 0 {
			t := timeline.RawTime(float64(i)+0.5, vp, state.Duration)
			cells[i] = cue.FindActiveIndex(state.Cues, t)
		}
	}

	playhead := -1
	if state.Duration > 0 {
		px := timeline.PositionPx(state.Time, vp, state.Duration) - vp.ScrollPx
		if col := int(math.Floor(px)); col >= 0 && col < barWidth {
			playhead = col
		} else if col == barWidth && state.Time >= state.Duration {
			playhead = barWidth - 1
		}
	}

	pad := " "
	lines := []string{
		pad + renderRuler(state.Duration, vp, barWidth) + pad,
	}
	for row := 0; row < stripCueRows; row++ {
		lines = append(lines, pad+renderCueRow(state, cells, row == 0, playhead)+pad)
	}
	lines = append(lines, pad+renderPlayheadRow(playhead, barWidth)+pad)

	return RenderInfoBox("Timeline", lines, width)
}

// renderRuler places M:SS labels at marker columns, skipping any that would
// overlap the previous label.
func renderRuler(d float64, vp timeline.Viewport, barWidth int) string {
	row := []rune(strings.Repeat(" ", barWidth))
	next := 0
	for _, t := range timeline.Markers(d, vp.Zoom) {
		col := int(math.Floor(timeline.PositionPx(t, vp, d) - vp.ScrollPx))
		if col < next || col >= barWidth {
			continue
		}
		label := []rune("╷" + timeutil.FormatMarker(t))
		if col+len(label) > barWidth {
			label = label[:1]
		}
		copy(row[col:], label)
		next = col + len(label) + 1
	}
	return lipgloss.NewStyle().Foreground(styles.Lavender).Render(string(row))
}

// renderCueRow draws one row of cue cells, grouping runs of the same cue so
// each segment is rendered with a single style. The label row carries the
// camera number and description of each segment; the other row marks the
// playhead.
func renderCueRow(state StripState, cells []int, labels bool, playhead int) string {
	emptyStyle := lipgloss.NewStyle().Foreground(styles.Purple)

	var b strings.Builder
	for start := 0; start < len(cells); {
		end := start
		for end < len(cells) && cells[end] == cells[start] {
			end++
		}
		idx := cells[start]
		width := end - start

		if idx < 0 {
			b.WriteString(emptyStyle.Render(strings.Repeat("·", width)))
			start = end
			continue
		}

		c := state.Cues[idx]
		text := []rune(strings.Repeat(" ", width))
		if labels {
			copy(text, []rune(cueLabel(c)))
		}
		if !labels && playhead >= start && playhead < end {
			text[playhead-start] = '│'
		}

		style := styles.CueBlock(c)
		if c.ID == state.SelectedID {
			style = style.Bold(true).Underline(true)
		}
		b.WriteString(style.Render(string(text)))
		start = end
	}
	return b.String()
}

func cueLabel(c cue.Cue) string {
	label := " " + strconv.Itoa(c.Camera)
	if c.Description != "" {
		label += " " + c.Description
	}
	return label
}

func renderPlayheadRow(playhead, barWidth int) string {
	if playhead < 0 {
		return strings.Repeat(" ", barWidth)
	}
	posStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	return strings.Repeat(" ", playhead) + posStyle.Render("▲") + strings.Repeat(" ", barWidth-playhead-1)
}
