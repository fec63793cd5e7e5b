package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/pkg/timeutil"
	"github.com/user/showcut-cli/tui/styles"
)

// StatusBarState holds the values shown in the top status bar.
type StatusBarState struct {
	// Playing is the last sampled play state
	Playing bool
	// Connected is false when the media source cannot be reached
	Connected bool
	// Time is the visible playhead time in seconds
	Time float64
	// Duration is the media duration in seconds
	Duration float64
	// Title is the window title, "[num] title"
	Title string
	// Dirty marks unsaved changes
	Dirty bool
	// Zoom is the timeline zoom factor
	Zoom float64
}

// StatusBar renders the status bar: play state, timecode and duration on the
// left, title and zoom on the right.
func StatusBar(state StatusBarState, width int) string {
	playIcon := "⏸"
	if state.Playing {
		playIcon = "▶"
	}
	if !state.Connected {
		playIcon = "✗"
	}

	left := fmt.Sprintf(" %s %s / %s", playIcon,
		timeutil.FormatTimecode(state.Time),
		timeutil.FormatTimecode(state.Duration))

	title := state.Title
	if state.Dirty {
		title += " ●"
	}
	right := fmt.Sprintf("%s  x%.0f ", title, state.Zoom)

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	content := left + fmt.Sprintf("%*s", padding, "") + right

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width).
		MaxWidth(width)

	return statusBarStyle.Render(content)
}
