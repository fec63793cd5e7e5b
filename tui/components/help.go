package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/tui/styles"
)

type binding struct {
	key  string
	desc string
}

type bindingGroup struct {
	title    string
	bindings []binding
}

var helpGroups = []bindingGroup{
	{
		title: "Playback",
		bindings: []binding{
			{"Space", "Toggle play/pause"},
			{"← / →", "Step one frame"},
			{"Click/drag", "Scrub the timeline (snaps to cues)"},
		},
	},
	{
		title: "Cutting",
		bindings: []binding{
			{"1-9", "Live cut to camera"},
			{"a", "Add cue at playhead"},
			{"x", "Delete selected cue"},
		},
	},
	{
		title: "Selected cue",
		bindings: []binding{
			{"j / k", "Select next / previous cue"},
			{"Enter", "Jump to selected cue"},
			{"Esc", "Clear selection"},
			{"e", "Edit description"},
			{"c", "Choose camera (1-24)"},
			{"w", "Toggle label colour"},
		},
	},
	{
		title: "Timeline",
		bindings: []binding{
			{"+ / -", "Zoom in / out"},
			{"[ / ]", "Scroll left / right"},
		},
	},
	{
		title: "File",
		bindings: []binding{
			{"ctrl+s", "Save project"},
			{"t", "Edit title and roll number"},
			{"E", "Export EDL"},
			{"X", "Export clips (ffmpeg)"},
			{"?", "Show/hide this help"},
			{"q", "Quit"},
		},
	},
}

// HelpOverlay renders the keybinding overlay centred in a width x height
// screen.
func HelpOverlay(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)
	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(12)
	descStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	lines := []string{titleStyle.Render("Keybindings")}
	for _, group := range helpGroups {
		lines = append(lines, groupHeaderStyle.Render(group.title))
		for _, b := range group.bindings {
			lines = append(lines, "  "+keyStyle.Render(b.key)+descStyle.Render(b.desc))
		}
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true)
	lines = append(lines, "", footerStyle.Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
