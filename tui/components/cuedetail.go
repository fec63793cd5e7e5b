package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/pkg/timeutil"
	"github.com/user/showcut-cli/tui/styles"
)

// CueDetail renders the selected cue's fields in a box. ok is false when
// nothing is selected.
func CueDetail(c cue.Cue, ok bool, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.Lavender)
	valueStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	if !ok {
		hint := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true)
		return RenderInfoBox("Cue", []string{
			hint.Render(" Nothing selected"),
			hint.Render(" j/k to select a cue"),
		}, width)
	}

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf(" %-8s", label)) + valueStyle.Render(value)
	}
	desc := c.Description
	if desc == "" {
		desc = "-"
	}
	lines := []string{
		row("Camera", "") + styles.CueBlock(c).Render(fmt.Sprintf(" %d ", c.Camera)),
		row("Start", timeutil.FormatTimecode(c.StartTime)),
		row("End", timeutil.FormatTimecode(c.EndTime)),
		row("Length", fmt.Sprintf("%.3fs", c.Length())),
		row("Label", string(c.Color)),
		row("Desc", desc),
	}
	return RenderFocusBox("Cue", lines, width)
}
