// Package components provides the TUI building blocks for the cue editor.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/tui/layout"
	"github.com/user/showcut-cli/tui/styles"
)

// RenderInfoBox renders content lines inside a rounded box with a tab-style
// title in the top border:
//
//	╭─ Title ──────╮
//	│content       │
//	╰──────────────╯
//
// Lines wider than the box are truncated.
func RenderInfoBox(title string, contentLines []string, width int) string {
	return renderBox(title, contentLines, width, styles.Purple)
}

// RenderFocusBox is RenderInfoBox with a highlighted border.
func RenderFocusBox(title string, contentLines []string, width int) string {
	return renderBox(title, contentLines, width, styles.BrightPurple)
}

func renderBox(title string, contentLines []string, width int, border lipgloss.Color) string {
	if width < 4 {
		return ""
	}
	innerWidth := width - 2

	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderStyle := lipgloss.NewStyle().Foreground(border)

	headerText := headerStyle.Render(" " + title + " ")
	fillWidth := innerWidth - 1 - lipgloss.Width(headerText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	top := borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)+"╮")

	rendered := make([]string, 0, len(contentLines)+2)
	rendered = append(rendered, layout.PadToWidth(top, width))
	side := borderStyle.Render("│")
	for _, line := range contentLines {
		rendered = append(rendered, side+layout.PadToWidth(line, innerWidth)+side)
	}
	rendered = append(rendered, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))

	return strings.Join(rendered, "\n")
}
