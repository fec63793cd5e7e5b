package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/tui/styles"
)

// Container wraps content into an exact Width x Height bounding box.
// Lines are truncated/padded to Width and the line count is padded/truncated to Height.
// When content overflows, the window slides so that line Focus stays visible
// and the clipped edges show scroll indicators.
type Container struct {
	Width  int
	Height int
	// Focus is the line index that must stay visible, -1 for none.
	Focus int
}

// Render returns the content constrained to exactly Width columns and Height lines.
func (c Container) Render(content string) string {
	if c.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")

	if len(lines) > c.Height {
		start := 0
		if c.Focus >= c.Height-1 {
			start = c.Focus - c.Height + 2
		}
		if start > len(lines)-c.Height {
			start = len(lines) - c.Height
		}
		end := start + c.Height
		more := end < len(lines)
		lines = append([]string(nil), lines[start:end]...)

		indicator := lipgloss.NewStyle().Foreground(styles.Purple)
		if start > 0 {
			lines[0] = indicator.Render("↑ More...")
		}
		if more {
			lines[c.Height-1] = indicator.Render("↓ More...")
		}
	}

	lines = NormalizeLines(lines, c.Height)
	for i, line := range lines {
		lines[i] = PadToWidth(line, c.Width)
	}

	return strings.Join(lines, "\n")
}
