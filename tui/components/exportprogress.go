package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/tui/layout"
	"github.com/user/showcut-cli/tui/styles"
)

// ExportProgressState holds the state for the clip export display.
type ExportProgressState struct {
	Active      bool
	Total       int
	Completed   int
	Errors      int
	CurrentFile string
	Done        bool
}

// ExportProgress renders a bordered info box showing export progress.
// It displays a progress bar, percentage, clip counter, current file, and error count.
func ExportProgress(state ExportProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	redStyle := lipgloss.NewStyle().Foreground(styles.Red)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var pct int
	if state.Total > 0 {
		pct = state.Completed * 100 / state.Total
	}

	// leave room for the " XXX%" label
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := 0
	if state.Total > 0 {
		filled = min(barWidth, barWidth*state.Completed/state.Total)
	}

	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))
	lines := []string{" " + bar + textStyle.Render(fmt.Sprintf(" %3d%%", pct))}

	counter := fmt.Sprintf(" %d/%d clips", state.Completed, state.Total)
	if state.Errors > 0 {
		counter += "  " + redStyle.Render(fmt.Sprintf("%d errors", state.Errors))
	}
	lines = append(lines, textStyle.Render(counter))

	switch {
	case state.Done && state.Errors == 0:
		lines = append(lines, " "+greenStyle.Render("Export complete"))
	case state.Done:
		lines = append(lines, " "+redStyle.Render("Export finished with errors"))
	case state.CurrentFile != "":
		lines = append(lines, " "+textStyle.Render(layout.Ellipsize(state.CurrentFile, innerW-2)))
	}

	return RenderInfoBox("Export", lines, width)
}
