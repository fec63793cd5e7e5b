// Package styles provides Lipgloss styles for the TUI using the Ciapre colour palette.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/cue"
)

// Color palette - Ciapre (warm, earthy) theme from Gogh
const (
	// DeepPurple is the main background colour (Ciapre background)
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple is a secondary dark background (Ciapre ANSI 0 black)
	DarkPurple = lipgloss.Color("#181818")
	// Purple is the border/dim accent colour (Ciapre ANSI 6 brown)
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple is used for highlights and focus states (Ciapre ANSI 5 magenta)
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is a secondary text colour (Ciapre foreground)
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is the primary text colour (Ciapre ANSI 14 cream)
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink marks headers and the playhead (Ciapre ANSI 13 bright magenta)
	Pink = lipgloss.Color("#D33061")
	// Cyan is an accent colour for information and interactive elements (Ciapre ANSI 12 bright blue)
	Cyan = lipgloss.Color("#3097C6")
	// Amber is a warm accent for sub-headers (Ciapre derived)
	Amber = lipgloss.Color("#CC8B3F")
	// Red is used for warnings and errors (Ciapre ANSI 1)
	Red = lipgloss.Color("#AC3835")
	// Green is used for success messages (Ciapre ANSI 2)
	Green = lipgloss.Color("#A6A75D")

	// Ink and Paper are the two cue label colours.
	Ink   = lipgloss.Color("#111111")
	Paper = lipgloss.Color("#FAFAFA")
)

// cameraColors gives every palette camera a distinct background. Cameras
// outside the palette fall back to unknownCamera.
var cameraColors = map[int]lipgloss.Color{
	1:  "#3B82F6", // blue
	2:  "#22C55E", // green
	3:  "#CA8A04", // dark yellow
	4:  "#06B6D4", // cyan
	5:  "#EF4444", // red
	6:  "#A855F7", // purple
	7:  "#84CC16", // lime
	8:  "#10B981", // emerald
	9:  "#F97316", // orange
	10: "#F43F5E", // rose
	11: "#B45309", // dark amber
	12: "#14B8A6", // teal
	13: "#B91C1C", // dark red
	14: "#9CA3AF", // grey
	15: "#6366F1", // indigo
	16: "#FACC15", // yellow
	17: "#92400E", // brown
	18: "#EC4899", // pink
	19: "#D946EF", // fuchsia
	20: "#0EA5E9", // sky
	21: "#F87171", // light red
	22: "#16A34A", // dark green
	23: "#EA580C", // dark orange
	24: "#4338CA", // dark indigo
}

const unknownCamera = lipgloss.Color("#6B7280")

// CameraColor returns the background colour for camera.
func CameraColor(camera int) lipgloss.Color {
	if c, ok := cameraColors[camera]; ok {
		return c
	}
	return unknownCamera
}

// LabelColor returns the foreground for a cue's label contrast setting.
func LabelColor(c cue.Color) lipgloss.Color {
	if c == cue.White {
		return Paper
	}
	return Ink
}

// CueBlock is the style for a cue segment or badge: camera background with
// the cue's label colour on top.
func CueBlock(c cue.Cue) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(CameraColor(c.Camera)).
		Foreground(LabelColor(c.Color))
}

// Pre-defined styles using the color palette

// Border is the style for bordered panels
var Border = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Purple)

// Highlight is the style for selected/highlighted items
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

// PrimaryText is the style for primary text content
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is the style for less prominent text
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// Warning is the style for warning messages
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is the style for success messages
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
