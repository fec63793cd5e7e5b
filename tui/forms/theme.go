package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/showcut-cli/tui/styles"
)

// fieldColors is the colour set for one focus state.
type fieldColors struct {
	border lipgloss.TerminalColor
	title  lipgloss.Color
	desc   lipgloss.Color
	accent lipgloss.Color
	text   lipgloss.Color
	dim    lipgloss.Color
}

var (
	focusedColors = fieldColors{
		border: styles.BrightPurple,
		title:  styles.Pink,
		desc:   styles.Lavender,
		accent: styles.Cyan,
		text:   styles.LightLavender,
		dim:    styles.Purple,
	}
	blurredColors = fieldColors{
		border: lipgloss.NoColor{},
		title:  styles.Lavender,
		desc:   styles.Purple,
		accent: styles.Lavender,
		text:   styles.Lavender,
		dim:    styles.Purple,
	}
)

// Theme returns a huh theme in the TUI palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(focusedColors.border).
		PaddingLeft(1)
	applyFieldColors(&t.Focused, focusedColors)
	t.Focused.Title = t.Focused.Title.Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(styles.BrightPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)
	t.Focused.Next = t.Focused.FocusedButton

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	applyFieldColors(&t.Blurred, blurredColors)
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.MultiSelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.FocusedButton = lipgloss.NewStyle().
		Background(styles.Purple).
		Foreground(styles.Lavender).
		Padding(0, 1)
	t.Blurred.BlurredButton = lipgloss.NewStyle().
		Background(styles.DeepPurple).
		Foreground(styles.Purple).
		Padding(0, 1)
	t.Blurred.Next = t.Blurred.FocusedButton

	return t
}

func applyFieldColors(f *huh.FieldStyles, c fieldColors) {
	fg := func(col lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(col)
	}

	f.Title = fg(c.title)
	f.Description = fg(c.desc)
	f.ErrorIndicator = fg(styles.Pink).Bold(true)
	f.ErrorMessage = fg(styles.Pink)
	f.SelectSelector = fg(c.accent).SetString("▸ ")
	f.MultiSelectSelector = fg(c.accent).SetString("▸ ")
	f.Option = fg(c.text)
	f.NextIndicator = fg(c.desc)
	f.PrevIndicator = fg(c.desc)
	f.SelectedOption = fg(c.accent)
	f.SelectedPrefix = fg(c.accent).SetString("[✓] ")
	f.UnselectedOption = fg(c.desc)
	f.UnselectedPrefix = fg(c.dim).SetString("[ ] ")
	f.TextInput.Cursor = fg(c.accent)
	f.TextInput.Placeholder = fg(c.dim)
	f.TextInput.Prompt = fg(c.accent)
	f.TextInput.Text = fg(c.text)
	f.NoteTitle = fg(c.accent).Bold(true)
	f.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.dim).
		Padding(0, 1)
}
