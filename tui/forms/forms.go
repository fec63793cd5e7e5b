// Package forms provides huh-based form components for the TUI.
package forms

import (
	"github.com/charmbracelet/huh"
)

// NewConfirmQuitForm asks whether to quit with unsaved changes. The answer
// is bound to quit.
func NewConfirmQuitForm(quit *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Quit without saving?").
				Description("The cue list has unsaved changes.").
				Affirmative("Yes, quit").
				Negative("No, go back").
				Value(quit),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}
