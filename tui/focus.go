package tui

// FocusTarget represents what currently receives key input.
type FocusTarget int

const (
	// FocusEditor is normal editing: transport, cuts and selection.
	FocusEditor FocusTarget = iota
	// FocusHelp shows the help overlay; any key closes it.
	FocusHelp
	// FocusForm routes input to the open huh form.
	FocusForm
)
