package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/pkg/timeutil"
)

// MaxDescription bounds cue descriptions entered in the TUI.
const MaxDescription = 80

// NewDescriptionForm edits the description of c. The field starts with the
// current text and writes the result to desc.
func NewDescriptionForm(c cue.Cue, desc *string) *huh.Form {
	*desc = c.Description
	header := fmt.Sprintf("Cue @ %s - camera %d", timeutil.FormatTimecode(c.StartTime), c.Camera)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(header),
			huh.NewInput().
				Title("Description").
				CharLimit(MaxDescription).
				Value(desc),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}

// CameraOptions returns the palette choices, cameras 1 through
// cue.PaletteSize.
func CameraOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, cue.PaletteSize)
	for cam := 1; cam <= cue.PaletteSize; cam++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Camera %d", cam), cam))
	}
	return opts
}

// NewCameraForm picks a camera for c from the palette.
func NewCameraForm(c cue.Cue, camera *int) *huh.Form {
	*camera = c.Camera
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Camera").
				Options(CameraOptions()...).
				Height(10).
				Value(camera),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}

// MetadataResult holds the document title and roll number as typed.
type MetadataResult struct {
	Title string
	Num   string
}

// ParsedNum returns the roll number, nil when left blank.
func (r *MetadataResult) ParsedNum() (*int, error) {
	s := strings.TrimSpace(r.Num)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("roll number must be a whole number")
	}
	return &n, nil
}

// NewMetadataForm edits the document title and roll number.
func NewMetadataForm(doc *cue.Document, result *MetadataResult) *huh.Form {
	result.Title = doc.Title
	result.Num = ""
	if doc.Num != nil {
		result.Num = strconv.Itoa(*doc.Num)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&result.Title),
			huh.NewInput().
				Title("Roll number").
				Description("Optional").
				Value(&result.Num).
				Validate(func(s string) error {
					_, err := (&MetadataResult{Num: s}).ParsedNum()
					return err
				}),
		),
	).WithTheme(Theme()).WithShowHelp(false)
}
