package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/pkg/timeutil"
)

// CutSheetHeader is the first row of a cut sheet.
var CutSheetHeader = []string{"index", "start", "end", "duration", "camera", "description"}

// CutSheet writes one CSV row per cue. Start and end are playhead
// timecodes; duration is in seconds.
func CutSheet(w io.Writer, doc *cue.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CutSheetHeader); err != nil {
		return fmt.Errorf("write cut sheet header: %w", err)
	}
	for i, c := range doc.Cues {
		row := []string{
			strconv.Itoa(i + 1),
			timeutil.FormatTimecode(c.StartTime),
			timeutil.FormatTimecode(c.EndTime),
			strconv.FormatFloat(c.Length(), 'f', 3, 64),
			strconv.Itoa(c.Camera),
			c.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write cut sheet row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
