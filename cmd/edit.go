package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/pkg/timeutil"
	"github.com/user/showcut-cli/project"
)

var cuesCmd = &cobra.Command{
	Use:   "cues <project>",
	Short: "List the cues of a project",
	Long:  `Display every cue of a project as a table, in time order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		camera, _ := cmd.Flags().GetInt("camera")

		_, doc, err := loadProject(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (roll %s, %.3g fps)\n\n", doc.Title, project.NumLabel(doc), doc.Framerate)

		count := writeCueTable(out, doc.Cues, camera)
		if count == 0 {
			fmt.Fprintln(out, "\nNo matching cues found.")
		} else {
			fmt.Fprintf(out, "\n%d cue(s) found, %s total.\n", count, timeutil.FormatTime(cue.Duration(doc.Cues)))
		}
		return nil
	},
}

// writeCueTable prints cues as a table, skipping cues on other cameras
// when camera > 0. It returns the number of rows written.
func writeCueTable(out io.Writer, cues []cue.Cue, camera int) int {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tStart\tEnd\tLen\tCam\tLabel\tDescription\tID")
	fmt.Fprintln(w, "-\t-----\t---\t---\t---\t-----\t-----------\t--")

	count := 0
	for i, c := range cues {
		if camera > 0 && c.Camera != camera {
			continue
		}
		desc := ansi.Truncate(c.Description, 40, "...")
		id := c.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			i+1,
			timeutil.FormatTimecode(c.StartTime),
			timeutil.FormatTimecode(c.EndTime),
			timeutil.FormatCueLength(c.Length()),
			c.Camera,
			c.Color,
			desc,
			id,
		)
		count++
	}
	w.Flush()
	return count
}

var cutCmd = &cobra.Command{
	Use:   "cut <project> <time> <camera>",
	Short: "Cut to a camera at a time",
	Long: `Apply a live cut to a project file, as if the camera key were pressed
while the video played through <time>.

A cut just after the start of a cue corrects that cue's camera instead of
splitting it. With --paused the cut only ever corrects the camera of the
cue under <time>.

Time accepts HH:MM:SS, MM:SS or seconds, with an optional fraction.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		paused, _ := cmd.Flags().GetBool("paused")

		t, err := timeutil.ParseTimeToSeconds(args[1])
		if err != nil {
			return fmt.Errorf("invalid time: %w", err)
		}
		var camera int
		if _, err := fmt.Sscanf(args[2], "%d", &camera); err != nil || camera < 1 {
			return fmt.Errorf("invalid camera: %s", args[2])
		}

		path, doc, err := loadProject(args[0])
		if err != nil {
			return err
		}
		session, err := editAt(doc, path, t, !paused)
		if err != nil {
			return err
		}

		r, err := session.LiveCut(camera)
		if err != nil {
			return fmt.Errorf("failed to cut: %w", err)
		}
		if !r.Changed() {
			fmt.Fprintf(cmd.OutOrStdout(), "No change: no cue at %s.\n", timeutil.FormatTimecode(t))
			return nil
		}
		if err := saveProject(path, session.Document()); err != nil {
			return err
		}

		idx := cue.IndexOf(r.Cues, r.AffectedID)
		switch r.Kind {
		case cue.Split:
			fmt.Fprintf(cmd.OutOrStdout(), "Cut to camera %d at %s (cue %d).\n", camera, timeutil.FormatTimecode(t), idx+1)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Cue %d corrected to camera %d.\n", idx+1, camera)
		}
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split <project> <time>",
	Short: "Split the cue under a time",
	Long: `Add a cue at <time> by splitting the cue that contains it. The new cue
keeps the camera of the cue it was split from.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := timeutil.ParseTimeToSeconds(args[1])
		if err != nil {
			return fmt.Errorf("invalid time: %w", err)
		}

		path, doc, err := loadProject(args[0])
		if err != nil {
			return err
		}
		session, err := editAt(doc, path, t, false)
		if err != nil {
			return err
		}

		r, err := session.AddCueAtPlayhead()
		if err != nil {
			return fmt.Errorf("failed to split: %w", err)
		}
		if !r.Changed() {
			fmt.Fprintf(cmd.OutOrStdout(), "No change: %s is at the start of a cue.\n", timeutil.FormatTimecode(t))
			return nil
		}
		if err := saveProject(path, session.Document()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Cue %d added at %s.\n", cue.IndexOf(r.Cues, r.AffectedID)+1, timeutil.FormatTimecode(t))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <project> <cue>",
	Short: "Delete a cue",
	Long: `Delete a cue by its position in the list (as shown by cues) or by id.
The previous cue grows to cover the deleted range; deleting the first cue
extends the next one back to the start. The last remaining cue cannot be
deleted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, doc, err := loadProject(args[0])
		if err != nil {
			return err
		}
		if len(doc.Cues) == 0 {
			return errNoCues
		}
		idx, err := findCue(doc.Cues, args[1])
		if err != nil {
			return err
		}
		target := doc.Cues[idx]
		if len(doc.Cues) == 1 {
			return fmt.Errorf("cue %d is the only cue and cannot be deleted", idx+1)
		}

		if !force {
			prompt := fmt.Sprintf("Delete cue %d (camera %d, %s-%s)?", idx+1, target.Camera,
				timeutil.FormatTime(target.StartTime), timeutil.FormatTime(target.EndTime))
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
		}

		session, err := editAt(doc, path, target.StartTime, false)
		if err != nil {
			return err
		}
		if _, err := session.DeleteCue(target.ID); err != nil {
			return fmt.Errorf("failed to delete cue: %w", err)
		}
		if err := saveProject(path, session.Document()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Cue %d deleted.\n", idx+1)
		return nil
	},
}

func init() {
	cuesCmd.Flags().IntP("camera", "c", 0, "Only list cues on this camera")
	cutCmd.Flags().Bool("paused", false, "Correct the camera only, never split")
	deleteCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	rootCmd.AddCommand(cuesCmd)
	rootCmd.AddCommand(cutCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(deleteCmd)
}
