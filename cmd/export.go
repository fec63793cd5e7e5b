package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/user/showcut-cli/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a project's cuts",
	Long:  `Export the cue list of a project as an EDL, a CSV cut sheet or per-cue video clips.`,
}

var exportEDLCmd = &cobra.Command{
	Use:   "edl <project>",
	Short: "Export a CMX3600 edit decision list",
	Long: `Write the cue list as a CMX3600-style EDL, one event per cue with the
camera as reel name (CAM01, CAM02, ...). Timecodes use the project frame
rate unless --rate is given; 29.97 and 59.94 use drop-frame timecode.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, _ := cmd.Flags().GetFloat64("rate")
		output, _ := cmd.Flags().GetString("output")

		_, doc, err := loadProject(args[0])
		if err != nil {
			return err
		}
		if len(doc.Cues) == 0 {
			return errNoCues
		}
		return writeOutput(cmd.OutOrStdout(), output, []byte(export.EDL(doc, rate)))
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv <project>",
	Short: "Export a CSV cut sheet",
	Long:  `Write the cue list as CSV: index, start, end, duration, camera, description.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		_, doc, err := loadProject(args[0])
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := export.CutSheet(&buf, doc); err != nil {
			return fmt.Errorf("failed to write cut sheet: %w", err)
		}
		return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
	},
}

var exportClipsCmd = &cobra.Command{
	Use:   "clips <project>",
	Short: "Export each cue as a video clip",
	Long: `Extract every cue of a project into its own file with ffmpeg (stream
copy, no re-encode). Clips are written to clips/<video name>/CAMnn/ beside
the video. Use --camera to export only the cues of one camera.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		camera, _ := cmd.Flags().GetInt("camera")

		_, doc, err := loadProject(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		progress := make(chan export.Progress)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for p := range progress {
				if p.Err != nil {
					fmt.Printf("[%d/%d] ✗ cue at %s: %v\n", p.Done, p.Total, export.Timecode(p.Cue.StartTime, doc.Framerate), p.Err)
					continue
				}
				fmt.Printf("[%d/%d] ✓ %s\n", p.Done, p.Total, filepath.Base(p.Path))
			}
		}()

		written, err := export.ExportClips(ctx, doc, camera, progress)
		<-done

		fmt.Printf("\n%d clip(s) written to %s\n", len(written), export.ClipDir(doc.VideoPath))
		if err != nil {
			return fmt.Errorf("clip export incomplete: %w", err)
		}
		return nil
	},
}

// writeOutput writes data to the file named by output, or to stdout when
// output is empty.
func writeOutput(stdout io.Writer, output string, data []byte) error {
	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	fmt.Fprintf(os.Stderr, "Written to %s\n", output)
	return nil
}

func init() {
	exportEDLCmd.Flags().Float64("rate", 0, "Timecode frame rate (default: project frame rate)")
	exportEDLCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	exportCSVCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	exportClipsCmd.Flags().IntP("camera", "c", 0, "Only export cues on this camera")

	exportCmd.AddCommand(exportEDLCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportClipsCmd)
	rootCmd.AddCommand(exportCmd)
}
