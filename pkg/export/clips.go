package export

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/deps"
	"github.com/user/showcut-cli/project"
)

// unsafeChars matches characters not safe for filenames: / \ : * ? < > | " and spaces
var unsafeChars = regexp.MustCompile(`[/\\:*?<>|"\s]`)

// Swapped in tests.
var (
	checkFfmpeg    = deps.CheckFfmpeg
	commandContext = exec.CommandContext
)

// sanitize replaces unsafe filename characters with underscores.
func sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// ClipDir returns the folder clips for videoPath are written to.
// Format: {videoDir}/clips/{videoFilenameNoExt}
func ClipDir(videoPath string) string {
	videoBase := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(filepath.Dir(videoPath), "clips", videoBase)
}

// ClipPath returns the output path for the cue at index (0-based).
// Format: {ClipDir}/CAMnn/{nnn}-{hhmmss}-{description}.mp4
func ClipPath(videoPath string, c cue.Cue, index int) string {
	total := int(math.Floor(c.StartTime))
	hhmmss := fmt.Sprintf("%02d%02d%02d", total/3600, (total%3600)/60, total%60)

	name := fmt.Sprintf("%03d-%s", index+1, hhmmss)
	if c.Description != "" {
		name += "-" + sanitize(c.Description)
	}
	return filepath.Join(ClipDir(videoPath), Reel(c.Camera), name+".mp4")
}

// RunFfmpeg creates the output directory, checks for ffmpeg, and extracts
// [start, end) from videoPath using stream copy.
func RunFfmpeg(ctx context.Context, videoPath string, start, end float64, outputPath string) error {
	if err := checkFfmpeg(); err != nil {
		return err
	}
	if end <= start {
		return fmt.Errorf("empty clip range %.3f-%.3f", start, end)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	args := []string{
		"-y",
		"-ss", fmt.Sprintf("%.3f", start),
		"-i", videoPath,
		"-t", fmt.Sprintf("%.3f", end-start),
		"-c", "copy",
		outputPath,
	}

	cmd := commandContext(ctx, "ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w\n%s", err, string(output))
	}
	return nil
}

// Progress reports one finished clip.
type Progress struct {
	Done  int
	Total int
	Cue   cue.Cue
	Path  string
	Err   error
}

// ExportClips extracts every cue of doc, or only the cues on camera when
// camera > 0. A failed clip does not stop the export; failures are joined
// into the returned error. Progress, when non-nil, receives one value per
// clip and is closed before ExportClips returns.
func ExportClips(ctx context.Context, doc *cue.Document, camera int, progress chan<- Progress) ([]string, error) {
	if progress != nil {
		defer close(progress)
	}
	if !doc.HasMedia() {
		return nil, project.ErrNoVideo
	}

	type job struct {
		index int
		c     cue.Cue
	}
	var jobs []job
	for i, c := range doc.Cues {
		if camera > 0 && c.Camera != camera {
			continue
		}
		jobs = append(jobs, job{index: i, c: c})
	}

	var written []string
	var errs []error
	for n, j := range jobs {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		out := ClipPath(doc.VideoPath, j.c, j.index)
		err := RunFfmpeg(ctx, doc.VideoPath, j.c.StartTime, j.c.EndTime, out)
		if err != nil {
			errs = append(errs, fmt.Errorf("cue %d: %w", j.index+1, err))
		} else {
			written = append(written, out)
		}

		if progress != nil {
			p := Progress{Done: n + 1, Total: len(jobs), Cue: j.c, Path: out, Err: err}
			select {
			case progress <- p:
			case <-ctx.Done():
				return written, ctx.Err()
			}
		}
	}
	return written, errors.Join(errs...)
}
