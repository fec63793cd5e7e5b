package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/user/showcut-cli/cue"
)

// defaultEDLRate is used when a document carries no usable framerate.
const defaultEDLRate = 24.0

// IsDropFrame reports whether rate is one of the NTSC drop-frame rates.
func IsDropFrame(rate float64) bool {
	return math.Abs(rate-29.97) < 0.01 || math.Abs(rate-59.94) < 0.01
}

// Reel returns the EDL reel name for a camera.
func Reel(camera int) string {
	return fmt.Sprintf("CAM%02d", camera)
}

// EDL renders doc as a CMX3600-style edit decision list with one event per
// cue. Cues are contiguous, so record times equal source times.
func EDL(doc *cue.Document, rate float64) string {
	if rate <= 0 {
		rate = doc.Framerate
	}
	if rate <= 0 {
		rate = defaultEDLRate
	}
	drop := IsDropFrame(rate)

	lines := []string{fmt.Sprintf("TITLE: %s", doc.Title)}
	if drop {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	for i, c := range doc.Cues {
		in := Timecode(c.StartTime, rate)
		out := Timecode(c.EndTime, rate)
		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, Reel(c.Camera), "V", in, out, in, out),
			fmt.Sprintf("* FROM CLIP NAME:  %s", clipName(c)),
		)
		if doc.VideoPath != "" {
			lines = append(lines, fmt.Sprintf("* SOURCE FILE:  %s", doc.VideoPath))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func clipName(c cue.Cue) string {
	if c.Description != "" {
		return c.Description
	}
	return fmt.Sprintf("Camera %d", c.Camera)
}

// Timecode converts seconds to HH:MM:SS:FF at rate. Drop-frame rates use
// drop-frame numbering and a ';' before the frame field.
func Timecode(seconds, rate float64) string {
	if seconds < 0 {
		seconds = 0
	}
	nominal := int(math.Round(rate))
	if nominal <= 0 {
		nominal = int(defaultEDLRate)
	}
	if !IsDropFrame(rate) {
		return framesToTimecode(int(math.Round(seconds*float64(nominal))), nominal, ":")
	}

	frames := int(math.Round(seconds * rate))
	// 2 frame numbers dropped per minute at 29.97, 4 at 59.94, except every tenth minute.
	dropped := nominal / 15
	perTenMinutes := nominal*600 - dropped*9
	perMinute := nominal*60 - dropped

	tens := frames / perTenMinutes
	rem := frames % perTenMinutes
	frames += dropped * 9 * tens
	if rem > dropped {
		frames += dropped * ((rem - dropped) / perMinute)
	}
	return framesToTimecode(frames, nominal, ";")
}

func framesToTimecode(totalFrames, fps int, sep string) string {
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", hours, minutes, seconds, sep, frames)
}
