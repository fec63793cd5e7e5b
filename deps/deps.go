// Package deps checks for the external programs showcut drives.
package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// Binary describes an external program and why it is needed.
type Binary struct {
	Name       string
	InstallURL string
	Purpose    string
}

// Known lists every binary showcut can use.
var Known = []Binary{
	{Name: "mpv", InstallURL: MpvInstallURL, Purpose: "video playback and the authoritative clock"},
	{Name: "ffmpeg", InstallURL: FfmpegInstallURL, Purpose: "per-cue clip export"},
}

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// Check returns a *DependencyError when b is not on PATH.
func Check(b Binary) error {
	if _, err := lookPath(b.Name); err != nil {
		return &DependencyError{Name: b.Name, InstallURL: b.InstallURL}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return Check(Known[0])
}

// CheckFfmpeg checks if ffmpeg is installed and available in PATH
func CheckFfmpeg() error {
	return Check(Known[1])
}

// Status is the result of checking one binary.
type Status struct {
	Binary
	Err error
}

// CheckAll checks every known binary.
func CheckAll() []Status {
	out := make([]Status, 0, len(Known))
	for _, b := range Known {
		out = append(out, Status{Binary: b, Err: Check(b)})
	}
	return out
}
