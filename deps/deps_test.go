package deps

import (
	"errors"
	"os/exec"
	"testing"
)

func withPath(t *testing.T, present ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		for _, p := range present {
			if p == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestCheckAll(t *testing.T) {
	withPath(t, "mpv")

	statuses := CheckAll()
	if len(statuses) != 2 {
		t.Fatalf("len = %d", len(statuses))
	}
	if statuses[0].Err != nil {
		t.Errorf("mpv should be found: %v", statuses[0].Err)
	}
	var de *DependencyError
	if !errors.As(statuses[1].Err, &de) || de.Name != "ffmpeg" || de.InstallURL != FfmpegInstallURL {
		t.Errorf("ffmpeg status = %v", statuses[1].Err)
	}
	if err := CheckFfmpeg(); err == nil {
		t.Errorf("CheckFfmpeg should fail")
	}
	if err := CheckMpv(); err != nil {
		t.Errorf("CheckMpv: %v", err)
	}
}
