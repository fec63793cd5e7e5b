package mpv

import (
	"os/exec"

	"github.com/user/showcut-cli/deps"
)

// LaunchMpv starts mpv paused on videoPath with the IPC socket enabled.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(videoPath, socketPath string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	// keep-open stops time-pos from disappearing when playback reaches the end
	cmd := exec.Command("mpv",
		"--input-ipc-server="+socketPath,
		"--pause",
		"--keep-open=yes",
		"--force-window=yes",
		videoPath,
	)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
