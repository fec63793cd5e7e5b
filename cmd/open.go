package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/db"
	"github.com/user/showcut-cli/logging"
	"github.com/user/showcut-cli/mpv"
	"github.com/user/showcut-cli/project"
	"github.com/user/showcut-cli/tally"
	"github.com/user/showcut-cli/tui"
)

var openCmd = &cobra.Command{
	Use:   "open <video-or-project>",
	Short: "Open a video or project in the cue editor",
	Long: `Open a video in mpv and start the cue editor in this terminal.

The argument is either a project file (` + project.Extension + `) or a video. For a
video, the project file beside it is opened, or created when missing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, doc, err := openOrCreate(args[0])
		if err != nil {
			return err
		}
		if !doc.HasMedia() {
			return project.ErrNoVideo
		}
		if err := checkVideo(doc.VideoPath); err != nil {
			return err
		}

		// The terminal belongs to the editor from here on
		fileLogger, closer, err := logging.OpenFile(cfg.LogLevel(), cfg.LogPath())
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer closer.Close()
		fileLogger.Info("opening project", "path", logging.SanitizePath(path), "video", logging.SanitizePath(doc.VideoPath))

		fmt.Printf("Opening video: %s\n", filepath.Base(doc.VideoPath))
		process, err := mpv.LaunchMpv(doc.VideoPath, cfg.MpvSocket())
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}

		client := mpv.NewClient(cfg.MpvSocket())
		if err := client.ConnectWithRetry(50, 100*time.Millisecond); err != nil { // up to 5 seconds
			if process.Process != nil {
				process.Process.Kill()
			}
			return fmt.Errorf("failed to connect to mpv: %w", err)
		}
		defer client.Close()

		library, err := openLibrary()
		if err != nil {
			fileLogger.Warn("continuing without project library", "err", err)
		} else {
			defer library.Close()
			if _, err := db.TouchProject(library, path, doc); err != nil {
				fileLogger.Warn("failed to record project", "err", err)
			}
		}

		session := newSession(client, doc, path, logging.WithComponent(fileLogger, "editor"))

		notifier, err := tally.New(cfg.OSCAddr(), logging.WithComponent(fileLogger, "tally"))
		if err != nil {
			client.Quit()
			return err
		}
		if notifier.Enabled() {
			session.AddListener(notifier)
		}

		runErr := tui.Run(session, tui.Options{
			DB:       library,
			Logger:   fileLogger,
			Autosave: cfg.Autosave(),
		})

		// mpv may already be gone if the user closed its window
		client.Quit()
		process.Wait()
		return runErr
	},
}

var newCmd = &cobra.Command{
	Use:   "new <video-file>",
	Short: "Create a project for a video",
	Long: `Create an empty project file for a video without opening the editor.

With --duration the project is seeded with one cue covering the whole
video, so it can be edited with cut, split and delete straight away.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		num, _ := cmd.Flags().GetInt("num")
		framerate, _ := cmd.Flags().GetFloat64("framerate")
		duration, _ := cmd.Flags().GetFloat64("duration")
		output, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")

		videoPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}
		if err := checkVideo(videoPath); err != nil {
			return err
		}

		path := project.DefaultPath(videoPath)
		if output != "" {
			if path, err = filepath.Abs(output); err != nil {
				return fmt.Errorf("failed to resolve path: %w", err)
			}
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("project already exists: %s (use --force to overwrite)", path)
		}

		doc := project.New(videoPath)
		if title != "" {
			doc.Title = title
		}
		if cmd.Flags().Changed("num") {
			doc.Num = &num
		}
		if framerate > 0 {
			doc.Framerate = framerate
		}
		if duration > 0 {
			doc.Cues = cue.Seed(doc.Cues, duration, cue.UUIDGenerator{})
		}

		if err := saveProject(path, doc); err != nil {
			return err
		}

		fmt.Printf("Project created: %s\n", path)
		if len(doc.Cues) == 0 {
			fmt.Println("Cues are seeded when the video is first opened.")
		}
		return nil
	},
}

// openOrCreate loads the project named by arg. A video without a project
// file gets a fresh document, saved on the first save in the editor.
func openOrCreate(arg string) (string, *cue.Document, error) {
	path, err := resolveProjectPath(arg)
	if err != nil {
		return "", nil, err
	}

	doc, err := project.Load(path, cue.UUIDGenerator{})
	if err == nil {
		return path, doc, nil
	}
	if !errors.Is(err, os.ErrNotExist) || strings.HasSuffix(arg, project.Extension) {
		return "", nil, fmt.Errorf("failed to load project: %w", err)
	}

	videoPath, err := filepath.Abs(arg)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	return path, project.New(videoPath), nil
}

func init() {
	newCmd.Flags().StringP("title", "t", "", "Project title")
	newCmd.Flags().Int("num", 0, "Roll number")
	newCmd.Flags().Float64("framerate", project.DefaultFramerate, "Nominal frame rate")
	newCmd.Flags().Float64("duration", 0, "Video duration in seconds; seeds the first cue")
	newCmd.Flags().StringP("output", "o", "", "Project file path (default: beside the video)")
	newCmd.Flags().BoolP("force", "f", false, "Overwrite an existing project")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(newCmd)
}
