package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/user/showcut-cli/config"
	"github.com/user/showcut-cli/deps"
	"github.com/user/showcut-cli/logging"
)

var (
	// cfg and logger are set up by rootCmd before any subcommand runs.
	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "showcut",
	Short: "A terminal cue editor for multi-camera cuts",
	Long: `showcut tags a video with camera cues while it plays in mpv.

Every cue is a contiguous time range labelled with a camera number. Cues
always cover the whole clip, so the result reads as a cut list that can be
exported as an EDL, a CSV cut sheet or per-cue clips.

Features:
  - Live cutting with number keys while the video plays
  - Timeline scrubbing with snapping to cue boundaries
  - JSON project files with a local library of recent projects
  - OSC tally messages and a read-only HTTP view of the cut`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.New()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			level, _ := flags.GetString("log-level")
			c.SetLogLevel(level)
		}
		if flags.Changed("data-dir") {
			dir, _ := flags.GetString("data-dir")
			c.SetDataDir(dir)
		}
		if flags.Changed("osc") {
			addr, _ := flags.GetString("osc")
			c.SetOSCAddr(addr)
		}
		if flags.Changed("http") {
			addr, _ := flags.GetString("http")
			c.SetHTTPAddr(addr)
		}

		cfg = c
		logger = logging.New(cfg.LogLevel(), os.Stderr)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("showcut version %s (%s)\n", config.Version, config.GitCommit)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the external programs showcut drives (mpv, ffmpeg) are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		for _, s := range deps.CheckAll() {
			if s.Err != nil {
				fmt.Printf("✗ %s: NOT FOUND (%s)\n", s.Name, s.Purpose)
				fmt.Printf("  Install from: %s\n", s.InstallURL)
				allGood = false
			} else {
				fmt.Printf("✓ %s: OK\n", s.Name)
			}
		}

		fmt.Println()
		fmt.Printf("Data directory: %s\n", cfg.DataDir())
		fmt.Printf("mpv socket:     %s\n", cfg.MpvSocket())
		if cfg.OSCAddr() != "" {
			fmt.Printf("OSC tally:      %s\n", cfg.OSCAddr())
		} else {
			fmt.Println("OSC tally:      disabled")
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.String("data-dir", "", "Directory for the project library and logs")
	pf.String("osc", "", "Send OSC tally messages to host:port")
	pf.String("http", config.DefaultHTTPAddr, "Listen address for serve")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
