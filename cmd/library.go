package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/db"
	"github.com/user/showcut-cli/pkg/timeutil"
	"github.com/user/showcut-cli/project"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List recent projects",
	Long:  `Display the projects in the library, most recently used first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		library, err := openLibrary()
		if err != nil {
			return err
		}
		defer library.Close()

		projects, err := db.ListProjects(library, limit)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Title\tRoll\tCues\tCams\tLength\tUsed\tPath")
		fmt.Fprintln(w, "-----\t----\t----\t----\t------\t----\t----")
		for _, p := range projects {
			roll := "?"
			if p.Num != nil {
				roll = strconv.Itoa(*p.Num)
			}
			length := "-"
			if p.Duration > 0 {
				length = timeutil.FormatTime(p.Duration)
			}
			used := "never"
			if t := p.LastUsed(); !t.IsZero() {
				used = humanize.Time(t)
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n", p.Title, roll, p.CueCount, p.CameraCount, length, used, p.Path)
		}
		w.Flush()

		if len(projects) == 0 {
			fmt.Fprintln(out, "\nNo projects yet. Open a video to start one.")
		} else {
			fmt.Fprintf(out, "\n%d project(s).\n", len(projects))
		}
		return nil
	},
}

var projectsForgetCmd = &cobra.Command{
	Use:   "forget <project>",
	Short: "Remove a project from the library",
	Long:  `Remove a project and its snapshots from the library. The project file itself is left alone.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveProjectPath(args[0])
		if err != nil {
			return err
		}

		library, err := openLibrary()
		if err != nil {
			return err
		}
		defer library.Close()

		if err := db.ForgetProject(library, path); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("project not in library: %s", path)
			}
			return fmt.Errorf("failed to forget project: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s\n", path)
		return nil
	},
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots <project>",
	Short: "List the saved snapshots of a project",
	Long:  `Display the snapshots the library keeps for a project, newest first. Use an ID with restore --snapshot.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveProjectPath(args[0])
		if err != nil {
			return err
		}

		library, err := openLibrary()
		if err != nil {
			return err
		}
		defer library.Close()

		p, err := db.GetProject(library, path)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("project not in library: %s", path)
		}
		if err != nil {
			return err
		}
		snaps, err := db.ListSnapshots(library, p.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSaved\tReason\tCues\tSize")
		fmt.Fprintln(w, "--\t-----\t------\t----\t----")
		for _, s := range snaps {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", s.ID, humanize.Time(s.SavedAt), s.Reason, s.CueCount, humanize.Bytes(uint64(len(s.Body))))
		}
		w.Flush()

		if len(snaps) == 0 {
			fmt.Fprintln(out, "\nNo snapshots found.")
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <project>",
	Short: "Restore a project from a library snapshot",
	Long: `Overwrite a project file with a snapshot from the library: the newest one,
or the one given by --snapshot (see the snapshots command).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshotID, _ := cmd.Flags().GetInt64("snapshot")
		force, _ := cmd.Flags().GetBool("force")

		path, err := resolveProjectPath(args[0])
		if err != nil {
			return err
		}

		library, err := openLibrary()
		if err != nil {
			return err
		}
		defer library.Close()

		snap, err := findSnapshot(library, path, snapshotID)
		if err != nil {
			return err
		}
		doc, err := snap.Document(cue.UUIDGenerator{})
		if err != nil {
			return fmt.Errorf("failed to decode snapshot %d: %w", snap.ID, err)
		}

		out := cmd.OutOrStdout()
		if _, err := os.Stat(path); err == nil && !force {
			prompt := fmt.Sprintf("Replace %s with the %s snapshot from %s (%d cues)?",
				path, snap.Reason, humanize.Time(snap.SavedAt), snap.CueCount)
			if !confirm(cmd.InOrStdin(), out, prompt) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := project.Save(path, doc); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		if _, err := db.TouchProject(library, path, doc); err != nil {
			logger.Warn("failed to record project", "err", err)
		}

		fmt.Fprintf(out, "Restored snapshot %d (%d cues) to %s\n", snap.ID, len(doc.Cues), path)
		return nil
	},
}

// findSnapshot returns snapshot id of the project at path, or the newest
// one when id is 0.
func findSnapshot(library *sql.DB, path string, id int64) (*db.Snapshot, error) {
	if id == 0 {
		snap, err := db.LatestSnapshot(library, path)
		if err != nil {
			return nil, fmt.Errorf("failed to find snapshot: %w", err)
		}
		return snap, nil
	}

	p, err := db.GetProject(library, path)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	snaps, err := db.ListSnapshots(library, p.ID)
	if err != nil {
		return nil, err
	}
	for i := range snaps {
		if snaps[i].ID == id {
			return &snaps[i], nil
		}
	}
	return nil, fmt.Errorf("snapshot %d not found for %s", id, path)
}

func init() {
	projectsCmd.Flags().IntP("limit", "n", 20, "Maximum number of projects to list (0 for all)")
	restoreCmd.Flags().Int64("snapshot", 0, "Snapshot ID to restore (default: newest)")
	restoreCmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	projectsCmd.AddCommand(projectsForgetCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(restoreCmd)
}
