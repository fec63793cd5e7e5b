package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/showcut-cli/config"
	"github.com/user/showcut-cli/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve <project>",
	Short: "Serve a project over HTTP",
	Long: `Serve a read-only JSON view of a project for graphics or show-control
systems. The project file is reloaded whenever it changes on disk, so saves
from the editor show up without a restart.

Endpoints:
  GET /health
  GET /document
  GET /cues
  GET /cues/active?t=<seconds>
  GET /export/edl
  GET /export/csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _, err := loadProject(args[0])
		if err != nil {
			return err
		}

		serverLogger := logger.WithPrefix("http")
		server := httpapi.NewServer(httpapi.ServerConfig{
			Addr:    cfg.HTTPAddr(),
			Source:  &httpapi.FileSource{Path: path},
			Logger:  serverLogger,
			Version: config.Version,
			Started: time.Now(),
		})

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()
		fmt.Printf("Serving %s on http://%s\n", path, server.Addr())

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("HTTP server error: %w", err)
			}
			return nil
		case sig := <-sigCh:
			serverLogger.Info("received shutdown signal", "signal", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down HTTP server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
