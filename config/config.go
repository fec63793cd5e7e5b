// Package config provides configuration management for showcut.
// Configuration is loaded from environment variables with sensible defaults;
// command-line flags may override individual values afterwards.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/user/showcut-cli/mpv"
)

const (
	// Default values
	DefaultLogLevel = "info"
	DefaultHTTPAddr = "127.0.0.1:8790"
	DefaultAutosave = 2 * time.Minute

	// Environment variable names
	EnvLogLevel  = "SHOWCUT_LOG_LEVEL"
	EnvDataDir   = "SHOWCUT_DATA_DIR"
	EnvMpvSocket = "SHOWCUT_MPV_SOCKET"
	EnvOSCAddr   = "SHOWCUT_OSC_ADDR"
	EnvHTTPAddr  = "SHOWCUT_HTTP_ADDR"
	EnvAutosave  = "SHOWCUT_AUTOSAVE"

	// LogFilename is written inside the data directory by the TUI.
	LogFilename = "showcut.log"
)

// Config holds the resolved settings.
type Config struct {
	logLevel  string
	dataDir   string
	mpvSocket string
	oscAddr   string
	httpAddr  string
	autosave  time.Duration
}

// New creates a Config with defaults and environment variable overrides.
func New() (*Config, error) {
	cfg := &Config{
		logLevel:  DefaultLogLevel,
		dataDir:   defaultDataDir(),
		mpvSocket: mpv.DefaultSocketPath,
		httpAddr:  DefaultHTTPAddr,
		autosave:  DefaultAutosave,
	}

	if ll := os.Getenv(EnvLogLevel); ll != "" {
		if _, err := log.ParseLevel(strings.ToLower(ll)); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
		cfg.logLevel = strings.ToLower(ll)
	}

	if dd := os.Getenv(EnvDataDir); dd != "" {
		cfg.dataDir = dd
	}

	if s := os.Getenv(EnvMpvSocket); s != "" {
		cfg.mpvSocket = s
	}

	if a := os.Getenv(EnvOSCAddr); a != "" {
		if err := checkHostPort(a); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvOSCAddr, err)
		}
		cfg.oscAddr = a
	}

	if a := os.Getenv(EnvHTTPAddr); a != "" {
		if err := checkHostPort(a); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvHTTPAddr, err)
		}
		cfg.httpAddr = a
	}

	if v := os.Getenv(EnvAutosave); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvAutosave, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid %s: must not be negative", EnvAutosave)
		}
		cfg.autosave = d
	}

	return cfg, nil
}

func checkHostPort(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if port == "" {
		return fmt.Errorf("missing port in %q", addr)
	}
	return nil
}

// LogLevel returns the log level (debug, info, warn, error)
func (c *Config) LogLevel() string {
	return c.logLevel
}

// DataDir returns the data directory holding the project library and log.
func (c *Config) DataDir() string {
	return c.dataDir
}

// LogPath returns the TUI log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.dataDir, LogFilename)
}

// MpvSocket returns the mpv IPC socket path.
func (c *Config) MpvSocket() string {
	return c.mpvSocket
}

// OSCAddr returns the tally target, empty when tally is off.
func (c *Config) OSCAddr() string {
	return c.oscAddr
}

// HTTPAddr returns the listen address for `showcut serve`.
func (c *Config) HTTPAddr() string {
	return c.httpAddr
}

// Autosave returns the snapshot interval; 0 disables autosave.
func (c *Config) Autosave() time.Duration {
	return c.autosave
}

// SetLogLevel overrides the log level.
func (c *Config) SetLogLevel(level string) {
	if level != "" {
		c.logLevel = strings.ToLower(level)
	}
}

// SetDataDir overrides the data directory.
func (c *Config) SetDataDir(dir string) {
	if dir != "" {
		c.dataDir = dir
	}
}

// SetOSCAddr overrides the tally target.
func (c *Config) SetOSCAddr(addr string) {
	if addr != "" {
		c.oscAddr = addr
	}
}

// SetHTTPAddr overrides the listen address.
func (c *Config) SetHTTPAddr(addr string) {
	if addr != "" {
		c.httpAddr = addr
	}
}

// defaultDataDir returns ~/.local/share/showcut, or .showcut when no home
// directory is available.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".showcut"
	}
	return filepath.Join(home, ".local", "share", "showcut")
}

// Version information (set at build time via ldflags)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)
