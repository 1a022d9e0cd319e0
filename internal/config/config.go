// Package config loads zoomctl settings from defaults, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/zoomctl/internal/timeouts"
)

// EnvPrefix is prepended to every environment override, e.g. ZOOMCTL_XDOTOOL
const EnvPrefix = "ZOOMCTL"

const (
	DefaultXdotool       = "xdotool"
	DefaultMainWindow    = "Meeting"
	DefaultFloatWindow   = "zoom_linux_float_video_window"
	DefaultFailureMarker = "failed"
	DefaultToggleAudio   = "alt+a"
	DefaultToggleVideo   = "alt+v"
	DefaultEndMeeting    = "alt+F4"
	DefaultClickInset    = 0.1
)

// Config holds all runtime settings
type Config struct {
	// Xdotool is the path or name of the xdotool binary
	Xdotool string `yaml:"xdotool" split_words:"true"`
	// MainWindow is a substring of the Zoom meeting window title
	MainWindow string `yaml:"main_window" split_words:"true"`
	// FloatWindow is the title of the minimized floating video window
	FloatWindow string `yaml:"float_window" split_words:"true"`
	// FailureMarker marks a failed activation in windowactivate output
	FailureMarker string          `yaml:"failure_marker" split_words:"true"`
	Shortcuts     ShortcutsConfig `yaml:"shortcuts" split_words:"true"`
	Restore       RestoreConfig   `yaml:"restore" split_words:"true"`
	LogDir        string          `yaml:"log_dir" split_words:"true"`
	Notify        bool            `yaml:"notify" split_words:"true"`
}

// ShortcutsConfig holds Zoom key chords in xdotool key syntax
type ShortcutsConfig struct {
	ToggleAudio string `yaml:"toggle_audio" split_words:"true"`
	ToggleVideo string `yaml:"toggle_video" split_words:"true"`
	EndMeeting  string `yaml:"end_meeting" split_words:"true"`
}

// RestoreConfig tunes the click used to expand the floating window
type RestoreConfig struct {
	// ClickInset is the fraction of width and height left between the
	// click and the bottom-right corner
	ClickInset  float64       `yaml:"click_inset" split_words:"true"`
	DoubleClick bool          `yaml:"double_click" split_words:"true"`
	ClickDelay  time.Duration `yaml:"click_delay" split_words:"true"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Xdotool:       DefaultXdotool,
		MainWindow:    DefaultMainWindow,
		FloatWindow:   DefaultFloatWindow,
		FailureMarker: DefaultFailureMarker,
		Shortcuts: ShortcutsConfig{
			ToggleAudio: DefaultToggleAudio,
			ToggleVideo: DefaultToggleVideo,
			EndMeeting:  DefaultEndMeeting,
		},
		Restore: RestoreConfig{
			ClickInset:  DefaultClickInset,
			DoubleClick: true,
			ClickDelay:  timeouts.ClickRetryDelay,
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/zoomctl/config.yaml,
// falling back to ~/.config/zoomctl/config.yaml
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, "zoomctl", "config.yaml"), nil
}

// Load builds the effective configuration. An empty path means the default
// location, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""

	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := Default()

	// A missing default file is the common case
	if err := cfg.loadFile(path); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	var problems []string

	required := map[string]string{
		"xdotool":                c.Xdotool,
		"main_window":            c.MainWindow,
		"float_window":           c.FloatWindow,
		"failure_marker":         c.FailureMarker,
		"shortcuts.toggle_audio": c.Shortcuts.ToggleAudio,
		"shortcuts.toggle_video": c.Shortcuts.ToggleVideo,
		"shortcuts.end_meeting":  c.Shortcuts.EndMeeting,
	}

	for _, key := range slices.Sorted(maps.Keys(required)) {
		if strings.TrimSpace(required[key]) == "" {
			problems = append(problems, key+" must not be empty")
		}
	}

	if c.Restore.ClickInset <= 0 || c.Restore.ClickInset >= 1 {
		problems = append(problems, fmt.Sprintf("restore.click_inset must be between 0 and 1, got %g", c.Restore.ClickInset))
	}

	if c.Restore.ClickDelay < 0 {
		problems = append(problems, "restore.click_delay must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}
