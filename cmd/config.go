// Package cmd implements the command-line interface for zoomctl.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/zoomctl/internal/zoom"
)

// Config holds the options given on the command line
type Config struct {
	Verbose     bool
	ShowLogs    bool
	Notify      bool
	ConfigPath  string
	Activate    bool
	ToggleAudio bool
	ToggleVideo bool
	EndMeeting  bool
}

// NewConfigFromFlags creates a Config from parsed command flags
func NewConfigFromFlags(cmd *cobra.Command) *Config {
	return &Config{
		Verbose:     getBoolFlag(cmd, "verbose"),
		ShowLogs:    getBoolFlag(cmd, "logs"),
		Notify:      getBoolFlag(cmd, "notify"),
		ConfigPath:  getStringFlag(cmd, "config"),
		Activate:    getBoolFlag(cmd, "activate"),
		ToggleAudio: getBoolFlag(cmd, "toggle-audio"),
		ToggleVideo: getBoolFlag(cmd, "toggle-video"),
		EndMeeting:  getBoolFlag(cmd, "end-meeting"),
	}
}

// Request returns the actions selected by the flags
func (c *Config) Request() zoom.ActionRequest {
	return zoom.ActionRequest{
		Activate:    c.Activate,
		ToggleAudio: c.ToggleAudio,
		ToggleVideo: c.ToggleVideo,
		EndMeeting:  c.EndMeeting,
	}
}

// getBoolFlag retrieves a boolean flag, checking both local and persistent flags
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		val, _ = cmd.PersistentFlags().GetBool(name)
	}

	return val
}

// getStringFlag retrieves a string flag, checking both local and persistent flags
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		val, _ = cmd.PersistentFlags().GetString(name)
	}

	return val
}
