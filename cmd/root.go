package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/zoomctl/internal/config"
	"github.com/Norgate-AV/zoomctl/internal/interfaces"
	"github.com/Norgate-AV/zoomctl/internal/logger"
	"github.com/Norgate-AV/zoomctl/internal/notify"
	"github.com/Norgate-AV/zoomctl/internal/version"
	"github.com/Norgate-AV/zoomctl/internal/zoom"
)

// actionRunner runs a set of meeting actions
type actionRunner interface {
	Run(req zoom.ActionRequest) (*zoom.RunResult, error)
}

// RootCmd is the root command for the zoomctl CLI application.
var RootCmd = &cobra.Command{
	Use:   "zoomctl",
	Short: "zoomctl - Control the Zoom meeting window from hotkeys",
	Long: `zoomctl brings the Zoom meeting window to the foreground and sends meeting
shortcuts to it using xdotool. Unless --activate or --end-meeting is given,
focus returns to the previously active window afterwards.`,
	Version:      version.GetFullVersion(),
	Args:         cobra.NoArgs,
	RunE:         Execute,
	SilenceUsage: true, // Don't show usage on runtime errors
}

func init() {
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	addFlags(RootCmd)
}

// addFlags registers the zoomctl flags on cmd
func addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.BoolP("activate", "a", false, "bring the Zoom meeting window to the foreground")
	flags.BoolP("toggle-audio", "m", false, "toggle microphone mute (Alt+A)")
	flags.BoolP("toggle-video", "v", false, "toggle camera (Alt+V)")
	flags.BoolP("end-meeting", "e", false, "close the meeting window (Alt+F4)")
	flags.BoolP("verbose", "V", false, "enable verbose output")
	flags.BoolP("logs", "l", false, "print the current log file to stdout and exit")
	flags.BoolP("notify", "n", false, "show a desktop notification when the meeting window cannot be activated")
	flags.StringP("config", "c", "", "config file (default $XDG_CONFIG_HOME/zoomctl/config.yaml)")
}

// handleLogsFlag processes the --logs flag and exits if needed
func handleLogsFlag(cfg *Config, settings *config.Config, exitFunc func(int)) error {
	if !cfg.ShowLogs {
		return nil
	}

	opts := logger.LoggerOptions{LogDir: settings.LogDir}

	if err := logger.PrintLogFile(nil, opts); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Log file does not exist: %s\n", logger.GetLogPath(opts))
			exitFunc(1)
			return nil
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		exitFunc(1)
		return nil
	}

	exitFunc(0)
	return nil
}

// initializeLogger creates the logger for this run
func initializeLogger(cfg *Config, settings *config.Config) (logger.LoggerInterface, error) {
	log, err := logger.NewLogger(logger.LoggerOptions{
		Verbose:  cfg.Verbose,
		LogDir:   settings.LogDir,
		Compress: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// loadSettings loads the config file and environment, then applies flag overrides
func loadSettings(cfg *Config) (*config.Config, error) {
	settings, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	if cfg.Notify {
		settings.Notify = true
	}

	return settings, nil
}

// runActions runs the request and reports the outcome to the user
func runActions(runner actionRunner, req zoom.ActionRequest, notifier interfaces.Notifier, log logger.LoggerInterface) error {
	result, err := runner.Run(req)
	if err != nil {
		log.Error("Could not activate the Zoom meeting window", slog.Any("error", err))

		if errors.Is(err, zoom.ErrNotFound) {
			log.Info("Zoom Meeting window not found.")
			notifier.Error("Zoom meeting window not found")
		} else {
			notifier.Error("Could not activate the Zoom meeting window")
		}

		return fmt.Errorf("zoom meeting window unavailable: %w", err)
	}

	if req.Activate {
		log.Info("Zoom Meeting window brought to the foreground.")
	}

	if len(result.SentKeys) > 0 {
		log.Debug("Shortcuts sent", slog.Any("keys", result.SentKeys))
	}

	if result.FocusReturned {
		log.Debug("Focus returned", slog.String("window", result.PreviousWindow))
	}

	return nil
}

// Execute runs the provided command with the given arguments.
func Execute(cmd *cobra.Command, args []string) (err error) {
	cfg := NewConfigFromFlags(cmd)

	settings, err := loadSettings(cfg)
	if err != nil {
		return err
	}

	if err := handleLogsFlag(cfg, settings, os.Exit); err != nil {
		return err
	}

	log, err := initializeLogger(cfg, settings)
	if err != nil {
		return err
	}

	defer log.Close()

	log.Debug("Starting zoomctl", slog.String("version", version.GetVersion()))
	log.Debug("Flags set",
		slog.Bool("activate", cfg.Activate),
		slog.Bool("toggleAudio", cfg.ToggleAudio),
		slog.Bool("toggleVideo", cfg.ToggleVideo),
		slog.Bool("endMeeting", cfg.EndMeeting),
		slog.Bool("notify", settings.Notify),
	)

	// Recover from panics and log them
	defer func() {
		if r := recover(); r != nil {
			log.Error("PANIC RECOVERED",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)

			err = fmt.Errorf("panic: %v", r)
		}
	}()

	controller := zoom.NewController(log, settings)
	notifier := notify.New(settings.Notify, log)

	return runActions(controller, cfg.Request(), notifier, log)
}
