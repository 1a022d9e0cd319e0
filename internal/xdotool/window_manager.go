package xdotool

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Norgate-AV/zoomctl/internal/logger"
)

// windowManager implements window queries and activation
type windowManager struct {
	log    logger.LoggerInterface
	runner Runner
}

func newWindowManager(log logger.LoggerInterface, runner Runner) *windowManager {
	return &windowManager{log: log, runner: runner}
}

// Search returns the IDs of all windows whose title contains name.
// xdotool exits non-zero when nothing matches, which is reported as an empty result.
func (w *windowManager) Search(name string) ([]string, error) {
	out, err := w.runner.Output("search", "--name", name)
	w.log.Debug("xdotool search", slog.String("name", name), slog.String("output", strings.TrimSpace(string(out))))

	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return nil, nil
		}

		return nil, fmt.Errorf("error searching for window %q: %w", name, err)
	}

	return splitLines(string(out)), nil
}

// Activate raises and focuses a window and returns the combined output of
// windowactivate. With sync set xdotool waits until the window is active.
// A non-zero exit is not an error here; callers inspect the output.
func (w *windowManager) Activate(windowID string, sync bool) (string, error) {
	args := []string{"windowactivate"}
	if sync {
		args = append(args, "--sync")
	}

	args = append(args, windowID)

	out, err := w.runner.CombinedOutput(args...)
	output := string(out)

	w.log.Debug("xdotool windowactivate",
		slog.String("window", windowID),
		slog.Bool("sync", sync),
		slog.String("output", strings.TrimSpace(output)),
	)

	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return output, nil
		}

		return output, fmt.Errorf("error activating window %s: %w", windowID, err)
	}

	return output, nil
}

// GetGeometry returns the position and size of a window. A non-zero exit
// is reported as ErrInvalidGeometry.
func (w *windowManager) GetGeometry(windowID string) (Geometry, error) {
	out, err := w.runner.Output("getwindowgeometry", windowID)
	w.log.Debug("xdotool getwindowgeometry", slog.String("window", windowID), slog.String("output", string(out)))

	if err != nil {
		// A window that vanished between search and query has no geometry
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return Geometry{}, fmt.Errorf("%w: window %s: %w", ErrInvalidGeometry, windowID, err)
		}

		return Geometry{}, fmt.Errorf("error getting geometry of window %s: %w", windowID, err)
	}

	return ParseGeometry(string(out))
}

// GetActiveWindow returns the ID of the currently focused window
func (w *windowManager) GetActiveWindow() (string, error) {
	out, err := w.runner.Output("getactivewindow")
	if err != nil {
		return "", fmt.Errorf("error getting active window: %w", err)
	}

	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("no active window reported")
	}

	w.log.Debug("xdotool getactivewindow", slog.String("window", id))
	return id, nil
}

func splitLines(s string) []string {
	var lines []string

	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
