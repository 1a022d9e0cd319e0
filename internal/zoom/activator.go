package zoom

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Norgate-AV/zoomctl/internal/xdotool"
)

// ActivateWindow raises and focuses a window. With sync set it waits for the
// window manager to confirm. The result is false when the windowactivate
// output contains the configured failure marker; empty output is success.
func (c *Controller) ActivateWindow(windowID string, sync bool) (bool, error) {
	output, err := c.windowMgr.Activate(windowID, sync)
	if err != nil {
		if errors.Is(err, xdotool.ErrTimeout) {
			c.log.Warn("Window activation timed out", slog.String("window", windowID))
			return false, nil
		}

		return false, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	if output != "" && strings.Contains(output, c.cfg.FailureMarker) {
		c.log.Debug("Window activation reported failure",
			slog.String("window", windowID),
			slog.Bool("sync", sync),
		)
		return false, nil
	}

	return true, nil
}
