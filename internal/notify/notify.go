// Package notify shows desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/Norgate-AV/zoomctl/internal/logger"
)

const appName = "zoomctl"

// send is replaced in tests
var send = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Notifier sends desktop notifications when enabled
type Notifier struct {
	enabled bool
	log     logger.LoggerInterface
}

// New creates a Notifier
func New(enabled bool, log logger.LoggerInterface) *Notifier {
	return &Notifier{enabled: enabled, log: log}
}

// Error shows a failure notification. zoomctl usually runs from a hotkey
// with no terminal attached, so this is the only feedback the user sees.
func (n *Notifier) Error(msg string) {
	if !n.enabled {
		return
	}

	// Notification failures are not critical
	if err := send(appName, msg); err != nil {
		n.log.Debug("Desktop notification failed", slog.Any("error", err))
	}
}
