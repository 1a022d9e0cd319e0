package xdotool

import (
	"fmt"
	"log/slog"

	"github.com/Norgate-AV/zoomctl/internal/logger"
)

// keyboardInjector sends key chords to the focused window
type keyboardInjector struct {
	log    logger.LoggerInterface
	runner Runner
}

func newKeyboardInjector(log logger.LoggerInterface, runner Runner) *keyboardInjector {
	return &keyboardInjector{log: log, runner: runner}
}

// SendKey sends a key chord in xdotool syntax, e.g. "alt+a" or "alt+F4"
func (k *keyboardInjector) SendKey(combo string) error {
	k.log.Debug("Sending key", slog.String("combo", combo))

	if _, err := k.runner.CombinedOutput("key", combo); err != nil {
		return fmt.Errorf("error sending key %s: %w", combo, err)
	}

	return nil
}
