package xdotool

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Norgate-AV/zoomctl/internal/logger"
)

// Mouse button numbers as understood by xdotool click
const (
	ButtonLeft = 1
)

// pointerInjector moves the pointer and synthesizes clicks
type pointerInjector struct {
	log    logger.LoggerInterface
	runner Runner
}

func newPointerInjector(log logger.LoggerInterface, runner Runner) *pointerInjector {
	return &pointerInjector{log: log, runner: runner}
}

// ClickAt moves the pointer to (x, y) and clicks the left button.
// xdotool takes whole pixels, so fractional coordinates are truncated.
func (p *pointerInjector) ClickAt(x, y float64) error {
	px, py := strconv.Itoa(int(x)), strconv.Itoa(int(y))
	p.log.Debug("Clicking", slog.String("x", px), slog.String("y", py))

	_, err := p.runner.Output("mousemove", "--sync", px, py, "click", strconv.Itoa(ButtonLeft))
	if err != nil {
		return fmt.Errorf("error clicking at %s,%s: %w", px, py, err)
	}

	return nil
}
