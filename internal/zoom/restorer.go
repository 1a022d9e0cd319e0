package zoom

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Norgate-AV/zoomctl/internal/xdotool"
)

// Point is a screen position for a synthesized click
type Point struct {
	X float64
	Y float64
}

// ClickTarget returns the point inset from the bottom-right corner of g by
// the given fraction of its width and height. Zoom draws the control that
// expands the floating video window there.
func ClickTarget(g xdotool.Geometry, inset float64) Point {
	w, h := float64(g.Width), float64(g.Height)

	return Point{
		X: float64(g.X) + w - w*inset,
		Y: float64(g.Y) + h - h*inset,
	}
}

// RestoreFloatingWindow expands Zoom's floating mini window with a synthesized
// click so that the meeting window can be activated again. It makes a single
// attempt; the caller re-activates the meeting window afterwards.
func (c *Controller) RestoreFloatingWindow() error {
	windowID, err := c.FindWindow(c.cfg.FloatWindow)
	if err != nil {
		return err
	}

	c.log.Debug("Floating window found", slog.String("window", windowID))

	geometry, err := c.windowMgr.GetGeometry(windowID)
	if err != nil {
		if errors.Is(err, xdotool.ErrInvalidGeometry) {
			c.log.Warn("Floating window has invalid dimensions",
				slog.String("window", windowID),
				slog.String("geometry", geometry.String()),
			)
			return fmt.Errorf("%w: window %s: %w", ErrGeometryInvalid, windowID, err)
		}

		return fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	target := ClickTarget(geometry, c.cfg.Restore.ClickInset)
	c.log.Debug("Clicking floating window",
		slog.String("geometry", geometry.String()),
		slog.Float64("x", target.X),
		slog.Float64("y", target.Y),
	)

	c.click(target.X, target.Y)

	if c.cfg.Restore.DoubleClick {
		// Zoom drops the first click while the mini window is settling
		c.sleep(c.cfg.Restore.ClickDelay)
		c.click(target.X-1, target.Y-1)
	}

	return nil
}

// click synthesizes one click. A failed click is not fatal; the caller's
// reactivation decides whether the restore worked.
func (c *Controller) click(x, y float64) {
	if err := c.pointer.ClickAt(x, y); err != nil {
		c.log.Warn("Click on floating window failed",
			slog.Float64("x", x),
			slog.Float64("y", y),
			slog.Any("error", err),
		)
	}
}
