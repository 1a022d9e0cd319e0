package zoom

import (
	"fmt"
	"log/slog"
)

// FindWindow returns the first window whose title contains name
func (c *Controller) FindWindow(name string) (string, error) {
	ids, err := c.windowMgr.Search(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnexpected, err)
	}

	if len(ids) == 0 {
		c.log.Debug("No window matched", slog.String("name", name))
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	c.log.Debug("Window found",
		slog.String("name", name),
		slog.String("window", ids[0]),
		slog.Int("matches", len(ids)),
	)

	return ids[0], nil
}
