package xdotool

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidGeometry is returned when getwindowgeometry output cannot be
// parsed or describes a window with no area
var ErrInvalidGeometry = errors.New("invalid window geometry")

var (
	positionPattern = regexp.MustCompile(`^Position:\s*(-?\d+),(-?\d+)`)
	sizePattern     = regexp.MustCompile(`^Geometry:\s*(\d+)x(\d+)`)
)

// Geometry is a window's position and size in screen pixels
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Valid reports whether the geometry describes a window with a non-zero area
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

func (g Geometry) String() string {
	return fmt.Sprintf("%d/%d %dx%d", g.X, g.Y, g.Width, g.Height)
}

// ParseGeometry parses the output of `xdotool getwindowgeometry`:
//
//	Window 146800748
//	  Position: 396,153 (screen: 0)
//	  Geometry: 1190x802
//
// The values parsed so far are returned alongside ErrInvalidGeometry when a
// Position or Geometry line is malformed or out of range, or the width or
// height is zero.
func ParseGeometry(output string) (Geometry, error) {
	var g Geometry

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)

		var err error
		switch {
		case strings.HasPrefix(line, "Position:"):
			g.X, g.Y, err = parsePair(positionPattern, line, g.X, g.Y)
		case strings.HasPrefix(line, "Geometry:"):
			g.Width, g.Height, err = parsePair(sizePattern, line, g.Width, g.Height)
		}

		if err != nil {
			return g, err
		}
	}

	if !g.Valid() {
		return g, fmt.Errorf("%w: %s", ErrInvalidGeometry, g)
	}

	return g, nil
}

// parsePair extracts the two numbers of a Position or Geometry line. On
// failure the current values a and b are returned unchanged.
func parsePair(pattern *regexp.Regexp, line string, a, b int) (int, int, error) {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return a, b, fmt.Errorf("%w: malformed line %q", ErrInvalidGeometry, line)
	}

	first, err := strconv.Atoi(m[1])
	if err != nil {
		return a, b, fmt.Errorf("%w: %q: %w", ErrInvalidGeometry, line, err)
	}

	second, err := strconv.Atoi(m[2])
	if err != nil {
		return a, b, fmt.Errorf("%w: %q: %w", ErrInvalidGeometry, line, err)
	}

	return first, second, nil
}
