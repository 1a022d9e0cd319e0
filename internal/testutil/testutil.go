// Package testutil provides test utilities and mock implementations.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Norgate-AV/zoomctl/internal/xdotool"
)

// FloatWindowGeometryOutput is real `xdotool getwindowgeometry` output for
// Zoom's floating video window
const FloatWindowGeometryOutput = "Window 146800748\n  Position: 396,153 (screen: 0)\n  Geometry: 1190x802\n"

// FloatWindowGeometry is FloatWindowGeometryOutput parsed
var FloatWindowGeometry = xdotool.Geometry{X: 396, Y: 153, Width: 1190, Height: 802}

// WriteFile writes content to dir/name, creating dir if needed, and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	return path
}
