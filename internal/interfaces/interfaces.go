// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

import (
	"github.com/Norgate-AV/zoomctl/internal/xdotool"
)

// WindowManager handles window queries and activation
type WindowManager interface {
	Search(name string) ([]string, error)
	Activate(windowID string, sync bool) (string, error)
	GetGeometry(windowID string) (xdotool.Geometry, error)
	GetActiveWindow() (string, error)
}

// KeyboardInjector handles keyboard input
type KeyboardInjector interface {
	SendKey(combo string) error
}

// PointerInjector handles pointer movement and clicks
type PointerInjector interface {
	ClickAt(x, y float64) error
}

// Notifier shows desktop notifications
type Notifier interface {
	Error(msg string)
}
