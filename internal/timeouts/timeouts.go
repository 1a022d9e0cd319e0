// Package timeouts defines timeout and delay constants for xdotool operations.
package timeouts

import "time"

const (
	// External Command Timeouts

	// CommandTimeout bounds every xdotool invocation. A synchronous
	// windowactivate blocks until the window manager reports the window as
	// active, which never happens for some minimized Zoom windows.
	CommandTimeout = 10 * time.Second

	// Restore Delays

	// ClickRetryDelay is the pause between the first and second synthesized
	// click on the floating video window. Zoom ignores a click that arrives
	// while the mini window is still animating in.
	ClickRetryDelay = 500 * time.Millisecond
)
