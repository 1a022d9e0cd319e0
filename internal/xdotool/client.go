// Package xdotool drives the xdotool command-line tool for window queries and synthetic input.
package xdotool

import (
	"github.com/Norgate-AV/zoomctl/internal/logger"
	"github.com/Norgate-AV/zoomctl/internal/timeouts"
)

// DefaultPath is the binary looked up on PATH when no path is configured
const DefaultPath = "xdotool"

// Client provides methods for interacting with the X server through xdotool
// It composes specialized managers for different categories of functionality
type Client struct {
	log      logger.LoggerInterface
	Window   *windowManager
	Keyboard *keyboardInjector
	Pointer  *pointerInjector
}

// NewClient creates a client that executes the xdotool binary at path
func NewClient(log logger.LoggerInterface, path string) *Client {
	if path == "" {
		path = DefaultPath
	}

	return NewClientWithRunner(log, newExecRunner(path, timeouts.CommandTimeout, log))
}

// NewClientWithRunner creates a client on top of a custom runner
func NewClientWithRunner(log logger.LoggerInterface, runner Runner) *Client {
	return &Client{
		log:      log,
		Window:   newWindowManager(log, runner),
		Keyboard: newKeyboardInjector(log, runner),
		Pointer:  newPointerInjector(log, runner),
	}
}
