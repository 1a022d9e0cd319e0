// Package zoom locates the Zoom meeting window, brings it to the foreground
// and sends meeting shortcuts to it.
package zoom

import (
	"errors"
	"time"

	"github.com/Norgate-AV/zoomctl/internal/config"
	"github.com/Norgate-AV/zoomctl/internal/interfaces"
	"github.com/Norgate-AV/zoomctl/internal/logger"
	"github.com/Norgate-AV/zoomctl/internal/xdotool"
)

var (
	// ErrNotFound means no window title matched the search
	ErrNotFound = errors.New("window not found")
	// ErrActivationFailed means xdotool reported a failure activating the window
	ErrActivationFailed = errors.New("window activation failed")
	// ErrGeometryInvalid means the floating window has no usable position or size
	ErrGeometryInvalid = errors.New("invalid window geometry")
	// ErrUnexpected wraps any other failure of the xdotool layer
	ErrUnexpected = errors.New("unexpected error")
)

// Dependencies holds all external dependencies for testing
type Dependencies struct {
	WindowMgr interfaces.WindowManager
	Keyboard  interfaces.KeyboardInjector
	Pointer   interfaces.PointerInjector
	Sleep     func(time.Duration) // Defaults to time.Sleep
}

// Controller drives the Zoom client through the window system
type Controller struct {
	log       logger.LoggerInterface
	cfg       *config.Config
	windowMgr interfaces.WindowManager
	keyboard  interfaces.KeyboardInjector
	pointer   interfaces.PointerInjector
	sleep     func(time.Duration)
}

// NewController creates a Controller backed by the xdotool binary named in cfg
func NewController(log logger.LoggerInterface, cfg *config.Config) *Controller {
	client := xdotool.NewClient(log, cfg.Xdotool)

	return NewControllerWithDeps(log, cfg, &Dependencies{
		WindowMgr: client.Window,
		Keyboard:  client.Keyboard,
		Pointer:   client.Pointer,
	})
}

// NewControllerWithDeps creates a Controller with custom dependencies for testing
func NewControllerWithDeps(log logger.LoggerInterface, cfg *config.Config, deps *Dependencies) *Controller {
	sleep := deps.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	return &Controller{
		log:       log,
		cfg:       cfg,
		windowMgr: deps.WindowMgr,
		keyboard:  deps.Keyboard,
		pointer:   deps.Pointer,
		sleep:     sleep,
	}
}
