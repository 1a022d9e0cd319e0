package zoom

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// ActionRequest is the set of operations requested on one invocation
type ActionRequest struct {
	Activate    bool
	ToggleAudio bool
	ToggleVideo bool
	EndMeeting  bool
}

// Empty reports whether no operation was requested
func (r ActionRequest) Empty() bool {
	return !r.Activate && !r.ToggleAudio && !r.ToggleVideo && !r.EndMeeting
}

// returnsFocus reports whether focus goes back to the previously active
// window once the shortcuts are sent
func (r ActionRequest) returnsFocus() bool {
	return !r.Activate && !r.EndMeeting
}

// RunResult describes what Run did
type RunResult struct {
	Window         string   // Meeting window that was activated
	PreviousWindow string   // Window that was active before, empty if unknown
	SentKeys       []string // Shortcuts sent, in order
	FocusReturned  bool
}

// BringToForeground finds the meeting window and activates it. When direct
// activation fails it restores the floating mini window and tries once more.
// It returns the meeting window ID.
func (c *Controller) BringToForeground() (windowID string, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Recovered from panic while activating meeting window",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)

			windowID = ""
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	windowID, err = c.FindWindow(c.cfg.MainWindow)
	if err != nil {
		return "", err
	}

	ok, err := c.ActivateWindow(windowID, false)
	if err != nil {
		return "", err
	}

	if ok {
		// Settle step; the async request already succeeded
		settled, settleErr := c.ActivateWindow(windowID, true)
		if settleErr != nil {
			return "", settleErr
		}

		c.log.Debug("Meeting window activated", slog.String("window", windowID), slog.Bool("settled", settled))
		return windowID, nil
	}

	c.log.Debug("Meeting window could not be activated, trying the floating window")

	if err := c.RestoreFloatingWindow(); err != nil {
		return "", err
	}

	ok, err = c.ActivateWindow(windowID, true)
	if err != nil {
		return "", err
	}

	if !ok {
		return "", fmt.Errorf("%w: window %s", ErrActivationFailed, windowID)
	}

	c.log.Debug("Meeting window activated after restore", slog.String("window", windowID))
	return windowID, nil
}

// Run activates the meeting window, sends the requested shortcuts and, unless
// the request activates or ends the meeting, returns focus to the window that
// was active before. If the meeting window cannot be activated no shortcut is
// sent and the error is returned.
func (c *Controller) Run(req ActionRequest) (*RunResult, error) {
	result := &RunResult{}

	if req.Empty() {
		c.log.Info("No action requested")
		return result, nil
	}

	previous, err := c.windowMgr.GetActiveWindow()
	if err != nil {
		c.log.Warn("Could not determine the active window, focus will stay on Zoom", slog.Any("error", err))
	}

	result.PreviousWindow = previous

	windowID, err := c.BringToForeground()
	if err != nil {
		return result, err
	}

	result.Window = windowID

	shortcuts := []struct {
		requested bool
		name      string
		combo     string
	}{
		{req.ToggleAudio, "toggle audio", c.cfg.Shortcuts.ToggleAudio},
		{req.ToggleVideo, "toggle video", c.cfg.Shortcuts.ToggleVideo},
		{req.EndMeeting, "end meeting", c.cfg.Shortcuts.EndMeeting},
	}

	for _, s := range shortcuts {
		if !s.requested {
			continue
		}

		if err := c.keyboard.SendKey(s.combo); err != nil {
			c.log.Warn("Failed to send shortcut", slog.String("action", s.name), slog.Any("error", err))
			continue
		}

		c.log.Debug("Shortcut sent", slog.String("action", s.name), slog.String("combo", s.combo))
		result.SentKeys = append(result.SentKeys, s.combo)
	}

	if req.returnsFocus() && previous != "" {
		ok, err := c.ActivateWindow(previous, true)
		if err != nil {
			c.log.Warn("Failed to return focus", slog.String("window", previous), slog.Any("error", err))
		}

		result.FocusReturned = ok
	}

	return result, nil
}
