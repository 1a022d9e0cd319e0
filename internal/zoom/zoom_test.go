package zoom_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/zoomctl/internal/config"
	"github.com/Norgate-AV/zoomctl/internal/logger"
	"github.com/Norgate-AV/zoomctl/internal/testutil"
	"github.com/Norgate-AV/zoomctl/internal/xdotool"
	"github.com/Norgate-AV/zoomctl/internal/zoom"
)

const (
	mainWindow     = "Meeting"
	floatWindow    = "zoom_linux_float_video_window"
	meetingID      = "146800760"
	floatID        = "146800748"
	previousID     = "98566147"
	activateFailed = "XGetWindowProperty[_NET_WM_DESKTOP] failed (code=1)\n"
)

// harness wires a controller to fresh mocks
type harness struct {
	windowMgr *testutil.MockWindowManager
	keyboard  *testutil.MockKeyboardInjector
	pointer   *testutil.MockPointerInjector
	sleeps    []time.Duration
	cfg       *config.Config
}

func newHarness() *harness {
	return &harness{
		windowMgr: testutil.NewMockWindowManager(),
		keyboard:  testutil.NewMockKeyboardInjector(),
		pointer:   testutil.NewMockPointerInjector(),
		cfg:       config.Default(),
	}
}

func (h *harness) controller() *zoom.Controller {
	return zoom.NewControllerWithDeps(logger.NewNoOpLogger(), h.cfg, &zoom.Dependencies{
		WindowMgr: h.windowMgr,
		Keyboard:  h.keyboard,
		Pointer:   h.pointer,
		Sleep:     func(d time.Duration) { h.sleeps = append(h.sleeps, d) },
	})
}

func TestFindWindow(t *testing.T) {
	h := newHarness()
	h.windowMgr.WithWindow(mainWindow, meetingID, "146800999")

	id, err := h.controller().FindWindow(mainWindow)

	require.NoError(t, err)
	assert.Equal(t, meetingID, id, "Should return the first match")
}

func TestFindWindow_NotFound(t *testing.T) {
	h := newHarness()

	id, err := h.controller().FindWindow(mainWindow)

	assert.ErrorIs(t, err, zoom.ErrNotFound)
	assert.Empty(t, id)
}

func TestFindWindow_SearchError(t *testing.T) {
	h := newHarness()
	h.windowMgr.WithSearchErr(errors.New("exec: \"xdotool\": executable file not found"))

	_, err := h.controller().FindWindow(mainWindow)

	assert.ErrorIs(t, err, zoom.ErrUnexpected)
}

func TestActivateWindow(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected bool
	}{
		{name: "empty output", output: "", expected: true},
		{name: "unrelated output", output: "Window 42 activated\n", expected: true},
		{name: "failure marker", output: activateFailed, expected: false},
		{name: "marker anywhere in output", output: "something failed", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.windowMgr.WithActivateOutputs(tt.output)

			ok, err := h.controller().ActivateWindow(meetingID, true)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, []testutil.ActivateCall{{WindowID: meetingID, Sync: true}}, h.windowMgr.ActivateCalls)
		})
	}
}

func TestActivateWindow_CustomMarker(t *testing.T) {
	h := newHarness()
	h.cfg.FailureMarker = "BadWindow"
	h.windowMgr.WithActivateOutputs(activateFailed)

	ok, err := h.controller().ActivateWindow(meetingID, false)

	require.NoError(t, err)
	assert.True(t, ok, "Only the configured marker signals failure")
}

func TestActivateWindow_Timeout(t *testing.T) {
	h := newHarness()
	h.windowMgr.WithActivateErr(fmt.Errorf("%w after 10s", xdotool.ErrTimeout))

	ok, err := h.controller().ActivateWindow(meetingID, true)

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestActivateWindow_RunError(t *testing.T) {
	h := newHarness()
	h.windowMgr.WithActivateErr(errors.New("exec failed"))

	ok, err := h.controller().ActivateWindow(meetingID, true)

	assert.ErrorIs(t, err, zoom.ErrUnexpected)
	assert.False(t, ok)
}

func TestClickTarget(t *testing.T) {
	p := zoom.ClickTarget(testutil.FloatWindowGeometry, 0.1)

	assert.InDelta(t, 1467.0, p.X, 1e-9)
	assert.InDelta(t, 874.8, p.Y, 1e-9)
}

func TestClickTarget_FromParsedOutput(t *testing.T) {
	g, err := xdotool.ParseGeometry("Window 1\n  Position: 396,153 (screen: 0)\n  Geometry: 1190x802\n")
	require.NoError(t, err)

	p := zoom.ClickTarget(g, config.DefaultClickInset)

	assert.InDelta(t, 396+1190-119.0, p.X, 1e-9)
	assert.InDelta(t, 153+802-80.2, p.Y, 1e-9)
}

func TestRestoreFloatingWindow_DoubleClick(t *testing.T) {
	h := newHarness()
	h.windowMgr.
		WithWindow(floatWindow, floatID).
		WithGeometry(testutil.FloatWindowGeometry, nil)

	err := h.controller().RestoreFloatingWindow()

	require.NoError(t, err)
	assert.Equal(t, []string{floatID}, h.windowMgr.GeometryCalls)
	require.Len(t, h.pointer.Clicks, 2)
	assert.InDelta(t, 1467.0, h.pointer.Clicks[0].X, 1e-9)
	assert.InDelta(t, 874.8, h.pointer.Clicks[0].Y, 1e-9)
	assert.InDelta(t, 1466.0, h.pointer.Clicks[1].X, 1e-9)
	assert.InDelta(t, 873.8, h.pointer.Clicks[1].Y, 1e-9)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, h.sleeps)
}

func TestRestoreFloatingWindow_SingleClick(t *testing.T) {
	h := newHarness()
	h.cfg.Restore.DoubleClick = false
	h.windowMgr.
		WithWindow(floatWindow, floatID).
		WithGeometry(testutil.FloatWindowGeometry, nil)

	err := h.controller().RestoreFloatingWindow()

	require.NoError(t, err)
	assert.Len(t, h.pointer.Clicks, 1)
	assert.Empty(t, h.sleeps)
}

func TestRestoreFloatingWindow_NotFound(t *testing.T) {
	h := newHarness()

	err := h.controller().RestoreFloatingWindow()

	assert.ErrorIs(t, err, zoom.ErrNotFound)
	assert.Empty(t, h.windowMgr.GeometryCalls)
	assert.Empty(t, h.pointer.Clicks)
}

func TestRestoreFloatingWindow_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "zero width", output: "Window 1\n  Position: 396,153 (screen: 0)\n  Geometry: 0x802\n"},
		{name: "zero height", output: "Window 1\n  Position: 396,153 (screen: 0)\n  Geometry: 1190x0\n"},
		{name: "unparsable", output: "Window 1\n  Geometry: wide\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			g, parseErr := xdotool.ParseGeometry(tt.output)
			h.windowMgr.
				WithWindow(floatWindow, floatID).
				WithGeometry(g, parseErr)

			var err error
			assert.NotPanics(t, func() {
				err = h.controller().RestoreFloatingWindow()
			})

			assert.ErrorIs(t, err, zoom.ErrGeometryInvalid)
			assert.Empty(t, h.pointer.Clicks, "No click for an invalid window")
		})
	}
}

func TestRestoreFloatingWindow_ClickErrorIsNotFatal(t *testing.T) {
	h := newHarness()
	h.windowMgr.
		WithWindow(floatWindow, floatID).
		WithGeometry(testutil.FloatWindowGeometry, nil)
	h.pointer.WithClickErr(errors.New("no display"))

	err := h.controller().RestoreFloatingWindow()

	require.NoError(t, err, "Click failures should leave the outcome to the reactivation")
	assert.Len(t, h.pointer.Clicks, 2, "Should still send the second click")
}

func TestBringToForeground_ReactivatesAfterFailedClick(t *testing.T) {
	runner := testutil.NewMockRunner().
		WithResponse("search", meetingID+"\n", nil).
		WithResponse("windowactivate", activateFailed, nil).
		WithResponse("getwindowgeometry", testutil.FloatWindowGeometryOutput, nil).
		WithExitCode("mousemove", 1, "")

	log := logger.NewNoOpLogger()
	client := xdotool.NewClientWithRunner(log, runner)
	controller := zoom.NewControllerWithDeps(log, config.Default(), &zoom.Dependencies{
		WindowMgr: client.Window,
		Keyboard:  client.Keyboard,
		Pointer:   client.Pointer,
		Sleep:     func(time.Duration) {},
	})

	_, err := controller.BringToForeground()

	assert.ErrorIs(t, err, zoom.ErrActivationFailed)
	assert.NotErrorIs(t, err, zoom.ErrUnexpected)
	assert.Equal(t, []string{
		"search --name Meeting",
		"windowactivate " + meetingID,
		"search --name zoom_linux_float_video_window",
		"getwindowgeometry " + meetingID,
		"mousemove --sync 1467 874 click 1",
		"mousemove --sync 1466 873 click 1",
		"windowactivate --sync " + meetingID,
	}, runner.CommandLines())
}

func TestRestoreFloatingWindow_VanishedWindow(t *testing.T) {
	runner := testutil.NewMockRunner().
		WithResponse("search", floatID+"\n", nil).
		WithExitCode("getwindowgeometry", 1, "")

	log := logger.NewNoOpLogger()
	client := xdotool.NewClientWithRunner(log, runner)
	controller := zoom.NewControllerWithDeps(log, config.Default(), &zoom.Dependencies{
		WindowMgr: client.Window,
		Keyboard:  client.Keyboard,
		Pointer:   client.Pointer,
	})

	err := controller.RestoreFloatingWindow()

	assert.ErrorIs(t, err, zoom.ErrGeometryInvalid)
	assert.NotErrorIs(t, err, zoom.ErrUnexpected)
	assert.Equal(t, []string{
		"search --name zoom_linux_float_video_window",
		"getwindowgeometry " + floatID,
	}, runner.CommandLines(), "No click without a geometry")
}

func TestBringToForeground_NotFound(t *testing.T) {
	h := newHarness()

	id, err := h.controller().BringToForeground()

	assert.ErrorIs(t, err, zoom.ErrNotFound)
	assert.Empty(t, id)
	assert.Empty(t, h.windowMgr.ActivateCalls, "Activator must not run without a window")
}

func TestBringToForeground_AsyncSuccess(t *testing.T) {
	h := newHarness()
	h.windowMgr.WithWindow(mainWindow, meetingID)

	id, err := h.controller().BringToForeground()

	require.NoError(t, err)
	assert.Equal(t, meetingID, id)
	assert.Equal(t, []testutil.ActivateCall{
		{WindowID: meetingID, Sync: false},
		{WindowID: meetingID, Sync: true},
	}, h.windowMgr.ActivateCalls)
	assert.Equal(t, []string{mainWindow}, h.windowMgr.SearchCalls, "Restore path must not run")
	assert.Empty(t, h.pointer.Clicks)
}

func TestBringToForeground_SettleFailureIgnored(t *testing.T) {
	h := newHarness()
	h.windowMgr.
		WithWindow(mainWindow, meetingID).
		WithActivateOutputs("", activateFailed)

	id, err := h.controller().BringToForeground()

	require.NoError(t, err)
	assert.Equal(t, meetingID, id)
	assert.Len(t, h.windowMgr.ActivateCalls, 2)
}

func TestBringToForeground_AsyncFailureNoFloatWindow(t *testing.T) {
	h := newHarness()
	h.windowMgr.
		WithWindow(mainWindow, meetingID).
		WithActivateOutputs(activateFailed)

	_, err := h.controller().BringToForeground()

	assert.ErrorIs(t, err, zoom.ErrNotFound)
	assert.Equal(t, []string{mainWindow, floatWindow}, h.windowMgr.SearchCalls)
	assert.Empty(t, h.pointer.Clicks, "No click without a floating window")
	assert.Len(t, h.windowMgr.ActivateCalls, 1)
}

func TestBringToForeground_RestoreThenActivate(t *testing.T) {
	tests := []struct {
		name        string
		finalOutput string
		expectErr   error
	}{
		{name: "final activation succeeds", finalOutput: "", expectErr: nil},
		{name: "final activation fails", finalOutput: activateFailed, expectErr: zoom.ErrActivationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.windowMgr.
				WithWindow(mainWindow, meetingID).
				WithWindow(floatWindow, floatID).
				WithGeometry(testutil.FloatWindowGeometry, nil).
				WithActivateOutputs(activateFailed, tt.finalOutput)

			id, err := h.controller().BringToForeground()

			assert.Len(t, h.pointer.Clicks, 2, "One click sequence")
			assert.Equal(t, []testutil.ActivateCall{
				{WindowID: meetingID, Sync: false},
				{WindowID: meetingID, Sync: true},
			}, h.windowMgr.ActivateCalls)

			if tt.expectErr == nil {
				require.NoError(t, err)
				assert.Equal(t, meetingID, id)
			} else {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Empty(t, id)
			}
		})
	}
}

func TestBringToForeground_InvalidGeometry(t *testing.T) {
	h := newHarness()
	h.windowMgr.
		WithWindow(mainWindow, meetingID).
		WithWindow(floatWindow, floatID).
		WithGeometry(xdotool.Geometry{X: 396, Y: 153}, xdotool.ErrInvalidGeometry).
		WithActivateOutputs(activateFailed)

	_, err := h.controller().BringToForeground()

	assert.ErrorIs(t, err, zoom.ErrGeometryInvalid)
	assert.Len(t, h.windowMgr.ActivateCalls, 1, "No reactivation after a failed restore")
}

type panickingWindowManager struct {
	*testutil.MockWindowManager
}

func (p panickingWindowManager) Search(name string) ([]string, error) {
	panic("unexpected output")
}

func TestBringToForeground_RecoversPanic(t *testing.T) {
	h := newHarness()
	c := zoom.NewControllerWithDeps(logger.NewNoOpLogger(), h.cfg, &zoom.Dependencies{
		WindowMgr: panickingWindowManager{h.windowMgr},
		Keyboard:  h.keyboard,
		Pointer:   h.pointer,
	})

	var err error
	assert.NotPanics(t, func() {
		_, err = c.BringToForeground()
	})
	assert.ErrorIs(t, err, zoom.ErrUnexpected)
}

func TestActionRequest_Empty(t *testing.T) {
	assert.True(t, zoom.ActionRequest{}.Empty())
	assert.False(t, zoom.ActionRequest{ToggleVideo: true}.Empty())
}

func TestRun_EmptyRequestIsNoOp(t *testing.T) {
	h := newHarness()

	result, err := h.controller().Run(zoom.ActionRequest{})

	require.NoError(t, err)
	assert.Equal(t, &zoom.RunResult{}, result)
	assert.Zero(t, h.windowMgr.ActiveCalls)
	assert.Empty(t, h.windowMgr.SearchCalls)
}

func TestRun_ReturnsFocus(t *testing.T) {
	tests := []struct {
		name        string
		req         zoom.ActionRequest
		expectKeys  []string
		expectFocus bool
	}{
		{
			name:        "toggle audio",
			req:         zoom.ActionRequest{ToggleAudio: true},
			expectKeys:  []string{"alt+a"},
			expectFocus: true,
		},
		{
			name:        "toggle video",
			req:         zoom.ActionRequest{ToggleVideo: true},
			expectKeys:  []string{"alt+v"},
			expectFocus: true,
		},
		{
			name:        "toggle both",
			req:         zoom.ActionRequest{ToggleAudio: true, ToggleVideo: true},
			expectKeys:  []string{"alt+a", "alt+v"},
			expectFocus: true,
		},
		{
			name:        "activate keeps focus on Zoom",
			req:         zoom.ActionRequest{Activate: true},
			expectKeys:  nil,
			expectFocus: false,
		},
		{
			name:        "activate with toggle keeps focus on Zoom",
			req:         zoom.ActionRequest{Activate: true, ToggleAudio: true},
			expectKeys:  []string{"alt+a"},
			expectFocus: false,
		},
		{
			name:        "end meeting does not return focus",
			req:         zoom.ActionRequest{EndMeeting: true},
			expectKeys:  []string{"alt+F4"},
			expectFocus: false,
		},
		{
			name:        "all shortcuts in order",
			req:         zoom.ActionRequest{ToggleAudio: true, ToggleVideo: true, EndMeeting: true},
			expectKeys:  []string{"alt+a", "alt+v", "alt+F4"},
			expectFocus: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.windowMgr.
				WithWindow(mainWindow, meetingID).
				WithActiveWindow(previousID, nil)

			result, err := h.controller().Run(tt.req)

			require.NoError(t, err)
			assert.Equal(t, meetingID, result.Window)
			assert.Equal(t, previousID, result.PreviousWindow)
			assert.Equal(t, tt.expectKeys, result.SentKeys)
			assert.Equal(t, 1, h.windowMgr.ActiveCalls, "Active window captured once")

			var returned []testutil.ActivateCall
			for _, c := range h.windowMgr.ActivateCalls {
				if c.WindowID == previousID {
					returned = append(returned, c)
				}
			}

			if tt.expectFocus {
				assert.Equal(t, []testutil.ActivateCall{{WindowID: previousID, Sync: true}}, returned)
				assert.True(t, result.FocusReturned)
			} else {
				assert.Empty(t, returned)
				assert.False(t, result.FocusReturned)
			}
		})
	}
}

func TestRun_CustomShortcuts(t *testing.T) {
	h := newHarness()
	h.cfg.Shortcuts.ToggleAudio = "ctrl+alt+m"
	h.windowMgr.WithWindow(mainWindow, meetingID)

	result, err := h.controller().Run(zoom.ActionRequest{ToggleAudio: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+alt+m"}, h.keyboard.SentKeys)
	assert.Equal(t, []string{"ctrl+alt+m"}, result.SentKeys)
}

func TestRun_WindowNotFoundSkipsShortcuts(t *testing.T) {
	h := newHarness()
	h.windowMgr.WithActiveWindow(previousID, nil)

	result, err := h.controller().Run(zoom.ActionRequest{ToggleAudio: true, ToggleVideo: true})

	assert.ErrorIs(t, err, zoom.ErrNotFound)
	assert.Empty(t, h.keyboard.SentKeys)
	assert.Empty(t, h.windowMgr.ActivateCalls, "Focus must not be returned after a failure")
	assert.False(t, result.FocusReturned)
}

func TestRun_UnknownPreviousWindow(t *testing.T) {
	h := newHarness()
	h.windowMgr.
		WithWindow(mainWindow, meetingID).
		WithActiveWindow("", errors.New("no active window reported"))

	result, err := h.controller().Run(zoom.ActionRequest{ToggleVideo: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"alt+v"}, result.SentKeys)
	assert.False(t, result.FocusReturned)
	assert.Len(t, h.windowMgr.ActivateCalls, 2, "Only the meeting window is activated")
}

func TestRun_ShortcutFailureContinues(t *testing.T) {
	h := newHarness()
	h.windowMgr.
		WithWindow(mainWindow, meetingID).
		WithActiveWindow(previousID, nil)
	h.keyboard.WithSendKeyErr(errors.New("key failed"))

	result, err := h.controller().Run(zoom.ActionRequest{ToggleAudio: true, ToggleVideo: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"alt+a", "alt+v"}, h.keyboard.SentKeys, "Every shortcut is attempted")
	assert.Empty(t, result.SentKeys)
	assert.Len(t, h.windowMgr.SyncActivations(), 2, "Settle plus focus return")
}
