package testutil

import (
	"github.com/Norgate-AV/zoomctl/internal/xdotool"
)

// MockWindowManager records all calls for verification
type MockWindowManager struct {
	SearchResults   map[string][]string
	SearchErr       error
	SearchCalls     []string
	ActivateOutputs []string // Output per Activate call, in order; "" once exhausted
	ActivateErr     error
	ActivateCalls   []ActivateCall
	Geometry        xdotool.Geometry
	GeometryErr     error
	GeometryCalls   []string
	ActiveWindow    string
	ActiveWindowErr error
	ActiveCalls     int
}

type ActivateCall struct {
	WindowID string
	Sync     bool
}

func NewMockWindowManager() *MockWindowManager {
	return &MockWindowManager{
		SearchResults:   make(map[string][]string),
		SearchCalls:     []string{},
		ActivateOutputs: []string{},
		ActivateCalls:   []ActivateCall{},
		GeometryCalls:   []string{},
	}
}

func (m *MockWindowManager) Search(name string) ([]string, error) {
	m.SearchCalls = append(m.SearchCalls, name)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}

	return m.SearchResults[name], nil
}

func (m *MockWindowManager) Activate(windowID string, sync bool) (string, error) {
	idx := len(m.ActivateCalls)
	m.ActivateCalls = append(m.ActivateCalls, ActivateCall{windowID, sync})

	if m.ActivateErr != nil {
		return "", m.ActivateErr
	}

	if idx < len(m.ActivateOutputs) {
		return m.ActivateOutputs[idx], nil
	}

	return "", nil
}

func (m *MockWindowManager) GetGeometry(windowID string) (xdotool.Geometry, error) {
	m.GeometryCalls = append(m.GeometryCalls, windowID)
	return m.Geometry, m.GeometryErr
}

func (m *MockWindowManager) GetActiveWindow() (string, error) {
	m.ActiveCalls++
	return m.ActiveWindow, m.ActiveWindowErr
}

// SyncActivations returns the activate calls made with sync set
func (m *MockWindowManager) SyncActivations() []ActivateCall {
	var calls []ActivateCall
	for _, c := range m.ActivateCalls {
		if c.Sync {
			calls = append(calls, c)
		}
	}

	return calls
}

// Helper methods for fluent configuration
func (m *MockWindowManager) WithWindow(name string, ids ...string) *MockWindowManager {
	m.SearchResults[name] = ids
	return m
}

func (m *MockWindowManager) WithSearchErr(err error) *MockWindowManager {
	m.SearchErr = err
	return m
}

func (m *MockWindowManager) WithActivateOutputs(outputs ...string) *MockWindowManager {
	m.ActivateOutputs = outputs
	return m
}

func (m *MockWindowManager) WithActivateErr(err error) *MockWindowManager {
	m.ActivateErr = err
	return m
}

func (m *MockWindowManager) WithGeometry(g xdotool.Geometry, err error) *MockWindowManager {
	m.Geometry = g
	m.GeometryErr = err
	return m
}

func (m *MockWindowManager) WithActiveWindow(id string, err error) *MockWindowManager {
	m.ActiveWindow = id
	m.ActiveWindowErr = err
	return m
}

// MockKeyboardInjector
type MockKeyboardInjector struct {
	SentKeys   []string
	SendKeyErr error
}

func NewMockKeyboardInjector() *MockKeyboardInjector {
	return &MockKeyboardInjector{SentKeys: []string{}}
}

func (m *MockKeyboardInjector) SendKey(combo string) error {
	m.SentKeys = append(m.SentKeys, combo)
	return m.SendKeyErr
}

func (m *MockKeyboardInjector) WithSendKeyErr(err error) *MockKeyboardInjector {
	m.SendKeyErr = err
	return m
}

// MockPointerInjector
type MockPointerInjector struct {
	Clicks   []Click
	ClickErr error
}

type Click struct {
	X float64
	Y float64
}

func NewMockPointerInjector() *MockPointerInjector {
	return &MockPointerInjector{Clicks: []Click{}}
}

func (m *MockPointerInjector) ClickAt(x, y float64) error {
	m.Clicks = append(m.Clicks, Click{x, y})
	return m.ClickErr
}

func (m *MockPointerInjector) WithClickErr(err error) *MockPointerInjector {
	m.ClickErr = err
	return m
}

// MockNotifier
type MockNotifier struct {
	Messages []string
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Messages: []string{}}
}

func (m *MockNotifier) Error(msg string) {
	m.Messages = append(m.Messages, msg)
}
