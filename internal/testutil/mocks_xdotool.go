package testutil

import (
	"strings"

	"github.com/Norgate-AV/zoomctl/internal/xdotool"
)

// RunnerCall records one invocation of MockRunner
type RunnerCall struct {
	Args     []string
	Combined bool
}

// RunnerResponse is the canned result for an xdotool subcommand
type RunnerResponse struct {
	Output string
	Err    error
}

// MockRunner implements xdotool.Runner, answering by subcommand (the first argument)
type MockRunner struct {
	Calls     []RunnerCall
	Responses map[string]RunnerResponse
}

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Calls:     []RunnerCall{},
		Responses: make(map[string]RunnerResponse),
	}
}

func (m *MockRunner) Output(args ...string) ([]byte, error) {
	return m.respond(false, args)
}

func (m *MockRunner) CombinedOutput(args ...string) ([]byte, error) {
	return m.respond(true, args)
}

func (m *MockRunner) respond(combined bool, args []string) ([]byte, error) {
	m.Calls = append(m.Calls, RunnerCall{Args: args, Combined: combined})

	if len(args) == 0 {
		return nil, nil
	}

	resp := m.Responses[args[0]]
	return []byte(resp.Output), resp.Err
}

// CommandLines returns every call joined into a single string, for easy assertions
func (m *MockRunner) CommandLines() []string {
	lines := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		lines = append(lines, strings.Join(c.Args, " "))
	}

	return lines
}

// Helper methods for fluent configuration
func (m *MockRunner) WithResponse(subcommand, output string, err error) *MockRunner {
	m.Responses[subcommand] = RunnerResponse{Output: output, Err: err}
	return m
}

// WithExitCode makes subcommand exit non-zero with the given output
func (m *MockRunner) WithExitCode(subcommand string, code int, output string) *MockRunner {
	m.Responses[subcommand] = RunnerResponse{
		Output: output,
		Err:    &xdotool.CommandError{Args: []string{subcommand}, ExitCode: code, Output: output},
	}

	return m
}
