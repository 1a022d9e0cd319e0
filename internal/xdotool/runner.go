package xdotool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/Norgate-AV/zoomctl/internal/logger"
)

// ErrTimeout is returned when an invocation exceeds the runner's timeout
var ErrTimeout = errors.New("xdotool timed out")

// Runner executes xdotool with the given arguments
type Runner interface {
	// Output returns stdout only
	Output(args ...string) ([]byte, error)
	// CombinedOutput returns stdout and stderr interleaved
	CombinedOutput(args ...string) ([]byte, error)
}

// CommandError reports an xdotool invocation that ran but exited non-zero
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("xdotool %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
}

// execRunner runs the real binary
type execRunner struct {
	path    string
	timeout time.Duration
	log     logger.LoggerInterface
}

func newExecRunner(path string, timeout time.Duration, log logger.LoggerInterface) *execRunner {
	return &execRunner{path: path, timeout: timeout, log: log}
}

func (r *execRunner) Output(args ...string) ([]byte, error) {
	return r.run(false, args)
}

func (r *execRunner) CombinedOutput(args ...string) ([]byte, error) {
	return r.run(true, args)
}

func (r *execRunner) run(combined bool, args []string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.path, args...)

	var out []byte
	var err error
	if combined {
		out, err = cmd.CombinedOutput()
	} else {
		out, err = cmd.Output()
	}

	r.log.Trace("xdotool invoked",
		slog.String("args", strings.Join(args, " ")),
		slog.String("output", string(out)),
		slog.Any("error", err),
	)

	if err == nil {
		return out, nil
	}

	if ctx.Err() != nil {
		return out, fmt.Errorf("%w after %s: %s", ErrTimeout, r.timeout, strings.Join(args, " "))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, &CommandError{
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Output:   string(out),
		}
	}

	return out, fmt.Errorf("failed to run %s: %w", r.path, err)
}
