// Package proc executes external commands on behalf of the higher layers.
//
// It only transports bytes and exit status: callers interpret output. Two
// modes are supported, captured output for short queries and live streaming
// for long-running, user-visible steps.
package proc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// Runner runs external commands.
type Runner interface {
	// Output runs argv and returns its captured standard output.
	Output(ctx context.Context, argv ...string) (string, error)

	// Stream runs argv, writing standard output and standard error to the
	// provided writers as they are produced. Standard error is additionally
	// captured so that a failure still carries it.
	Stream(ctx context.Context, out, errOut io.Writer, argv ...string) error

	// LookPath resolves an executable name in the execution environment.
	LookPath(name string) (string, error)
}

// ExitError reports a command that ran but returned a non-zero exit code.
// It carries the captured standard error so callers can surface it.
type ExitError struct {
	Argv     []string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %s exited with code %d", style.Symbol(strings.Join(e.Argv, " ")), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, stderr)
	}
	return msg
}

// ExecRunner is the Runner used outside of tests. It invokes commands
// through os/exec, synchronously and without retries.
type ExecRunner struct {
	logger logging.Logger
}

func NewExecRunner(logger logging.Logger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Output(ctx context.Context, argv ...string) (string, error) {
	cmd, err := r.command(ctx, argv)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", runError(argv, err, stderr.String())
	}

	return stdout.String(), nil
}

func (r *ExecRunner) Stream(ctx context.Context, out, errOut io.Writer, argv ...string) error {
	cmd, err := r.command(ctx, argv)
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = io.MultiWriter(errOut, &stderr)

	if err := cmd.Run(); err != nil {
		return runError(argv, err, stderr.String())
	}

	return nil
}

func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *ExecRunner) command(ctx context.Context, argv []string) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, errors.New("no command provided")
	}

	r.logger.Debugf("running command: %s", style.Symbol(strings.Join(argv, " ")))

	return exec.CommandContext(ctx, argv[0], argv[1:]...), nil
}

// runError converts a non-zero exit into an ExitError; any other failure
// (binary unresolvable, context deadline) is wrapped and passed through.
func runError(argv []string, err error, stderr string) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Argv:     argv,
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr,
		}
	}

	return errors.Wrapf(err, "running command %s", style.Symbol(strings.Join(argv, " ")))
}
