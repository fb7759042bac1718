// Package ansible dispatches provisioning into a working container by
// invoking `ansible-playbook` with the buildah connection plugin.
package ansible

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hroncok/ansible-bender/internal/proc"
	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/buildah"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// PlaybookBinary is the external provisioning executor.
const PlaybookBinary = "ansible-playbook"

// the ansible connection plugin used to reach into the working container
const connection = "buildah"

// RunOptions describes one provisioning run against a working container.
type RunOptions struct {
	Playbook          string
	ContainerName     string
	PythonInterpreter string
	ExtraArgs         []string

	// Out and ErrOut receive the streamed playbook output. When nil, the
	// logger's writers are used.
	Out    io.Writer
	ErrOut io.Writer
}

// PlaybookRunner runs playbooks against working containers.
type PlaybookRunner struct {
	runner proc.Runner
	logger logging.Logger
}

func NewPlaybookRunner(runner proc.Runner, logger logging.Logger) *PlaybookRunner {
	return &PlaybookRunner{
		runner: runner,
		logger: logger,
	}
}

// Check verifies the playbook executor is present before any build starts.
func (r *PlaybookRunner) Check(_ context.Context) error {
	if _, err := r.runner.LookPath(PlaybookBinary); err != nil {
		return &buildah.DependencyError{Binary: PlaybookBinary, Reason: "not found on PATH"}
	}
	return nil
}

// Run executes the playbook against the working container, streaming output
// live. A per-run inventory naming the container as the single host is
// written to a throwaway workspace.
func (r *PlaybookRunner) Run(ctx context.Context, opts RunOptions) error {
	workspace := filepath.Join(os.TempDir(), fmt.Sprintf("ansible-bender-%s", uuid.New().String()))
	if err := os.MkdirAll(workspace, 0755); err != nil {
		return errors.Wrap(err, "creating provisioning workspace")
	}
	defer os.RemoveAll(workspace)

	inventory := filepath.Join(workspace, "inventory")
	if err := os.WriteFile(inventory, []byte(r.inventoryLine(opts)), 0644); err != nil {
		return errors.Wrap(err, "writing inventory")
	}

	out := opts.Out
	if out == nil {
		out = logging.GetWriterForLevel(r.logger, logging.InfoLevel)
	}
	errOut := opts.ErrOut
	if errOut == nil {
		errOut = logging.GetWriterForLevel(r.logger, logging.ErrorLevel)
	}

	argv := []string{PlaybookBinary, "-c", connection, "-i", inventory}
	argv = append(argv, opts.ExtraArgs...)
	argv = append(argv, opts.Playbook)

	r.logger.Infof("running playbook %s", style.Symbol(opts.Playbook))
	return r.runner.Stream(ctx, out, errOut, argv...)
}

func (r *PlaybookRunner) inventoryLine(opts RunOptions) string {
	line := fmt.Sprintf("%s ansible_connection=%s", opts.ContainerName, connection)
	if opts.PythonInterpreter != "" {
		line += fmt.Sprintf(" ansible_python_interpreter=%s", opts.PythonInterpreter)
	}
	return line + "\n"
}
