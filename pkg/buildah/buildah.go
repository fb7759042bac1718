// Package buildah binds the external `buildah` and `podman` CLIs.
//
// Every operation is a synchronous invocation of one of the two binaries;
// nothing in here links against an image-building library. The package also
// owns the pre-flight availability check for both binaries.
package buildah

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"

	"github.com/hroncok/ansible-bender/internal/proc"
	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

const (
	// BuildahBinary is the build engine: working containers, config, commit.
	BuildahBinary = "buildah"
	// PodmanBinary is the run engine: pulling images and one-shot runs.
	PodmanBinary = "podman"

	// MinBuildahVersion is the oldest buildah release the `config` flags
	// used here are known to work with.
	MinBuildahVersion = "1.7.3"
)

// DependencyError reports a required external binary that is missing or
// unusable. It is raised before any state mutation.
type DependencyError struct {
	Binary string
	Reason string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s is not usable: %s", style.Symbol(e.Binary), e.Reason)
}

// Engine sequences calls to the external engine CLIs and interprets their
// output. It holds no state of its own: the engine's storage on the host is
// the state.
type Engine struct {
	runner proc.Runner
	logger logging.Logger
}

func New(runner proc.Runner, logger logging.Logger) *Engine {
	return &Engine{
		runner: runner,
		logger: logger,
	}
}

// Check verifies that both engine binaries are present and invokable.
// It fails fast so a misconfigured host doesn't surface as a confusing
// mid-lifecycle failure.
func (e *Engine) Check(ctx context.Context) error {
	if err := e.CheckPodman(); err != nil {
		return err
	}

	if _, err := e.runner.LookPath(BuildahBinary); err != nil {
		return &DependencyError{Binary: BuildahBinary, Reason: "not found on PATH"}
	}

	return e.checkBuildahVersion(ctx)
}

// CheckPodman verifies the run engine alone. Pull-only callers use this.
func (e *Engine) CheckPodman() error {
	if _, err := e.runner.LookPath(PodmanBinary); err != nil {
		return &DependencyError{Binary: PodmanBinary, Reason: "not found on PATH"}
	}
	return nil
}

func (e *Engine) checkBuildahVersion(ctx context.Context) error {
	out, err := e.runner.Output(ctx, BuildahBinary, "--version")
	if err != nil {
		return &DependencyError{Binary: BuildahBinary, Reason: "cannot be invoked"}
	}

	// "buildah version 1.23.1 (image-spec 1.0.1, runtime-spec 1.0.2)"
	fields := strings.Fields(out)
	if len(fields) < 3 {
		e.logger.Debugf("unable to tell buildah version from %s", style.Symbol(strings.TrimSpace(out)))
		return nil
	}

	version, err := semver.NewVersion(fields[2])
	if err != nil {
		e.logger.Debugf("unable to parse buildah version %s", style.Symbol(fields[2]))
		return nil
	}

	if version.LessThan(semver.MustParse(MinBuildahVersion)) {
		return &DependencyError{
			Binary: BuildahBinary,
			Reason: fmt.Sprintf("version %s is older than required %s", version, MinBuildahVersion),
		}
	}

	return nil
}

// From creates a working container from the base image. The engine pulls the
// image as a side effect when it is not present in local storage.
func (e *Engine) From(ctx context.Context, image, container string, buildVolumes []string) error {
	args := []string{BuildahBinary, "from"}
	for _, v := range buildVolumes {
		args = append(args, "-v", v)
	}
	args = append(args, "--name", container, image)

	_, err := e.runner.Output(ctx, args...)
	return err
}

// ConfigOptions are the metadata fields `buildah config` can apply to a
// working container.
type ConfigOptions struct {
	WorkingDir string
	Env        map[string]string
	Labels     map[string]string
	User       string
	Cmd        string
	Ports      []string
	Volumes    []string
}

// Empty reports whether applying the options would be a no-op.
func (o ConfigOptions) Empty() bool {
	return len(o.Args()) == 0
}

// Args renders the options as `buildah config` flags. Map-backed fields are
// emitted in sorted key order so invocations are reproducible.
func (o ConfigOptions) Args() []string {
	var args []string

	if o.WorkingDir != "" {
		args = append(args, "--workingdir", o.WorkingDir)
	}
	for _, k := range sortedKeys(o.Env) {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, o.Env[k]))
	}
	for _, k := range sortedKeys(o.Labels) {
		args = append(args, "-l", fmt.Sprintf("%s=%s", k, o.Labels[k]))
	}
	if o.User != "" {
		args = append(args, "--user", o.User)
	}
	if o.Cmd != "" {
		args = append(args, "--cmd", o.Cmd)
	}
	for _, p := range o.Ports {
		args = append(args, "-p", p)
	}
	for _, v := range o.Volumes {
		args = append(args, "-v", v)
	}

	return args
}

// Config applies metadata to the working container so it gets inherited by
// the committed image. A no-op when no options are set.
func (e *Engine) Config(ctx context.Context, container string, opts ConfigOptions) error {
	args := opts.Args()
	if len(args) == 0 {
		return nil
	}

	argv := append([]string{BuildahBinary, "config"}, args...)
	argv = append(argv, container)

	_, err := e.runner.Output(ctx, argv...)
	return err
}

// Commit turns the working container into a named image. Output is streamed
// since committing large layers takes a while.
func (e *Engine) Commit(ctx context.Context, container, image string) error {
	return e.runner.Stream(ctx,
		logging.GetWriterForLevel(e.logger, logging.InfoLevel),
		logging.GetWriterForLevel(e.logger, logging.ErrorLevel),
		BuildahBinary, "commit", container, image,
	)
}

// Remove removes the working container.
func (e *Engine) Remove(ctx context.Context, container string) error {
	_, err := e.runner.Output(ctx, BuildahBinary, "rm", container)
	return err
}

// Inspect queries metadata for a named resource. A resource that does not
// exist is an expected outcome and is reported as absent, not as an error.
func (e *Engine) Inspect(ctx context.Context, kind, id string) (Document, bool, error) {
	out, err := e.runner.Output(ctx, BuildahBinary, "inspect", "-t", kind, id)
	if err != nil {
		var exitErr *proc.ExitError
		if errors.As(err, &exitErr) {
			e.logger.Infof("no such %s %s", kind, style.Symbol(id))
			return nil, false, nil
		}
		return nil, false, err
	}

	doc, err := ParseDocument([]byte(out))
	if err != nil {
		return nil, false, errors.Wrapf(err, "parsing inspect output for %s %s", kind, style.Symbol(id))
	}

	return doc, true, nil
}

// ImageID returns the content identifier of an image reference. Absence of
// the image or of the identity field is reported via the bool, never as an
// error.
func (e *Engine) ImageID(ctx context.Context, ref string) (string, bool, error) {
	doc, ok, err := e.Inspect(ctx, "image", ref)
	if err != nil || !ok {
		return "", false, err
	}

	id, ok := doc.StringAt("FromImageID")
	return id, ok, nil
}

// Pull fetches the image through the run engine, streaming progress.
func (e *Engine) Pull(ctx context.Context, image string) error {
	return e.runner.Stream(ctx,
		logging.GetWriterForLevel(e.logger, logging.InfoLevel),
		logging.GetWriterForLevel(e.logger, logging.ErrorLevel),
		PodmanBinary, "pull", image,
	)
}

// RunInImage executes a one-shot command inside a fresh container from the
// image. Output is captured, not shown; probing callers only care about the
// exit status.
func (e *Engine) RunInImage(ctx context.Context, image string, argv ...string) error {
	cmd := append([]string{PodmanBinary, "run", "--rm", image}, argv...)
	_, err := e.runner.Output(ctx, cmd...)
	return err
}

// Push pushes a committed image to a destination transport/registry.
func (e *Engine) Push(ctx context.Context, image, destination string) error {
	return e.runner.Stream(ctx,
		logging.GetWriterForLevel(e.logger, logging.InfoLevel),
		logging.GetWriterForLevel(e.logger, logging.ErrorLevel),
		PodmanBinary, "push", image, destination,
	)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
