// Package builder owns the working-container lifecycle: create from a base
// image, accumulate metadata, commit to a final image, tear down.
package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hroncok/ansible-bender/internal/name"
	"github.com/hroncok/ansible-bender/internal/proc"
	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/build"
	"github.com/hroncok/ansible-bender/pkg/buildah"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// Builder takes a base image through create, configure, commit and clean.
// Provisioning runs against the working container out-of-band, between
// Create and Commit.
type Builder interface {
	Create(ctx context.Context, buildVolumes []string) error
	Commit(ctx context.Context, imageName string) (string, error)
	Clean(ctx context.Context)
	SwapWorkingContainer(ctx context.Context) error
	Pull(ctx context.Context) error
	IsImagePresent(ctx context.Context, ref string) (bool, error)
	FindPythonInterpreter(ctx context.Context) (string, error)
	ContainerName() string
}

// InterpreterNotFoundError reports that none of the candidate interpreter
// paths exists in the base image. Without a known runtime path provisioning
// cannot be dispatched, so this is fatal to any workflow that executes
// inside the container.
type InterpreterNotFoundError struct {
	Image      string
	Candidates []string
}

func (e *InterpreterNotFoundError) Error() string {
	return fmt.Sprintf("no python interpreter found in image %s (tried %s)",
		style.Symbol(e.Image), strings.Join(e.Candidates, ", "))
}

// BuildahBuilder drives one working container through the buildah engine.
// It is not safe to run two instances against the same target image name
// concurrently: the working container name is derived from the target.
type BuildahBuilder struct {
	build     *build.Build
	engine    *buildah.Engine
	logger    logging.Logger
	container string
}

func NewBuildahBuilder(bld *build.Build, engine *buildah.Engine, logger logging.Logger) *BuildahBuilder {
	return &BuildahBuilder{
		build:     bld,
		engine:    engine,
		logger:    logger,
		container: name.WorkingContainer(bld.TargetImage),
	}
}

// ContainerName is the name of the working container this builder owns.
func (b *BuildahBuilder) ContainerName() string {
	return b.container
}

// Create makes the working container from the base image and immediately
// applies the pre-commit metadata (working directory, environment, ports,
// labels). Those fields have to be on the container before provisioning
// runs for the final image to carry them correctly. The engine pulls the
// base image automatically when it is not present locally.
func (b *BuildahBuilder) Create(ctx context.Context, buildVolumes []string) error {
	b.logger.Infof("creating working container from image %s", style.Symbol(b.build.BaseImage))
	if err := b.engine.From(ctx, b.build.BaseImage, b.container, buildVolumes); err != nil {
		return errors.Wrapf(err, "creating working container %s", style.Symbol(b.container))
	}

	return b.engine.Config(ctx, b.container, b.build.Metadata.PreCommitConfig())
}

// Commit applies the commit-time metadata (user, default command, volumes)
// when the specification declares any, then commits the working container
// to the named image. Returns the committed image's content identifier.
func (b *BuildahBuilder) Commit(ctx context.Context, imageName string) (string, error) {
	commitConfig := b.build.Metadata.CommitConfig()
	if !commitConfig.Empty() {
		if err := b.engine.Config(ctx, b.container, commitConfig); err != nil {
			return "", err
		}
	}

	b.logger.Infof("committing working container to image %s", style.Symbol(imageName))
	if err := b.engine.Commit(ctx, b.container, imageName); err != nil {
		return "", err
	}

	id, _, err := b.engine.ImageID(ctx, imageName)
	return id, err
}

// Clean removes the working container. Cleanup is best-effort: a failure is
// logged, not returned, so it never masks the failure that triggered it.
func (b *BuildahBuilder) Clean(ctx context.Context) {
	if err := b.engine.Remove(ctx, b.container); err != nil {
		b.logger.Warnf("failed to remove working container %s: %s", style.Symbol(b.container), err)
	}
}

// SwapWorkingContainer discards the current working container and creates a
// fresh one from the base image. Build volumes are not carried over; callers
// that need them across a swap must re-create themselves.
func (b *BuildahBuilder) SwapWorkingContainer(ctx context.Context) error {
	b.Clean(ctx)
	return b.Create(ctx, nil)
}

// Pull fetches the base image explicitly, for callers who don't want to
// rely on the implicit pull during Create.
func (b *BuildahBuilder) Pull(ctx context.Context) error {
	if err := b.engine.CheckPodman(); err != nil {
		return err
	}

	b.logger.Infof("pulling base image %s", style.Symbol(b.build.BaseImage))
	return b.engine.Pull(ctx, b.build.BaseImage)
}

// IsImagePresent reports whether the image reference resolves to an image
// in the engine's local storage.
func (b *BuildahBuilder) IsImagePresent(ctx context.Context, ref string) (bool, error) {
	_, ok, err := b.engine.ImageID(ctx, ref)
	return ok, err
}

// FindPythonInterpreter probes the base image for an executable at each of
// the candidate paths, in priority order, and returns the first that
// exists. Probing stops at the first hit.
func (b *BuildahBuilder) FindPythonInterpreter(ctx context.Context) (string, error) {
	candidates := b.build.InterpreterPriority()

	for _, candidate := range candidates {
		if err := b.engine.RunInImage(ctx, b.build.BaseImage, "ls", candidate); err != nil {
			var exitErr *proc.ExitError
			if errors.As(err, &exitErr) {
				b.logger.Infof("python interpreter %s does not exist", style.Symbol(candidate))
				continue
			}
			return "", err
		}

		b.logger.Infof("using python interpreter %s", style.Symbol(candidate))
		return candidate, nil
	}

	return "", &InterpreterNotFoundError{
		Image:      b.build.BaseImage,
		Candidates: candidates,
	}
}
