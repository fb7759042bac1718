package client

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/hroncok/ansible-bender/internal/name"
	"github.com/hroncok/ansible-bender/internal/playbook"
	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/ansible"
	"github.com/hroncok/ansible-bender/pkg/build"
	"github.com/hroncok/ansible-bender/pkg/builder"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// BuildOptions describes one build. The playbook is the source of the
// specification; everything else is an override or an addition.
type BuildOptions struct {
	// Playbook is the path of the playbook carrying the ansible_bender
	// vars block.
	Playbook string

	// BaseImage overrides the playbook's base image when set.
	BaseImage string

	// TargetImage overrides the playbook's target image when set.
	TargetImage string

	// BuildVolumes are additional bind-mounts available during the build.
	BuildVolumes []string

	// ExtraArgs are passed through to the provisioning executor.
	ExtraArgs []string
}

// Build creates a working container from the base image, provisions it with
// the playbook and commits it to the target image. The returned record
// carries the committed image identifier.
//
// On provisioning failure the working container is intentionally left in
// place so it can be inspected.
func (c *Client) Build(ctx context.Context, opts BuildOptions) (*build.Build, error) {
	bld, err := c.prepareBuild(opts)
	if err != nil {
		return nil, err
	}

	if err := c.engine.Check(ctx); err != nil {
		return nil, err
	}
	if err := c.provisioner.Check(ctx); err != nil {
		return nil, err
	}

	bld.State = build.StateInProgress
	bld.StartTime = time.Now()
	if err := c.store.Create(bld); err != nil {
		return nil, err
	}

	bldr := builder.NewBuildahBuilder(bld, c.engine, c.logger)

	interpreter, err := bldr.FindPythonInterpreter(ctx)
	if err != nil {
		return nil, c.failBuild(bld, err)
	}
	bld.PythonInterpreter = interpreter

	c.logger.Info(style.Step("CREATING WORKING CONTAINER"))
	if err := bldr.Create(ctx, bld.BuildVolumes); err != nil {
		return nil, c.failBuild(bld, err)
	}

	c.logger.Info(style.Step("PROVISIONING"))
	if err := c.provision(ctx, bld, bldr); err != nil {
		c.logger.Warnf("working container %s is left behind for inspection", style.Symbol(bldr.ContainerName()))
		c.logger.Info(style.Tip("run 'buildah rm %s' to remove it", bldr.ContainerName()))
		return nil, c.failBuild(bld, err)
	}

	c.logger.Info(style.Step("COMMITTING"))
	imageID, err := bldr.Commit(ctx, bld.TargetImage)
	if err != nil {
		return nil, c.failBuild(bld, err)
	}
	bld.ImageID = imageID

	bldr.Clean(ctx)

	bld.State = build.StateDone
	bld.FinishTime = time.Now()
	if err := c.store.Update(bld); err != nil {
		return nil, err
	}

	c.logger.Infof("Image %s was built successfully \\o/", style.Symbol(bld.TargetImage))
	return bld, nil
}

func (c *Client) prepareBuild(opts BuildOptions) (*build.Build, error) {
	bld, err := playbook.Load(opts.Playbook)
	if err != nil {
		return nil, err
	}

	if opts.BaseImage != "" {
		bld.BaseImage = opts.BaseImage
	}
	if opts.TargetImage != "" {
		bld.TargetImage = opts.TargetImage
	}
	bld.BuildVolumes = append(bld.BuildVolumes, opts.BuildVolumes...)
	bld.AnsibleExtraArgs = append(bld.AnsibleExtraArgs, opts.ExtraArgs...)

	if err := name.ValidateReference(bld.TargetImage); err != nil {
		return nil, errors.Wrapf(err, "invalid target image %s", style.Symbol(bld.TargetImage))
	}

	baseImage, err := name.TranslateRegistry(bld.BaseImage, c.registryMirrors, c.logger)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base image %s", style.Symbol(bld.BaseImage))
	}
	bld.BaseImage = baseImage

	return bld, nil
}

// provision runs the playbook against the working container, teeing its
// output into the build record.
func (c *Client) provision(ctx context.Context, bld *build.Build, bldr builder.Builder) error {
	var captured bytes.Buffer

	err := c.provisioner.Run(ctx, ansible.RunOptions{
		Playbook:          bld.Playbook,
		ContainerName:     bldr.ContainerName(),
		PythonInterpreter: bld.PythonInterpreter,
		ExtraArgs:         bld.AnsibleExtraArgs,
		Out:               io.MultiWriter(logging.GetWriterForLevel(c.logger, logging.InfoLevel), &captured),
		ErrOut:            io.MultiWriter(logging.GetWriterForLevel(c.logger, logging.ErrorLevel), &captured),
	})

	if logsErr := c.store.SetLogs(bld.ID, captured.String()); logsErr != nil {
		c.logger.Warnf("failed to store build logs: %s", logsErr)
	}

	return errors.Wrap(err, "provisioning failed")
}

// failBuild marks the record failed and returns the original error, which
// always wins over bookkeeping problems.
func (c *Client) failBuild(bld *build.Build, cause error) error {
	bld.State = build.StateFailed
	bld.FinishTime = time.Now()
	if err := c.store.Update(bld); err != nil {
		c.logger.Warnf("failed to update build record: %s", err)
	}
	return cause
}
