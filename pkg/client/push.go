package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/build"
)

// Push pushes the image produced by a build to a destination
// transport/registry accepted by the run engine. ID 0 means the most recent
// build.
func (c *Client) Push(ctx context.Context, id int64, destination string) error {
	bld, err := c.InspectBuild(id)
	if err != nil {
		return err
	}

	if bld.State != build.StateDone {
		return errors.Errorf("build %d of %s did not finish successfully, nothing to push",
			bld.ID, style.Symbol(bld.TargetImage))
	}

	if err := c.engine.CheckPodman(); err != nil {
		return err
	}

	c.logger.Infof("pushing image %s to %s", style.Symbol(bld.TargetImage), style.Symbol(destination))
	return c.engine.Push(ctx, bld.TargetImage, destination)
}
