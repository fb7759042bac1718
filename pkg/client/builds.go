package client

import (
	"github.com/hroncok/ansible-bender/pkg/build"
)

// ListBuilds returns all recorded builds, newest first.
func (c *Client) ListBuilds() ([]*build.Build, error) {
	return c.store.List()
}

// InspectBuild returns the record of a single build. ID 0 means the most
// recent build.
func (c *Client) InspectBuild(id int64) (*build.Build, error) {
	if id == 0 {
		return c.store.Latest()
	}
	return c.store.Get(id)
}

// BuildLogs returns the stored provisioning output of a build. ID 0 means
// the most recent build.
func (c *Client) BuildLogs(id int64) (string, error) {
	if id == 0 {
		latest, err := c.store.Latest()
		if err != nil {
			return "", err
		}
		id = latest.ID
	}
	return c.store.Logs(id)
}
