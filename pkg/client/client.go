/*
Package client provides all the functionality of ansible-bender as a Go API.

A Client sequences the whole build: it reads the specification out of the
playbook, checks the external engines, resolves the python interpreter in
the base image, drives the working-container lifecycle and records the
outcome in the build database.
*/
package client

import (
	"context"
	"os"

	"github.com/hroncok/ansible-bender/internal/config"
	"github.com/hroncok/ansible-bender/internal/db"
	"github.com/hroncok/ansible-bender/internal/proc"
	"github.com/hroncok/ansible-bender/pkg/ansible"
	"github.com/hroncok/ansible-bender/pkg/build"
	"github.com/hroncok/ansible-bender/pkg/buildah"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// Provisioner runs provisioning against a working container. It is an
// external collaborator: the client only consumes its success/failure
// signal.
type Provisioner interface {
	Check(ctx context.Context) error
	Run(ctx context.Context, opts ansible.RunOptions) error
}

// BuildStore persists build records.
type BuildStore interface {
	Create(b *build.Build) error
	Update(b *build.Build) error
	Get(id int64) (*build.Build, error)
	Latest() (*build.Build, error)
	List() ([]*build.Build, error)
	SetLogs(id int64, logs string) error
	Logs(id int64) (string, error)
}

// Client is an orchestration object: it contains everything needed to build
// an image from a playbook. Configure it through Option functions.
type Client struct {
	logger          logging.Logger
	runner          proc.Runner
	engine          *buildah.Engine
	store           BuildStore
	provisioner     Provisioner
	registryMirrors map[string]string
}

// Option customizes a Client.
type Option func(c *Client)

// WithLogger sets the logger. Defaults to an unstyled logger on stderr.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRunner sets the process runner used for every external command.
func WithRunner(runner proc.Runner) Option {
	return func(c *Client) {
		c.runner = runner
	}
}

// WithStore sets the build record store.
func WithStore(store BuildStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithProvisioner sets the provisioning executor.
func WithProvisioner(p Provisioner) Option {
	return func(c *Client) {
		c.provisioner = p
	}
}

// WithRegistryMirrors sets registry mirrors applied to base image
// references.
func WithRegistryMirrors(mirrors map[string]string) Option {
	return func(c *Client) {
		c.registryMirrors = mirrors
	}
}

// NewClient creates a Client, filling in defaults for anything not set.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewSimpleLogger(os.Stderr)
	}
	if c.runner == nil {
		c.runner = proc.NewExecRunner(c.logger)
	}
	if c.engine == nil {
		c.engine = buildah.New(c.runner, c.logger)
	}
	if c.provisioner == nil {
		c.provisioner = ansible.NewPlaybookRunner(c.runner, c.logger)
	}
	if c.store == nil {
		path, err := config.DefaultDatabasePath()
		if err != nil {
			return nil, err
		}
		store, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		c.store = store
	}

	return c, nil
}
