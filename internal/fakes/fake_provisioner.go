package fakes

import (
	"context"

	"github.com/hroncok/ansible-bender/pkg/ansible"
)

// FakeProvisioner records provisioning runs and plays back scripted output.
type FakeProvisioner struct {
	Runs []ansible.RunOptions

	CheckErr error
	RunErr   error
	Output   string
}

func NewFakeProvisioner() *FakeProvisioner {
	return &FakeProvisioner{}
}

func (p *FakeProvisioner) Check(_ context.Context) error {
	return p.CheckErr
}

func (p *FakeProvisioner) Run(_ context.Context, opts ansible.RunOptions) error {
	p.Runs = append(p.Runs, opts)
	if p.Output != "" && opts.Out != nil {
		_, _ = opts.Out.Write([]byte(p.Output))
	}
	return p.RunErr
}
