// Package build defines the build specification and the build record types.
package build

import (
	"time"

	"github.com/hroncok/ansible-bender/pkg/buildah"
)

// State describes where a recorded build is in its life.
type State string

const (
	StateInProgress State = "in_progress"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// DefaultInterpreterCandidates is the prioritized list of python interpreter
// paths probed inside the base image when the specification does not name
// its own.
var DefaultInterpreterCandidates = []string{
	"/usr/bin/python3",
	"/usr/bin/python2",
	"/usr/bin/python",
}

// Metadata is the image metadata accumulated on the working container.
//
// It is applied in two phases: working directory, environment variables,
// ports and labels go on before provisioning so they are inherited
// correctly; user, default command and volumes go on only at commit time,
// since setting the default user earlier would change which identity the
// provisioning steps run as.
type Metadata struct {
	WorkingDir string            `json:"working_dir,omitempty" yaml:"working_dir,omitempty"`
	Labels     map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	EnvVars    map[string]string `json:"env_vars,omitempty" yaml:"environment,omitempty"`
	Cmd        string            `json:"cmd,omitempty" yaml:"cmd,omitempty"`
	User       string            `json:"user,omitempty" yaml:"user,omitempty"`
	Ports      []string          `json:"ports,omitempty" yaml:"ports,omitempty"`
	Volumes    []string          `json:"volumes,omitempty" yaml:"volumes,omitempty"`
}

// PreCommitConfig returns the metadata applied right after the working
// container is created.
func (m *Metadata) PreCommitConfig() buildah.ConfigOptions {
	return buildah.ConfigOptions{
		WorkingDir: m.WorkingDir,
		Env:        m.EnvVars,
		Labels:     m.Labels,
		Ports:      m.Ports,
	}
}

// CommitConfig returns the metadata applied only at commit time.
func (m *Metadata) CommitConfig() buildah.ConfigOptions {
	return buildah.ConfigOptions{
		User:    m.User,
		Cmd:     m.Cmd,
		Volumes: m.Volumes,
	}
}

// Build is the specification of one build plus its recorded outcome. The
// specification half (images, playbook, metadata, volumes, interpreter
// candidates) is created once before the lifecycle begins and read-only
// afterward; the record half (ID, state, times, image ID) is maintained as
// the build progresses.
type Build struct {
	ID          int64     `json:"id"`
	BaseImage   string    `json:"base_image"`
	TargetImage string    `json:"target_image"`
	Playbook    string    `json:"playbook"`
	Metadata    Metadata  `json:"metadata"`

	BuildVolumes          []string `json:"build_volumes,omitempty"`
	AnsibleExtraArgs      []string `json:"ansible_extra_args,omitempty"`
	PythonInterpreter     string   `json:"python_interpreter,omitempty"`
	InterpreterCandidates []string `json:"interpreter_candidates,omitempty"`

	State      State     `json:"state"`
	StartTime  time.Time `json:"start_time"`
	FinishTime time.Time `json:"finish_time"`
	ImageID    string    `json:"image_id,omitempty"`
}

// InterpreterPriority returns the candidate interpreter paths to probe, in
// order.
func (b *Build) InterpreterPriority() []string {
	if len(b.InterpreterCandidates) > 0 {
		return b.InterpreterCandidates
	}
	return DefaultInterpreterCandidates
}
