// Package playbook extracts the build specification from an Ansible
// playbook's `ansible_bender` vars block.
package playbook

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/build"
)

type play struct {
	Name  string `yaml:"name"`
	Hosts string `yaml:"hosts"`
	Vars  vars   `yaml:"vars"`
}

type vars struct {
	AnsibleBender *benderVars `yaml:"ansible_bender"`
}

type benderVars struct {
	BaseImage        string      `yaml:"base_image"`
	BuildVolumes     []string    `yaml:"build_volumes"`
	AnsibleExtraArgs string      `yaml:"ansible_extra_args"`
	TargetImage      targetImage `yaml:"target_image"`
}

type targetImage struct {
	Name           string `yaml:"name"`
	build.Metadata `yaml:",inline"`
}

// Load parses the playbook at path and returns the build specification
// declared in the first play that carries an `ansible_bender` vars block.
func Load(path string) (*build.Build, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading playbook %s", style.Symbol(path))
	}

	return Parse(data, path)
}

// Parse is Load over already-read playbook content.
func Parse(data []byte, path string) (*build.Build, error) {
	var plays []play
	if err := yaml.Unmarshal(data, &plays); err != nil {
		return nil, errors.Wrapf(err, "parsing playbook %s", style.Symbol(path))
	}

	if len(plays) == 0 {
		return nil, errors.Errorf("playbook %s contains no plays", style.Symbol(path))
	}

	for _, p := range plays {
		if p.Vars.AnsibleBender == nil {
			continue
		}
		return toBuild(p.Vars.AnsibleBender, path)
	}

	return nil, errors.Errorf("playbook %s has no play with an %s vars block",
		style.Symbol(path), style.Symbol("ansible_bender"))
}

func toBuild(v *benderVars, path string) (*build.Build, error) {
	if v.BaseImage == "" {
		return nil, errors.Errorf("playbook %s does not set %s",
			style.Symbol(path), style.Symbol("base_image"))
	}
	if v.TargetImage.Name == "" {
		return nil, errors.Errorf("playbook %s does not set %s",
			style.Symbol(path), style.Symbol("target_image.name"))
	}

	return &build.Build{
		BaseImage:        v.BaseImage,
		TargetImage:      v.TargetImage.Name,
		Playbook:         path,
		Metadata:         v.TargetImage.Metadata,
		BuildVolumes:     v.BuildVolumes,
		AnsibleExtraArgs: strings.Fields(v.AnsibleExtraArgs),
	}, nil
}
