package commands_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/internal/commands"
	"github.com/hroncok/ansible-bender/internal/commands/testmocks"
	"github.com/hroncok/ansible-bender/internal/config"
	"github.com/hroncok/ansible-bender/pkg/client"
	"github.com/hroncok/ansible-bender/pkg/logging"
	h "github.com/hroncok/ansible-bender/testhelpers"
)

func TestBuildCommand(t *testing.T) {
	spec.Run(t, "Commands", testBuildCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testBuildCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command        *cobra.Command
		outBuf         bytes.Buffer
		mockController *gomock.Controller
		mockClient     *testmocks.MockBenderClient
		cfg            config.Config
	)

	it.Before(func() {
		cfg = config.Config{}
		mockController = gomock.NewController(t)
		mockClient = testmocks.NewMockBenderClient(mockController)

		command = commands.Build(logging.NewLogWithWriters(&outBuf, &outBuf), cfg, mockClient)
	})

	it.After(func() {
		mockController.Finish()
	})

	when("#BuildCommand", func() {
		it("builds from the playbook argument", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), EqBuildOptionsWithPlaybook("playbook.yaml")).
				Return(nil, nil)

			command.SetArgs([]string{"playbook.yaml"})
			h.AssertNil(t, command.Execute())
		})

		it("forwards image overrides onto the client", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), EqBuildOptionsWithImages("fedora:39", "myapp:latest")).
				Return(nil, nil)

			command.SetArgs([]string{"playbook.yaml", "--base-image", "fedora:39", "--target-image", "myapp:latest"})
			h.AssertNil(t, command.Execute())
		})

		it("forwards build volumes onto the client", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), EqBuildOptionsWithVolumes([]string{"/src:/dst"})).
				Return(nil, nil)

			command.SetArgs([]string{"playbook.yaml", "--build-volume", "/src:/dst"})
			h.AssertNil(t, command.Execute())
		})

		it("prepends volumes from the configuration", func() {
			cfg.BuildVolumes = []string{"/cache:/cache"}
			command = commands.Build(logging.NewLogWithWriters(&outBuf, &outBuf), cfg, mockClient)

			mockClient.EXPECT().
				Build(gomock.Any(), EqBuildOptionsWithVolumes([]string{"/cache:/cache", "/src:/dst"})).
				Return(nil, nil)

			command.SetArgs([]string{"playbook.yaml", "--build-volume", "/src:/dst"})
			h.AssertNil(t, command.Execute())
		})

		it("forwards extra ansible arguments onto the client", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), EqBuildOptionsWithExtraArgs([]string{"-vv"})).
				Return(nil, nil)

			command.SetArgs([]string{"playbook.yaml", "--extra-ansible-args", "-vv"})
			h.AssertNil(t, command.Execute())
		})

		it("requires the playbook argument", func() {
			command.SetArgs([]string{})
			h.AssertNotNil(t, command.Execute())
		})

		it("logs failures from the client", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), gomock.Any()).
				Return(nil, fmt.Errorf("provisioning failed"))

			command.SetArgs([]string{"playbook.yaml"})
			h.AssertNotNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), "provisioning failed")
		})
	})
}

func EqBuildOptionsWithPlaybook(playbook string) gomock.Matcher {
	return buildOptionsMatcher{
		description: fmt.Sprintf("Playbook=%s", playbook),
		equals: func(o client.BuildOptions) bool {
			return o.Playbook == playbook
		},
	}
}

func EqBuildOptionsWithImages(baseImage, targetImage string) gomock.Matcher {
	return buildOptionsMatcher{
		description: fmt.Sprintf("BaseImage=%s, TargetImage=%s", baseImage, targetImage),
		equals: func(o client.BuildOptions) bool {
			return o.BaseImage == baseImage && o.TargetImage == targetImage
		},
	}
}

func EqBuildOptionsWithVolumes(volumes []string) gomock.Matcher {
	return buildOptionsMatcher{
		description: fmt.Sprintf("BuildVolumes=%s", volumes),
		equals: func(o client.BuildOptions) bool {
			if len(o.BuildVolumes) != len(volumes) {
				return false
			}
			for i, v := range volumes {
				if o.BuildVolumes[i] != v {
					return false
				}
			}
			return true
		},
	}
}

func EqBuildOptionsWithExtraArgs(args []string) gomock.Matcher {
	return buildOptionsMatcher{
		description: fmt.Sprintf("ExtraArgs=%s", args),
		equals: func(o client.BuildOptions) bool {
			if len(o.ExtraArgs) != len(args) {
				return false
			}
			for i, a := range args {
				if o.ExtraArgs[i] != a {
					return false
				}
			}
			return true
		},
	}
}

type buildOptionsMatcher struct {
	description string
	equals      func(client.BuildOptions) bool
}

func (m buildOptionsMatcher) Matches(x interface{}) bool {
	if o, ok := x.(client.BuildOptions); ok {
		return m.equals(o)
	}
	return false
}

func (m buildOptionsMatcher) String() string {
	return "is a BuildOptions with " + m.description
}
