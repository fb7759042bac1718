package client_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/hroncok/ansible-bender/internal/fakes"
	"github.com/hroncok/ansible-bender/internal/proc"
	"github.com/hroncok/ansible-bender/pkg/build"
	"github.com/hroncok/ansible-bender/pkg/client"
	"github.com/hroncok/ansible-bender/pkg/logging"
	h "github.com/hroncok/ansible-bender/testhelpers"
)

const testPlaybook = `
- name: Build my application image
  hosts: all
  vars:
    ansible_bender:
      base_image: fedora:39
      target_image:
        name: myapp:latest
        user: app
  tasks: []
`

var errCheckFailed = errors.New("check failed")

func TestClient(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Client", testClient, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testClient(t *testing.T, when spec.G, it spec.S) {
	var (
		runner       *fakes.FakeRunner
		store        *fakes.FakeStore
		provisioner  *fakes.FakeProvisioner
		subject      *client.Client
		outBuf       bytes.Buffer
		playbookPath string
	)

	it.Before(func() {
		runner = fakes.NewFakeRunner()
		store = fakes.NewFakeStore()
		provisioner = fakes.NewFakeProvisioner()

		var err error
		subject, err = client.NewClient(
			client.WithLogger(logging.NewLogWithWriters(&outBuf, &outBuf)),
			client.WithRunner(runner),
			client.WithStore(store),
			client.WithProvisioner(provisioner),
		)
		h.AssertNil(t, err)

		playbookPath = filepath.Join(t.TempDir(), "playbook.yaml")
		h.AssertNil(t, os.WriteFile(playbookPath, []byte(testPlaybook), 0644))

		runner.ScriptResult(
			[]string{"buildah", "--version"},
			"buildah version 1.23.1 (image-spec 1.0.1, runtime-spec 1.0.2)",
			nil,
		)
		runner.ScriptResult(
			[]string{"buildah", "inspect", "-t", "image", "myapp:latest"},
			`{"FromImageID": "sha256:abc123"}`,
			nil,
		)
	})

	when("#Build", func() {
		it("takes the working container through the whole lifecycle", func() {
			bld, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertNil(t, err)

			h.AssertEq(t, bld.State, build.StateDone)
			h.AssertEq(t, bld.ImageID, "sha256:abc123")
			h.AssertEq(t, bld.PythonInterpreter, "/usr/bin/python3")
			h.AssertFalse(t, bld.StartTime.IsZero())
			h.AssertFalse(t, bld.FinishTime.IsZero())

			h.AssertTrue(t, runner.CalledWith("buildah", "from", "--name", "myapp:latest-cont", "fedora:39"))
			h.AssertTrue(t, runner.CalledWith("buildah", "config", "--user", "app", "myapp:latest-cont"))
			h.AssertTrue(t, runner.CalledWith("buildah", "commit", "myapp:latest-cont", "myapp:latest"))
			h.AssertTrue(t, runner.CalledWith("buildah", "rm", "myapp:latest-cont"))

			stored, err := store.Get(bld.ID)
			h.AssertNil(t, err)
			h.AssertEq(t, stored.State, build.StateDone)
		})

		it("provisions against the working container with the resolved interpreter", func() {
			_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertNil(t, err)

			h.AssertEq(t, len(provisioner.Runs), 1)
			h.AssertEq(t, provisioner.Runs[0].ContainerName, "myapp:latest-cont")
			h.AssertEq(t, provisioner.Runs[0].PythonInterpreter, "/usr/bin/python3")
			h.AssertEq(t, provisioner.Runs[0].Playbook, playbookPath)
		})

		it("stores the provisioning output with the record", func() {
			provisioner.Output = "TASK [install deps]\nok\n"

			bld, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertNil(t, err)

			logs, err := store.Logs(bld.ID)
			h.AssertNil(t, err)
			h.AssertEq(t, logs, "TASK [install deps]\nok\n")
		})

		it("honors image overrides", func() {
			runner.ScriptResult(
				[]string{"buildah", "inspect", "-t", "image", "other:1"},
				`{"FromImageID": "sha256:def456"}`,
				nil,
			)

			_, err := subject.Build(context.Background(), client.BuildOptions{
				Playbook:    playbookPath,
				BaseImage:   "alpine:3.19",
				TargetImage: "other:1",
			})
			h.AssertNil(t, err)

			h.AssertTrue(t, runner.CalledWith("buildah", "from", "--name", "other:1-cont", "alpine:3.19"))
		})

		it("passes build volumes to the working container", func() {
			_, err := subject.Build(context.Background(), client.BuildOptions{
				Playbook:     playbookPath,
				BuildVolumes: []string{"/src:/dst"},
			})
			h.AssertNil(t, err)

			h.AssertTrue(t, runner.CalledWith(
				"buildah", "from", "-v", "/src:/dst", "--name", "myapp:latest-cont", "fedora:39"))
		})

		it("rejects an invalid target image", func() {
			_, err := subject.Build(context.Background(), client.BuildOptions{
				Playbook:    playbookPath,
				TargetImage: "MYAPP::",
			})
			h.AssertError(t, err, "invalid target image")
			h.AssertEq(t, len(runner.Calls), 0)
		})

		it("fails fast when the engine is unusable", func() {
			runner.MissingBinaries = []string{"buildah"}

			_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertError(t, err, "dependency 'buildah' is not usable")
			h.AssertEq(t, len(store.Records), 0)
		})

		it("fails fast when the provisioner is unusable", func() {
			provisioner.CheckErr = errCheckFailed

			_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertError(t, err, "check failed")
			h.AssertEq(t, len(store.Records), 0)
		})

		when("provisioning fails", func() {
			it.Before(func() {
				provisioner.RunErr = &proc.ExitError{
					Argv:     []string{"ansible-playbook"},
					ExitCode: 2,
					Stderr:   "task failed",
				}
			})

			it("marks the record failed and keeps the working container", func() {
				_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
				h.AssertError(t, err, "provisioning failed")

				h.AssertFalse(t, runner.CalledWith("buildah", "rm", "myapp:latest-cont"))
				h.AssertEq(t, len(runner.CallsMatching("buildah", "commit")), 0)
				h.AssertContains(t, outBuf.String(), "left behind for inspection")

				latest, storeErr := store.Latest()
				h.AssertNil(t, storeErr)
				h.AssertEq(t, latest.State, build.StateFailed)
			})
		})

		when("no interpreter exists in the base image", func() {
			it.Before(func() {
				for _, candidate := range build.DefaultInterpreterCandidates {
					runner.ScriptResult(
						[]string{"podman", "run", "--rm", "fedora:39", "ls", candidate},
						"",
						&proc.ExitError{Argv: []string{"podman", "run"}, ExitCode: 2, Stderr: "no such file"},
					)
				}
			})

			it("fails before creating the working container", func() {
				_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
				h.AssertError(t, err, "no python interpreter found in image 'fedora:39'")
				h.AssertEq(t, len(runner.CallsMatching("buildah", "from")), 0)

				latest, storeErr := store.Latest()
				h.AssertNil(t, storeErr)
				h.AssertEq(t, latest.State, build.StateFailed)
			})
		})

		when("registry mirrors are configured", func() {
			it("translates the base image before the build", func() {
				mirrored, err := client.NewClient(
					client.WithLogger(logging.NewLogWithWriters(&outBuf, &outBuf)),
					client.WithRunner(runner),
					client.WithStore(store),
					client.WithProvisioner(provisioner),
					client.WithRegistryMirrors(map[string]string{"index.docker.io": "mirror.example.com"}),
				)
				h.AssertNil(t, err)

				runner.ScriptResult(
					[]string{"podman", "run", "--rm", "mirror.example.com/library/fedora:39", "ls", "/usr/bin/python3"},
					"",
					nil,
				)

				_, err = mirrored.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
				h.AssertNil(t, err)

				h.AssertTrue(t, runner.CalledWith(
					"buildah", "from", "--name", "myapp:latest-cont", "mirror.example.com/library/fedora:39"))
			})
		})
	})

	when("#ListBuilds", func() {
		it("returns stored records newest first", func() {
			for i := 0; i < 2; i++ {
				_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
				h.AssertNil(t, err)
			}

			builds, err := subject.ListBuilds()
			h.AssertNil(t, err)
			h.AssertEq(t, len(builds), 2)
			h.AssertEq(t, builds[0].ID, int64(2))
		})
	})

	when("#InspectBuild", func() {
		it("returns the latest record for ID zero", func() {
			bld, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertNil(t, err)

			got, err := subject.InspectBuild(0)
			h.AssertNil(t, err)
			h.AssertEq(t, got.ID, bld.ID)
		})
	})

	when("#BuildLogs", func() {
		it("returns the latest record's logs for ID zero", func() {
			provisioner.Output = "ok\n"
			_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertNil(t, err)

			logs, err := subject.BuildLogs(0)
			h.AssertNil(t, err)
			h.AssertEq(t, logs, "ok\n")
		})
	})

	when("#Push", func() {
		it("pushes the image of a finished build", func() {
			bld, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertNil(t, err)

			h.AssertNil(t, subject.Push(context.Background(), bld.ID, "quay.io/me/myapp:latest"))
			h.AssertTrue(t, runner.CalledWith("podman", "push", "myapp:latest", "quay.io/me/myapp:latest"))
		})

		it("refuses to push an unfinished build", func() {
			provisioner.RunErr = &proc.ExitError{Argv: []string{"ansible-playbook"}, ExitCode: 2}
			_, err := subject.Build(context.Background(), client.BuildOptions{Playbook: playbookPath})
			h.AssertNotNil(t, err)

			err = subject.Push(context.Background(), 0, "quay.io/me/myapp:latest")
			h.AssertError(t, err, "did not finish successfully")
			h.AssertEq(t, len(runner.CallsMatching("podman", "push")), 0)
		})
	})
}
