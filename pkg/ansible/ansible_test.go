package ansible_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/hroncok/ansible-bender/internal/fakes"
	"github.com/hroncok/ansible-bender/pkg/ansible"
	"github.com/hroncok/ansible-bender/pkg/logging"
	h "github.com/hroncok/ansible-bender/testhelpers"
)

func TestPlaybookRunner(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "PlaybookRunner", testPlaybookRunner, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testPlaybookRunner(t *testing.T, when spec.G, it spec.S) {
	var (
		runner  *fakes.FakeRunner
		subject *ansible.PlaybookRunner
		outBuf  bytes.Buffer
	)

	it.Before(func() {
		runner = fakes.NewFakeRunner()
		subject = ansible.NewPlaybookRunner(runner, logging.NewLogWithWriters(&outBuf, &outBuf))
	})

	when("#Check", func() {
		it("passes when the executor is on PATH", func() {
			h.AssertNil(t, subject.Check(context.Background()))
		})

		it("fails when the executor is missing", func() {
			runner.MissingBinaries = []string{"ansible-playbook"}

			err := subject.Check(context.Background())
			h.AssertError(t, err, "dependency 'ansible-playbook' is not usable")
		})
	})

	when("#Run", func() {
		it("invokes the executor with the buildah connection and an inventory", func() {
			err := subject.Run(context.Background(), ansible.RunOptions{
				Playbook:          "playbook.yaml",
				ContainerName:     "myapp:latest-cont",
				PythonInterpreter: "/usr/bin/python3",
			})
			h.AssertNil(t, err)

			calls := runner.CallsMatching("ansible-playbook", "-c", "buildah", "-i")
			h.AssertEq(t, len(calls), 1)
			argv := calls[0]
			h.AssertEq(t, argv[len(argv)-1], "playbook.yaml")
		})

		it("passes extra arguments before the playbook", func() {
			err := subject.Run(context.Background(), ansible.RunOptions{
				Playbook:      "playbook.yaml",
				ContainerName: "myapp:latest-cont",
				ExtraArgs:     []string{"-vv", "--skip-tags", "slow"},
			})
			h.AssertNil(t, err)

			calls := runner.CallsMatching("ansible-playbook")
			h.AssertEq(t, len(calls), 1)
			argv := calls[0]
			h.AssertEq(t, argv[len(argv)-4:], []string{"-vv", "--skip-tags", "slow", "playbook.yaml"})
		})

		it("streams output to the provided writers", func() {
			var provisionOut bytes.Buffer

			err := subject.Run(context.Background(), ansible.RunOptions{
				Playbook:      "playbook.yaml",
				ContainerName: "myapp:latest-cont",
				Out:           &provisionOut,
				ErrOut:        &provisionOut,
			})
			h.AssertNil(t, err)

			calls := runner.CallsMatching("ansible-playbook")
			h.AssertEq(t, len(calls), 1)
			h.AssertTrue(t, runner.Calls[len(runner.Calls)-1].Streamed)
		})
	})
}
