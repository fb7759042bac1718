package commands_test

import (
	"bytes"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/internal/commands"
	"github.com/hroncok/ansible-bender/internal/commands/testmocks"
	"github.com/hroncok/ansible-bender/pkg/build"
	"github.com/hroncok/ansible-bender/pkg/logging"
	h "github.com/hroncok/ansible-bender/testhelpers"
)

func TestInspectCommand(t *testing.T) {
	spec.Run(t, "Commands", testInspectCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testInspectCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command        *cobra.Command
		outBuf         bytes.Buffer
		mockController *gomock.Controller
		mockClient     *testmocks.MockBenderClient
	)

	it.Before(func() {
		mockController = gomock.NewController(t)
		mockClient = testmocks.NewMockBenderClient(mockController)

		command = commands.Inspect(logging.NewLogWithWriters(&outBuf, &outBuf), mockClient)
	})

	it.After(func() {
		mockController.Finish()
	})

	when("#InspectCommand", func() {
		it("prints the record of the given build as JSON", func() {
			mockClient.EXPECT().InspectBuild(int64(3)).Return(&build.Build{
				ID:          3,
				BaseImage:   "fedora:39",
				TargetImage: "myapp:latest",
				State:       build.StateDone,
			}, nil)

			command.SetArgs([]string{"3"})
			h.AssertNil(t, command.Execute())

			out := outBuf.String()
			h.AssertContains(t, out, `"target_image": "myapp:latest"`)
			h.AssertContains(t, out, `"state": "done"`)
		})

		it("defaults to the latest build", func() {
			mockClient.EXPECT().InspectBuild(int64(0)).Return(&build.Build{ID: 7}, nil)

			command.SetArgs([]string{})
			h.AssertNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), `"id": 7`)
		})

		it("rejects a non-numeric build id", func() {
			command.SetArgs([]string{"most-recent"})
			h.AssertNotNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), "invalid build id")
		})
	})
}
