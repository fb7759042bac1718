package commands

import (
	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/pkg/logging"
)

// PushFlags define flags provided to the Push command.
type PushFlags struct {
	BuildID int64
}

// Push uploads the image of a finished build to a destination. Without
// --build-id the most recent build is pushed.
func Push(logger logging.Logger, benderClient BenderClient) *cobra.Command {
	var flags PushFlags
	cmd := &cobra.Command{
		Use:   "push <destination>",
		Args:  cobra.ExactArgs(1),
		Short: "Push the image of a finished build",
		Example: "ansible-bender push quay.io/me/myapp:latest\n" +
			"ansible-bender push docker-daemon:myapp:latest --build-id 3",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			return benderClient.Push(cmd.Context(), flags.BuildID, args[0])
		}),
	}
	cmd.Flags().Int64Var(&flags.BuildID, "build-id", 0, "Build to push, defaults to the most recent one")
	AddHelpFlag(cmd, "push")
	return cmd
}
