package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/pkg/logging"
)

// Logs prints the stored provisioning output of a build. Without an argument
// the most recent build's output is shown.
func Logs(logger logging.Logger, benderClient BenderClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get-logs [<build-id>]",
		Args:    cobra.MaximumNArgs(1),
		Short:   "Print the provisioning output of a build",
		Aliases: []string{"logs"},
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			id, err := parseBuildID(args)
			if err != nil {
				return err
			}

			logs, err := benderClient.BuildLogs(id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(logger.Writer(), logs)
			return err
		}),
	}
	AddHelpFlag(cmd, "get-logs")
	return cmd
}
