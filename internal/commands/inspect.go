package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/pkg/logging"
)

// Inspect prints the full record of a build as JSON. Without an argument the
// most recent build is shown.
func Inspect(logger logging.Logger, benderClient BenderClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [<build-id>]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Show the full record of a build",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			id, err := parseBuildID(args)
			if err != nil {
				return err
			}

			bld, err := benderClient.InspectBuild(id)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(bld, "", "    ")
			if err != nil {
				return errors.Wrap(err, "rendering build record")
			}
			_, err = fmt.Fprintln(logger.Writer(), string(out))
			return err
		}),
	}
	AddHelpFlag(cmd, "inspect")
	return cmd
}

// parseBuildID reads the optional build id argument. Zero means latest.
func parseBuildID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid build id %q, expected a positive number", args[0])
	}
	return id, nil
}
