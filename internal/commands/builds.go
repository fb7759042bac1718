package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/pkg/build"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// Builds lists recorded builds, newest first.
func Builds(logger logging.Logger, benderClient BenderClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "builds",
		Args:  cobra.NoArgs,
		Short: "List recorded builds",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			builds, err := benderClient.ListBuilds()
			if err != nil {
				return err
			}
			if len(builds) == 0 {
				logger.Info("no builds recorded yet")
				return nil
			}

			w := tabwriter.NewWriter(logger.Writer(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tIMAGE\tSTATE\tSTARTED\tFINISHED\tIMAGE ID")
			for _, b := range builds {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					b.ID, b.TargetImage, b.State,
					humanize.Time(b.StartTime), finishedAt(b), shortID(b.ImageID))
			}
			return w.Flush()
		}),
	}
	AddHelpFlag(cmd, "builds")
	return cmd
}

func finishedAt(b *build.Build) string {
	if b.FinishTime.IsZero() {
		return ""
	}
	return humanize.Time(b.FinishTime)
}

func shortID(imageID string) string {
	if len(imageID) > 12 {
		return imageID[:12]
	}
	return imageID
}
