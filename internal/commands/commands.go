package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/pkg/build"
	"github.com/hroncok/ansible-bender/pkg/client"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

//go:generate mockgen -package testmocks -destination testmocks/mock_bender_client.go github.com/hroncok/ansible-bender/internal/commands BenderClient

// BenderClient is the narrow view of the client the commands need. It keeps
// command code testable against a mock.
type BenderClient interface {
	Build(ctx context.Context, opts client.BuildOptions) (*build.Build, error)
	ListBuilds() ([]*build.Build, error)
	InspectBuild(id int64) (*build.Build, error)
	BuildLogs(id int64) (string, error)
	Push(ctx context.Context, id int64, destination string) error
}

// AddHelpFlag adds a suppressed help flag so cobra does not inject its own
// wording into every command.
func AddHelpFlag(cmd *cobra.Command, commandName string) {
	cmd.Flags().BoolP("help", "h", false, "Help for '"+commandName+"'")
}

// CreateCancellableContext returns a context cancelled by SIGINT/SIGTERM so
// external commands get a chance to die cleanly.
func CreateCancellableContext() context.Context {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-signals
		cancel()
	}()

	return ctx
}

// logError wraps a RunE function so errors are reported through the logger
// exactly once, at the top.
func logError(logger logging.Logger, f func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		err := f(cmd, args)
		if err != nil {
			logger.Error(err.Error())
		}
		return err
	}
}
