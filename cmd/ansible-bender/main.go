package main

import (
	"os"

	"github.com/hroncok/ansible-bender/cmd"
	"github.com/hroncok/ansible-bender/internal/commands"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

func main() {
	// create logger with defaults
	logger := logging.NewLogWithWriters(os.Stdout, os.Stderr)

	rootCmd, err := cmd.NewBenderCommand(logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	ctx := commands.CreateCancellableContext()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
