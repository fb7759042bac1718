package cmd

import (
	"github.com/heroku/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	bender "github.com/hroncok/ansible-bender"
	"github.com/hroncok/ansible-bender/internal/commands"
	"github.com/hroncok/ansible-bender/internal/config"
	"github.com/hroncok/ansible-bender/internal/db"
	"github.com/hroncok/ansible-bender/pkg/client"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// ConfigurableLogger defines behavior required by the BenderCommand
type ConfigurableLogger interface {
	logging.Logger
	WantTime(f bool)
	WantQuiet(f bool)
	WantVerbose(f bool)
}

// NewBenderCommand generates the ansible-bender command tree
func NewBenderCommand(logger ConfigurableLogger) (*cobra.Command, error) {
	cobra.EnableCommandSorting = false
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	benderClient, err := initClient(logger, cfg)
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:   "ansible-bender",
		Short: "Build container images using Ansible playbooks",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if fs := cmd.Flags(); fs != nil {
				if flag, err := fs.GetBool("no-color"); err == nil {
					color.Disable(flag)
				}
				if flag, err := fs.GetBool("quiet"); err == nil {
					logger.WantQuiet(flag)
				}
				if flag, err := fs.GetBool("verbose"); err == nil {
					logger.WantVerbose(flag)
				}
				if flag, err := fs.GetBool("timestamps"); err == nil {
					logger.WantTime(flag)
				}
			}
		},
	}

	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("timestamps", false, "Enable timestamps in output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Show less output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more output")

	commands.AddHelpFlag(rootCmd, "ansible-bender")

	rootCmd.AddCommand(commands.Build(logger, cfg, benderClient))
	rootCmd.AddCommand(commands.Builds(logger, benderClient))
	rootCmd.AddCommand(commands.Inspect(logger, benderClient))
	rootCmd.AddCommand(commands.Logs(logger, benderClient))
	rootCmd.AddCommand(commands.Push(logger, benderClient))
	rootCmd.AddCommand(commands.Version(logger, bender.Version))

	rootCmd.Version = bender.Version
	rootCmd.SetVersionTemplate(`{{.Version}}{{"\n"}}`)
	rootCmd.SetOut(logging.GetWriterForLevel(logger, logging.InfoLevel))
	rootCmd.SetErr(logging.GetWriterForLevel(logger, logging.ErrorLevel))

	return rootCmd, nil
}

func initConfig() (config.Config, error) {
	path, err := config.DefaultConfigPath()
	if err != nil {
		return config.Config{}, errors.Wrap(err, "getting config path")
	}

	cfg, err := config.Read(path)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "reading bender config")
	}
	return cfg, nil
}

func initClient(logger logging.Logger, cfg config.Config) (*client.Client, error) {
	opts := []client.Option{
		client.WithLogger(logger),
		client.WithRegistryMirrors(cfg.RegistryMirrors),
	}
	if cfg.DatabasePath != "" {
		store, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return nil, errors.Wrap(err, "opening build database")
		}
		opts = append(opts, client.WithStore(store))
	}
	return client.NewClient(opts...)
}
