package commands

import (
	"github.com/spf13/cobra"

	"github.com/hroncok/ansible-bender/internal/config"
	"github.com/hroncok/ansible-bender/pkg/client"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

// BuildFlags define flags provided to the Build command.
type BuildFlags struct {
	BuildVolumes []string
	ExtraArgs    []string
	BaseImage    string
	TargetImage  string
}

// Build an image from an Ansible playbook.
func Build(logger logging.Logger, cfg config.Config, benderClient BenderClient) *cobra.Command {
	var flags BuildFlags
	cmd := &cobra.Command{
		Use:   "build <playbook>",
		Args:  cobra.ExactArgs(1),
		Short: "Build a container image from an Ansible playbook",
		Example: "ansible-bender build ./playbook.yaml\n" +
			"ansible-bender build ./playbook.yaml --base-image fedora:39 --target-image myapp:latest",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, err := benderClient.Build(ctx, client.BuildOptions{
				Playbook:     args[0],
				BaseImage:    flags.BaseImage,
				TargetImage:  flags.TargetImage,
				BuildVolumes: append(cfg.BuildVolumes, flags.BuildVolumes...),
				ExtraArgs:    flags.ExtraArgs,
			})
			return err
		}),
	}
	cmd.Flags().StringVar(&flags.BaseImage, "base-image", "", "Base image to provision, overrides the playbook")
	cmd.Flags().StringVar(&flags.TargetImage, "target-image", "", "Name of the committed image, overrides the playbook")
	cmd.Flags().StringArrayVar(&flags.BuildVolumes, "build-volume", nil, "Mount a host directory into the working container, <host>:<container>[:<opts>] (repeatable)")
	cmd.Flags().StringArrayVar(&flags.ExtraArgs, "extra-ansible-args", nil, "Pass an extra argument to ansible-playbook (repeatable)")
	AddHelpFlag(cmd, "build")
	return cmd
}
