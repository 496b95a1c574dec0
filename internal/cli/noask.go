package cli

import (
	"fmt"

	"github.com/ralt/reposcout/internal/hostfile"
	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
	"github.com/ralt/reposcout/internal/probe"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewNoaskCmd creates the noask command
func NewNoaskCmd() *cobra.Command {
	var (
		descriptor string
		write      bool
	)

	cmd := &cobra.Command{
		Use:   "noask",
		Short: "Print the noask admin file for unattended package installs",
		Long: `Prints the pkgadd admin file that lets packages install without prompts.
With --write the file is created in the host's temp directory and its path
is printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if descriptor == "" {
				return configError("platform is required")
			}

			p, err := platform.NewParser().Parse(descriptor)
			if err != nil {
				return err
			}

			text, err := hostfile.NoaskText(p)
			if err != nil {
				return err
			}

			if !write {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}

			path, err := writeNoask(cmd, hostfile.NewHost(probe.NewLocalRunner(logrus.StandardLogger())), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&descriptor, "platform", "p", "", "Target platform, e.g. solaris-10-i386")
	cmd.Flags().BoolVar(&write, "write", false, "Write the file to the host's temp directory")

	return cmd
}

func writeNoask(cmd *cobra.Command, host *hostfile.Host, text string) (string, error) {
	ctx := cmd.Context()

	path, err := host.TmpFile(ctx, "noask")
	if err != nil {
		return "", fmt.Errorf("failed to create noask file in %s: %w", host.SystemTempPath(), err)
	}

	if err := host.WriteFile(ctx, path, text); err != nil {
		return "", err
	}

	exists, err := host.FileExists(ctx, path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &models.Error{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("noask file %s missing after write", path),
		}
	}

	logrus.Infof("noask file written to: %s", host.SCPPath(path))
	return path, nil
}
