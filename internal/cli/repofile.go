package cli

import (
	"fmt"

	"github.com/ralt/reposcout/internal/platform"
	"github.com/ralt/reposcout/internal/probe"
	"github.com/ralt/reposcout/internal/repofile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRepofileCmd creates the repofile command
func NewRepofileCmd(v *viper.Viper) *cobra.Command {
	var (
		root      string
		gpgKeyURL string
	)

	cmd := &cobra.Command{
		Use:   "repofile",
		Short: "Write the repo definition file for each platform",
		Long: `Resolves the dev build repo for each platform, like resolve, then writes
the yum .repo or apt .list file pointing at it into the package manager's
config directory under --root.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindResolveFlags(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadResolveConfig(v)
			config.Root = root
			parser := platform.NewParser()
			if err := validateConfig(config, parser); err != nil {
				return err
			}

			env, err := newEnvironment(config, probe.NewLocalRunner(logrus.StandardLogger()), parser)
			if err != nil {
				return err
			}

			resolutions, err := env.resolveAll(cmd.Context(), config)
			if err != nil {
				return err
			}

			opts := repofile.Options{
				PackageName:  config.PackageName,
				BuildVersion: config.BuildVersion,
				Enterprise:   config.Enterprise,
				GPGKeyURL:    gpgKeyURL,
			}

			for _, r := range resolutions {
				p, err := parser.Parse(r.Platform)
				if err != nil {
					return err
				}

				def, err := repofile.Render(p, r.RepoPath, opts)
				if err != nil {
					return err
				}
				logrus.Debugf("%s:\n%s", def.Path, def.Content)

				target, err := def.Write(config.Root)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), target)
			}

			return nil
		},
	}

	addResolveFlags(cmd)
	cmd.Flags().StringVar(&root, "root", "/", "Root directory the config dirs are written under")
	cmd.Flags().StringVar(&gpgKeyURL, "gpg-key-url", "", "GPG key URL for yum repos (enables gpgcheck)")

	return cmd
}
