package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "reposcout",
		Short: "Locate dev build package repositories for unix test hosts",
		Long: `Reposcout finds the package repository a dev build of a package was
published to, for each target platform, and writes the repository definition
file the host's package manager needs to install from it.

Supported platform families:
  - EL (el, centos, fedora): yum repos on the build server
  - Debian (debian, ubuntu, cumulus): apt repos copied onto the host`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			trace, _ := cmd.Flags().GetBool("trace")
			switch {
			case trace:
				logrus.SetLevel(logrus.TraceLevel)
			case verbose:
				logrus.SetLevel(logrus.DebugLevel)
			default:
				logrus.SetLevel(logrus.InfoLevel)
			}

			return initConfig(v, cfgFile)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reposcout.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("trace", false, "Log every probe and command")

	// Add subcommands
	rootCmd.AddCommand(NewResolveCmd(v))
	rootCmd.AddCommand(NewRepofileCmd(v))
	rootCmd.AddCommand(NewNoaskCmd())

	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".reposcout")
	}

	v.SetEnvPrefix("REPOSCOUT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only an explicitly requested config file has to load
		if cfgFile != "" {
			return configError("failed to read config file %s: %w", cfgFile, err)
		}
		return nil
	}

	logrus.Debugf("Using config file: %s", v.ConfigFileUsed())
	return nil
}
