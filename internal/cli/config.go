package cli

import (
	"fmt"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
	"github.com/ralt/reposcout/internal/probe"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config keys and the flags that set them
var resolveFlagKeys = map[string]string{
	"platforms":       "platform",
	"buildserver_url": "buildserver-url",
	"package":         "package",
	"build_version":   "build-version",
	"repos":           "repo",
	"enterprise":      "enterprise",
	"http_timeout":    "http-timeout",
	"insecure":        "insecure",
	"check_index":     "check-index",
	"keyring":         "keyring",
	"output":          "output",
}

func addResolveFlags(cmd *cobra.Command) {
	// Target flags
	cmd.Flags().StringSliceP("platform", "p", nil, "Target platform, e.g. el-7-x86_64 (repeatable)")

	// Package flags
	cmd.Flags().String("package", "", "Package name")
	cmd.Flags().String("build-version", "", "Dev build version")
	cmd.Flags().Bool("enterprise", false, "Use the enterprise repo filename pattern")

	// Build server flags
	cmd.Flags().String("buildserver-url", "", "Build server base URL (required for EL platforms)")
	cmd.Flags().StringSlice("repo", nil, "Preferred repo, searched before the defaults (repeatable)")
	cmd.Flags().Duration("http-timeout", probe.DefaultTimeout, "Timeout for each build server request")
	cmd.Flags().Bool("insecure", false, "Skip TLS verification for the build server")

	// Index flags
	cmd.Flags().Bool("check-index", false, "Confirm the build is listed in the resolved repo's index")
	cmd.Flags().String("keyring", "", "Public keyring for index signature checks")

	cmd.Flags().StringP("output", "o", "text", "Output format (text, yaml, json)")
}

// bindResolveFlags ties the command's flags to the config keys. Commands share
// one viper instance, so binding happens when the command runs.
func bindResolveFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, flag := range resolveFlagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func loadResolveConfig(v *viper.Viper) *models.ResolveConfig {
	return &models.ResolveConfig{
		Platforms:      v.GetStringSlice("platforms"),
		PackageName:    v.GetString("package"),
		BuildVersion:   v.GetString("build_version"),
		Enterprise:     v.GetBool("enterprise"),
		BuildserverURL: v.GetString("buildserver_url"),
		Repos:          v.GetStringSlice("repos"),
		HTTPTimeout:    v.GetDuration("http_timeout"),
		Insecure:       v.GetBool("insecure"),
		CheckIndex:     v.GetBool("check_index"),
		KeyringPath:    v.GetString("keyring"),
		Output:         v.GetString("output"),
	}
}

func validateConfig(config *models.ResolveConfig, parser platform.Classifier) error {
	if len(config.Platforms) == 0 {
		return configError("at least one --platform is required")
	}

	if config.PackageName == "" {
		return configError("package is required")
	}

	if config.BuildVersion == "" {
		return configError("build-version is required")
	}

	switch config.Output {
	case "text", "yaml", "json":
	case "":
		config.Output = "text"
	default:
		return configError("unknown output format %q", config.Output)
	}

	if config.KeyringPath != "" && !config.CheckIndex {
		return configError("keyring is only used with check-index")
	}

	for _, descriptor := range config.Platforms {
		p, err := parser.Parse(descriptor)
		if err != nil {
			return err
		}
		if p.Family() == platform.ELFamily && config.BuildserverURL == "" {
			return configError("buildserver-url is required for %s", descriptor)
		}
	}

	return nil
}

func configError(format string, args ...interface{}) error {
	return &models.Error{
		Type: models.ErrInvalidConfig,
		Err:  fmt.Errorf(format, args...),
	}
}
