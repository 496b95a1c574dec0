package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ralt/reposcout/internal/index"
	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
	"github.com/ralt/reposcout/internal/probe"
	"github.com/ralt/reposcout/internal/repo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the dev build repo for each platform",
		Long: `Searches the preferred and default repos of a dev build for each target
platform and prints where the package manager should install it from.

EL repos are checked on the build server; a build that cannot be reached is
an error. Debian repos are checked on the host and fall back to "main".`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindResolveFlags(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadResolveConfig(v)
			parser := platform.NewParser()
			if err := validateConfig(config, parser); err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", config)

			env, err := newEnvironment(config, probe.NewLocalRunner(logrus.StandardLogger()), parser)
			if err != nil {
				return err
			}

			resolutions, err := env.resolveAll(cmd.Context(), config)
			if err != nil {
				return err
			}

			return printResolutions(cmd.OutOrStdout(), config.Output, resolutions)
		},
	}

	addResolveFlags(cmd)

	return cmd
}

// environment holds the collaborators shared by every platform resolve
type environment struct {
	parser platform.Classifier
	probe  probe.ExistenceProbe
	client *http.Client // index downloads
	logger logrus.Ext1FieldLogger

	checkIndex bool
	verifier   *index.Verifier // nil skips signature checks
}

func newEnvironment(config *models.ResolveConfig, runner probe.Runner, parser platform.Classifier) (*environment, error) {
	logger := logrus.StandardLogger()
	links := probe.NewHTTPProbe(config.HTTPTimeout, config.Insecure, logger)

	env := &environment{
		parser:     parser,
		probe:      probe.New(runner, links),
		client:     probe.NewHTTPClient(config.HTTPTimeout, config.Insecure),
		logger:     logger,
		checkIndex: config.CheckIndex,
	}

	if config.KeyringPath != "" {
		verifier, err := index.NewVerifier(config.KeyringPath)
		if err != nil {
			return nil, &models.Error{
				Type: models.ErrSignature,
				Err:  fmt.Errorf("failed to load keyring: %w", err),
			}
		}
		env.verifier = verifier
		logrus.Info("Index signature checks enabled")
	}

	return env, nil
}

// resolveAll resolves every platform concurrently. Results keep the order of
// config.Platforms; the first failure cancels the rest.
func (e *environment) resolveAll(ctx context.Context, config *models.ResolveConfig) ([]*models.Resolution, error) {
	resolutions := make([]*models.Resolution, len(config.Platforms))

	g, ctx := errgroup.WithContext(ctx)
	for i, descriptor := range config.Platforms {
		i, descriptor := i, descriptor
		g.Go(func() error {
			resolution, err := e.resolve(ctx, config, descriptor)
			if err != nil {
				return err
			}
			resolutions[i] = resolution
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolutions, nil
}

func (e *environment) resolve(ctx context.Context, config *models.ResolveConfig, descriptor string) (*models.Resolution, error) {
	resolver, err := repo.NewResolver(descriptor, e.parser, e.probe, e.logger)
	if err != nil {
		return nil, err
	}
	p := resolver.Platform()

	configDir, err := repo.PackageConfigDir(p)
	if err != nil {
		return nil, err
	}
	repoType, err := repo.RepoType(p)
	if err != nil {
		return nil, err
	}
	filename, err := repo.RepoFilename(p, config.PackageName, config.BuildVersion, config.Enterprise)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Resolving %s %s for %s...", config.PackageName, config.BuildVersion, p)

	repoPath, err := resolver.Resolve(ctx, config.Repos, config.BuildserverURL, config.PackageName, config.BuildVersion)
	if err != nil {
		return nil, err
	}

	resolution := &models.Resolution{
		Platform:         p.Descriptor,
		RepoType:         repoType,
		PackageConfigDir: configDir,
		RepoFilename:     filename,
		Candidates:       resolver.Candidates(config.Repos),
		RepoPath:         repoPath,
	}

	if e.checkIndex {
		if err := e.verifyIndex(ctx, config, p, resolution); err != nil {
			return nil, err
		}
	}

	return resolution, nil
}

// verifyIndex confirms the build is listed in the resolved repo's index
func (e *environment) verifyIndex(ctx context.Context, config *models.ResolveConfig, p platform.Platform, resolution *models.Resolution) error {
	location := resolution.RepoPath
	if p.Family() == platform.DebianFamily && location == repo.DefaultDebianRepo {
		logrus.Warnf("No dev build repo on the host for %s, skipping index check", p)
		return nil
	}

	inspector := index.NewInspector(index.FetcherFor(location, e.client), e.verifier, e.logger)
	idx, err := inspector.Inspect(ctx, p.Family(), location)
	if err != nil {
		return err
	}

	pkg, ok := idx.Latest(config.PackageName)
	if !ok {
		return models.NewError(models.ErrIndex, p.Descriptor,
			"package %s not listed in %s", config.PackageName, location)
	}

	resolution.IndexedVersion = pkg.FullVersion()
	resolution.Signed = idx.Signed
	return nil
}
