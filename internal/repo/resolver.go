package repo

import (
	"context"
	"fmt"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
	"github.com/ralt/reposcout/internal/probe"
	"github.com/sirupsen/logrus"
)

// DefaultDebianRepo is used when no candidate repo exists on a Debian host
const DefaultDebianRepo = "main"

// defaultELRepos are searched after the caller's repos on EL platforms
var defaultELRepos = []string{"products", "devel"}

// Resolver finds the dev build repository for one platform
type Resolver struct {
	platform platform.Platform
	probe    probe.ExistenceProbe
	logger   logrus.Ext1FieldLogger
}

// NewResolver parses descriptor with classifier and returns a resolver that
// checks candidates through p
func NewResolver(descriptor string, classifier platform.Classifier, p probe.ExistenceProbe, logger logrus.Ext1FieldLogger) (*Resolver, error) {
	plat, err := classifier.Parse(descriptor)
	if err != nil {
		return nil, err
	}
	return NewPlatformResolver(plat, p, logger), nil
}

// NewPlatformResolver returns a resolver for an already parsed platform
func NewPlatformResolver(plat platform.Platform, p probe.ExistenceProbe, logger logrus.Ext1FieldLogger) *Resolver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Resolver{
		platform: plat,
		probe:    p,
		logger:   logger,
	}
}

// Platform returns the platform being resolved
func (r *Resolver) Platform() platform.Platform {
	return r.platform
}

// Candidates returns buildRepos followed by the platform's default repos.
// buildRepos is never modified.
func (r *Resolver) Candidates(buildRepos []string) []string {
	candidates := make([]string, 0, len(buildRepos)+len(defaultELRepos))
	candidates = append(candidates, buildRepos...)
	if r.platform.Family() == platform.ELFamily {
		candidates = append(candidates, defaultELRepos...)
	}
	return candidates
}

// CandidateExists checks a single repo for the package build. It returns the
// repo location and true when it exists. EL repos are build server URLs;
// Debian repos are directories on the host.
func (r *Resolver) CandidateExists(ctx context.Context, buildserverURL, packageName, buildVersion, repoName string) (string, bool, error) {
	p := r.platform

	switch p.Family() {
	case platform.ELFamily:
		link := fmt.Sprintf("%s/%s/%s/repos/%s/%s%s/%s/%s/",
			buildserverURL, packageName, buildVersion, p.NormalizedVariant(),
			p.FedoraPrefix(), p.Version, repoName, p.Arch)
		exists, err := r.probe.LinkExists(ctx, link)
		if err != nil || !exists {
			return "", false, err
		}
		return link, true, nil
	case platform.DebianFamily:
		candidate := fmt.Sprintf("/root/%s/%s/%s", packageName, p.Codename, repoName)
		exists, err := r.probe.PathExists(ctx, candidate)
		if err != nil || !exists {
			return "", false, err
		}
		return candidate, true, nil
	default:
		return "", false, nil
	}
}

// Resolve searches the candidate repos in order and returns the first one
// that exists. On EL platforms the result is verified once more and a missing
// repo is an error; on Debian platforms a missing repo falls back to "main".
func (r *Resolver) Resolve(ctx context.Context, buildRepos []string, buildserverURL, packageName, buildVersion string) (string, error) {
	p := r.platform
	family := p.Family()
	if family == platform.Unknown {
		return "", models.NewError(models.ErrUnsupportedPlatform, p.Descriptor,
			"repo path unknown for platform '%s'", p.Descriptor)
	}

	candidates := r.Candidates(buildRepos)
	r.logger.Tracef("package repos for %s: %v", p, candidates)

	var repoPath string
	for _, name := range candidates {
		path, found, err := r.CandidateExists(ctx, buildserverURL, packageName, buildVersion, name)
		if err != nil {
			return "", err
		}
		if found {
			repoPath = path
			r.logger.Debugf("found repo at %s:%s", name, repoPath)
			break
		}
		r.logger.Debugf("couldn't find link at %s, falling back to next option...", name)
	}

	switch family {
	case platform.ELFamily:
		// Verified even when nothing was found, so an empty search is reported
		// as an unreachable repo rather than an empty path.
		// TODO: skip the second HEAD when the search already confirmed repoPath.
		exists, err := r.probe.LinkExists(ctx, repoPath)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", models.NewError(models.ErrRepositoryUnreachable, p.Descriptor,
				"unable to reach a repo directory at %q", repoPath)
		}
	case platform.DebianFamily:
		if repoPath == "" {
			repoPath = DefaultDebianRepo
			r.logger.Debugf("using default repo '%s'", repoPath)
		}
	}

	return repoPath, nil
}
