// Package index reads the package index of a resolved repository so callers
// can confirm a build was actually published there.
package index

import (
	"context"
	"fmt"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
	"github.com/sassoftware/go-rpmutils"
	"github.com/sirupsen/logrus"
)

// Index is the parsed package index of one repository
type Index struct {
	Location string
	Packages []models.Package
	Signed   bool // metadata carried a signature that verified
}

// Inspector reads repository indexes for a platform family
type Inspector struct {
	fetcher  Fetcher
	verifier *Verifier
	logger   logrus.FieldLogger
}

// NewInspector creates an inspector. verifier may be nil to skip signature
// checks.
func NewInspector(fetcher Fetcher, verifier *Verifier, logger logrus.FieldLogger) *Inspector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Inspector{
		fetcher:  fetcher,
		verifier: verifier,
		logger:   logger,
	}
}

// Inspect reads the index of the repository at location. EL repos use yum
// repodata, Debian repos a flat Packages index.
func (i *Inspector) Inspect(ctx context.Context, family platform.Family, location string) (*Index, error) {
	var (
		packages []models.Package
		signed   []byte
		sigName  string
		err      error
	)

	switch family {
	case platform.ELFamily:
		packages, signed, err = readRPMIndex(ctx, i.fetcher, location)
		sigName = repomdPath + ".asc"
	case platform.DebianFamily:
		packages, err = readDebIndex(ctx, i.fetcher, location)
		if err == nil && i.verifier != nil {
			signed, err = i.fetcher.Fetch(ctx, location, "Release")
			if err != nil {
				err = fmt.Errorf("failed to fetch Release: %w", err)
			}
		}
		sigName = "Release.gpg"
	default:
		return nil, fmt.Errorf("no index format for %s platforms", family)
	}
	if err != nil {
		return nil, &models.Error{Type: models.ErrIndex, Err: err}
	}

	idx := &Index{Location: location, Packages: packages}
	i.logger.Debugf("read %d packages from %s", len(packages), location)

	if i.verifier != nil {
		if err := i.verify(ctx, location, sigName, signed); err != nil {
			return nil, err
		}
		idx.Signed = true
	}

	return idx, nil
}

func (i *Inspector) verify(ctx context.Context, location, sigName string, signed []byte) error {
	signature, err := i.fetcher.Fetch(ctx, location, sigName)
	if err != nil {
		return &models.Error{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("failed to fetch %s: %w", sigName, err),
		}
	}

	entity, err := i.verifier.VerifyDetached(signed, signature)
	if err != nil {
		return &models.Error{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("%s: %w", sigName, err),
		}
	}

	for name := range entity.Identities {
		i.logger.Debugf("%s signed by %s", sigName, name)
		break
	}
	return nil
}

// Latest returns the newest package called name. Versions are ordered by
// epoch, then version, then release, each with rpm's vercmp.
func (idx *Index) Latest(name string) (models.Package, bool) {
	var (
		best  models.Package
		found bool
	)
	for _, pkg := range idx.Packages {
		if pkg.Name != name {
			continue
		}
		if !found || compareVersions(pkg, best) > 0 {
			best = pkg
			found = true
		}
	}
	return best, found
}

// compareVersions orders two packages by epoch, version and release. A
// missing epoch counts as 0.
func compareVersions(a, b models.Package) int {
	return rpmutils.NEVRAcmp(nevra(a), nevra(b))
}

func nevra(p models.Package) rpmutils.NEVRA {
	epoch := p.Epoch
	if epoch == "" {
		epoch = "0"
	}
	return rpmutils.NEVRA{
		Name:    p.Name,
		Epoch:   epoch,
		Version: p.Version,
		Release: p.Release,
		Arch:    p.Architecture,
	}
}
