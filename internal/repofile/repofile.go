// Package repofile renders and writes the repository definition files that
// point a host's package manager at a resolved dev build repo.
package repofile

import (
	"fmt"
	"path"
	"strings"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
	"github.com/ralt/reposcout/internal/repo"
	"github.com/ralt/reposcout/internal/utils"
	"github.com/sirupsen/logrus"
)

// Options controls the rendered definition
type Options struct {
	PackageName  string
	BuildVersion string
	Enterprise   bool
	GPGKeyURL    string // yum only; enables gpgcheck when set
}

// Definition is a rendered repo definition and where it belongs on the host
type Definition struct {
	Path    string
	Content []byte
}

// Render builds the definition for repoPath, the value returned by
// repo.Resolver.Resolve for p.
func Render(p platform.Platform, repoPath string, opts Options) (*Definition, error) {
	dir, err := repo.PackageConfigDir(p)
	if err != nil {
		return nil, err
	}
	filename, err := repo.RepoFilename(p, opts.PackageName, opts.BuildVersion, opts.Enterprise)
	if err != nil {
		return nil, err
	}

	var content []byte
	switch p.Family() {
	case platform.ELFamily:
		content = renderYum(repoPath, opts)
	case platform.DebianFamily:
		content = renderApt(p, repoPath, opts)
	}

	return &Definition{
		Path:    path.Join(dir, filename),
		Content: content,
	}, nil
}

// renderYum creates a .repo section for yum/dnf
func renderYum(baseURL string, opts Options) []byte {
	repoID := sanitizeRepoID(fmt.Sprintf("pl-%s-%s", opts.PackageName, opts.BuildVersion))

	gpgCheck := "0"
	if opts.GPGKeyURL != "" {
		gpgCheck = "1"
	}

	repoContent := fmt.Sprintf(`[%s]
name=%s %s dev build
baseurl=%s
enabled=1
gpgcheck=%s
`, repoID, opts.PackageName, opts.BuildVersion, baseURL, gpgCheck)

	if opts.GPGKeyURL != "" {
		repoContent += fmt.Sprintf("gpgkey=%s\n", opts.GPGKeyURL)
	}

	return []byte(repoContent)
}

// renderApt creates a sources.list line. A resolved host directory is a flat
// repository; the "main" fallback is a component of the package's
// codename repo.
func renderApt(p platform.Platform, repoPath string, opts Options) []byte {
	if strings.HasPrefix(repoPath, "/") {
		return []byte(fmt.Sprintf("deb [trusted=yes] file://%s ./\n", repoPath))
	}
	return []byte(fmt.Sprintf("deb [trusted=yes] file:///root/%s/%s %s %s\n",
		opts.PackageName, p.Codename, p.Codename, repoPath))
}

// Write stores the definition under root ("" writes to the real path)
func (d *Definition) Write(root string) (string, error) {
	target := utils.RootedPath(root, d.Path)
	if err := utils.WriteFile(target, d.Content, 0644); err != nil {
		return "", &models.Error{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to write %s: %w", target, err),
		}
	}
	logrus.Infof("Repository definition written to: %s", target)
	return target, nil
}

// sanitizeRepoID creates a valid repository ID from a string
func sanitizeRepoID(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '-':
			b.WriteRune(ch)
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune(ch - 'A' + 'a')
		case ch == ' ' || ch == '_' || ch == '.':
			b.WriteRune('-')
		}
	}
	return b.String()
}
