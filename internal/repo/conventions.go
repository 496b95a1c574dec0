// Package repo holds the per-family package repository conventions and the
// dev build repository resolver.
package repo

import (
	"fmt"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
)

const (
	yumConfigDir = "/etc/yum.repos.d/"
	aptConfigDir = "/etc/apt/sources.list.d"
)

// PackageConfigDir returns the directory package repo definitions live in
func PackageConfigDir(p platform.Platform) (string, error) {
	switch p.Family() {
	case platform.ELFamily:
		return yumConfigDir, nil
	case platform.DebianFamily:
		return aptConfigDir, nil
	default:
		return "", models.NewError(models.ErrUnsupportedPlatform, p.Descriptor,
			"package config dir unknown for platform '%s'", p.Descriptor)
	}
}

// RepoType returns the repo type tag (rpm or deb) for the platform
func RepoType(p platform.Platform) (string, error) {
	switch p.Family() {
	case platform.ELFamily:
		return "rpm", nil
	case platform.DebianFamily:
		return "deb", nil
	default:
		return "", models.NewError(models.ErrUnsupportedPlatform, p.Descriptor,
			"repo type not known for platform '%s'", p.Descriptor)
	}
}

// RepoFilename returns the name of the repo definition file for a package
// build, e.g. pl-puppet-1.2.3-el-7-x86_64.repo or pl-puppet-1.2.3-trusty.list.
func RepoFilename(p platform.Platform, packageName, buildVersion string, enterprise bool) (string, error) {
	name := fmt.Sprintf("pl-%s-%s-", packageName, buildVersion)

	switch p.Family() {
	case platform.ELFamily:
		pattern := "%s-%s%s-%s.repo"
		if enterprise {
			pattern = "repos-pe-" + pattern
		}
		name += fmt.Sprintf(pattern, p.NormalizedVariant(), p.FedoraPrefix(), p.Version, p.Arch)
	case platform.DebianFamily:
		name += fmt.Sprintf("%s.list", p.Codename)
	default:
		return "", models.NewError(models.ErrUnsupportedPlatform, p.Descriptor,
			"repo filename pattern not known for platform '%s'", p.Descriptor)
	}

	return name, nil
}
