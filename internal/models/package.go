package models

// Package represents a package entry read from a repository index
type Package struct {
	Name         string
	Version      string
	Release      string // RPM release or Debian revision
	Epoch        string
	Architecture string
	Description  string
	Filename     string // location relative to the repository root
	Size         int64
	SHA256Sum    string
}

// FullVersion returns the version as the package manager orders it
func (p Package) FullVersion() string {
	v := p.Version
	if p.Release != "" {
		v += "-" + p.Release
	}
	if p.Epoch != "" && p.Epoch != "0" {
		v = p.Epoch + ":" + v
	}
	return v
}
