package platform

import (
	"regexp"
	"strings"
)

// Family represents the package manager family of a platform
type Family int

const (
	Unknown Family = iota
	ELFamily
	DebianFamily
)

// String returns the string representation of Family
func (f Family) String() string {
	switch f {
	case ELFamily:
		return "el"
	case DebianFamily:
		return "debian"
	default:
		return "unknown"
	}
}

var (
	elVariants     = regexp.MustCompile(`fedora|el|centos`)
	debianVariants = regexp.MustCompile(`debian|ubuntu|cumulus`)
)

// Classify maps a platform variant to its family. Every family-dependent
// decision goes through here.
func Classify(variant string) Family {
	switch {
	case elVariants.MatchString(variant):
		return ELFamily
	case debianVariants.MatchString(variant):
		return DebianFamily
	default:
		return Unknown
	}
}

// Platform is a parsed platform descriptor such as "el-7-x86_64"
type Platform struct {
	// Descriptor is the raw string the platform was parsed from
	Descriptor string

	Variant  string
	Version  string
	Arch     string
	Codename string // Debian family only
}

// String returns the raw descriptor
func (p Platform) String() string {
	return p.Descriptor
}

// Family returns the package manager family of the platform
func (p Platform) Family() Family {
	return Classify(p.Variant)
}

// NormalizedVariant returns the variant used in repo paths and filenames;
// centos repos are published under el.
func (p Platform) NormalizedVariant() string {
	if p.Variant == "centos" {
		return "el"
	}
	return p.Variant
}

// FedoraPrefix returns the prefix put in front of the version in fedora repo
// paths ("f" for fedora, empty otherwise).
func (p Platform) FedoraPrefix() string {
	if p.Variant == "fedora" {
		return "f"
	}
	return ""
}

// Classifier decomposes a platform descriptor
type Classifier interface {
	// Parse splits a descriptor into variant, version, arch and codename
	Parse(descriptor string) (Platform, error)
}

// versionKey strips the dots out of a version so "14.04" and "1404" look alike
func versionKey(version string) string {
	return strings.ReplaceAll(version, ".", "")
}
