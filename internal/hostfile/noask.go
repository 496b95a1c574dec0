package hostfile

import (
	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
)

// solaris10Noask is the pkgadd admin file used on Solaris 10 hosts
const solaris10Noask = `# Write the noask file to a temporary directory
# please see man -s 4 admin for details about this file:
# http://www.opensolarisforum.org/man/man4/admin.html
#
# The key thing we don't want to prompt for are conflicting files.
# The other nocheck settings are mostly defensive to prevent prompts
# We _do_ want to check for available free space and abort if there is
# not enough
mail=
# Overwrite already installed instances
instance=overwrite
# Do not bother checking for partially installed packages
partial=nocheck
# Do not bother checking the runlevel
runlevel=nocheck
# Do not bother checking package dependencies (We take care of this)
idepend=nocheck
rdepend=nocheck
# DO check for available free space and abort if there isn't enough
space=quit
# Do not check for setuid files.
setuid=nocheck
# Do not check if files conflict with other packages
conflict=nocheck
# We have no action scripts.  Do not check for them.
action=nocheck
# Install to the default base directory.
basedir=default
`

// NoaskText returns the noask admin file for the platform. Only Solaris 10
// has one.
func NoaskText(p platform.Platform) (string, error) {
	if p.Variant == "solaris" && p.Version == "10" {
		return solaris10Noask, nil
	}
	return "", models.NewError(models.ErrUnsupportedPlatform, p.Descriptor,
		"noask file text unknown for platform '%s'", p.Descriptor)
}
