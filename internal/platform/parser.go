package platform

import (
	"strings"

	"github.com/ralt/reposcout/internal/models"
)

// codenames maps Debian-family variants to version -> release codename.
// Versions are stored without dots.
var codenames = map[string]map[string]string{
	"debian": {
		"6":  "squeeze",
		"7":  "wheezy",
		"8":  "jessie",
		"9":  "stretch",
		"10": "buster",
		"11": "bullseye",
		"12": "bookworm",
	},
	"ubuntu": {
		"1004": "lucid",
		"1204": "precise",
		"1210": "quantal",
		"1304": "raring",
		"1310": "saucy",
		"1404": "trusty",
		"1410": "utopic",
		"1504": "vivid",
		"1510": "wily",
		"1604": "xenial",
		"1610": "yakkety",
		"1704": "zesty",
		"1804": "bionic",
		"2004": "focal",
		"2204": "jammy",
		"2404": "noble",
	},
	"cumulus": {
		"25": "cumulus",
	},
}

// Parser is the default Classifier for "variant-version-arch" descriptors
type Parser struct{}

// NewParser creates a new descriptor parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse splits a descriptor on its first two dashes. Debian-family versions
// may be given either as a number or as a codename.
func (p *Parser) Parse(descriptor string) (Platform, error) {
	parts := strings.SplitN(descriptor, "-", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Platform{}, models.NewError(models.ErrInvalidPlatform, descriptor,
			"platform '%s' does not match variant-version-arch", descriptor)
	}

	plat := Platform{
		Descriptor: descriptor,
		Variant:    parts[0],
		Version:    parts[1],
		Arch:       parts[2],
	}

	if table, ok := codenames[plat.Variant]; ok {
		if codename, ok := table[versionKey(plat.Version)]; ok {
			plat.Codename = codename
		} else if version, ok := versionForCodename(table, plat.Version); ok {
			plat.Codename = plat.Version
			plat.Version = version
		}
	}

	// Debian repo paths and list files are named after the codename
	if plat.Family() == DebianFamily && plat.Codename == "" {
		return Platform{}, models.NewError(models.ErrInvalidPlatform, descriptor,
			"no release codename known for platform '%s'", descriptor)
	}

	return plat, nil
}

func versionForCodename(table map[string]string, codename string) (string, bool) {
	for version, name := range table {
		if name == codename {
			return version, true
		}
	}
	return "", false
}

// MustParse parses a descriptor with the default parser and panics on error.
// Intended for tests and static tables.
func MustParse(descriptor string) Platform {
	plat, err := NewParser().Parse(descriptor)
	if err != nil {
		panic(err)
	}
	return plat
}
