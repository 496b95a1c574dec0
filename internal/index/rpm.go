package index

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/utils"
)

const repomdPath = "repodata/repomd.xml"

// XML structures for yum metadata

type repomd struct {
	XMLName xml.Name     `xml:"repomd"`
	Data    []repomdData `xml:"data"`
}

type repomdData struct {
	Type     string         `xml:"type,attr"`
	Checksum repomdChecksum `xml:"checksum"`
	Location repomdLocation `xml:"location"`
}

type repomdChecksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type repomdLocation struct {
	Href string `xml:"href,attr"`
}

type metadata struct {
	XMLName  xml.Name `xml:"metadata"`
	Packages []xmlPkg `xml:"package"`
}

type xmlPkg struct {
	Type     string      `xml:"type,attr"`
	Name     string      `xml:"name"`
	Arch     string      `xml:"arch"`
	Version  xmlVersion  `xml:"version"`
	Checksum xmlChecksum `xml:"checksum"`
	Summary  string      `xml:"summary"`
	Size     xmlSize     `xml:"size"`
	Location xmlLocation `xml:"location"`
}

type xmlVersion struct {
	Epoch string `xml:"epoch,attr"`
	Ver   string `xml:"ver,attr"`
	Rel   string `xml:"rel,attr"`
}

type xmlChecksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlSize struct {
	Package int64 `xml:"package,attr"`
}

type xmlLocation struct {
	Href string `xml:"href,attr"`
}

// readRPMIndex reads repomd.xml under base, then the primary metadata it
// points to. The raw repomd.xml is returned for signature checks.
func readRPMIndex(ctx context.Context, f Fetcher, base string) ([]models.Package, []byte, error) {
	repomdXML, err := f.Fetch(ctx, base, repomdPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", repomdPath, err)
	}

	var md repomd
	if err := xml.Unmarshal(repomdXML, &md); err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", repomdPath, err)
	}

	var primary *repomdData
	for i := range md.Data {
		if md.Data[i].Type == "primary" {
			primary = &md.Data[i]
			break
		}
	}
	if primary == nil {
		return nil, nil, fmt.Errorf("%s has no primary metadata", repomdPath)
	}

	compressed, err := f.Fetch(ctx, base, primary.Location.Href)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", primary.Location.Href, err)
	}

	if primary.Checksum.Value != "" {
		if err := utils.VerifyChecksum(compressed, primary.Checksum.Type, primary.Checksum.Value); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", primary.Location.Href, err)
		}
	}

	primaryXML, err := utils.Decompress(primary.Location.Href, compressed)
	if err != nil {
		return nil, nil, err
	}

	packages, err := parsePrimaryXML(primaryXML)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", primary.Location.Href, err)
	}

	return packages, repomdXML, nil
}

func parsePrimaryXML(data []byte) ([]models.Package, error) {
	var meta metadata
	if err := xml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	packages := make([]models.Package, 0, len(meta.Packages))
	for _, p := range meta.Packages {
		pkg := models.Package{
			Name:         p.Name,
			Version:      p.Version.Ver,
			Release:      p.Version.Rel,
			Epoch:        p.Version.Epoch,
			Architecture: p.Arch,
			Description:  p.Summary,
			Filename:     p.Location.Href,
			Size:         p.Size.Package,
		}
		if p.Checksum.Type == "sha256" {
			pkg.SHA256Sum = p.Checksum.Value
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}
