package index

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/utils"
)

// packagesFiles lists the Packages index variants in order of preference
var packagesFiles = []string{"Packages.xz", "Packages.gz", "Packages"}

// readDebIndex reads the Packages index of a flat repository under base
func readDebIndex(ctx context.Context, f Fetcher, base string) ([]models.Package, error) {
	for _, name := range packagesFiles {
		data, err := f.Fetch(ctx, base, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
		}

		raw, err := utils.Decompress(name, data)
		if err != nil {
			return nil, err
		}

		packages, err := parsePackages(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return packages, nil
	}

	return nil, fmt.Errorf("no Packages index found under %s: %w", base, ErrNotFound)
}

// splitDebVersion splits [epoch:]upstream[-revision]. The revision starts
// after the last dash, the epoch ends at the first colon.
func splitDebVersion(v string) (epoch, upstream, revision string) {
	upstream = v
	if e, rest, ok := strings.Cut(upstream, ":"); ok {
		epoch, upstream = e, rest
	}
	if i := strings.LastIndex(upstream, "-"); i >= 0 {
		upstream, revision = upstream[:i], upstream[i+1:]
	}
	return epoch, upstream, revision
}

// parsePackages parses the stanzas of a Debian Packages file
func parsePackages(data []byte) ([]models.Package, error) {
	var packages []models.Package
	var currentPkg *models.Package

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// Empty line = end of package entry
		if strings.TrimSpace(line) == "" {
			if currentPkg != nil {
				packages = append(packages, *currentPkg)
				currentPkg = nil
			}
			continue
		}

		// Continuation lines only extend Description, which we keep short
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		if currentPkg == nil {
			currentPkg = &models.Package{}
		}

		switch field {
		case "Package":
			currentPkg.Name = value
		case "Version":
			currentPkg.Epoch, currentPkg.Version, currentPkg.Release = splitDebVersion(value)
		case "Architecture":
			currentPkg.Architecture = value
		case "Filename":
			currentPkg.Filename = value
		case "Size":
			size, _ := strconv.ParseInt(value, 10, 64)
			currentPkg.Size = size
		case "SHA256":
			currentPkg.SHA256Sum = value
		case "Description":
			currentPkg.Description = value
		}
	}

	// Don't forget last package
	if currentPkg != nil {
		packages = append(packages, *currentPkg)
	}

	return packages, scanner.Err()
}
