package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ralt/reposcout/internal/models"
	"sigs.k8s.io/yaml"
)

func printResolutions(w io.Writer, format string, resolutions []*models.Resolution) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(resolutions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(resolutions)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		for _, r := range resolutions {
			printResolution(w, r)
		}
		return nil
	}
}

func printResolution(w io.Writer, r *models.Resolution) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintf(w, "Platform: %s\n", r.Platform)
	fmt.Fprintf(w, "  Repo type: %s\n", r.RepoType)
	fmt.Fprintf(w, "  Config dir: %s\n", r.PackageConfigDir)
	fmt.Fprintf(w, "  Repo file: %s\n", r.RepoFilename)
	fmt.Fprintf(w, "  Candidates: %s\n", strings.Join(r.Candidates, ", "))

	// A bare repo name means nothing was found and the default was used
	if strings.Contains(r.RepoPath, "/") {
		green.Fprintf(w, "  Repo: %s\n", r.RepoPath)
	} else {
		yellow.Fprintf(w, "  Repo: %s (default)\n", r.RepoPath)
	}

	if r.IndexedVersion != "" {
		signed := ""
		if r.Signed {
			signed = ", signed"
		}
		fmt.Fprintf(w, "  Indexed: %s%s\n", r.IndexedVersion, signed)
	}
}
