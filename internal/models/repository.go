package models

import "time"

// ResolveConfig contains everything needed to resolve a dev build repository
type ResolveConfig struct {
	// Target
	Platforms []string

	// Package
	PackageName  string
	BuildVersion string
	Enterprise   bool // PE hosts use the repos-pe- filename pattern

	// Build server
	BuildserverURL string
	Repos          []string // Preferred repos, searched before the defaults
	HTTPTimeout    time.Duration
	Insecure       bool // Skip TLS verification for the build server

	// Index checks
	CheckIndex  bool
	KeyringPath string // Armored public keyring for metadata signature checks

	// Output
	Output string // text, yaml or json
	Root   string // Prefix for written repo definition files
}

// Resolution is the outcome of resolving one platform
type Resolution struct {
	Platform         string   `json:"platform"`
	RepoType         string   `json:"repoType"`
	PackageConfigDir string   `json:"packageConfigDir"`
	RepoFilename     string   `json:"repoFilename"`
	Candidates       []string `json:"candidates"`
	RepoPath         string   `json:"repoPath"`
	IndexedVersion   string   `json:"indexedVersion,omitempty"`
	Signed           bool     `json:"signed,omitempty"`
}
