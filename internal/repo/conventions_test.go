package repo

import (
	"strings"
	"testing"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
)

func TestRepoType(t *testing.T) {
	cases := map[string]string{
		"centos-6-x86_64":     "rpm",
		"el-7-x86_64":         "rpm",
		"fedora-40-x86_64":    "rpm",
		"debian-6-x86_64":     "deb",
		"ubuntu-14.04-x86_64": "deb",
		"cumulus-2.5-x86_64":  "deb",
	}
	for descriptor, want := range cases {
		got, err := RepoType(platform.MustParse(descriptor))
		if err != nil {
			t.Fatalf("RepoType(%s) failed: %v", descriptor, err)
		}
		if got != want {
			t.Errorf("RepoType(%s) = %s, want %s", descriptor, got, want)
		}
	}
}

func TestRepoTypeUnsupported(t *testing.T) {
	_, err := RepoType(platform.MustParse("eos-4-x86_64"))
	if err == nil {
		t.Fatal("expected an error for eos")
	}
	if !models.IsType(err, models.ErrUnsupportedPlatform) {
		t.Errorf("expected UnsupportedPlatform, got %v", err)
	}
	if !strings.Contains(err.Error(), "repo type not known") || !strings.Contains(err.Error(), "eos-4-x86_64") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestPackageConfigDir(t *testing.T) {
	dir, err := PackageConfigDir(platform.MustParse("centos-6-x86_64"))
	if err != nil || dir != "/etc/yum.repos.d/" {
		t.Errorf("centos: got %q, %v", dir, err)
	}

	dir, err = PackageConfigDir(platform.MustParse("debian-6-x86_64"))
	if err != nil || dir != "/etc/apt/sources.list.d" {
		t.Errorf("debian: got %q, %v", dir, err)
	}

	_, err = PackageConfigDir(platform.MustParse("eos-4-x86_64"))
	if !models.IsType(err, models.ErrUnsupportedPlatform) {
		t.Errorf("eos: expected UnsupportedPlatform, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "package config dir unknown") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestRepoFilename(t *testing.T) {
	cases := []struct {
		descriptor string
		version    string
		enterprise bool
		want       string
	}{
		{"el-21-x86_64", "pkg_version8", false, "pl-pkg_name-pkg_version8-el-21-x86_64.repo"},
		{"el-21-x86_64", "pkg_version9", true, "pl-pkg_name-pkg_version9-repos-pe-el-21-x86_64.repo"},
		{"centos-5-x86_64", "pkg_version7", false, "pl-pkg_name-pkg_version7-el-5-x86_64.repo"},
		{"fedora-40-x86_64", "1.0", false, "pl-pkg_name-1.0-fedora-f40-x86_64.repo"},
		{"debian-8-x86_64", "pkg_version9", false, "pl-pkg_name-pkg_version9-jessie.list"},
		{"debian-8-x86_64", "pkg_version9", true, "pl-pkg_name-pkg_version9-jessie.list"},
		{"ubuntu-14.04-x86_64", "2.0", false, "pl-pkg_name-2.0-trusty.list"},
	}
	for _, c := range cases {
		got, err := RepoFilename(platform.MustParse(c.descriptor), "pkg_name", c.version, c.enterprise)
		if err != nil {
			t.Fatalf("RepoFilename(%s) failed: %v", c.descriptor, err)
		}
		if got != c.want {
			t.Errorf("RepoFilename(%s, %s, %v) = %s, want %s", c.descriptor, c.version, c.enterprise, got, c.want)
		}
	}
}

func TestRepoFilenameCentosMatchesEL(t *testing.T) {
	for _, enterprise := range []bool{false, true} {
		centos, _ := RepoFilename(platform.MustParse("centos-7-x86_64"), "puppet", "1.2.3", enterprise)
		el, _ := RepoFilename(platform.MustParse("el-7-x86_64"), "puppet", "1.2.3", enterprise)
		if centos != el {
			t.Errorf("centos and el filenames differ: %s vs %s", centos, el)
		}
	}
}

func TestRepoFilenameUnsupported(t *testing.T) {
	_, err := RepoFilename(platform.MustParse("freebsd-22-x86_64"), "pkg_name", "pkg_version", false)
	if !models.IsType(err, models.ErrUnsupportedPlatform) {
		t.Fatalf("expected UnsupportedPlatform, got %v", err)
	}
	if !strings.Contains(err.Error(), "repo filename pattern not known") {
		t.Errorf("unexpected message: %v", err)
	}
}
