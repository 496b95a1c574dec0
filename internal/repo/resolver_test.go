package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ralt/reposcout/internal/models"
	"github.com/ralt/reposcout/internal/platform"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// recordingProbe answers from fixed sets and records every call
type recordingProbe struct {
	links map[string]bool
	paths map[string]bool
	err   error
	calls []string
}

func (p *recordingProbe) PathExists(ctx context.Context, path string) (bool, error) {
	p.calls = append(p.calls, "path:"+path)
	return p.paths[path], p.err
}

func (p *recordingProbe) LinkExists(ctx context.Context, url string) (bool, error) {
	p.calls = append(p.calls, "link:"+url)
	return p.links[url], p.err
}

func newResolver(t *testing.T, descriptor string, p *recordingProbe) (*Resolver, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	r, err := NewResolver(descriptor, platform.NewParser(), p, logger)
	if err != nil {
		t.Fatalf("NewResolver(%s) failed: %v", descriptor, err)
	}
	return r, hook
}

func hasMessage(hook *test.Hook, level logrus.Level, prefix string) bool {
	for _, e := range hook.AllEntries() {
		if e.Level == level && strings.HasPrefix(e.Message, prefix) {
			return true
		}
	}
	return false
}

func TestNewResolverRejectsMalformed(t *testing.T) {
	_, err := NewResolver("osx", platform.NewParser(), &recordingProbe{}, nil)
	if !models.IsType(err, models.ErrInvalidPlatform) {
		t.Fatalf("expected InvalidPlatform, got %v", err)
	}
}

func TestCandidates(t *testing.T) {
	el, _ := newResolver(t, "el-7-x86_64", &recordingProbe{})
	osx, _ := newResolver(t, "osx-10.9-x86_64", &recordingProbe{})
	deb, _ := newResolver(t, "debian-8-x86_64", &recordingProbe{})

	if got := el.Candidates(nil); !reflect.DeepEqual(got, []string{"products", "devel"}) {
		t.Errorf("el defaults = %v", got)
	}
	if got := osx.Candidates(nil); len(got) != 0 {
		t.Errorf("osx defaults = %v, want none", got)
	}
	if got := deb.Candidates([]string{}); len(got) != 0 {
		t.Errorf("debian defaults = %v, want none", got)
	}

	buildRepos := []string{"PC17", "yomama", "McGuyver", "McGruber", "panama"}
	if got := osx.Candidates(buildRepos); !reflect.DeepEqual(got, buildRepos) {
		t.Errorf("osx custom = %v, want %v", got, buildRepos)
	}

	got := el.Candidates([]string{"A", "B", "C"})
	want := []string{"A", "B", "C", "products", "devel"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("el custom = %v, want %v", got, want)
	}

	dup := []string{"products", "products"}
	if got := el.Candidates(dup); len(got) != 4 {
		t.Errorf("candidates must not be deduplicated: %v", got)
	}
}

func TestCandidatesDoesNotModifyInput(t *testing.T) {
	el, _ := newResolver(t, "el-7-x86_64", &recordingProbe{})
	backing := make([]string, 1, 8)
	backing[0] = "A"
	el.Candidates(backing)
	if got := backing[:2]; got[1] != "" {
		t.Errorf("Candidates wrote into the caller's backing array: %v", got)
	}
}

func TestCandidateExistsEL(t *testing.T) {
	ctx := context.Background()

	p := &recordingProbe{}
	r, _ := newResolver(t, "el-7-x86_64", p)
	path, found, err := r.CandidateExists(ctx, "bs_url", "pkg_name", "pkg_version", "repo_name")
	if err != nil || found || path != "" {
		t.Errorf("missing link: got %q, %v, %v", path, found, err)
	}

	want := "bs_url/pkg_name/pkg_version/repos/el/7/repo_name/x86_64/"
	p = &recordingProbe{links: map[string]bool{want: true}}
	r, _ = newResolver(t, "el-7-x86_64", p)
	path, found, err = r.CandidateExists(ctx, "bs_url", "pkg_name", "pkg_version", "repo_name")
	if err != nil || !found || path != want {
		t.Errorf("existing link: got %q, %v, %v", path, found, err)
	}
}

func TestCandidateExistsFedoraAndCentos(t *testing.T) {
	ctx := context.Background()
	always := &alwaysProbe{}

	r, _ := newResolver(t, "fedora-77-x86_64", &recordingProbe{})
	r.probe = always
	path, _, _ := r.CandidateExists(ctx, "bs_url", "pkg_name", "pkg_version", "repo_name")
	if !strings.Contains(path, "/repos/fedora/f77/") {
		t.Errorf("fedora path = %s", path)
	}

	r, _ = newResolver(t, "centos-7-x86_64", &recordingProbe{})
	r.probe = always
	path, _, _ = r.CandidateExists(ctx, "bs_url", "pkg_name", "pkg_version", "repo_name")
	if !strings.Contains(path, "/repos/el/7/") {
		t.Errorf("centos path = %s", path)
	}
}

type alwaysProbe struct{}

func (alwaysProbe) PathExists(ctx context.Context, path string) (bool, error) { return true, nil }
func (alwaysProbe) LinkExists(ctx context.Context, url string) (bool, error) { return true, nil }

func TestCandidateExistsDebian(t *testing.T) {
	ctx := context.Background()

	p := &recordingProbe{}
	r, _ := newResolver(t, "ubuntu-14.04-x86_64", p)
	path, found, err := r.CandidateExists(ctx, "bs_url", "pkg_name", "pkg_version", "repo_name")
	if err != nil || found || path != "" {
		t.Errorf("missing dir: got %q, %v, %v", path, found, err)
	}
	if !reflect.DeepEqual(p.calls, []string{"path:/root/pkg_name/trusty/repo_name"}) {
		t.Errorf("calls = %v", p.calls)
	}

	p = &recordingProbe{paths: map[string]bool{"/root/pkg_name/trusty/repo_name": true}}
	r, _ = newResolver(t, "ubuntu-14.04-x86_64", p)
	path, found, err = r.CandidateExists(ctx, "bs_url", "pkg_name", "pkg_version", "repo_name")
	if err != nil || !found || !strings.HasPrefix(path, "/root") {
		t.Errorf("existing dir: got %q, %v, %v", path, found, err)
	}
}

func TestCandidateExistsUnknownDoesNoIO(t *testing.T) {
	p := &recordingProbe{}
	r, _ := newResolver(t, "osx-10.9-x86_64", p)
	_, found, err := r.CandidateExists(context.Background(), "bs_url", "pkg", "1", "repo")
	if found || err != nil || len(p.calls) != 0 {
		t.Errorf("unknown family: found=%v err=%v calls=%v", found, err, p.calls)
	}
}

func TestResolveSearchesInOrder(t *testing.T) {
	p := &recordingProbe{}
	r, _ := newResolver(t, "debian-8-x86_64", p)

	repoPath, err := r.Resolve(context.Background(), []string{"1", "2", "3", "4"}, "bs_url", "pkg_name", "pkg_version")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if repoPath != "main" {
		t.Errorf("repoPath = %s, want main", repoPath)
	}

	want := []string{
		"path:/root/pkg_name/jessie/1",
		"path:/root/pkg_name/jessie/2",
		"path:/root/pkg_name/jessie/3",
		"path:/root/pkg_name/jessie/4",
	}
	if !reflect.DeepEqual(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
}

func TestResolveStopsAtFirstHit(t *testing.T) {
	p := &recordingProbe{paths: map[string]bool{"/root/pkg_name/jessie/3": true}}
	r, hook := newResolver(t, "debian-8-x86_64", p)

	repoPath, err := r.Resolve(context.Background(), []string{"1", "2", "3", "4", "5"}, "bs_url", "pkg_name", "pkg_version")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if repoPath != "/root/pkg_name/jessie/3" {
		t.Errorf("repoPath = %s", repoPath)
	}

	want := []string{
		"path:/root/pkg_name/jessie/1",
		"path:/root/pkg_name/jessie/2",
		"path:/root/pkg_name/jessie/3",
	}
	if !reflect.DeepEqual(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}

	if !hasMessage(hook, logrus.DebugLevel, "found repo at 3:") {
		t.Errorf("missing 'found repo at 3:' debug line")
	}
	if !hasMessage(hook, logrus.DebugLevel, "couldn't find link at 2") {
		t.Errorf("missing fallback debug line")
	}
	if !hasMessage(hook, logrus.TraceLevel, "package repos") {
		t.Errorf("missing package repos trace line")
	}
}

func TestResolveELStopsAtFirstHitAndVerifies(t *testing.T) {
	hit := "bs/pkg/1.0/repos/el/7/3/x86_64/"
	p := &recordingProbe{links: map[string]bool{hit: true}}
	r, _ := newResolver(t, "el-7-x86_64", p)

	repoPath, err := r.Resolve(context.Background(), []string{"1", "2", "3", "4", "5"}, "bs", "pkg", "1.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if repoPath != hit {
		t.Errorf("repoPath = %s, want %s", repoPath, hit)
	}

	want := []string{
		"link:bs/pkg/1.0/repos/el/7/1/x86_64/",
		"link:bs/pkg/1.0/repos/el/7/2/x86_64/",
		"link:" + hit,
		"link:" + hit,
	}
	if !reflect.DeepEqual(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
}

func TestResolveELFallsBackToDefaults(t *testing.T) {
	devel := "bs/pkg/1.0/repos/fedora/f40/devel/x86_64/"
	p := &recordingProbe{links: map[string]bool{devel: true}}
	r, _ := newResolver(t, "fedora-40-x86_64", p)

	repoPath, err := r.Resolve(context.Background(), []string{"PC1"}, "bs", "pkg", "1.0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if repoPath != devel {
		t.Errorf("repoPath = %s, want %s", repoPath, devel)
	}
}

func TestResolveELErrorsWhenNothingFound(t *testing.T) {
	p := &recordingProbe{}
	r, _ := newResolver(t, "el-7-x86_64", p)

	_, err := r.Resolve(context.Background(), nil, "bs_url", "pkg_name", "pkg_version")
	if !models.IsType(err, models.ErrRepositoryUnreachable) {
		t.Fatalf("expected RepositoryUnreachable, got %v", err)
	}
	if !strings.Contains(err.Error(), "unable to reach a repo directory") {
		t.Errorf("unexpected message: %v", err)
	}

	// The final verification probes the empty path even though the search
	// found nothing.
	last := p.calls[len(p.calls)-1]
	if last != "link:" {
		t.Errorf("last probe = %q, want the empty path", last)
	}
	if len(p.calls) != 3 {
		t.Errorf("calls = %v, want products, devel and the final check", p.calls)
	}
}

func TestResolveDebianDefaultsToMain(t *testing.T) {
	p := &recordingProbe{}
	r, hook := newResolver(t, "debian-7-x86_64", p)

	repoPath, err := r.Resolve(context.Background(), nil, "bs_url", "pkg_name", "pkg_version")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if repoPath != "main" {
		t.Errorf("repoPath = %s, want main", repoPath)
	}
	if len(p.calls) != 0 {
		t.Errorf("no candidates should mean no probes, got %v", p.calls)
	}
	if !hasMessage(hook, logrus.DebugLevel, "using default repo") {
		t.Errorf("missing 'using default repo' debug line")
	}
}

func TestResolvePropagatesProbeFailure(t *testing.T) {
	cause := &models.Error{Type: models.ErrProbeFailure, Err: errors.New("exit code 255")}

	p := &recordingProbe{err: cause}
	r, _ := newResolver(t, "debian-8-x86_64", p)
	_, err := r.Resolve(context.Background(), []string{"1", "2"}, "bs", "pkg", "1.0")
	if err != cause {
		t.Errorf("err = %v, want the probe's error unmodified", err)
	}
	if len(p.calls) != 1 {
		t.Errorf("search must stop at the failing probe, calls = %v", p.calls)
	}

	p = &recordingProbe{err: cause}
	r, _ = newResolver(t, "el-7-x86_64", p)
	_, err = r.Resolve(context.Background(), nil, "bs", "pkg", "1.0")
	if err != cause {
		t.Errorf("el err = %v, want the probe's error unmodified", err)
	}
}

func TestResolveUnknownPlatform(t *testing.T) {
	p := &recordingProbe{}
	r, _ := newResolver(t, "solaris-10-i386", p)

	_, err := r.Resolve(context.Background(), []string{"1"}, "bs", "pkg", "1.0")
	if !models.IsType(err, models.ErrUnsupportedPlatform) {
		t.Fatalf("expected UnsupportedPlatform, got %v", err)
	}
	if len(p.calls) != 0 {
		t.Errorf("unknown platforms must not probe, calls = %v", p.calls)
	}
}
