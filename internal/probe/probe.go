package probe

import "context"

// ExistenceProbe answers whether a repository location exists.
// Both methods return an error only when the outcome is neither
// "exists" nor "does not exist".
type ExistenceProbe interface {
	// PathExists tests a directory on the target host
	PathExists(ctx context.Context, path string) (bool, error)

	// LinkExists tests a URL on the build server
	LinkExists(ctx context.Context, url string) (bool, error)
}

// Result is the outcome of a command run on a host
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes shell commands on a host
type Runner interface {
	// Exec runs command and returns its result. A non-zero exit code is not
	// an error; err is reserved for commands that could not be run at all.
	Exec(ctx context.Context, command string) (*Result, error)
}

// Probe combines a path prober and a link prober into one ExistenceProbe
type Probe struct {
	paths *ShellProbe
	links *HTTPProbe
}

// New creates a Probe testing paths through runner and links over HTTP
func New(runner Runner, links *HTTPProbe) *Probe {
	return &Probe{
		paths: NewShellProbe(runner),
		links: links,
	}
}

// PathExists implements ExistenceProbe
func (p *Probe) PathExists(ctx context.Context, path string) (bool, error) {
	return p.paths.PathExists(ctx, path)
}

// LinkExists implements ExistenceProbe
func (p *Probe) LinkExists(ctx context.Context, url string) (bool, error) {
	return p.links.LinkExists(ctx, url)
}
