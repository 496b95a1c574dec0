package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by a Fetcher when the requested file does not exist
var ErrNotFound = errors.New("not found")

// Fetcher reads files from a repository location
type Fetcher interface {
	// Fetch returns the content of name under base
	Fetch(ctx context.Context, base, name string) ([]byte, error)
}

// HTTPFetcher reads repository files from a build server
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher using client
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch implements Fetcher
func (f *HTTPFetcher) Fetch(ctx context.Context, base, name string) ([]byte, error) {
	url := strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%s: %w", url, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: HTTP %d: %s", url, resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// FileFetcher reads repository files from the local filesystem
type FileFetcher struct{}

// NewFileFetcher creates a filesystem fetcher
func NewFileFetcher() *FileFetcher {
	return &FileFetcher{}
}

// Fetch implements Fetcher
func (f *FileFetcher) Fetch(ctx context.Context, base, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(strings.TrimPrefix(base, "file://"), filepath.FromSlash(name))
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return data, err
}

// FetcherFor picks an HTTP fetcher for URLs and a file fetcher otherwise
func FetcherFor(location string, client *http.Client) Fetcher {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPFetcher(client)
	}
	return NewFileFetcher()
}
