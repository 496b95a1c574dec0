package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/ralt/reposcout/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single link check
const DefaultTimeout = 30 * time.Second

// HTTPProbe tests build server links with HEAD requests
type HTTPProbe struct {
	client *http.Client
	logger logrus.Ext1FieldLogger
}

// NewHTTPClient creates the client used to talk to build servers. Build
// servers commonly use internal certificates, so TLS verification is skipped
// when insecure is set.
func NewHTTPClient(timeout time.Duration, insecure bool) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 - opt-in for internal build servers
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// NewHTTPProbe creates a link prober on a NewHTTPClient client
func NewHTTPProbe(timeout time.Duration, insecure bool, logger logrus.Ext1FieldLogger) *HTTPProbe {
	return NewHTTPProbeWithClient(NewHTTPClient(timeout, insecure), logger)
}

// NewHTTPProbeWithClient creates a link prober using a copy of client.
// Redirects are never followed: only the link's own answer counts.
func NewHTTPProbeWithClient(client *http.Client, logger logrus.Ext1FieldLogger) *HTTPProbe {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &HTTPProbe{client: &c, logger: logger}
}

// LinkExists reports whether url answers 200 to a HEAD request. An empty url
// never exists and is not requested.
func (h *HTTPProbe) LinkExists(ctx context.Context, url string) (bool, error) {
	if url == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, models.NewError(models.ErrProbeFailure, "", "invalid link %q: %w", url, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return false, &models.Error{
			Type: models.ErrProbeFailure,
			Err:  fmt.Errorf("request to %s failed: %w", url, err),
		}
	}
	defer resp.Body.Close()

	h.logger.Tracef("HEAD %s: %s", url, resp.Status)

	return resp.StatusCode == http.StatusOK, nil
}
