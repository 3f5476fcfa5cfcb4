package shortener

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
)

type client struct {
	endpoint   string
	httpClient *http.Client
}

// Option is a functional option for the shortener client
type Option func(*client)

// WithHTTPClient sets the HTTP client. Redirects are never followed.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Shortener speaking the git.io protocol: the long URL is
// posted as the "url" form field and the short URL is returned in Location.
func NewClient(endpoint string, opts ...Option) (interfaces.Shortener, error) {
	if endpoint == "" {
		return nil, goerr.New("shortener endpoint is required")
	}

	c := &client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	noRedirect := *c.httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	c.httpClient = &noRedirect

	return c, nil
}

func (c *client) Shorten(ctx context.Context, longURL string) (string, error) {
	form := url.Values{"url": {longURL}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create shortener request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call shortener", goerr.V("url", longURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", goerr.New("shortener returned error status",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", longURL),
		)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", goerr.New("shortener response has no Location header",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", longURL),
		)
	}

	return location, nil
}
