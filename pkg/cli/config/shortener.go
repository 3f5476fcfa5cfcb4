package config

import (
	"net/http"

	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/infra/shortener"
	"github.com/urfave/cli/v3"
)

// Shortener holds link shortener configuration
type Shortener struct {
	URL string
}

// Flags returns CLI flags for shortener configuration
func (c *Shortener) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "shortener-url",
			Usage:       "Link shortener endpoint (git.io protocol). Links are not shortened when empty",
			Destination: &c.URL,
			Sources:     cli.EnvVars("PUSHBELL_SHORTENER_URL"),
		},
	}
}

// IsEnabled reports whether a shortener is configured
func (c *Shortener) IsEnabled() bool {
	return c.URL != ""
}

// NewClient builds the shortener client
func (c *Shortener) NewClient(httpClient *http.Client) (interfaces.Shortener, error) {
	return shortener.NewClient(c.URL, shortener.WithHTTPClient(httpClient))
}
