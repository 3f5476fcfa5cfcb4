package config

import (
	"github.com/m-mizutani/pushbell/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	WebhookSecret string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret. Signature verification is disabled when empty",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("PUSHBELL_GITHUB_WEBHOOK_SECRET", "WEBHOOK_SECRET"),
		},
	}
}

// Secret returns the configured secret; the zero value disables verification
func (c *GitHub) Secret() types.WebhookSecret {
	return types.WebhookSecret(c.WebhookSecret)
}
