package config

import (
	"github.com/m-mizutani/pushbell/pkg/infra/sentry"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string
	Env string

	// FlushOnReport sends each report before returning
	FlushOnReport bool
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for delivery failure reports",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("PUSHBELL_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("PUSHBELL_SENTRY_ENV"),
		},
	}
}

// IsEnabled reports whether a Sentry DSN is configured
func (c *Sentry) IsEnabled() bool {
	return c.DSN != ""
}

// NewReporter builds the Sentry reporter
func (c *Sentry) NewReporter() (*sentry.Reporter, error) {
	var opts []sentry.Option
	if c.FlushOnReport {
		opts = append(opts, sentry.WithFlushOnReport())
	}
	return sentry.NewReporter(c.DSN, c.Env, opts...)
}
