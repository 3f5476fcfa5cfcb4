package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/cli/config"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// relayConfig groups the flags shared by every runtime
type relayConfig struct {
	github    config.GitHub
	chat      config.Chat
	shortener config.Shortener
	sentry    config.Sentry
}

func (c *relayConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, c.github.Flags()...)
	flags = append(flags, c.chat.Flags()...)
	flags = append(flags, c.shortener.Flags()...)
	flags = append(flags, c.sentry.Flags()...)
	return flags
}

// build creates the relay use case. The returned cleanup flushes pending
// error reports and must be called before the process exits.
func (c *relayConfig) build(ctx context.Context, opts ...usecase.RelayOption) (interfaces.RelayUseCase, func(), error) {
	logger := ctxlog.From(ctx)
	cleanup := func() {}

	httpClient := c.chat.HTTPClient()
	chat, err := c.chat.NewClient(httpClient)
	if err != nil {
		return nil, cleanup, goerr.Wrap(err, "invalid chat configuration")
	}

	opts = append(opts, usecase.WithWebhookSecret(c.github.Secret()))
	if !c.github.Secret().Enabled() {
		logger.Warn("Webhook secret is not configured, signature verification is disabled")
	}

	if c.shortener.IsEnabled() {
		shortener, err := c.shortener.NewClient(httpClient)
		if err != nil {
			return nil, cleanup, goerr.Wrap(err, "invalid shortener configuration")
		}
		opts = append(opts, usecase.WithShortener(shortener))
	}

	if c.sentry.IsEnabled() {
		reporter, err := c.sentry.NewReporter()
		if err != nil {
			return nil, cleanup, goerr.Wrap(err, "invalid sentry configuration")
		}
		opts = append(opts, usecase.WithErrorReporter(reporter))
		cleanup = func() { reporter.Flush() }
	}

	logger.Info("Relay configured",
		"destination", chat.Markup().ParseMode(),
		"signature_verification", c.github.Secret().Enabled(),
		"shortener", c.shortener.IsEnabled(),
		"sentry", c.sentry.IsEnabled(),
	)

	return usecase.NewRelay(chat, opts...), cleanup, nil
}
