package sentry

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/types"
)

const flushTimeout = 2 * time.Second

// Reporter sends errors to Sentry
type Reporter struct {
	hub           *sentry.Hub
	flushOnReport bool
}

var _ interfaces.ErrorReporter = (*Reporter)(nil)

type config struct {
	client        sentry.ClientOptions
	flushOnReport bool
}

// Option customizes the reporter
type Option func(*config)

// WithBeforeSend sets a hook called before each event is sent
func WithBeforeSend(fn func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event) Option {
	return func(c *config) {
		c.client.BeforeSend = fn
	}
}

// WithTransport replaces the default HTTP transport
func WithTransport(transport sentry.Transport) Option {
	return func(c *config) {
		c.client.Transport = transport
	}
}

// WithFlushOnReport makes Report block until the event is sent. Required
// where the process may be frozen right after a request, such as Lambda.
func WithFlushOnReport() Option {
	return func(c *config) {
		c.flushOnReport = true
	}
}

// NewReporter creates a Reporter with its own Sentry client
func NewReporter(dsn, env string, opts ...Option) (*Reporter, error) {
	cfg := config{
		client: sentry.ClientOptions{
			Dsn:         dsn,
			Environment: env,
			Release:     types.ServiceName + "@" + types.Version,
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := sentry.NewClient(cfg.client)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sentry client", goerr.V("env", env))
	}

	return &Reporter{
		hub:           sentry.NewHub(client, sentry.NewScope()),
		flushOnReport: cfg.flushOnReport,
	}, nil
}

// Report captures the error with goerr values attached as context
func (r *Reporter) Report(ctx context.Context, err error) {
	hub := r.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		var goErr *goerr.Error
		if errors.As(err, &goErr) {
			scope.SetContext("goerr", sentry.Context(goErr.Values()))
		}

		eventID := hub.CaptureException(err)
		if eventID != nil {
			ctxlog.From(ctx).Info("Reported error to sentry", "event_id", *eventID)
		}
	})

	if r.flushOnReport && !hub.Flush(flushTimeout) {
		ctxlog.From(ctx).Warn("Timed out flushing sentry events")
	}
}

// Flush waits for buffered events to be sent
func (r *Reporter) Flush() bool {
	return r.hub.Flush(flushTimeout)
}
