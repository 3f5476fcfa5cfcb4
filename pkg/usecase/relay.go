package usecase

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/model"
	"github.com/m-mizutani/pushbell/pkg/domain/types"
	"github.com/m-mizutani/pushbell/pkg/utils/async"
)

type relayUseCase struct {
	secret    types.WebhookSecret
	chat      interfaces.ChatClient
	formatter *Formatter
	shortener interfaces.Shortener
	reporter  interfaces.ErrorReporter
	async     bool
}

// RelayOption is a functional option for the relay use case
type RelayOption func(*relayUseCase)

// WithWebhookSecret enables signature verification
func WithWebhookSecret(secret types.WebhookSecret) RelayOption {
	return func(uc *relayUseCase) {
		uc.secret = secret
	}
}

// WithShortener shortens the trailing link of each message
func WithShortener(shortener interfaces.Shortener) RelayOption {
	return func(uc *relayUseCase) {
		uc.shortener = shortener
	}
}

// WithErrorReporter reports delivery failures
func WithErrorReporter(reporter interfaces.ErrorReporter) RelayOption {
	return func(uc *relayUseCase) {
		uc.reporter = reporter
	}
}

// WithAsyncDelivery sends messages in background after the caller has been answered
func WithAsyncDelivery(enabled bool) RelayOption {
	return func(uc *relayUseCase) {
		uc.async = enabled
	}
}

// NewRelay creates a new instance of RelayUseCase
func NewRelay(chat interfaces.ChatClient, opts ...RelayOption) interfaces.RelayUseCase {
	uc := &relayUseCase{
		chat:      chat,
		formatter: NewFormatter(chat.Markup()),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// HandleWebhook authenticates the delivery, ignores everything but non-empty
// pushes and sends one chat message per push. Delivery failures are reported
// but never returned.
func (uc *relayUseCase) HandleWebhook(ctx context.Context, hook *model.IncomingWebhook) error {
	deliveryID := hook.DeliveryID()
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	logger := ctxlog.From(ctx).With(
		"delivery_id", deliveryID,
		"event_type", hook.EventType(),
	)
	ctx = ctxlog.With(ctx, logger)

	if err := Authenticate(hook.Method, hook.Header, hook.Body, uc.secret); err != nil {
		return err
	}

	if !hook.IsPush() {
		logger.Debug("Ignoring non-push event")
		return nil
	}

	payload, err := github.ParseWebHook(string(model.EventTypePush), hook.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to parse push payload",
			goerr.T(types.ErrTagMalformedPayload),
			goerr.V("delivery_id", deliveryID),
		)
	}
	pushEvent, ok := payload.(*github.PushEvent)
	if !ok {
		return goerr.New("unexpected push payload type",
			goerr.T(types.ErrTagMalformedPayload),
			goerr.V("delivery_id", deliveryID),
		)
	}

	ev, err := model.NewPushEvent(pushEvent)
	if err != nil {
		return err
	}

	logger = logger.With(
		"repository", ev.Repository.FullName,
		"ref", ev.Ref,
		"commits", len(ev.Commits),
	)
	ctx = ctxlog.With(ctx, logger)

	if len(ev.Commits) == 0 {
		logger.Info("Ignoring push without commits")
		return nil
	}

	msg := uc.formatter.Format(ev, uc.shortenLink(ctx, ev))

	deliver := func(ctx context.Context) error {
		if err := uc.chat.SendMessage(ctx, msg); err != nil {
			uc.reportFailure(ctx, goerr.Wrap(err, "failed to deliver message",
				goerr.T(types.ErrTagDeliveryFailure),
				goerr.V("repository", ev.Repository.FullName),
				goerr.V("delivery_id", deliveryID),
			))
			return nil
		}
		ctxlog.From(ctx).Info("Delivered push notification")
		return nil
	}

	if uc.async {
		async.Dispatch(ctx, deliver)
		return nil
	}
	return deliver(ctx)
}

// shortenLink returns "" when no shortener is configured or shortening fails
func (uc *relayUseCase) shortenLink(ctx context.Context, ev *model.PushEvent) string {
	if uc.shortener == nil {
		return ""
	}

	target := ev.LinkTarget()
	if target == "" {
		return ""
	}

	short, err := uc.shortener.Shorten(ctx, target)
	if err != nil {
		uc.reportFailure(ctx, goerr.Wrap(err, "failed to shorten link",
			goerr.T(types.ErrTagDeliveryFailure),
			goerr.V("url", target),
		))
		return ""
	}

	return short
}

func (uc *relayUseCase) reportFailure(ctx context.Context, err error) {
	ctxlog.From(ctx).Error("Delivery failure", "error", err)
	if uc.reporter != nil {
		uc.reporter.Report(ctx, err)
	}
}
