package slack

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/model"
	"github.com/m-mizutani/pushbell/pkg/utils/markup"
	"github.com/slack-go/slack"
)

type client struct {
	webhookURL string
	httpClient *http.Client
}

// Option is a functional option for the Slack client
type Option func(*client)

// WithHTTPClient sets the HTTP client used for webhook calls
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a ChatClient posting to a Slack incoming webhook
func NewClient(webhookURL string, opts ...Option) (interfaces.ChatClient, error) {
	if webhookURL == "" {
		return nil, goerr.New("slack webhook URL is required")
	}

	c := &client{
		webhookURL: webhookURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) Markup() interfaces.Markup {
	return markup.Slack{}
}

// SendMessage posts the message as mrkdwn text without link unfurling
func (c *client) SendMessage(ctx context.Context, msg *model.FormattedMessage) error {
	webhookMsg := &slack.WebhookMessage{
		Text:        msg.Text,
		UnfurlLinks: new(bool),
		UnfurlMedia: new(bool),
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, c.webhookURL, c.httpClient, webhookMsg); err != nil {
		// Error of PostWebhook may contain the webhook URL, which is a credential
		return goerr.New("failed to post slack webhook",
			goerr.V("cause", redact(err.Error(), c.webhookURL)),
		)
	}

	return nil
}
