package telegram

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/model"
	"github.com/m-mizutani/pushbell/pkg/utils/markup"
)

// DefaultEndpoint is the Telegram Bot API base URL
const DefaultEndpoint = "https://api.telegram.org"

type client struct {
	bot        *bot.Bot
	token      string
	chatID     string
	endpoint   string
	httpClient *http.Client
}

// Option is a functional option for the Telegram client
type Option func(*client)

// WithEndpoint overrides the Bot API base URL
func WithEndpoint(endpoint string) Option {
	return func(c *client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a ChatClient posting to a single Telegram chat. A token
// given with its "bot" path prefix is accepted as well.
func NewClient(token, chatID string, opts ...Option) (interfaces.ChatClient, error) {
	token = strings.TrimPrefix(token, "bot")
	if token == "" {
		return nil, goerr.New("telegram token is required")
	}
	if chatID == "" {
		return nil, goerr.New("telegram chat is required")
	}

	c := &client{
		token:      token,
		chatID:     chatID,
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Send-only: no getMe at startup and no update polling
	b, err := bot.New(token,
		bot.WithSkipGetMe(),
		bot.WithServerURL(strings.TrimSuffix(c.endpoint, "/")),
		bot.WithHTTPClient(c.httpClient.Timeout, c.httpClient),
	)
	if err != nil {
		return nil, goerr.New("failed to create telegram bot",
			goerr.V("cause", redact(err.Error(), token)),
		)
	}
	c.bot = b

	return c, nil
}

func (c *client) Markup() interfaces.Markup {
	return markup.HTML{}
}

// SendMessage calls the sendMessage method of the Bot API with link previews disabled
func (c *client) SendMessage(ctx context.Context, msg *model.FormattedMessage) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    c.chatID,
		Text:      msg.Text,
		ParseMode: models.ParseMode(msg.ParseMode),
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		},
	})
	if err != nil {
		// Transport errors carry the request URL, which embeds the token
		return goerr.New("failed to call sendMessage",
			goerr.V("cause", redact(err.Error(), c.token)),
			goerr.V("chat_id", c.chatID),
		)
	}

	return nil
}

func redact(s, token string) string {
	return strings.ReplaceAll(s, token, "[REDACTED]")
}
