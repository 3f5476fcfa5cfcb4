package config

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/infra/slack"
	"github.com/m-mizutani/pushbell/pkg/infra/telegram"
	"github.com/urfave/cli/v3"
)

// Chat holds the destination chat configuration. Exactly one of Telegram or
// Slack must be configured.
type Chat struct {
	TelegramToken    string
	TelegramChat     string
	TelegramEndpoint string
	SlackWebhookURL  string
	HTTPTimeout      time.Duration
}

// Flags returns CLI flags for chat configuration
func (c *Chat) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "telegram-token",
			Usage:       "Telegram bot token",
			Destination: &c.TelegramToken,
			Sources:     cli.EnvVars("PUSHBELL_TELEGRAM_TOKEN", "TELEGRAM_KEY"),
		},
		&cli.StringFlag{
			Name:        "telegram-chat",
			Usage:       "Telegram chat ID or @channel name",
			Destination: &c.TelegramChat,
			Sources:     cli.EnvVars("PUSHBELL_TELEGRAM_CHAT", "TELEGRAM_CHAT"),
		},
		&cli.StringFlag{
			Name:        "telegram-endpoint",
			Usage:       "Telegram Bot API base URL",
			Value:       telegram.DefaultEndpoint,
			Destination: &c.TelegramEndpoint,
			Sources:     cli.EnvVars("PUSHBELL_TELEGRAM_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL, used instead of Telegram",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("PUSHBELL_SLACK_WEBHOOK_URL"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout of outbound HTTP calls",
			Value:       10 * time.Second,
			Destination: &c.HTTPTimeout,
			Sources:     cli.EnvVars("PUSHBELL_HTTP_TIMEOUT"),
		},
	}
}

// HTTPClient returns the client used for every outbound call
func (c *Chat) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.HTTPTimeout}
}

// NewClient validates the destination and builds its ChatClient
func (c *Chat) NewClient(httpClient *http.Client) (interfaces.ChatClient, error) {
	useTelegram := c.TelegramToken != "" || c.TelegramChat != ""
	useSlack := c.SlackWebhookURL != ""

	switch {
	case useTelegram && useSlack:
		return nil, goerr.New("both telegram and slack destinations are configured, choose one")

	case useSlack:
		return slack.NewClient(c.SlackWebhookURL, slack.WithHTTPClient(httpClient))

	case useTelegram:
		return telegram.NewClient(c.TelegramToken, c.TelegramChat,
			telegram.WithEndpoint(c.TelegramEndpoint),
			telegram.WithHTTPClient(httpClient),
		)

	default:
		return nil, goerr.New("no chat destination is configured, set --telegram-token and --telegram-chat or --slack-webhook-url")
	}
}
