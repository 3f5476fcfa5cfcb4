// Package markup provides the styling vocabularies of supported chat services.
package markup

import (
	"html"
	"strings"

	"github.com/m-mizutani/pushbell/pkg/domain/model"
)

// HTML is the subset of HTML accepted by Telegram's HTML parse mode
type HTML struct{}

func (HTML) ParseMode() model.ParseMode { return model.ParseModeHTML }

func (HTML) Escape(text string) string {
	return html.EscapeString(text)
}

func (m HTML) Bold(text string) string {
	return "<b>" + m.Escape(text) + "</b>"
}

func (m HTML) Link(url, text string) string {
	return `<a href="` + m.Escape(url) + `">` + m.Escape(text) + "</a>"
}

// Slack is Slack's mrkdwn format
type Slack struct{}

var slackEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (Slack) ParseMode() model.ParseMode { return model.ParseModeMarkdown }

func (Slack) Escape(text string) string {
	return slackEscaper.Replace(text)
}

func (m Slack) Bold(text string) string {
	return "*" + m.Escape(text) + "*"
}

// Link renders <url|text>. A pipe in the text would end the URL part early.
func (m Slack) Link(url, text string) string {
	return "<" + m.Escape(url) + "|" + strings.ReplaceAll(m.Escape(text), "|", "¦") + ">"
}
