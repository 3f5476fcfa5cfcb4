package interfaces

import (
	"context"

	"github.com/m-mizutani/pushbell/pkg/domain/model"
)

// ChatClient delivers a formatted message to the configured chat destination
type ChatClient interface {
	// Markup returns the markup vocabulary understood by the chat service
	Markup() Markup

	// SendMessage posts the message. Link previews must be suppressed.
	SendMessage(ctx context.Context, msg *model.FormattedMessage) error
}

// Markup renders styled fragments for a chat service
type Markup interface {
	ParseMode() model.ParseMode
	Escape(text string) string
	Bold(text string) string
	Link(url, text string) string
}
