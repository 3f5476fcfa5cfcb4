package interfaces

import (
	"context"

	"github.com/m-mizutani/pushbell/pkg/domain/model"
)

// RelayUseCase defines the interface for webhook relaying
type RelayUseCase interface {
	// HandleWebhook authenticates a webhook delivery and relays push events to the chat service.
	// A nil error means the caller must be answered with "OK".
	HandleWebhook(ctx context.Context, hook *model.IncomingWebhook) error
}
