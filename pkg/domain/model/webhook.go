package model

import (
	"net/http"
	"time"

	"github.com/google/go-github/v75/github"
)

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePush WebhookEventType = "push"
	EventTypePing WebhookEventType = "ping"
)

// IncomingWebhook is a single inbound webhook delivery. Body holds the raw
// bytes exactly as received because the signature is computed over them.
type IncomingWebhook struct {
	Method     string
	Header     http.Header
	Body       []byte
	ReceivedAt time.Time
}

// NewIncomingWebhook builds an IncomingWebhook from lower-cased or mixed-case
// header pairs, as delivered by serverless runtimes.
func NewIncomingWebhook(method string, headers map[string]string, body []byte) *IncomingWebhook {
	h := make(http.Header, len(headers))
	for k, v := range headers {
		h.Set(k, v)
	}

	return &IncomingWebhook{
		Method:     method,
		Header:     h,
		Body:       body,
		ReceivedAt: time.Now(),
	}
}

// EventType is retrieved from X-GitHub-Event header
func (w *IncomingWebhook) EventType() WebhookEventType {
	return WebhookEventType(w.Header.Get(github.EventTypeHeader))
}

// DeliveryID is retrieved from X-GitHub-Delivery header
func (w *IncomingWebhook) DeliveryID() string {
	return w.Header.Get(github.DeliveryIDHeader)
}

// IsPush checks if the delivery carries a push event
func (w *IncomingWebhook) IsPush() bool {
	return w.EventType() == EventTypePush
}
