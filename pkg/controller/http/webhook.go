package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/model"
	"github.com/m-mizutani/pushbell/pkg/domain/types"
)

// ResponseOK is the body returned for every accepted delivery
const ResponseOK = "OK"

// WebhookHandler handles GitHub webhooks
type WebhookHandler struct {
	relayUC      interfaces.RelayUseCase
	maxBodyBytes int64
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(relayUC interfaces.RelayUseCase, maxBodyBytes int64) *WebhookHandler {
	return &WebhookHandler{
		relayUC:      relayUC,
		maxBodyBytes: maxBodyBytes,
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Non-POST requests are rejected by the relay without reading the body
	var body []byte
	if r.Method == http.MethodPost {
		// Read payload as is; the signature covers the raw bytes
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
		if err != nil {
			status := http.StatusBadRequest
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				status = http.StatusRequestEntityTooLarge
			}
			logger.Error("Failed to read request body", "error", err)
			writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), status)
			return
		}
		body = raw
	}

	hook := &model.IncomingWebhook{
		Method:     r.Method,
		Header:     r.Header,
		Body:       body,
		ReceivedAt: time.Now(),
	}

	if err := h.relayUC.HandleWebhook(ctx, hook); err != nil {
		status := StatusCode(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to handle webhook", "error", err)
		} else {
			logger.Warn("Rejected webhook", "error", err, "status", status)
		}
		writeError(ctx, w, err, status)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, ResponseOK); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}

// StatusCode maps relay errors to HTTP status codes
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerr.HasTag(err, types.ErrTagMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case goerr.HasTag(err, types.ErrTagForbidden):
		return http.StatusForbidden
	default:
		// ErrTagMalformedPayload and untagged errors
		return http.StatusInternalServerError
	}
}
