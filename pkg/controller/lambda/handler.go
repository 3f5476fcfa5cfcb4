package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/m-mizutani/ctxlog"
	controller "github.com/m-mizutani/pushbell/pkg/controller/http"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/model"
)

type (
	Request  = events.LambdaFunctionURLRequest
	Response = events.LambdaFunctionURLResponse
)

// Handler serves webhooks delivered through an AWS Lambda function URL
type Handler struct {
	relayUC interfaces.RelayUseCase
}

// NewHandler creates a new Lambda Handler
func NewHandler(relayUC interfaces.RelayUseCase) *Handler {
	return &Handler{relayUC: relayUC}
}

// Handle is the Lambda entry point. Errors are always expressed as HTTP
// responses so the runtime never retries a delivery.
func (h *Handler) Handle(ctx context.Context, req Request) (Response, error) {
	logger := ctxlog.From(ctx).With("request_id", req.RequestContext.RequestID)
	ctx = ctxlog.With(ctx, logger)

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			logger.Error("Failed to decode request body", "error", err)
			return errorResponse(http.StatusBadRequest, "failed to decode request body"), nil
		}
		body = decoded
	}

	hook := model.NewIncomingWebhook(req.RequestContext.HTTP.Method, req.Headers, body)
	if err := h.relayUC.HandleWebhook(ctx, hook); err != nil {
		status := controller.StatusCode(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to handle webhook", "error", err)
		} else {
			logger.Warn("Rejected webhook", "error", err, "status", status)
		}
		return errorResponse(status, err.Error()), nil
	}

	logger.Info("Lambda request",
		"method", req.RequestContext.HTTP.Method,
		"path", req.RawPath,
		"status", http.StatusOK,
	)

	return Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "text/plain; charset=utf-8"},
		Body:       controller.ResponseOK,
	}, nil
}

func errorResponse(status int, msg string) Response {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
