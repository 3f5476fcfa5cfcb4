package lambda_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pushbell/pkg/controller/lambda"
	"github.com/m-mizutani/pushbell/pkg/domain/interfaces"
	"github.com/m-mizutani/pushbell/pkg/domain/model"
	"github.com/m-mizutani/pushbell/pkg/usecase"
	"github.com/m-mizutani/pushbell/pkg/utils/markup"
)

type mockChatClient struct {
	sent []*model.FormattedMessage
}

func (m *mockChatClient) Markup() interfaces.Markup { return markup.HTML{} }

func (m *mockChatClient) SendMessage(ctx context.Context, msg *model.FormattedMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

const secret = "lambda-secret"

const payload = `{"ref":"refs/heads/main","commits":[{"id":"abcdef0123","message":"hello","url":"https://github.com/o/r/commit/abcdef0123"}],` +
	`"repository":{"url":"https://github.com/o/r","full_name":"o/r","default_branch":"main"},"pusher":{"name":"octocat"}}`

func sign(body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newRequest(method, body string, base64Encoded bool) lambda.Request {
	req := lambda.Request{
		Headers: map[string]string{
			"x-github-event":      "push",
			"x-github-delivery":   "lambda-delivery",
			"x-hub-signature-256": sign(body),
			"content-type":        "application/json",
		},
		Body:            body,
		IsBase64Encoded: base64Encoded,
		RequestContext: events.LambdaFunctionURLRequestContext{
			RequestID: "req-1",
			HTTP: events.LambdaFunctionURLRequestContextHTTPDescription{
				Method: method,
				Path:   "/",
			},
		},
	}
	if base64Encoded {
		req.Body = base64.StdEncoding.EncodeToString([]byte(body))
	}
	return req
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		req        lambda.Request
		wantStatus int
		wantSent   int
	}{
		{
			name:       "Valid push",
			req:        newRequest(http.MethodPost, payload, false),
			wantStatus: http.StatusOK,
			wantSent:   1,
		},
		{
			name:       "Base64 encoded body",
			req:        newRequest(http.MethodPost, payload, true),
			wantStatus: http.StatusOK,
			wantSent:   1,
		},
		{
			name:       "Wrong method",
			req:        newRequest(http.MethodGet, payload, false),
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name: "Tampered body",
			req: func() lambda.Request {
				r := newRequest(http.MethodPost, payload, false)
				r.Body = r.Body + " "
				return r
			}(),
			wantStatus: http.StatusForbidden,
		},
		{
			name: "Broken base64",
			req: func() lambda.Request {
				r := newRequest(http.MethodPost, payload, true)
				r.Body = "%%%"
				return r
			}(),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &mockChatClient{}
			h := lambda.NewHandler(usecase.NewRelay(chat, usecase.WithWebhookSecret(secret)))

			resp, err := h.Handle(context.Background(), tt.req)
			gt.NoError(t, err)
			gt.Value(t, resp.StatusCode).Equal(tt.wantStatus)
			gt.Number(t, len(chat.sent)).Equal(tt.wantSent)
			if tt.wantStatus == http.StatusOK {
				gt.Value(t, resp.Body).Equal("OK")
				gt.Value(t, chat.sent[0].Text).Equal(
					`<b>octocat</b> pushed to <a href="https://github.com/o/r">o/r</a>` + "\n" +
						`<a href="https://github.com/o/r/commit/abcdef0123">abcdef0</a> hello`,
				)
			}
		})
	}
}
