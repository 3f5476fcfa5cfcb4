package types_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pushbell/pkg/domain/types"
)

func TestWebhookSecret(t *testing.T) {
	t.Run("empty secret disables verification", func(t *testing.T) {
		gt.False(t, types.WebhookSecret("").Enabled())
	})

	t.Run("configured secret enables verification", func(t *testing.T) {
		gt.True(t, types.WebhookSecret("s3cr3t").Enabled())
	})

	t.Run("secret is redacted in logs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		logger.Info("config", "secret", types.WebhookSecret("s3cr3t"))
		gt.String(t, buf.String()).NotContains("s3cr3t")
		gt.String(t, buf.String()).Contains("[REDACTED]")
	})
}
