package types

import "log/slog"

// WebhookSecret is the shared secret configured on the GitHub webhook.
// The zero value means signature verification is disabled.
type WebhookSecret string

// Enabled reports whether signature verification must be performed
func (s WebhookSecret) Enabled() bool {
	return s != ""
}

// Bytes returns the HMAC key
func (s WebhookSecret) Bytes() []byte {
	return []byte(s)
}

// LogValue keeps the secret out of slog output
func (s WebhookSecret) LogValue() slog.Value {
	if s == "" {
		return slog.StringValue("")
	}
	return slog.StringValue("[REDACTED]")
}
