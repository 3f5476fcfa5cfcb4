package usecase_test

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"net/http"
	"slices"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/pushbell/pkg/domain/types"
	"github.com/m-mizutani/pushbell/pkg/usecase"
)

// generateSignature generates a "<scheme>=<hex>" signature for testing
func generateSignature(newHash func() hash.Hash, scheme, secret string, payload []byte) string {
	mac := hmac.New(newHash, []byte(secret))
	mac.Write(payload)
	return scheme + "=" + hex.EncodeToString(mac.Sum(nil))
}

func sha1Header(secret string, payload []byte) http.Header {
	h := http.Header{}
	h.Set("X-Hub-Signature", generateSignature(sha1.New, "sha1", secret, payload))
	return h
}

func TestAuthenticate(t *testing.T) {
	const secret = types.WebhookSecret("test-secret")
	body := []byte(`{"ref":"refs/heads/main"}`)

	tests := []struct {
		name    string
		method  string
		header  http.Header
		secret  types.WebhookSecret
		wantTag string
	}{
		{
			name:   "Valid sha1 signature",
			method: http.MethodPost,
			header: sha1Header(string(secret), body),
			secret: secret,
		},
		{
			name:   "Valid sha256 signature",
			method: http.MethodPost,
			header: http.Header{
				"X-Hub-Signature-256": {generateSignature(sha256.New, "sha256", string(secret), body)},
			},
			secret: secret,
		},
		{
			name:   "sha256 header takes precedence",
			method: http.MethodPost,
			header: http.Header{
				"X-Hub-Signature-256": {"sha256=deadbeef"},
				"X-Hub-Signature":     {generateSignature(sha1.New, "sha1", string(secret), body)},
			},
			secret:  secret,
			wantTag: types.ErrTagForbidden.String(),
		},
		{
			name:    "Missing signature",
			method:  http.MethodPost,
			header:  http.Header{},
			secret:  secret,
			wantTag: types.ErrTagForbidden.String(),
		},
		{
			name:    "Wrong secret",
			method:  http.MethodPost,
			header:  sha1Header("other-secret", body),
			secret:  secret,
			wantTag: types.ErrTagForbidden.String(),
		},
		{
			name:   "sha1 digest in sha256 header",
			method: http.MethodPost,
			header: http.Header{
				"X-Hub-Signature-256": {generateSignature(sha1.New, "sha1", string(secret), body)},
			},
			secret:  secret,
			wantTag: types.ErrTagForbidden.String(),
		},
		{
			name:   "sha256 digest in sha1 header",
			method: http.MethodPost,
			header: http.Header{
				"X-Hub-Signature": {generateSignature(sha256.New, "sha256", string(secret), body)},
			},
			secret:  secret,
			wantTag: types.ErrTagForbidden.String(),
		},
		{
			name:    "Unsupported scheme",
			method:  http.MethodPost,
			header:  http.Header{"X-Hub-Signature": {"md5=0123"}},
			secret:  secret,
			wantTag: types.ErrTagForbidden.String(),
		},
		{
			name:    "Signature without scheme",
			method:  http.MethodPost,
			header:  http.Header{"X-Hub-Signature": {"0123456789"}},
			secret:  secret,
			wantTag: types.ErrTagForbidden.String(),
		},
		{
			name:    "GET is rejected before signature check",
			method:  http.MethodGet,
			header:  http.Header{},
			secret:  secret,
			wantTag: types.ErrTagMethodNotAllowed.String(),
		},
		{
			name:    "PUT with valid signature is rejected",
			method:  http.MethodPut,
			header:  sha1Header(string(secret), body),
			secret:  secret,
			wantTag: types.ErrTagMethodNotAllowed.String(),
		},
		{
			name:    "Non-POST rejected without secret",
			method:  http.MethodDelete,
			header:  http.Header{},
			secret:  "",
			wantTag: types.ErrTagMethodNotAllowed.String(),
		},
		{
			name:   "No secret accepts missing signature",
			method: http.MethodPost,
			header: http.Header{},
			secret: "",
		},
		{
			name:   "No secret accepts garbage signature",
			method: http.MethodPost,
			header: http.Header{"X-Hub-Signature": {"sha1=garbage"}},
			secret: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := usecase.Authenticate(tt.method, tt.header, body, tt.secret)
			if tt.wantTag == "" {
				gt.NoError(t, err)
				return
			}
			gt.Error(t, err)
			gt.True(t, slices.Contains(goerr.Tags(err), tt.wantTag))
		})
	}
}

func TestAuthenticate_BitFlips(t *testing.T) {
	const secret = types.WebhookSecret("bit-flip-secret")
	body := []byte(`{"commits":[{"id":"abc"}]}`)
	signature := generateSignature(sha1.New, "sha1", string(secret), body)

	header := http.Header{}
	header.Set("X-Hub-Signature", signature)
	gt.NoError(t, usecase.Authenticate(http.MethodPost, header, body, secret))

	t.Run("any bit flip in body is rejected", func(t *testing.T) {
		for i := range body {
			for bit := 0; bit < 8; bit++ {
				flipped := append([]byte{}, body...)
				flipped[i] ^= 1 << bit

				err := usecase.Authenticate(http.MethodPost, header, flipped, secret)
				gt.True(t, goerr.HasTag(err, types.ErrTagForbidden))
			}
		}
	})

	t.Run("any bit flip in signature is rejected", func(t *testing.T) {
		for i := range signature {
			for bit := 0; bit < 7; bit++ {
				flipped := []byte(signature)
				flipped[i] ^= 1 << bit

				h := http.Header{}
				h.Set("X-Hub-Signature", string(flipped))
				err := usecase.Authenticate(http.MethodPost, h, body, secret)
				gt.True(t, goerr.HasTag(err, types.ErrTagForbidden))
			}
		}
	})
}
