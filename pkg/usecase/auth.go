package usecase

import (
	"crypto/hmac"
	"crypto/sha1" // #nosec G505 -- X-Hub-Signature is defined as HMAC-SHA1
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"net/http"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/pushbell/pkg/domain/types"
)

// signatureHeaders lists the accepted headers in order of preference. Each
// header carries exactly one scheme.
var signatureHeaders = []struct {
	name    string
	scheme  string
	newHash func() hash.Hash
}{
	{name: github.SHA256SignatureHeader, scheme: "sha256", newHash: sha256.New},
	{name: github.SHA1SignatureHeader, scheme: "sha1", newHash: sha1.New},
}

// Authenticate checks that a webhook delivery is a POST and, when a secret is
// configured, that its signature header matches the HMAC of the raw body.
// An empty secret disables signature verification.
func Authenticate(method string, header http.Header, body []byte, secret types.WebhookSecret) error {
	if method != http.MethodPost {
		return goerr.New("method not allowed",
			goerr.T(types.ErrTagMethodNotAllowed),
			goerr.V("method", method),
		)
	}

	if !secret.Enabled() {
		return nil
	}

	for _, h := range signatureHeaders {
		if signature := header.Get(h.name); signature != "" {
			return verifySignature(signature, h.scheme, h.newHash, body, secret)
		}
	}

	return goerr.New("missing webhook signature", goerr.T(types.ErrTagForbidden))
}

func verifySignature(signature, scheme string, newHash func() hash.Hash, body []byte, secret types.WebhookSecret) error {
	if !strings.HasPrefix(signature, scheme+"=") {
		return goerr.New("signature scheme does not match header",
			goerr.T(types.ErrTagForbidden),
			goerr.V("scheme", scheme),
		)
	}

	mac := hmac.New(newHash, secret.Bytes())
	mac.Write(body)
	expected := scheme + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return goerr.New("invalid webhook signature",
			goerr.T(types.ErrTagForbidden),
			goerr.V("scheme", scheme),
		)
	}

	return nil
}
