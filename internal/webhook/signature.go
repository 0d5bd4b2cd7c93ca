package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
)

// SignatureHeader carries the provider's HMAC of the raw body.
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

var (
	ErrMissingSignature    = errors.New("missing webhook signature")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrSecretNotConfigured = errors.New("webhook app secret not configured")
)

// Verifier checks X-Hub-Signature-256 against the app secret.
type Verifier struct {
	secret        []byte
	allowUnsigned bool
	logger        *slog.Logger
}

// NewVerifier creates a verifier. With an empty secret every request is rejected
// unless allowUnsigned is set, in which case requests pass unverified.
func NewVerifier(log *slog.Logger, secret string, allowUnsigned bool) *Verifier {
	if log == nil {
		log = slog.Default()
	}
	v := &Verifier{
		secret:        []byte(strings.TrimSpace(secret)),
		allowUnsigned: allowUnsigned,
		logger:        log.With(slog.String("component", "webhook_signature")),
	}
	if len(v.secret) == 0 && allowUnsigned {
		v.logger.Warn("webhook signature verification disabled: app secret unset and allow_unsigned is on")
	}
	return v
}

// Verify reports whether header is the HMAC-SHA256 of the exact body bytes.
func (v *Verifier) Verify(body []byte, header string) error {
	if len(v.secret) == 0 {
		if v.allowUnsigned {
			v.logger.Warn("accepting unsigned webhook in insecure mode")
			return nil
		}
		return ErrSecretNotConfigured
	}
	header = strings.TrimSpace(header)
	if header == "" {
		return ErrMissingSignature
	}
	if !strings.HasPrefix(header, signaturePrefix) {
		return ErrInvalidSignature
	}
	if !hmac.Equal([]byte(Sign(v.secret, body)), []byte(header)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign returns the header value for body under secret.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
