// Package signer provides the secret-keyed HMAC primitive that every
// classic-match cookie codec signs and verifies with.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// ErrSecretMissing is returned by New when the signing secret is empty.
// An unset secret is a deployment mistake and must stop startup, not be
// papered over at request time.
var ErrSecretMissing = errors.New("signing secret is not configured")

// Signer computes and checks HMAC-SHA256 signatures over opaque payload
// strings. A Signer is immutable after New and safe for concurrent use.
type Signer struct {
	secret []byte
}

// New returns a Signer keyed with secret. It fails when secret is empty.
func New(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign returns the lowercase hex HMAC-SHA256 of payload.
func (s *Signer) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signatureHex is a valid signature for payload.
// The provided signature is hex-decoded and compared against the expected
// MAC bytes in constant time. Undecodable or length-mismatched signatures
// return false before the comparison primitive is ever invoked.
func (s *Signer) Verify(payload, signatureHex string) bool {
	provided, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	if len(provided) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(provided, expected) == 1
}
