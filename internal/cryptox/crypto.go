// Package cryptox holds the small crypto helpers the client needs.
package cryptox

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SubscriptionKeys are the client-side keys of a push subscription: an
// ECDH P-256 public key and a random 16-byte auth secret, both
// base64url-encoded the way the push protocol expects.
type SubscriptionKeys struct {
	P256dh string
	Auth   string
}

// GenerateSubscriptionKeys mints a fresh key pair and auth secret for a
// new push subscription. The private key is intentionally discarded:
// this client never decrypts pushes itself, the worker receives them in
// the clear over the local control endpoint.
func GenerateSubscriptionKeys() (*SubscriptionKeys, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription key: %w", err)
	}

	auth := make([]byte, 16)
	if _, err := rand.Read(auth); err != nil {
		return nil, fmt.Errorf("failed to generate auth secret: %w", err)
	}

	enc := base64.RawURLEncoding
	return &SubscriptionKeys{
		P256dh: enc.EncodeToString(priv.PublicKey().Bytes()),
		Auth:   enc.EncodeToString(auth),
	}, nil
}
