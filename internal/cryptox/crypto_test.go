package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSubscriptionKeys(t *testing.T) {
	keys, err := GenerateSubscriptionKeys()
	require.NoError(t, err)

	pub, err := base64.RawURLEncoding.DecodeString(keys.P256dh)
	require.NoError(t, err)
	// Uncompressed P-256 point: 0x04 prefix plus two 32-byte coordinates.
	assert.Len(t, pub, 65)

	auth, err := base64.RawURLEncoding.DecodeString(keys.Auth)
	require.NoError(t, err)
	assert.Len(t, auth, 16)
}

func TestGenerateSubscriptionKeys_Unique(t *testing.T) {
	a, err := GenerateSubscriptionKeys()
	require.NoError(t, err)
	b, err := GenerateSubscriptionKeys()
	require.NoError(t, err)

	assert.NotEqual(t, a.P256dh, b.P256dh)
	assert.NotEqual(t, a.Auth, b.Auth)
}
