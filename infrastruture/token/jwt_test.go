package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtService(t *testing.T) {
	// Setup
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	secretKey := base64.URLEncoding.EncodeToString(bytes)
	issuer := "vinom-maze"

	svc := NewJwtService(secretKey, issuer)

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		claims := map[string]interface{}{
			i.ClaimUserID:   "9f1c2a52-5f53-4c1c-9d59-4f1b0e4b7a11",
			i.ClaimUsername: "labyrinth",
		}

		token, err := svc.Generate(claims, 5*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		decoded, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, claims[i.ClaimUserID], decoded[i.ClaimUserID])
		assert.Equal(t, issuer, decoded["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{i.ClaimUsername: "labyrinth"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Decode token from another issuer", func(t *testing.T) {
		other := NewJwtService(secretKey, "someone-else")
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrWrongIssuer)
	})

	t.Run("Decode token signed with another secret", func(t *testing.T) {
		other := NewJwtService("another-secret", issuer)
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Generate token with empty claims", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{}, 5*time.Minute)
		require.NoError(t, err)

		decodedClaims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Empty(t, decodedClaims[i.ClaimUserID])
	})
}
