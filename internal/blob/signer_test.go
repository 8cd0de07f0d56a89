package blob

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLSigner(t *testing.T) {
	signer := NewURLSigner("test-secret-at-least-32-characters")

	t.Run("sign and verify round trip", func(t *testing.T) {
		token, err := signer.Sign("qrcodes", "game.png", time.Minute)
		require.NoError(t, err)

		bucket, key, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "qrcodes", bucket)
		assert.Equal(t, "game.png", key)
	})

	t.Run("expired token fails", func(t *testing.T) {
		token, err := signer.Sign("qrcodes", "game.png", -time.Minute)
		require.NoError(t, err)

		_, _, err = signer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("tampered token fails", func(t *testing.T) {
		token, err := signer.Sign("qrcodes", "game.png", time.Minute)
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		parts[1] = strings.Repeat("A", len(parts[1]))
		_, _, err = signer.Verify(strings.Join(parts, "."))
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret fails", func(t *testing.T) {
		other := NewURLSigner("another-secret-at-least-32-chars!!")
		token, err := other.Sign("qrcodes", "game.png", time.Minute)
		require.NoError(t, err)

		_, _, err = signer.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage token fails", func(t *testing.T) {
		_, _, err := signer.Verify("not-a-token")
		assert.Error(t, err)
	})
}
