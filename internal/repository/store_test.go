package repository

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpotTheSpy/backend/internal/model"
)

func newGameStore() *Store[*model.Game] {
	return NewStore(nil, "spotthespy", model.GameFromRecord)
}

func TestStoreKeys(t *testing.T) {
	store := newGameStore()

	t.Run("keys are namespaced by prefix and type tag", func(t *testing.T) {
		assert.Equal(t, "spotthespy:game:abc", store.key("abc"))
	})

	t.Run("pattern matches only this type", func(t *testing.T) {
		assert.Equal(t, "spotthespy:game:*", store.pattern())
	})

	t.Run("different types never share a key space", func(t *testing.T) {
		players := NewStore(nil, "spotthespy", model.ActivePlayerFromRecord)
		assert.NotEqual(t, store.key("abc"), players.key("abc"))
	})
}

func TestStoreDecodePayload(t *testing.T) {
	store := newGameStore()

	t.Run("valid payload decodes", func(t *testing.T) {
		hostID := uuid.New()
		game := model.NewGame(hostID, 4, "museum", model.NewPlayer(hostID, 1001, "Alice"))
		payload, err := json.Marshal(map[string]any(game.ToRecord()))
		require.NoError(t, err)

		decoded := store.decodePayload("k", payload)
		require.NotNil(t, decoded)
		assert.Equal(t, game.GameID, decoded.GameID)
	})

	t.Run("non-JSON payload is treated as absent", func(t *testing.T) {
		assert.Nil(t, store.decodePayload("k", []byte("not json")))
	})

	t.Run("record failing validation is treated as absent", func(t *testing.T) {
		assert.Nil(t, store.decodePayload("k", []byte(`{"game_id":"not-a-uuid"}`)))
	})
}

func TestIsZero(t *testing.T) {
	assert.True(t, isZero[*model.Game](nil))
	assert.False(t, isZero(&model.Game{}))
}
