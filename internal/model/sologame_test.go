package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoloGameRoundTrip(t *testing.T) {
	game := NewSoloGame(uuid.New(), 5, "museum", 3)

	payload, err := json.Marshal(game.ToRecord())
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(payload, &rec))

	decoded, ok := SoloGameFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, game, decoded)
}

func TestSoloGameFromRecord(t *testing.T) {
	validRecord := func() Record {
		return NewSoloGame(uuid.New(), 5, "museum", 3).ToRecord()
	}

	t.Run("non-uuid game id fails soft", func(t *testing.T) {
		rec := validRecord()
		rec["game_id"] = "not-a-uuid"
		_, ok := SoloGameFromRecord(rec)
		assert.False(t, ok)
	})

	t.Run("non-positive player amount fails soft", func(t *testing.T) {
		rec := validRecord()
		rec["player_amount"] = 0
		_, ok := SoloGameFromRecord(rec)
		assert.False(t, ok)
	})

	t.Run("negative spy index fails soft", func(t *testing.T) {
		rec := validRecord()
		rec["spy_index"] = -1
		_, ok := SoloGameFromRecord(rec)
		assert.False(t, ok)
	})

	t.Run("spy index beyond the last seat fails soft", func(t *testing.T) {
		rec := validRecord()
		rec["spy_index"] = 5
		_, ok := SoloGameFromRecord(rec)
		assert.False(t, ok)
	})
}
