package model

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordQueuePush(t *testing.T) {
	t.Run("keeps words in draw order", func(t *testing.T) {
		queue := NewWordQueue(uuid.New(), 5)
		queue.Push("museum")
		queue.Push("airport")
		assert.Equal(t, []string{"museum", "airport"}, queue.Words)
	})

	t.Run("evicts the oldest words beyond the window", func(t *testing.T) {
		queue := NewWordQueue(uuid.New(), 3)
		for i := 0; i < 5; i++ {
			queue.Push(fmt.Sprintf("word-%d", i))
		}
		assert.Equal(t, []string{"word-2", "word-3", "word-4"}, queue.Words)
	})
}

func TestWordQueueRoundTrip(t *testing.T) {
	queue := NewWordQueue(uuid.New(), 30)
	queue.Push("museum")

	payload, err := json.Marshal(queue.ToRecord())
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(payload, &rec))

	decoded, ok := WordQueueFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, queue.UserID, decoded.UserID)
	assert.Equal(t, queue.Words, decoded.Words)
	assert.Equal(t, queue.GuaranteedUniqueCount, decoded.GuaranteedUniqueCount)
}
