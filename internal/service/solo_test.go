package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/SpotTheSpy/backend/internal/errors"
)

type soloFixture struct {
	service *SoloService
	games   *memSoloGames
	players *memSoloPlayers
	users   *memUsers
}

func newSoloFixture(t *testing.T) *soloFixture {
	t.Helper()

	f := &soloFixture{
		games:   newMemSoloGames(),
		players: newMemSoloPlayers(),
		users:   newMemUsers(),
	}
	f.service = NewSoloService(
		f.games,
		f.players,
		f.users,
		NewWordService(newMemWordQueues(), []string{"museum", "airport", "submarine"}, 2),
		3, 8,
		24*time.Hour,
	)
	return f
}

func TestSoloServiceHost(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a game with the spy seat in range", func(t *testing.T) {
		f := newSoloFixture(t)
		user := f.users.add("Alice", 1001)

		game, err := f.service.Host(ctx, user.ID, 5)
		require.NoError(t, err)

		assert.Equal(t, user.ID, game.UserID)
		assert.Equal(t, 5, game.PlayerAmount)
		assert.NotEmpty(t, game.SecretWord)
		assert.GreaterOrEqual(t, game.SpyIndex, 0)
		assert.Less(t, game.SpyIndex, 5)

		active, err := f.players.Exists(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("rejects player amounts outside the range", func(t *testing.T) {
		f := newSoloFixture(t)
		user := f.users.add("Alice", 1001)

		_, err := f.service.Host(ctx, user.ID, 2)
		assertCode(t, err, apperrors.ErrCodeInvalidPlayerAmount)
	})

	t.Run("rejects unknown users", func(t *testing.T) {
		f := newSoloFixture(t)
		_, err := f.service.Host(ctx, uuid.New(), 5)
		assertCode(t, err, apperrors.ErrCodeNotFound)
	})

	t.Run("rejects a user who already hosts a solo game", func(t *testing.T) {
		f := newSoloFixture(t)
		user := f.users.add("Alice", 1001)

		_, err := f.service.Host(ctx, user.ID, 5)
		require.NoError(t, err)

		_, err = f.service.Host(ctx, user.ID, 5)
		assertCode(t, err, apperrors.ErrCodeAlreadyInGame)
	})
}

func TestSoloServiceLookups(t *testing.T) {
	ctx := context.Background()

	t.Run("Get and GetByUser resolve the same game", func(t *testing.T) {
		f := newSoloFixture(t)
		user := f.users.add("Alice", 1001)

		game, err := f.service.Host(ctx, user.ID, 4)
		require.NoError(t, err)

		byID, err := f.service.Get(ctx, game.GameID)
		require.NoError(t, err)
		assert.Equal(t, game.GameID, byID.GameID)

		byUser, err := f.service.GetByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, game.GameID, byUser.GameID)
	})

	t.Run("absent game is not found", func(t *testing.T) {
		f := newSoloFixture(t)
		_, err := f.service.Get(ctx, uuid.New())
		assertCode(t, err, apperrors.ErrCodeNotFound)

		_, err = f.service.GetByUser(ctx, uuid.New())
		assertCode(t, err, apperrors.ErrCodeNotFound)
	})
}

func TestSoloServiceUnhost(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the game and frees the user", func(t *testing.T) {
		f := newSoloFixture(t)
		user := f.users.add("Alice", 1001)

		game, err := f.service.Host(ctx, user.ID, 4)
		require.NoError(t, err)

		require.NoError(t, f.service.Unhost(ctx, game.GameID))

		_, err = f.service.Get(ctx, game.GameID)
		assertCode(t, err, apperrors.ErrCodeNotFound)

		// Freed, so hosting again succeeds.
		_, err = f.service.Host(ctx, user.ID, 4)
		require.NoError(t, err)
	})

	t.Run("absent game is not found", func(t *testing.T) {
		f := newSoloFixture(t)
		assertCode(t, f.service.Unhost(ctx, uuid.New()), apperrors.ErrCodeNotFound)
	})
}

func TestSoloServiceRehost(t *testing.T) {
	ctx := context.Background()

	f := newSoloFixture(t)
	user := f.users.add("Alice", 1001)

	game, err := f.service.Host(ctx, user.ID, 6)
	require.NoError(t, err)

	rehosted, err := f.service.Rehost(ctx, game.GameID)
	require.NoError(t, err)

	assert.NotEqual(t, game.GameID, rehosted.GameID)
	assert.Equal(t, user.ID, rehosted.UserID)
	assert.Equal(t, 6, rehosted.PlayerAmount)
	assert.NotEqual(t, game.SecretWord, rehosted.SecretWord)
	assert.GreaterOrEqual(t, rehosted.SpyIndex, 0)
	assert.Less(t, rehosted.SpyIndex, 6)

	entry, err := f.players.Find(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, rehosted.GameID, entry.GameID)
}
