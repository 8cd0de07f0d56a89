package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SpotTheSpy/backend/internal/blob"
	"github.com/SpotTheSpy/backend/internal/model"
	"github.com/SpotTheSpy/backend/internal/repository"
)

// In-memory fakes backing the service tests. They mirror the store
// semantics that matter here: absent values come back as nil with no
// error, and stored games are isolated from caller mutations.

type memGames struct {
	mu    sync.Mutex
	games map[uuid.UUID]*model.Game
}

func newMemGames() *memGames {
	return &memGames{games: map[uuid.UUID]*model.Game{}}
}

func cloneGame(game *model.Game) *model.Game {
	if game == nil {
		return nil
	}
	clone := *game
	clone.Players = append([]model.Player(nil), game.Players...)
	return &clone
}

func (m *memGames) Save(_ context.Context, game *model.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	game.Version++
	m.games[game.GameID] = cloneGame(game)
	return nil
}

func (m *memGames) Find(_ context.Context, gameID uuid.UUID) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneGame(m.games[gameID]), nil
}

func (m *memGames) FindAll(_ context.Context, limit, offset int) ([]*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*model.Game
	for _, game := range m.games {
		all = append(all, cloneGame(game))
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memGames) Exists(_ context.Context, gameID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.games[gameID]
	return ok, nil
}

func (m *memGames) Remove(_ context.Context, gameID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, gameID)
	return nil
}

func (m *memGames) Update(_ context.Context, gameID uuid.UUID, fn func(*model.Game) (*model.Game, error)) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := fn(cloneGame(m.games[gameID]))
	if err != nil {
		return nil, err
	}
	next.Version++
	m.games[gameID] = cloneGame(next)
	return next, nil
}

type memPlayers struct {
	mu      sync.Mutex
	entries map[uuid.UUID]uuid.UUID
}

func newMemPlayers() *memPlayers {
	return &memPlayers{entries: map[uuid.UUID]uuid.UUID{}}
}

func (m *memPlayers) Create(_ context.Context, userID, gameID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID] = gameID
	return nil
}

func (m *memPlayers) Find(_ context.Context, userID uuid.UUID) (*model.ActivePlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gameID, ok := m.entries[userID]
	if !ok {
		return nil, nil
	}
	return model.NewActivePlayer(userID, gameID), nil
}

func (m *memPlayers) Exists(_ context.Context, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[userID]
	return ok, nil
}

func (m *memPlayers) Remove(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

func (m *memPlayers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type memSoloPlayers struct {
	memPlayers
}

func newMemSoloPlayers() *memSoloPlayers {
	return &memSoloPlayers{memPlayers{entries: map[uuid.UUID]uuid.UUID{}}}
}

func (m *memSoloPlayers) Create(ctx context.Context, userID, gameID uuid.UUID, _ time.Duration) error {
	return m.memPlayers.Create(ctx, userID, gameID)
}

func (m *memSoloPlayers) Find(ctx context.Context, userID uuid.UUID) (*model.SoloActivePlayer, error) {
	entry, err := m.memPlayers.Find(ctx, userID)
	if err != nil || entry == nil {
		return nil, err
	}
	return &model.SoloActivePlayer{ActivePlayer: *entry}, nil
}

type memSoloGames struct {
	mu    sync.Mutex
	games map[uuid.UUID]*model.SoloGame
}

func newMemSoloGames() *memSoloGames {
	return &memSoloGames{games: map[uuid.UUID]*model.SoloGame{}}
}

func (m *memSoloGames) Save(_ context.Context, game *model.SoloGame, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *game
	m.games[game.GameID] = &clone
	return nil
}

func (m *memSoloGames) Find(_ context.Context, gameID uuid.UUID) (*model.SoloGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	game, ok := m.games[gameID]
	if !ok {
		return nil, nil
	}
	clone := *game
	return &clone, nil
}

func (m *memSoloGames) FindAll(_ context.Context, limit, offset int) ([]*model.SoloGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*model.SoloGame
	for _, game := range m.games {
		clone := *game
		all = append(all, &clone)
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memSoloGames) Exists(_ context.Context, gameID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.games[gameID]
	return ok, nil
}

func (m *memSoloGames) Remove(_ context.Context, gameID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, gameID)
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uuid.UUID]*model.User{}}
}

func (m *memUsers) add(firstName string, externalID int64) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := &model.User{
		ID:         uuid.New(),
		ExternalID: externalID,
		FirstName:  firstName,
		CreatedAt:  time.Now(),
	}
	m.users[user.ID] = user
	return user
}

func (m *memUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memUsers) FindByExternalID(_ context.Context, externalID int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ExternalID == externalID {
			return user, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindAll(_ context.Context, limit, offset int) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.User
	for _, user := range m.users {
		all = append(all, *user)
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memUsers) Create(_ context.Context, params model.CreateUserParams) (*model.User, error) {
	return m.add(params.FirstName, params.ExternalID), nil
}

func (m *memUsers) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

type memWordQueues struct {
	mu     sync.Mutex
	queues map[uuid.UUID]*model.WordQueue
}

func newMemWordQueues() *memWordQueues {
	return &memWordQueues{queues: map[uuid.UUID]*model.WordQueue{}}
}

func (m *memWordQueues) Save(_ context.Context, queue *model.WordQueue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *queue
	clone.Words = append([]string(nil), queue.Words...)
	m.queues[queue.UserID] = &clone
	return nil
}

func (m *memWordQueues) Find(_ context.Context, userID uuid.UUID) (*model.WordQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	queue, ok := m.queues[userID]
	if !ok {
		return nil, nil
	}
	clone := *queue
	clone.Words = append([]string(nil), queue.Words...)
	return &clone, nil
}

func (m *memWordQueues) Remove(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.queues, userID)
	return nil
}

type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: map[string][]byte{}}
}

func (m *memBlobs) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key], nil
}

func (m *memBlobs) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memBlobs) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memBlobs) URL(key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("/v1/assets/%s", key), nil
}

var (
	_ blob.Store                            = (*memBlobs)(nil)
	_ repository.GameRepository             = (*memGames)(nil)
	_ repository.ActivePlayerRepository     = (*memPlayers)(nil)
	_ repository.SoloActivePlayerRepository = (*memSoloPlayers)(nil)
	_ repository.SoloGameRepository         = (*memSoloGames)(nil)
	_ repository.UserRepository             = (*memUsers)(nil)
	_ repository.WordQueueRepository        = (*memWordQueues)(nil)
)
