package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SpotTheSpy/backend/internal/model"
)

// ActivePlayerRepository is the reverse index from user id to occupied
// game. Existence of an entry is the "already in a game" check.
type ActivePlayerRepository interface {
	Create(ctx context.Context, userID, gameID uuid.UUID) error
	Find(ctx context.Context, userID uuid.UUID) (*model.ActivePlayer, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID uuid.UUID) error
}

type activePlayerRepo struct {
	store *Store[*model.ActivePlayer]
}

func NewActivePlayerRepository(client *redis.Client, prefix string) ActivePlayerRepository {
	return &activePlayerRepo{
		store: NewStore(client, prefix, model.ActivePlayerFromRecord),
	}
}

func (r *activePlayerRepo) Create(ctx context.Context, userID, gameID uuid.UUID) error {
	return r.store.Set(ctx, model.NewActivePlayer(userID, gameID))
}

func (r *activePlayerRepo) Find(ctx context.Context, userID uuid.UUID) (*model.ActivePlayer, error) {
	return r.store.Get(ctx, userID.String())
}

func (r *activePlayerRepo) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.store.Exists(ctx, userID.String())
}

func (r *activePlayerRepo) Remove(ctx context.Context, userID uuid.UUID) error {
	return r.store.Remove(ctx, userID.String())
}

// soloActivePlayerRepo tracks solo-game occupancy in its own namespace.
// Entries expire with the same TTL as the solo game they point at.
type SoloActivePlayerRepository interface {
	Create(ctx context.Context, userID, gameID uuid.UUID, ttl time.Duration) error
	Find(ctx context.Context, userID uuid.UUID) (*model.SoloActivePlayer, error)
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID uuid.UUID) error
}

type soloActivePlayerRepo struct {
	store *Store[*model.SoloActivePlayer]
}

func NewSoloActivePlayerRepository(client *redis.Client, prefix string) SoloActivePlayerRepository {
	return &soloActivePlayerRepo{
		store: NewStore(client, prefix, model.SoloActivePlayerFromRecord),
	}
}

func (r *soloActivePlayerRepo) Create(ctx context.Context, userID, gameID uuid.UUID, ttl time.Duration) error {
	return r.store.SetTTL(ctx, model.NewSoloActivePlayer(userID, gameID), ttl)
}

func (r *soloActivePlayerRepo) Find(ctx context.Context, userID uuid.UUID) (*model.SoloActivePlayer, error) {
	return r.store.Get(ctx, userID.String())
}

func (r *soloActivePlayerRepo) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.store.Exists(ctx, userID.String())
}

func (r *soloActivePlayerRepo) Remove(ctx context.Context, userID uuid.UUID) error {
	return r.store.Remove(ctx, userID.String())
}
