package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SpotTheSpy/backend/internal/model"
)

type SoloGameRepository interface {
	Save(ctx context.Context, game *model.SoloGame, ttl time.Duration) error
	Find(ctx context.Context, gameID uuid.UUID) (*model.SoloGame, error)
	FindAll(ctx context.Context, limit, offset int) ([]*model.SoloGame, error)
	Exists(ctx context.Context, gameID uuid.UUID) (bool, error)
	Remove(ctx context.Context, gameID uuid.UUID) error
}

type soloGameRepo struct {
	store *Store[*model.SoloGame]
}

func NewSoloGameRepository(client *redis.Client, prefix string) SoloGameRepository {
	return &soloGameRepo{
		store: NewStore(client, prefix, model.SoloGameFromRecord),
	}
}

// Save persists with a TTL so abandoned solo games self-clean; ttl 0 means
// no expiration.
func (r *soloGameRepo) Save(ctx context.Context, game *model.SoloGame, ttl time.Duration) error {
	return r.store.SetTTL(ctx, game, ttl)
}

func (r *soloGameRepo) Find(ctx context.Context, gameID uuid.UUID) (*model.SoloGame, error) {
	return r.store.Get(ctx, gameID.String())
}

func (r *soloGameRepo) FindAll(ctx context.Context, limit, offset int) ([]*model.SoloGame, error) {
	return r.store.Scan(ctx, limit, offset)
}

func (r *soloGameRepo) Exists(ctx context.Context, gameID uuid.UUID) (bool, error) {
	return r.store.Exists(ctx, gameID.String())
}

func (r *soloGameRepo) Remove(ctx context.Context, gameID uuid.UUID) error {
	return r.store.Remove(ctx, gameID.String())
}
