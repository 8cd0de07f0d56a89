package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SpotTheSpy/backend/internal/model"
)

type WordQueueRepository interface {
	Save(ctx context.Context, queue *model.WordQueue) error
	Find(ctx context.Context, userID uuid.UUID) (*model.WordQueue, error)
	Remove(ctx context.Context, userID uuid.UUID) error
}

type wordQueueRepo struct {
	store *Store[*model.WordQueue]
}

func NewWordQueueRepository(client *redis.Client, prefix string) WordQueueRepository {
	return &wordQueueRepo{
		store: NewStore(client, prefix, model.WordQueueFromRecord),
	}
}

func (r *wordQueueRepo) Save(ctx context.Context, queue *model.WordQueue) error {
	return r.store.Set(ctx, queue)
}

func (r *wordQueueRepo) Find(ctx context.Context, userID uuid.UUID) (*model.WordQueue, error) {
	return r.store.Get(ctx, userID.String())
}

func (r *wordQueueRepo) Remove(ctx context.Context, userID uuid.UUID) error {
	return r.store.Remove(ctx, userID.String())
}
