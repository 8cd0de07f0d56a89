package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SpotTheSpy/backend/internal/model"
)

type GameRepository interface {
	Save(ctx context.Context, game *model.Game) error
	Find(ctx context.Context, gameID uuid.UUID) (*model.Game, error)
	FindAll(ctx context.Context, limit, offset int) ([]*model.Game, error)
	Exists(ctx context.Context, gameID uuid.UUID) (bool, error)
	Remove(ctx context.Context, gameID uuid.UUID) error
	// Update applies fn to the current game under an optimistic
	// concurrency check; ErrConflict signals a lost race.
	Update(ctx context.Context, gameID uuid.UUID, fn func(*model.Game) (*model.Game, error)) (*model.Game, error)
}

type gameRepo struct {
	store *Store[*model.Game]
}

func NewGameRepository(client *redis.Client, prefix string) GameRepository {
	return &gameRepo{
		store: NewStore(client, prefix, model.GameFromRecord),
	}
}

func (r *gameRepo) Save(ctx context.Context, game *model.Game) error {
	game.Version++
	return r.store.Set(ctx, game)
}

func (r *gameRepo) Find(ctx context.Context, gameID uuid.UUID) (*model.Game, error) {
	return r.store.Get(ctx, gameID.String())
}

func (r *gameRepo) FindAll(ctx context.Context, limit, offset int) ([]*model.Game, error) {
	return r.store.Scan(ctx, limit, offset)
}

func (r *gameRepo) Exists(ctx context.Context, gameID uuid.UUID) (bool, error) {
	return r.store.Exists(ctx, gameID.String())
}

func (r *gameRepo) Remove(ctx context.Context, gameID uuid.UUID) error {
	return r.store.Remove(ctx, gameID.String())
}

func (r *gameRepo) Update(ctx context.Context, gameID uuid.UUID, fn func(*model.Game) (*model.Game, error)) (*model.Game, error) {
	return r.store.Update(ctx, gameID.String(), func(game *model.Game) (*model.Game, error) {
		next, err := fn(game)
		if err != nil {
			return nil, err
		}
		next.Version++
		return next, nil
	})
}
