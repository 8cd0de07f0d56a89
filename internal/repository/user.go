package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/SpotTheSpy/backend/internal/database"
	"github.com/SpotTheSpy/backend/internal/model"
)

// UserRepository is the relational user directory.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByExternalID(ctx context.Context, externalID int64) (*model.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.User, error)
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userRepo struct {
	db database.DBTX
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE id = $1
	`, id)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT * FROM users WHERE external_id = $1
	`, externalID)
	return HandleNotFound(&user, err)
}

func (r *userRepo) FindAll(ctx context.Context, limit, offset int) ([]model.User, error) {
	var users []model.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT * FROM users
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		INSERT INTO users (external_id, first_name, username, locale)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.ExternalID, params.FirstName, params.Username, params.Locale)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}
