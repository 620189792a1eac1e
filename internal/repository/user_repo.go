package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// GetUser returns a single user by id, or nil if absent.
func (r *UserRepo) GetUser(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, status, age, location
		FROM users
		WHERE id = $1`

	var u model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Status, &u.Age, &u.Location)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertUser creates or replaces a user (seeding and admin data entry).
func (r *UserRepo) UpsertUser(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, status, age, location)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, status = EXCLUDED.status,
		    age = EXCLUDED.age, location = EXCLUDED.location`,
		u.ID, u.Name, u.Status, u.Age, u.Location)
	return err
}
