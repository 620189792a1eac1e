package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BlocklistRepo struct {
	pool *pgxpool.Pool
}

func NewBlocklistRepo(pool *pgxpool.Pool) *BlocklistRepo {
	return &BlocklistRepo{pool: pool}
}

// ListGlobalBlocked returns the titles blocked for every user.
func (r *BlocklistRepo) ListGlobalBlocked(ctx context.Context) ([]string, error) {
	return r.titles(ctx, `SELECT ad_title FROM blocked_ads ORDER BY blocked_at, ad_title`)
}

// ListUserBlocked returns the titles userID has blocked.
func (r *BlocklistRepo) ListUserBlocked(ctx context.Context, userID string) ([]string, error) {
	return r.titles(ctx, `
		SELECT ad_title FROM user_blocked_ads
		WHERE user_id = $1
		ORDER BY blocked_at, ad_title`, userID)
}

// AddGlobalBlocked blocks adTitle for everyone. The statement trigger on
// blocked_ads notifies catalog_changes.
func (r *BlocklistRepo) AddGlobalBlocked(ctx context.Context, adTitle string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO blocked_ads (ad_title) VALUES ($1)
		ON CONFLICT (ad_title) DO NOTHING`, adTitle)
	return err
}

// AddUserBlocked blocks adTitle for userID.
func (r *BlocklistRepo) AddUserBlocked(ctx context.Context, userID, adTitle string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_blocked_ads (user_id, ad_title) VALUES ($1, $2)
		ON CONFLICT (user_id, ad_title) DO NOTHING`, userID, adTitle)
	return err
}

func (r *BlocklistRepo) titles(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}
