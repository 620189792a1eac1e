package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

type AdRepo struct {
	pool *pgxpool.Pool
}

func NewAdRepo(pool *pgxpool.Pool) *AdRepo {
	return &AdRepo{pool: pool}
}

// ListAds returns the full catalog in insertion order.
func (r *AdRepo) ListAds(ctx context.Context) ([]model.Ad, error) {
	query := `
		SELECT title, category, target_audience, explanation
		FROM ads
		ORDER BY created_at, title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []model.Ad
	for rows.Next() {
		var ad model.Ad
		if err := rows.Scan(&ad.Title, &ad.Category, &ad.TargetAudience, &ad.Explanation); err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

// UpsertAd creates or replaces a catalog entry by title.
func (r *AdRepo) UpsertAd(ctx context.Context, ad model.Ad) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ads (title, category, target_audience, explanation)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (title) DO UPDATE
		SET category = EXCLUDED.category, target_audience = EXCLUDED.target_audience,
		    explanation = EXCLUDED.explanation`,
		ad.Title, ad.Category, ad.TargetAudience, ad.Explanation)
	return err
}
