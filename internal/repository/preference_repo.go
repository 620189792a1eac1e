package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

type PreferenceRepo struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepo(pool *pgxpool.Pool) *PreferenceRepo {
	return &PreferenceRepo{pool: pool}
}

// GetPreferences returns the stored record, or nil if the user has none.
func (r *PreferenceRepo) GetPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	query := `
		SELECT emotion_filter, personalization, explanations, data_collection
		FROM user_preferences
		WHERE user_id = $1`

	var p model.Preferences
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.EmotionFilter, &p.Personalization, &p.Explanations, &p.DataCollection,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PutPreferences replaces the user's record.
func (r *PreferenceRepo) PutPreferences(ctx context.Context, userID string, p model.Preferences) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_preferences (user_id, emotion_filter, personalization, explanations, data_collection)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET emotion_filter = EXCLUDED.emotion_filter,
		    personalization = EXCLUDED.personalization,
		    explanations = EXCLUDED.explanations,
		    data_collection = EXCLUDED.data_collection,
		    updated_at = NOW()`,
		userID, p.EmotionFilter, p.Personalization, p.Explanations, p.DataCollection)
	return err
}
