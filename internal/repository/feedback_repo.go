package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const feedbackColumns = "id, user_id, ad_title, feedback, emotion, created_at"

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

// FindFeedback returns the event for (userID, adTitle), or nil.
func (r *FeedbackRepo) FindFeedback(ctx context.Context, userID, adTitle string) (*model.FeedbackEvent, error) {
	query := `SELECT ` + feedbackColumns + `
		FROM feedback
		WHERE user_id = $1 AND ad_title = $2`

	ev, err := scanFeedback(r.pool.QueryRow(ctx, query, userID, adTitle))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// InsertFeedback relies on the unique (user_id, ad_title) index: a
// conflicting insert returns no row and reports inserted=false.
func (r *FeedbackRepo) InsertFeedback(ctx context.Context, ev model.FeedbackEvent) (bool, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (id, user_id, ad_title, feedback, emotion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, ad_title) DO NOTHING
		RETURNING id::text`,
		ev.ID.String(), ev.UserID, ev.AdTitle, string(ev.Feedback), ev.Emotion, ev.Timestamp,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FeedbackRepo) ListFeedbackForAd(ctx context.Context, adTitle string) ([]model.FeedbackEvent, error) {
	return r.ListFeedback(ctx, model.FeedbackFilter{AdTitle: adTitle})
}

func (r *FeedbackRepo) ListFeedbackForUser(ctx context.Context, userID string) ([]model.FeedbackEvent, error) {
	return r.ListFeedback(ctx, model.FeedbackFilter{UserID: userID})
}

// ListFeedback returns events matching filter, oldest first.
func (r *FeedbackRepo) ListFeedback(ctx context.Context, filter model.FeedbackFilter) ([]model.FeedbackEvent, error) {
	query, args, err := BuildFeedbackQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.FeedbackEvent
	for rows.Next() {
		ev, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

// BuildFeedbackQuery renders the listing query for filter. Pure, so it can
// be tested without a database.
func BuildFeedbackQuery(filter model.FeedbackFilter) (string, []any, error) {
	q := psql.Select(feedbackColumns).From("feedback")
	if filter.UserID != "" {
		q = q.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.AdTitle != "" {
		q = q.Where(sq.Eq{"ad_title": filter.AdTitle})
	}
	return q.OrderBy("created_at", "id").ToSql()
}

func scanFeedback(row pgx.Row) (*model.FeedbackEvent, error) {
	var ev model.FeedbackEvent
	var kind string
	if err := row.Scan(&ev.ID, &ev.UserID, &ev.AdTitle, &kind, &ev.Emotion, &ev.Timestamp); err != nil {
		return nil, err
	}
	ev.Feedback = model.FeedbackKind(kind)
	return &ev, nil
}
