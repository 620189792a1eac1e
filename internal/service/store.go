package service

import (
	"context"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

// Lookups returning a pointer use (nil, nil) for "absent".

type UserStore interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type AdStore interface {
	ListAds(ctx context.Context) ([]model.Ad, error)
}

type BlocklistStore interface {
	ListGlobalBlocked(ctx context.Context) ([]string, error)
	ListUserBlocked(ctx context.Context, userID string) ([]string, error)
	// Adds are idempotent.
	AddGlobalBlocked(ctx context.Context, adTitle string) error
	AddUserBlocked(ctx context.Context, userID, adTitle string) error
}

type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	PutPreferences(ctx context.Context, userID string, prefs model.Preferences) error
}

type FeedbackStore interface {
	FindFeedback(ctx context.Context, userID, adTitle string) (*model.FeedbackEvent, error)
	// InsertFeedback stores ev unless an event for the same (user, ad) pair
	// exists. The check and the insert are atomic; inserted is false on conflict.
	InsertFeedback(ctx context.Context, ev model.FeedbackEvent) (inserted bool, err error)
	ListFeedbackForAd(ctx context.Context, adTitle string) ([]model.FeedbackEvent, error)
	ListFeedbackForUser(ctx context.Context, userID string) ([]model.FeedbackEvent, error)
	ListFeedback(ctx context.Context, filter model.FeedbackFilter) ([]model.FeedbackEvent, error)
}

// Store is the full data-access contract consumed by the services.
type Store interface {
	UserStore
	AdStore
	BlocklistStore
	PreferenceStore
	FeedbackStore
}
