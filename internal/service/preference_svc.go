package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/pkg/hash"
)

type PreferenceService struct {
	store PreferenceStore
	log   zerolog.Logger
}

func NewPreferenceService(store PreferenceStore, log zerolog.Logger) *PreferenceService {
	return &PreferenceService{store: store, log: log.With().Str("component", "preferences").Logger()}
}

// Get returns the stored preferences, or the all-true defaults.
func (s *PreferenceService) Get(ctx context.Context, userID string) (model.Preferences, error) {
	p, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		return model.Preferences{}, storeErr("get_preferences", err)
	}
	if p == nil {
		return model.DefaultPreferences(), nil
	}
	return *p, nil
}

// Set replaces the user's preferences with update merged over the defaults
// and returns the stored record.
func (s *PreferenceService) Set(ctx context.Context, userID string, update model.PreferencesUpdate) (model.Preferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return model.Preferences{}, fmt.Errorf("user_id: %w", ErrMissingField)
	}

	prefs := update.OverDefaults()
	if err := s.store.PutPreferences(ctx, userID, prefs); err != nil {
		return model.Preferences{}, storeErr("put_preferences", err)
	}

	s.log.Info().
		Str("user", hash.Short(userID)).
		Bool("emotion_filter", prefs.EmotionFilter).
		Bool("personalization", prefs.Personalization).
		Bool("explanations", prefs.Explanations).
		Bool("data_collection", prefs.DataCollection).
		Msg("preferences updated")

	return s.Get(ctx, userID)
}
