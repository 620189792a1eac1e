package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/pkg/hash"
)

const (
	msgRecorded    = "Feedback recorded successfully."
	msgAdBlocked   = " Ad blocked for future."
	msgDuplicate   = "Feedback already submitted."
	msgOptedOut    = "User has opted out of data collection. Feedback not saved."
	warnEscalation = "Feedback saved, but the ad could not be added to your blocklist."
)

// FeedbackService records feedback events. It enforces one event per
// (user, ad) pair, escalates "block" feedback into the user's blocklist and
// reports per-ad aggregate counts.
type FeedbackService struct {
	store   FeedbackStore
	blocked BlocklistStore
	prefs   *PreferenceService
	catalog *CatalogService
	now     func() time.Time
	log     zerolog.Logger
}

func NewFeedbackService(store FeedbackStore, blocked BlocklistStore, prefs *PreferenceService, catalog *CatalogService, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		store:   store,
		blocked: blocked,
		prefs:   prefs,
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log.With().Str("component", "feedback").Logger(),
	}
}

// Submit processes a feedback submission.
func (s *FeedbackService) Submit(ctx context.Context, req model.FeedbackRequest) (*model.FeedbackResult, error) {
	userID := strings.TrimSpace(req.UserID)
	adTitle := strings.TrimSpace(req.AdTitle)
	kind := model.FeedbackKind(strings.TrimSpace(req.Feedback))
	if userID == "" || adTitle == "" || kind == "" {
		return nil, fmt.Errorf("user_id, ad_title and feedback: %w", ErrMissingField)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q (want up, down or block)", ErrInvalidFeedback, kind)
	}

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !prefs.DataCollection {
		return &model.FeedbackResult{Status: model.FeedbackOptedOut, Message: msgOptedOut}, nil
	}

	emotion := strings.TrimSpace(req.Emotion)
	if emotion == "" {
		emotion, err = s.resolveEmotion(ctx, adTitle)
		if err != nil {
			return nil, err
		}
	}

	existing, err := s.store.FindFeedback(ctx, userID, adTitle)
	if err != nil {
		return nil, storeErr("find_feedback", err)
	}
	if existing != nil {
		return s.duplicate(ctx, adTitle)
	}

	ev := model.FeedbackEvent{
		ID:        uuid.New(),
		UserID:    userID,
		AdTitle:   adTitle,
		Feedback:  kind,
		Emotion:   emotion,
		Timestamp: s.now(),
	}
	inserted, err := s.store.InsertFeedback(ctx, ev)
	if err != nil {
		return nil, storeErr("insert_feedback", err)
	}
	if !inserted {
		// A concurrent submission for the same pair won the insert.
		return s.duplicate(ctx, adTitle)
	}

	logEvt := s.log.Info().
		Str("user", hash.Short(userID)).
		Str("ad_title", adTitle).
		Str("feedback", string(kind))

	result := &model.FeedbackResult{Status: model.FeedbackSuccess, Message: msgRecorded}
	if kind == model.FeedbackBlock {
		if err := s.blocked.AddUserBlocked(ctx, userID, adTitle); err != nil {
			s.log.Warn().Err(err).
				Str("user", hash.Short(userID)).
				Str("ad_title", adTitle).
				Msg("block escalation failed; feedback kept")
			result.Warning = warnEscalation
		} else {
			result.Blocked = true
			result.Message += msgAdBlocked
		}
	}
	logEvt.Bool("blocked", result.Blocked).Msg("feedback saved")

	stats, err := s.Stats(ctx, adTitle)
	if err != nil {
		return nil, err
	}
	result.Stats = stats
	return result, nil
}

func (s *FeedbackService) duplicate(ctx context.Context, adTitle string) (*model.FeedbackResult, error) {
	stats, err := s.Stats(ctx, adTitle)
	if err != nil {
		return nil, err
	}
	return &model.FeedbackResult{
		Status:  model.FeedbackDuplicate,
		Message: msgDuplicate,
		Stats:   stats,
	}, nil
}

// resolveEmotion falls back to the ad's target audience, or "neutral" for
// unknown ads.
func (s *FeedbackService) resolveEmotion(ctx context.Context, adTitle string) (string, error) {
	ad, err := s.catalog.FindAd(ctx, adTitle)
	if err != nil {
		return "", err
	}
	if ad == nil {
		return defaultStatus, nil
	}
	return targetAudience(*ad), nil
}

// Stats counts feedback kinds across all users' events for adTitle.
func (s *FeedbackService) Stats(ctx context.Context, adTitle string) (*model.FeedbackStats, error) {
	events, err := s.store.ListFeedbackForAd(ctx, adTitle)
	if err != nil {
		return nil, storeErr("list_feedback_for_ad", err)
	}
	stats := ComputeFeedbackStats(events)
	return &stats, nil
}

// List returns stored feedback events matching filter.
func (s *FeedbackService) List(ctx context.Context, filter model.FeedbackFilter) ([]model.FeedbackEvent, error) {
	events, err := s.store.ListFeedback(ctx, filter)
	if err != nil {
		return nil, storeErr("list_feedback", err)
	}
	if events == nil {
		events = []model.FeedbackEvent{}
	}
	return events, nil
}

// ComputeFeedbackStats is a pure helper counting kinds in events.
func ComputeFeedbackStats(events []model.FeedbackEvent) model.FeedbackStats {
	var stats model.FeedbackStats
	for _, ev := range events {
		switch ev.Feedback {
		case model.FeedbackUp:
			stats.Up++
		case model.FeedbackDown:
			stats.Down++
		case model.FeedbackBlock:
			stats.Block++
		}
	}
	return stats
}
