package service

import (
	"context"
	"math"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

type AnalyticsService struct {
	store FeedbackStore
}

func NewAnalyticsService(store FeedbackStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// ForUser summarizes every feedback event userID has submitted.
func (s *AnalyticsService) ForUser(ctx context.Context, userID string) (*model.UserAnalytics, error) {
	events, err := s.store.ListFeedbackForUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list_feedback_for_user", err)
	}
	a := ComputeUserAnalytics(events)
	return &a, nil
}

// ComputeUserAnalytics is a pure helper:
//
//	engagement_rate = round(positive / total * 100, 2), or 0 with no events
func ComputeUserAnalytics(events []model.FeedbackEvent) model.UserAnalytics {
	stats := ComputeFeedbackStats(events)
	a := model.UserAnalytics{
		TotalInteractions: len(events),
		PositiveFeedback:  stats.Up,
		NegativeFeedback:  stats.Down,
		BlockedAds:        stats.Block,
	}
	if a.TotalInteractions > 0 {
		rate := float64(a.PositiveFeedback) / float64(a.TotalInteractions) * 100
		a.EngagementRate = math.Round(rate*100) / 100
	}
	return a
}
