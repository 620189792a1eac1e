// Package memstore is an in-process implementation of the data-access
// contract, used for local development and tests.
package memstore

import (
	"context"
	"sync"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

var _ service.Store = (*Store)(nil)

type pairKey struct {
	userID  string
	adTitle string
}

// Store keeps every record in memory behind a single RWMutex. Lists are
// returned in insertion order.
type Store struct {
	mu sync.RWMutex

	users       map[string]model.User
	ads         []model.Ad
	adIndex     map[string]int
	global      []string
	globalSet   map[string]struct{}
	userBlocked map[string][]string
	userSet     map[pairKey]struct{}
	prefs       map[string]model.Preferences
	feedback    []model.FeedbackEvent
	feedbackSet map[pairKey]struct{}
}

func New() *Store {
	return &Store{
		users:       make(map[string]model.User),
		adIndex:     make(map[string]int),
		globalSet:   make(map[string]struct{}),
		userBlocked: make(map[string][]string),
		userSet:     make(map[pairKey]struct{}),
		prefs:       make(map[string]model.Preferences),
		feedbackSet: make(map[pairKey]struct{}),
	}
}

// UpsertUser creates or replaces a user.
func (s *Store) UpsertUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

// UpsertAd creates or replaces a catalog entry by title.
func (s *Store) UpsertAd(_ context.Context, ad model.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.adIndex[ad.Title]; ok {
		s.ads[i] = ad
		return nil
	}
	s.adIndex[ad.Title] = len(s.ads)
	s.ads = append(s.ads, ad)
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) ListAds(_ context.Context) ([]model.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Ad(nil), s.ads...), nil
}

func (s *Store) ListGlobalBlocked(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.global...), nil
}

func (s *Store) ListUserBlocked(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.userBlocked[userID]...), nil
}

func (s *Store) AddGlobalBlocked(_ context.Context, adTitle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.globalSet[adTitle]; ok {
		return nil
	}
	s.globalSet[adTitle] = struct{}{}
	s.global = append(s.global, adTitle)
	return nil
}

func (s *Store) AddUserBlocked(_ context.Context, userID, adTitle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{userID, adTitle}
	if _, ok := s.userSet[k]; ok {
		return nil
	}
	s.userSet[k] = struct{}{}
	s.userBlocked[userID] = append(s.userBlocked[userID], adTitle)
	return nil
}

func (s *Store) GetPreferences(_ context.Context, userID string) (*model.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) PutPreferences(_ context.Context, userID string, prefs model.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = prefs
	return nil
}

func (s *Store) FindFeedback(_ context.Context, userID, adTitle string) (*model.FeedbackEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.feedbackSet[pairKey{userID, adTitle}]; !ok {
		return nil, nil
	}
	for i := range s.feedback {
		if s.feedback[i].UserID == userID && s.feedback[i].AdTitle == adTitle {
			ev := s.feedback[i]
			return &ev, nil
		}
	}
	return nil, nil
}

// InsertFeedback checks and inserts under the write lock, so concurrent
// submissions for one pair store exactly one event.
func (s *Store) InsertFeedback(_ context.Context, ev model.FeedbackEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{ev.UserID, ev.AdTitle}
	if _, ok := s.feedbackSet[k]; ok {
		return false, nil
	}
	s.feedbackSet[k] = struct{}{}
	s.feedback = append(s.feedback, ev)
	return true, nil
}

func (s *Store) ListFeedbackForAd(ctx context.Context, adTitle string) ([]model.FeedbackEvent, error) {
	return s.ListFeedback(ctx, model.FeedbackFilter{AdTitle: adTitle})
}

func (s *Store) ListFeedbackForUser(ctx context.Context, userID string) ([]model.FeedbackEvent, error) {
	return s.ListFeedback(ctx, model.FeedbackFilter{UserID: userID})
}

func (s *Store) ListFeedback(_ context.Context, filter model.FeedbackFilter) ([]model.FeedbackEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.FeedbackEvent
	for _, ev := range s.feedback {
		if filter.UserID != "" && ev.UserID != filter.UserID {
			continue
		}
		if filter.AdTitle != "" && ev.AdTitle != filter.AdTitle {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

// CountFeedback returns the number of stored events for one pair.
func (s *Store) CountFeedback(userID, adTitle string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, ev := range s.feedback {
		if ev.UserID == userID && ev.AdTitle == adTitle {
			n++
		}
	}
	return n
}
