package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/pkg/hash"
)

// BlocklistService administers the global and per-user blocklists.
type BlocklistService struct {
	store   BlocklistStore
	catalog *CatalogService
	cache   *CacheService
	log     zerolog.Logger
}

func NewBlocklistService(store BlocklistStore, catalog *CatalogService, cache *CacheService, log zerolog.Logger) *BlocklistService {
	return &BlocklistService{
		store:   store,
		catalog: catalog,
		cache:   cache,
		log:     log.With().Str("component", "blocklist").Logger(),
	}
}

// BlockGlobally adds adTitle to the global blocklist. Calling it again for
// the same title is a no-op.
func (s *BlocklistService) BlockGlobally(ctx context.Context, adTitle string) error {
	adTitle = strings.TrimSpace(adTitle)
	if adTitle == "" {
		return fmt.Errorf("ad_title: %w", ErrMissingField)
	}
	if err := s.store.AddGlobalBlocked(ctx, adTitle); err != nil {
		return storeErr("add_global_blocked", err)
	}

	// Other instances are invalidated by the cache worker.
	if err := s.cache.InvalidateGlobalBlocklist(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache: invalidate blocklist error")
	}

	s.log.Info().Str("ad_title", adTitle).Msg("ad blocked globally")
	return nil
}

// BlockForUser adds adTitle to userID's blocklist, creating it if needed.
func (s *BlocklistService) BlockForUser(ctx context.Context, userID, adTitle string) error {
	userID = strings.TrimSpace(userID)
	adTitle = strings.TrimSpace(adTitle)
	if userID == "" || adTitle == "" {
		return fmt.Errorf("user_id and ad_title: %w", ErrMissingField)
	}
	if err := s.store.AddUserBlocked(ctx, userID, adTitle); err != nil {
		return storeErr("add_user_blocked", err)
	}
	s.log.Info().
		Str("user", hash.Short(userID)).
		Str("ad_title", adTitle).
		Msg("ad blocked for user")
	return nil
}

// GlobalTitles returns the global blocklist.
func (s *BlocklistService) GlobalTitles(ctx context.Context) ([]string, error) {
	return s.catalog.GlobalBlocked(ctx)
}

// UserTitles returns userID's blocklist.
func (s *BlocklistService) UserTitles(ctx context.Context, userID string) ([]string, error) {
	titles, err := s.store.ListUserBlocked(ctx, userID)
	if err != nil {
		return nil, storeErr("list_user_blocked", err)
	}
	if titles == nil {
		titles = []string{}
	}
	return titles, nil
}

// FilterBlocked drops ads whose title is in either blocklist, preserving order.
func FilterBlocked(ads []model.Ad, global, user []string) []model.Ad {
	blocked := make(map[string]struct{}, len(global)+len(user))
	for _, t := range global {
		blocked[t] = struct{}{}
	}
	for _, t := range user {
		blocked[t] = struct{}{}
	}

	out := make([]model.Ad, 0, len(ads))
	for _, ad := range ads {
		if _, ok := blocked[ad.Title]; ok {
			continue
		}
		out = append(out, ad)
	}
	return out
}
