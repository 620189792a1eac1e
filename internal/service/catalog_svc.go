package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

// CatalogService reads the ad catalog and the global blocklist through the
// cache. Cache failures fall back to the store and are only logged.
type CatalogService struct {
	ads     AdStore
	blocked BlocklistStore
	cache   *CacheService
	log     zerolog.Logger
}

func NewCatalogService(ads AdStore, blocked BlocklistStore, cache *CacheService, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		ads:     ads,
		blocked: blocked,
		cache:   cache,
		log:     log.With().Str("component", "catalog").Logger(),
	}
}

// Ads returns the full catalog.
func (s *CatalogService) Ads(ctx context.Context) ([]model.Ad, error) {
	var cached []model.Ad
	found, err := s.cache.GetCatalog(ctx, &cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache: catalog get error")
	} else if found {
		return cached, nil
	}

	gen := s.cache.CatalogGeneration()
	ads, err := s.ads.ListAds(ctx)
	if err != nil {
		return nil, storeErr("list_ads", err)
	}
	if ads == nil {
		ads = []model.Ad{}
	}

	if err := s.cache.SetCatalog(ctx, gen, ads); err != nil {
		s.log.Warn().Err(err).Msg("cache: catalog set error")
	}
	return ads, nil
}

// FindAd returns the catalog entry titled title, or nil.
func (s *CatalogService) FindAd(ctx context.Context, title string) (*model.Ad, error) {
	ads, err := s.Ads(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ads {
		if ads[i].Title == title {
			return &ads[i], nil
		}
	}
	return nil, nil
}

// GlobalBlocked returns the titles blocked for every user.
func (s *CatalogService) GlobalBlocked(ctx context.Context) ([]string, error) {
	var cached []string
	found, err := s.cache.GetGlobalBlocklist(ctx, &cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache: blocklist get error")
	} else if found {
		return cached, nil
	}

	gen := s.cache.GlobalBlocklistGeneration()
	titles, err := s.blocked.ListGlobalBlocked(ctx)
	if err != nil {
		return nil, storeErr("list_global_blocked", err)
	}
	if titles == nil {
		titles = []string{}
	}

	if err := s.cache.SetGlobalBlocklist(ctx, gen, titles); err != nil {
		s.log.Warn().Err(err).Msg("cache: blocklist set error")
	}
	return titles, nil
}

// Refresh reloads the catalog from the store into the cache.
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	gen := s.cache.CatalogGeneration()
	ads, err := s.ads.ListAds(ctx)
	if err != nil {
		return 0, storeErr("list_ads", err)
	}
	if ads == nil {
		ads = []model.Ad{}
	}
	if err := s.cache.SetCatalog(ctx, gen, ads); err != nil {
		return 0, err
	}
	return len(ads), nil
}
