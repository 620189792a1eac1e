package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/internal/repository/memstore"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

var errStoreDown = errors.New("connection refused")

// fixedRand always returns the same index, clamped to n.
type fixedRand int

func (r fixedRand) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

type fixture struct {
	store     *memstore.Store
	prefs     *service.PreferenceService
	catalog   *service.CatalogService
	ads       *service.AdService
	feedback  *service.FeedbackService
	blocklist *service.BlocklistService
	analytics *service.AnalyticsService
}

func newFixture(t *testing.T, rnd service.RandSource) *fixture {
	t.Helper()
	return newFixtureWith(t, memstore.New(), nil, rnd)
}

// newFixtureWith builds the services over store. A non-nil blocked
// overrides the blocklist store used by feedback escalation.
func newFixtureWith(t *testing.T, store *memstore.Store, blocked service.BlocklistStore, rnd service.RandSource) *fixture {
	t.Helper()
	log := zerolog.Nop()
	cache := service.NewCacheServiceWithClient(nil, log)

	empathy, err := service.NewEmpathyService()
	if err != nil {
		t.Fatalf("NewEmpathyService: %v", err)
	}
	if blocked == nil {
		blocked = store
	}

	f := &fixture{store: store}
	f.prefs = service.NewPreferenceService(store, log)
	f.catalog = service.NewCatalogService(store, store, cache, log)
	f.ads = service.NewAdService(store, store, f.prefs, f.catalog, empathy, service.NewTrustService(rnd), rnd, log)
	f.feedback = service.NewFeedbackService(store, blocked, f.prefs, f.catalog, log)
	f.blocklist = service.NewBlocklistService(store, f.catalog, cache, log)
	f.analytics = service.NewAnalyticsService(store)
	return f
}

func (f *fixture) addUser(t *testing.T, id, status string) {
	t.Helper()
	if err := f.store.UpsertUser(context.Background(), model.User{ID: id, Name: id, Status: status}); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) addAds(t *testing.T, ads ...model.Ad) {
	t.Helper()
	for _, ad := range ads {
		if err := f.store.UpsertAd(context.Background(), ad); err != nil {
			t.Fatal(err)
		}
	}
}

func (f *fixture) setPrefs(t *testing.T, userID string, u model.PreferencesUpdate) {
	t.Helper()
	if _, err := f.prefs.Set(context.Background(), userID, u); err != nil {
		t.Fatal(err)
	}
}

func boolPtr(b bool) *bool { return &b }

// failingBlocklist refuses per-user blocklist writes.
type failingBlocklist struct {
	*memstore.Store
}

func (failingBlocklist) AddUserBlocked(context.Context, string, string) error {
	return errStoreDown
}

// failingAds refuses catalog reads.
type failingAds struct {
	*memstore.Store
}

func (failingAds) ListAds(context.Context) ([]model.Ad, error) {
	return nil, errStoreDown
}
