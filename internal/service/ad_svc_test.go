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

var scenarioCatalog = []model.Ad{
	{Title: "Watch", Category: "luxury"},
	{Title: "Phone", Category: "tech"},
}

func TestServe_UserNotFound(t *testing.T) {
	f := newFixture(t, fixedRand(0))
	f.addAds(t, scenarioCatalog...)

	_, err := f.ads.Serve(context.Background(), "ghost")
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

// Stressed user, default preferences: the luxury ad is filtered out.
func TestServe_EmotionFilterRemovesTrigger(t *testing.T) {
	for i := 0; i < 2; i++ {
		f := newFixture(t, fixedRand(i))
		f.addUser(t, "u1", "stressed")
		f.addAds(t, scenarioCatalog...)

		resp, err := f.ads.Serve(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
		if resp.Ad.Title != "Phone" {
			t.Errorf("rand %d: selected %q, want Phone", i, resp.Ad.Title)
		}
		ea := resp.EmpathyAnalysis
		if ea.VulnerabilityLevel != model.VulnerabilityHigh || ea.VulnerabilityScore != 0.8 || !ea.FilteredByEmotion {
			t.Errorf("empathy analysis = %+v, want high/0.8/filtered", ea)
		}
	}
}

// With the emotion filter off both ads stay candidates.
func TestServe_EmotionFilterDisabled(t *testing.T) {
	for i, want := range []string{"Watch", "Phone"} {
		f := newFixture(t, fixedRand(i))
		f.addUser(t, "u1", "stressed")
		f.addAds(t, scenarioCatalog...)
		f.setPrefs(t, "u1", model.PreferencesUpdate{EmotionFilter: boolPtr(false)})

		resp, err := f.ads.Serve(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
		if resp.Ad.Title != want {
			t.Errorf("rand %d: selected %q, want %q", i, resp.Ad.Title, want)
		}
		if resp.EmpathyAnalysis.FilteredByEmotion {
			t.Error("filtered_by_emotion = true with the filter disabled")
		}
	}
}

func TestServe_GoodMatch(t *testing.T) {
	f := newFixture(t, fixedRand(0))
	f.addUser(t, "u1", "neutral")
	f.addAds(t, model.Ad{Title: "Planner", Category: "productivity", TargetAudience: "neutral"})

	resp, err := f.ads.Serve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	ta := resp.TrustAnalysis
	if ta.Reason != "Good match" || ta.ExpectationScore != model.Score(0.8) {
		t.Errorf("trust analysis = %+v, want Good match/0.8", ta)
	}
	if resp.ExplanationNeeded || resp.Explanation != "" {
		t.Errorf("explanation = (%v, %q), want none", resp.ExplanationNeeded, resp.Explanation)
	}
}

func TestServe_MismatchExplains(t *testing.T) {
	f := newFixture(t, fixedRand(0))
	f.addUser(t, "u1", "happy")
	f.addAds(t, model.Ad{Title: "Loan", Category: "finance", TargetAudience: "stressed", Explanation: "Own text."})

	resp, err := f.ads.Serve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if !resp.ExplanationNeeded {
		t.Error("explanation_needed = false on a mismatch")
	}
	if resp.Explanation != "Own text." {
		t.Errorf("explanation = %q, want the ad's own text", resp.Explanation)
	}
	if resp.TrustAnalysis.ExpectationScore != model.Score(0.3) {
		t.Errorf("score = %+v, want 0.3", resp.TrustAnalysis.ExpectationScore)
	}
	if resp.TrustAnalysis.Reason != "User is happy, ad targets stressed" {
		t.Errorf("reason = %q", resp.TrustAnalysis.Reason)
	}
}

func TestServe_PreferenceGates(t *testing.T) {
	tests := []struct {
		name         string
		update       model.PreferencesUpdate
		wantDisabled bool
		wantNeeded   bool
		wantText     bool
	}{
		{"all on", model.PreferencesUpdate{}, false, true, true},
		{"explanations off", model.PreferencesUpdate{Explanations: boolPtr(false)}, false, false, false},
		{"personalization off", model.PreferencesUpdate{Personalization: boolPtr(false)}, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, fixedRand(0))
			f.addUser(t, "u1", "happy")
			f.addAds(t, model.Ad{Title: "Loan", TargetAudience: "stressed"})
			f.setPrefs(t, "u1", tt.update)

			resp, err := f.ads.Serve(context.Background(), "u1")
			if err != nil {
				t.Fatalf("Serve: %v", err)
			}
			if resp.TrustAnalysis.ExpectationScore.Disabled != tt.wantDisabled {
				t.Errorf("score disabled = %v, want %v", resp.TrustAnalysis.ExpectationScore.Disabled, tt.wantDisabled)
			}
			if tt.wantDisabled && resp.TrustAnalysis.Reason != "Personalization disabled" {
				t.Errorf("reason = %q", resp.TrustAnalysis.Reason)
			}
			if resp.ExplanationNeeded != tt.wantNeeded {
				t.Errorf("explanation_needed = %v, want %v", resp.ExplanationNeeded, tt.wantNeeded)
			}
			if (resp.Explanation != "") != tt.wantText {
				t.Errorf("explanation = %q, want text: %v", resp.Explanation, tt.wantText)
			}
		})
	}
}

func TestServe_BlocklistsApply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixedRand(0))
	f.addUser(t, "u1", "happy")
	f.addAds(t, model.Ad{Title: "A"}, model.Ad{Title: "B"}, model.Ad{Title: "C"})

	if err := f.blocklist.BlockGlobally(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if err := f.blocklist.BlockForUser(ctx, "u1", "B"); err != nil {
		t.Fatal(err)
	}

	resp, err := f.ads.Serve(ctx, "u1")
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if resp.Ad.Title != "C" {
		t.Errorf("selected %q, want C", resp.Ad.Title)
	}

	if err := f.blocklist.BlockForUser(ctx, "u1", "C"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ads.Serve(ctx, "u1"); !errors.Is(err, service.ErrNoSuitableAds) {
		t.Errorf("err = %v, want ErrNoSuitableAds", err)
	}
}

func TestServe_EmptyCatalog(t *testing.T) {
	f := newFixture(t, fixedRand(0))
	f.addUser(t, "u1", "happy")

	if _, err := f.ads.Serve(context.Background(), "u1"); !errors.Is(err, service.ErrNoSuitableAds) {
		t.Errorf("err = %v, want ErrNoSuitableAds", err)
	}
}

func TestServe_MissingStatusIsNeutral(t *testing.T) {
	f := newFixture(t, fixedRand(0))
	f.addUser(t, "u1", "")
	f.addAds(t, model.Ad{Title: "Plain"})

	resp, err := f.ads.Serve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if resp.EmpathyAnalysis.VulnerabilityLevel != model.VulnerabilityLow {
		t.Errorf("level = %s, want low", resp.EmpathyAnalysis.VulnerabilityLevel)
	}
	if resp.TrustAnalysis.Reason != "Good match" {
		t.Errorf("reason = %q, want Good match for neutral/neutral", resp.TrustAnalysis.Reason)
	}
}

func TestServe_UpstreamReadFailure(t *testing.T) {
	store := memstore.New()
	if err := store.UpsertUser(context.Background(), model.User{ID: "u1", Status: "happy"}); err != nil {
		t.Fatal(err)
	}
	broken := failingAds{store}

	log := zerolog.Nop()
	empathy, err := service.NewEmpathyService()
	if err != nil {
		t.Fatal(err)
	}
	prefs := service.NewPreferenceService(store, log)
	catalog := service.NewCatalogService(broken, store, service.NewCacheServiceWithClient(nil, log), log)
	ads := service.NewAdService(store, store, prefs, catalog, empathy, service.NewTrustService(fixedRand(0)), fixedRand(0), log)

	_, err = ads.Serve(context.Background(), "u1")
	var storeErr *service.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("err = %v, want *StoreError", err)
	}
	if storeErr.Op != "list_ads" || !errors.Is(err, errStoreDown) {
		t.Errorf("StoreError = %+v", storeErr)
	}
}
