package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/pkg/hash"
)

// defaultStatus stands in for a missing user status or ad target audience.
const defaultStatus = "neutral"

// AdService runs the serving pipeline:
//
//	user -> vulnerability -> [emotion filter] -> blocklist filter ->
//	select -> [trust prediction] -> [explanation]
//
// Bracketed stages are gated by the user's preferences.
type AdService struct {
	users   UserStore
	blocked BlocklistStore
	prefs   *PreferenceService
	catalog *CatalogService
	empathy *EmpathyService
	trust   *TrustService
	rnd     RandSource
	log     zerolog.Logger
}

func NewAdService(
	users UserStore,
	blocked BlocklistStore,
	prefs *PreferenceService,
	catalog *CatalogService,
	empathy *EmpathyService,
	trust *TrustService,
	rnd RandSource,
	log zerolog.Logger,
) *AdService {
	if rnd == nil {
		rnd = NewRandSource()
	}
	return &AdService{
		users:   users,
		blocked: blocked,
		prefs:   prefs,
		catalog: catalog,
		empathy: empathy,
		trust:   trust,
		rnd:     rnd,
		log:     log.With().Str("component", "ads").Logger(),
	}
}

// Serve selects one ad for userID. It returns ErrUserNotFound when the user
// is absent and ErrNoSuitableAds when filtering leaves no candidates.
func (s *AdService) Serve(ctx context.Context, userID string) (*model.AdResponse, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, storeErr("get_user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var (
		ads         []model.Ad
		global      []string
		userBlocked []string
		prefs       model.Preferences
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ads, err = s.catalog.Ads(gctx)
		return err
	})
	g.Go(func() (err error) {
		global, err = s.catalog.GlobalBlocked(gctx)
		return err
	})
	g.Go(func() error {
		titles, err := s.blocked.ListUserBlocked(gctx, userID)
		userBlocked = titles
		return storeErr("list_user_blocked", err)
	})
	g.Go(func() (err error) {
		prefs, err = s.prefs.Get(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	status := user.Status
	if status == "" {
		status = defaultStatus
	}
	vuln := s.empathy.Assess(status)

	candidates := ads
	if prefs.EmotionFilter {
		candidates = s.empathy.FilterByEmotion(candidates, vuln)
	}
	candidates = FilterBlocked(candidates, global, userBlocked)

	selected, err := SelectAd(candidates, s.rnd)
	if err != nil {
		s.log.Info().
			Str("user", hash.Short(userID)).
			Int("catalog", len(ads)).
			Msg("no suitable ads")
		return nil, err
	}

	prediction := s.trust.Disabled()
	if prefs.Personalization {
		prediction = s.trust.Predict(status, targetAudience(selected))
	}

	var explanation string
	if prefs.Personalization && prefs.Explanations && prediction.ExplanationNeeded {
		explanation = s.trust.Explain(selected)
	}

	return &model.AdResponse{
		Ad:                selected,
		ExplanationNeeded: prefs.Explanations && prediction.ExplanationNeeded,
		Explanation:       explanation,
		EmpathyAnalysis: model.EmpathyAnalysis{
			VulnerabilityLevel: vuln.Level,
			VulnerabilityScore: vuln.Score,
			FilteredByEmotion:  prefs.EmotionFilter && vuln.Level == model.VulnerabilityHigh,
		},
		TrustAnalysis: model.TrustAnalysis{
			ExpectationScore: prediction.ExpectationScore,
			Reason:           prediction.Reason,
		},
	}, nil
}

// SelectAd picks one candidate uniformly at random.
func SelectAd(candidates []model.Ad, rnd RandSource) (model.Ad, error) {
	if len(candidates) == 0 {
		return model.Ad{}, ErrNoSuitableAds
	}
	return candidates[rnd.IntN(len(candidates))], nil
}

func targetAudience(ad model.Ad) string {
	if ad.TargetAudience == "" {
		return defaultStatus
	}
	return ad.TargetAudience
}
