package service

import (
	"fmt"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

const (
	// Expectation scores for a status/audience match and mismatch.
	matchScore    = 0.8
	mismatchScore = 0.3

	goodMatchReason       = "Good match"
	personalizationOffMsg = "Personalization disabled"
)

// genericExplanations are always candidates alongside the ad's own text.
var genericExplanations = [...]string{
	"This ad matches users with similar interests in your area.",
	"Based on your browsing pattern, this might interest you.",
	"Others like you found this helpful during similar times.",
}

// TrustService predicts whether a served ad matches what the user expects
// and writes an explanation when it probably doesn't.
type TrustService struct {
	rnd RandSource
}

func NewTrustService(rnd RandSource) *TrustService {
	if rnd == nil {
		rnd = NewRandSource()
	}
	return &TrustService{rnd: rnd}
}

// Predict compares the user's status with the ad's target audience:
//
//	match    -> score 0.8, no explanation needed
//	mismatch -> score 0.3, explanation needed
func (s *TrustService) Predict(userStatus, targetAudience string) model.TrustPrediction {
	if userStatus == targetAudience {
		return model.TrustPrediction{
			ExpectationScore: model.Score(matchScore),
			Reason:           goodMatchReason,
		}
	}
	return model.TrustPrediction{
		ExpectationScore:  model.Score(mismatchScore),
		ExplanationNeeded: true,
		Reason:            fmt.Sprintf("User is %s, ad targets %s", userStatus, targetAudience),
	}
}

// Disabled is the prediction reported when personalization is off.
func (s *TrustService) Disabled() model.TrustPrediction {
	return model.TrustPrediction{
		ExpectationScore: model.DisabledScore(),
		Reason:           personalizationOffMsg,
	}
}

// Explain picks one explanation uniformly from the ad's own explanation
// (when present) and the generic templates. Never returns "".
func (s *TrustService) Explain(ad model.Ad) string {
	candidates := make([]string, 0, len(genericExplanations)+1)
	if ad.Explanation != "" {
		candidates = append(candidates, ad.Explanation)
	}
	candidates = append(candidates, genericExplanations[:]...)
	return candidates[s.rnd.IntN(len(candidates))]
}
