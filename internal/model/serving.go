package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// VulnerabilityLevel is the coarse susceptibility class derived from a user's status.
type VulnerabilityLevel string

const (
	VulnerabilityLow  VulnerabilityLevel = "low"
	VulnerabilityHigh VulnerabilityLevel = "high"
)

// VulnerabilityAssessment is recomputed per request and never persisted.
type VulnerabilityAssessment struct {
	Level    VulnerabilityLevel `yaml:"level"`
	Score    float64            `yaml:"score"`
	Triggers []string           `yaml:"triggers"`
}

// HasTrigger reports whether category is one of the assessment's triggers.
func (v VulnerabilityAssessment) HasTrigger(category string) bool {
	for _, t := range v.Triggers {
		if t == category {
			return true
		}
	}
	return false
}

// disabledScore is the wire form of an expectation score when
// personalization is off.
const disabledScore = "N/A"

// ExpectationScore is either a numeric score or the disabled marker.
type ExpectationScore struct {
	Value    float64
	Disabled bool
}

// Score returns an enabled expectation score.
func Score(v float64) ExpectationScore {
	return ExpectationScore{Value: v}
}

// DisabledScore returns the marker used when personalization is off.
func DisabledScore() ExpectationScore {
	return ExpectationScore{Disabled: true}
}

func (s ExpectationScore) MarshalJSON() ([]byte, error) {
	if s.Disabled {
		return json.Marshal(disabledScore)
	}
	return json.Marshal(s.Value)
}

func (s *ExpectationScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str != disabledScore {
			return fmt.Errorf("expectation score: unexpected string %q", str)
		}
		*s = DisabledScore()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Score(v)
	return nil
}

// TrustPrediction is the trust predictor's verdict for one (user, ad) pair.
type TrustPrediction struct {
	ExpectationScore  ExpectationScore
	ExplanationNeeded bool
	Reason            string
}

// EmpathyAnalysis summarizes the vulnerability stage of a serving decision.
type EmpathyAnalysis struct {
	VulnerabilityLevel VulnerabilityLevel `json:"vulnerability_level"`
	VulnerabilityScore float64            `json:"vulnerability_score"`
	FilteredByEmotion  bool               `json:"filtered_by_emotion"`
}

// TrustAnalysis summarizes the trust stage of a serving decision.
type TrustAnalysis struct {
	ExpectationScore ExpectationScore `json:"expectation_score"`
	Reason           string           `json:"reason"`
}

// AdResponse is the API response for GET /ads/:userId.
type AdResponse struct {
	Ad                Ad              `json:"ad"`
	ExplanationNeeded bool            `json:"explanation_needed"`
	Explanation       string          `json:"explanation"`
	EmpathyAnalysis   EmpathyAnalysis `json:"empathy_analysis"`
	TrustAnalysis     TrustAnalysis   `json:"trust_analysis"`
}
