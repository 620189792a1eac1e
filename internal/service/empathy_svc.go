package service

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

//go:embed vulnerability_profiles.yaml
var defaultProfilesYAML []byte

type profileTable struct {
	Fallback string                                   `yaml:"fallback"`
	Profiles map[string]model.VulnerabilityAssessment `yaml:"profiles"`
}

// EmpathyService maps a user's emotional status to a vulnerability
// assessment and removes ads that hit the assessment's triggers. The
// profile table is read-only after construction.
type EmpathyService struct {
	profiles map[string]model.VulnerabilityAssessment
	fallback model.VulnerabilityAssessment
}

// NewEmpathyService builds the service from the embedded profile table.
func NewEmpathyService() (*EmpathyService, error) {
	return ParseEmpathyProfiles(defaultProfilesYAML)
}

// ParseEmpathyProfiles builds the service from a YAML profile table.
func ParseEmpathyProfiles(data []byte) (*EmpathyService, error) {
	var tbl profileTable
	if err := yaml.Unmarshal(data, &tbl); err != nil {
		return nil, fmt.Errorf("parse vulnerability profiles: %w", err)
	}
	if len(tbl.Profiles) == 0 {
		return nil, fmt.Errorf("vulnerability profiles: table is empty")
	}
	for status, p := range tbl.Profiles {
		if p.Level != model.VulnerabilityLow && p.Level != model.VulnerabilityHigh {
			return nil, fmt.Errorf("vulnerability profile %q: invalid level %q", status, p.Level)
		}
		if p.Score < 0 || p.Score > 1 {
			return nil, fmt.Errorf("vulnerability profile %q: score %.2f out of range", status, p.Score)
		}
	}
	fallback, ok := tbl.Profiles[tbl.Fallback]
	if !ok {
		return nil, fmt.Errorf("vulnerability profiles: fallback %q not defined", tbl.Fallback)
	}
	return &EmpathyService{profiles: tbl.Profiles, fallback: fallback}, nil
}

// Assess returns the profile for status, or the fallback profile for any
// unrecognized status. The returned triggers slice is a copy.
func (s *EmpathyService) Assess(status string) model.VulnerabilityAssessment {
	p, ok := s.profiles[status]
	if !ok {
		p = s.fallback
	}
	p.Triggers = append([]string(nil), p.Triggers...)
	return p
}

// FilterByEmotion drops ads whose category is a trigger. Low vulnerability
// passes the list through unchanged. Ads without a category are never dropped.
func (s *EmpathyService) FilterByEmotion(ads []model.Ad, v model.VulnerabilityAssessment) []model.Ad {
	if v.Level == model.VulnerabilityLow {
		return ads
	}
	out := make([]model.Ad, 0, len(ads))
	for _, ad := range ads {
		if ad.Category != "" && v.HasTrigger(ad.Category) {
			continue
		}
		out = append(out, ad)
	}
	return out
}
