package model

// Preferences are the per-user toggles gating the serving pipeline and
// feedback persistence.
type Preferences struct {
	EmotionFilter   bool `json:"emotion_filter"`
	Personalization bool `json:"personalization"`
	Explanations    bool `json:"explanations"`
	DataCollection  bool `json:"data_collection"`
}

// DefaultPreferences is used whenever a user has no stored record.
func DefaultPreferences() Preferences {
	return Preferences{
		EmotionFilter:   true,
		Personalization: true,
		Explanations:    true,
		DataCollection:  true,
	}
}

// PreferencesUpdate carries the fields supplied by a caller. Nil means
// "not supplied".
type PreferencesUpdate struct {
	EmotionFilter   *bool `json:"emotion_filter,omitempty"`
	Personalization *bool `json:"personalization,omitempty"`
	Explanations    *bool `json:"explanations,omitempty"`
	DataCollection  *bool `json:"data_collection,omitempty"`
}

// OverDefaults merges the supplied fields over DefaultPreferences. Fields
// left nil reset to true; the previously stored record is never consulted.
func (u PreferencesUpdate) OverDefaults() Preferences {
	p := DefaultPreferences()
	if u.EmotionFilter != nil {
		p.EmotionFilter = *u.EmotionFilter
	}
	if u.Personalization != nil {
		p.Personalization = *u.Personalization
	}
	if u.Explanations != nil {
		p.Explanations = *u.Explanations
	}
	if u.DataCollection != nil {
		p.DataCollection = *u.DataCollection
	}
	return p
}

// SetPreferencesRequest is the API request body for POST /set_preferences.
type SetPreferencesRequest struct {
	UserID      string            `json:"user_id"`
	Preferences PreferencesUpdate `json:"preferences"`
}

// SetPreferencesResponse is the API response after storing preferences.
type SetPreferencesResponse struct {
	Status      string      `json:"status"`
	Preferences Preferences `json:"preferences"`
}
