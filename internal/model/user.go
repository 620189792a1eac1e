package model

// User is a person ads are served to. Only Status drives serving decisions.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Status   string `json:"status" yaml:"status"`
	Age      *int   `json:"age,omitempty" yaml:"age,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Ad is a catalog entry, keyed by Title.
type Ad struct {
	Title          string `json:"title" yaml:"title"`
	Category       string `json:"category,omitempty" yaml:"category,omitempty"`
	TargetAudience string `json:"target_audience,omitempty" yaml:"target_audience,omitempty"`
	Explanation    string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// UserAnalytics is the API response for GET /analytics/user/:userId.
type UserAnalytics struct {
	TotalInteractions int     `json:"total_interactions"`
	PositiveFeedback  int     `json:"positive_feedback"`
	NegativeFeedback  int     `json:"negative_feedback"`
	BlockedAds        int     `json:"blocked_ads"`
	EngagementRate    float64 `json:"engagement_rate"`
}
