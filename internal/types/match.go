package types

// SemanticStatus describes what happened to an optional embedding step
type SemanticStatus string

const (
	// SemanticApplied means the embedding step ran
	SemanticApplied SemanticStatus = "applied"
	// SemanticSkipped means the step was not needed for this input
	SemanticSkipped SemanticStatus = "skipped"
	// SemanticUnavailable means the provider could not be used (not loaded, timed out or failed)
	SemanticUnavailable SemanticStatus = "unavailable"
)

// SemanticOutcome is the typed result of an optional embedding step
type SemanticOutcome struct {
	Status SemanticStatus `json:"status"`
	Added  int            `json:"added,omitempty"`
	Reason string         `json:"reason,omitempty"`
}

// MatchResult is the outcome of matching JD keywords against a resume.
// Matched always equals len(Matches).
type MatchResult struct {
	Required int             `json:"required"`
	Matched  int             `json:"matched"`
	Matches  []string        `json:"matches"`
	Missing  []string        `json:"missing"`
	Semantic SemanticOutcome `json:"semantic"`
}

// TierMatch holds the matched and missing keywords of one requirement tier
type TierMatch struct {
	Matched   []string `json:"matched"`
	Missing   []string `json:"missing"`
	MatchRate float64  `json:"match_rate"`
}

// TierBreakdown holds one TierMatch per requirement tier
type TierBreakdown struct {
	Required  TierMatch `json:"required"`
	Preferred TierMatch `json:"preferred"`
	Bonus     TierMatch `json:"bonus"`
	Unknown   TierMatch `json:"unknown"`
}

// Tier returns a pointer to the TierMatch for the given requirement type
func (b *TierBreakdown) Tier(r RequirementType) *TierMatch {
	switch r {
	case RequirementRequired:
		return &b.Required
	case RequirementPreferred:
		return &b.Preferred
	case RequirementBonus:
		return &b.Bonus
	default:
		return &b.Unknown
	}
}

// MatchSummary is a human-readable digest of a weighted match
type MatchSummary struct {
	RequiredSkills  string `json:"required_skills"`
	PreferredSkills string `json:"preferred_skills"`
	Recommendation  string `json:"recommendation"`
}

// WeightedMatchResult is the tier-weighted keyword match for one resume and JD
type WeightedMatchResult struct {
	OverallScore  float64       `json:"overall_score"`
	CriticalScore float64       `json:"critical_score"`
	TotalWeight   float64       `json:"total_weight"`
	MatchedWeight float64       `json:"matched_weight"`
	MatchesByType TierBreakdown `json:"matches_by_type"`
	Summary       MatchSummary  `json:"summary"`
}
