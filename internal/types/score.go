package types

// Role is the job family inferred from a job description
type Role string

const (
	RoleTech     Role = "TECH"
	RoleManager  Role = "MANAGER"
	RoleCreative Role = "CREATIVE"
	RoleGeneral  Role = "GENERAL"
)

// RoleWeights is the per-dimension weight vector for a role. The fields sum to 1.0.
type RoleWeights struct {
	Structural  float64 `json:"structural"`
	Semantic    float64 `json:"semantic"`
	Keyword     float64 `json:"keyword"`
	Readability float64 `json:"readability"`
	Tone        float64 `json:"tone"`
}

// Sum returns the total of all weights
func (w RoleWeights) Sum() float64 {
	return w.Structural + w.Semantic + w.Keyword + w.Readability + w.Tone
}

// ScoreVector holds all sub-scores and the composite, each in [0,1]
type ScoreVector struct {
	Role                 Role            `json:"role"`
	Structural           float64         `json:"structural"`
	Keyword              float64         `json:"keyword"`
	Semantic             float64         `json:"semantic"`
	Readability          float64         `json:"readability"`
	Tone                 float64         `json:"tone"`
	Composite            float64         `json:"composite"`
	WeightedKeywordScore *float64        `json:"weighted_keyword_score,omitempty"`
	SemanticOutcome      SemanticOutcome `json:"semantic_outcome"`
}

// EnrichmentStatus is the outcome of an optional pipeline stage
type EnrichmentStatus string

const (
	EnrichmentOK      EnrichmentStatus = "ok"
	EnrichmentSkipped EnrichmentStatus = "skipped"
	EnrichmentFailed  EnrichmentStatus = "failed"
)

// Enrichment records whether an optional stage contributed to a report
type Enrichment struct {
	Status EnrichmentStatus `json:"status"`
	Error  string           `json:"error,omitempty"`
}

// HeatmapEntry is the JD similarity of one resume sentence.
// Start and End are byte offsets into the resume text as supplied by the caller.
type HeatmapEntry struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
}

// Report is the full result of analyzing one resume against one job description
type Report struct {
	ID               string                `json:"id"`
	Role             Role                  `json:"role"`
	Scores           ScoreVector           `json:"scores"`
	KeywordMatch     MatchResult           `json:"keyword_match"`
	WeightedKeywords []WeightedKeyword     `json:"weighted_keywords"`
	WeightedMatch    *WeightedMatchResult  `json:"weighted_match,omitempty"`
	SkillLevels      map[string]SkillLevel `json:"skill_levels"`
	SkillSummary     SkillLevelSummary     `json:"skill_summary"`
	Heatmap          []HeatmapEntry        `json:"heatmap"`
	SkillDetection   Enrichment            `json:"skill_detection"`
	WeightedMatching Enrichment            `json:"weighted_matching"`
	HeatmapStatus    Enrichment            `json:"heatmap_status"`
}

// RankedReport is one entry of a batch ranking
type RankedReport struct {
	Rank   int     `json:"rank"`
	Source string  `json:"source"`
	Report *Report `json:"report,omitempty"`
	Error  string  `json:"error,omitempty"`
}
