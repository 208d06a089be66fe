package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Recommendations keyed by the share of required keywords matched
const (
	RecommendationExcellent = "Excellent match! You meet all critical requirements."
	RecommendationStrong    = "Strong match! You meet most critical requirements."
	RecommendationGood      = "Good match! Consider highlighting relevant experience."
	RecommendationPartial   = "Partial match. Focus on developing required skills."
)

// ComputeWeightedMatchScore scores resume against tier-weighted keywords.
// Matched keywords with a known skill level count weight times the level
// multiplier. levels may be nil.
func ComputeWeightedMatchScore(resume string, weighted []types.WeightedKeyword, levels map[string]types.SkillLevel) types.WeightedMatchResult {
	lower := strings.ToLower(resume)

	var result types.WeightedMatchResult
	for _, tier := range types.RequirementOrder {
		tm := result.MatchesByType.Tier(tier)
		tm.Matched = []string{}
		tm.Missing = []string{}
	}

	var totalWeight, matchedWeight, requiredTotal, requiredMatched float64
	for _, kw := range weighted {
		key := strings.ToLower(kw.Keyword)
		totalWeight += kw.Weight
		if kw.RequirementType == types.RequirementRequired {
			requiredTotal += kw.Weight
		}

		tm := result.MatchesByType.Tier(kw.RequirementType)
		if !containsVariant(lower, key) {
			tm.Missing = append(tm.Missing, kw.Keyword)
			continue
		}

		multiplier := 1.0
		if level, ok := levels[kw.Keyword]; ok {
			multiplier = level.Level.Multiplier()
		}
		matchedWeight += kw.Weight * multiplier
		if kw.RequirementType == types.RequirementRequired {
			requiredMatched += kw.Weight
		}
		tm.Matched = append(tm.Matched, kw.Keyword)
	}

	overall := 0.0
	if totalWeight > 0 {
		overall = clamp01(matchedWeight / totalWeight)
	}
	critical := 1.0
	if requiredTotal > 0 {
		critical = requiredMatched / requiredTotal
	}

	for _, tier := range types.RequirementOrder {
		tm := result.MatchesByType.Tier(tier)
		if n := len(tm.Matched) + len(tm.Missing); n > 0 {
			tm.MatchRate = float64(len(tm.Matched)) / float64(n)
		}
	}

	result.OverallScore = round(overall, 3)
	result.CriticalScore = round(critical, 3)
	result.TotalWeight = round(totalWeight, 2)
	result.MatchedWeight = round(matchedWeight, 2)
	result.Summary = summarize(&result.MatchesByType)
	return result
}

func summarize(b *types.TierBreakdown) types.MatchSummary {
	return types.MatchSummary{
		RequiredSkills:  ratio(&b.Required),
		PreferredSkills: ratio(&b.Preferred),
		Recommendation:  Recommendation(rate(&b.Required)),
	}
}

func ratio(tm *types.TierMatch) string {
	n := len(tm.Matched) + len(tm.Missing)
	if n == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d/%d", len(tm.Matched), n)
}

// rate is the tier match rate with an empty tier counting as fully matched
func rate(tm *types.TierMatch) float64 {
	n := len(tm.Matched) + len(tm.Missing)
	if n == 0 {
		return 1.0
	}
	return float64(len(tm.Matched)) / float64(n)
}

// Recommendation returns the advice for a required-keyword match rate
func Recommendation(requiredRate float64) string {
	switch {
	case requiredRate >= 0.9:
		return RecommendationExcellent
	case requiredRate >= 0.7:
		return RecommendationStrong
	case requiredRate >= 0.5:
		return RecommendationGood
	default:
		return RecommendationPartial
	}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
