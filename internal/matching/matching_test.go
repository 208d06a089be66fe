package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/embedding/embeddingtest"
	"github.com/jonathan/resume-matcher/internal/embedding/mocks"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/requirements"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	scenarioResume = "Experience: built APIs in Python and Docker. Education: BS Computer Science. Skills: Python, Docker, AWS."
	scenarioJD     = "Required: Python, Docker. Preferred: AWS, Kubernetes."
)

func TestComputeKeywordMatch_Scenario(t *testing.T) {
	m := NewMatcher(keywords.NewExtractor(nil, nil), nil, nil)

	got := m.ComputeKeywordMatch(context.Background(), scenarioResume, scenarioJD)

	assert.Equal(t, 4, got.Required)
	assert.Equal(t, len(got.Matches), got.Matched)
	assert.Subset(t, got.Matches, []string{"python", "docker", "aws"})
	assert.Contains(t, got.Missing, "kubernetes")
	assert.Equal(t, types.SemanticUnavailable, got.Semantic.Status)
}

func TestComputeKeywordMatch_MatchesSubsetOfKeywords(t *testing.T) {
	ctx := context.Background()
	extractor := keywords.NewExtractor(nil, nil)
	m := NewMatcher(extractor, nil, nil)

	jds := []string{
		scenarioJD,
		"Backend engineer: Go, gRPC, PostgreSQL, Redis and Kubernetes on GCP",
		"",
	}
	for _, jd := range jds {
		got := m.ComputeKeywordMatch(ctx, scenarioResume, jd)
		assert.Equal(t, len(got.Matches), got.Matched)
		assert.Subset(t, extractor.Keywords(ctx, jd), got.Matches)
	}
}

func TestMatchKeywords(t *testing.T) {
	ctx := context.Background()
	resume := "Built services in Python and Docker on AWS with postgres databases."
	kws := []string{"kubernetes", "postgresql", "python", "docker", "aws"}

	semanticEncoder := &embeddingtest.Static{
		Rules: []embeddingtest.Rule{
			{Substring: "postgres", Vector: embedding.Vector{1, 0, 0}},
			{Substring: "kubernetes", Vector: embedding.Vector{0, 1, 0}},
		},
		Default: embedding.Vector{0, 0, 1},
	}

	testCases := []struct {
		name        string
		enc         embedding.Encoder
		resume      string
		kws         []string
		wantMatches []string
		wantMissing []string
		wantStatus  types.SemanticStatus
	}{
		{
			name:        "exact only without embeddings",
			resume:      resume,
			kws:         kws,
			wantMatches: []string{"python", "docker", "aws"},
			wantMissing: []string{"kubernetes", "postgresql"},
			wantStatus:  types.SemanticUnavailable,
		},
		{
			name:        "semantic pass adds close keywords",
			enc:         semanticEncoder,
			resume:      resume,
			kws:         kws,
			wantMatches: []string{"python", "docker", "aws", "postgresql"},
			wantMissing: []string{"kubernetes"},
			wantStatus:  types.SemanticApplied,
		},
		{
			name:        "plural and singular variants",
			resume:      "Designed REST API and containers for microservice teams",
			kws:         []string{"apis", "container", "microservices"},
			wantMatches: []string{"apis", "container", "microservices"},
			wantMissing: []string{},
			wantStatus:  types.SemanticSkipped,
		},
		{
			name:        "too many missing skips the semantic pass",
			enc:         semanticEncoder,
			resume:      "Python developer",
			kws:         []string{"kubernetes", "terraform", "rust"},
			wantMatches: []string{},
			wantMissing: []string{"kubernetes", "terraform", "rust"},
			wantStatus:  types.SemanticSkipped,
		},
		{
			name:        "no keywords",
			resume:      resume,
			wantMatches: []string{},
			wantMissing: []string{},
			wantStatus:  types.SemanticSkipped,
		},
		{
			name:        "no resume candidates",
			resume:      "I am a hard working person",
			kws:         []string{"python"},
			wantMatches: []string{},
			wantMissing: []string{"python"},
			wantStatus:  types.SemanticSkipped,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewMatcher(keywords.NewExtractor(nil, nil), tc.enc, nil).MatchKeywords(ctx, tc.resume, tc.kws)

			assert.Equal(t, len(tc.kws), got.Required)
			assert.Equal(t, tc.wantMatches, got.Matches)
			assert.Equal(t, tc.wantMissing, got.Missing)
			assert.Equal(t, len(got.Matches), got.Matched)
			assert.Equal(t, tc.wantStatus, got.Semantic.Status)
		})
	}
}

func TestMatchKeywords_SemanticNotCalledWhenNotNeeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: any Encode call fails the test
	enc := mocks.NewMockEncoder(ctrl)

	got := NewMatcher(nil, enc, nil).MatchKeywords(context.Background(), "Python and Docker", []string{"python", "docker"})
	assert.Equal(t, 2, got.Matched)
}

func TestComputeWeightedMatchScore(t *testing.T) {
	weighted := []types.WeightedKeyword{
		{Keyword: "python", RequirementType: types.RequirementRequired, Weight: 2.0, Section: "required"},
		{Keyword: "kubernetes", RequirementType: types.RequirementRequired, Weight: 2.0, Section: "required"},
		{Keyword: "terraform", RequirementType: types.RequirementPreferred, Weight: 1.0, Section: "preferred"},
		{Keyword: "rust", RequirementType: types.RequirementBonus, Weight: 0.5, Section: "bonus"},
	}
	levels := map[string]types.SkillLevel{
		"python": {Skill: "python", Level: types.LevelExpert, Confidence: 0.9},
	}

	got := ComputeWeightedMatchScore("Python and Terraform", weighted, levels)

	assert.Equal(t, 0.727, got.OverallScore)
	assert.Equal(t, 0.5, got.CriticalScore)
	assert.Equal(t, 5.5, got.TotalWeight)
	assert.Equal(t, 4.0, got.MatchedWeight)
	assert.Equal(t, []string{"python"}, got.MatchesByType.Required.Matched)
	assert.Equal(t, []string{"kubernetes"}, got.MatchesByType.Required.Missing)
	assert.Equal(t, 0.5, got.MatchesByType.Required.MatchRate)
	assert.Equal(t, 1.0, got.MatchesByType.Preferred.MatchRate)
	assert.Equal(t, 0.0, got.MatchesByType.Bonus.MatchRate)
	assert.Equal(t, 0.0, got.MatchesByType.Unknown.MatchRate)
	assert.Equal(t, types.MatchSummary{
		RequiredSkills:  "1/2",
		PreferredSkills: "1/1",
		Recommendation:  RecommendationGood,
	}, got.Summary)
}

func TestComputeWeightedMatchScore_Scenario(t *testing.T) {
	weighted := requirements.ExtractWeightedKeywords(context.Background(), scenarioJD, keywords.NewExtractor(nil, nil))

	got := ComputeWeightedMatchScore(scenarioResume, weighted, nil)

	assert.Equal(t, 1.0, got.CriticalScore)
	assert.Equal(t, 0.75, got.OverallScore)
	assert.Equal(t, "N/A", got.Summary.RequiredSkills)
	assert.Equal(t, RecommendationExcellent, got.Summary.Recommendation)
	assert.ElementsMatch(t, []string{"python", "docker", "aws"}, got.MatchesByType.Unknown.Matched)
}

func TestComputeWeightedMatchScore_Bounds(t *testing.T) {
	weighted := []types.WeightedKeyword{
		{Keyword: "go", RequirementType: types.RequirementRequired, Weight: 2.0},
		{Keyword: "rust", RequirementType: types.RequirementBonus, Weight: 0.5},
	}
	levels := map[string]types.SkillLevel{
		"go":   {Skill: "go", Level: types.LevelExpert},
		"rust": {Skill: "rust", Level: types.LevelExpert},
	}

	got := ComputeWeightedMatchScore("go and rust", weighted, levels)
	assert.Equal(t, 1.0, got.OverallScore)
	assert.Equal(t, 3.75, got.MatchedWeight)

	empty := ComputeWeightedMatchScore("anything", nil, nil)
	require.NotNil(t, empty.MatchesByType.Required.Matched)
	assert.Equal(t, 0.0, empty.OverallScore)
	assert.Equal(t, 1.0, empty.CriticalScore)
	assert.Equal(t, "N/A", empty.Summary.PreferredSkills)
	assert.Equal(t, RecommendationExcellent, empty.Summary.Recommendation)
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t, RecommendationExcellent, Recommendation(0.9))
	assert.Equal(t, RecommendationStrong, Recommendation(0.7))
	assert.Equal(t, RecommendationGood, Recommendation(0.5))
	assert.Equal(t, RecommendationPartial, Recommendation(0.49))
}
