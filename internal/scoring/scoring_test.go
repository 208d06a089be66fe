package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/embedding/embeddingtest"
	"github.com/jonathan/resume-matcher/internal/types"
)

const scenarioResume = "Experience: built APIs in Python and Docker. Education: BS Computer Science. Skills: Python, Docker, AWS."

func TestDetectRoleFromJD(t *testing.T) {
	testCases := []struct {
		jd   string
		want types.Role
	}{
		{"", types.RoleGeneral},
		{"Backend engineer with Go", types.RoleTech},
		{"Required: Python, Docker.", types.RoleTech},
		{"Engineering manager", types.RoleTech},
		{"Director of Sales", types.RoleManager},
		{"Visual designer for our brand", types.RoleCreative},
		{"Accountant, full time", types.RoleGeneral},
	}

	for _, tc := range testCases {
		t.Run(tc.jd, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectRoleFromJD(tc.jd))
		})
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for _, role := range []types.Role{types.RoleTech, types.RoleManager, types.RoleCreative, types.RoleGeneral} {
		assert.InDelta(t, 1.0, WeightsFor(role).Sum(), 1e-6, string(role))
	}
	assert.Equal(t, WeightsFor(types.RoleGeneral), WeightsFor("UNKNOWN"))
}

func TestStructuralScore(t *testing.T) {
	testCases := []struct {
		name   string
		resume string
		want   float64
	}{
		{"scenario headings", scenarioResume, 0.70},
		{"empty", "", 0},
		{"contact only", "jane@example.com", 0.20},
		{"phone number", "Call 415-555-0100 anytime", 0.20},
		{"date ranges are not phones", "Acme 2019 - 2023", 0},
		{
			"full resume capped",
			"Jane Doe\njane@example.com\nSummary\nBackend developer\nExperience:\nAcme\nEducation:\nBS\nSkills:\nGo\nProjects:\nmatcher",
			1.0,
		},
		{"inline mentions are not headings", "I have experience with education software and skills in Go.", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, StructuralScore(tc.resume), 1e-9)
		})
	}
}

func TestReadabilityScore(t *testing.T) {
	assert.Equal(t, 0.5, ReadabilityScore(""))
	assert.InDelta(t, 0.5, ReadabilityScore(scenarioResume), 1e-9)
	assert.InDelta(t, 1.0, ReadabilityScore("one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen."), 1e-9)
}

func TestToneScore(t *testing.T) {
	assert.InDelta(t, 1.0/3.6, ToneScore(scenarioResume), 1e-9)

	bullets := "- Led a team of five\n- Built the billing service\n- Reduced latency by 40%"
	assert.InDelta(t, 3.0/3.6, ToneScore(bullets), 1e-9)

	// word boundaries: "bled" and "rebuilt" do not count
	assert.Equal(t, 0.0, ToneScore("The wound bled. We rebuilt it."))
	assert.Equal(t, 1.0, ToneScore("Led, built and deployed."))
}

func TestKeywordScore(t *testing.T) {
	assert.Equal(t, 0.0, KeywordScore(types.MatchResult{}))
	assert.Equal(t, 0.75, KeywordScore(types.MatchResult{Required: 4, Matched: 3}))
}

func TestComputeScoresWithRole_Scenario(t *testing.T) {
	engine := NewEngine(nil, nil)
	in := Input{
		Resume:       scenarioResume,
		JD:           "Required: Python, Docker. Preferred: AWS, Kubernetes.",
		KeywordMatch: types.MatchResult{Required: 4, Matched: 3, Matches: []string{"python", "docker", "aws"}},
	}

	got := engine.ComputeScoresWithRole(context.Background(), in)

	assert.Equal(t, types.RoleTech, got.Role)
	assert.Equal(t, 0.7, got.Structural)
	assert.Equal(t, 0.75, got.Keyword)
	assert.Equal(t, 0.0, got.Semantic)
	assert.Equal(t, 0.5, got.Readability)
	assert.Equal(t, 0.278, got.Tone)
	assert.Equal(t, 0.366, got.Composite)
	assert.Nil(t, got.WeightedKeywordScore)
	assert.Equal(t, types.SemanticUnavailable, got.SemanticOutcome.Status)

	in.WeightedMatch = &types.WeightedMatchResult{OverallScore: 0.75}
	blended := engine.ComputeScoresWithRole(context.Background(), in)
	assert.Equal(t, 0.481, blended.Composite)
	require.NotNil(t, blended.WeightedKeywordScore)
	assert.Equal(t, 0.75, *blended.WeightedKeywordScore)
}

func TestComputeScoresWithRole_Idempotent(t *testing.T) {
	engine := NewEngine(&embeddingtest.Static{Default: embedding.Vector{0.3, 0.4, 0.5}}, nil)
	in := Input{
		Resume:        scenarioResume,
		JD:            "Senior backend engineer, Python",
		KeywordMatch:  types.MatchResult{Required: 2, Matched: 1},
		WeightedMatch: &types.WeightedMatchResult{OverallScore: 0.4},
	}

	first := engine.ComputeScoresWithRole(context.Background(), in)
	second := engine.ComputeScoresWithRole(context.Background(), in)
	assert.Equal(t, first, second)
}

func TestComputeScoresWithRole_CompositeBounds(t *testing.T) {
	engine := NewEngine(&embeddingtest.Static{Default: embedding.Vector{1, 0}}, nil)
	inputs := []Input{
		{},
		{Resume: "x"},
		{
			Resume:        "Summary:\n- Led and built\nExperience:\n- Deployed\nEducation:\nSkills:\njane@example.com",
			JD:            "Product manager",
			KeywordMatch:  types.MatchResult{Required: 1, Matched: 1},
			WeightedMatch: &types.WeightedMatchResult{OverallScore: 1},
		},
	}

	for _, in := range inputs {
		got := engine.ComputeScoresWithRole(context.Background(), in)
		assert.GreaterOrEqual(t, got.Composite, 0.0)
		assert.LessOrEqual(t, got.Composite, 1.0)
	}
}

func TestSemanticScore(t *testing.T) {
	ctx := context.Background()
	jd := "Python engineer"
	enc := &embeddingtest.Static{
		Vectors: map[string]embedding.Vector{jd: {1, 0}},
		Rules:   []embeddingtest.Rule{{Substring: "python", Vector: embedding.Vector{1, 0}}},
		Default: embedding.Vector{0, 1},
	}
	engine := NewEngine(enc, nil)

	t.Run("whole document for short resumes", func(t *testing.T) {
		score, outcome := engine.SemanticScore(ctx, "Python services.", jd)
		assert.InDelta(t, 1.0, score, 1e-6)
		assert.Equal(t, types.SemanticApplied, outcome.Status)
	})

	t.Run("top five sentences", func(t *testing.T) {
		resume := "Wrote Python. Shipped Python. Taught Python. Ran marathons. Baked bread. Painted walls."
		score, outcome := engine.SemanticScore(ctx, resume, jd)
		assert.InDelta(t, 0.6, score, 1e-6)
		assert.Equal(t, types.SemanticApplied, outcome.Status)
	})

	t.Run("no job description", func(t *testing.T) {
		score, outcome := engine.SemanticScore(ctx, "Python services.", "")
		assert.Equal(t, 0.0, score)
		assert.Equal(t, types.SemanticSkipped, outcome.Status)
	})

	t.Run("unavailable", func(t *testing.T) {
		score, outcome := NewEngine(nil, nil).SemanticScore(ctx, "Python services.", jd)
		assert.Equal(t, 0.0, score)
		assert.Equal(t, types.SemanticUnavailable, outcome.Status)
	})
}
