package scoring

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// topSentences is how many of the most similar sentences are averaged
	topSentences = 5
	// Blend of the role composite and the weighted keyword score
	compositeShare = 0.7
	weightedShare  = 0.3
)

// Input is everything the engine scores
type Input struct {
	Resume        string
	JD            string
	KeywordMatch  types.MatchResult
	WeightedMatch *types.WeightedMatchResult
}

// Engine computes score vectors. It holds no per-request state.
type Engine struct {
	enc    embedding.Encoder
	logger *zap.Logger
}

// NewEngine creates an engine; enc may be nil, which scores semantic as 0
func NewEngine(enc embedding.Encoder, logger *zap.Logger) *Engine {
	return &Engine{enc: enc, logger: observability.Component(logger, "scoring")}
}

// ComputeScoresWithRole scores in.Resume against in.JD with the weights of
// the role detected from the JD. With a weighted match the composite is
// blended 70/30 with its overall score.
func (e *Engine) ComputeScoresWithRole(ctx context.Context, in Input) types.ScoreVector {
	role := DetectRoleFromJD(in.JD)
	weights := WeightsFor(role)

	semantic, outcome := e.SemanticScore(ctx, in.Resume, in.JD)
	scores := types.ScoreVector{
		Role:            role,
		Structural:      round3(StructuralScore(in.Resume)),
		Keyword:         round3(KeywordScore(in.KeywordMatch)),
		Semantic:        round3(semantic),
		Readability:     round3(ReadabilityScore(in.Resume)),
		Tone:            round3(ToneScore(in.Resume)),
		SemanticOutcome: outcome,
	}

	composite := weights.Structural*scores.Structural +
		weights.Semantic*scores.Semantic +
		weights.Keyword*scores.Keyword +
		weights.Readability*scores.Readability +
		weights.Tone*scores.Tone

	if in.WeightedMatch != nil {
		overall := in.WeightedMatch.OverallScore
		scores.WeightedKeywordScore = &overall
		composite = compositeShare*composite + weightedShare*overall
	}
	scores.Composite = round3(clamp01(composite))

	e.logger.Debug("computed scores",
		zap.String("role", string(role)),
		zap.Float64("composite", scores.Composite),
		zap.String("semantic", string(outcome.Status)),
	)
	return scores
}

// SemanticScore is the similarity of resume to jd: the mean of the top five
// sentence similarities, or the whole-document similarity for shorter resumes.
func (e *Engine) SemanticScore(ctx context.Context, resume, jd string) (float64, types.SemanticOutcome) {
	if strings.TrimSpace(jd) == "" {
		return 0, types.SemanticOutcome{Status: types.SemanticSkipped, Reason: "no job description"}
	}

	sentences := ingestion.SplitSentences(resume)
	texts := []string{jd, resume}
	if len(sentences) >= topSentences {
		for _, s := range sentences {
			texts = append(texts, s.Text)
		}
	}

	vecs, err := embedding.EncodeTexts(ctx, e.enc, texts)
	if err != nil {
		e.logger.Debug("semantic score unavailable", zap.Error(err))
		return 0, types.SemanticOutcome{Status: types.SemanticUnavailable, Reason: err.Error()}
	}

	jdVec := vecs[0]
	if len(vecs) == 2 {
		return clamp01(embedding.Cosine(vecs[1], jdVec)), types.SemanticOutcome{Status: types.SemanticApplied}
	}

	sims := make([]float64, 0, len(vecs)-2)
	for _, v := range vecs[2:] {
		sims = append(sims, embedding.Cosine(v, jdVec))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sims)))

	total := 0.0
	for _, s := range sims[:topSentences] {
		total += s
	}
	return clamp01(total / topSentences), types.SemanticOutcome{Status: types.SemanticApplied}
}
