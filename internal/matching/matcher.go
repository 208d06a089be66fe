// Package matching matches job description keywords against resume text.
package matching

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// semanticThreshold is the similarity a missing keyword needs to a resume candidate
	semanticThreshold = 0.70
	// maxMissingRatio disables the semantic pass when most keywords are missing
	maxMissingRatio = 0.7
	minSemanticLen  = 4
)

// Matcher compares job description keywords with a resume
type Matcher struct {
	source keywords.KeywordSource
	enc    embedding.Encoder
	logger *zap.Logger
}

// NewMatcher creates a matcher. source extracts the JD keywords; enc may be
// nil, which limits matching to the exact pass.
func NewMatcher(source keywords.KeywordSource, enc embedding.Encoder, logger *zap.Logger) *Matcher {
	return &Matcher{source: source, enc: enc, logger: observability.Component(logger, "matching")}
}

// ComputeKeywordMatch extracts the keywords of jd and matches them against resume
func (m *Matcher) ComputeKeywordMatch(ctx context.Context, resume, jd string) types.MatchResult {
	return m.MatchKeywords(ctx, resume, m.source.Keywords(ctx, jd))
}

// MatchKeywords matches keywords against resume with an exact pass and, for
// what is still missing, a semantic pass when embeddings are available.
func (m *Matcher) MatchKeywords(ctx context.Context, resume string, kws []string) types.MatchResult {
	result := types.MatchResult{
		Required: len(kws),
		Matches:  []string{},
		Missing:  []string{},
		Semantic: types.SemanticOutcome{Status: types.SemanticSkipped},
	}
	if len(kws) == 0 {
		result.Semantic.Reason = "no job description keywords"
		return result
	}

	candidates := keywords.ExtractCandidatePhrases(resume)
	if len(candidates) == 0 {
		m.logger.Debug("no candidate phrases in resume")
		result.Missing = append(result.Missing, kws...)
		result.Semantic.Reason = "no resume candidates"
		return result
	}

	candidateSet := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		candidateSet[c] = struct{}{}
	}
	lower := strings.ToLower(resume)

	for _, kw := range kws {
		if _, ok := candidateSet[kw]; ok || containsVariant(lower, kw) {
			result.Matches = append(result.Matches, kw)
		} else {
			result.Missing = append(result.Missing, kw)
		}
	}

	switch {
	case len(result.Missing) == 0:
		result.Semantic.Reason = "all keywords matched"
	case float64(len(result.Missing)) >= float64(len(kws))*maxMissingRatio:
		result.Semantic.Reason = "too many keywords missing"
	default:
		result.Semantic = m.semanticPass(ctx, &result, candidates)
	}

	result.Matched = len(result.Matches)
	m.logger.Debug("keyword match complete",
		zap.Int("matched", result.Matched),
		zap.Int("required", result.Required),
		zap.String("semantic", string(result.Semantic.Status)),
	)
	return result
}

// semanticPass moves missing keywords close to a resume candidate into Matches
func (m *Matcher) semanticPass(ctx context.Context, result *types.MatchResult, candidates []string) types.SemanticOutcome {
	var targets []string
	for _, kw := range result.Missing {
		if len(kw) >= minSemanticLen {
			targets = append(targets, kw)
		}
	}
	if len(targets) == 0 {
		return types.SemanticOutcome{Status: types.SemanticSkipped, Reason: "missing keywords too short"}
	}

	texts := make([]string, 0, len(targets)+len(candidates))
	texts = append(texts, targets...)
	texts = append(texts, candidates...)
	vecs, err := embedding.EncodeTexts(ctx, m.enc, texts)
	if err != nil {
		m.logger.Debug("semantic matching unavailable", zap.Error(err))
		return types.SemanticOutcome{Status: types.SemanticUnavailable, Reason: err.Error()}
	}

	resumeVecs := vecs[len(targets):]
	accepted := make(map[string]struct{})
	for i, kw := range targets {
		if embedding.MaxCosine(vecs[i], resumeVecs) >= semanticThreshold {
			accepted[kw] = struct{}{}
			result.Matches = append(result.Matches, kw)
		}
	}

	if len(accepted) > 0 {
		missing := result.Missing[:0]
		for _, kw := range result.Missing {
			if _, ok := accepted[kw]; !ok {
				missing = append(missing, kw)
			}
		}
		result.Missing = missing
	}
	return types.SemanticOutcome{Status: types.SemanticApplied, Added: len(accepted)}
}

// containsVariant reports whether kw, or kw with a trailing s added or
// removed, occurs in text
func containsVariant(text, kw string) bool {
	if strings.Contains(text, kw) || strings.Contains(text, kw+"s") {
		return true
	}
	return strings.HasSuffix(kw, "s") && len(kw) > 1 && strings.Contains(text, kw[:len(kw)-1])
}
