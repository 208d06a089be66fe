package requirements

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Classifier tags job description keywords with requirement tiers
type Classifier struct {
	source keywords.KeywordSource
	logger *zap.Logger
}

// NewClassifier creates a classifier that extracts keywords with source
func NewClassifier(source keywords.KeywordSource, logger *zap.Logger) *Classifier {
	return &Classifier{source: source, logger: observability.Component(logger, "requirements")}
}

// ExtractWeightedKeywords runs the keyword source on each tier of jd in the
// order Required, Preferred, Bonus, Unknown. A keyword found in several tiers
// keeps the first one. When no tier yields keywords, the whole text is
// re-scanned and tagged Unknown in the general section.
func (c *Classifier) ExtractWeightedKeywords(ctx context.Context, jd string) []types.WeightedKeyword {
	sections := ParseJDSections(jd)

	var weighted []types.WeightedKeyword
	seen := make(map[string]struct{})
	for _, tier := range types.RequirementOrder {
		chunks := sections.Chunks(tier)
		if len(chunks) == 0 {
			continue
		}
		for _, kw := range c.source.Keywords(ctx, strings.Join(chunks, "\n")) {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			weighted = append(weighted, types.WeightedKeyword{
				Keyword:         kw,
				RequirementType: tier,
				Weight:          tier.Weight(),
				Section:         string(tier),
			})
		}
	}

	if len(weighted) == 0 {
		c.logger.Debug("no tiered keywords, using whole description")
		for _, kw := range c.source.Keywords(ctx, jd) {
			weighted = append(weighted, types.WeightedKeyword{
				Keyword:         kw,
				RequirementType: types.RequirementUnknown,
				Weight:          types.RequirementUnknown.Weight(),
				Section:         types.SectionGeneral,
			})
		}
	}

	c.logger.Debug("extracted weighted keywords", zap.Int("count", len(weighted)))
	return weighted
}

// ExtractWeightedKeywords is a convenience wrapper around Classifier
func ExtractWeightedKeywords(ctx context.Context, jd string, source keywords.KeywordSource) []types.WeightedKeyword {
	return NewClassifier(source, nil).ExtractWeightedKeywords(ctx, jd)
}
