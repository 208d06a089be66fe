package keywords

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/observability"
)

const (
	// MaxKeywords caps the number of keywords returned for one text
	MaxKeywords = 35
	// anchorThreshold is the similarity an ambiguous term needs to a technical anchor
	anchorThreshold = 0.45
	// maxFrequencyRatio drops terms repeated more often than this share of words
	maxFrequencyRatio = 0.03
	// overlapRatio is the share of a longer term a kept term must cover to make it redundant
	overlapRatio = 0.7
	minAmbiguousLen = 3
)

// KeywordSource extracts keywords from a block of text
type KeywordSource interface {
	Keywords(ctx context.Context, text string) []string
}

// Extractor selects the technical keywords of a job description
type Extractor struct {
	enc    embedding.Encoder
	logger *zap.Logger
}

// NewExtractor creates an extractor. enc may be nil, in which case ambiguous
// terms are never accepted.
func NewExtractor(enc embedding.Encoder, logger *zap.Logger) *Extractor {
	return &Extractor{enc: enc, logger: observability.Component(logger, "keywords")}
}

// Keywords returns at most MaxKeywords keywords for jd, longest first.
// It never fails: missing candidates or embeddings only shrink the result.
func (e *Extractor) Keywords(ctx context.Context, jd string) []string {
	candidates := ExtractCandidatePhrases(jd)
	if len(candidates) == 0 {
		e.logger.Debug("no candidate phrases extracted", zap.Int("chars", len(jd)))
		return []string{}
	}

	known, ambiguous := splitCandidates(candidates)
	if len(ambiguous) > 0 {
		known = append(known, e.acceptAmbiguous(ctx, ambiguous)...)
	}

	// frequencies are counted over candidates, not raw JD tokens
	maxFreq := max(1, int(float64(len(strings.Fields(jd)))*maxFrequencyRatio))
	freq := make(map[string]int, len(known))
	for _, term := range known {
		freq[term]++
	}
	kept := make([]string, 0, len(freq))
	seen := make(map[string]struct{}, len(freq))
	for _, term := range known {
		if _, ok := seen[term]; ok || freq[term] > maxFreq {
			continue
		}
		seen[term] = struct{}{}
		kept = append(kept, term)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if len(kept[i]) != len(kept[j]) {
			return len(kept[i]) > len(kept[j])
		}
		return freq[kept[i]] > freq[kept[j]]
	})

	final := make([]string, 0, len(kept))
	for _, term := range kept {
		if !isRedundant(term, final) {
			final = append(final, term)
		}
	}
	if len(final) > MaxKeywords {
		final = final[:MaxKeywords]
	}

	e.logger.Debug("extracted keywords", zap.Int("count", len(final)))
	return final
}

// splitCandidates separates terms accepted outright from those that need an
// embedding check. Short or malformed phrases are dropped.
func splitCandidates(candidates []string) (known, ambiguous []string) {
	for _, c := range candidates {
		switch {
		case has(technicalKeywords, c), has(compoundSet, c), has(technicalPatterns, c), has(keepTechTerms, c):
			known = append(known, c)
		case strings.ContainsAny(c, "+#-."), hasDigitAndLetter(c):
			known = append(known, c)
		case !strings.Contains(c, " "):
			if len(c) >= minAmbiguousLen {
				ambiguous = append(ambiguous, c)
			}
		default:
			words := strings.Fields(c)
			if len(words) == 2 && len(words[0]) >= minAmbiguousLen && len(words[1]) >= minAmbiguousLen {
				ambiguous = append(ambiguous, c)
			}
		}
	}
	return known, ambiguous
}

// acceptAmbiguous keeps the terms close enough to a technical anchor
func (e *Extractor) acceptAmbiguous(ctx context.Context, terms []string) []string {
	texts := make([]string, 0, len(technicalAnchors)+len(terms))
	texts = append(texts, technicalAnchors...)
	texts = append(texts, terms...)

	vecs, err := embedding.EncodeTexts(ctx, e.enc, texts)
	if err != nil {
		e.logger.Debug("skipping semantic filtering", zap.Int("ambiguous", len(terms)), zap.Error(err))
		return nil
	}

	anchors := vecs[:len(technicalAnchors)]
	var accepted []string
	for i, term := range terms {
		if embedding.MaxCosine(vecs[len(technicalAnchors)+i], anchors) >= anchorThreshold {
			accepted = append(accepted, term)
		}
	}
	return accepted
}

// isRedundant reports whether term is covered by an already selected keyword
func isRedundant(term string, selected []string) bool {
	for _, existing := range selected {
		if existing == term {
			return true
		}
		if strings.Contains(existing, term) {
			return true
		}
		if strings.Contains(term, existing) && float64(len(existing)) >= float64(len(term))*overlapRatio {
			return true
		}
	}
	return false
}
