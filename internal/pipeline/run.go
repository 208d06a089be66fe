// Package pipeline provides the high-level orchestration of a resume analysis.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/keywords"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline/steps"
	"github.com/jonathan/resume-matcher/internal/requirements"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Options holds input limits and batch settings for an Analyzer
type Options struct {
	MinResumeChars   int
	MinJobChars      int
	HeatmapLimit     int
	BatchConcurrency int
}

// DefaultOptions returns the limits used when none are configured
func DefaultOptions() Options {
	return Options{
		MinResumeChars:   50,
		MinJobChars:      20,
		HeatmapLimit:     80,
		BatchConcurrency: 4,
	}
}

// Analyzer runs the full resume analysis. It holds no per-request state and
// is safe for concurrent use.
type Analyzer struct {
	matcher    *matching.Matcher
	classifier *requirements.Classifier
	engine     *scoring.Engine
	enc        embedding.Encoder
	opts       Options
	logger     *zap.Logger
	metrics    *observability.Metrics

	detectSkills func(resume string, skills []string) map[string]types.SkillLevel
}

// NewAnalyzer wires the pipeline stages around source and enc. enc may be
// nil, in which case every embedding stage runs degraded.
func NewAnalyzer(source keywords.KeywordSource, enc embedding.Encoder, opts Options, logger *zap.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{
		matcher:      matching.NewMatcher(source, enc, logger),
		classifier:   requirements.NewClassifier(source, logger),
		engine:       scoring.NewEngine(enc, logger),
		enc:          enc,
		opts:         opts,
		logger:       observability.Component(logger, "pipeline"),
		metrics:      metrics,
		detectSkills: skills.DetectAllSkillLevels,
	}
}

// Analyze scores resume against jd. Only unusable inputs and cancellation
// return an error; optional stages that fail are recorded on the report.
func (a *Analyzer) Analyze(ctx context.Context, resume, jd string) (*types.Report, error) {
	start := time.Now()
	defer func() { a.metrics.ObserveAnalysis(time.Since(start)) }()

	run := steps.NewRun()

	// heatmap offsets index the caller's text, not the folded copy
	original := resume
	resume = ingestion.Fold(resume)
	jd = ingestion.Fold(jd)
	if err := ingestion.ValidateInputs(resume, jd, a.opts.MinResumeChars, a.opts.MinJobChars); err != nil {
		run.Set(steps.ValidateInputs, steps.StatusFailed)
		return nil, err
	}
	run.Set(steps.ValidateInputs, steps.StatusCompleted)
	hasJD := strings.TrimSpace(jd) != ""

	report := &types.Report{
		ID:               uuid.NewString(),
		WeightedKeywords: []types.WeightedKeyword{},
		SkillLevels:      map[string]types.SkillLevel{},
		SkillSummary:     skills.Summarize(nil),
		Heatmap:          []types.HeatmapEntry{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.KeywordMatch = a.matcher.ComputeKeywordMatch(gctx, resume, jd)
		return gctx.Err()
	})
	g.Go(func() error {
		if !hasJD {
			return nil
		}
		report.WeightedKeywords = a.classifier.ExtractWeightedKeywords(gctx, jd)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}
	run.Set(steps.MatchKeywords, steps.StatusCompleted)
	if hasJD {
		run.Set(steps.ExtractRequirements, steps.StatusCompleted)
	} else {
		run.Set(steps.ExtractRequirements, steps.StatusSkipped)
	}
	if report.KeywordMatch.Semantic.Status == types.SemanticUnavailable {
		a.metrics.Degraded("keyword_match")
	}

	report.SkillDetection = a.runEnrichment(run, steps.DetectSkills, func() (bool, error) {
		if len(report.KeywordMatch.Matches) == 0 {
			return false, nil
		}
		report.SkillLevels = a.detectSkills(resume, report.KeywordMatch.Matches)
		report.SkillSummary = skills.Summarize(report.SkillLevels)
		return true, nil
	})

	report.WeightedMatching = a.runEnrichment(run, steps.WeightedMatch, func() (bool, error) {
		if len(report.WeightedKeywords) == 0 {
			return false, nil
		}
		wm := matching.ComputeWeightedMatchScore(resume, report.WeightedKeywords, report.SkillLevels)
		report.WeightedMatch = &wm
		return true, nil
	})

	if err := run.ValidateDependencies(steps.Score); err != nil {
		return nil, fmt.Errorf("failed to score: %w", err)
	}
	report.Scores = a.engine.ComputeScoresWithRole(ctx, scoring.Input{
		Resume:        resume,
		JD:            jd,
		KeywordMatch:  report.KeywordMatch,
		WeightedMatch: report.WeightedMatch,
	})
	report.Role = report.Scores.Role
	run.Set(steps.Score, steps.StatusCompleted)
	if report.Scores.SemanticOutcome.Status == types.SemanticUnavailable {
		a.metrics.Degraded("semantic_score")
	}

	report.HeatmapStatus = a.runEnrichment(run, steps.Heatmap, func() (bool, error) {
		if !hasJD {
			return false, nil
		}
		entries, err := a.heatmap(ctx, original, jd)
		if errors.Is(err, embedding.ErrUnavailable) {
			a.metrics.Degraded(steps.Heatmap)
			return false, nil
		}
		if err != nil {
			return false, err
		}
		report.Heatmap = entries
		return true, nil
	})

	a.logger.Debug("analysis complete",
		zap.String("id", report.ID),
		zap.String("role", string(report.Role)),
		zap.Float64("composite", report.Scores.Composite),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// runEnrichment runs an optional stage. fn reports whether it produced
// output; an error or panic marks the stage failed without aborting the run.
func (a *Analyzer) runEnrichment(run *steps.Run, stage string, fn func() (bool, error)) (out types.Enrichment) {
	if err := run.ValidateDependencies(stage); err != nil {
		run.Set(stage, steps.StatusSkipped)
		return types.Enrichment{Status: types.EnrichmentSkipped}
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%s panicked: %v", stage, r)
			a.logger.Warn("enrichment failed", zap.String("stage", stage), zap.Error(err))
			a.metrics.Degraded(stage)
			run.Set(stage, steps.StatusFailed)
			out = types.Enrichment{Status: types.EnrichmentFailed, Error: err.Error()}
		}
	}()

	ran, err := fn()
	switch {
	case err != nil:
		a.logger.Warn("enrichment failed", zap.String("stage", stage), zap.Error(err))
		a.metrics.Degraded(stage)
		run.Set(stage, steps.StatusFailed)
		return types.Enrichment{Status: types.EnrichmentFailed, Error: err.Error()}
	case !ran:
		run.Set(stage, steps.StatusSkipped)
		return types.Enrichment{Status: types.EnrichmentSkipped}
	default:
		run.Set(stage, steps.StatusCompleted)
		return types.Enrichment{Status: types.EnrichmentOK}
	}
}

// heatmap scores every resume sentence against jd, best first, keeping at
// most HeatmapLimit entries
func (a *Analyzer) heatmap(ctx context.Context, resume, jd string) ([]types.HeatmapEntry, error) {
	sentences := ingestion.SplitSentences(resume)
	if len(sentences) == 0 {
		return []types.HeatmapEntry{}, nil
	}

	texts := make([]string, 0, len(sentences)+1)
	texts = append(texts, jd)
	for _, s := range sentences {
		texts = append(texts, s.Text)
	}
	vecs, err := embedding.EncodeTexts(ctx, a.enc, texts)
	if err != nil {
		return nil, err
	}

	entries := make([]types.HeatmapEntry, 0, len(sentences))
	for i, s := range sentences {
		score := embedding.Cosine(vecs[i+1], vecs[0])
		entries = append(entries, types.HeatmapEntry{
			Sentence: s.Text,
			Score:    roundScore(score),
			Start:    s.Start,
			End:      s.End,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if a.opts.HeatmapLimit > 0 && len(entries) > a.opts.HeatmapLimit {
		entries = entries[:a.opts.HeatmapLimit]
	}
	return entries, nil
}

func roundScore(x float64) float64 {
	return math.Round(x*1000) / 1000
}
