package pipeline

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/types"
)

// BatchItem is one resume of a batch, identified by its source (usually a
// path). An item with Err set is ranked as failed without being analyzed.
type BatchItem struct {
	Source string
	Resume string
	Err    error
}

// AnalyzeBatch analyzes every resume against jd with at most concurrency
// analyses in flight. Reports are ranked by composite score, best first;
// resumes that fail analysis are listed last with their error and rank 0.
// Only cancellation of ctx aborts the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, jd string, items []BatchItem, concurrency int) ([]types.RankedReport, error) {
	if concurrency < 1 {
		concurrency = a.opts.BatchConcurrency
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]types.RankedReport, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		g.Go(func() error {
			results[i].Source = item.Source
			if item.Err != nil {
				results[i].Error = item.Err.Error()
				return nil
			}
			report, err := a.Analyze(gctx, item.Resume, jd)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				a.logger.Info("batch item failed", zap.String("source", item.Source), zap.Error(err))
				results[i].Error = err.Error()
				return nil
			}
			results[i].Report = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch canceled: %w", err)
	}

	rankReports(results)
	return results, nil
}

// rankReports sorts successful reports by composite desc then source, puts
// failures last, and numbers the successes from 1
func rankReports(results []types.RankedReport) {
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i].Report, results[j].Report
		switch {
		case ri == nil && rj == nil:
			return results[i].Source < results[j].Source
		case ri == nil:
			return false
		case rj == nil:
			return true
		case ri.Scores.Composite != rj.Scores.Composite:
			return ri.Scores.Composite > rj.Scores.Composite
		default:
			return results[i].Source < results[j].Source
		}
	})

	rank := 0
	for i := range results {
		if results[i].Report != nil {
			rank++
			results[i].Rank = rank
		}
	}
}
