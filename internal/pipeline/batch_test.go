package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestAnalyzeBatch_Ranks(t *testing.T) {
	items := []BatchItem{
		{Source: "short.txt", Resume: "hi"},
		{Source: "baker.txt", Resume: "Baker with bread and pastry experience over many years in the bakery trade."},
		{Source: "engineer.txt", Resume: scenarioResume},
	}

	ranked, err := newTestAnalyzer(nil, nil).AnalyzeBatch(context.Background(), scenarioJD, items, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "engineer.txt", ranked[0].Source)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 0.459, ranked[0].Report.Scores.Composite)

	assert.Equal(t, "baker.txt", ranked[1].Source)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Less(t, ranked[1].Report.Scores.Composite, ranked[0].Report.Scores.Composite)

	// an invalid resume is reported, not fatal
	assert.Equal(t, "short.txt", ranked[2].Source)
	assert.Equal(t, 0, ranked[2].Rank)
	assert.Nil(t, ranked[2].Report)
	assert.Contains(t, ranked[2].Error, "too short")
}

func TestAnalyzeBatch_ItemErrorsAreRecorded(t *testing.T) {
	items := []BatchItem{
		{Source: "missing.txt", Err: errors.New("file not found")},
		{Source: "engineer.txt", Resume: scenarioResume},
	}

	ranked, err := newTestAnalyzer(nil, nil).AnalyzeBatch(context.Background(), scenarioJD, items, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "engineer.txt", ranked[0].Source)
	assert.Equal(t, "file not found", ranked[1].Error)
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	ranked, err := newTestAnalyzer(nil, nil).AnalyzeBatch(context.Background(), scenarioJD, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestAnalyzeBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []BatchItem{{Source: "a.txt", Resume: scenarioResume}}
	_, err := newTestAnalyzer(nil, nil).AnalyzeBatch(ctx, scenarioJD, items, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRankReports_TiesBySource(t *testing.T) {
	report := func(c float64) *types.Report {
		return &types.Report{Scores: types.ScoreVector{Composite: c}}
	}
	results := []types.RankedReport{
		{Source: "c", Report: report(0.5)},
		{Source: "z", Error: "bad"},
		{Source: "a", Report: report(0.5)},
		{Source: "b", Report: report(0.9)},
		{Source: "y", Error: "bad"},
	}

	rankReports(results)

	var order []string
	var ranks []int
	for _, r := range results {
		order = append(order, r.Source)
		ranks = append(ranks, r.Rank)
	}
	assert.Equal(t, []string{"b", "a", "c", "y", "z"}, order)
	assert.Equal(t, []int{1, 2, 3, 0, 0}, ranks)
}
