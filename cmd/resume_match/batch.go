package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank several resumes against one job description",
	Long: `Analyze every resume against the job description concurrently and write the ranking as JSON,
best composite score first. Resumes that cannot be analyzed are listed last with their error.`,
	RunE: runBatch,
}

var (
	batchJobFile     string
	batchResumeFiles []string
	batchConcurrency int
	batchOutputFile  string
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchJobFile, "job", "j", "", "Path to job description file (.txt, .md or .html)")
	batchCmd.Flags().StringArrayVarP(&batchResumeFiles, "resume", "r", nil, "Path to a resume file (repeatable)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Maximum analyses in flight (default from config)")
	batchCmd.Flags().StringVarP(&batchOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print the ranking to stderr")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	if len(batchResumeFiles) == 0 {
		return fmt.Errorf("at least one --resume is required")
	}
	jd, err := readInput(batchJobFile, "job")
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	items := make([]pipeline.BatchItem, 0, len(batchResumeFiles))
	for _, path := range batchResumeFiles {
		text, err := readInput(path, "resume")
		if err != nil {
			d.logger.Warn("unreadable resume", zap.String("path", path), zap.Error(err))
		}
		items = append(items, pipeline.BatchItem{Source: path, Resume: text, Err: err})
	}

	ranked, err := d.analyzer.AnalyzeBatch(ctx, jd, items, batchConcurrency)
	if err != nil {
		return fmt.Errorf("failed to analyze batch: %w", err)
	}

	if batchVerbose {
		observability.NewPrinter(os.Stderr).PrintRanking(ranked)
	}

	jsonBytes, err := json.MarshalIndent(ranked, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), batchOutputFile, jsonBytes)
}
