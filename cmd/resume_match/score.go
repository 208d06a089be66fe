package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against a job description",
	Long: `Analyze a resume against a job description and write the full score report as JSON.

The report is checked against schemas/score_report.schema.json; a mismatch is reported as a
warning and does not fail the command.`,
	RunE: runScore,
}

var (
	scoreResumeFile string
	scoreJobFile    string
	scoreOutputFile string
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to resume file (.txt, .md or .html)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to job description file (.txt, .md or .html)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	resume, err := readInput(scoreResumeFile, "resume")
	if err != nil {
		return err
	}
	jd, err := readInput(scoreJobFile, "job")
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	report, err := d.analyzer.Analyze(ctx, resume, jd)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if err := schemas.ValidateReport(report); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			d.logger.Warn("report does not validate against schema", zap.Error(err))
		} else {
			d.logger.Warn("could not validate report against schema", zap.Error(err))
		}
	}

	if scoreVerbose {
		observability.NewPrinter(os.Stderr).PrintReport(report)
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), scoreOutputFile, jsonBytes)
}
