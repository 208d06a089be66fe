package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/requirements"
	"github.com/jonathan/resume-matcher/internal/types"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract technical keywords and requirement tiers from a job description",
	RunE:  runKeywords,
}

var (
	keywordsJobFile    string
	keywordsOutputFile string
)

// keywordsOutput is the JSON written by the keywords command
type keywordsOutput struct {
	Keywords         []string                `json:"keywords"`
	WeightedKeywords []types.WeightedKeyword `json:"weighted_keywords"`
}

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsJobFile, "job", "j", "", "Path to job description file (.txt, .md or .html)")
	keywordsCmd.Flags().StringVarP(&keywordsOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	jd, err := readInput(keywordsJobFile, "job")
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	out := keywordsOutput{
		Keywords:         d.keywords.Keywords(ctx, jd),
		WeightedKeywords: requirements.ExtractWeightedKeywords(ctx, jd, d.keywords),
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), keywordsOutputFile, jsonBytes)
}
