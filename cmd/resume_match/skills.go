package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Infer proficiency levels for skills mentioned in a resume",
	RunE:  runSkills,
}

var (
	skillsResumeFile string
	skillsNames      []string
	skillsOutputFile string
	skillsVerbose    bool
)

// skillsOutput is the JSON written by the skills command
type skillsOutput struct {
	SkillLevels map[string]types.SkillLevel `json:"skill_levels"`
	Summary     types.SkillLevelSummary     `json:"summary"`
}

func init() {
	skillsCmd.Flags().StringVarP(&skillsResumeFile, "resume", "r", "", "Path to resume file (.txt, .md or .html)")
	skillsCmd.Flags().StringArrayVarP(&skillsNames, "skill", "s", nil, "Skill to assess (repeatable)")
	skillsCmd.Flags().StringVarP(&skillsOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	skillsCmd.Flags().BoolVarP(&skillsVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, _ []string) error {
	var names []string
	for _, s := range skillsNames {
		if s = strings.TrimSpace(s); s != "" {
			names = append(names, s)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("at least one --skill is required")
	}

	resume, err := readInput(skillsResumeFile, "resume")
	if err != nil {
		return err
	}

	levels := skills.DetectAllSkillLevels(resume, names)
	out := skillsOutput{
		SkillLevels: levels,
		Summary:     skills.Summarize(levels),
	}

	if skillsVerbose {
		observability.NewPrinter(os.Stderr).PrintSkillLevels(levels)
	}

	jsonBytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), skillsOutputFile, jsonBytes)
}
