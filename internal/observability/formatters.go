// Package observability provides logging, metrics and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport prints every section of an analysis report
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}
	p.PrintScores(&report.Scores)
	p.PrintKeywordMatch(&report.KeywordMatch)
	p.PrintWeightedMatch(report.WeightedMatch)
	p.PrintSkillLevels(report.SkillLevels)
	p.PrintEnrichment(report)
}

// PrintScores outputs the sub-scores and composite.
func (p *Printer) PrintScores(scores *types.ScoreVector) {
	if scores == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:         %s\n\n", scores.Role))
	sb.WriteString(fmt.Sprintf("Structural:   %.3f\n", scores.Structural))
	sb.WriteString(fmt.Sprintf("Semantic:     %.3f", scores.Semantic))
	if scores.SemanticOutcome.Status != types.SemanticApplied {
		sb.WriteString(fmt.Sprintf(" (%s)", scores.SemanticOutcome.Status))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Keyword:      %.3f\n", scores.Keyword))
	sb.WriteString(fmt.Sprintf("Readability:  %.3f\n", scores.Readability))
	sb.WriteString(fmt.Sprintf("Tone:         %.3f\n", scores.Tone))
	if scores.WeightedKeywordScore != nil {
		sb.WriteString(fmt.Sprintf("Weighted:     %.3f\n", *scores.WeightedKeywordScore))
	}
	sb.WriteString(fmt.Sprintf("\nComposite:    %.3f", scores.Composite))

	p.printBox("MATCH SCORES", sb.String())
}

// PrintKeywordMatch outputs matched and missing JD keywords.
func (p *Printer) PrintKeywordMatch(match *types.MatchResult) {
	if match == nil || match.Required == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched %d of %d keywords\n", match.Matched, match.Required))
	if match.Semantic.Added > 0 {
		sb.WriteString(fmt.Sprintf("(%d via semantic similarity)\n", match.Semantic.Added))
	}
	sb.WriteString("\n")
	writeList(&sb, "Matched:", match.Matches)
	writeList(&sb, "Missing:", match.Missing)

	p.printBox("KEYWORD MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWeightedMatch outputs the tier breakdown and recommendation.
func (p *Printer) PrintWeightedMatch(result *types.WeightedMatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:   %.3f\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Critical:  %.3f\n", result.CriticalScore))
	sb.WriteString(fmt.Sprintf("Required:  %s\n", result.Summary.RequiredSkills))
	sb.WriteString(fmt.Sprintf("Preferred: %s\n\n", result.Summary.PreferredSkills))
	sb.WriteString(result.Summary.Recommendation)

	p.printBox("WEIGHTED MATCH", sb.String())
}

// PrintSkillLevels outputs detected proficiency, strongest first.
func (p *Printer) PrintSkillLevels(levels map[string]types.SkillLevel) {
	if len(levels) == 0 {
		return
	}

	list := make([]types.SkillLevel, 0, len(levels))
	for _, lv := range levels {
		list = append(list, lv)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Level.Rank() != list[j].Level.Rank() {
			return list[i].Level.Rank() > list[j].Level.Rank()
		}
		return list[i].Skill < list[j].Skill
	})

	var sb strings.Builder
	count := min(len(list), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s  [%.2f]\n", skills.FormatSkillWithLevel(list[i]), list[i].Confidence))
	}
	if len(list) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(list)-maxItemsToShow))
	}

	p.printBox("SKILL LEVELS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnrichment outputs the status of optional stages.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) PrintEnrichment(report *types.Report) {
	stages := []struct {
		name string
		e    types.Enrichment
	}{
		{"skill detection", report.SkillDetection},
		{"weighted matching", report.WeightedMatching},
		{"heatmap", report.HeatmapStatus},
	}

	var sb strings.Builder
	problems := 0
	for _, s := range stages {
		if s.e.Status == types.EnrichmentOK {
			continue
		}
		problems++
		sb.WriteString(fmt.Sprintf("⚠ %s: %s\n", s.name, s.e.Status))
		if s.e.Error != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", s.e.Error))
		}
	}

	if problems == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL STAGES COMPLETED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	p.printBox("DEGRADED STAGES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs a batch ranking.
func (p *Printer) PrintRanking(ranked []types.RankedReport) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resumes ranked: %d\n\n", len(ranked)))
	for i, r := range ranked {
		if r.Report == nil {
			sb.WriteString(fmt.Sprintf("-   %s  (error: %s)", r.Source, r.Error))
		} else {
			sb.WriteString(fmt.Sprintf("#%d  %s  %.3f", r.Rank, r.Source, r.Report.Scores.Composite))
		}
		if i < len(ranked)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RESUME RANKING", sb.String())
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	count := min(len(items), maxItemsToShow)
	joined := strings.Join(items[:count], ", ")
	if len(joined) > 45 {
		joined = joined[:42] + "..."
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", label, joined))
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
