// Package skills infers proficiency levels for skills mentioned in a resume.
package skills

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

// contextWindow is how many bytes around a mention are inspected
const contextWindow = 100

// levelIndicators are the phrases that vote for each level
var levelIndicators = map[types.Level][]string{
	types.LevelBeginner: {
		"basic", "basics", "fundamental", "fundamentals", "introduction",
		"intro", "familiar", "familiarity", "exposure", "learning",
		"studied", "coursework", "academic", "beginner", "novice",
		"starting", "basic knowledge", "basic understanding",
	},
	types.LevelIntermediate: {
		"intermediate", "working knowledge", "hands-on", "practical",
		"experience", "experienced", "proficient", "competent",
		"comfortable", "solid understanding", "good knowledge",
		"applied", "utilized", "implemented", "developed with",
		"worked with", "used extensively",
	},
	types.LevelAdvanced: {
		"advanced", "expert", "expertise", "deep", "extensive",
		"comprehensive", "thorough", "mastery", "master",
		"specialized", "specialization", "in-depth", "sophisticated",
		"complex", "architectural", "designed", "architected",
		"led development", "expert level", "highly skilled",
	},
	types.LevelExpert: {
		"guru", "authority", "thought leader", "innovator",
		"pioneer", "creator", "inventor", "contributor to",
		"open source contributor", "published", "speaker",
		"instructor", "mentor", "certified expert", "lead architect",
		"subject matter expert", "sme", "recognized expert",
	},
}

var (
	yearsRe      = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)`)
	yearsOfExpRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:year|yr)\s+(?:of\s+)?experience`)
	yearsRangeRe = regexp.MustCompile(`(?i)(\d+)\s*(?:-|–|to)\s*(\d+)\s*(?:years?|yrs?)`)
)

const (
	confidenceYearsOnly  = 0.5
	confidenceNoEvidence = 0.3
	confidenceAbsent     = 0.1
	confidenceUpgraded   = 0.7
	// HighConfidence is the confidence at which a level is considered reliable
	HighConfidence = 0.7
)

// DetectSkillLevel infers the proficiency for skill from the phrases and
// years of experience written around each mention of it in resume.
// When two levels get the same number of votes the lower one wins.
func DetectSkillLevel(resume, skill string) types.SkillLevel {
	contexts := skillContexts(strings.ToLower(resume), strings.ToLower(skill))
	if len(contexts) == 0 {
		return types.SkillLevel{Skill: skill, Level: types.LevelBeginner, Confidence: confidenceAbsent}
	}

	votes := make(map[types.Level]int, len(types.Levels))
	totalVotes := 0
	var years []int
	for _, window := range contexts {
		for _, level := range types.Levels {
			for _, indicator := range levelIndicators[level] {
				if strings.Contains(window, indicator) {
					votes[level]++
					totalVotes++
				}
			}
		}
		years = append(years, extractYears(window)...)
	}

	var yearsValue *int
	if len(years) > 0 {
		y := maxInt(years)
		yearsValue = &y
	}

	var level types.Level
	var confidence float64
	if totalVotes == 0 {
		level = levelFromYears(yearsValue)
		confidence = confidenceNoEvidence
		if yearsValue != nil {
			confidence = confidenceYearsOnly
		}
	} else {
		level = types.LevelBeginner
		for _, lv := range types.Levels {
			if votes[lv] > votes[level] {
				level = lv
			}
		}
		confidence = math.Min(1.0, float64(totalVotes)/float64(len(contexts))/2)
	}

	// years only ever raise the level
	if yearsValue != nil && *yearsValue > 0 {
		if inferred := levelFromYears(yearsValue); inferred.Rank() > level.Rank() {
			level = inferred
			confidence = math.Max(confidence, confidenceUpgraded)
		}
	}

	return types.SkillLevel{
		Skill:      skill,
		Level:      level,
		Years:      yearsValue,
		Confidence: math.Round(confidence*100) / 100,
	}
}

// DetectAllSkillLevels runs DetectSkillLevel for every skill
func DetectAllSkillLevels(resume string, skills []string) map[string]types.SkillLevel {
	levels := make(map[string]types.SkillLevel, len(skills))
	for _, skill := range skills {
		levels[skill] = DetectSkillLevel(resume, skill)
	}
	return levels
}

// Summarize aggregates levels. Skill lists are sorted by name.
func Summarize(levels map[string]types.SkillLevel) types.SkillLevelSummary {
	summary := types.SkillLevelSummary{
		TotalSkills:          len(levels),
		HighConfidenceSkills: []string{},
		ExpertSkills:         []string{},
		AdvancedSkills:       []string{},
	}

	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)

	var yearsTotal, yearsCount int
	for _, name := range names {
		lv := levels[name]
		switch lv.Level {
		case types.LevelBeginner:
			summary.LevelDistribution.Beginner++
		case types.LevelIntermediate:
			summary.LevelDistribution.Intermediate++
		case types.LevelAdvanced:
			summary.LevelDistribution.Advanced++
			summary.AdvancedSkills = append(summary.AdvancedSkills, name)
		case types.LevelExpert:
			summary.LevelDistribution.Expert++
			summary.ExpertSkills = append(summary.ExpertSkills, name)
		}
		if lv.Years != nil && *lv.Years > 0 {
			yearsTotal += *lv.Years
			yearsCount++
		}
		if lv.Confidence >= HighConfidence {
			summary.HighConfidenceSkills = append(summary.HighConfidenceSkills, name)
		}
	}

	if yearsCount > 0 {
		avg := math.Round(float64(yearsTotal)/float64(yearsCount)*10) / 10
		summary.AverageYears = &avg
	}
	return summary
}

// FormatSkillWithLevel renders a level as "python - 6+ yrs - (expert)"
func FormatSkillWithLevel(lv types.SkillLevel) string {
	parts := []string{lv.Skill}
	if lv.Years != nil && *lv.Years > 0 {
		parts = append(parts, fmt.Sprintf("%d+ yrs", *lv.Years))
	}
	parts = append(parts, fmt.Sprintf("(%s)", lv.Level))
	return strings.Join(parts, " - ")
}

// skillContexts returns the text around every whole-word occurrence of skill
// in text. Both arguments must already be lowercase.
func skillContexts(text, skill string) []string {
	if skill == "" {
		return nil
	}

	var contexts []string
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], skill)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(skill)
		offset = start + 1

		if !isBoundary(text, start, end) {
			continue
		}

		from := alignStart(text, max(0, start-contextWindow))
		to := alignEnd(text, min(len(text), end+contextWindow))
		contexts = append(contexts, text[from:to])
	}
	return contexts
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isBoundary reports whether text[start:end] is not glued to a word character
func isBoundary(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func alignStart(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func alignEnd(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}

// extractYears returns every year count mentioned in text; ranges count as
// their upper bound
func extractYears(text string) []int {
	var years []int
	for _, re := range []*regexp.Regexp{yearsRe, yearsOfExpRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				years = append(years, n)
			}
		}
	}
	for _, m := range yearsRangeRe.FindAllStringSubmatch(text, -1) {
		a, errA := strconv.Atoi(m[1])
		b, errB := strconv.Atoi(m[2])
		if errA == nil && errB == nil {
			years = append(years, max(a, b))
		}
	}
	return years
}

func levelFromYears(years *int) types.Level {
	switch {
	case years == nil, *years < 1:
		return types.LevelBeginner
	case *years < 3:
		return types.LevelIntermediate
	case *years < 5:
		return types.LevelAdvanced
	default:
		return types.LevelExpert
	}
}

func maxInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		m = max(m, x)
	}
	return m
}
