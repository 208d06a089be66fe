// Package scoring computes the per-dimension resume scores and the role
// weighted composite.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/types"
)

// roleWords are checked in order; the first role with a substring hit wins
var roleWords = []struct {
	role  types.Role
	words []string
}{
	{types.RoleTech, []string{"engineer", "developer", "python", "ml", "machine learning", "data scientist", "backend", "frontend", "react", "node"}},
	{types.RoleManager, []string{"manager", "lead", "head of", "director", "senior manager", "product manager"}},
	{types.RoleCreative, []string{"designer", "creative", "ux", "ui", "visual", "copywriter"}},
}

var roleWeights = map[types.Role]types.RoleWeights{
	types.RoleTech:     {Structural: 0.20, Semantic: 0.45, Keyword: 0.25, Readability: 0.05, Tone: 0.05},
	types.RoleManager:  {Structural: 0.25, Semantic: 0.30, Keyword: 0.15, Readability: 0.15, Tone: 0.15},
	types.RoleCreative: {Structural: 0.20, Semantic: 0.25, Keyword: 0.10, Readability: 0.20, Tone: 0.25},
	types.RoleGeneral:  {Structural: 0.25, Semantic: 0.35, Keyword: 0.25, Readability: 0.10, Tone: 0.05},
}

// DetectRoleFromJD classifies jd by keyword. An empty jd is GENERAL.
func DetectRoleFromJD(jd string) types.Role {
	if strings.TrimSpace(jd) == "" {
		return types.RoleGeneral
	}
	lower := strings.ToLower(jd)
	for _, rw := range roleWords {
		for _, w := range rw.words {
			if strings.Contains(lower, w) {
				return rw.role
			}
		}
	}
	return types.RoleGeneral
}

// WeightsFor returns the dimension weights of role, GENERAL for unknown roles
func WeightsFor(role types.Role) types.RoleWeights {
	if w, ok := roleWeights[role]; ok {
		return w
	}
	return roleWeights[types.RoleGeneral]
}

func headingRe(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)(?:^|[.!?]\s+)[ \t]*(?:` + strings.Join(words, "|") + `)[ \t]*(?::|$)`)
}

var (
	experienceHeading = headingRe(`(?:work\s+|professional\s+)?experience`, `work\s+history`, `employment(?:\s+history)?`)
	educationHeading  = headingRe(`education`, `academic\s+background`)
	skillsHeading     = headingRe(`(?:technical\s+)?skills`, `competencies`)
	summaryHeading    = headingRe(`(?:professional\s+)?summary`, `profile`, `objective`, `about\s+me`)
	projectsHeading   = headingRe(`projects`)

	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
)

const (
	weightContact    = 0.20
	weightExperience = 0.25
	weightEducation  = 0.15
	weightSkills     = 0.20
	weightSummary    = 0.10
	weightHeadings   = 0.10
	minHeadings      = 3
)

// StructuralScore rewards contact details and standard section headings
func StructuralScore(text string) float64 {
	lower := strings.ToLower(text)

	score := 0.0
	if strings.Contains(lower, "@") || strings.Contains(lower, "email") ||
		strings.Contains(lower, "phone") || phoneRe.MatchString(text) {
		score += weightContact
	}

	headings := 0
	for _, h := range []struct {
		re     *regexp.Regexp
		weight float64
	}{
		{experienceHeading, weightExperience},
		{educationHeading, weightEducation},
		{skillsHeading, weightSkills},
		{summaryHeading, weightSummary},
		{projectsHeading, 0},
	} {
		if h.re.MatchString(text) {
			score += h.weight
			headings++
		}
	}
	if headings >= minHeadings {
		score += weightHeadings
	}
	return math.Min(1.0, score)
}

const idealSentenceWords = 15

// ReadabilityScore peaks at 15 words per sentence. Text without sentences scores 0.5.
func ReadabilityScore(text string) float64 {
	sentences := ingestion.SplitSentences(text)
	if len(sentences) == 0 {
		return 0.5
	}
	words := 0
	for _, s := range sentences {
		words += ingestion.WordCount(s.Text)
	}
	avg := float64(words) / float64(len(sentences))
	return clamp01(1 - math.Abs(avg-idealSentenceWords)/20)
}

var actionVerbRe = regexp.MustCompile(`(?i)\b(?:led|developed|built|designed|implemented|created|managed|optimized|deployed|improved|increased|reduced)\b`)

// ToneScore is the action verb count per bullet, scaled so 1.2 verbs per
// bullet scores 1.0. Sentences stand in for bullets in prose resumes.
func ToneScore(text string) float64 {
	bullets := ingestion.CountBullets(text)
	if bullets == 0 {
		bullets = max(1, len(ingestion.SplitSentences(text)))
	}
	verbs := len(actionVerbRe.FindAllStringIndex(text, -1))
	return math.Min(1.0, float64(verbs)/(float64(bullets)*1.2))
}

// KeywordScore is the share of required keywords matched
func KeywordScore(match types.MatchResult) float64 {
	if match.Required == 0 {
		return 0
	}
	return float64(match.Matched) / float64(match.Required)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
